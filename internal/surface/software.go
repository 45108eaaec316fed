package surface

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
)

// SoftwareProvider allocates CPU-rasterised surfaces backed by gg.
// It serves KindAccelerated only when Accelerated is set, which lets the
// headless tools render the starfield and lets tests simulate a host
// without an accelerated context.
type SoftwareProvider struct {
	Accelerated bool
}

// Acquire implements Provider.
func (p SoftwareProvider) Acquire(spec Spec) (Surface, error) {
	if spec.Kind == KindAccelerated && !p.Accelerated {
		return nil, fmt.Errorf("acquire %s surface: %w", spec.Kind, ErrUnsupportedBackend)
	}
	return NewSoftware(spec)
}

// SoftwareSurface draws with a gg.Context.
type SoftwareSurface struct {
	kind          Kind
	width, height int
	scale         float64
	dc            *gg.Context
	released      bool
	err           error
}

// NewSoftware allocates a software surface.
func NewSoftware(spec Spec) (*SoftwareSurface, error) {
	pw, ph, scale, err := backingSize(spec.Width, spec.Height, spec.Scale)
	if err != nil {
		return nil, err
	}
	return &SoftwareSurface{
		kind:   spec.Kind,
		width:  spec.Width,
		height: spec.Height,
		scale:  scale,
		dc:     gg.NewContext(pw, ph),
	}, nil
}

func (s *SoftwareSurface) Kind() Kind { return s.kind }

func (s *SoftwareSurface) Size() (int, int) { return s.width, s.height }

func (s *SoftwareSurface) PixelSize() (int, int) {
	if s.released {
		return 0, 0
	}
	return s.dc.Width(), s.dc.Height()
}

func (s *SoftwareSurface) Scale() float64 { return s.scale }

func (s *SoftwareSurface) Released() bool { return s.released }

// Err returns the last rasterisation error, if any.
func (s *SoftwareSurface) Err() error { return s.err }

func (s *SoftwareSurface) Resize(width, height int, scale float64) error {
	if s.released {
		return ErrReleased
	}
	pw, ph, scale, err := backingSize(width, height, scale)
	if err != nil {
		return err
	}
	if err := s.dc.Resize(pw, ph); err != nil {
		return fmt.Errorf("resize software surface: %w", err)
	}
	s.width, s.height, s.scale = width, height, scale
	return nil
}

func (s *SoftwareSurface) Image() image.Image {
	if s.released {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	return s.dc.Image()
}

// SavePNG writes the current pixels to path.
func (s *SoftwareSurface) SavePNG(path string) error {
	if s.released {
		return ErrReleased
	}
	return s.dc.SavePNG(path)
}

func (s *SoftwareSurface) Release() {
	if s.released {
		return
	}
	s.released = true
	_ = s.dc.Close()
}

func (s *SoftwareSurface) setColor(c color.NRGBA) {
	s.dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

func (s *SoftwareSurface) record(err error) {
	if err != nil {
		s.err = err
	}
}

func (s *SoftwareSurface) Fade(c color.NRGBA) {
	if s.released {
		return
	}
	s.setColor(c)
	s.dc.DrawRectangle(0, 0, float64(s.dc.Width()), float64(s.dc.Height()))
	s.record(s.dc.Fill())
}

func (s *SoftwareSurface) Clear(c color.NRGBA) {
	if s.released {
		return
	}
	s.dc.ClearWithColor(gg.RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	})
}

func (s *SoftwareSurface) FillCircle(x, y, r float64, c color.NRGBA) {
	if s.released || r <= 0 {
		return
	}
	k := s.scale
	s.setColor(c)
	s.dc.DrawCircle(x*k, y*k, r*k)
	s.record(s.dc.Fill())
}

func (s *SoftwareSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if s.released {
		return
	}
	k := s.scale
	s.setColor(c)
	s.dc.SetLineWidth(width * k)
	s.dc.DrawLine(x0*k, y0*k, x1*k, y1*k)
	s.record(s.dc.Stroke())
}

func (s *SoftwareSurface) StrokePath(p *Path, width float64, c color.NRGBA) {
	if s.released || p.Len() < 2 {
		return
	}
	k := s.scale
	s.dc.ClearPath()
	for _, op := range p.Ops() {
		switch op.Verb {
		case MoveTo:
			s.dc.MoveTo(op.X*k, op.Y*k)
		case LineTo:
			s.dc.LineTo(op.X*k, op.Y*k)
		case QuadTo:
			s.dc.QuadraticTo(op.CX*k, op.CY*k, op.X*k, op.Y*k)
		}
	}
	s.setColor(c)
	s.dc.SetLineWidth(width * k)
	s.record(s.dc.Stroke())
}
