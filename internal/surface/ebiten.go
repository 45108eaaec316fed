package surface

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenProvider allocates GPU-backed surfaces. It serves both kinds.
type EbitenProvider struct{}

// Acquire implements Provider.
func (EbitenProvider) Acquire(spec Spec) (Surface, error) {
	return NewEbiten(spec)
}

// EbitenSurface draws into an offscreen *ebiten.Image.
type EbitenSurface struct {
	kind          Kind
	width, height int
	scale         float64
	img           *ebiten.Image
	whiteImg      *ebiten.Image // 1x1 источник для DrawTriangles
	strokeVs      []ebiten.Vertex
	strokeIs      []uint16
	released      bool
}

// NewEbiten allocates an ebiten surface.
func NewEbiten(spec Spec) (*EbitenSurface, error) {
	pw, ph, scale, err := backingSize(spec.Width, spec.Height, spec.Scale)
	if err != nil {
		return nil, err
	}
	whiteImg := ebiten.NewImage(1, 1)
	whiteImg.Fill(color.White)

	return &EbitenSurface{
		kind:     spec.Kind,
		width:    spec.Width,
		height:   spec.Height,
		scale:    scale,
		img:      ebiten.NewImage(pw, ph),
		whiteImg: whiteImg,
		strokeVs: make([]ebiten.Vertex, 0, 256),
		strokeIs: make([]uint16, 0, 512),
	}, nil
}

// EbitenImage returns the backing image for compositing onto the screen.
func (s *EbitenSurface) EbitenImage() *ebiten.Image { return s.img }

func (s *EbitenSurface) Kind() Kind { return s.kind }

func (s *EbitenSurface) Size() (int, int) { return s.width, s.height }

func (s *EbitenSurface) PixelSize() (int, int) {
	if s.released {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *EbitenSurface) Scale() float64 { return s.scale }

func (s *EbitenSurface) Released() bool { return s.released }

// Resize allocates a new image; ebiten images cannot change size.
func (s *EbitenSurface) Resize(width, height int, scale float64) error {
	if s.released {
		return ErrReleased
	}
	pw, ph, scale, err := backingSize(width, height, scale)
	if err != nil {
		return err
	}
	if b := s.img.Bounds(); b.Dx() != pw || b.Dy() != ph {
		s.img.Deallocate()
		s.img = ebiten.NewImage(pw, ph)
	}
	s.width, s.height, s.scale = width, height, scale
	return nil
}

func (s *EbitenSurface) Image() image.Image { return s.img }

func (s *EbitenSurface) Release() {
	if s.released {
		return
	}
	s.released = true
	s.img.Deallocate()
	s.whiteImg.Deallocate()
}

func (s *EbitenSurface) Fade(c color.NRGBA) {
	if s.released {
		return
	}
	b := s.img.Bounds()
	vector.DrawFilledRect(s.img, 0, 0, float32(b.Dx()), float32(b.Dy()), c, false)
}

func (s *EbitenSurface) Clear(c color.NRGBA) {
	if s.released {
		return
	}
	s.img.Fill(c)
}

func (s *EbitenSurface) FillCircle(x, y, r float64, c color.NRGBA) {
	if s.released || r <= 0 {
		return
	}
	k := s.scale
	vector.DrawFilledCircle(s.img, float32(x*k), float32(y*k), float32(r*k), c, true)
}

func (s *EbitenSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if s.released {
		return
	}
	k := s.scale
	vector.StrokeLine(s.img, float32(x0*k), float32(y0*k), float32(x1*k), float32(y1*k), float32(width*k), c, true)
}

func (s *EbitenSurface) StrokePath(p *Path, width float64, c color.NRGBA) {
	if s.released || p.Len() < 2 {
		return
	}
	k := s.scale
	path := vector.Path{}
	for _, op := range p.Ops() {
		switch op.Verb {
		case MoveTo:
			path.MoveTo(float32(op.X*k), float32(op.Y*k))
		case LineTo:
			path.LineTo(float32(op.X*k), float32(op.Y*k))
		case QuadTo:
			path.QuadTo(float32(op.CX*k), float32(op.CY*k), float32(op.X*k), float32(op.Y*k))
		}
	}

	s.strokeVs, s.strokeIs = path.AppendVerticesAndIndicesForStroke(s.strokeVs[:0], s.strokeIs[:0], &vector.StrokeOptions{
		Width:    float32(width * k),
		LineJoin: vector.LineJoinRound,
	})
	for i := range s.strokeVs {
		s.strokeVs[i].ColorR = float32(c.R) / 255
		s.strokeVs[i].ColorG = float32(c.G) / 255
		s.strokeVs[i].ColorB = float32(c.B) / 255
		s.strokeVs[i].ColorA = float32(c.A) / 255
	}
	s.img.DrawTriangles(s.strokeVs, s.strokeIs, s.whiteImg, &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
		AntiAlias:      true,
	})
}
