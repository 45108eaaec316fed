// Package surface defines the drawable targets that effects render into and
// the providers that allocate them.
//
// Coordinates passed to a Canvas are logical pixels. A surface allocated with
// Scale 2 has a backing store twice as large in each direction and multiplies
// every coordinate by 2 before rasterising.
package surface

import (
	"errors"
	"image"
	"image/color"
	"math"
)

// Kind selects the rendering backend an effect asks for.
type Kind int

const (
	// Kind2D is a plain 2D raster context.
	Kind2D Kind = iota
	// KindAccelerated is a hardware accelerated context (the starfield needs it).
	KindAccelerated
)

func (k Kind) String() string {
	switch k {
	case Kind2D:
		return "2d"
	case KindAccelerated:
		return "accelerated"
	default:
		return "unknown"
	}
}

var (
	// ErrUnsupportedBackend is returned by a Provider that cannot create the requested Kind.
	ErrUnsupportedBackend = errors.New("surface: unsupported rendering backend")
	// ErrReleased is returned when a released surface is used again.
	ErrReleased = errors.New("surface: surface released")
	// ErrInvalidSize is returned for non-positive dimensions.
	ErrInvalidSize = errors.New("surface: invalid size")
)

// Canvas is the immediate-mode drawing API effects use every frame.
// Colours are straight (non-premultiplied) alpha.
type Canvas interface {
	// Fade paints c over the whole surface. With a low alpha this leaves motion trails.
	Fade(c color.NRGBA)
	// Clear replaces every pixel with c.
	Clear(c color.NRGBA)
	FillCircle(x, y, r float64, c color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
	StrokePath(p *Path, width float64, c color.NRGBA)
}

// Surface is a drawable bitmap owned by exactly one effect instance.
type Surface interface {
	Canvas

	Kind() Kind
	// Size returns the logical size.
	Size() (width, height int)
	// PixelSize returns the size of the backing store.
	PixelSize() (width, height int)
	Scale() float64
	// Resize reallocates the backing store. Content is discarded.
	Resize(width, height int, scale float64) error
	// Image returns the current pixels.
	Image() image.Image
	// Release frees the backing store. It is safe to call more than once.
	Release()
	Released() bool
}

// Spec describes a surface request.
type Spec struct {
	Kind          Kind
	Width, Height int
	Scale         float64
}

// Provider allocates surfaces.
type Provider interface {
	Acquire(spec Spec) (Surface, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(spec Spec) (Surface, error)

// Acquire calls f.
func (f ProviderFunc) Acquire(spec Spec) (Surface, error) {
	return f(spec)
}

// backingSize returns the clamped device-pixel size for a logical size and scale.
func backingSize(width, height int, scale float64) (int, int, float64, error) {
	if width <= 0 || height <= 0 {
		return 0, 0, 0, ErrInvalidSize
	}
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	pw := int(math.Ceil(float64(width) * scale))
	ph := int(math.Ceil(float64(height) * scale))
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}
	return pw, ph, scale, nil
}
