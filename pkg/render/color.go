// pkg/render/color.go
package render

import (
	"image/color"
	"math"
)

// HSLA converts hue (degrees), saturation and lightness (0..1) and alpha (0..1)
// to a straight-alpha colour, the same way CSS hsla() does.
func HSLA(h, s, l, a float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = clamp01(s)
	l = clamp01(l)

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.NRGBA{
		R: to8(r + m),
		G: to8(g + m),
		B: to8(b + m),
		A: to8(a),
	}
}

// RGBA builds a straight-alpha colour from 0..255 channels and a 0..1 alpha,
// like CSS rgba().
func RGBA(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: to8(a)}
}

// WithAlpha returns c with its alpha multiplied by k.
func WithAlpha(c color.NRGBA, k float64) color.NRGBA {
	c.A = to8(float64(c.A) / 255 * k)
	return c
}

// LerpColor mixes two colours channel by channel.
func LerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.NRGBA) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
