package effect

import (
	"math"

	"go-backdrop/internal/config"
	"go-backdrop/internal/surface"
	"go-backdrop/internal/utils"
	"go-backdrop/pkg/render"
)

const (
	auroraPointStep = 50.0
	auroraGlowWidth = 8.0
	auroraLineWidth = 2.0
)

type auroraPoint struct {
	x, y float64
}

type auroraCurve struct {
	points []auroraPoint
	hue    float64
	offset float64
}

// Aurora — полярное сияние из сглаженных кривых.
type Aurora struct {
	count  int
	curves []auroraCurve
	path   surface.Path
}

func NewAurora(t config.EffectSettings) Renderer {
	return &Aurora{count: t.AuroraCurves}
}

func (a *Aurora) Style() Style {
	return Style{Kind: surface.Kind2D, Increment: 0.005, Backdrop: config.FadeColor}
}

func (a *Aurora) Seed(width, height float64, _ *utils.PRNGService) {
	a.curves = a.curves[:0]
	for i := 0; i < a.count; i++ {
		c := auroraCurve{hue: 180 + float64(i)*30, offset: float64(i) * 0.5}
		for x := 0.0; x <= width; x += auroraPointStep {
			c.points = append(c.points, auroraPoint{x: x, y: height / 2})
		}
		a.curves = append(a.curves, c)
	}
}

func (a *Aurora) Step(f *Frame) {
	for ci := range a.curves {
		c := &a.curves[ci]

		a.path.Reset()
		for i := range c.points {
			p := &c.points[i]
			noise := math.Sin(f.Time+float64(i)*0.2+c.offset) * 50
			bias := math.Sin((f.PointerX-p.x)*0.005+(f.PointerY-p.y)*0.005) * 30
			p.y = f.Height/2 + noise + bias

			if i == 0 {
				a.path.MoveTo(p.x, p.y)
				continue
			}
			prev := c.points[i-1]
			a.path.QuadTo(prev.x, prev.y, (p.x+prev.x)/2, (p.y+prev.y)/2)
		}

		// мягкое свечение под основной линией
		f.Canvas.StrokePath(&a.path, auroraGlowWidth, render.HSLA(c.hue, 0.5, 0.5, 0.15))
		f.Canvas.StrokePath(&a.path, auroraLineWidth, render.HSLA(c.hue, 0.7, 0.5, 1))
	}
}
