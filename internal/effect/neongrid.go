package effect

import (
	"math"

	"go-backdrop/internal/config"
	"go-backdrop/internal/surface"
	"go-backdrop/internal/utils"
	"go-backdrop/pkg/render"
)

const neonStep = 10.0

// NeonGrid — ретро-сетка: горизонтали уходят вдаль, вертикали колышутся,
// указатель даёт рябь.
type NeonGrid struct {
	size float64
	path surface.Path
}

func NewNeonGrid(t config.EffectSettings) Renderer {
	return &NeonGrid{size: t.NeonGridSize}
}

func (n *NeonGrid) Style() Style {
	return Style{Kind: surface.Kind2D, Increment: 0.005, Backdrop: config.FadeColor}
}

func (n *NeonGrid) Seed(float64, float64, *utils.PRNGService) {}

func (n *NeonGrid) ripple(f *Frame, x, y, amp float64) float64 {
	return math.Sin((x-f.PointerX)*0.01) * math.Sin((y-f.PointerY)*0.01) * amp
}

func (n *NeonGrid) Step(f *Frame) {
	span := n.size * config.NeonGridDepths
	cameraZ := -10 + math.Sin(f.Time*0.3)*3

	for z := config.NeonGridDepths; z >= 0; z-- {
		depth := math.Mod(float64(z)*n.size-cameraZ, span)
		y := f.Height/2 + depth*0.5
		alpha := math.Max(0, 0.5-depth/span)
		thickness := math.Max(1, 2*(1-depth/span))

		n.path.Reset()
		n.path.MoveTo(0, y)
		for x := 0.0; x < f.Width; x += neonStep {
			wave := math.Sin(x*0.01+f.Time+float64(z)) * 20
			n.path.LineTo(x, y+wave+n.ripple(f, x, y, 50))
		}
		f.Canvas.StrokePath(&n.path, thickness+3, render.RGBA(0, 255, 255, alpha*0.15))
		f.Canvas.StrokePath(&n.path, thickness, render.RGBA(0, 255, 255, alpha*0.7))
	}

	for x := 0.0; x < f.Width; x += n.size {
		alpha := 0.2 + math.Sin(x*0.01+f.Time)*0.1

		n.path.Reset()
		n.path.MoveTo(x, 0)
		for y := 0.0; y < f.Height; y += neonStep {
			wave := math.Sin(y*0.01+f.Time) * 10
			n.path.LineTo(x+wave+n.ripple(f, x, y, 30), y)
		}
		f.Canvas.StrokePath(&n.path, 1, render.RGBA(255, 0, 255, alpha*0.7))
	}
}
