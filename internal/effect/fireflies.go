package effect

import (
	"math"

	"go-backdrop/internal/config"
	"go-backdrop/internal/surface"
	"go-backdrop/internal/utils"
	"go-backdrop/pkg/render"
)

type firefly struct {
	x, y       float64
	size       float64
	speed      float64
	angle      float64
	angleSpeed float64
	hue        float64
	pulse      float64
}

// Fireflies — светлячки блуждают, мерцают и разлетаются от указателя.
type Fireflies struct {
	count int
	flies []firefly
}

func NewFireflies(t config.EffectSettings) Renderer {
	return &Fireflies{count: t.FireflyCount}
}

func (ff *Fireflies) Style() Style {
	return Style{Kind: surface.Kind2D, Increment: 0.01, Backdrop: config.FadeColor}
}

func (ff *Fireflies) Seed(width, height float64, rng *utils.PRNGService) {
	ff.flies = ff.flies[:0]
	for i := 0; i < ff.count; i++ {
		ff.flies = append(ff.flies, firefly{
			x:          rng.Float64() * width,
			y:          rng.Float64() * height,
			size:       rng.Range(1, 3),
			speed:      rng.Range(0.5, 1.5),
			angle:      rng.Angle(),
			angleSpeed: rng.Centered(0.05),
			hue:        rng.Range(40, 100),
			pulse:      rng.Angle(),
		})
	}
}

func (ff *Fireflies) Step(f *Frame) {
	for i := range ff.flies {
		fly := &ff.flies[i]

		fly.angle += fly.angleSpeed * f.Speed
		fly.x += math.Cos(fly.angle) * fly.speed * f.Speed
		fly.y += math.Sin(fly.angle) * fly.speed * f.Speed
		fly.pulse += 0.1 * f.Speed

		if fly.x < 0 {
			fly.x = f.Width
		}
		if fly.x > f.Width {
			fly.x = 0
		}
		if fly.y < 0 {
			fly.y = f.Height
		}
		if fly.y > f.Height {
			fly.y = 0
		}

		if f.PointerKnown {
			dx := f.PointerX - fly.x
			dy := f.PointerY - fly.y
			if math.Hypot(dx, dy) < config.FleeRadius {
				fly.angle = math.Atan2(dy, dx) + math.Pi
			}
		}

		glow := math.Sin(fly.pulse)*0.3 + 0.3
		f.Canvas.FillCircle(fly.x, fly.y, fly.size*3, render.HSLA(fly.hue, 0.7, 0.6, glow*0.2))
		f.Canvas.FillCircle(fly.x, fly.y, fly.size, render.HSLA(fly.hue, 0.7, 0.6, glow))
	}
}
