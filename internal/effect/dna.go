package effect

import (
	"math"

	"go-backdrop/internal/config"
	"go-backdrop/internal/surface"
	"go-backdrop/internal/utils"
	"go-backdrop/pkg/render"
)

const (
	dnaFrequency = 0.02
	dnaSpacing   = 25
	dnaTop       = -100 // первая пара относительно центра нити
	dnaBottom    = 200
	dnaWrap      = 100.0
)

var (
	dnaRung  = render.RGBA(100, 200, 255, 0.2)
	dnaBaseA = render.RGBA(100, 200, 255, 0.4)
	dnaBaseB = render.RGBA(200, 220, 255, 0.4)
)

type strand struct {
	x, y   float64
	speed  float64
	offset float64
}

// DNA — двойные спирали, медленно сползающие вниз.
type DNA struct {
	spacing float64
	strands []strand
}

func NewDNA(t config.EffectSettings) Renderer {
	return &DNA{spacing: t.StrandSpacing}
}

func (d *DNA) Style() Style {
	return Style{Kind: surface.Kind2D, Increment: 0.01, Backdrop: config.FadeColor}
}

func (d *DNA) Seed(width, height float64, rng *utils.PRNGService) {
	d.strands = d.strands[:0]
	for x := 0.0; x < width; x += d.spacing {
		d.strands = append(d.strands, strand{
			x:      x,
			y:      rng.Float64() * height,
			speed:  rng.Range(0.2, 0.4),
			offset: rng.Angle(),
		})
	}
}

func (d *DNA) Step(f *Frame) {
	for i := range d.strands {
		s := &d.strands[i]
		s.y += s.speed * f.Speed
		if s.y > f.Height+dnaWrap {
			s.y = -dnaWrap
		}

		influence := 0.0
		if f.PointerKnown {
			influence = utils.Influence(math.Hypot(f.PointerX-s.x, f.PointerY-s.y), config.InfluenceRadius)
		}
		amplitude := 30 + influence*20

		for j := dnaTop; j < dnaBottom; j += dnaSpacing {
			y := s.y + float64(j)
			phase := y*dnaFrequency + f.Time + s.offset
			x1 := s.x + math.Sin(phase)*amplitude
			x2 := s.x + math.Sin(phase+math.Pi)*amplitude

			if j%(dnaSpacing*2) == 0 {
				f.Canvas.StrokeLine(x1, y, x2, y, 1, dnaRung)
			}
			f.Canvas.FillCircle(x1, y, 2, dnaBaseA)
			f.Canvas.FillCircle(x2, y, 2, dnaBaseB)
		}
	}
}
