package effect

import (
	"image/color"
	"math"

	"go-backdrop/internal/config"
	"go-backdrop/internal/surface"
	"go-backdrop/internal/utils"
	"go-backdrop/pkg/render"
)

const (
	waveStep     = 5.0
	waveSegments = 8 // горизонтальный градиент рисуется кусками
)

var (
	waveEdge   = render.RGBA(100, 200, 255, 0.2)
	waveCentre = render.RGBA(150, 220, 255, 0.2)
)

// Waves — несколько синусоид поперёк экрана, подталкиваемых указателем по x.
type Waves struct {
	lines int
	path  surface.Path
}

func NewWaves(t config.EffectSettings) Renderer {
	return &Waves{lines: t.WaveLines}
}

func (w *Waves) Style() Style {
	return Style{Kind: surface.Kind2D, Increment: 0.005, Backdrop: config.FadeColor}
}

// Seed — волнам нечего расставлять, всё считается от времени.
func (w *Waves) Seed(float64, float64, *utils.PRNGService) {}

func (w *Waves) y(f *Frame, line int, x float64) float64 {
	influence := 0.0
	if f.PointerKnown {
		influence = utils.Influence(math.Abs(x-f.PointerX), config.InfluenceRadius)
	}
	return math.Sin(x*0.003+f.Time+float64(line))*30 +
		math.Sin(x*0.007+f.Time*0.5)*15 +
		f.Height/2 +
		influence*30*math.Sin(f.Time)
}

func (w *Waves) Step(f *Frame) {
	segment := math.Max(waveStep, math.Ceil(f.Width/waveSegments/waveStep)*waveStep)

	for line := 0; line < w.lines; line++ {
		for start := 0.0; start < f.Width; start += segment {
			end := math.Min(start+segment, f.Width)

			w.path.Reset()
			w.path.MoveTo(start, w.y(f, line, start))
			for x := start + waveStep; x <= end; x += waveStep {
				w.path.LineTo(x, w.y(f, line, x))
			}
			f.Canvas.StrokePath(&w.path, 1, waveGradient((start+end)/2/f.Width))
		}
	}
}

// waveGradient — край → центр → край.
func waveGradient(t float64) color.NRGBA {
	return render.LerpColor(waveEdge, waveCentre, 1-math.Abs(2*t-1))
}
