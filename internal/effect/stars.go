package effect

import (
	"image/color"
	"math"

	"go-backdrop/internal/config"
	"go-backdrop/internal/surface"
	"go-backdrop/internal/utils"
)

const (
	starFOV       = math.Pi / 4
	starNear      = 1.0
	starPointSize = 3.0
	starFadeDist  = 1000.0 // дальше этого звезда не видна
	starParallax  = 0.1
)

type star struct {
	x, y, z float64
	col     color.NRGBA
}

// Stars — звёздное поле: куб точек вращается вокруг оси Y,
// камера смещается вслед за указателем.
type Stars struct {
	count int
	stars []star
}

func NewStars(t config.EffectSettings) Renderer {
	return &Stars{count: t.StarCount}
}

func (s *Stars) Style() Style {
	return Style{
		Kind:      surface.KindAccelerated,
		Increment: 0.00083,
		Backdrop:  config.StarClearColor,
		HardClear: true,
	}
}

func (s *Stars) Seed(_, _ float64, rng *utils.PRNGService) {
	s.stars = s.stars[:0]
	for i := 0; i < s.count; i++ {
		s.stars = append(s.stars, star{
			x:   rng.Centered(config.StarSpread),
			y:   rng.Centered(config.StarSpread),
			z:   rng.Centered(config.StarSpread),
			col: starColor(rng),
		})
	}
}

// starColor: 70% бело-голубые, 15% жёлтые, 15% красные.
func starColor(rng *utils.PRNGService) color.NRGBA {
	c8 := func(v float64) uint8 { return uint8(math.Round(v * 255)) }
	switch p := rng.Float64(); {
	case p < 0.7:
		r := 0.8 + rng.Float64()*0.2
		g := 0.8 + rng.Float64()*0.2
		b := 0.8 + rng.Float64()*0.2
		return color.NRGBA{R: c8(r), G: c8(g), B: c8(b), A: 255}
	case p < 0.85:
		return color.NRGBA{R: 255, G: c8(0.8 + rng.Float64()*0.2), B: c8(0.3), A: 255}
	default:
		return color.NRGBA{R: 255, G: c8(0.3), B: c8(0.3), A: 255}
	}
}

func (s *Stars) Step(f *Frame) {
	sin, cos := math.Sincos(f.Time)

	var camX, camY float64
	if f.PointerKnown {
		camX = (f.PointerX - f.Width/2) * starParallax
		camY = (f.PointerY - f.Height/2) * starParallax
	}

	focal := 1 / math.Tan(starFOV/2)
	aspect := f.Width / f.Height

	for i := range s.stars {
		st := &s.stars[i]

		// вид: поворот вокруг Y, затем сдвиг камеры
		vx := cos*st.x - sin*st.z + camX
		vy := st.y - camY
		vz := sin*st.x + cos*st.z + config.StarCameraZ

		depth := -vz
		if depth < starNear || depth > config.StarFieldFar {
			continue
		}
		dist := math.Sqrt(vx*vx + vy*vy + vz*vz)
		alpha := 1 - dist/starFadeDist
		if alpha <= 0 {
			continue
		}

		ndcX := focal / aspect * vx / depth
		ndcY := focal * vy / depth
		if ndcX < -1 || ndcX > 1 || ndcY < -1 || ndcY > 1 {
			continue
		}
		sx := (ndcX + 1) / 2 * f.Width
		sy := (1 - ndcY) / 2 * f.Height
		r := starPointSize * (starFadeDist / dist) / 2

		c := st.col
		c.A = uint8(alpha * 255)
		f.Canvas.FillCircle(sx, sy, r, c)
	}
}
