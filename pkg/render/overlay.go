// pkg/render/overlay.go
package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Overlay рисует поверх фона: контур курсора и строку подсказки.
type Overlay struct {
	fillImg  *ebiten.Image
	fillVs   []ebiten.Vertex
	fillIs   []uint16
	strokeVs []ebiten.Vertex
	strokeIs []uint16
	face     font.Face
}

// NewOverlay создаёт оверлей со встроенным шрифтом Go Regular.
// Если шрифт не разобрался, используется растровый basicfont.
func NewOverlay(fontSize float64) (*Overlay, error) {
	fillImg := ebiten.NewImage(1, 1)
	fillImg.Fill(color.White)

	o := &Overlay{
		fillImg:  fillImg,
		fillVs:   make([]ebiten.Vertex, 0, 16),
		fillIs:   make([]uint16, 0, 32),
		strokeVs: make([]ebiten.Vertex, 0, 64),
		strokeIs: make([]uint16, 0, 128),
		face:     basicfont.Face7x13,
	}

	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return o, fmt.Errorf("failed to parse HUD font: %w", err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return o, fmt.Errorf("failed to create HUD font face: %w", err)
	}
	o.face = face
	return o, nil
}

// Face — шрифт подписей
func (o *Overlay) Face() font.Face { return o.face }

// Polygon заливает замкнутый контур fill и обводит его stroke.
func (o *Overlay) Polygon(target *ebiten.Image, pts [][2]float64, fill, stroke color.NRGBA, strokeWidth float64) {
	if len(pts) < 3 {
		return
	}
	path := vector.Path{}
	for i, p := range pts {
		if i == 0 {
			path.MoveTo(float32(p[0]), float32(p[1]))
		} else {
			path.LineTo(float32(p[0]), float32(p[1]))
		}
	}
	path.Close()

	o.fillVs, o.fillIs = path.AppendVerticesAndIndicesForFilling(o.fillVs[:0], o.fillIs[:0])
	paint(o.fillVs, fill)
	target.DrawTriangles(o.fillVs, o.fillIs, o.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})

	if strokeWidth <= 0 {
		return
	}
	o.strokeVs, o.strokeIs = path.AppendVerticesAndIndicesForStroke(o.strokeVs[:0], o.strokeIs[:0], &vector.StrokeOptions{
		Width:    float32(strokeWidth),
		LineJoin: vector.LineJoinMiter,
	})
	paint(o.strokeVs, stroke)
	target.DrawTriangles(o.strokeVs, o.strokeIs, o.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

// Label выводит строку; (x, y) — базовая линия первого символа.
func (o *Overlay) Label(target *ebiten.Image, s string, x, y int, c color.Color) {
	text.Draw(target, s, o.face, x, y, c)
}

func paint(vs []ebiten.Vertex, c color.NRGBA) {
	// ebiten ждёт премультиплицированные цвета в вершинах
	a := float32(c.A) / 255
	for i := range vs {
		vs[i].ColorR = float32(c.R) / 255 * a
		vs[i].ColorG = float32(c.G) / 255 * a
		vs[i].ColorB = float32(c.B) / 255 * a
		vs[i].ColorA = a
	}
}
