// internal/ui/help_panel.go
package ui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	panelMargin  = 40
	panelPadding = 20
	lineHeight   = 22
)

var (
	panelBgColor     = color.RGBA{R: 25, G: 35, B: 45, A: 230}
	panelBorderColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	panelTextColor   = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	panelActiveColor = color.RGBA{R: 0, G: 255, B: 150, A: 255}
)

// HelpPanel — панель со списком эффектов и клавишами
type HelpPanel struct {
	fontFace font.Face
}

func NewHelpPanel(fontFace font.Face) *HelpPanel {
	return &HelpPanel{fontFace: fontFace}
}

// Rect — прямоугольник панели для экрана заданного размера
func (p *HelpPanel) Rect(screenW, screenH, items int) image.Rectangle {
	h := panelPadding*2 + lineHeight*(items+3)
	top := (screenH - h) / 2
	if top < panelMargin {
		top = panelMargin
	}
	return image.Rect(panelMargin, top, screenW-panelMargin, top+h)
}

// Draw рисует панель; active < 0 — ни один эффект не активен
func (p *HelpPanel) Draw(screen *ebiten.Image, names []string, active int) {
	b := screen.Bounds()
	panelRect := p.Rect(b.Dx(), b.Dy(), len(names))

	vector.DrawFilledRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), panelBgColor, true)
	vector.StrokeRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), 2, panelBorderColor, true)

	x := panelRect.Min.X + panelPadding
	y := panelRect.Min.Y + panelPadding + lineHeight/2
	text.Draw(screen, "Backgrounds", p.fontFace, x, y, panelTextColor)
	y += lineHeight

	for i, name := range names {
		y += lineHeight
		c := panelTextColor
		marker := " "
		if i == active {
			c = panelActiveColor
			marker = ">"
		}
		text.Draw(screen, fmt.Sprintf("%s %d  %s", marker, i+1, name), p.fontFace, x, y, c)
	}

	y += lineHeight
	text.Draw(screen, "digit: switch   ←/→: cycle   H: close   Esc: quit", p.fontFace, x, y, panelTextColor)
}
