// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// StateIndicator — кружок в углу HUD, вспыхивает при смене фона
type StateIndicator struct {
	X, Y       float32
	Radius     float32
	LastSwitch time.Time
}

func NewStateIndicator(x, y, radius float32) *StateIndicator {
	return &StateIndicator{
		X:      x,
		Y:      y,
		Radius: radius,
	}
}

// Flash запускает вспышку
func (i *StateIndicator) Flash() {
	i.LastSwitch = time.Now()
}

// CurrentRadius — радиус с учётом затухающей вспышки
func (i *StateIndicator) CurrentRadius(now time.Time) float32 {
	elapsed := now.Sub(i.LastSwitch).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	return i.Radius * float32(scale)
}

// Draw отрисовывает индикатор
func (i *StateIndicator) Draw(screen *ebiten.Image, stateColor color.Color) {
	r := i.CurrentRadius(time.Now())
	vector.DrawFilledCircle(screen, i.X, i.Y, r, stateColor, true)
	vector.StrokeCircle(screen, i.X, i.Y, r, 1, color.White, true)
}
