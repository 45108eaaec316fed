package background

import (
	"math"

	"go-backdrop/internal/anim"
	"go-backdrop/internal/config"
	"go-backdrop/internal/event"
	"go-backdrop/internal/host"
	"go-backdrop/internal/utils"
)

// Point — вершина контура в логических пикселях.
type Point struct {
	X, Y float64
}

// контур ракеты носом вверх, центр в (0, 0): M20 5 L35 35 L20 25 L5 35 Z
var rocketOutline = [4]Point{{0, -15}, {15, 15}, {0, 5}, {-15, 15}}

// Cursor — курсор-ракета. Следует за указателем и плавно поворачивается
// по направлению движения. Живёт независимо от переключений фона.
type Cursor struct {
	sub    *event.Subscription
	driver *anim.Driver

	x, y    float64
	visible bool
	angle   float64
	target  float64
	easing  float64
	size    float64
}

// NewCursor подписывает курсор на движения указателя и запускает его анимацию.
func NewCursor(h *host.Host) *Cursor {
	c := &Cursor{easing: config.CursorEasing, size: config.CursorSize}
	if x, y, ok := h.Pointer(); ok {
		c.x, c.y, c.visible = x, y, true
	}
	c.sub = h.Events.SubscribeFunc(event.PointerMoved, c.onPointer)
	c.driver = anim.NewDriver(h.Frames, c.step)
	c.driver.Start()
	return c
}

func (c *Cursor) onPointer(e event.Event) {
	pm, ok := e.Data.(event.PointerMove)
	if !ok {
		return
	}
	c.x, c.y, c.visible = pm.X, pm.Y, true
	if pm.DX != 0 || pm.DY != 0 {
		c.target = math.Atan2(pm.DY, pm.DX)
	}
}

func (c *Cursor) step() {
	c.angle = utils.LerpAngle(c.angle, c.target, c.easing)
}

// Position возвращает позицию курсора; visible=false, пока указатель не двигался.
func (c *Cursor) Position() (x, y float64, visible bool) {
	return c.x, c.y, c.visible
}

// Angle — текущий угол носа ракеты (радианы, 0 — вправо).
func (c *Cursor) Angle() float64 { return c.angle }

// Target — угол, к которому курсор поворачивается.
func (c *Cursor) Target() float64 { return c.target }

func (c *Cursor) Running() bool { return c.driver.Running() }

// Stop снимает подписку и останавливает анимацию.
func (c *Cursor) Stop() {
	c.sub.Cancel()
	c.driver.Stop()
}

// Outline возвращает контур ракеты, повёрнутый по Angle и сдвинутый в позицию курсора.
func (c *Cursor) Outline() [4]Point {
	// контур смотрит вверх (-π/2), поворачиваем на разницу
	sin, cos := math.Sincos(c.angle + math.Pi/2)
	k := c.size / 30
	var out [4]Point
	for i, p := range rocketOutline {
		px, py := p.X*k, p.Y*k
		out[i] = Point{
			X: c.x + px*cos - py*sin,
			Y: c.y + px*sin + py*cos,
		}
	}
	return out
}
