// Package host models the environment a background runs in: the viewport,
// the pointer, a document of surface containers, and the cooperative frame
// scheduler. Front-ends (ebiten window, terminal, headless snapshot) feed
// input into a Host and call Step once per display refresh.
package host

import (
	"math"
	"time"

	"go-backdrop/internal/event"
	"go-backdrop/internal/surface"
)

// Viewport — размеры области отображения в логических пикселях.
type Viewport struct {
	Width, Height int
	PixelRatio    float64
}

// Host — окружение, в котором живут фоны.
type Host struct {
	Events   *event.Dispatcher
	Frames   *Scheduler
	Document *Document
	Surfaces surface.Provider

	viewport     Viewport
	pointerX     float64
	pointerY     float64
	pointerKnown bool
}

// New создаёт хост с заданным окном и поставщиком поверхностей.
func New(vp Viewport, surfaces surface.Provider) *Host {
	return &Host{
		Events:   event.NewDispatcher(),
		Frames:   NewScheduler(),
		Document: NewDocument(),
		Surfaces: surfaces,
		viewport: normalizeViewport(vp),
	}
}

func normalizeViewport(vp Viewport) Viewport {
	if vp.Width < 1 {
		vp.Width = 1
	}
	if vp.Height < 1 {
		vp.Height = 1
	}
	if vp.PixelRatio <= 0 || math.IsNaN(vp.PixelRatio) || math.IsInf(vp.PixelRatio, 0) {
		vp.PixelRatio = 1
	}
	return vp
}

// Viewport возвращает текущие размеры окна
func (h *Host) Viewport() Viewport {
	return h.viewport
}

// Resize меняет размер окна и рассылает ViewportResized, если что-то изменилось.
func (h *Host) Resize(width, height int, pixelRatio float64) {
	next := normalizeViewport(Viewport{Width: width, Height: height, PixelRatio: pixelRatio})
	if next == h.viewport {
		return
	}
	h.viewport = next
	h.Events.Dispatch(event.Event{
		Type: event.ViewportResized,
		Data: event.Resize{Width: next.Width, Height: next.Height, PixelRatio: next.PixelRatio},
	})
}

// MovePointer сообщает новую позицию указателя.
func (h *Host) MovePointer(x, y float64) {
	var dx, dy float64
	if h.pointerKnown {
		dx = x - h.pointerX
		dy = y - h.pointerY
	}
	h.pointerX, h.pointerY = x, y
	h.pointerKnown = true
	h.Events.Dispatch(event.Event{
		Type: event.PointerMoved,
		Data: event.PointerMove{X: x, Y: y, DX: dx, DY: dy},
	})
}

// Pointer возвращает последнюю известную позицию указателя.
func (h *Host) Pointer() (x, y float64, known bool) {
	return h.pointerX, h.pointerY, h.pointerKnown
}

// Step продвигает часы на dt, запускает таймеры, затем один кадр.
func (h *Host) Step(dt time.Duration) int {
	h.Frames.Advance(dt)
	return h.Frames.RunFrame()
}
