// internal/state/backdrop_state.go
package state

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"go-backdrop/internal/background"
	"go-backdrop/internal/config"
	"go-backdrop/internal/host"
	"go-backdrop/internal/surface"
	"go-backdrop/internal/ui"
	"go-backdrop/pkg/render"
)

var _ State = (*BackdropState)(nil)

var switchKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// BackdropState — основной экран: фон, курсор-ракета и строка подсказки
type BackdropState struct {
	sm        *StateMachine
	host      *host.Host
	manager   *background.Manager
	overlay   *render.Overlay
	indicator *ui.StateIndicator
	log       *zap.Logger

	lastCursorX int
	lastCursorY int
	lastIndex   int
}

func NewBackdropState(sm *StateMachine, h *host.Host, m *background.Manager, overlay *render.Overlay, logger *zap.Logger) *BackdropState {
	return &BackdropState{
		sm:          sm,
		host:        h,
		manager:     m,
		overlay:     overlay,
		indicator:   ui.NewStateIndicator(float32(config.ScreenWidth-config.IndicatorOffsetX), float32(config.IndicatorOffsetX), config.IndicatorRadius),
		log:         logger,
		lastCursorX: -1,
		lastCursorY: -1,
		lastIndex:   -1,
	}
}

func (b *BackdropState) Enter() {}

func (b *BackdropState) Update(deltaTime float64) error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) || inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		b.sm.SetState(NewHelpState(b.sm, b))
		return nil
	}
	b.handleSwitchKeys()
	b.advance(deltaTime)
	return nil
}

// handleSwitchKeys — цифры выбирают фон, стрелки листают по кругу
func (b *BackdropState) handleSwitchKeys() bool {
	n := b.manager.Registry().Len()
	for i, key := range switchKeys {
		if i >= n {
			break
		}
		if inpututil.IsKeyJustPressed(key) {
			b.report(b.manager.SwitchBackground(i))
			return true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		b.report(b.manager.Next())
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		b.report(b.manager.Prev())
		return true
	}
	return false
}

// report — менеджер сам логирует ошибку, окно остаётся живым
func (b *BackdropState) report(err error) {
	if err != nil {
		b.log.Debug("Switch rejected, keeping current state", zap.Error(err))
	}
}

// advance передаёт указатель хосту и прокручивает один кадр
func (b *BackdropState) advance(deltaTime float64) {
	x, y := ebiten.CursorPosition()
	if x != b.lastCursorX || y != b.lastCursorY {
		b.lastCursorX, b.lastCursorY = x, y
		b.host.MovePointer(float64(x), float64(y))
	}

	b.host.Step(time.Duration(deltaTime * float64(time.Second)))

	if idx, ok := b.manager.ActiveIndex(); ok && idx != b.lastIndex {
		b.lastIndex = idx
		b.indicator.Flash()
	}
}

func (b *BackdropState) Draw(screen *ebiten.Image) {
	b.drawBackground(screen)
	b.drawCursor(screen)
	b.drawHUD(screen)
}

func (b *BackdropState) drawBackground(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	for _, s := range b.manager.Container().Children() {
		es, ok := s.(*surface.EbitenSurface)
		if !ok || es.Released() {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(1/es.Scale(), 1/es.Scale())
		screen.DrawImage(es.EbitenImage(), op)
	}
}

func (b *BackdropState) drawCursor(screen *ebiten.Image) {
	c := b.manager.Cursor()
	if c == nil {
		return
	}
	if _, _, visible := c.Position(); !visible {
		return
	}
	outline := c.Outline()
	pts := make([][2]float64, len(outline))
	for i, p := range outline {
		pts[i] = [2]float64{p.X, p.Y}
	}
	b.overlay.Polygon(screen, pts, config.CursorFill, config.CursorStroke, config.CursorStrokeWidth)
}

func (b *BackdropState) drawHUD(screen *ebiten.Image) {
	name := b.manager.ActiveName()
	if name == "" {
		name = "-"
	}
	idx, ok := b.manager.ActiveIndex()
	n := b.manager.Registry().Len()
	hud := fmt.Sprintf("%d/%d %s   H help   %.0f FPS", idx+1, n, name, ebiten.ActualFPS())
	b.overlay.Label(screen, hud, 12, 20, config.HUDTextColor)

	b.indicator.X = float32(screen.Bounds().Dx() - config.IndicatorOffsetX)
	stateColor := config.IdleIndicatorColor
	if ok {
		stateColor = render.HSLA(float64(idx)*360/float64(n), 0.8, 0.55, 1)
	}
	b.indicator.Draw(screen, stateColor)
}

func (b *BackdropState) Exit() {}
