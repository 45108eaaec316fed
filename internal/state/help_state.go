// internal/state/help_state.go
package state

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-backdrop/internal/ui"
)

// Убеждаемся, что HelpState соответствует интерфейсу State
var _ State = (*HelpState)(nil)

var dimColor = color.RGBA{0, 0, 0, 128}

// HelpState — список эффектов поверх фона. Фон продолжает анимироваться.
type HelpState struct {
	stateMachine  *StateMachine
	previousState *BackdropState
	panel         *ui.HelpPanel
}

func NewHelpState(sm *StateMachine, prev *BackdropState) *HelpState {
	return &HelpState{
		stateMachine:  sm,
		previousState: prev,
		panel:         ui.NewHelpPanel(prev.overlay.Face()),
	}
}

func (s *HelpState) Enter() {}

func (s *HelpState) Update(deltaTime float64) error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	closeHelp := inpututil.IsKeyJustPressed(ebiten.KeyH) || inpututil.IsKeyJustPressed(ebiten.KeyF1)

	// выбор фона из списка тоже закрывает справку
	if s.previousState.handleSwitchKeys() {
		closeHelp = true
	}
	s.previousState.advance(deltaTime)

	if closeHelp {
		s.stateMachine.SetState(s.previousState)
	}
	return nil
}

func (s *HelpState) Draw(screen *ebiten.Image) {
	s.previousState.drawBackground(screen)

	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), dimColor, false)

	m := s.previousState.manager
	active, ok := m.ActiveIndex()
	if !ok {
		active = -1
	}
	s.panel.Draw(screen, m.Registry().Names(), active)
	s.previousState.drawCursor(screen)
}

func (s *HelpState) Exit() {}
