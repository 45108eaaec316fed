// Package effect defines the background effect contract and the shared
// lifecycle (surface, listeners, animation loop) every effect variant runs on.
package effect

import (
	"errors"
	"image/color"

	"go.uber.org/zap"

	"go-backdrop/internal/config"
	"go-backdrop/internal/host"
	"go-backdrop/internal/surface"
	"go-backdrop/internal/utils"
)

// ErrConstruction wraps every failure to build an effect instance.
var ErrConstruction = errors.New("effect: construction failed")

// Effect — живой экземпляр фонового эффекта.
// Владеет одной поверхностью, подписками и циклом анимации.
type Effect interface {
	ID() string
	Name() string
	// StopAnimation опускает флаг работы. Уже запрошенный кадр ничего не рисует.
	StopAnimation()
	Running() bool
	Surface() surface.Surface
	// Release останавливает анимацию, снимает подписки и освобождает поверхность.
	Release()
}

// Env — всё, что эффект получает при создании.
type Env struct {
	Host                 *host.Host
	Logger               *zap.Logger
	Seed                 int64
	Tuning               config.EffectSettings
	FrameRateIndependent bool
}

// Factory создаёт экземпляр эффекта.
type Factory func(env Env) (Effect, error)

// Style — неизменяемые параметры отрисовки варианта.
type Style struct {
	Kind      surface.Kind
	Increment float64     // прирост времени за кадр
	Backdrop  color.NRGBA // заливка в начале кадра
	HardClear bool        // true — Clear, иначе полупрозрачный Fade
}

// Frame — состояние, передаваемое рендереру на каждом кадре.
type Frame struct {
	Canvas        surface.Canvas
	Width, Height float64
	Time          float64
	Delta         float64 // прирост времени в этом кадре
	Speed         float64 // множитель шага движения: 1 при постоянном приросте
	PointerX      float64
	PointerY      float64
	PointerKnown  bool
	Rand          *utils.PRNGService
}

// Renderer — вариант эффекта: генерация точек и отрисовка кадра.
type Renderer interface {
	Style() Style
	// Seed заново расставляет частицы под размер окна.
	Seed(width, height float64, rng *utils.PRNGService)
	Step(f *Frame)
}

// PointerHandler — рендереры, которым нужны сами события указателя
// (например, схема порождает импульсы при каждом движении).
type PointerHandler interface {
	PointerMoved(x, y float64, rng *utils.PRNGService)
}
