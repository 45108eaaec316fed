package effect

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-backdrop/internal/anim"
	"go-backdrop/internal/config"
	"go-backdrop/internal/event"
	"go-backdrop/internal/surface"
	"go-backdrop/internal/utils"
)

// Instance — общая реализация Effect поверх Renderer.
type Instance struct {
	id       string
	name     string
	env      Env
	log      *zap.Logger
	renderer Renderer
	style    Style

	surf   surface.Surface
	driver *anim.Driver
	subs   []*event.Subscription
	rng    *utils.PRNGService

	time         float64
	pointerX     float64
	pointerY     float64
	pointerKnown bool
	released     bool
}

// New собирает экземпляр: поверхность под окно, подписки, начальные точки,
// затем запуск цикла анимации.
func New(name string, env Env, r Renderer) (*Instance, error) {
	if env.Host == nil {
		return nil, fmt.Errorf("%w: %s: no host", ErrConstruction, name)
	}
	log := env.Logger
	if log == nil {
		log = zap.NewNop()
	}

	in := &Instance{
		id:       uuid.NewString(),
		name:     name,
		env:      env,
		renderer: r,
		style:    r.Style(),
		rng:      utils.NewPRNGService(utils.SeedFor(env.Seed, name)),
	}
	in.log = log.With(zap.String("effect", name), zap.String("id", in.id))

	vp := env.Host.Viewport()
	surf, err := env.Host.Surfaces.Acquire(surface.Spec{
		Kind:   in.style.Kind,
		Width:  vp.Width,
		Height: vp.Height,
		Scale:  vp.PixelRatio,
	})
	if err != nil {
		in.log.Error("Failed to acquire surface", zap.Stringer("kind", in.style.Kind), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", ErrConstruction, name, err)
	}
	in.surf = surf

	// паника при расстановке не должна оставлять висящие подписки
	defer func() {
		if p := recover(); p != nil {
			in.Release()
			panic(p)
		}
	}()

	in.pointerX, in.pointerY, in.pointerKnown = env.Host.Pointer()
	in.subs = append(in.subs,
		env.Host.Events.SubscribeFunc(event.ViewportResized, in.onResize),
		env.Host.Events.SubscribeFunc(event.PointerMoved, in.onPointer),
	)

	r.Seed(float64(vp.Width), float64(vp.Height), in.rng)

	in.driver = anim.NewDriver(env.Host.Frames, in.frame)
	in.driver.Start()

	in.log.Debug("Effect started",
		zap.Int("width", vp.Width),
		zap.Int("height", vp.Height),
		zap.Float64("pixel_ratio", vp.PixelRatio),
	)
	return in, nil
}

func (in *Instance) ID() string   { return in.id }
func (in *Instance) Name() string { return in.name }

// Surface возвращает поверхность эффекта.
func (in *Instance) Surface() surface.Surface { return in.surf }

// Renderer возвращает вариант эффекта.
func (in *Instance) Renderer() Renderer { return in.renderer }

// Time — накопленное время анимации.
func (in *Instance) Time() float64 { return in.time }

// Frames — число отрисованных кадров.
func (in *Instance) Frames() uint64 {
	if in.driver == nil {
		return 0
	}
	return in.driver.Frames()
}

func (in *Instance) Running() bool {
	return in.driver != nil && in.driver.Running()
}

// StopAnimation опускает флаг работы. Идемпотентна.
func (in *Instance) StopAnimation() {
	if in.driver != nil {
		in.driver.Stop()
	}
}

// Release освобождает всё, чем владеет экземпляр. Идемпотентна.
func (in *Instance) Release() {
	if in.released {
		return
	}
	in.released = true
	in.StopAnimation()
	for _, sub := range in.subs {
		sub.Cancel()
	}
	in.subs = nil
	if in.surf != nil {
		in.surf.Release()
	}
	in.log.Debug("Effect released", zap.Uint64("frames", in.Frames()))
}

// Released сообщает, вызывался ли Release.
func (in *Instance) Released() bool { return in.released }

func (in *Instance) onResize(e event.Event) {
	rs, ok := e.Data.(event.Resize)
	if !ok || in.released {
		return
	}
	if err := in.surf.Resize(rs.Width, rs.Height, rs.PixelRatio); err != nil {
		in.log.Warn("Failed to resize surface", zap.Int("width", rs.Width), zap.Int("height", rs.Height), zap.Error(err))
		return
	}
	in.renderer.Seed(float64(rs.Width), float64(rs.Height), in.rng)
}

func (in *Instance) onPointer(e event.Event) {
	pm, ok := e.Data.(event.PointerMove)
	if !ok || in.released {
		return
	}
	in.pointerX, in.pointerY, in.pointerKnown = pm.X, pm.Y, true
	if h, ok := in.renderer.(PointerHandler); ok {
		h.PointerMoved(pm.X, pm.Y, in.rng)
	}
}

// increment — прирост времени за кадр. По умолчанию постоянный;
// в режиме независимости от частоты кадров масштабируется на dt×60.
func (in *Instance) increment() float64 {
	inc := in.style.Increment
	if !in.env.FrameRateIndependent {
		return inc
	}
	dt := in.env.Host.Frames.LastDelta().Seconds()
	if dt <= 0 {
		return inc
	}
	if dt > config.MaxDeltaTime {
		dt = config.MaxDeltaTime
	}
	return inc * dt * 60
}

func (in *Instance) frame() {
	delta := in.increment()
	in.time += delta

	if in.style.HardClear {
		in.surf.Clear(in.style.Backdrop)
	} else {
		in.surf.Fade(in.style.Backdrop)
	}

	w, h := in.surf.Size()
	in.renderer.Step(&Frame{
		Canvas:       in.surf,
		Width:        float64(w),
		Height:       float64(h),
		Time:         in.time,
		Delta:        delta,
		Speed:        delta / in.style.Increment,
		PointerX:     in.pointerX,
		PointerY:     in.pointerY,
		PointerKnown: in.pointerKnown,
		Rand:         in.rng,
	})
}

// Variant оборачивает конструктор рендерера в Factory.
func Variant(name string, newRenderer func(config.EffectSettings) Renderer) Factory {
	return func(env Env) (Effect, error) {
		tuning := env.Tuning
		if tuning == (config.EffectSettings{}) {
			tuning = config.DefaultEffects()
		}
		tuning.Validate()
		env.Tuning = tuning
		inst, err := New(name, env, newRenderer(tuning))
		if err != nil {
			return nil, err
		}
		return inst, nil
	}
}
