package effect

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-backdrop/internal/config"
	"go-backdrop/internal/event"
	"go-backdrop/internal/host"
	"go-backdrop/internal/surface"
	"go-backdrop/internal/utils"
)

var smallTuning = config.EffectSettings{
	StarCount:     200,
	FireflyCount:  8,
	AuroraCurves:  2,
	WaveLines:     2,
	StrandSpacing: 30,
	CircuitGrid:   50,
	NeonGridSize:  20,
}

var variants = map[string]func(config.EffectSettings) Renderer{
	"stars":     NewStars,
	"dna":       NewDNA,
	"waves":     NewWaves,
	"circuit":   NewCircuit,
	"aurora":    NewAurora,
	"fireflies": NewFireflies,
	"neongrid":  NewNeonGrid,
}

func newTestHost(w, h int) *host.Host {
	return host.New(host.Viewport{Width: w, Height: h, PixelRatio: 1}, surface.SoftwareProvider{Accelerated: true})
}

func newInstance(t *testing.T, h *host.Host, name string) *Instance {
	t.Helper()
	eff, err := Variant(name, variants[name])(Env{Host: h, Seed: 42, Tuning: smallTuning})
	require.NoError(t, err)
	inst, ok := eff.(*Instance)
	require.True(t, ok)
	return inst
}

func TestInstanceLifecycle(t *testing.T) {
	h := newTestHost(96, 64)
	inst := newInstance(t, h, "dna")

	assert.NotEmpty(t, inst.ID())
	assert.Equal(t, "dna", inst.Name())
	assert.True(t, inst.Running())
	assert.Equal(t, 1, h.Events.Count(event.PointerMoved))
	assert.Equal(t, 1, h.Events.Count(event.ViewportResized))
	assert.Equal(t, 1, h.Frames.PendingFrames())

	for i := 0; i < 5; i++ {
		h.Step(config.FrameTime)
	}
	assert.Equal(t, uint64(5), inst.Frames())
	assert.InDelta(t, 0.05, inst.Time(), 1e-9)

	inst.Release()
	assert.False(t, inst.Running())
	assert.True(t, inst.Surface().Released())
	assert.Zero(t, h.Events.Count(event.PointerMoved))
	assert.Zero(t, h.Events.Count(event.ViewportResized))

	// уже запрошенный кадр выполняется, но ничего не рисует
	h.Step(config.FrameTime)
	assert.Equal(t, uint64(5), inst.Frames())
	assert.Zero(t, h.Frames.PendingFrames())

	inst.Release()
}

func TestStopAnimationIsIdempotent(t *testing.T) {
	h := newTestHost(64, 48)
	inst := newInstance(t, h, "waves")

	h.Step(config.FrameTime)
	inst.StopAnimation()
	inst.StopAnimation()
	h.Step(config.FrameTime)
	h.Step(config.FrameTime)

	assert.False(t, inst.Running())
	assert.Equal(t, uint64(1), inst.Frames())
	assert.False(t, inst.Surface().Released())
	inst.Release()
}

func TestUnsupportedBackendFailsConstruction(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := host.New(host.Viewport{Width: 64, Height: 48}, surface.SoftwareProvider{})

	eff, err := Variant("stars", NewStars)(Env{Host: h, Logger: zap.New(core)})
	require.Error(t, err)
	assert.Nil(t, eff)
	assert.True(t, errors.Is(err, ErrConstruction))
	assert.True(t, errors.Is(err, surface.ErrUnsupportedBackend))

	assert.Zero(t, h.Events.Count(event.PointerMoved))
	assert.Zero(t, h.Frames.PendingFrames())
	assert.Equal(t, 1, logs.FilterMessage("Failed to acquire surface").Len())
}

func TestConstructionWithoutHost(t *testing.T) {
	_, err := Variant("dna", NewDNA)(Env{})
	assert.ErrorIs(t, err, ErrConstruction)
}

type panicky struct{}

func (panicky) Style() Style {
	return Style{Kind: surface.Kind2D, Increment: 0.01, Backdrop: config.FadeColor}
}
func (panicky) Seed(float64, float64, *utils.PRNGService) { panic("seed") }
func (panicky) Step(*Frame)                             {}

func TestPanicDuringSeedReleasesEverything(t *testing.T) {
	var acquired surface.Surface
	h := host.New(host.Viewport{Width: 32, Height: 32}, surface.ProviderFunc(func(spec surface.Spec) (surface.Surface, error) {
		s, err := surface.NewSoftware(spec)
		acquired = s
		return s, err
	}))

	assert.Panics(t, func() { _, _ = New("panicky", Env{Host: h}, panicky{}) })
	require.NotNil(t, acquired)
	assert.True(t, acquired.Released())
	assert.Zero(t, h.Events.Count(event.PointerMoved))
	assert.Zero(t, h.Events.Count(event.ViewportResized))
}

func TestEveryVariantRuns(t *testing.T) {
	for name := range variants {
		t.Run(name, func(t *testing.T) {
			h := newTestHost(160, 120)
			inst := newInstance(t, h, name)

			h.Step(config.FrameTime)
			h.MovePointer(80, 60)
			h.Step(config.FrameTime)
			h.MovePointer(90, 64)
			h.Resize(120, 100, 2)
			h.Step(config.FrameTime)

			assert.Equal(t, uint64(3), inst.Frames())
			w, hh := inst.Surface().PixelSize()
			assert.Equal(t, 240, w)
			assert.Equal(t, 200, hh)

			sw, ok := inst.Surface().(*surface.SoftwareSurface)
			require.True(t, ok)
			assert.NoError(t, sw.Err())

			inst.Release()
			assert.Zero(t, h.Events.Count(event.PointerMoved))
		})
	}
}

func TestResizeReseeds(t *testing.T) {
	h := newTestHost(90, 60)
	inst := newInstance(t, h, "dna")
	dna := inst.Renderer().(*DNA)
	assert.Len(t, dna.strands, 3)

	h.Resize(300, 60, 1)
	assert.Len(t, dna.strands, 10)
	inst.Release()
}

func TestFrameRateIndependentIncrement(t *testing.T) {
	h := newTestHost(64, 48)
	eff, err := Variant("dna", NewDNA)(Env{Host: h, Tuning: smallTuning, FrameRateIndependent: true})
	require.NoError(t, err)
	inst := eff.(*Instance)

	h.Step(time.Second / 30)
	assert.InDelta(t, 0.02, inst.Time(), 1e-9)

	// шаг ограничен MaxDeltaTime
	h.Step(time.Second)
	assert.InDelta(t, 0.02+0.01*config.MaxDeltaTime*60, inst.Time(), 1e-9)
	inst.Release()
}

func TestCircuitPulses(t *testing.T) {
	h := newTestHost(400, 300)
	inst := newInstance(t, h, "circuit")
	c := inst.Renderer().(*Circuit)
	require.NotZero(t, c.Nodes())

	far := c.nodes[0]
	h.MovePointer(far.x+500, far.y+500)
	assert.Zero(t, c.Pulses())

	h.MovePointer(far.x, far.y)
	assert.Equal(t, 1, c.Pulses())

	// скорость не меньше 0.02 — за 60 кадров импульс точно догорает
	for i := 0; i < 60; i++ {
		h.Step(config.FrameTime)
	}
	assert.Zero(t, c.Pulses())
	inst.Release()
}

func TestCircuitPulseQueueIsBounded(t *testing.T) {
	c := NewCircuit(smallTuning).(*Circuit)
	rng := utils.NewPRNGService(1)
	c.Seed(400, 300, rng)
	require.NotZero(t, c.Nodes())

	n := c.nodes[0]
	for i := 0; i < config.MaxPulses+10; i++ {
		c.PointerMoved(n.x, n.y, rng)
	}
	assert.Equal(t, config.MaxPulses, c.Pulses())
}

func TestFirefliesFleePointer(t *testing.T) {
	ff := NewFireflies(smallTuning).(*Fireflies)
	ff.Seed(200, 200, utils.NewPRNGService(3))
	ff.flies[0] = firefly{x: 100, y: 100, speed: 1, size: 1}

	canvas, err := surface.NewSoftware(surface.Spec{Width: 200, Height: 200})
	require.NoError(t, err)
	defer canvas.Release()

	ff.Step(&Frame{Canvas: canvas, Width: 200, Height: 200, Speed: 1, PointerX: 150, PointerY: 100, PointerKnown: true})
	// указатель справа — светлячок разворачивается влево
	assert.InDelta(t, 3.14159, ff.flies[0].angle, 1e-3)
}
