package background

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-backdrop/internal/config"
	"go-backdrop/internal/effect"
	"go-backdrop/internal/event"
	"go-backdrop/internal/host"
	"go-backdrop/internal/registry"
	"go-backdrop/internal/surface"
)

type fakeEffect struct {
	name     string
	surf     surface.Surface
	running  bool
	stops    int
	releases int
}

func (f *fakeEffect) ID() string               { return "fake-" + f.name }
func (f *fakeEffect) Name() string             { return f.name }
func (f *fakeEffect) Running() bool            { return f.running }
func (f *fakeEffect) Surface() surface.Surface { return f.surf }

func (f *fakeEffect) StopAnimation() {
	f.stops++
	f.running = false
}

func (f *fakeEffect) Release() {
	f.releases++
	f.running = false
	f.surf.Release()
}

type tracker struct {
	built []*fakeEffect
}

func (tr *tracker) factory(name string) effect.Factory {
	return func(env effect.Env) (effect.Effect, error) {
		s, err := env.Host.Surfaces.Acquire(surface.Spec{Kind: surface.Kind2D, Width: 8, Height: 8, Scale: 1})
		if err != nil {
			return nil, err
		}
		fe := &fakeEffect{name: name, surf: s, running: true}
		tr.built = append(tr.built, fe)
		return fe, nil
	}
}

func (tr *tracker) last() *fakeEffect {
	return tr.built[len(tr.built)-1]
}

const (
	idxA = iota
	idxB
	idxC
	idxFail
	idxPanic
)

func newFixture(t *testing.T, opts ...Option) (*host.Host, *Manager, *tracker, *observer.ObservedLogs) {
	t.Helper()
	tr := &tracker{}
	reg := registry.New(
		registry.Descriptor{Name: "a", New: tr.factory("a")},
		registry.Descriptor{Name: "b", New: tr.factory("b")},
		registry.Descriptor{Name: "c", New: tr.factory("c")},
		registry.Descriptor{Name: "fail", New: func(effect.Env) (effect.Effect, error) {
			return nil, errors.New("no context")
		}},
		registry.Descriptor{Name: "panic", New: func(effect.Env) (effect.Effect, error) {
			panic("boom")
		}},
	)
	core, logs := observer.New(zapcore.DebugLevel)
	h := host.New(host.Viewport{Width: 64, Height: 48}, surface.SoftwareProvider{})
	opts = append([]Option{WithLogger(zap.New(core))}, opts...)
	return h, New(h, reg, opts...), tr, logs
}

func children(m *Manager) int { return m.Container().Len() }

func TestInitialSwitchAfterDelay(t *testing.T) {
	h, m, tr, _ := newFixture(t)

	assert.Equal(t, Idle, m.State())
	assert.Equal(t, 1, h.Document.CountByID(config.ContainerID))
	assert.Zero(t, children(m))

	h.Step(50 * time.Millisecond)
	assert.Equal(t, Idle, m.State())

	h.Step(60 * time.Millisecond)
	idx, ok := m.ActiveIndex()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, children(m))
	assert.Equal(t, "a", m.ActiveName())

	require.NoError(t, m.SwitchBackground(idxC))
	assert.Equal(t, 1, children(m))
	assert.True(t, m.Container().Contains(tr.last().surf))
	assert.Len(t, tr.built, 2)

	require.NoError(t, m.SwitchBackground(idxC))
	assert.Len(t, tr.built, 2)
}

func TestSameIndexIsNoop(t *testing.T) {
	_, m, tr, _ := newFixture(t)
	require.NoError(t, m.SwitchBackground(idxB))
	before := m.Stats()
	active := tr.last()

	require.NoError(t, m.SwitchBackground(idxB))

	assert.Equal(t, before, m.Stats())
	assert.Equal(t, 1, children(m))
	assert.Zero(t, active.stops)
	assert.Zero(t, active.releases)
	assert.Len(t, tr.built, 1)
}

func TestSwitchTearsDownPrevious(t *testing.T) {
	_, m, tr, _ := newFixture(t)
	require.NoError(t, m.SwitchBackground(idxA))
	old := tr.last()

	require.NoError(t, m.SwitchBackground(idxB))
	cur := tr.last()

	assert.Equal(t, 1, old.stops)
	assert.Equal(t, 1, old.releases)
	assert.True(t, old.surf.Released())
	assert.False(t, m.Container().Contains(old.surf))

	assert.Equal(t, []surface.Surface{cur.surf}, m.Container().Children())
	idx, _ := m.ActiveIndex()
	assert.Equal(t, idxB, idx)
	assert.Same(t, cur, m.Active())
}

func TestUnknownIndexChangesNothing(t *testing.T) {
	_, m, tr, logs := newFixture(t)
	require.NoError(t, m.SwitchBackground(idxA))
	before := m.Stats()

	for _, i := range []int{-1, 5, 42} {
		err := m.SwitchBackground(i)
		assert.ErrorIs(t, err, ErrUnknownEffect)
		assert.ErrorIs(t, err, registry.ErrIndexOutOfRange)
	}

	assert.Equal(t, before, m.Stats())
	idx, ok := m.ActiveIndex()
	assert.True(t, ok)
	assert.Equal(t, idxA, idx)
	assert.Equal(t, 1, children(m))
	assert.Zero(t, tr.last().stops)
	assert.Equal(t, 3, logs.FilterMessage("No effect found at index").Len())
}

func TestNeverMoreThanOneChild(t *testing.T) {
	_, m, tr, _ := newFixture(t)
	seq := []int{idxA, idxB, idxB, idxC, idxFail, idxA, 9, idxPanic, idxC, idxB, idxA, idxA}
	for _, i := range seq {
		_ = m.SwitchBackground(i)
		assert.LessOrEqual(t, children(m), 1)
	}
	// все, кроме активного, освобождены ровно один раз
	for _, fe := range tr.built[:len(tr.built)-1] {
		assert.Equal(t, 1, fe.releases)
	}
	assert.Zero(t, tr.last().releases)
}

func TestFailingConstructionDegradesToIdle(t *testing.T) {
	for _, tc := range []struct {
		name  string
		index int
	}{
		{"error", idxFail},
		{"panic", idxPanic},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, m, tr, logs := newFixture(t)
			require.NoError(t, m.SwitchBackground(idxA))
			prev := tr.last()

			err := m.SwitchBackground(tc.index)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConstruction)

			assert.Equal(t, Idle, m.State())
			_, ok := m.ActiveIndex()
			assert.False(t, ok)
			assert.Zero(t, children(m))
			assert.Equal(t, 1, prev.releases)
			assert.Equal(t, 1, m.Stats().Failures)
			assert.Equal(t, 1, logs.FilterMessage("Error creating effect").Len())

			// менеджер жив и переключается дальше
			require.NoError(t, m.SwitchBackground(idxB))
			assert.Equal(t, 1, children(m))
		})
	}
}

func TestFailedIndexCanBeRetried(t *testing.T) {
	_, m, tr, _ := newFixture(t)
	require.NoError(t, m.SwitchBackground(idxA))
	require.Error(t, m.SwitchBackground(idxFail))

	// после неудачи прежний индекс не считается активным
	require.NoError(t, m.SwitchBackground(idxA))
	assert.Len(t, tr.built, 2)
}

func TestReentrantSwitchIsRejected(t *testing.T) {
	var inner error
	var m *Manager
	h := host.New(host.Viewport{Width: 16, Height: 16}, surface.SoftwareProvider{})
	tr := &tracker{}
	reg := registry.New(
		registry.Descriptor{Name: "a", New: tr.factory("a")},
		registry.Descriptor{Name: "nested", New: func(env effect.Env) (effect.Effect, error) {
			inner = m.SwitchBackground(0)
			return tr.factory("nested")(env)
		}},
	)
	m = New(h, reg, WithCursor(false))

	require.NoError(t, m.SwitchBackground(1))
	assert.ErrorIs(t, inner, ErrReentrantSwitch)
	idx, _ := m.ActiveIndex()
	assert.Equal(t, 1, idx)
	assert.Equal(t, 1, children(m))
}

func TestDisposeDuringSwitch(t *testing.T) {
	var m *Manager
	h := host.New(host.Viewport{Width: 16, Height: 16}, surface.SoftwareProvider{})
	tr := &tracker{}
	reg := registry.New(
		registry.Descriptor{Name: "a", New: tr.factory("a")},
		registry.Descriptor{Name: "disposing", New: func(env effect.Env) (effect.Effect, error) {
			m.Dispose()
			return tr.factory("disposing")(env)
		}},
	)
	m = New(h, reg, WithCursor(false))
	require.NoError(t, m.SwitchBackground(0))
	first := tr.last()

	assert.ErrorIs(t, m.SwitchBackground(1), ErrDisposed)

	built := tr.last()
	require.NotSame(t, first, built)
	assert.Equal(t, 1, first.releases)
	assert.Equal(t, 1, built.releases)
	assert.False(t, built.Running())
	assert.True(t, built.surf.Released())
	assert.True(t, m.Disposed())
	assert.Equal(t, Idle, m.State())
	assert.Nil(t, m.Active())
	assert.Zero(t, children(m))
	assert.Zero(t, h.Document.CountByID(config.ContainerID))
}

func TestNewReplacesStaleContainers(t *testing.T) {
	h := host.New(host.Viewport{Width: 16, Height: 16}, surface.SoftwareProvider{})
	stale1 := h.Document.Create(config.ContainerID)
	stale2 := h.Document.Create(config.ContainerID)
	h.Document.Create("content")

	m := New(h, registry.New())

	assert.Equal(t, 1, h.Document.CountByID(config.ContainerID))
	assert.False(t, stale1.Attached())
	assert.False(t, stale2.Attached())
	assert.Same(t, m.Container(), h.Document.ElementByID(config.ContainerID))
	assert.NotNil(t, h.Document.ElementByID("content"))
}

func TestDisposeBeforeInitialSwitch(t *testing.T) {
	h, m, tr, _ := newFixture(t)
	m.Dispose()

	h.Step(time.Second)
	assert.Empty(t, tr.built)
	assert.Zero(t, h.Frames.PendingTimers())
	assert.Zero(t, h.Document.CountByID(config.ContainerID))
	assert.ErrorIs(t, m.SwitchBackground(idxA), ErrDisposed)
}

func TestDisposeReleasesEverything(t *testing.T) {
	h, m, tr, _ := newFixture(t)
	h.Step(config.InitDelay)
	require.Equal(t, Active, m.State())
	require.Equal(t, 1, h.Events.Count(event.PointerMoved)) // курсор

	m.Dispose()
	m.Dispose()

	assert.Equal(t, 1, tr.last().releases)
	assert.True(t, tr.last().surf.Released())
	assert.Equal(t, Idle, m.State())
	assert.True(t, m.Disposed())
	assert.Zero(t, h.Document.CountByID(config.ContainerID))
	assert.Zero(t, h.Events.Count(event.PointerMoved))
	assert.False(t, m.Cursor().Running())
}

func TestInitDelayOption(t *testing.T) {
	h, m, _, _ := newFixture(t, WithInitDelay(0))
	h.Step(0)
	assert.Equal(t, Active, m.State())
}

func TestDefaultRegistryEndToEnd(t *testing.T) {
	h := host.New(host.Viewport{Width: 120, Height: 80}, surface.SoftwareProvider{Accelerated: true})
	tuning := config.DefaultEffects()
	tuning.StarCount = 100
	m := New(h, registry.Default(), WithSeed(7), WithTuning(tuning))
	defer m.Dispose()

	h.Step(config.InitDelay)
	assert.Equal(t, "stars", m.ActiveName())

	for i := 0; i < 3; i++ {
		h.Step(config.FrameTime)
	}
	assert.True(t, m.Active().Running())

	require.NoError(t, m.Next())
	assert.Equal(t, "dna", m.ActiveName())
	require.NoError(t, m.Prev())
	require.NoError(t, m.Prev())
	assert.Equal(t, "neongrid", m.ActiveName())

	// только курсор и активный эффект слушают указатель
	assert.Equal(t, 2, h.Events.Count(event.PointerMoved))
	assert.Equal(t, 1, h.Events.Count(event.ViewportResized))
	assert.Equal(t, 1, children(m))
}

func TestUnsupportedBackendLeavesManagerUsable(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := host.New(host.Viewport{Width: 64, Height: 48}, surface.SoftwareProvider{})
	m := New(h, registry.Default(), WithLogger(zap.New(core)))

	h.Step(config.InitDelay)
	assert.Equal(t, Idle, m.State())
	assert.Zero(t, children(m))
	assert.Equal(t, 1, logs.FilterMessage("Initial background failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("Failed to acquire surface").Len())

	require.NoError(t, m.SwitchBackground(1))
	assert.Equal(t, "dna", m.ActiveName())
	m.Dispose()
}

func TestCursorFollowsPointer(t *testing.T) {
	h, m, _, _ := newFixture(t)
	c := m.Cursor()
	require.NotNil(t, c)

	_, _, visible := c.Position()
	assert.False(t, visible)

	h.MovePointer(10, 10)
	h.MovePointer(20, 10)
	assert.InDelta(t, 0, c.Target(), 1e-9)

	h.MovePointer(20, 30)
	assert.InDelta(t, math.Pi/2, c.Target(), 1e-9)

	for i := 0; i < 40; i++ {
		h.Step(config.FrameTime)
	}
	assert.InDelta(t, math.Pi/2, c.Angle(), 1e-3)

	x, y, visible := c.Position()
	assert.True(t, visible)
	assert.Equal(t, 20.0, x)
	assert.Equal(t, 30.0, y)

	// нос смотрит вниз, по направлению движения
	nose := c.Outline()[0]
	assert.InDelta(t, 20, nose.X, 1e-2)
	assert.Greater(t, nose.Y, 30.0)
}

func TestCursorSurvivesSwitches(t *testing.T) {
	_, m, _, _ := newFixture(t)
	require.NoError(t, m.SwitchBackground(idxA))
	require.NoError(t, m.SwitchBackground(idxB))
	assert.True(t, m.Cursor().Running())
}
