// Package background owns the full-viewport background container and switches
// effects in and out of it without leaking surfaces, listeners or frames.
package background

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go-backdrop/internal/config"
	"go-backdrop/internal/effect"
	"go-backdrop/internal/host"
	"go-backdrop/internal/registry"
)

var (
	// ErrUnknownEffect — индекс не найден в реестре.
	ErrUnknownEffect = errors.New("background: unknown effect")
	// ErrReentrantSwitch — переключение вызвано изнутри другого переключения.
	ErrReentrantSwitch = errors.New("background: switch already in progress")
	// ErrDisposed — менеджер уже освобождён.
	ErrDisposed = errors.New("background: manager disposed")
	// ErrConstruction — эффект не удалось создать; менеджер остаётся в Idle.
	ErrConstruction = effect.ErrConstruction
)

// State — состояние менеджера.
type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Stats — счётчики жизненного цикла, полезны в тестах и в HUD.
type Stats struct {
	Switches      int // успешные переключения
	Constructions int // созданные экземпляры
	Teardowns     int // разобранные экземпляры
	Failures      int // неудачные попытки создания
}

type options struct {
	logger               *zap.Logger
	initDelay            time.Duration
	seed                 int64
	tuning               config.EffectSettings
	frameRateIndependent bool
	cursor               bool
}

// Option настраивает Manager.
type Option func(*options)

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithInitDelay задаёт задержку перед автоматическим выбором эффекта 0.
func WithInitDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.initDelay = d
		}
	}
}

func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

func WithTuning(t config.EffectSettings) Option {
	return func(o *options) { o.tuning = t }
}

func WithFrameRateIndependent(enabled bool) Option {
	return func(o *options) { o.frameRateIndependent = enabled }
}

// WithCursor включает или выключает курсор-ракету.
func WithCursor(enabled bool) Option {
	return func(o *options) { o.cursor = enabled }
}

// Manager — конечный автомат Idle → Active(index).
// Только он меняет контейнер и активный слот.
type Manager struct {
	host     *host.Host
	registry *registry.Registry
	log      *zap.Logger
	opts     options

	container   *host.Node
	active      effect.Effect
	activeIndex int

	cursor      *Cursor
	initTimer   host.TimerID
	initPending bool
	switching   bool
	disposed    bool
	stats       Stats
}

// New пересоздаёт контейнер фона, ставит отложенный выбор эффекта 0
// и запускает курсор.
func New(h *host.Host, reg *registry.Registry, opts ...Option) *Manager {
	o := options{
		logger:    zap.NewNop(),
		initDelay: config.InitDelay,
		tuning:    config.DefaultEffects(),
		cursor:    true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Manager{
		host:        h,
		registry:    reg,
		log:         o.logger.Named("background"),
		opts:        o,
		activeIndex: -1,
	}
	m.createContainer()

	m.initPending = true
	m.initTimer = h.Frames.After(o.initDelay, func() {
		m.initPending = false
		if err := m.SwitchBackground(0); err != nil {
			m.log.Warn("Initial background failed", zap.Error(err))
		}
	})

	if o.cursor {
		m.cursor = NewCursor(h)
	}

	m.log.Info("Background manager initialised",
		zap.Strings("effects", reg.Names()),
		zap.Duration("init_delay", o.initDelay),
	)
	return m
}

// createContainer удаляет все старые контейнеры и создаёт новый.
func (m *Manager) createContainer() {
	removed := 0
	for n := m.host.Document.ElementByID(config.ContainerID); n != nil; n = m.host.Document.ElementByID(config.ContainerID) {
		m.host.Document.Remove(n)
		removed++
	}
	if removed > 0 {
		m.log.Debug("Removed stale background containers", zap.Int("count", removed))
	}
	m.container = m.host.Document.Create(config.ContainerID)
}

// SwitchBackground делает активным эффект с данным индексом.
func (m *Manager) SwitchBackground(index int) error {
	if m.disposed {
		return ErrDisposed
	}
	if m.switching {
		m.log.Warn("Switch requested while switching", zap.Int("index", index))
		return ErrReentrantSwitch
	}

	desc, err := m.registry.Get(index)
	if err != nil {
		m.log.Error("No effect found at index", zap.Int("index", index), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrUnknownEffect, err)
	}

	if m.active != nil && index == m.activeIndex {
		m.log.Debug("Already on this background", zap.Int("index", index))
		return nil
	}

	m.switching = true
	defer func() { m.switching = false }()

	m.log.Debug("Switching background", zap.Int("index", index), zap.String("name", desc.Name))

	m.teardown()
	m.container.Clear()

	eff, err := m.construct(desc)
	if m.disposed {
		// менеджер разобрали изнутри фабрики или слушателя
		if eff != nil {
			eff.StopAnimation()
			eff.Release()
		}
		m.log.Warn("Manager disposed during switch", zap.Int("index", index), zap.String("name", desc.Name))
		return ErrDisposed
	}
	if err != nil {
		m.stats.Failures++
		m.log.Error("Error creating effect", zap.Int("index", index), zap.String("name", desc.Name), zap.Error(err))
		return err
	}
	m.stats.Constructions++

	if surf := eff.Surface(); !m.container.Contains(surf) {
		m.container.Append(surf)
	}
	m.active = eff
	m.activeIndex = index
	m.stats.Switches++

	m.log.Info("Background switched", zap.Int("index", index), zap.String("name", desc.Name), zap.String("id", eff.ID()))
	return nil
}

// construct вызывает фабрику; паника фабрики превращается в ErrConstruction.
func (m *Manager) construct(desc registry.Descriptor) (eff effect.Effect, err error) {
	defer func() {
		if p := recover(); p != nil {
			eff = nil
			err = fmt.Errorf("%w: %s: panic: %v", ErrConstruction, desc.Name, p)
		}
	}()

	eff, err = desc.New(m.env())
	if err != nil {
		if !errors.Is(err, ErrConstruction) {
			err = fmt.Errorf("%w: %s: %w", ErrConstruction, desc.Name, err)
		}
		return nil, err
	}
	if eff == nil {
		return nil, fmt.Errorf("%w: %s: factory returned nothing", ErrConstruction, desc.Name)
	}
	if eff.Surface() == nil {
		eff.Release()
		return nil, fmt.Errorf("%w: %s: effect has no surface", ErrConstruction, desc.Name)
	}
	return eff, nil
}

func (m *Manager) env() effect.Env {
	return effect.Env{
		Host:                 m.host,
		Logger:               m.log,
		Seed:                 m.opts.seed,
		Tuning:               m.opts.tuning,
		FrameRateIndependent: m.opts.frameRateIndependent,
	}
}

// teardown останавливает, отсоединяет и освобождает активный эффект.
func (m *Manager) teardown() {
	if m.active == nil {
		return
	}
	old := m.active
	old.StopAnimation()
	m.container.Remove(old.Surface())
	old.Release()

	m.active = nil
	m.activeIndex = -1
	m.stats.Teardowns++
	m.log.Debug("Background torn down", zap.String("name", old.Name()), zap.String("id", old.ID()))
}

// Dispose разбирает активный эффект, отменяет отложенный старт,
// останавливает курсор и удаляет контейнер. Повторный вызов ничего не делает.
func (m *Manager) Dispose() {
	if m.disposed {
		return
	}
	if m.initPending {
		m.host.Frames.CancelTimer(m.initTimer)
		m.initPending = false
	}
	m.teardown()
	m.container.Clear()
	m.host.Document.Remove(m.container)
	if m.cursor != nil {
		m.cursor.Stop()
	}
	m.disposed = true
	m.log.Info("Background manager disposed", zap.Int("switches", m.stats.Switches))
}

// Next переключает на следующий эффект по кругу (или на 0 из Idle).
func (m *Manager) Next() error {
	return m.SwitchBackground(m.cycle(1))
}

// Prev переключает на предыдущий эффект по кругу.
func (m *Manager) Prev() error {
	return m.SwitchBackground(m.cycle(-1))
}

func (m *Manager) cycle(step int) int {
	n := m.registry.Len()
	if n == 0 {
		return 0
	}
	if m.active == nil {
		return 0
	}
	return ((m.activeIndex+step)%n + n) % n
}

func (m *Manager) State() State {
	if m.active != nil {
		return Active
	}
	return Idle
}

// ActiveIndex возвращает индекс активного эффекта; ok=false в Idle.
func (m *Manager) ActiveIndex() (index int, ok bool) {
	if m.active == nil {
		return -1, false
	}
	return m.activeIndex, true
}

func (m *Manager) Active() effect.Effect { return m.active }

// ActiveName — имя активного эффекта или пустая строка.
func (m *Manager) ActiveName() string {
	if m.active == nil {
		return ""
	}
	return m.active.Name()
}

func (m *Manager) Container() *host.Node        { return m.container }
func (m *Manager) Cursor() *Cursor              { return m.cursor }
func (m *Manager) Registry() *registry.Registry { return m.registry }
func (m *Manager) Stats() Stats                 { return m.stats }
func (m *Manager) Disposed() bool               { return m.disposed }
