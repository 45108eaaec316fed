// Package anim drives per-effect animation loops on top of a cooperative
// frame scheduler.
package anim

import "go-backdrop/internal/host"

// FrameScheduler — примитив планирования кадров хоста.
type FrameScheduler interface {
	RequestFrame(cb func()) host.FrameID
}

type driverState int

const (
	stateIdle driverState = iota
	stateRunning
	stateStopped
)

// Driver — цикл анимации одного эффекта.
// Каждый Tick сначала проверяет флаг работы; после Stop ни один кадр
// уже не рисуется, даже если он был запрошен раньше.
type Driver struct {
	sched   FrameScheduler
	step    func()
	state   driverState
	pending bool
	frames  uint64
}

// NewDriver создаёт остановленный драйвер. step вызывается один раз за кадр.
func NewDriver(sched FrameScheduler, step func()) *Driver {
	return &Driver{sched: sched, step: step}
}

// Start запускает цикл. Остановленный драйвер не перезапускается.
func (d *Driver) Start() {
	if d.state != stateIdle {
		return
	}
	d.state = stateRunning
	d.schedule()
}

// Stop опускает флаг работы. Повторный вызов ничего не делает.
func (d *Driver) Stop() {
	d.state = stateStopped
}

// Running — состояние флага работы.
func (d *Driver) Running() bool {
	return d.state == stateRunning
}

// Frames возвращает число отрисованных кадров.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Pending сообщает, запрошен ли уже следующий кадр.
func (d *Driver) Pending() bool {
	return d.pending
}

// Tick — один шаг цикла. Вызывается планировщиком.
func (d *Driver) Tick() {
	d.pending = false
	if d.state != stateRunning {
		return
	}
	d.frames++
	d.step()
	// step мог остановить драйвер
	if d.state == stateRunning {
		d.schedule()
	}
}

func (d *Driver) schedule() {
	if d.pending {
		return
	}
	d.pending = true
	d.sched.RequestFrame(d.Tick)
}
