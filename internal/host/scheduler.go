// internal/host/scheduler.go
package host

import (
	"sort"
	"time"
)

// FrameID — идентификатор запрошенного кадра
type FrameID uint64

// TimerID — идентификатор отложенного вызова
type TimerID uint64

type frameRequest struct {
	id FrameID
	cb func()
}

type timer struct {
	id       TimerID
	deadline time.Duration
	seq      uint64
	cb       func()
}

// Scheduler — кооперативный планировщик кадров и таймеров.
// Работает в одном потоке: всё вызывается из цикла хоста.
type Scheduler struct {
	now       time.Duration
	lastDelta time.Duration
	frames    []frameRequest
	timers    []timer
	firing    []timer
	nextFrame FrameID
	nextTimer TimerID
	seq       uint64
	frameNo   uint64
}

// NewScheduler создаёт пустой планировщик
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now возвращает монотонное время планировщика.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// LastDelta возвращает шаг последнего Advance.
func (s *Scheduler) LastDelta() time.Duration {
	return s.lastDelta
}

// FrameNumber возвращает число выполненных кадров.
func (s *Scheduler) FrameNumber() uint64 {
	return s.frameNo
}

// RequestFrame ставит cb на следующий кадр.
func (s *Scheduler) RequestFrame(cb func()) FrameID {
	s.nextFrame++
	s.frames = append(s.frames, frameRequest{id: s.nextFrame, cb: cb})
	return s.nextFrame
}

// CancelFrame снимает запрос кадра, если он ещё не выполнен.
func (s *Scheduler) CancelFrame(id FrameID) {
	for i, f := range s.frames {
		if f.id == id {
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			return
		}
	}
}

// PendingFrames возвращает число запросов на следующий кадр.
func (s *Scheduler) PendingFrames() int {
	return len(s.frames)
}

// After вызывает cb, когда время планировщика продвинется на d.
func (s *Scheduler) After(d time.Duration, cb func()) TimerID {
	if d < 0 {
		d = 0
	}
	s.nextTimer++
	s.seq++
	s.timers = append(s.timers, timer{
		id:       s.nextTimer,
		deadline: s.now + d,
		seq:      s.seq,
		cb:       cb,
	})
	return s.nextTimer
}

// CancelTimer отменяет отложенный вызов. Возвращает false, если таймер уже сработал.
func (s *Scheduler) CancelTimer(id TimerID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	for i := range s.firing {
		if s.firing[i].id == id && s.firing[i].cb != nil {
			s.firing[i].cb = nil
			return true
		}
	}
	return false
}

// PendingTimers возвращает число ожидающих таймеров.
func (s *Scheduler) PendingTimers() int {
	return len(s.timers)
}

// Advance продвигает часы и запускает наступившие таймеры по порядку сроков.
// Таймеры, созданные внутри колбэка, ждут следующего Advance.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt
	s.lastDelta = dt

	var due []timer
	kept := s.timers[:0]
	for _, t := range s.timers {
		if t.deadline <= s.now {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	s.timers = kept

	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline != due[j].deadline {
			return due[i].deadline < due[j].deadline
		}
		return due[i].seq < due[j].seq
	})
	s.firing = due
	for i := range s.firing {
		cb := s.firing[i].cb
		if cb == nil {
			continue
		}
		s.firing[i].cb = nil
		cb()
	}
	s.firing = nil
}

// RunFrame выполняет все запросы, накопленные к началу кадра.
// Запросы, сделанные во время кадра, попадут в следующий.
func (s *Scheduler) RunFrame() int {
	batch := s.frames
	s.frames = nil
	s.frameNo++
	for _, f := range batch {
		f.cb()
	}
	return len(batch)
}
