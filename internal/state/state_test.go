package state

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

type recordingState struct {
	name  string
	log   *[]string
	err   error
	delta float64
}

func (r *recordingState) Enter() { *r.log = append(*r.log, r.name+":enter") }
func (r *recordingState) Exit()  { *r.log = append(*r.log, r.name+":exit") }

func (r *recordingState) Update(deltaTime float64) error {
	r.delta = deltaTime
	return r.err
}

func (r *recordingState) Draw(*ebiten.Image) {}

func TestStateMachineTransitions(t *testing.T) {
	var log []string
	a := &recordingState{name: "a", log: &log}
	b := &recordingState{name: "b", log: &log, err: errors.New("stop")}

	sm := NewStateMachine()
	assert.NoError(t, sm.Update(0.016))

	sm.SetState(a)
	assert.NoError(t, sm.Update(0.016))
	assert.Equal(t, 0.016, a.delta)

	sm.SetState(b)
	assert.Same(t, b, sm.Current())
	assert.EqualError(t, sm.Update(0.02), "stop")

	sm.SetState(nil)
	assert.Nil(t, sm.Current())
	assert.Equal(t, []string{"a:enter", "a:exit", "b:enter", "b:exit"}, log)
}
