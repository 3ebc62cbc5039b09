package statemachine_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/transitkit/pkg/statemachine"
)

type State string

const (
	StateA State = "A"
	StateB State = "B"
	StateC State = "C"
	StateD State = "D"
)

type Trigger string

const (
	AtoB Trigger = "AtoB"
	AtoC Trigger = "AtoC"
	BtoC Trigger = "BtoC"
	CtoD Trigger = "CtoD"
	Loop Trigger = "Loop"
)

type document struct {
	state State
	ready bool
}

type (
	machine    = statemachine.Machine[State, Trigger, *document]
	transition = statemachine.Transition[State, Trigger, *document]
	action     = statemachine.Action[State, Trigger, *document]
)

func newMachine(t *testing.T, opts ...statemachine.Option) *machine {
	t.Helper()
	m, err := statemachine.New[State, Trigger](
		func(d *document) State { return d.state },
		func(d *document, s State) { d.state = s },
		opts...,
	)
	require.NoError(t, err)
	return m
}

// journal collects the names of executed actions.
type journal struct {
	mu    sync.Mutex
	calls []string
}

func (j *journal) add(name string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, name)
}

func (j *journal) entries() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.calls...)
}

func (j *journal) action(name string) action {
	return statemachine.ActionFunc[State, Trigger, *document](func(context.Context, *transition) error {
		j.add(name)
		return nil
	})
}

func failing(err error) action {
	return statemachine.ActionFunc[State, Trigger, *document](func(context.Context, *transition) error {
		return err
	})
}

func isReady(d *document) bool    { return d.ready }
func isNotReady(d *document) bool { return !d.ready }

func newBaseOptions() *statemachine.BaseOptions { return &statemachine.BaseOptions{} }

func autofire(o *statemachine.BaseOptions) { o.IsAutofire = true }
