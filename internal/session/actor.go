package session

import (
	"github.com/bela4us/belotsrv/internal/statemachine"
)

// task is one unit of serialized work queued against an entity's mailbox.
type task func()

const mailboxCapacity = 64

// actorRuntime is the generic entity loop every Game and Room actor shares:
// a bounded mailbox drained by a single goroutine, so all events targeting
// one entity are totally ordered, while different entities run fully in
// parallel. Its two states (running/stopped) are driven by
// internal/statemachine, matching the teacher's EventProcessor worker loop
// generalized from "one queue shared by N workers" to "one queue per
// entity, drained by exactly one worker".
type actorRuntime struct {
	mailbox chan task
	stopped chan struct{}
}

func newActorRuntime() *actorRuntime {
	return &actorRuntime{
		mailbox: make(chan task, mailboxCapacity),
		stopped: make(chan struct{}),
	}
}

// stateRunning waits for either the next queued task or a stop request,
// and always returns to itself until stopped.
func stateRunning(a *actorRuntime, notify func(string, statemachine.StateEvent)) statemachine.StateFn[actorRuntime] {
	if notify != nil {
		notify("running", statemachine.StateEntered)
	}
	select {
	case t, ok := <-a.mailbox:
		if !ok {
			return stateStopped
		}
		t()
		return stateRunning
	case <-a.stopped:
		return stateStopped
	}
}

func stateStopped(a *actorRuntime, notify func(string, statemachine.StateEvent)) statemachine.StateFn[actorRuntime] {
	if notify != nil {
		notify("stopped", statemachine.StateEntered)
	}
	return nil
}

// run drains the mailbox on the calling goroutine until Stop is called or
// the machine reaches the terminal stopped state.
func (a *actorRuntime) run() {
	sm := statemachine.NewStateMachine(a, stateRunning)
	for sm.GetCurrentState() != nil {
		sm.Dispatch(nil)
	}
}

// Stop requests the actor's loop to exit after its current task.
func (a *actorRuntime) Stop() {
	close(a.stopped)
}

// enqueue schedules t for serialized execution, dropping (and logging via
// the caller) if the mailbox is full rather than blocking the submitter.
func (a *actorRuntime) enqueue(t task) bool {
	select {
	case a.mailbox <- t:
		return true
	default:
		return false
	}
}
