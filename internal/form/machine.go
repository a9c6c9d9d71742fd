package form

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// State constants for statekit integration.
// These must remain untyped string constants for statekit.StateID compatibility.
const (
	stateIdle       = "idle"
	stateSubmitting = "submitting"
	stateSuccess    = "success"
	stateFailed     = "failed"
)

// Events accepted by the form machine.
const (
	eventSubmit  = "submit"
	eventResolve = "resolve"
	eventReject  = "reject"
)

// State is an observable form state.
type State string

// Form states
const (
	StateIdle       State = stateIdle
	StateSubmitting State = stateSubmitting
	StateSuccess    State = stateSuccess
	StateFailed     State = stateFailed
)

// machineContext carries state data.
type machineContext struct {
	SessionID string
}

// stateMachine wraps the statekit interpreter for one form.
// It is not safe for concurrent use; Form serializes access.
type stateMachine struct {
	interpreter *statekit.Interpreter[machineContext]
}

func newStateMachine(sessionID string) (*stateMachine, error) {
	builder := statekit.NewMachine[machineContext]("recipe-form").
		WithInitial(stateIdle).
		WithContext(machineContext{SessionID: sessionID})

	builder.State(stateIdle).
		On(eventSubmit).Target(stateSubmitting).
		Done()

	builder.State(stateSubmitting).
		On(eventResolve).Target(stateSuccess).
		On(eventReject).Target(stateFailed).
		Done()

	builder.State(stateSuccess).
		On(eventSubmit).Target(stateSubmitting).
		Done()

	builder.State(stateFailed).
		On(eventSubmit).Target(stateSubmitting).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build form state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &stateMachine{interpreter: interpreter}, nil
}

// Send applies event and reports an error when the current state does not accept it.
func (m *stateMachine) Send(event string) error {
	before := m.Current()
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if m.Current() != before {
		return nil
	}
	return fmt.Errorf("%w: %q while %s", ErrInvalidTransition, event, before)
}

// Current returns the current state.
func (m *stateMachine) Current() State {
	return State(m.interpreter.State().Value)
}
