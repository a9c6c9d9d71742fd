package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/pantry-chef/internal/domain"
	"github.com/phrazzld/pantry-chef/internal/generation"
)

// View is a read-only snapshot of a form.
type View struct {
	SessionID string
	State     State
	Input     Input
	Recipes   []domain.Recipe
	Error     string
}

// Busy reports whether the submit control should be disabled and the
// progress indicator shown.
func (v View) Busy() bool {
	return v.State == StateSubmitting
}

// HasError reports whether the error banner is visible.
func (v View) HasError() bool {
	return v.Error != ""
}

// Form is the per-session presentation state. It is safe for concurrent use.
type Form struct {
	id        string
	generator generation.Generator
	logger    *slog.Logger
	clock     func() time.Time

	mu         sync.Mutex
	machine    *stateMachine
	input      Input
	recipes    []domain.Recipe
	errMsg     string
	lastActive time.Time
}

// New creates an idle form with a fresh session id and default field values.
func New(generator generation.Generator, logger *slog.Logger) (*Form, error) {
	return newForm(uuid.NewString(), generator, logger, time.Now)
}

func newForm(
	id string,
	generator generation.Generator,
	logger *slog.Logger,
	clock func() time.Time,
) (*Form, error) {
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	machine, err := newStateMachine(id)
	if err != nil {
		return nil, err
	}

	return &Form{
		id:         id,
		generator:  generator,
		logger:     logger.With("session_id", id),
		clock:      clock,
		machine:    machine,
		input:      DefaultInput(),
		lastActive: clock(),
	}, nil
}

// ID returns the session id of the form.
func (f *Form) ID() string {
	return f.id
}

// Submit records in as the current field values and starts one generation
// call in the background. The returned channel is closed once the form has
// settled into StateSuccess or StateFailed.
//
// The previous results and error are cleared as soon as the submission
// starts. Submit returns ErrSubmitInProgress while an earlier call is still
// outstanding, and ErrInvalidInput when an enumerated field holds an unknown
// value; in both cases the form is left untouched.
//
// ctx is passed to the generator as-is. Callers that must not cancel the
// call when the request ends should detach it with context.WithoutCancel.
func (f *Form) Submit(ctx context.Context, in Input) (<-chan struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastActive = f.clock()

	if f.machine.Current() == StateSubmitting {
		return nil, ErrSubmitInProgress
	}

	req, err := in.Request()
	if err != nil {
		return nil, err
	}

	if err := f.machine.Send(eventSubmit); err != nil {
		return nil, err
	}

	f.input = in.clone()
	f.recipes = nil
	f.errMsg = ""

	f.logger.DebugContext(ctx, "Form submitted",
		"mode", string(req.Mode),
		"age", string(req.Age))

	done := make(chan struct{})
	go func() {
		defer close(done)
		recipes, err := f.generator.GenerateRecipes(ctx, req)
		f.settle(ctx, recipes, err)
	}()

	return done, nil
}

// settle moves a submitting form to its final state.
func (f *Form) settle(ctx context.Context, recipes []domain.Recipe, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastActive = f.clock()

	if err != nil {
		f.errMsg = errorMessage(err)
		f.recipes = nil
		if sendErr := f.machine.Send(eventReject); sendErr != nil {
			f.logger.ErrorContext(ctx, "Failed to record rejected submission", "error", sendErr)
		}
		f.logger.WarnContext(ctx, "Form submission failed", "error", err)
		return
	}

	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	f.recipes = recipes
	if sendErr := f.machine.Send(eventResolve); sendErr != nil {
		f.logger.ErrorContext(ctx, "Failed to record resolved submission", "error", sendErr)
	}
	f.logger.InfoContext(ctx, "Form submission succeeded", "recipe_count", len(recipes))
}

// errorMessage maps a generator failure to banner text. Only a
// GenerationError carries a message fit for users.
func errorMessage(err error) string {
	var genErr *generation.GenerationError
	if errors.As(err, &genErr) {
		return genErr.Error()
	}
	return UnknownErrorMessage
}

// View returns a snapshot of the form.
func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastActive = f.clock()

	return View{
		SessionID: f.id,
		State:     f.machine.Current(),
		Input:     f.input.clone(),
		Recipes:   slices.Clone(f.recipes),
		Error:     f.errMsg,
	}
}

// State returns the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.machine.Current()
}

// expired reports whether the form has been idle since before cutoff. A form
// that is still submitting never expires.
func (f *Form) expired(cutoff time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.machine.Current() != StateSubmitting && f.lastActive.Before(cutoff)
}

// String implements fmt.Stringer for log output.
func (f *Form) String() string {
	return fmt.Sprintf("form(%s)", f.id)
}
