package form

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/pantry-chef/internal/generation"
)

// DefaultSessionTTL is how long an idle form is kept when no TTL is given.
const DefaultSessionTTL = time.Hour

// Registry keeps one Form per session id in memory.
type Registry struct {
	generator generation.Generator
	logger    *slog.Logger
	ttl       time.Duration
	clock     func() time.Time

	mu    sync.Mutex
	forms map[string]*Form
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.clock = clock
	}
}

// NewRegistry creates an empty registry. Forms idle for longer than ttl are
// dropped on the next lookup.
func NewRegistry(
	generator generation.Generator,
	logger *slog.Logger,
	ttl time.Duration,
	opts ...RegistryOption,
) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		generator: generator,
		logger:    logger,
		ttl:       ttl,
		clock:     time.Now,
		forms:     make(map[string]*Form),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the form for id, if one exists.
func (r *Registry) Get(id string) (*Form, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	f, ok := r.forms[id]
	return f, ok
}

// GetOrCreate returns the form for id, or a new idle form under a fresh id
// when id is unknown or malformed. created reports which case happened.
func (r *Registry) GetOrCreate(id string) (f *Form, created bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()

	if f, ok := r.forms[id]; ok {
		return f, false, nil
	}

	f, err = newForm(uuid.NewString(), r.generator, r.logger, r.clock)
	if err != nil {
		return nil, false, err
	}
	r.forms[f.ID()] = f
	r.logger.Debug("Created form session", "session_id", f.ID())
	return f, true, nil
}

// Prune drops expired forms and returns how many were removed.
func (r *Registry) Prune() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pruneLocked()
}

// Len returns the number of live forms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

func (r *Registry) pruneLocked() int {
	cutoff := r.clock().Add(-r.ttl)
	removed := 0
	for id, f := range r.forms {
		if f.expired(cutoff) {
			delete(r.forms, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Debug("Pruned idle form sessions", "removed", removed, "remaining", len(r.forms))
	}
	return removed
}
