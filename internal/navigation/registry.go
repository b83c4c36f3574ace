package navigation

import "sync"

// Registry holds one navigation State per session subject so the HTTP
// layer can drive transitions for a thin client. States are pure
// runtime values; the registry is never persisted.
type Registry struct {
	mu     sync.Mutex
	states map[string]State
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{states: make(map[string]State)}
}

// Get returns the session's current state, creating the initial landing
// state on first access.
func (r *Registry) Get(subject string) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.states[subject]; ok {
		return s
	}
	s := NewState()
	r.states[subject] = s
	return s
}

// Apply runs a transition against the session's current state and
// stores the result.
func (r *Registry) Apply(subject string, fn func(State) State) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.states[subject]
	if !ok {
		s = NewState()
	}
	s = fn(s)
	r.states[subject] = s
	return s
}

// Drop removes a session's state, used on logout.
func (r *Registry) Drop(subject string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, subject)
}
