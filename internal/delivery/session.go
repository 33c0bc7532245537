package delivery

import (
	"sync"

	"srebrnasad/internal/domain"
)

// Session serializes eligibility checks for one cart: only the result of the
// most recently started check may be applied. Starting a new check
// supersedes any check still in flight, whose late result is discarded.
type Session struct {
	mu      sync.Mutex
	current uint64
	result  *domain.Eligibility
}

// Begin registers a new check and returns its token. Any previously issued
// token becomes stale.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current++
	return s.current
}

// Apply stores the result if token still identifies the latest check.
// It reports whether the result was applied.
func (s *Session) Apply(token uint64, e domain.Eligibility) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.current {
		return false
	}
	s.result = &e
	return true
}

// Result returns the last applied eligibility, if any.
func (s *Session) Result() (domain.Eligibility, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return domain.Eligibility{}, false
	}
	return *s.result, true
}

// Registry hands out one Session per cart session key.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Session(key string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[key]
	if !ok {
		s = &Session{}
		r.sessions[key] = s
	}
	return s
}
