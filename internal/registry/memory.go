// Package registry holds the in-memory activity roster.
package registry

import (
	"context"
	"sync"

	"example.com/extracurricular/internal/domain"
)

// InMemoryRegistry stores activities in memory for the lifetime of the process.
type InMemoryRegistry struct {
	mu         sync.RWMutex
	activities map[string]*domain.Activity
}

// NewInMemoryRegistry constructs a registry seeded with the given activities.
// Later entries with a name already seen replace earlier ones.
func NewInMemoryRegistry(seed []domain.Activity) *InMemoryRegistry {
	r := &InMemoryRegistry{
		activities: make(map[string]*domain.Activity, len(seed)),
	}
	for _, a := range seed {
		clone := a.Clone()
		r.activities[a.Name] = &clone
	}
	return r
}

// List implements domain.Registry.
func (r *InMemoryRegistry) List(ctx context.Context) (map[string]domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.Activity, len(r.activities))
	for name, a := range r.activities {
		out[name] = a.Clone()
	}
	return out, nil
}

// Get returns the activity by name, or nil when absent.
func (r *InMemoryRegistry) Get(ctx context.Context, name string) (*domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.activities[name]
	if !ok {
		return nil, nil
	}
	clone := a.Clone()
	return &clone, nil
}

// Signup appends email to the activity roster.
func (r *InMemoryRegistry) Signup(ctx context.Context, name, email string) (*domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}
	if a.HasParticipant(email) {
		return nil, domain.ErrAlreadySignedUp
	}

	a.Participants = append(a.Participants, email)
	clone := a.Clone()
	return &clone, nil
}

// Unregister removes email from the activity roster, preserving the order of the rest.
func (r *InMemoryRegistry) Unregister(ctx context.Context, name, email string) (*domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}

	idx := -1
	for i, p := range a.Participants {
		if p == email {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrNotSignedUp
	}

	a.Participants = append(a.Participants[:idx], a.Participants[idx+1:]...)
	clone := a.Clone()
	return &clone, nil
}

// Len reports the number of activities.
func (r *InMemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.activities)
}
