// Package memory implements an in-memory session repository.
package memory

import (
	"context"
	"sync"

	"motorbikes/pkg/session"
)

// Repository provides an in-memory implementation of session.Repository.
type Repository struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{sessions: make(map[string]session.Session)}
}

// Create stores the session.
func (r *Repository) Create(ctx context.Context, s session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = detach(s)
	return nil
}

// Get retrieves a session by ID.
func (r *Repository) Get(ctx context.Context, id string) (session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return detach(s), nil
}

// Update replaces an existing session.
func (r *Repository) Update(ctx context.Context, s session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; !ok {
		return session.ErrNotFound
	}
	r.sessions[s.ID] = detach(s)
	return nil
}

// Delete removes a session by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return session.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// detach copies the cart and flip map so callers never share them with the store.
func detach(s session.Session) session.Session {
	s.State = s.State.Clone()
	return s
}
