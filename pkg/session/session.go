// Package session keeps the browse state of each mounted catalog view.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"motorbikes/pkg/browse"
)

// Session is the server-side lifetime of one mounted view.
type Session struct {
	ID        string       `json:"id"`
	State     browse.State `json:"state"`
	CreatedAt time.Time    `json:"createdAt"`
}

// New returns an empty session with a fresh ID.
func New() Session {
	return Session{ID: uuid.NewString(), CreatedAt: time.Now().UTC()}
}

// Repository defines behavior for storing sessions.
type Repository interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Update(ctx context.Context, s Session) error
	Delete(ctx context.Context, id string) error
}

// ErrNotFound indicates the requested session does not exist or has expired.
var ErrNotFound = errors.New("session not found")
