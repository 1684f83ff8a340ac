// Package redis stores browse sessions in Redis with a sliding TTL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"motorbikes/pkg/session"
)

const keyPrefix = "session:"

// Repository implements session.Repository on a Redis client.
type Repository struct {
	client *goredis.Client
	ttl    time.Duration
}

// New creates a Redis repository. Every write resets the key's expiry to ttl.
func New(client *goredis.Client, ttl time.Duration) *Repository {
	return &Repository{client: client, ttl: ttl}
}

func key(id string) string { return keyPrefix + id }

func encode(s session.Session) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	return b, nil
}

func decode(b []byte) (session.Session, error) {
	var s session.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return session.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

// Create stores a new session.
func (r *Repository) Create(ctx context.Context, s session.Session) error {
	b, err := encode(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key(s.ID), b, r.ttl).Err()
}

// Get retrieves a session by ID.
func (r *Repository) Get(ctx context.Context, id string) (session.Session, error) {
	b, err := r.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return session.Session{}, session.ErrNotFound
	}
	if err != nil {
		return session.Session{}, err
	}
	return decode(b)
}

// Update replaces a session that still exists.
func (r *Repository) Update(ctx context.Context, s session.Session) error {
	b, err := encode(s)
	if err != nil {
		return err
	}
	ok, err := r.client.SetXX(ctx, key(s.ID), b, r.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return session.ErrNotFound
	}
	return nil
}

// Delete removes a session by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, key(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return session.ErrNotFound
	}
	return nil
}
