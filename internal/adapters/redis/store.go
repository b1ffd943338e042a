// Package redis provides a StateStore backed by Redis, for hosts that want
// drafts to survive process restarts or to be shared across instances.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
)

// Store implements ports.StateStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored drafts.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for drafts.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "intake:session:",
		ttl:    0, // no expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(handle string) string {
	return s.prefix + handle
}

// Save persists the draft as JSON.
func (s *Store) Save(ctx context.Context, handle string, state *domain.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	if err := s.client.Set(ctx, s.key(handle), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the draft. Undecodable payloads are reported as corruption
// so the runtime can start fresh instead of crashing the session.
func (s *Store) Load(ctx context.Context, handle string) (*domain.SessionState, error) {
	val, err := s.client.Get(ctx, s.key(handle)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var state domain.SessionState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStateCorrupt, err)
	}
	return &state, nil
}

// Delete removes the draft.
func (s *Store) Delete(ctx context.Context, handle string) error {
	return s.client.Del(ctx, s.key(handle)).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
