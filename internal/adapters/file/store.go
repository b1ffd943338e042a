// Package file provides a StateStore backed by JSON files on the local
// filesystem, the durable local equivalent of the prototype's browser
// storage.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
)

// Store persists each session as <base>/<handle>.json.
type Store struct {
	BasePath string
}

// New creates a file store rooted at basePath. If basePath is empty it
// defaults to ".intake/sessions".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".intake", "sessions")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(handle string) string {
	return filepath.Join(s.BasePath, handle+".json")
}

// Save writes the session draft as indented JSON.
func (s *Store) Save(ctx context.Context, handle string, state *domain.SessionState) error {
	if handle == "" {
		return fmt.Errorf("handle cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure session directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	if err := os.WriteFile(s.path(handle), data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load reads the session draft. A file that no longer parses is reported as
// corruption, which the runtime treats as absent.
func (s *Store) Load(ctx context.Context, handle string) (*domain.SessionState, error) {
	if handle == "" {
		return nil, fmt.Errorf("handle cannot be empty")
	}

	data, err := os.ReadFile(s.path(handle))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var state domain.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStateCorrupt, err)
	}
	return &state, nil
}

// Delete removes the session file. Absent files are a no-op.
func (s *Store) Delete(ctx context.Context, handle string) error {
	if handle == "" {
		return fmt.Errorf("handle cannot be empty")
	}

	err := os.Remove(s.path(handle))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}
