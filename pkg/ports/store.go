package ports

import (
	"context"

	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
)

// StateStore is the persistence sink for session drafts. Implementations
// derive the storage key deterministically from the identity handle, so each
// session is independent and last-write-wins against its own key.
type StateStore interface {
	// Save persists the session state under the given handle.
	Save(ctx context.Context, handle string, state *domain.SessionState) error

	// Load retrieves the session state for a handle. Returns
	// domain.ErrSessionNotFound if nothing is stored, and
	// domain.ErrStateCorrupt (possibly wrapped) if the stored payload
	// cannot be decoded.
	Load(ctx context.Context, handle string) (*domain.SessionState, error)

	// Delete removes the stored session. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, handle string) error
}
