package ports

import "context"

// Identity is the pseudonymous identity of a respondent. The engine treats
// the handle as an opaque string and uses it only to namespace storage keys.
type Identity struct {
	Handle string
}

// IdentityProvider supplies identities to the host. It replaces the
// prototype's global in-memory user map with an injected collaborator; the
// engine never owns or reaches into user storage.
type IdentityProvider interface {
	// Register creates a new pseudonymous identity.
	Register(ctx context.Context, pseudonym, password string) (Identity, error)

	// Authenticate resolves credentials to an existing identity.
	Authenticate(ctx context.Context, pseudonym, password string) (Identity, error)
}
