// Package identity provides an in-memory IdentityProvider for prototype
// deployments: pseudonymous registration and login with no server-side
// account recovery. It replaces the original prototype's global user map
// with an injectable collaborator.
package identity

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/lstw2025/sv-documentation-platform/pkg/ports"
)

// Registration errors surfaced verbatim to the host UI.
var (
	ErrPseudonymTaken   = errors.New("pseudonym already taken")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrAccountNotFound  = errors.New("account not found")
	ErrWrongPassword    = errors.New("incorrect password")
)

const minPasswordLength = 8

type account struct {
	pseudonym string // original casing, used as the handle
	password  string
}

// Provider is an in-memory pseudonym registry. Lookup is case-insensitive;
// the handle keeps the casing chosen at registration.
type Provider struct {
	mu       sync.RWMutex
	accounts map[string]account
}

var _ ports.IdentityProvider = (*Provider)(nil)

// New creates an empty provider.
func New() *Provider {
	return &Provider{accounts: make(map[string]account)}
}

// Register creates a new pseudonymous identity.
func (p *Provider) Register(ctx context.Context, pseudonym, password string) (ports.Identity, error) {
	if len(password) < minPasswordLength {
		return ports.Identity{}, ErrPasswordTooShort
	}

	name := strings.TrimSpace(pseudonym)
	key := strings.ToLower(name)
	if key == "" {
		return ports.Identity{}, errors.New("pseudonym cannot be empty")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, taken := p.accounts[key]; taken {
		return ports.Identity{}, ErrPseudonymTaken
	}
	p.accounts[key] = account{pseudonym: name, password: password}
	return ports.Identity{Handle: name}, nil
}

// Authenticate resolves credentials to an existing identity.
func (p *Provider) Authenticate(ctx context.Context, pseudonym, password string) (ports.Identity, error) {
	key := strings.ToLower(strings.TrimSpace(pseudonym))

	p.mu.RLock()
	defer p.mu.RUnlock()

	acct, ok := p.accounts[key]
	if !ok {
		return ports.Identity{}, ErrAccountNotFound
	}
	if acct.password != password {
		return ports.Identity{}, ErrWrongPassword
	}
	return ports.Identity{Handle: acct.pseudonym}, nil
}
