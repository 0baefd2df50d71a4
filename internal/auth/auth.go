// Package auth verifies bearer credentials on incoming requests.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrUnauthorized is wrapped by every credential failure.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMissingCredentials signals an absent Authorization header.
	ErrMissingCredentials = fmt.Errorf("%w: missing authorization header", ErrUnauthorized)
	// ErrMalformedCredentials signals a header not in "Bearer <token>" form.
	ErrMalformedCredentials = fmt.Errorf("%w: authorization must be \"Bearer <token>\"", ErrUnauthorized)
	// ErrInvalidToken signals a token the verifier rejected.
	ErrInvalidToken = fmt.Errorf("%w: invalid token", ErrUnauthorized)
)

// Claims identifies the caller of a request.
type Claims struct {
	UID string
}

// Verifier checks a raw bearer token.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// ParseBearer extracts the token from an Authorization header value.
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", ErrMissingCredentials
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMalformedCredentials
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrMalformedCredentials
	}
	return token, nil
}

// Provider builds its Verifier on first use. Initialisation runs at most
// once; a failure is remembered and returned on every later call.
type Provider struct {
	init func() (Verifier, error)

	once     sync.Once
	verifier Verifier
	err      error
}

// NewProvider returns a Provider that calls init on first use.
func NewProvider(init func() (Verifier, error)) *Provider {
	return &Provider{init: init}
}

// EnsureInitialized builds the verifier if it has not been built yet.
func (p *Provider) EnsureInitialized() error {
	p.once.Do(func() {
		p.verifier, p.err = p.init()
		if p.err == nil && p.verifier == nil {
			p.err = errors.New("auth: initializer returned no verifier")
		}
	})
	return p.err
}

// Authenticate verifies the Authorization header value of a request.
// Credential problems wrap ErrUnauthorized; initialisation problems do not.
func (p *Provider) Authenticate(ctx context.Context, header string) (Claims, error) {
	if err := p.EnsureInitialized(); err != nil {
		return Claims{}, fmt.Errorf("init auth: %w", err)
	}

	token, err := ParseBearer(header)
	if err != nil {
		return Claims{}, err
	}

	return p.verifier.Verify(ctx, token)
}
