package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
)

// SecretSource fetches a named secret from a secret store.
type SecretSource interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// ErrNotRegistered is returned when the admin flag is read before Register was
// called for the current request. This is a programming error, not a client
// error.
var ErrNotRegistered = errors.New("authenticator: user has not been registered")

// Verifier owns the process-wide admin credential. The secret is fetched on
// first use and retained for the remainder of the process; rotation of the
// underlying secret requires a restart. This staleness window is a documented
// trade-off, not a bug.
//
// A Verifier is safe for concurrent use. The cache is write-once on success:
// fetch failures propagate to the caller and are not cached, so a later
// request retries the fetch.
type Verifier struct {
	source     SecretSource
	secretName string

	mu     sync.Mutex
	loaded bool
	secret string
}

// NewVerifier creates a Verifier reading the admin credential from source
// under secretName.
func NewVerifier(source SecretSource, secretName string) *Verifier {
	return &Verifier{source: source, secretName: secretName}
}

func (v *Verifier) adminKey(ctx context.Context) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.loaded {
		return v.secret, nil
	}
	secret, err := v.source.GetSecret(ctx, v.secretName)
	if err != nil {
		return "", fmt.Errorf("fetching admin key %q: %w", v.secretName, err)
	}
	v.secret = secret
	v.loaded = true
	return v.secret, nil
}

// NewAuthenticator creates the request-scoped authentication state. One
// Authenticator must be created per inbound request; the admin flag is never
// shared across requests.
func (v *Verifier) NewAuthenticator() *Authenticator {
	return &Authenticator{verifier: v}
}

// Authenticator holds whether the current caller presented the correct admin
// credential. It is tri-state: unregistered, registered non-admin, registered
// admin. Not safe for concurrent use; scope one instance to one request.
type Authenticator struct {
	verifier   *Verifier
	registered bool
	isAdmin    bool
}

// Register sets the admin status of the current caller by comparing the
// candidate key against the cached admin credential. An empty key never
// matches and never triggers a secret fetch. Registering again fully
// overwrites the previous result.
func (a *Authenticator) Register(ctx context.Context, key string) (bool, error) {
	if key == "" {
		a.registered = true
		a.isAdmin = false
		return false, nil
	}
	adminKey, err := a.verifier.adminKey(ctx)
	if err != nil {
		return false, err
	}
	a.registered = true
	a.isAdmin = subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) == 1
	return a.isAdmin, nil
}

// IsAdmin reports whether the registered caller is the admin. Reading the flag
// before Register fails with ErrNotRegistered.
func (a *Authenticator) IsAdmin() (bool, error) {
	if !a.registered {
		return false, ErrNotRegistered
	}
	return a.isAdmin, nil
}
