// Package auth tracks who is signed in. Identities are owned by the provider;
// the rest of aura only reads the user id and email.
package auth

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrNotSignedIn is returned when there is no valid session
	ErrNotSignedIn = errors.New("auth: not signed in")
	// ErrInvalidEmail is returned when signing in with a malformed address
	ErrInvalidEmail = errors.New("auth: invalid email address")
)

// DefaultTTL is how long a session stays valid
const DefaultTTL = 30 * 24 * time.Hour

// Identity is a signed-in user
type Identity struct {
	UID   string
	Email string
}

// Provider signs users in and out and reports transitions to watchers
type Provider interface {
	Current() (*Identity, error)
	SignIn(email string) (*Identity, error)
	SignOut() error
	Watch(fn func(*Identity)) (cancel func())
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// LocalProvider keeps a signed session token in a file
type LocalProvider struct {
	path   string
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	watchers map[int]func(*Identity)
	nextID   int
}

// NewLocalProvider creates a provider storing its session at path
func NewLocalProvider(path string, secret []byte) (*LocalProvider, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: signing secret is required")
	}
	return &LocalProvider{
		path:     path,
		secret:   secret,
		ttl:      DefaultTTL,
		now:      time.Now,
		watchers: make(map[int]func(*Identity)),
	}, nil
}

// UserID derives the stable user id for an email address
func UserID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String()
}

// Current returns the signed-in identity
func (p *LocalProvider) Current() (*Identity, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotSignedIn
	}
	if err != nil {
		return nil, fmt.Errorf("auth: read session: %w", err)
	}

	var c claims
	token, err := jwt.ParseWithClaims(strings.TrimSpace(string(data)), &c,
		func(*jwt.Token) (interface{}, error) { return p.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrNotSignedIn, err)
	}
	return &Identity{UID: c.Subject, Email: c.Email}, nil
}

// SignIn starts a session for email and notifies watchers
func (p *LocalProvider) SignIn(email string) (*Identity, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}
	email = strings.ToLower(addr.Address)
	id := &Identity{UID: UserID(email), Email: email}

	now := p.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "aura",
			Subject:   id.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	})
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return nil, fmt.Errorf("auth: sign session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0700); err != nil {
		return nil, fmt.Errorf("auth: create session directory: %w", err)
	}
	if err := os.WriteFile(p.path, []byte(signed), 0600); err != nil {
		return nil, fmt.Errorf("auth: write session: %w", err)
	}

	p.notify(id)
	return id, nil
}

// SignOut ends the session and notifies watchers
func (p *LocalProvider) SignOut() error {
	if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("auth: remove session: %w", err)
	}
	p.notify(nil)
	return nil
}

// Watch registers fn for sign-in (identity) and sign-out (nil) events
func (p *LocalProvider) Watch(fn func(*Identity)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.watchers[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.watchers, id)
	}
}

func (p *LocalProvider) notify(id *Identity) {
	p.mu.Lock()
	fns := make([]func(*Identity), 0, len(p.watchers))
	for _, fn := range p.watchers {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}
