// Package auth provides the bearer-token capability used by the store client.
// Token issuance and refresh live in an external identity provider; this
// package only carries tokens and decides when a cached one is stale.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoToken = errors.New("no token available")

// TokenSource yields a bearer token for an outgoing request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns the same token for every request.
type StaticTokenSource struct {
	token string
}

func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: token}
}

func (s *StaticTokenSource) Token(ctx context.Context) (string, error) {
	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

// FetchFunc obtains a fresh token from the identity provider.
type FetchFunc func(ctx context.Context) (string, error)

// CachingTokenSource caches a fetched token and re-fetches once its exp claim
// is within the leeway window. Tokens without an exp claim are reused until
// the server rejects them.
type CachingTokenSource struct {
	fetch  FetchFunc
	leeway time.Duration

	mu      sync.Mutex
	current string
}

func NewCachingTokenSource(fetch FetchFunc, leeway time.Duration) *CachingTokenSource {
	return &CachingTokenSource{fetch: fetch, leeway: leeway}
}

func (s *CachingTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != "" && tokenUsable(s.current, s.leeway) {
		return s.current, nil
	}

	token, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNoToken
	}
	s.current = token
	return token, nil
}

// tokenUsable inspects the token's exp claim without verifying the signature;
// verification is the server's job. Unparseable tokens are treated as usable
// and left for the server to reject.
func tokenUsable(token string, leeway time.Duration) bool {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return time.Now().Add(leeway).Before(claims.ExpiresAt.Time)
}
