// Package session holds the explicit auth context for one signed-in user,
// replacing the ambient "current user" lookup of the original storefront.
// A Session is established on sign-in and torn down on sign-out; clients
// receive it (or its TokenSource) at construction, never via globals.
package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"edustore/internal/domain"
)

// TokenSource supplies the bearer token for admin-scoped calls. The token
// is an opaque string fetched just-in-time per request; the core never
// caches it beyond the call that asked for it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed-token source, mainly for CLI use and tests.
type StaticToken string

func (s StaticToken) Token(ctx context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty bearer token", domain.ErrAuth)
	}
	return string(s), nil
}

// Session binds the authenticated user to a token source with an explicit
// lifecycle. A torn-down session refuses to hand out tokens.
type Session struct {
	mu          sync.Mutex
	user        domain.User
	tokens      TokenSource
	established bool
	log         *zap.Logger
}

func Establish(user domain.User, tokens TokenSource, log *zap.Logger) *Session {
	log.Info("session established",
		zap.String("userID", user.ID),
		zap.String("role", string(user.Role)))
	return &Session{user: user, tokens: tokens, established: true, log: log}
}

// User returns the signed-in user and whether the session is still live.
func (s *Session) User() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.established
}

// Token implements TokenSource on behalf of the signed-in user.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	tokens, live := s.tokens, s.established
	s.mu.Unlock()

	if !live {
		return "", fmt.Errorf("%w: session torn down", domain.ErrAuth)
	}
	return tokens.Token(ctx)
}

func (s *Session) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.established {
		return
	}
	s.established = false
	s.log.Info("session torn down", zap.String("userID", s.user.ID))
}

// ViewGuard binds in-flight fetches to the view that issued them. Enter
// returns a generation token for the new view; Leave invalidates it. A
// response must only be applied while Current(token) still holds, so a
// late reply never lands on a torn-down view.
type ViewGuard struct {
	gen atomic.Uint64
}

func (g *ViewGuard) Enter() uint64 {
	return g.gen.Add(1)
}

func (g *ViewGuard) Leave() {
	g.gen.Add(1)
}

func (g *ViewGuard) Current(token uint64) bool {
	return g.gen.Load() == token
}
