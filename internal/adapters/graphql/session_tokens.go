package graphql

import (
	"errors"
	"sync"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"golang.org/x/oauth2"
)

// ErrNoSession is returned by SessionTokenSource while nobody is signed in.
var ErrNoSession = errors.New("no authenticated session")

// SessionSource reports the session of the signed-in user, if any.
type SessionSource interface {
	CurrentSession() (*domain.Session, bool)
}

// SessionTokenSource hands the access token of the current session to oauth2.Transport.
// It is bound after construction because the login state machine itself talks through the client.
type SessionTokenSource struct {
	mu     sync.RWMutex
	source SessionSource
}

// NewSessionTokenSource creates an unbound token source.
func NewSessionTokenSource() *SessionTokenSource {
	return &SessionTokenSource{}
}

// Bind sets where sessions come from.
func (s *SessionTokenSource) Bind(source SessionSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = source
}

// Token implements oauth2.TokenSource.
func (s *SessionTokenSource) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	source := s.source
	s.mu.RUnlock()
	if source == nil {
		return nil, ErrNoSession
	}
	session, ok := source.CurrentSession()
	if !ok {
		return nil, ErrNoSession
	}
	return &oauth2.Token{
		AccessToken: session.AccessToken,
		TokenType:   "Bearer",
		Expiry:      session.ExpiresAt,
	}, nil
}

var _ oauth2.TokenSource = (*SessionTokenSource)(nil)
