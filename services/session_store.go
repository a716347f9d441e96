package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"ps-dashboard-api/models"
)

// SignInTimeout bounds the credential exchange. A timeout is reported as an
// ordinary login failure, indistinguishable from bad credentials.
const SignInTimeout = 30 * time.Second

var ErrLoginFailed = errors.New("invalid email or password")

// SessionInfo identifies an authenticated principal as reported by the
// identity provider.
type SessionInfo struct {
	UserID string
	Email  string
}

// SessionEvent notifies subscribers of provider-level session changes.
type SessionEvent struct {
	Type    string // signed_in|signed_out|token_refreshed
	Session *SessionInfo
}

// IdentityProvider is the consumed identity service. Subscribers must not be
// blocked by re-entrant calls back into the provider, so event handlers defer
// any real work off the delivery goroutine.
type IdentityProvider interface {
	ExchangeCredentials(ctx context.Context, email, password string) (*SessionInfo, error)
	Invalidate(userID string) error
	Subscribe(fn func(SessionEvent)) func()
}

// SessionStore tracks one authenticated identity and its resolved profile.
type SessionStore struct {
	provider IdentityProvider
	profiles ProfileResolver
	timeout  time.Duration

	mu      sync.RWMutex
	session *SessionInfo

	unsubscribe func()
	wg          sync.WaitGroup
}

// ProfileResolver is the slice of ProfileService the store needs.
type ProfileResolver interface {
	Resolve(userID, fallbackEmail string) (*models.AppUser, error)
}

func NewSessionStore(provider IdentityProvider, profiles ProfileResolver) *SessionStore {
	s := &SessionStore{
		provider: provider,
		profiles: profiles,
		timeout:  SignInTimeout,
	}
	s.unsubscribe = provider.Subscribe(s.handleSessionEvent)
	return s
}

// SignIn races the credential exchange against the sign-in timeout. The
// profile itself is populated by the session-change handler, not here.
func (s *SessionStore) SignIn(ctx context.Context, email, password string) (*SessionInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type exchangeResult struct {
		session *SessionInfo
		err     error
	}
	ch := make(chan exchangeResult, 1)
	go func() {
		session, err := s.provider.ExchangeCredentials(ctx, email, password)
		ch <- exchangeResult{session, err}
	}()

	select {
	case res := <-ch:
		if res.err != nil || res.session == nil {
			return nil, ErrLoginFailed
		}
		s.mu.Lock()
		s.session = res.session
		s.mu.Unlock()
		return res.session, nil
	case <-ctx.Done():
		return nil, ErrLoginFailed
	}
}

// SignOut clears local state first, then asks the provider to invalidate the
// session. The remote invalidation is best effort.
func (s *SessionStore) SignOut() {
	s.mu.Lock()
	current := s.session
	s.session = nil
	s.mu.Unlock()

	if current != nil {
		if err := s.provider.Invalidate(current.UserID); err != nil {
			log.Printf("Warning: session invalidation failed: %v", err)
		}
	}
}

// Current returns the session established by the last sign-in, if any.
func (s *SessionStore) Current() *SessionInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// RefreshProfile re-resolves the current session's profile without a new
// credential exchange.
func (s *SessionStore) RefreshProfile() (*models.AppUser, error) {
	current := s.Current()
	if current == nil {
		return nil, errors.New("no active session")
	}
	return s.profiles.Resolve(current.UserID, current.Email)
}

// handleSessionEvent reacts to provider notifications. Backend work is
// deferred to a fresh goroutine; some providers deadlock when the callback
// re-enters them synchronously.
func (s *SessionStore) handleSessionEvent(ev SessionEvent) {
	switch ev.Type {
	case "signed_out":
		s.mu.Lock()
		s.session = nil
		s.mu.Unlock()
	case "signed_in", "token_refreshed":
		if ev.Session == nil {
			return
		}
		s.mu.Lock()
		s.session = ev.Session
		s.mu.Unlock()

		s.wg.Add(1)
		go func(session SessionInfo) {
			defer s.wg.Done()
			if _, err := s.profiles.Resolve(session.UserID, session.Email); err != nil {
				log.Printf("Warning: profile refresh after session change failed: %v", err)
			}
		}(*ev.Session)
	}
}

// Close detaches the store from provider notifications and waits for any
// deferred refreshes to finish.
func (s *SessionStore) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.wg.Wait()
}
