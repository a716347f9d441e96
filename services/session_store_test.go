package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ps-dashboard-api/models"
)

type fakeProvider struct {
	mu          sync.Mutex
	delay       time.Duration
	err         error
	session     *SessionInfo
	invalidated []string
	subs        []func(SessionEvent)
}

func (p *fakeProvider) ExchangeCredentials(ctx context.Context, email, password string) (*SessionInfo, error) {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.session, nil
}

func (p *fakeProvider) Invalidate(userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invalidated = append(p.invalidated, userID)
	return nil
}

func (p *fakeProvider) Subscribe(fn func(SessionEvent)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
	return func() {}
}

// emit delivers synchronously, the worst case the store has to tolerate.
func (p *fakeProvider) emit(ev SessionEvent) {
	p.mu.Lock()
	subs := append([]func(SessionEvent){}, p.subs...)
	p.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

type fakeResolver struct {
	mu    sync.Mutex
	block chan struct{}
	calls []string
	user  *models.AppUser
	err   error
}

func (r *fakeResolver) Resolve(userID, fallbackEmail string) (*models.AppUser, error) {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	r.calls = append(r.calls, userID)
	r.mu.Unlock()
	return r.user, r.err
}

func (r *fakeResolver) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestSignInSuccess(t *testing.T) {
	provider := &fakeProvider{session: &SessionInfo{UserID: "u1", Email: "u1@example.edu"}}
	store := NewSessionStore(provider, &fakeResolver{})
	defer store.Close()

	session, err := store.SignIn(context.Background(), "u1@example.edu", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", session.UserID)

	current := store.Current()
	require.NotNil(t, current)
	assert.Equal(t, "u1", current.UserID)
}

func TestSignInBadCredentials(t *testing.T) {
	provider := &fakeProvider{err: errors.New("denied")}
	store := NewSessionStore(provider, &fakeResolver{})
	defer store.Close()

	_, err := store.SignIn(context.Background(), "u1@example.edu", "wrong")
	assert.ErrorIs(t, err, ErrLoginFailed)
	assert.Nil(t, store.Current())
}

func TestSignInTimeoutLooksLikeBadCredentials(t *testing.T) {
	provider := &fakeProvider{
		delay:   200 * time.Millisecond,
		session: &SessionInfo{UserID: "u1", Email: "u1@example.edu"},
	}
	store := NewSessionStore(provider, &fakeResolver{})
	defer store.Close()
	store.timeout = 20 * time.Millisecond

	start := time.Now()
	_, err := store.SignIn(context.Background(), "u1@example.edu", "secret")
	elapsed := time.Since(start)

	// Timed-out exchange surfaces as the generic login failure and does not
	// wait out the slow provider.
	assert.ErrorIs(t, err, ErrLoginFailed)
	assert.Less(t, elapsed, 150*time.Millisecond)
	assert.Nil(t, store.Current())
}

func TestSignOutClearsStateAndInvalidates(t *testing.T) {
	provider := &fakeProvider{session: &SessionInfo{UserID: "u1", Email: "u1@example.edu"}}
	store := NewSessionStore(provider, &fakeResolver{})
	defer store.Close()

	_, err := store.SignIn(context.Background(), "u1@example.edu", "secret")
	require.NoError(t, err)

	store.SignOut()

	assert.Nil(t, store.Current())
	provider.mu.Lock()
	defer provider.mu.Unlock()
	assert.Equal(t, []string{"u1"}, provider.invalidated)
}

func TestSessionChangeDefersProfileWork(t *testing.T) {
	resolver := &fakeResolver{
		block: make(chan struct{}),
		user:  &models.AppUser{ID: "u1"},
	}
	provider := &fakeProvider{}
	store := NewSessionStore(provider, resolver)

	// Synchronous delivery must return promptly even while the profile
	// resolution is stuck.
	done := make(chan struct{})
	go func() {
		provider.emit(SessionEvent{Type: "signed_in", Session: &SessionInfo{UserID: "u1", Email: "u1@example.edu"}})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("session-change callback blocked on profile resolution")
	}

	close(resolver.block)
	store.Close()

	assert.Equal(t, 1, resolver.callCount())

	current := store.Current()
	require.NotNil(t, current)
	assert.Equal(t, "u1", current.UserID)
}

func TestSignedOutEventClearsSession(t *testing.T) {
	provider := &fakeProvider{session: &SessionInfo{UserID: "u1", Email: "u1@example.edu"}}
	store := NewSessionStore(provider, &fakeResolver{})
	defer store.Close()

	_, err := store.SignIn(context.Background(), "u1@example.edu", "secret")
	require.NoError(t, err)

	provider.emit(SessionEvent{Type: "signed_out"})
	assert.Nil(t, store.Current())
}

func TestRefreshProfile(t *testing.T) {
	resolver := &fakeResolver{user: &models.AppUser{ID: "u1", Name: "U One"}}
	provider := &fakeProvider{session: &SessionInfo{UserID: "u1", Email: "u1@example.edu"}}
	store := NewSessionStore(provider, resolver)
	defer store.Close()

	_, err := store.RefreshProfile()
	assert.Error(t, err, "no session yet")

	_, err = store.SignIn(context.Background(), "u1@example.edu", "secret")
	require.NoError(t, err)

	user, err := store.RefreshProfile()
	require.NoError(t, err)
	assert.Equal(t, "U One", user.Name)
}
