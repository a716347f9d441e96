package services

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ps-dashboard-api/models"
)

// DBIdentityProvider implements IdentityProvider against the profiles table,
// with bcrypt password verification. Session-change events are delivered on
// their own goroutine so a subscriber can safely call back into the provider.
type DBIdentityProvider struct {
	db *gorm.DB

	mu      sync.Mutex
	subs    map[int]func(SessionEvent)
	nextSub int
}

func NewDBIdentityProvider(db *gorm.DB) *DBIdentityProvider {
	return &DBIdentityProvider{
		db:   db,
		subs: make(map[int]func(SessionEvent)),
	}
}

func (p *DBIdentityProvider) ExchangeCredentials(ctx context.Context, email, password string) (*SessionInfo, error) {
	var profile models.Profile
	if err := p.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, ErrLoginFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password)); err != nil {
		return nil, ErrLoginFailed
	}

	session := &SessionInfo{UserID: profile.ID, Email: profile.Email}
	p.emit(SessionEvent{Type: "signed_in", Session: session})
	return session, nil
}

// Invalidate signals sign-out to subscribers. Tokens are stateless JWTs, so
// there is nothing to revoke server side; they simply expire.
func (p *DBIdentityProvider) Invalidate(userID string) error {
	p.emit(SessionEvent{Type: "signed_out", Session: &SessionInfo{UserID: userID}})
	return nil
}

func (p *DBIdentityProvider) Subscribe(fn func(SessionEvent)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

func (p *DBIdentityProvider) emit(ev SessionEvent) {
	p.mu.Lock()
	fns := make([]func(SessionEvent), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		go fn(ev)
	}
}
