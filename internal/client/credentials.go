package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/simp-lee/svcadmin/internal/domain"
)

// tokenRefreshMargin renews a login token shortly before it expires.
const tokenRefreshMargin = 30 * time.Second

// CredentialProvider supplies the bearer token attached to each API call.
// An empty token sends no Authorization header.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

type invalidator interface {
	Invalidate()
}

// StaticToken is a fixed bearer token.
type StaticToken string

// Token implements CredentialProvider.
func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// LoginProvider logs in with an admin's email and password and caches the
// issued token until shortly before it expires.
type LoginProvider struct {
	email    string
	password string
	client   *Client
	now      func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewLoginProvider returns a provider for the given account. Passing it to
// New binds it to that Client.
func NewLoginProvider(email, password string) *LoginProvider {
	return &LoginProvider{email: email, password: password, now: time.Now}
}

// Token implements CredentialProvider.
func (p *LoginProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.now().Add(tokenRefreshMargin).Before(p.expiresAt) {
		return p.token, nil
	}
	if p.client == nil {
		return "", errors.New("client: login provider is not bound to a client")
	}

	token, expiresAt, err := p.client.Login(ctx, p.email, p.password)
	if err != nil {
		return "", domain.NewAppError(domain.CodeUnauthorized, "console login failed", err)
	}
	p.token, p.expiresAt = token, expiresAt
	return token, nil
}

// Invalidate drops the cached token so the next call logs in again.
func (p *LoginProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = ""
	p.expiresAt = time.Time{}
}
