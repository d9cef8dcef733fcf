package pkg

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/simp-lee/jwt"

	"github.com/simp-lee/svcadmin/internal/domain"
)

const tokenIssuer = "svcadmin"

// Claims are the JWT claims issued to admin accounts.
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	gojwt.RegisteredClaims
}

// AdminID returns the numeric admin ID carried in the subject claim.
func (c *Claims) AdminID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, domain.NewAppError(domain.CodeUnauthorized, "invalid token subject", err)
	}
	return uint(id), nil
}

// TokenManager issues, verifies and revokes HS256 access tokens. It
// implements jwt.Service.
type TokenManager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time

	mu            sync.Mutex
	revoked       map[string]time.Time // token ID -> token expiry
	revokedBefore map[string]time.Time // subject -> cutoff
}

var _ jwt.Service = (*TokenManager)(nil)

// NewTokenManager creates a TokenManager signing with secret. expiry is the
// lifetime RefreshToken gives a renewed token.
func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	return &TokenManager{
		secret:        []byte(secret),
		expiry:        expiry,
		now:           time.Now,
		revoked:       map[string]time.Time{},
		revokedBefore: map[string]time.Time{},
	}
}

// GenerateToken signs a token for userID valid for expiry.
func (m *TokenManager) GenerateToken(userID string, roles []string, expiry time.Duration) (string, error) {
	if len(m.secret) == 0 {
		return "", domain.NewAppError(domain.CodeInternal, "token secret is not configured", nil)
	}
	if userID == "" {
		return "", domain.NewAppError(domain.CodeInternal, "token subject is empty", nil)
	}

	now := m.now()
	claims := Claims{
		Roles: roles,
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    tokenIssuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(expiry)),
		},
	}

	raw, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", domain.NewAppError(domain.CodeInternal, "failed to sign token", err)
	}
	return raw, nil
}

// Parse verifies raw, including revocation, and returns its claims. Every
// failure is reported as CodeUnauthorized.
func (m *TokenManager) Parse(raw string) (*Claims, error) {
	claims, err := m.verify(raw)
	if err != nil {
		return nil, err
	}
	if m.isRevoked(claims) {
		return nil, domain.NewAppError(domain.CodeUnauthorized, "token revoked", nil)
	}
	return claims, nil
}

func (m *TokenManager) verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, domain.ErrUnauthorized
	}

	parsed, err := gojwt.ParseWithClaims(raw, &Claims{}, func(token *gojwt.Token) (any, error) {
		if token.Method != gojwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, gojwt.WithIssuer(tokenIssuer), gojwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return nil, domain.NewAppError(domain.CodeUnauthorized, "token expired", err)
		}
		return nil, domain.NewAppError(domain.CodeUnauthorized, "invalid token", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

func toToken(c *Claims) *jwt.Token {
	return &jwt.Token{ExpiresAt: c.ExpiresAt.Time}
}

// ValidateToken verifies raw and reports its expiry.
func (m *TokenManager) ValidateToken(raw string) (*jwt.Token, error) {
	claims, err := m.Parse(raw)
	if err != nil {
		return nil, err
	}
	return toToken(claims), nil
}

// ValidateAndParse is ValidateToken.
func (m *TokenManager) ValidateAndParse(raw string) (*jwt.Token, error) {
	return m.ValidateToken(raw)
}

// ParseToken is ValidateToken.
func (m *TokenManager) ParseToken(raw string) (*jwt.Token, error) {
	return m.ValidateToken(raw)
}

// RefreshToken revokes raw and issues a replacement with the default expiry.
func (m *TokenManager) RefreshToken(raw string) (string, error) {
	return m.RefreshTokenExtend(raw, m.expiry)
}

// RefreshTokenExtend revokes raw and issues a replacement valid for expiry.
func (m *TokenManager) RefreshTokenExtend(raw string, expiry time.Duration) (string, error) {
	claims, err := m.Parse(raw)
	if err != nil {
		return "", err
	}
	next, err := m.GenerateToken(claims.Subject, claims.Roles, expiry)
	if err != nil {
		return "", err
	}
	m.revoke(claims)
	return next, nil
}

// RevokeToken rejects raw from now on.
func (m *TokenManager) RevokeToken(raw string) error {
	claims, err := m.verify(raw)
	if err != nil {
		return err
	}
	m.revoke(claims)
	return nil
}

// IsTokenRevoked reports whether raw was revoked. Invalid tokens count as revoked.
func (m *TokenManager) IsTokenRevoked(raw string) bool {
	claims, err := m.verify(raw)
	if err != nil {
		return true
	}
	return m.isRevoked(claims)
}

// RevokeAllUserTokens rejects every token issued to userID up to now.
func (m *TokenManager) RevokeAllUserTokens(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revokedBefore[userID] = m.now()
	return nil
}

// Close drops the revocation lists.
func (m *TokenManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.revoked)
	clear(m.revokedBefore)
}

func (m *TokenManager) revoke(c *Claims) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, exp := range m.revoked {
		if exp.Before(now) {
			delete(m.revoked, id)
		}
	}
	m.revoked[c.ID] = c.ExpiresAt.Time
}

func (m *TokenManager) isRevoked(c *Claims) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.revoked[c.ID]; ok {
		return true
	}
	cutoff, ok := m.revokedBefore[c.Subject]
	return ok && c.IssuedAt != nil && !c.IssuedAt.Time.After(cutoff)
}
