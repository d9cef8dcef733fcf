package pkg

import (
	"testing"
	"time"

	"github.com/simp-lee/svcadmin/internal/domain"
)

const testSecret = "0123456789abcdefghijklmnopqrstuv"

func TestTokenManager_GenerateAndParse(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	raw, err := m.GenerateToken("42", []string{"admin"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := m.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	id, err := claims.AdminID()
	if err != nil || id != 42 {
		t.Errorf("AdminID = %d, %v; want 42", id, err)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "admin" {
		t.Errorf("Roles = %v", claims.Roles)
	}
	if claims.ID == "" {
		t.Error("token ID not set")
	}

	tok, err := m.ParseToken(raw)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if time.Until(tok.ExpiresAt) <= 59*time.Minute {
		t.Errorf("unexpected expiry %v", tok.ExpiresAt)
	}
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	raw, err := m.GenerateToken("1", nil, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	expired := NewTokenManager(testSecret, time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expiredRaw, err := expired.GenerateToken("1", nil, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name string
		mgr  *TokenManager
		raw  string
	}{
		{"empty", m, ""},
		{"garbage", m, "not.a.token"},
		{"wrong secret", NewTokenManager("another-secret-another-secret-xx", time.Hour), raw},
		{"expired", m, expiredRaw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.mgr.Parse(tt.raw); !domain.IsUnauthorized(err) {
				t.Errorf("expected unauthorized, got %v", err)
			}
			if _, err := tt.mgr.ValidateToken(tt.raw); !domain.IsUnauthorized(err) {
				t.Errorf("ValidateToken: expected unauthorized, got %v", err)
			}
			if !tt.mgr.IsTokenRevoked(tt.raw) {
				t.Error("invalid token should count as revoked")
			}
		})
	}
}

func TestTokenManager_MissingSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour).GenerateToken("1", nil, time.Hour)
	if !domain.IsInternal(err) {
		t.Errorf("expected internal error, got %v", err)
	}
}

func TestTokenManager_RevokeToken(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	first, _ := m.GenerateToken("3", nil, time.Hour)
	second, _ := m.GenerateToken("3", nil, time.Hour)

	if err := m.RevokeToken(first); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
	if !m.IsTokenRevoked(first) {
		t.Error("first token should be revoked")
	}
	if _, err := m.Parse(first); !domain.IsUnauthorized(err) {
		t.Errorf("expected unauthorized for revoked token, got %v", err)
	}
	if m.IsTokenRevoked(second) {
		t.Error("other tokens of the same admin stay valid")
	}
	if err := m.RevokeToken("garbage"); !domain.IsUnauthorized(err) {
		t.Errorf("expected unauthorized, got %v", err)
	}
}

func TestTokenManager_Refresh(t *testing.T) {
	m := NewTokenManager(testSecret, 2*time.Hour)
	raw, _ := m.GenerateToken("5", []string{"admin"}, time.Minute)

	next, err := m.RefreshToken(raw)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if !m.IsTokenRevoked(raw) {
		t.Error("refreshed token should be revoked")
	}
	claims, err := m.Parse(next)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != "5" || len(claims.Roles) != 1 {
		t.Errorf("claims not carried over: %+v", claims)
	}
	if time.Until(claims.ExpiresAt.Time) <= time.Hour {
		t.Errorf("expected the default expiry, got %v", claims.ExpiresAt.Time)
	}

	if _, err := m.RefreshToken(raw); !domain.IsUnauthorized(err) {
		t.Errorf("refreshing a revoked token: expected unauthorized, got %v", err)
	}
}

func TestTokenManager_RevokeAllUserTokens(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	start := time.Now()
	m.now = func() time.Time { return start }

	mine, _ := m.GenerateToken("9", nil, time.Hour)
	theirs, _ := m.GenerateToken("10", nil, time.Hour)

	if err := m.RevokeAllUserTokens("9"); err != nil {
		t.Fatalf("RevokeAllUserTokens: %v", err)
	}
	if !m.IsTokenRevoked(mine) {
		t.Error("token issued before the cutoff should be revoked")
	}
	if m.IsTokenRevoked(theirs) {
		t.Error("another admin's token should stay valid")
	}

	m.now = func() time.Time { return start.Add(2 * time.Second) }
	fresh, _ := m.GenerateToken("9", nil, time.Hour)
	if m.IsTokenRevoked(fresh) {
		t.Error("token issued after the cutoff should be valid")
	}

	m.Close()
	if m.IsTokenRevoked(mine) {
		t.Error("Close drops the revocation lists")
	}
}
