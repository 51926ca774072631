package token

import (
	"testing"
	"time"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

func TestManager_PairRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour, 24*time.Hour)

	pair, err := m.Pair("acct-1")
	if err != nil {
		t.Fatalf("Pair returned error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if pair.TokenType != "bearer" {
		t.Fatalf("unexpected token type: %s", pair.TokenType)
	}

	sub, err := m.Verify(pair.AccessToken, ports.TokenAccess)
	if err != nil {
		t.Fatalf("access verify failed: %v", err)
	}
	if sub != "acct-1" {
		t.Fatalf("unexpected subject: %s", sub)
	}

	sub, err = m.Verify(pair.RefreshToken, ports.TokenRefresh)
	if err != nil {
		t.Fatalf("refresh verify failed: %v", err)
	}
	if sub != "acct-1" {
		t.Fatalf("unexpected subject: %s", sub)
	}
}

func TestManager_Verify_KindMismatch(t *testing.T) {
	m := NewManager("secret", time.Hour, 24*time.Hour)
	pair, err := m.Pair("acct-1")
	if err != nil {
		t.Fatalf("Pair returned error: %v", err)
	}

	if _, err := m.Verify(pair.RefreshToken, ports.TokenAccess); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for refresh-as-access, got %v", err)
	}
	if _, err := m.Verify(pair.AccessToken, ports.TokenRefresh); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for access-as-refresh, got %v", err)
	}
}

func TestManager_Verify_Expired(t *testing.T) {
	m := NewManager("secret", time.Hour, 24*time.Hour)
	tkn, err := m.Issue("acct-1", ports.TokenAccess, -time.Minute)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := m.Verify(tkn, ports.TokenAccess); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestManager_Verify_WrongSecret(t *testing.T) {
	m := NewManager("secret", time.Hour, 24*time.Hour)
	other := NewManager("other-secret", time.Hour, 24*time.Hour)

	tkn, err := m.Issue("acct-1", ports.TokenAccess, time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := other.Verify(tkn, ports.TokenAccess); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestManager_Verify_Malformed(t *testing.T) {
	m := NewManager("secret", time.Hour, 24*time.Hour)
	if _, err := m.Verify("not-a-token", ports.TokenAccess); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}
