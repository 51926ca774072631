// Package token issues and verifies the signed bearer tokens used by the
// API: short-lived access tokens and longer-lived refresh tokens, both HS256
// over a shared secret.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

const (
	defaultAccessTTL  = 30 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

type claims struct {
	Kind string `json:"type"`
	jwt.RegisteredClaims
}

// Manager implements ports.TokenManager with an HS256 shared secret.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewManager creates a Manager. Non-positive TTLs fall back to the defaults.
func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &Manager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Issue signs a token of the given kind for subject, expiring after ttl.
func (m *Manager) Issue(subject string, kind ports.TokenKind, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		Kind: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// Pair issues an access and a refresh token for subject using the configured
// lifetimes.
func (m *Manager) Pair(subject string) (ports.TokenPair, error) {
	access, err := m.Issue(subject, ports.TokenAccess, m.accessTTL)
	if err != nil {
		return ports.TokenPair{}, err
	}
	refresh, err := m.Issue(subject, ports.TokenRefresh, m.refreshTTL)
	if err != nil {
		return ports.TokenPair{}, err
	}
	return ports.TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// Verify parses and validates tokenString, demanding an exact kind match.
// It fails closed with domain.ErrInvalidToken on any defect: bad signature,
// expiry, malformed payload, or a token of the wrong kind.
func (m *Manager) Verify(tokenString string, kind ports.TokenKind) (string, error) {
	var c claims
	tkn, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrInvalidToken
	}
	if c.Kind != string(kind) || c.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return c.Subject, nil
}
