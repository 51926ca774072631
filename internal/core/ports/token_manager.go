package ports

import "time"

// TokenKind tags a token as access or refresh. Verification demands an exact
// kind match; a refresh token never authorizes a request.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// TokenPair is the credential pair issued on registration and login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// TokenManager issues and verifies signed bearer tokens.
type TokenManager interface {
	Issue(subject string, kind TokenKind, ttl time.Duration) (string, error)
	// Pair issues an access and a refresh token for subject using the
	// manager's configured lifetimes.
	Pair(subject string) (TokenPair, error)
	// Verify returns the subject encoded in token. It fails closed with
	// domain.ErrInvalidToken on signature mismatch, expiry, malformed payload,
	// or kind mismatch.
	Verify(token string, kind TokenKind) (string, error)
}
