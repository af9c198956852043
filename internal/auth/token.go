package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/techgit41/Advanced-Todo-App/domain"
)

// Claims embeds the registered JWT claims plus the user identifier the
// session belongs to.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// TokenVerifier is the read side of Manager, injected wherever a request
// needs to be authenticated.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Manager issues and verifies stateless HS256 session tokens. Validity is a
// pure function of signature and expiry; nothing is stored server-side.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager builds a token manager signing with secret and issuing tokens
// valid for ttl (24h when non-positive).
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue mints a signed token embedding userID, issued now and expiring after
// the configured TTL.
func (m *Manager) Issue(userID string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
	})
	return token.SignedString(m.secret)
}

// Verify returns the user identifier carried by the token. Absent, malformed,
// tampered and expired tokens all fail with domain.ErrInvalidToken so callers
// respond uniformly as unauthenticated.
func (m *Manager) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", domain.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", domain.ErrInvalidToken
	}

	return claims.UserID, nil
}

var _ TokenVerifier = (*Manager)(nil)
