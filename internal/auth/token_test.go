package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/techgit41/Advanced-Todo-App/domain"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	m := NewManager("super-secret", time.Hour)

	token, err := m.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", userID)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	m := NewManager("super-secret", time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.Issue("user-123")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(token)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewManager("right-secret", time.Hour)
	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	verifier := NewManager("wrong-secret", time.Hour)
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	m := NewManager("super-secret", time.Hour)

	for _, token := range []string{"", "not.a.jwt", "garbage"} {
		_, err := m.Verify(token)
		require.ErrorIs(t, err, domain.ErrInvalidToken, "token %q", token)
	}
}

func TestDefaultTTL(t *testing.T) {
	t.Parallel()

	m := NewManager("super-secret", 0)
	require.Equal(t, 24*time.Hour, m.ttl)
}
