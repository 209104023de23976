package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour)

	raw, exp, err := m.Issue(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), exp, 5*time.Second)

	claims, err := m.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.SubjectID)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestVerifyExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	raw, _, err := m.Issue(7, "customer")
	require.NoError(t, err)

	claims, err := m.Verify(raw)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)

	raw, _, err := issuer.Issue(7, "customer")
	require.NoError(t, err)

	claims, err := verifier.Verify(raw)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyMalformed(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		claims, err := m.Verify(raw)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", raw)
	}
}

func TestVerifyTamperedPayload(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	raw, _, err := m.Issue(7, "customer")
	require.NoError(t, err)

	// Flip a character inside the payload segment.
	tampered := []byte(raw)
	mid := len(tampered) / 2
	if tampered[mid] == 'A' {
		tampered[mid] = 'B'
	} else {
		tampered[mid] = 'A'
	}

	claims, err := m.Verify(string(tampered))
	assert.Nil(t, claims)
	assert.Error(t, err)
}
