package credentials

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-our-secret"))
	require.NoError(t, err)
	return s
}

func TestPeek_ReadsUserIDAndExpiry(t *testing.T) {
	exp := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	tok := signed(t, jwt.MapClaims{"user_id": 42, "exp": exp.Unix(), "token_type": "access"})

	c, err := Peek(tok)
	require.NoError(t, err)
	assert.Equal(t, "42", c.UserID)
	assert.True(t, c.ExpiresAt.Equal(exp))
	assert.False(t, c.Expired(exp.Add(-time.Minute)))
	assert.True(t, c.Expired(exp))
}

func TestPeek_FallsBackToSubject(t *testing.T) {
	c, err := Peek(signed(t, jwt.MapClaims{"sub": "u-1"}))
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UserID)
	assert.True(t, c.ExpiresAt.IsZero())
	assert.False(t, c.Expired(time.Now()))
}

func TestPeek_Malformed(t *testing.T) {
	_, err := Peek("definitely.not.jwt")
	require.ErrorIs(t, err, ErrMalformedToken)
}
