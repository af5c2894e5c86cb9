package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", "loancalc", time.Hour)
	require.NoError(t, err)

	token, id, expiresAt, err := issuer.Issue()
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.ID)
	assert.Equal(t, "admin", claims.Subject)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)
}

func TestTokenIssuer_UniqueIDs(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", "loancalc", time.Hour)
	require.NoError(t, err)

	_, first, _, err := issuer.Issue()
	require.NoError(t, err)
	_, second, _, err := issuer.Issue()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", "loancalc", time.Minute)
	require.NoError(t, err)

	now := time.Now()
	issuer.now = func() time.Time { return now }
	token, _, _, err := issuer.Issue()
	require.NoError(t, err)

	issuer.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = issuer.Parse(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_WrongSecretOrIssuer(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", "loancalc", time.Hour)
	require.NoError(t, err)
	token, _, _, err := issuer.Issue()
	require.NoError(t, err)

	other, err := NewTokenIssuer("other", "loancalc", time.Hour)
	require.NoError(t, err)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, err := NewTokenIssuer("secret", "someone-else", time.Hour)
	require.NoError(t, err)
	_, err = foreign.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenIssuer_Invalid(t *testing.T) {
	_, err := NewTokenIssuer("", "loancalc", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenIssuer("secret", "loancalc", 0)
	assert.Error(t, err)
}
