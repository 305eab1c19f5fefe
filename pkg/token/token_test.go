package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer, err := NewIssuer("0123456789abcdef", time.Hour)
	require.NoError(t, err)

	raw, expiresAt, err := issuer.Issue(Claims{UserID: 7, Email: "a@example.com", Role: "admin", GroupCode: "ABCD2345"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, Claims{UserID: 7, Email: "a@example.com", Role: "admin", GroupCode: "ABCD2345"}, claims)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer, err := NewIssuer("0123456789abcdef", time.Minute)
	require.NoError(t, err)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

	raw, _, err := issuer.Issue(Claims{UserID: 1})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(raw)
	assert.Error(t, err)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	issuer, err := NewIssuer("0123456789abcdef", time.Minute)
	require.NoError(t, err)
	other, err := NewIssuer("fedcba9876543210", time.Minute)
	require.NoError(t, err)

	raw, _, err := other.Issue(Claims{UserID: 1})
	require.NoError(t, err)

	_, err = issuer.Parse(raw)
	assert.Error(t, err)
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	_, err := NewIssuer("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestFromMapRejectsBadSubject(t *testing.T) {
	_, err := FromMap(map[string]interface{}{"sub": "abc"})
	assert.Error(t, err)
}
