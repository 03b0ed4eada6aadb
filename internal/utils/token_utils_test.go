package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenSecret = "unit-test-secret"

func TestOwnerToken_RoundTrip(t *testing.T) {
	token, err := IssueOwnerToken("owner-1", tokenSecret, time.Hour, "savings-test")
	require.NoError(t, err)

	ownerID, err := ParseOwnerToken(token, tokenSecret)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", ownerID)
}

func TestParseOwnerToken_WrongSecret(t *testing.T) {
	token, err := IssueOwnerToken("owner-1", tokenSecret, time.Hour, "savings-test")
	require.NoError(t, err)

	_, err = ParseOwnerToken(token, "another-secret")
	assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid))
}

func TestParseOwnerToken_Expired(t *testing.T) {
	token, err := IssueOwnerToken("owner-1", tokenSecret, -time.Minute, "savings-test")
	require.NoError(t, err)

	_, err = ParseOwnerToken(token, tokenSecret)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestParseOwnerToken_MissingSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(tokenSecret))
	require.NoError(t, err)

	_, err = ParseOwnerToken(token, tokenSecret)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestParseOwnerToken_RejectsUnsignedTokens(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: "owner-1"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseOwnerToken(token, tokenSecret)
	assert.Error(t, err)
}

func TestIssueOwnerToken_RequiresOwner(t *testing.T) {
	_, err := IssueOwnerToken("", tokenSecret, time.Hour, "savings-test")
	assert.ErrorIs(t, err, ErrMissingSubject)
}
