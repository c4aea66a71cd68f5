package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTMaker_RoundTrip(t *testing.T) {
	maker := NewJWTMaker(testSecret, "coderstat")
	userID := uuid.New()

	token, created, err := maker.CreateToken(userID, time.Minute)
	require.NoError(t, err)

	claims, err := maker.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, created.ID, claims.ID)
	assert.Equal(t, "coderstat", claims.Issuer)
}

func TestJWTMaker_Rejects(t *testing.T) {
	maker := NewJWTMaker(testSecret, "coderstat")
	userID := uuid.New()

	expired, _, err := maker.CreateToken(userID, -time.Minute)
	require.NoError(t, err)

	otherKey, _, err := NewJWTMaker("ffffffffffffffffffffffffffffffff", "coderstat").CreateToken(userID, time.Minute)
	require.NoError(t, err)

	otherIssuer, _, err := NewJWTMaker(testSecret, "someone-else").CreateToken(userID, time.Minute)
	require.NoError(t, err)

	noUser, _, err := maker.CreateToken(uuid.Nil, time.Minute)
	require.NoError(t, err)

	claims, _ := NewUserClaims(userID, "coderstat", time.Minute)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	testCases := map[string]string{
		"expired":      expired,
		"wrong key":    otherKey,
		"wrong issuer": otherIssuer,
		"nil user":     noUser,
		"alg none":     none,
		"garbage":      "not.a.token",
	}
	for name, token := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := maker.VerifyToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
