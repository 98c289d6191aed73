package token

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidate(t *testing.T) {
	signed, err := GenerateJWT(42, "PLAYER", testSecret, "tourney", 5)
	require.NoError(t, err)

	claims, err := ValidateJWT(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "PLAYER", claims.Role)
	assert.Equal(t, "tourney", claims.Issuer)
}

func TestValidateJWT_Rejects(t *testing.T) {
	signed, err := GenerateJWT(42, "PLAYER", testSecret, "tourney", 5)
	require.NoError(t, err)

	expired, err := GenerateJWT(42, "PLAYER", testSecret, "tourney", -5)
	require.NoError(t, err)

	noRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: 42}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
		want   string
	}{
		{"empty token", "", testSecret, "empty"},
		{"empty secret", signed, "", "secret key is empty"},
		{"wrong secret", signed, "other", "signature is invalid"},
		{"expired", expired, testSecret, "expired"},
		{"garbage", "not.a.jwt", testSecret, "could not parse"},
		{"missing role", noRole, testSecret, "role claim"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateJWT(tt.token, tt.secret)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
