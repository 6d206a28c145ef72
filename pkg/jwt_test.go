package utils

import (
	"testing"
	"time"

	entity "leafloop/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jwtSecret = []byte("test-secret")

func testUser() *entity.User {
	return &entity.User{ID: uuid.New(), Username: "alice"}
}

func TestGenerateAndValidateToken(t *testing.T) {
	user := testUser()

	token, err := GenerateToken(user, jwtSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, jwtSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "leafloop", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testUser(), jwtSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, []byte("other-secret"))
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken(testUser(), jwtSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, jwtSecret)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("garbage", jwtSecret)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	user := testUser()

	token, err := GenerateRefreshToken(user, jwtSecret)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, jwtSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
}

func TestRefreshTokenNotAcceptedAsAccessSecretMismatch(t *testing.T) {
	token, err := GenerateRefreshToken(testUser(), jwtSecret)
	require.NoError(t, err)

	_, err = ValidateRefreshToken(token, []byte("other-secret"))
	assert.Error(t, err)
}
