package security

import (
	"os"
	"testing"
	"time"

	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{
		JWTKey:   []byte("test-signing-secret-0123456789ab"),
		TokenTTL: 30 * time.Minute,
	}
	InitJWT()
	os.Exit(m.Run())
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", hash, "plaintext must never be stored")
	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("wrongpass", hash))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("secret123")
	require.NoError(t, err)
	h2, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "identical passwords must hash differently")
}

func TestGenerateTokenCarriesIdentity(t *testing.T) {
	tokenString, err := GenerateToken("user-1", "artist")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := TokenAuth.Decode(tokenString)
	require.NoError(t, err)

	assert.Equal(t, "artist", token.Subject())
	userID, ok := token.Get("user_id")
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)

	ttl := time.Until(token.Expiration())
	assert.Greater(t, ttl, 29*time.Minute)
	assert.LessOrEqual(t, ttl, 30*time.Minute)
}

func TestClaimHelpers(t *testing.T) {
	claims := map[string]interface{}{"user_id": "user-1", "sub": "artist"}

	userID, err := GetUserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	username, err := GetUsernameFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "artist", username)

	_, err = GetUserIDFromClaims(map[string]interface{}{})
	assert.Error(t, err)
	_, err = GetUsernameFromClaims(map[string]interface{}{"sub": 42})
	assert.Error(t, err)
}
