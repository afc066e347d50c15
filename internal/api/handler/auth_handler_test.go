package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/app/service"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/common/security"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	router := newTestServer(t)

	resp := doJSON(t, router, http.MethodPost, "/api/auth/register", "",
		map[string]string{"username": "newuser", "password": "securepass123"})
	require.Equal(t, http.StatusCreated, resp.Code)

	var out service.RegisterResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "newuser", out.Username)
	assert.NotEmpty(t, out.UserID)
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	router := newTestServer(t)
	creds := map[string]string{"username": "artist", "password": "secret123"}

	resp := doJSON(t, router, http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(t, router, http.MethodPost, "/api/auth/register", "", creds)
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestRegisterEndpointMissingFields(t *testing.T) {
	router := newTestServer(t)

	resp := doJSON(t, router, http.MethodPost, "/api/auth/register", "",
		map[string]string{"username": "", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doJSON(t, router, http.MethodPost, "/api/auth/register", "",
		map[string]string{"username": "artist", "password": ""})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router := newTestServer(t)
	creds := map[string]string{"username": "artist", "password": "secret123"}

	resp := doJSON(t, router, http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(t, router, http.MethodPost, "/api/auth/login", "", creds)
	require.Equal(t, http.StatusOK, resp.Code)

	var out service.LoginResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "bearer", out.TokenType)
	assert.NotEmpty(t, out.AccessToken)
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	router := newTestServer(t)

	resp := doJSON(t, router, http.MethodPost, "/api/auth/register", "",
		map[string]string{"username": "artist", "password": "secret123"})
	require.Equal(t, http.StatusCreated, resp.Code)

	wrongPass := doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "artist", "password": "wrongpassword"})
	unknownUser := doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "doesnotexist", "password": "somepass"})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	// Responses must not reveal whether the username exists.
	assert.Equal(t, wrongPass.Body.String(), unknownUser.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestServer(t)

	resp := doJSON(t, router, http.MethodGet, "/api/assets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code, "missing token")

	resp = doJSON(t, router, http.MethodGet, "/api/assets", "invalid_token_here", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code, "malformed token")
}

func TestExpiredTokenRejected(t *testing.T) {
	router := newTestServer(t)
	registerAndLogin(t, router, "artist", "secret123")

	// Issue a token that is already past its expiry.
	savedTTL := config.AppConfig.TokenTTL
	config.AppConfig.TokenTTL = -time.Minute
	expired, err := security.GenerateToken("user-1", "artist")
	config.AppConfig.TokenTTL = savedTTL
	require.NoError(t, err)

	resp := doJSON(t, router, http.MethodGet, "/api/assets", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
