package handler_test

import (
	"net/http"
	"testing"

	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 'f', 'a', 'k', 'e'}

func textureFields() map[string]string {
	return map[string]string{
		"name":         "Metal Texture",
		"category":     "Texture",
		"license_type": "MIT",
		"source_url":   "https://example.com",
		"tags":         "metal,rust",
	}
}

type assetListResponse struct {
	Assets []model.Asset `json:"assets"`
}

func TestAssetLifecycleWithFile(t *testing.T) {
	router := newTestServer(t)
	token := registerAndLogin(t, router, "artist", "secret123")

	// Create with an attached PNG.
	resp := doMultipart(t, router, http.MethodPost, "/api/assets", token, textureFields(), "texture.png", pngBytes)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created model.Asset
	decodeBody(t, resp, &created)
	assert.Equal(t, "Metal Texture", created.Name)
	assert.Equal(t, []string{"metal", "rust"}, created.Tags)
	require.NotNil(t, created.FilePath)

	// Get returns the asset with a non-null file path.
	resp = doJSON(t, router, http.MethodGet, "/api/assets/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var fetched model.Asset
	decodeBody(t, resp, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	require.NotNil(t, fetched.FilePath)

	// Download returns the original bytes and filename.
	resp = doJSON(t, router, http.MethodGet, "/api/assets/"+created.ID+"/file", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, pngBytes, resp.Body.Bytes())
	assert.Contains(t, resp.Header().Get("Content-Disposition"), `attachment`)
	assert.Contains(t, resp.Header().Get("Content-Disposition"), `texture.png`)

	// Preview serves the bytes inline with an image content type.
	resp = doJSON(t, router, http.MethodGet, "/api/assets/"+created.ID+"/file-preview", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, pngBytes, resp.Body.Bytes())
	assert.Equal(t, "image/png", resp.Header().Get("Content-Type"))

	// Delete removes the row and the stored file.
	resp = doJSON(t, router, http.MethodDelete, "/api/assets/"+created.ID, token, nil)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = doJSON(t, router, http.MethodGet, "/api/assets/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp = doJSON(t, router, http.MethodGet, "/api/assets/"+created.ID+"/file", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateAssetRejectsUnknownCategory(t *testing.T) {
	router := newTestServer(t)
	token := registerAndLogin(t, router, "artist", "secret123")

	fields := textureFields()
	fields["category"] = "Voxel"
	resp := doMultipart(t, router, http.MethodPost, "/api/assets", token, fields, "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestListAssetsFilters(t *testing.T) {
	router := newTestServer(t)
	token := registerAndLogin(t, router, "artist", "secret123")

	resp := doMultipart(t, router, http.MethodPost, "/api/assets", token, textureFields(), "", nil)
	require.Equal(t, http.StatusCreated, resp.Code)

	music := map[string]string{
		"name": "Theme Song", "category": "Music", "license_type": "CC0",
		"source_url": "https://example.com", "tags": "orchestral",
	}
	resp = doMultipart(t, router, http.MethodPost, "/api/assets", token, music, "", nil)
	require.Equal(t, http.StatusCreated, resp.Code)

	var list assetListResponse

	resp = doJSON(t, router, http.MethodGet, "/api/assets", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeBody(t, resp, &list)
	assert.Len(t, list.Assets, 2)

	resp = doJSON(t, router, http.MethodGet, "/api/assets?category=Texture", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeBody(t, resp, &list)
	require.Len(t, list.Assets, 1)
	assert.Equal(t, model.CategoryTexture, list.Assets[0].Category)

	resp = doJSON(t, router, http.MethodGet, "/api/assets?tags=orchestral", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeBody(t, resp, &list)
	require.Len(t, list.Assets, 1)
	assert.Equal(t, "Theme Song", list.Assets[0].Name)

	resp = doJSON(t, router, http.MethodGet, "/api/assets?tags=voxel", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeBody(t, resp, &list)
	assert.Empty(t, list.Assets, "no match is an empty list, not an error")
}

func TestUpdateAssetPartial(t *testing.T) {
	router := newTestServer(t)
	token := registerAndLogin(t, router, "artist", "secret123")

	resp := doMultipart(t, router, http.MethodPost, "/api/assets", token, textureFields(), "", nil)
	require.Equal(t, http.StatusCreated, resp.Code)
	var created model.Asset
	decodeBody(t, resp, &created)

	// Only the provided fields are replaced.
	resp = doMultipart(t, router, http.MethodPut, "/api/assets/"+created.ID, token,
		map[string]string{"name": "Updated Name", "description": "Updated description"}, "", nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var updated model.Asset
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Updated Name", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Updated description", *updated.Description)
	assert.Equal(t, model.CategoryTexture, updated.Category)
	assert.Equal(t, "MIT", updated.LicenseType)
	assert.Equal(t, []string{"metal", "rust"}, updated.Tags)

	resp = doMultipart(t, router, http.MethodPut, "/api/assets/nonexistent", token,
		map[string]string{"name": "X"}, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAssetEndpointsIsolateUsers(t *testing.T) {
	router := newTestServer(t)
	tokenA := registerAndLogin(t, router, "artist", "secret123")
	tokenB := registerAndLogin(t, router, "user2", "pass2")

	resp := doMultipart(t, router, http.MethodPost, "/api/assets", tokenA, textureFields(), "private.txt", []byte("private content"))
	require.Equal(t, http.StatusCreated, resp.Code)
	var created model.Asset
	decodeBody(t, resp, &created)

	var list assetListResponse
	resp = doJSON(t, router, http.MethodGet, "/api/assets", tokenB, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeBody(t, resp, &list)
	assert.Empty(t, list.Assets)

	// Another user's asset is indistinguishable from a missing one.
	resp = doJSON(t, router, http.MethodGet, "/api/assets/"+created.ID, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp = doJSON(t, router, http.MethodGet, "/api/assets/"+created.ID+"/file", tokenB, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp = doJSON(t, router, http.MethodDelete, "/api/assets/"+created.ID, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// The owner still sees it untouched.
	resp = doJSON(t, router, http.MethodGet, "/api/assets/"+created.ID, tokenA, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestGetNonexistentAsset(t *testing.T) {
	router := newTestServer(t)
	token := registerAndLogin(t, router, "artist", "secret123")

	resp := doJSON(t, router, http.MethodGet, "/api/assets/99999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
