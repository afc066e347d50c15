package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/api/middleware"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/app/service"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/common"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/domain/model"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/platform/config"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type AssetHandler struct {
	assetService *service.AssetService
}

func NewAssetHandler(as *service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: as}
}

func (h *AssetHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listAssets)    // GET /api/assets
	r.Post("/", h.createAsset)  // POST /api/assets
	r.Get("/{assetID}", h.getAsset)
	r.Put("/{assetID}", h.updateAsset)
	r.Delete("/{assetID}", h.deleteAsset)
	r.Get("/{assetID}/file", h.downloadFile)
	r.Get("/{assetID}/file-preview", h.previewFile)
}

func (h *AssetHandler) createAsset(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(config.AppConfig.MaxUploadBytes); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	req := service.CreateAssetRequest{
		Name:        r.FormValue("name"),
		Category:    r.FormValue("category"),
		LicenseType: r.FormValue("license_type"),
		SourceURL:   r.FormValue("source_url"),
		Description: formPtr(r, "description"),
		Tags:        r.FormValue("tags"),
	}

	upload, err := formUpload(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid file upload: "+err.Error())
		return
	}

	asset, err := h.assetService.Create(r.Context(), ownerID, req, upload)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, asset)
}

func (h *AssetHandler) listAssets(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	category := r.URL.Query().Get("category")
	tags := r.URL.Query().Get("tags")

	assets, err := h.assetService.List(r.Context(), ownerID, category, tags)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type assetListResponse struct {
		Assets []model.Asset `json:"assets"`
	}
	common.RespondWithJSON(w, http.StatusOK, assetListResponse{Assets: assets})
}

func (h *AssetHandler) getAsset(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	asset, err := h.assetService.Get(r.Context(), ownerID, chi.URLParam(r, "assetID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, asset)
}

func (h *AssetHandler) updateAsset(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(config.AppConfig.MaxUploadBytes); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	req := service.UpdateAssetRequest{
		Name:        formPtr(r, "name"),
		Category:    formPtr(r, "category"),
		LicenseType: formPtr(r, "license_type"),
		SourceURL:   formPtr(r, "source_url"),
		Description: formPtr(r, "description"),
		Tags:        formPtr(r, "tags"),
	}

	upload, err := formUpload(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid file upload: "+err.Error())
		return
	}

	asset, err := h.assetService.Update(r.Context(), ownerID, chi.URLParam(r, "assetID"), req, upload)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, asset)
}

func (h *AssetHandler) deleteAsset(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.assetService.Delete(r.Context(), ownerID, chi.URLParam(r, "assetID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AssetHandler) downloadFile(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	content, filename, err := h.assetService.GetFile(r.Context(), ownerID, chi.URLParam(r, "assetID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	defer content.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := io.Copy(w, content); err != nil {
		logrus.WithError(err).Warn("failed to stream file download")
	}
}

func (h *AssetHandler) previewFile(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	content, filename, err := h.assetService.GetFilePreview(r.Context(), ownerID, chi.URLParam(r, "assetID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	defer content.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "inline")
	if _, err := io.Copy(w, content); err != nil {
		logrus.WithError(err).Warn("failed to stream file preview")
	}
}

// callerID pulls the authenticated user from the request context.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return "", false
	}
	return ownerID, true
}

// formPtr returns a pointer to the form value when the key is present in
// the multipart form, distinguishing "absent" from "empty".
func formPtr(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func formUpload(r *http.Request) (*service.Upload, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	return &service.Upload{Filename: header.Filename, Content: file}, nil
}
