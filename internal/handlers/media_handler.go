package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/ettora/mediastore/internal/models"
	"github.com/ettora/mediastore/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxUploadSize limits multipart form memory for file uploads (50MB)
const maxUploadSize = 50 << 20

// MediaService is the interface that wraps methods for media business logic
type MediaService interface {
	// Method Upload validates the submission, persists the file and inserts
	// the metadata record.
	//
	// Missing or invalid fields yield an error wrapping services.ErrValidation;
	// any other failure means neither a usable file reference nor a record was
	// created.
	Upload(ctx context.Context, in services.UploadInput) (*models.MediaRecord, error)
	// Method List retrieves one page of media records, newest first.
	//
	// Non-positive "page" and "limit" fall back to the service defaults.
	List(ctx context.Context, page, limit int) ([]models.MediaRecord, error)
	// Method Delete removes the record with the given id and best-effort
	// removes its file.
	//
	// An empty id yields an error wrapping services.ErrValidation; a missing
	// record yields an error wrapping services.ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// MediaHandler handles media-related HTTP requests
type MediaHandler struct {
	BaseHandler
	service MediaService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(service MediaService, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all media handler routes
func (h *MediaHandler) RegisterRoutes(r chi.Router) {
	r.Post("/upload", h.Upload)
	r.Get("/media", h.ListMedia)
	r.Delete("/media", h.DeleteMedia)
	r.Get("/images", h.ListImages)
}

// uploadResponse is the envelope returned by POST /upload
type uploadResponse struct {
	Success  bool             `json:"success"`
	Filename string           `json:"filename,omitempty"`
	Name     string           `json:"name,omitempty"`
	Category models.Category  `json:"category,omitempty"`
	Type     models.MediaType `json:"type,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// Upload handles POST /upload
// @Summary Upload a media file
// @Description Upload an image or video with its display name, category and type. Images are re-encoded to WebP and resized to fit 1200x1200.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Binary payload"
// @Param name formData string true "Display name"
// @Param category formData string true "Category (product, model or video)"
// @Param type formData string true "Media type (image or video)"
// @Success 200 {object} uploadResponse
// @Failure 400 {object} uploadResponse "Missing or invalid fields"
// @Failure 500 {object} uploadResponse "Storage failure"
// @Router /upload [post]
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.Logger.Error("failed to parse multipart form", zap.Error(err))
		h.RespondJSON(w, http.StatusBadRequest, uploadResponse{Success: false, Error: "All fields are required"})
		return
	}

	in := services.UploadInput{
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
		Type:     r.FormValue("type"),
	}

	file, _, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		in.File = file
	}

	record, err := h.service.Upload(r.Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			h.Logger.Info("upload rejected", zap.Error(err))
			h.RespondJSON(w, http.StatusBadRequest, uploadResponse{Success: false, Error: "All fields are required"})
			return
		}
		h.Logger.Error("failed to save upload", zap.Error(err))
		h.RespondJSON(w, http.StatusInternalServerError, uploadResponse{Success: false, Error: "Failed to save the file"})
		return
	}

	h.RespondJSON(w, http.StatusOK, uploadResponse{
		Success:  true,
		Filename: record.Filename,
		Name:     record.Name,
		Category: record.Category,
		Type:     record.Type,
	})
}

// ListMedia handles GET /media
// @Summary List media records
// @Description Returns one page of media records ordered by upload date descending.
// @Tags media
// @Produce json
// @Param page query int false "1-based page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} map[string][]models.MediaRecord
// @Failure 500 {object} map[string]string
// @Router /media [get]
func (h *MediaHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	records, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		h.Logger.Error("failed to fetch media", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "Failed to fetch media")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string][]models.MediaRecord{"media": records})
}

// ListImages handles GET /images, an alternate read-only listing endpoint
// with the same semantics as GET /media
// @Summary List media records (images alias)
// @Description Identical to GET /media but the page is returned under the "images" key.
// @Tags media
// @Produce json
// @Param page query int false "1-based page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} map[string][]models.MediaRecord
// @Failure 500 {object} map[string]string
// @Router /images [get]
func (h *MediaHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	records, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		h.Logger.Error("failed to fetch images", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "Failed to fetch images")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string][]models.MediaRecord{"images": records})
}

// DeleteMedia handles DELETE /media
// @Summary Delete a media record
// @Description Removes the metadata record and best-effort removes the stored file.
// @Tags media
// @Produce json
// @Param id query string true "Record ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Missing id"
// @Failure 404 {object} map[string]string "Record not found"
// @Failure 500 {object} map[string]string
// @Router /media [delete]
func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			h.RespondError(w, http.StatusBadRequest, "Media ID is required")
		case errors.Is(err, services.ErrNotFound):
			h.Logger.Info("media not found", zap.String("id", id))
			h.RespondError(w, http.StatusNotFound, "Media not found")
		default:
			h.Logger.Error("failed to delete media", zap.Error(err), zap.String("id", id))
			h.RespondError(w, http.StatusInternalServerError, "Failed to delete media")
		}
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Media deleted successfully"})
}

// pageParams coerces the page and limit query parameters to integers.
// Non-numeric or non-positive input falls back to the defaults rather
// than failing the request.
func pageParams(r *http.Request) (page, limit int) {
	page = services.DefaultPage
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v >= 1 {
		page = v
	}

	limit = services.DefaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v >= 1 {
		limit = v
	}

	return page, limit
}
