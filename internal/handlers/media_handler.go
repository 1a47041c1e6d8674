package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/recyclerewards/backend/internal/models"
	"github.com/recyclerewards/backend/internal/storage"
	"go.uber.org/zap"
)

// MediaStore is the interface that wraps reading of stored images
type MediaStore interface {
	// Method OpenFile opens a stored image.
	//
	// "mediaType" parameter is the image group, "filename" the generated file name.
	//
	// If there is no such image, models.ErrNotFound will be returned; an invalid name wraps models.ErrValidation.
	OpenFile(mediaType storage.MediaType, filename string) (*os.File, error)
}

// MediaHandler serves uploaded images
type MediaHandler struct {
	BaseHandler
	store MediaStore
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(store MediaStore, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		BaseHandler: BaseHandler{Logger: logger},
		store:       store,
	}
}

// RegisterRoutes registers all media handler routes
func (h *MediaHandler) RegisterRoutes(r chi.Router) {
	r.Get("/media/{mediaType}/{filename}", h.DownloadFile)
}

// DownloadFile handles GET /media/{mediaType}/{filename}
// @Summary Download an image
// @Tags media
// @Produce application/octet-stream
// @Param mediaType path string true "Media type" Enums(item, avatar)
// @Param filename path string true "File name"
// @Success 200 "File content"
// @Failure 404 {object} map[string]string "File not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /media/{mediaType}/{filename} [get]
func (h *MediaHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	mediaType := storage.MediaType(chi.URLParam(r, "mediaType"))
	filename := chi.URLParam(r, "filename")

	file, err := h.store.OpenFile(mediaType, filename)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrValidation) {
			h.RespondError(w, http.StatusNotFound, "File not found")
			return
		}
		h.Logger.Error("failed to open file", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "Failed to open file")
		return
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		h.Logger.Error("failed to get file info", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "Failed to get file info")
		return
	}

	// Uploaded names are random and never reused
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeContent(w, r, filename, fileInfo.ModTime(), file)
}
