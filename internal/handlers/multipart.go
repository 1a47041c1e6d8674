package handlers

import (
	"errors"
	"net/http"

	"github.com/recyclerewards/backend/internal/services"
	"go.uber.org/zap"
)

// maxMultipartMemory is the part of a multipart form kept in memory, the rest spills to temporary files
const maxMultipartMemory = 10 << 20

// parseImageForm parses a multipart form and returns the optional image under field.
// The returned close function must be called once the image is consumed.
func (h *BaseHandler) parseImageForm(w http.ResponseWriter, r *http.Request, field string) (*services.ImageUpload, func(), bool) {
	noop := func() {}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.Logger.Debug("failed to parse multipart form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "Invalid form data")
		return nil, noop, false
	}

	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, true
	}
	if err != nil {
		h.Logger.Debug("failed to read form file", zap.String("field", field), zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "Invalid form data")
		return nil, noop, false
	}
	// An empty file input is sent as a part with no content
	if header.Size == 0 {
		file.Close()
		return nil, noop, true
	}

	return &services.ImageUpload{Reader: file, Filename: header.Filename}, func() { file.Close() }, true
}
