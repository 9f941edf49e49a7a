package controller

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	domainErrors "github.com/cassiomorais/storefront/internal/domain/errors"
	"github.com/rs/zerolog"
)

// UploadController stores product images on local disk.
type UploadController struct {
	dir     string
	baseURL string
	maxSize int64
	logger  zerolog.Logger
}

// NewUploadController creates a new UploadController.
func NewUploadController(dir, baseURL string, maxSize int64, logger zerolog.Logger) *UploadController {
	return &UploadController{
		dir:     dir,
		baseURL: baseURL,
		maxSize: maxSize,
		logger:  logger,
	}
}

// Upload handles POST /api/v1/upload. The stored name is the original one
// prefixed with a timestamp so repeated uploads of the same file never
// clash.
func (h *UploadController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, domainErrors.NewValidationError("file", "missing or oversized file field"))
		return
	}
	defer file.Close()

	// Strip any path components a client might smuggle into the name.
	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(header.Filename))
	destPath := filepath.Join(h.dir, filename)

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		h.logger.Error().Err(err).Str("dir", h.dir).Msg("failed to create upload directory")
		writeError(w, fmt.Errorf("prepare upload directory: %w", err))
		return
	}

	dest, err := os.Create(destPath)
	if err != nil {
		h.logger.Error().Err(err).Str("path", destPath).Msg("failed to create upload file")
		writeError(w, fmt.Errorf("store upload: %w", err))
		return
	}
	defer dest.Close()

	if _, err := io.Copy(dest, file); err != nil {
		os.Remove(destPath)
		writeError(w, fmt.Errorf("store upload: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{URL: h.baseURL + "/" + filename})
}
