package controller

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, fieldName, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadController_Upload(t *testing.T) {
	dir := t.TempDir()
	handler := NewUploadController(dir, "/uploads", 1<<20, zerolog.Nop())

	body, contentType := multipartUpload(t, "file", "tee.jpg", "fake image bytes")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp UploadResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, strings.HasPrefix(resp.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(resp.URL, "-tee.jpg"))

	// The file landed on disk under the timestamped name.
	stored := filepath.Join(dir, strings.TrimPrefix(resp.URL, "/uploads/"))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestUploadController_Upload_StripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	handler := NewUploadController(dir, "/uploads", 1<<20, zerolog.Nop())

	body, contentType := multipartUpload(t, "file", "../../etc/passwd", "nope")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp UploadResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotContains(t, resp.URL, "..")
	assert.True(t, strings.HasSuffix(resp.URL, "-passwd"))
}

func TestUploadController_Upload_MissingFileField(t *testing.T) {
	handler := NewUploadController(t.TempDir(), "/uploads", 1<<20, zerolog.Nop())

	body, contentType := multipartUpload(t, "wrong_field", "tee.jpg", "bytes")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadController_Upload_OversizedFile(t *testing.T) {
	handler := NewUploadController(t.TempDir(), "/uploads", 64, zerolog.Nop())

	body, contentType := multipartUpload(t, "file", "big.jpg", strings.Repeat("x", 1024))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
