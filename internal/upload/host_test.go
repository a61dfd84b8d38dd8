package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visaline/internal/config"
)

func TestHostUploadRemapsResponse(t *testing.T) {
	var gotPreset, gotFilename, gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotPreset = r.FormValue("upload_preset")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename

		buf, err := io.ReadAll(file)
		require.NoError(t, err)
		gotContent = string(buf)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"secure_url": "https://cdn.example.com/docs/abc123.pdf",
			"public_id": "docs/abc123",
			"original_filename": "passport",
			"resource_type": "raw"
		}`))
	}))
	t.Cleanup(srv.Close)

	uploader := NewHostUploader(config.UploadHostConfig{
		URL:    srv.URL,
		Preset: "visaline_documents",
	}, zerolog.Nop())

	file, err := uploader.Upload(context.Background(), "passport.pdf", strings.NewReader("%PDF-1.7"), 8)
	require.NoError(t, err)

	assert.Equal(t, "visaline_documents", gotPreset)
	assert.Equal(t, "passport.pdf", gotFilename)
	assert.Equal(t, "%PDF-1.7", gotContent)

	assert.Equal(t, "https://cdn.example.com/docs/abc123.pdf", file.URL)
	assert.Equal(t, "docs/abc123", file.FileID)
	assert.Equal(t, "passport", file.Filename)
	assert.Equal(t, "raw", file.MimeType)
}

func TestHostUploadNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	uploader := NewHostUploader(config.UploadHostConfig{URL: srv.URL, Preset: "p"}, zerolog.Nop())
	_, err := uploader.Upload(context.Background(), "x.pdf", strings.NewReader("x"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", contentType("scan.pdf"))
	assert.Equal(t, "application/octet-stream", contentType("mystery.bin2"))
}
