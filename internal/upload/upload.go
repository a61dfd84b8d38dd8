// Package upload sends document files to an external host and returns the
// URL reference the API expects; the client never keeps file bytes.
package upload

import (
	"context"
	"io"
	"mime"
	"path/filepath"

	"visaline/internal/models"
)

// Uploader pushes one file and returns its hosted reference.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader, size int64) (models.UploadedFile, error)
}

func contentType(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
