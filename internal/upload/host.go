package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"visaline/internal/config"
	"visaline/internal/models"
)

// HostUploader talks to the third-party upload host: a multipart POST of
// the file plus the configured preset.
type HostUploader struct {
	url        string
	preset     string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewHostUploader(cfg config.UploadHostConfig, log zerolog.Logger) *HostUploader {
	return &HostUploader{
		url:    cfg.URL,
		preset: cfg.Preset,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute, // large files over slow links
		},
		log: log,
	}
}

type hostResponse struct {
	SecureURL        string `json:"secure_url"`
	PublicID         string `json:"public_id"`
	OriginalFilename string `json:"original_filename"`
	ResourceType     string `json:"resource_type"`
}

func (h *HostUploader) Upload(ctx context.Context, filename string, content io.Reader, size int64) (models.UploadedFile, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return models.UploadedFile{}, fmt.Errorf("read file: %w", err)
	}
	if err := writer.WriteField("upload_preset", h.preset); err != nil {
		return models.UploadedFile{}, fmt.Errorf("build form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return models.UploadedFile{}, fmt.Errorf("build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, &buf)
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("upload %s: %w", filename, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.UploadedFile{}, fmt.Errorf("upload %s: host returned status %d", filename, resp.StatusCode)
	}

	var hostResp hostResponse
	if err := json.Unmarshal(payload, &hostResp); err != nil {
		return models.UploadedFile{}, fmt.Errorf("unmarshal response: %w", err)
	}

	h.log.Debug().
		Str("file", filename).
		Str("file_id", hostResp.PublicID).
		Msg("uploaded to host")

	return models.UploadedFile{
		Filename: hostResp.OriginalFilename,
		MimeType: hostResp.ResourceType,
		URL:      hostResp.SecureURL,
		FileID:   hostResp.PublicID,
	}, nil
}
