package upload

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"visaline/internal/config"
	"visaline/internal/ids"
	"visaline/internal/models"
)

// S3Uploader pushes documents straight to an S3-compatible bucket, for
// deployments that bypass the shared upload host.
type S3Uploader struct {
	client *minio.Client
	cfg    config.StorageConfig
	log    zerolog.Logger
}

func NewS3Uploader(cfg config.StorageConfig, log zerolog.Logger) (*S3Uploader, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	return &S3Uploader{client: client, cfg: cfg, log: log}, nil
}

// EnsureBucket creates the documents bucket when it does not exist yet.
func (s *S3Uploader) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", s.cfg.Bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.cfg.Bucket, err)
		}
	}
	return nil
}

func (s *S3Uploader) Upload(ctx context.Context, filename string, content io.Reader, size int64) (models.UploadedFile, error) {
	key := ids.New() + path.Ext(filename)
	mimeType := contentType(filename)

	if _, err := s.client.PutObject(ctx, s.cfg.Bucket, key, content, size, minio.PutObjectOptions{
		ContentType: mimeType,
	}); err != nil {
		return models.UploadedFile{}, fmt.Errorf("put object %s: %w", key, err)
	}

	scheme := "http"
	if s.client.EndpointURL().Scheme == "https" {
		scheme = "https"
	}
	fileURL := fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.cfg.Bucket, key)

	s.log.Debug().
		Str("file", filename).
		Str("key", key).
		Msg("uploaded to bucket")

	return models.UploadedFile{
		Filename: filename,
		MimeType: mimeType,
		URL:      fileURL,
		FileID:   key,
	}, nil
}
