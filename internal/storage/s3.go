package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/Uttam-Mahata/questcart/internal/config"
)

// S3Store stores blobs in any S3-compatible object store. The first path
// segment of a container becomes the bucket, the rest an object prefix, so
// "questions/42" uploads into bucket "questions" under prefix "42/".
type S3Store struct {
	client   *minio.Client
	endpoint string
	useSSL   bool
	log      zerolog.Logger
}

// NewS3Store creates an object-store client from configuration.
func NewS3Store(cfg *config.Config, log zerolog.Logger) (*S3Store, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	return &S3Store{
		client:   client,
		endpoint: cfg.S3Endpoint,
		useSSL:   cfg.S3UseSSL,
		log:      log.With().Str("component", "s3_store").Logger(),
	}, nil
}

// Upload stores the blob and returns its public URL.
func (s *S3Store) Upload(ctx context.Context, container, blobName string, data []byte, contentType string) (string, error) {
	bucket, prefix := splitContainer(container)
	object := blobName
	if prefix != "" {
		object = prefix + "/" + blobName
	}

	if err := s.ensureBucket(ctx, bucket); err != nil {
		return "", err
	}

	_, err := s.client.PutObject(ctx, bucket, object, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	publicURL := fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, bucket, object)

	s.log.Debug().Str("bucket", bucket).Str("object", object).Msg("Blob stored")
	return publicURL, nil
}

// Delete removes the object referenced by its public URL.
func (s *S3Store) Delete(ctx context.Context, publicURL string) error {
	u, err := url.Parse(publicURL)
	if err != nil {
		return fmt.Errorf("parse blob URL: %w", err)
	}

	path := strings.TrimPrefix(u.Path, "/")
	bucket, object := splitContainer(path)
	if bucket == "" || object == "" {
		return fmt.Errorf("cannot resolve bucket/object from URL %s", publicURL)
	}

	if err := s.client.RemoveObject(ctx, bucket, object, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

func (s *S3Store) ensureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("make bucket: %w", err)
	}
	return nil
}

// splitContainer separates the bucket from the rest of the path.
func splitContainer(container string) (bucket, rest string) {
	parts := strings.SplitN(container, "/", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}
