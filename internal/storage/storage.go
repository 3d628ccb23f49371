// Package storage provides blob storage for question images, option
// images and syllabus files. Blobs live in named containers (e.g.
// "questions/{sectionID}") and are addressed by their public URL.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Uttam-Mahata/questcart/internal/config"
)

// BlobStore is the narrow object-store contract the services depend on.
type BlobStore interface {
	// Upload stores data under container/blobName and returns its public URL.
	Upload(ctx context.Context, container, blobName string, data []byte, contentType string) (string, error)
	// Delete removes the blob identified by its public URL.
	Delete(ctx context.Context, publicURL string) error
}

// New selects a store implementation from configuration: "s3" for any
// S3-compatible endpoint, "disk" (default) for local development.
func New(cfg *config.Config, log zerolog.Logger) (BlobStore, error) {
	switch cfg.StorageBackend {
	case "s3":
		return NewS3Store(cfg, log)
	case "disk", "":
		return NewDiskStore(cfg.UploadDir, cfg.PublicBaseURL, log), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
