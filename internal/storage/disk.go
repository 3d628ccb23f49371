package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// DiskStore keeps blobs on the local filesystem under baseDir, served
// statically at {baseURL}/uploads/. Containers map to subdirectories.
type DiskStore struct {
	baseDir string
	baseURL string
	log     zerolog.Logger
}

// NewDiskStore creates a local-disk blob store.
func NewDiskStore(baseDir, baseURL string, log zerolog.Logger) *DiskStore {
	return &DiskStore{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		log:     log.With().Str("component", "disk_store").Logger(),
	}
}

// Upload writes the blob under baseDir/container/blobName.
func (s *DiskStore) Upload(ctx context.Context, container, blobName string, data []byte, contentType string) (string, error) {
	dir := filepath.Join(s.baseDir, filepath.FromSlash(container))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create container dir: %w", err)
	}

	destPath := filepath.Join(dir, blobName)
	if err := os.WriteFile(destPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}

	url := s.baseURL + "/uploads/" + container + "/" + blobName
	s.log.Debug().Str("path", destPath).Str("url", url).Msg("Blob stored")
	return url, nil
}

// Delete removes the blob file referenced by its public URL.
func (s *DiskStore) Delete(ctx context.Context, publicURL string) error {
	marker := "/uploads/"
	idx := strings.Index(publicURL, marker)
	if idx < 0 {
		return fmt.Errorf("not an uploads URL: %s", publicURL)
	}
	rel := publicURL[idx+len(marker):]
	if rel == "" || strings.Contains(rel, "..") {
		return fmt.Errorf("invalid blob path: %s", rel)
	}

	path := filepath.Join(s.baseDir, filepath.FromSlash(rel))
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}
