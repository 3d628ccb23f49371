package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestDiskStoreUploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir, "http://localhost:8080/", zerolog.Nop())

	url, err := store.Upload(context.Background(), "questions/abc", "pic.png", []byte{0x89, 0x50}, "image/png")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "http://localhost:8080/uploads/questions/abc/pic.png" {
		t.Fatalf("url = %q", url)
	}

	path := filepath.Join(dir, "questions", "abc", "pic.png")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if len(data) != 2 || data[0] != 0x89 {
		t.Fatalf("blob content = %v", data)
	}

	if err := store.Delete(context.Background(), url); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("blob file must be removed")
	}
}

func TestDiskStoreDeleteRejectsForeignURL(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "http://localhost:8080", zerolog.Nop())

	if err := store.Delete(context.Background(), "http://elsewhere/file.png"); err == nil {
		t.Fatal("expected error for URL outside /uploads/")
	}
	if err := store.Delete(context.Background(), "http://localhost:8080/uploads/../secret"); err == nil {
		t.Fatal("expected error for path traversal")
	}
}
