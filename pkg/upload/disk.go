package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore writes photos into a local directory served as static files.
type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: create %s: %w", dir, err)
	}
	return &DiskStore{Dir: dir}, nil
}

func (d *DiskStore) Save(ctx context.Context, name, _ string, r io.ReadSeeker) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(d.Dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("upload: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("upload: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("upload: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(d.Dir, name)); err != nil {
		return "", fmt.Errorf("upload: rename: %w", err)
	}
	return name, nil
}
