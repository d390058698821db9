package objectclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/markdave123-py/docsum/internal/core"
)

// LocalClient keeps objects as files in one flat upload directory.
type LocalClient struct {
	dir string
}

var _ core.ObjectClient = (*LocalClient)(nil)

func NewLocalClient(dir string) (*LocalClient, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory not set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &LocalClient{dir: dir}, nil
}

// path never escapes the upload directory.
func (c *LocalClient) path(key string) string {
	return filepath.Join(c.dir, filepath.Base(key))
}

// Save writes data to a temp file and renames it into place, so readers never
// observe a partial object.
func (c *LocalClient) Save(ctx context.Context, key string, data io.Reader, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dst := c.path(key)

	tmp, err := os.CreateTemp(c.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("rename %s: %w", key, err)
	}
	return dst, nil
}

func (c *LocalClient) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("object %s: %w", key, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	return f, nil
}

func (c *LocalClient) Remove(_ context.Context, key string) error {
	err := os.Remove(c.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (c *LocalClient) Exists(_ context.Context, key string) (bool, error) {
	_, err := os.Stat(c.path(key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", key, err)
}
