package uploads

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
)

// DiskStore writes uploads under a local directory, served back as static
// content under BaseURL.
type DiskStore struct {
	Dir     string
	BaseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{Dir: dir, BaseURL: baseURL}, nil
}

func (s *DiskStore) Save(_ context.Context, filename, _ string, r io.Reader) (string, error) {
	name := ObjectName(filename)
	dst := filepath.Join(s.Dir, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path.Join(s.BaseURL, name), nil
}

var _ Store = (*DiskStore)(nil)
