package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// localUploader writes uploads under a root directory on disk.
type localUploader struct {
	root string
}

var _ Uploader = (*localUploader)(nil)

func NewLocalUploader(root string) Uploader {
	return &localUploader{root: root}
}

// Upload writes the object to root/key and returns the key actually used.
// When a file with the same name already exists, a numeric suffix is added
// to the file name until a free one is found.
func (u *localUploader) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	dir := filepath.Dir(filepath.Join(u.root, filepath.FromSlash(key)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	finalKey := key
	ext := filepath.Ext(key)
	stem := strings.TrimSuffix(key, ext)

	for i := 1; ; i++ {
		f, err := os.OpenFile(filepath.Join(u.root, filepath.FromSlash(finalKey)), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if errors.Is(err, fs.ErrExist) {
				finalKey = fmt.Sprintf("%s_%d%s", stem, i, ext)
				continue
			}
			return "", fmt.Errorf("create media file: %w", err)
		}

		if _, err := io.Copy(f, r); err != nil {
			f.Close()
			return "", fmt.Errorf("write media file: %w", err)
		}

		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close media file: %w", err)
		}

		return finalKey, nil
	}
}
