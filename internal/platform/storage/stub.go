package storage

import (
	"context"
	"errors"
	"io"
)

type StubUploader struct {
	UploadFunc func(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

var _ Uploader = (*StubUploader)(nil)

func (s *StubUploader) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if s.UploadFunc == nil {
		return "", errors.New("Upload() not implemented by stub")
	}
	return s.UploadFunc(ctx, key, r, size, contentType)
}
