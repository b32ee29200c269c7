// Package storage persists uploaded media files. Uploads go either to the
// local media directory or to an S3-compatible bucket, depending on
// configuration.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/gosimple/slug"
)

// Uploader stores an object and returns the reference to persist alongside
// the owning record: a key relative to the media root for local storage, or
// an absolute URL for remote backends.
type Uploader interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// ObjectKey builds a date-bucketed object key for an upload, with the file
// name slugified so keys stay URL-safe.
func ObjectKey(prefix, filename string, now time.Time) string {
	base := path.Base(filename)
	ext := path.Ext(base)
	stem := slug.Make(base[:len(base)-len(ext)])
	if stem == "" {
		stem = "file"
	}

	return fmt.Sprintf("%s/%d/%02d/%s%s", prefix, now.Year(), int(now.Month()), stem, ext)
}
