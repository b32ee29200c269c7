// Package images normalizes uploaded product images: oversized pictures are
// scaled down to a maximum width and re-encoded in the configured format.
package images

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/devNatanFrei/e-commerce/internal/config"
)

const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// Processed is the normalized image ready for storage.
type Processed struct {
	Data        []byte
	Name        string
	ContentType string
	Width       int
	Height      int
}

// Processor re-encodes images according to its profile.
type Processor struct {
	maxWidth    int
	format      string
	jpegQuality int
}

func NewProcessor(cfg *config.Image) *Processor {
	return &Processor{
		maxWidth:    cfg.MaxWidth,
		format:      cfg.Format,
		jpegQuality: cfg.JPEGQuality,
	}
}

// Process decodes the image from data, scales it down to the profile's
// maximum width when it is wider (height follows the aspect ratio, smaller
// images are never enlarged) and re-encodes it. The returned name carries
// the extension matching the output format.
func (p *Processor) Process(data []byte, filename string) (*Processed, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if p.maxWidth > 0 && img.Bounds().Dx() > p.maxWidth {
		img = imaging.Resize(img, p.maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	var contentType string

	switch p.format {
	case FormatJPEG:
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.jpegQuality)); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
		contentType = "image/jpeg"
		filename = forceExt(filename, ".jpg", ".jpeg")
	case FormatPNG:
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
		contentType = "image/png"
		filename = forceExt(filename, ".png")
	default:
		return nil, fmt.Errorf("unsupported image format: %q", p.format)
	}

	bounds := img.Bounds()

	return &Processed{
		Data:        buf.Bytes(),
		Name:        filename,
		ContentType: contentType,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}, nil
}

// forceExt replaces the file extension with want unless the current one is
// already among the accepted spellings.
func forceExt(filename, want string, accepted ...string) string {
	ext := strings.ToLower(path.Ext(filename))
	for _, ok := range append(accepted, want) {
		if ext == ok {
			return filename
		}
	}
	return strings.TrimSuffix(filename, path.Ext(filename)) + want
}
