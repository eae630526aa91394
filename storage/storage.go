// Package storage uploads post images and profile pictures to Firebase
// Storage and returns their public download URLs.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes mirrors the bucket rule: images must be smaller than 2 MiB.
const DefaultMaxBytes = 2 * 1024 * 1024

var (
	ErrUploadsDisabled = errors.New("image uploads are not configured")
	ErrTooLarge        = errors.New("file must be less than 2MB")
	ErrNotImage        = errors.New("file is not an image")
	ErrEmptyFile       = errors.New("file is empty")
)

// Uploader stores an image and returns its download URL.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
}

// Image is a validated upload, fully read into memory.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadImage reads at most maxBytes from r and checks that the content is an
// image. maxBytes <= 0 means DefaultMaxBytes.
func ReadImage(name string, r io.Reader, maxBytes int64) (Image, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes))
	if err != nil {
		return Image{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return Image{}, ErrEmptyFile
	}
	// a full buffer means the file is at least maxBytes long
	if int64(len(data)) >= maxBytes {
		return Image{}, ErrTooLarge
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return Image{}, fmt.Errorf("%w: %s", ErrNotImage, mt.String())
	}
	return Image{Name: name, ContentType: mt.String(), Data: data}, nil
}

// Reader returns the image bytes as a reader.
func (img Image) Reader() io.Reader { return bytes.NewReader(img.Data) }

// ObjectName prefixes the file's base name with the upload time in unix millis
// so two uploads of the same file never collide.
func ObjectName(now time.Time, name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "image"
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + base
}

// DownloadURL builds the Firebase download URL for an object with a
// download token.
func DownloadURL(bucket, object, token string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, url.PathEscape(object), url.QueryEscape(token))
}

// Disabled is the Uploader used when no bucket is configured.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, io.Reader) (string, error) {
	return "", ErrUploadsDisabled
}
