package services

import (
	"context"
	"errors"
	"io"

	"kalshield/cmd/internal/logger"
	"kalshield/storage"
)

// Upload is an image file submitted with a form.
type Upload struct {
	Name string
	Body io.Reader
}

// imageUploader validates an upload and stores it.
type imageUploader struct {
	uploader storage.Uploader
	maxBytes int64
}

// store returns the download URL, or a FormError carrying failMsg.
func (u imageUploader) store(ctx context.Context, up *Upload, failMsg string) (string, error) {
	if u.uploader == nil {
		return "", formError("Image uploads are not configured")
	}
	img, err := storage.ReadImage(up.Name, up.Body, u.maxBytes)
	if err != nil {
		logger.WarnWithFields("image rejected", logger.Fields{"name": up.Name, "error": err.Error()})
		return "", formError(failMsg)
	}
	url, err := u.uploader.Upload(ctx, img.Name, img.Reader())
	if err != nil {
		if errors.Is(err, storage.ErrUploadsDisabled) {
			return "", formError("Image uploads are not configured")
		}
		logger.ErrorWithFields("image upload failed", logger.Fields{"name": up.Name, "error": err.Error()})
		return "", formError(failMsg)
	}
	logger.InfoWithFields("image uploaded", logger.Fields{
		"name":  img.Name,
		"bytes": len(img.Data),
		"url":   url,
	})
	return url, nil
}
