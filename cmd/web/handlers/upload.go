package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kalshield/cmd/web/services"
)

// formUpload opens the file field of a multipart form. No file chosen means a
// nil upload; the returned closer is always safe to call.
func formUpload(c *gin.Context, field string) (*services.Upload, func(), error) {
	noop := func() {}
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}
	if fh.Filename == "" || fh.Size == 0 {
		return nil, noop, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	return &services.Upload{Name: fh.Filename, Body: f}, func() { _ = f.Close() }, nil
}
