package handlers

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"portfolio_api/internal/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	imageField      = "image"
	multipartSlack  = 1 << 20 // room for the non-file form fields
	uploadDirPerm   = 0o755
	imageNamePrefix = "project-"
)

// storedImage is an image saved for the current request.
type storedImage struct {
	URL  string
	path string
}

// saveImage stores the optional "image" part of a multipart request. It
// returns nil when the request carries no image.
func (h *Handler) saveImage(c *gin.Context) (*storedImage, error) {
	fh, err := c.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, uploadError(err)
	}
	if fh.Size > h.maxUploadBytes {
		return nil, errs.InvalidField(imageField, fmt.Sprintf("file exceeds %d bytes", h.maxUploadBytes))
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, errs.InvalidField(imageField, "only image files are allowed")
	}
	if h.uploadDir == "" {
		return nil, errs.Internal(errors.New("uploads are not configured"))
	}

	name := imageNamePrefix + uuid.NewString() + imageExt(fh, contentType)
	dst := filepath.Join(h.uploadDir, name)
	if err := os.MkdirAll(h.uploadDir, uploadDirPerm); err != nil {
		return nil, errs.Internal(fmt.Errorf("create upload dir: %w", err))
	}
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return nil, errs.Internal(fmt.Errorf("save upload: %w", err))
	}
	return &storedImage{URL: path.Join(h.uploadURLPrefix, name), path: dst}, nil
}

// discard removes an image whose request failed afterwards.
func (h *Handler) discard(img *storedImage) {
	if img == nil {
		return
	}
	if err := os.Remove(img.path); err != nil && h.log != nil {
		h.log.Warnw("upload_cleanup_failed", "path", img.path, "err", err)
	}
}

// limitBody caps the request body for multipart requests.
func (h *Handler) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartSlack)
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
		return errs.InvalidField(imageField, "file is too large")
	}
	return &errs.Error{Kind: errs.KindBadRequest, Message: "malformed multipart body", Cause: err}
}

// imageExt keeps the client's extension when it is a plain alphanumeric one,
// otherwise derives one from the content type.
func imageExt(fh *multipart.FileHeader, contentType string) string {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if len(ext) > 1 && len(ext) <= 6 && isAlnum(ext[1:]) {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".img"
}

func isAlnum(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
