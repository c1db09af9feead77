package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/Muppalavinisree/vibecommerce/internal/models"
)

var ErrNotImage = errors.New("uploaded file is not an image")

// ImageStore persists uploaded product images and hands back the reference
// stored in Product.Image.
type ImageStore interface {
	Save(ctx context.Context, upload *models.ImageUpload) (string, error)
	// Delete releases ref if it was produced by this store. Foreign
	// references and already missing objects are ignored.
	Delete(ctx context.Context, ref string) error
	Owns(ref string) bool
}

// imageExtensions covers the image types http.DetectContentType reports.
var imageExtensions = map[string]string{
	"image/png":    ".png",
	"image/jpeg":   ".jpg",
	"image/gif":    ".gif",
	"image/webp":   ".webp",
	"image/bmp":    ".bmp",
	"image/x-icon": ".ico",
	"image/avif":   ".avif",
}

// objectName builds the "<unix-millis><ext>" file name used for uploads. The
// extension follows the sniffed content type, never the client's file name.
func objectName(now time.Time, contentType string) string {
	ext := imageExtensions[contentType]
	if ext == "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}

	return fmt.Sprintf("%d%s", now.UnixMilli(), ext)
}

// sniff reads the head of the upload to check it is an image and returns a
// reader that still yields the full body.
func sniff(upload *models.ImageUpload) (io.Reader, string, error) {
	head := make([]byte, 512)

	n, err := io.ReadFull(upload.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("reading upload: %w", err)
	}

	head = head[:n]
	contentType := http.DetectContentType(head)

	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", ErrNotImage
	}

	return io.MultiReader(bytes.NewReader(head), upload.Body), contentType, nil
}
