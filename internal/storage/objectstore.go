// Package storage re-hosts vendor-supplied image blobs on durable object
// storage so catalog rows reference URLs the platform controls.
package storage

import (
	"context"
)

// ObjectStore writes image blobs and returns their public URL. Uploads are
// idempotent on (styleCode, derived filename): re-importing a style code
// overwrites the stored image instead of duplicating it.
type ObjectStore interface {
	UploadImage(ctx context.Context, styleCode string, data []byte, contentType string) (string, error)
}

// extensionForMIME derives the stored file extension from the blob's MIME
// type; unknown types fall back to a binary extension.
func extensionForMIME(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	case "image/bmp":
		return "bmp"
	case "image/tiff":
		return "tif"
	default:
		return "bin"
	}
}
