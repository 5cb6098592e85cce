// Package imagestore uploads receipt photos and returns a reference to them.
package imagestore

import (
	"context"
	"errors"
	"net/http"
)

var (
	ErrEmptyImage = errors.New("imagestore: empty image")
	ErrDisabled   = errors.New("imagestore: receipt uploads are disabled")
)

// Store uploads an image and returns a reference that can be saved with the
// transaction.
type Store interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

func contentType(data []byte) string {
	return http.DetectContentType(data)
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// FileName names an upload after its owner, with an extension sniffed from
// the image bytes.
func FileName(owner string, data []byte) string {
	if ext, ok := extensions[contentType(data)]; ok {
		return owner + ext
	}
	return owner + ".bin"
}
