package policies

import (
	"context"
	"io"
)

// PhotoStore is the outbound port for listing photo storage. The minio
// client implements it in production; a nil store disables uploads.
type PhotoStore interface {
	// Upload stores the content and returns a publicly servable URL.
	Upload(ctx context.Context, propertyID int64, filename string, content io.Reader, size int64, contentType string) (string, error)
}
