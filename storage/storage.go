// Package storage stores uploaded post images in an S3-compatible bucket.
package storage

import (
	"context"
	"io"
)

// MediaStore is the subset of object storage the API needs.
type MediaStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	// URL returns the public URL clients use to fetch key.
	URL(key string) string
}
