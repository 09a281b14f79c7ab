package storage

import (
	"context"
	"io"
)

// Package storage holds the optional archive mirror: an S3-compatible bucket
// that receives a best-effort copy of every stored PDF. The database row is
// the source of truth; the mirror exists for off-database backup and never
// participates in reads.

// PutOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1
// and the implementation will buffer/chunk as supported by the backend.
type PutOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key  string
	Size int64
	ETag string
}

// Archive is the write-only surface the mirror needs. Implementations must
// be safe for concurrent use and rely on streaming I/O only.
type Archive interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (ObjectInfo, error)
}
