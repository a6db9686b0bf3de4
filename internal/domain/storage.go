package domain

import (
	"context"
	"io"
)

type BlobPutResult struct {
	StorageKey string
	PublicURL  string
	Size       int64
}

// Хранилище контента изображений. Реализация — S3/MinIO.
type BlobStorage interface {
	Put(ctx context.Context, r io.Reader, key, mime string, size int64) (BlobPutResult, error)
	Delete(ctx context.Context, storageKey string) error
	Ping(ctx context.Context) error
}
