package s3

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/EgorLis/garden-log/internal/domain"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
	// База для публичных ссылок, например "http://localhost:9000/garden-images".
	// Пустая строка — собираем из Endpoint и Bucket.
	PublicBaseURL string
}

type Storage struct {
	logger *log.Logger
	cl     *minio.Client
	bucket string
	public string
}

func New(ctx context.Context, logger *log.Logger, cfg Config) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}

	public := cfg.PublicBaseURL
	if public == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		public = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	s := &Storage{logger: logger, cl: cl, bucket: cfg.Bucket, public: public}

	// Бакет создаём заранее, чтобы первый аплоад не падал
	exists, err := cl.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("bucket exists: %w", err)
	}
	if !exists {
		logger.Printf("bucket %q not found, creating...", cfg.Bucket)
		if err := cl.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("make bucket: %w", err)
		}
	}
	return s, nil
}

// Put загружает поток под заданным ключом и возвращает ключ,
// публичную ссылку и фактический размер.
func (s *Storage) Put(ctx context.Context, r io.Reader, key, mime string, size int64) (domain.BlobPutResult, error) {
	start := time.Now()
	info, err := s.cl.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: mime,
	})
	if err != nil {
		s.logger.Printf("put %q failed after %s: %v", key, time.Since(start), err)
		return domain.BlobPutResult{}, err
	}
	s.logger.Printf("put %q ok in %s size=%d", key, time.Since(start), info.Size)

	return domain.BlobPutResult{
		StorageKey: key,
		PublicURL:  s.public + "/" + key,
		Size:       info.Size,
	}, nil
}

func (s *Storage) Delete(ctx context.Context, storageKey string) error {
	return s.cl.RemoveObject(ctx, s.bucket, storageKey, minio.RemoveObjectOptions{})
}

func (s *Storage) Ping(ctx context.Context) error {
	_, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		s.logger.Printf("ping failed: %v", err)
	}
	return err
}
