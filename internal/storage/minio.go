package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/config"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/chat"
	appErrors "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/errors"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/logger"
)

// ImageStore keeps message images in a MinIO bucket and hands back the
// public URL a client loads them from.
type ImageStore struct {
	client *minio.Client
	cfg    config.MinioConfig
	logger logger.Logger
}

var _ chat.ImageStore = (*ImageStore)(nil)

// NewImageStore connects to MinIO and ensures the bucket exists.
func NewImageStore(ctx context.Context, cfg config.MinioConfig, logger logger.Logger) (*ImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, appErrors.Wrap(appErrors.CodeInternal, "storage.NewImageStore.New", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.CodeInternal, "storage.NewImageStore.BucketExists", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, appErrors.Wrap(appErrors.CodeInternal, "storage.NewImageStore.MakeBucket", err)
		}
		logger.Infof("storage: created bucket %s", cfg.Bucket)
	}

	return &ImageStore{client: client, cfg: cfg, logger: logger}, nil
}

func (s *ImageStore) Put(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", appErrors.Wrap(appErrors.CodeInternal, "storage.Put.PutObject", err)
	}
	return s.objectURL(objectKey), nil
}

func (s *ImageStore) Remove(ctx context.Context, objectKey string) error {
	err := s.client.RemoveObject(ctx, s.cfg.Bucket, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return appErrors.Wrap(appErrors.CodeInternal, "storage.Remove.RemoveObject", err)
	}
	return nil
}

func (s *ImageStore) objectURL(objectKey string) string {
	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, objectKey)
}
