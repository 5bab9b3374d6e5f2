package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ignatzorin/portfolio-backend/internal/config"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// stagingPrefix — каталог для незавершённых загрузок внутри префикса аватаров.
const stagingPrefix = models.UploadedAvatarPrefix + ".incoming/"

// objectClient — методы minio.Client, которые использует хранилище.
type objectClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	CopyObject(ctx context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
}

// MinIOStorage хранит аватары в бакете под префиксом img/uploads/.
type MinIOStorage struct {
	client         objectClient
	bucketName     string
	maxUploadBytes int64
}

// NewMinIOStorage подключается к MinIO и создаёт бакет, если его нет.
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig, maxUploadMB int64) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage: make bucket %q: %w", cfg.Bucket, err)
		}
	}

	return newMinIOStorage(client, cfg.Bucket, maxUploadMB), nil
}

func newMinIOStorage(client objectClient, bucket string, maxUploadMB int64) *MinIOStorage {
	return &MinIOStorage{
		client:         client,
		bucketName:     bucket,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}
}

// Save загружает объект во временный ключ и копирует его на место только после проверки размера.
// Существующий объект с тем же именем остаётся нетронутым, если загрузка отклонена.
func (s *MinIOStorage) Save(ctx context.Context, name, contentType string, r io.Reader) (int64, error) {
	key, err := objectKey(name)
	if err != nil {
		return 0, err
	}
	staging := stagingPrefix + uuid.NewString()
	defer s.removeStaging(staging)

	limited := &io.LimitedReader{R: r, N: s.maxUploadBytes + 1}
	info, err := s.client.PutObject(ctx, s.bucketName, staging, limited, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return 0, fmt.Errorf("storage: put object %q: %w", name, err)
	}

	if info.Size > s.maxUploadBytes {
		return 0, fmt.Errorf("%w (%d байт)", ErrTooLarge, s.maxUploadBytes)
	}

	if _, err := s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: s.bucketName, Object: key},
		minio.CopySrcOptions{Bucket: s.bucketName, Object: staging},
	); err != nil {
		return 0, fmt.Errorf("storage: copy object %q: %w", name, err)
	}

	return info.Size, nil
}

// removeStaging удаляет временный объект. Контекст запроса может быть уже отменён.
func (s *MinIOStorage) removeStaging(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.client.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{}); err != nil {
		logger.Log.WithError(err).WithField("key", key).Warn("failed to remove staging object")
	}
}

// Open возвращает поток объекта. Отсутствие объекта проверяется через Stat.
func (s *MinIOStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key, err := objectKey(name)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("storage: get object %q: %w", name, err)
	}

	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if isNoSuchKey(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: stat object %q: %w", name, err)
	}

	return obj, nil
}

// objectKey допускает только базовые имена. Скрытые ключи вроде временных загрузок недоступны.
func objectKey(name string) (string, error) {
	if name == "" || name != path.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrNotFound
	}
	return models.UploadedAvatarPrefix + name, nil
}

// isNoSuchKey распознаёт ответ S3/MinIO об отсутствующем объекте.
func isNoSuchKey(err error) bool {
	var minioErr minio.ErrorResponse
	if errors.As(err, &minioErr) {
		switch strings.ToLower(minioErr.Code) {
		case "nosuchkey", "notfound":
			return true
		}
	}
	return false
}
