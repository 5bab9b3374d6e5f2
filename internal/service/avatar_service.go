package service

import (
	"bufio"
	"context"
	"errors"
	"io"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/storage"
)

// sniffLen — сколько байт читаем для определения типа по магическим байтам.
const sniffLen = 262

// AvatarService сохраняет загруженные аватары.
type AvatarService struct {
	storage      storage.AvatarStorage
	requireImage bool
}

// NewAvatarService создаёт сервис. При requireImage файлы, не являющиеся изображениями, отклоняются.
func NewAvatarService(storage storage.AvatarStorage, requireImage bool) *AvatarService {
	return &AvatarService{storage: storage, requireImage: requireImage}
}

// StoreAvatar сохраняет файл под очищенным именем и возвращает относительный путь.
// Без файла возвращается путь к заглушке. Одноимённые файлы перезаписываются.
func (s *AvatarService) StoreAvatar(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file == nil || file.Filename == "" {
		return models.PlaceholderAvatarPath, nil
	}

	src, err := file.Open()
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeStorage, "не удалось открыть загруженный файл")
	}
	defer src.Close()

	return s.store(ctx, file.Filename, src)
}

func (s *AvatarService) store(ctx context.Context, originalName string, src io.Reader) (string, error) {
	name := storage.SanitizeFilename(originalName)

	// Peek не сдвигает поток, поэтому файл сохраняется целиком.
	reader := bufio.NewReaderSize(src, sniffLen)
	head, err := reader.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", apperror.Wrap(err, apperror.ErrCodeStorage, "не удалось прочитать загруженный файл")
	}

	contentType := "application/octet-stream"
	isImage := filetype.IsImage(head)
	if kind, matchErr := filetype.Match(head); matchErr == nil && kind != filetype.Unknown {
		contentType = kind.MIME.Value
	}

	fields := logrus.Fields{
		"original_name": originalName,
		"stored_name":   name,
		"content_type":  contentType,
	}
	if !isImage {
		if s.requireImage {
			logger.Log.WithFields(fields).Warn("avatar rejected: not an image")
			return "", apperror.ErrUnsupportedAvatar
		}
		logger.Log.WithFields(fields).Warn("avatar is not a recognised image, storing as is")
	}

	size, err := s.storage.Save(ctx, name, contentType, reader)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return "", apperror.Wrap(err, apperror.ErrCodePayloadTooLarge, apperror.ErrAvatarTooLarge.Message)
		}
		return "", apperror.Wrap(err, apperror.ErrCodeStorage, "не удалось сохранить аватар")
	}

	fields["size"] = size
	logger.Log.WithFields(fields).Debug("avatar stored")

	return models.UploadedAvatarPrefix + name, nil
}
