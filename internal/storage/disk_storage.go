package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStorage хранит аватары в каталоге на диске.
type DiskStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// NewDiskStorage создаёт каталог загрузок, если его ещё нет.
func NewDiskStorage(rootPath string, maxUploadMB int64) (*DiskStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &DiskStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Save записывает файл через временный файл и атомарно переименовывает его.
func (s *DiskStorage) Save(ctx context.Context, name, _ string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	targetPath, err := s.resolve(name)
	if err != nil {
		return 0, err
	}

	f, err := os.CreateTemp(s.rootPath, ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	tempPath := f.Name()
	defer f.Close()

	written, err := io.Copy(f, &io.LimitedReader{R: r, N: s.maxUploadBytes + 1})
	if err != nil {
		_ = os.Remove(tempPath)
		return 0, fmt.Errorf("storage: ошибка записи файла: %w", err)
	}

	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return 0, fmt.Errorf("%w (%d байт)", ErrTooLarge, s.maxUploadBytes)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return 0, fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		_ = os.Remove(tempPath)
		return 0, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return written, nil
}

// Open открывает файл из каталога загрузок.
func (s *DiskStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: не удалось открыть файл: %w", err)
	}
	return f, nil
}

// resolve допускает только имена без каталогов. Скрытые временные файлы недоступны.
func (s *DiskStorage) resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrNotFound
	}
	return filepath.Join(s.rootPath, name), nil
}
