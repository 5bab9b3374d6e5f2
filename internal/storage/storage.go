package storage

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrNotFound — объект отсутствует в хранилище.
	ErrNotFound = errors.New("storage: файл не найден")
	// ErrTooLarge — размер файла превышает лимит.
	ErrTooLarge = errors.New("storage: размер файла превышает лимит")
)

// AvatarStorage хранит загруженные аватары под очищенными именами.
// Файл с тем же именем перезаписывается.
type AvatarStorage interface {
	// Save сохраняет содержимое под именем name и возвращает число записанных байт.
	Save(ctx context.Context, name, contentType string, r io.Reader) (int64, error)
	// Open открывает сохранённый файл. Для отсутствующего файла возвращает ErrNotFound.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
