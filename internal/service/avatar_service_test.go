package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/storage"
)

// pngHeader — сигнатура PNG, достаточная для определения типа.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// formFile собирает multipart-запрос и возвращает заголовок файла поля avatar.
func formFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("avatar", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/generate", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["avatar"][0]
}

func newDiskAvatarService(t *testing.T, requireImage bool) (*AvatarService, string) {
	t.Helper()
	root := t.TempDir()
	disk, err := storage.NewDiskStorage(root, 1)
	require.NoError(t, err)
	return NewAvatarService(disk, requireImage), root
}

func TestAvatarService_NoFileUsesPlaceholder(t *testing.T) {
	svc, _ := newDiskAvatarService(t, false)

	path, err := svc.StoreAvatar(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, models.PlaceholderAvatarPath, path)
}

// multipart уже обрезает каталоги в имени файла, до SanitizeFilename доходит только базовое имя.
func TestAvatarService_SanitizesTraversal(t *testing.T) {
	svc, root := newDiskAvatarService(t, false)

	path, err := svc.StoreAvatar(context.Background(), formFile(t, "../../etc/passwd.png", pngHeader))
	require.NoError(t, err)

	assert.Equal(t, "img/uploads/passwd.png", path)
	assert.NotContains(t, strings.TrimPrefix(path, models.UploadedAvatarPrefix), "..")
	assert.NotContains(t, strings.TrimPrefix(path, models.UploadedAvatarPrefix), "/")

	data, err := os.ReadFile(filepath.Join(root, "passwd.png"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestAvatarService_StoresNonImageWhenPermissive(t *testing.T) {
	svc, root := newDiskAvatarService(t, false)

	path, err := svc.StoreAvatar(context.Background(), formFile(t, "notes.txt", []byte("plain text")))
	require.NoError(t, err)
	assert.Equal(t, "img/uploads/notes.txt", path)

	_, err = os.Stat(filepath.Join(root, "notes.txt"))
	assert.NoError(t, err)
}

func TestAvatarService_RejectsNonImageWhenStrict(t *testing.T) {
	svc, root := newDiskAvatarService(t, true)

	_, err := svc.StoreAvatar(context.Background(), formFile(t, "notes.png", []byte("plain text")))
	assert.ErrorIs(t, err, apperror.ErrUnsupportedAvatar)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAvatarService_TooLarge(t *testing.T) {
	svc, _ := newDiskAvatarService(t, false)

	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 1024*1024)...)
	_, err := svc.StoreAvatar(context.Background(), formFile(t, "big.png", content))

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.ErrCodePayloadTooLarge, appErr.Code)
}
