package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryBucket — объектное хранилище в памяти с семантикой PutObject/CopyObject.
type memoryBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryBucket() *memoryBucket {
	return &memoryBucket{objects: make(map[string][]byte)}
}

func (b *memoryBucket) PutObject(_ context.Context, _, objectName string, reader io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[objectName] = data
	return minio.UploadInfo{Key: objectName, Size: int64(len(data))}, nil
}

func (b *memoryBucket) CopyObject(_ context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[src.Object]
	if !ok {
		return minio.UploadInfo{}, errors.New("no such key")
	}
	b.objects[dst.Object] = append([]byte(nil), data...)
	return minio.UploadInfo{Key: dst.Object, Size: int64(len(data))}, nil
}

func (b *memoryBucket) RemoveObject(_ context.Context, _, objectName string, _ minio.RemoveObjectOptions) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, objectName)
	return nil
}

func (b *memoryBucket) GetObject(context.Context, string, string, minio.GetObjectOptions) (*minio.Object, error) {
	return nil, errors.New("not supported")
}

func (b *memoryBucket) keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]string, 0, len(b.objects))
	for k := range b.objects {
		keys = append(keys, k)
	}
	return keys
}

func TestMinIOStorage_SaveMovesObjectToFinalKey(t *testing.T) {
	bucket := newMemoryBucket()
	s := newMinIOStorage(bucket, "avatars", 1)

	n, err := s.Save(context.Background(), "a.png", "image/png", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	assert.Equal(t, []string{"img/uploads/a.png"}, bucket.keys())
	assert.Equal(t, []byte("hello"), bucket.objects["img/uploads/a.png"])
}

func TestMinIOStorage_TooLargeKeepsExistingObject(t *testing.T) {
	bucket := newMemoryBucket()
	s := newMinIOStorage(bucket, "avatars", 1)
	ctx := context.Background()

	_, err := s.Save(ctx, "a.png", "image/png", strings.NewReader("first"))
	require.NoError(t, err)

	big := bytes.Repeat([]byte{1}, 1024*1024+1)
	_, err = s.Save(ctx, "a.png", "image/png", bytes.NewReader(big))
	assert.ErrorIs(t, err, ErrTooLarge)

	assert.Equal(t, []string{"img/uploads/a.png"}, bucket.keys())
	assert.Equal(t, []byte("first"), bucket.objects["img/uploads/a.png"])
}

func TestMinIOStorage_RejectsUnsafeNames(t *testing.T) {
	s := newMinIOStorage(newMemoryBucket(), "avatars", 1)

	for _, name := range []string{"", "sub/a.png", ".incoming", "../a.png"} {
		_, err := s.Save(context.Background(), name, "", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrNotFound, name)

		_, err = s.Open(context.Background(), name)
		assert.ErrorIs(t, err, ErrNotFound, name)
	}
}
