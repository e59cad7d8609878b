package storage

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"inventory/config"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"
)

func newTestStorage(t *testing.T, maxBytes int64) (service.ImageStorage, *blob.Bucket) {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	cfg := &config.Config{Storage: &config.StorageConfig{
		PublicPath:    "/static/images",
		MaxImageBytes: maxBytes,
	}}

	return NewBlobImageStorage(ImageStorageParams{
		Bucket: bucket,
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}), bucket
}

func TestStore_GeneratesFreshNamesWithExtension(t *testing.T) {
	ctx := context.Background()
	storage, bucket := newTestStorage(t, 1024)

	first, err := storage.Store(ctx, strings.NewReader("png-bytes"), "../../etc/Photo.PNG", "image/png")
	require.NoError(t, err)
	second, err := storage.Store(ctx, strings.NewReader("png-bytes"), "../../etc/Photo.PNG", "image/png")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "/static/images/"))
	assert.True(t, strings.HasSuffix(first, ".png"))
	assert.NotContains(t, first, "Photo")

	data, err := bucket.ReadAll(ctx, strings.TrimPrefix(first, "/static/images/"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestStore_DefaultsExtension(t *testing.T) {
	storage, _ := newTestStorage(t, 1024)

	for _, name := range []string{"", "noext", "weird.ext with space", "archive."} {
		ref, err := storage.Store(context.Background(), strings.NewReader("x"), name, "image/jpeg")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(ref, ".jpg"), "name %q produced %q", name, ref)
	}
}

func TestStore_RejectsOversizedContent(t *testing.T) {
	ctx := context.Background()
	storage, bucket := newTestStorage(t, 4)

	_, err := storage.Store(ctx, bytes.NewReader([]byte("too-large")), "a.png", "image/png")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrImageTooLarge)

	iter := bucket.List(nil)
	_, err = iter.Next(ctx)
	assert.ErrorIs(t, err, io.EOF, "partial upload must not be persisted")
}

func TestRemove_Statuses(t *testing.T) {
	ctx := context.Background()
	storage, _ := newTestStorage(t, 1024)

	ref, err := storage.Store(ctx, strings.NewReader("x"), "a.gif", "image/gif")
	require.NoError(t, err)

	deleted := storage.Remove(ctx, ref)
	assert.Equal(t, service.RemoveStatusDeleted, deleted.Status)
	assert.True(t, deleted.OK())

	missing := storage.Remove(ctx, ref)
	assert.Equal(t, service.RemoveStatusNotFound, missing.Status)
	assert.NoError(t, missing.Err)
	assert.True(t, missing.OK())

	for _, foreign := range []string{"https://cdn.example.com/a.png", "/static/images/../secret", "/static/images/", ""} {
		skipped := storage.Remove(ctx, foreign)
		assert.Equal(t, service.RemoveStatusSkipped, skipped.Status, foreign)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	storage, _ := newTestStorage(t, 1024)

	ref, err := storage.Store(ctx, strings.NewReader("gif-data"), "a.gif", "image/gif")
	require.NoError(t, err)

	img, err := storage.Open(ctx, strings.TrimPrefix(ref, "/static/images/"))
	require.NoError(t, err)
	defer img.Body.Close()

	data, err := io.ReadAll(img.Body)
	require.NoError(t, err)
	assert.Equal(t, "gif-data", string(data))
	assert.Equal(t, "image/gif", img.ContentType)
	assert.Equal(t, int64(8), img.Size)

	_, err = storage.Open(ctx, "missing.png")
	assert.ErrorIs(t, err, domainerrors.ErrImageNotFound)

	_, err = storage.Open(ctx, "../config.yaml")
	assert.ErrorIs(t, err, domainerrors.ErrImageNotFound)
}
