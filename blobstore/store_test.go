package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "a.ply", []byte("hello")))

	blob, err := store.Open(ctx, "a.ply")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(5), blob.Size())
	data, err := ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestMemoryStoreNotFound(t *testing.T) {
	_, err := NewMemoryStore().Open(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreOpenIsolatedFromPut(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "a", []byte("old")))

	blob, err := store.Open(ctx, "a")
	require.NoError(t, err)
	defer blob.Close()

	require.NoError(t, store.Put(ctx, "a", []byte("new")))

	data, err := ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), data)
}

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	payload := []byte("mapped bytes")
	require.NoError(t, store.Put(ctx, "sub/cloud.ply", payload))

	blob, err := store.Open(ctx, "sub/cloud.ply")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(len(payload)), blob.Size())
	data, err := ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	// Ranged read through the mmap.
	p := make([]byte, 6)
	n, err := blob.ReadAt(p, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, []byte("mapped"), p)
}

func TestLocalStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	require.NoError(t, store.Put(ctx, "a", []byte("one")))
	require.NoError(t, store.Put(ctx, "a", []byte("two")))

	blob, err := store.Open(ctx, "a")
	require.NoError(t, err)
	defer blob.Close()

	data, err := ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), data)
}

func TestCachingStore(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	require.NoError(t, inner.Put(ctx, "a", []byte("v1")))

	store := NewCachingStore(inner, t.TempDir())

	blob, err := store.Open(ctx, "a")
	require.NoError(t, err)
	data, err := ReadAll(blob)
	require.NoError(t, err)
	require.NoError(t, blob.Close())
	assert.Equal(t, []byte("v1"), data)

	// Blobs are treated as immutable: a direct write to the inner
	// store is not seen through the cache.
	require.NoError(t, inner.Put(ctx, "a", []byte("v2")))
	blob, err = store.Open(ctx, "a")
	require.NoError(t, err)
	data, err = ReadAll(blob)
	require.NoError(t, err)
	require.NoError(t, blob.Close())
	assert.Equal(t, []byte("v1"), data)
}

func TestCachingStorePutRefreshesCache(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	store := NewCachingStore(inner, t.TempDir())

	require.NoError(t, store.Put(ctx, "a", []byte("v1")))
	require.NoError(t, store.Put(ctx, "a", []byte("v2")))

	blob, err := store.Open(ctx, "a")
	require.NoError(t, err)
	defer blob.Close()
	data, err := ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)

	// The write went through to the backend as well.
	innerBlob, err := inner.Open(ctx, "a")
	require.NoError(t, err)
	defer innerBlob.Close()
	innerData, err := ReadAll(innerBlob)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), innerData)
}

func TestCachingStoreMissingBlob(t *testing.T) {
	store := NewCachingStore(NewMemoryStore(), t.TempDir())
	_, err := store.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
