package blobstore

import (
	"context"
	"os"

	"golang.org/x/sync/singleflight"
)

// CachingStore wraps a remote BlobStore with a local directory cache.
// Repeated loads of the same remote PLY file hit the disk cache;
// concurrent first loads of one blob share a single remote fetch.
//
// Blobs are treated as immutable: a cache hit is never revalidated.
// Put writes through and refreshes the cached copy.
type CachingStore struct {
	inner BlobStore
	cache *LocalStore
	group singleflight.Group
}

// NewCachingStore creates a CachingStore caching into dir.
func NewCachingStore(inner BlobStore, dir string) *CachingStore {
	return &CachingStore{inner: inner, cache: NewLocalStore(dir)}
}

// Open opens a blob, filling the cache from the inner store on miss.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.cache.Open(ctx, name)
	if err == nil {
		return b, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	if _, err, _ := s.group.Do(name, func() (any, error) {
		return nil, s.fill(ctx, name)
	}); err != nil {
		return nil, err
	}
	return s.cache.Open(ctx, name)
}

func (s *CachingStore) fill(ctx context.Context, name string) error {
	blob, err := s.inner.Open(ctx, name)
	if err != nil {
		return err
	}
	defer blob.Close()

	data, err := ReadAll(blob)
	if err != nil {
		return err
	}
	return s.cache.Put(ctx, name, data)
}

// Put writes through to the inner store and refreshes the cache.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.inner.Put(ctx, name, data); err != nil {
		return err
	}
	return s.cache.Put(ctx, name, data)
}
