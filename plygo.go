package plygo

import (
	"context"

	"github.com/JTvD/plygo/blobstore"
	"github.com/JTvD/plygo/compress"
	"github.com/JTvD/plygo/geometry"
	"github.com/JTvD/plygo/ply"
	"github.com/JTvD/plygo/table"
)

// Decode parses uncompressed PLY bytes into (attribute table,
// geometry). It is the pure in-memory form of Load: handing Load a
// store-backed blob and handing Decode the same bytes produce
// identical results.
func Decode(data []byte, opts ...Option) (*table.Table, geometry.Geometry, error) {
	vertex, faces, err := ply.Decode(data)
	if err != nil {
		return nil, nil, translateError(err)
	}
	return Split(vertex, faces, opts...)
}

// Encode merges a geometry into the attribute table and serializes
// the pair to uncompressed PLY bytes. A nil geometry encodes the
// table as-is; the table must then carry any geometry columns itself.
func Encode(tbl *table.Table, g geometry.Geometry) ([]byte, error) {
	merged := tbl
	var faces [][3]int32
	if g != nil {
		var err error
		merged, faces, err = Merge(tbl, g)
		if err != nil {
			return nil, translateError(err)
		}
	}
	data, err := ply.Encode(merged, faces)
	if err != nil {
		return nil, translateError(err)
	}
	return data, nil
}

// Load reads the named blob, decompresses it and decodes it into
// (attribute table, geometry). Each call is an independent
// transformation; concurrent loads of independent blobs need no
// locking.
func Load(ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (*table.Table, geometry.Geometry, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	tbl, g, err := load(ctx, store, name, o, opts)
	if err != nil {
		o.logger.LogLoad(ctx, name, 0, 0, err)
		return nil, nil, err
	}
	o.logger.LogLoad(ctx, name, tbl.Rows(), triangleCount(g), nil)
	return tbl, g, nil
}

func load(ctx context.Context, store blobstore.BlobStore, name string, o options, opts []Option) (*table.Table, geometry.Geometry, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	// Closed on every path, including mid-parse codec errors.
	defer blob.Close()

	raw, err := blobstore.ReadAll(blob)
	if err != nil {
		return nil, nil, err
	}
	data, err := compressorFor(o, name).Decompress(raw)
	if err != nil {
		return nil, nil, err
	}
	return Decode(data, opts...)
}

// Save encodes (table, geometry), compresses the bytes and writes
// them to the named blob.
func Save(ctx context.Context, store blobstore.BlobStore, name string, tbl *table.Table, g geometry.Geometry, opts ...Option) error {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	err := save(ctx, store, name, tbl, g, o)
	rows := 0
	if tbl != nil {
		rows = tbl.Rows()
	}
	o.logger.LogSave(ctx, name, rows, triangleCount(g), err)
	return err
}

func save(ctx context.Context, store blobstore.BlobStore, name string, tbl *table.Table, g geometry.Geometry, o options) error {
	data, err := Encode(tbl, g)
	if err != nil {
		return err
	}
	packed, err := compressorFor(o, name).Compress(data)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, packed)
}

func compressorFor(o options, name string) compress.Compressor {
	if o.compressor != nil {
		return o.compressor
	}
	return compress.ForPath(name)
}

func triangleCount(g geometry.Geometry) int {
	if g == nil {
		return 0
	}
	if tris, ok := g.Triangles(); ok {
		return len(tris)
	}
	return 0
}
