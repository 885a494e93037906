// Package plygo round-trips colored point clouds and triangle meshes
// between binary little-endian PLY files and a pair of in-memory
// values: a table of named per-point scalar fields and a geometry
// object (point cloud or mesh).
//
// Point-cloud tooling commonly cannot carry arbitrary scalar fields
// next to positions and colors. Plygo keeps both: on load the vertex
// element is split into (attribute table, geometry), on save the two
// are merged back, losslessly up to the float32 precision of stored
// positions.
//
// # Quick Start
//
// Loading a gzipped PLY from disk:
//
//	ctx := context.Background()
//	store := blobstore.NewLocalStore("./example_data")
//	tbl, geom, _ := plygo.Load(ctx, store, "example_pointcloud.ply.gz")
//
// The table holds the scalar fields (the geometry columns are
// stripped by default), geom is a *geometry.PointCloud or
// *geometry.Mesh depending on the file's topology. Saving is the
// inverse:
//
//	_ = plygo.Save(ctx, store, "out.ply.gz", tbl, geom)
//
// In-memory bytes behave identically to stored blobs:
//
//	tbl, geom, _ := plygo.Decode(rawPLY)
//	rawPLY2, _ := plygo.Encode(tbl, geom)
//
// # Remote storage
//
// Blobs can live on S3 or any S3-compatible store:
//
//	s3Store, _ := s3.New(ctx, "my-bucket", "pointclouds/")
//	cached := blobstore.NewCachingStore(s3Store, "/fast/nvme/cache")
//	tbl, geom, _ := plygo.Load(ctx, cached, "scan_042.ply.gz")
//
// # File format
//
// Files are standard binary_little_endian 1.0 PLY, restricted to one
// vertex element of scalar properties and an optional face element of
// triangle vertex_index lists. Written files stay readable by other
// PLY tools; the vertex properties are emitted geometry-first
// (x,y,z,red,green,blue) followed by the remaining columns in table
// order.
package plygo
