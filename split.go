package plygo

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/JTvD/plygo/geometry"
	"github.com/JTvD/plygo/table"
)

// Split reconciles a decoded vertex table and optional face triples
// into (attribute table, geometry).
//
// Faces are first attached to the vertex table as three nullable
// int32 columns triangle1/2/3, row-aligned up to min(N, M). The
// format stores face data in vertex rows even though the two counts
// are unrelated; rows past the face count are explicitly null, never
// zero, since zero is a valid vertex index.
//
// A geometry is then materialized when the table carries the required
// columns: all of x,y,z,red,green,blue plus the triangle columns make
// a Mesh, the six alone make a PointCloud, anything less leaves the
// geometry nil (a pure attribute table).
//
// Split mutates vertex in place: triangle columns are attached, and
// with the drop option enabled the geometry columns are removed once a
// geometry was built. The returned table is the same *table.Table.
func Split(vertex *table.Table, faces [][3]int32, opts ...Option) (*table.Table, geometry.Geometry, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	if len(faces) > 0 {
		if err := attachFaces(vertex, faces); err != nil {
			return nil, nil, translateError(err)
		}
	}

	if !o.materializeGeometry {
		return vertex, nil, nil
	}

	g, err := materialize(vertex)
	if err != nil {
		return nil, nil, translateError(err)
	}

	if g != nil && o.dropGeometryColumns {
		vertex.Drop(table.GeometryColumns()...)
	}
	return vertex, g, nil
}

// attachFaces adds the triangle1/2/3 columns. Triangle indices are
// validated against the vertex count up front; an out-of-range index
// is a data-integrity error, not something to mask.
func attachFaces(vertex *table.Table, faces [][3]int32) error {
	n := vertex.Rows()
	for i, f := range faces {
		for _, idx := range f {
			if idx < 0 || int(idx) >= n {
				return &geometry.ErrInvalidTopology{Triangle: i, Index: idx, Vertices: n}
			}
		}
	}

	m := len(faces)
	if m > n {
		m = n
	}
	valid := roaring.New()
	valid.AddRange(0, uint64(m))

	for axis, name := range table.TriangleColumns {
		vals := make([]int32, n)
		for i := 0; i < m; i++ {
			vals[i] = faces[i][axis]
		}
		if err := vertex.AddColumn(table.NullableInt32Column(name, vals, valid)); err != nil {
			return err
		}
	}
	return nil
}

func materialize(vertex *table.Table) (geometry.Geometry, error) {
	pointColumns := append(append([]string{}, table.PositionColumns...), table.ColorColumns...)
	if !vertex.Has(pointColumns...) {
		return nil, nil
	}
	if vertex.Has(table.TriangleColumns...) {
		return geometry.MeshFromColumns(vertex)
	}
	return geometry.PointCloudFromColumns(vertex)
}
