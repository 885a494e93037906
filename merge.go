package plygo

import (
	"math"

	"github.com/JTvD/plygo/geometry"
	"github.com/JTvD/plygo/table"
)

// Merge is the inverse of Split: it folds a geometry back into a
// vertex table ready for encoding, plus the face triples to emit.
//
// Positions become float32 x,y,z columns. Colors are scaled by 255,
// rounded to the nearest integer and clamped to [0,255]; upstream
// processing can push color channels outside [0,1] and clamping, not
// wrap-around, is the policy. Remaining attribute columns follow in
// their declared order. Faces are returned only when the geometry is
// a mesh with at least one triangle; a zero-triangle mesh encodes as
// a point cloud.
//
// A row-count disagreement between the attribute table and the
// geometry is fatal. The write path never truncates or pads.
func Merge(attrs *table.Table, g geometry.Geometry) (*table.Table, [][3]int32, error) {
	points := g.Positions()
	colors := g.Colors()
	n := len(points)
	if len(colors) != n {
		return nil, nil, &geometry.ErrLengthMismatch{Positions: n, Colors: len(colors)}
	}
	if attrs != nil && attrs.NumColumns() > 0 && attrs.Rows() != n {
		return nil, nil, &ErrRowCountMismatch{TableRows: attrs.Rows(), Vertices: n}
	}

	x := make([]float32, n)
	y := make([]float32, n)
	z := make([]float32, n)
	r := make([]uint8, n)
	gr := make([]uint8, n)
	b := make([]uint8, n)
	for i, p := range points {
		x[i] = float32(p.X())
		y[i] = float32(p.Y())
		z[i] = float32(p.Z())
	}
	for i, c := range colors {
		r[i] = colorByte(c.X())
		gr[i] = colorByte(c.Y())
		b[i] = colorByte(c.Z())
	}

	merged := table.New()
	for _, c := range []*table.Column{
		table.Float32Column("x", x),
		table.Float32Column("y", y),
		table.Float32Column("z", z),
		table.Uint8Column("red", r),
		table.Uint8Column("green", gr),
		table.Uint8Column("blue", b),
	} {
		if err := merged.AddColumn(c); err != nil {
			return nil, nil, err
		}
	}

	if attrs != nil {
		skip := make(map[string]bool, 9)
		for _, name := range table.GeometryColumns() {
			skip[name] = true
		}
		for _, c := range attrs.Columns() {
			if skip[c.Name()] {
				// Geometry wins over stale geometry columns, and
				// triangle columns never encode as vertex fields.
				continue
			}
			if err := merged.AddColumn(c); err != nil {
				return nil, nil, err
			}
		}
	}

	var faces [][3]int32
	if tris, ok := g.Triangles(); ok && len(tris) > 0 {
		faces = make([][3]int32, len(tris))
		for i, t := range tris {
			faces[i] = t
		}
	}
	return merged, faces, nil
}

// colorByte maps a [0,1] color channel to a byte, clamped.
func colorByte(v float64) uint8 {
	scaled := math.Round(v * 255)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
