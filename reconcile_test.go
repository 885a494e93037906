package plygo

import (
	"testing"

	"github.com/EliCDavis/vector/vector3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JTvD/plygo/geometry"
	"github.com/JTvD/plygo/table"
)

func tetrahedron(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New()
	for _, c := range []*table.Column{
		table.Float32Column("x", []float32{0, 1, 0, 0}),
		table.Float32Column("y", []float32{0, 0, 1, 0}),
		table.Float32Column("z", []float32{0, 0, 0, 1}),
		table.Uint8Column("red", []uint8{255, 255, 255, 255}),
		table.Uint8Column("green", []uint8{255, 255, 255, 255}),
		table.Uint8Column("blue", []uint8{255, 255, 255, 255}),
		table.Float32Column("intensity", []float32{0.1, 0.2, 0.3, 0.4}),
	} {
		require.NoError(t, tbl.AddColumn(c))
	}
	return tbl
}

func TestSplitMesh(t *testing.T) {
	faces := [][3]int32{{0, 1, 2}, {0, 2, 3}}

	tbl, g, err := Split(tetrahedron(t), faces)
	require.NoError(t, err)

	mesh, ok := g.(*geometry.Mesh)
	require.True(t, ok)
	assert.Equal(t, 4, mesh.Len())
	tris, _ := mesh.Triangles()
	assert.Equal(t, []geometry.Triangle{{0, 1, 2}, {0, 2, 3}}, tris)

	// Geometry columns are stripped by default.
	assert.Equal(t, []string{"intensity"}, tbl.Names())
	assert.Equal(t, 4, tbl.Rows())
}

func TestSplitPointCloud(t *testing.T) {
	tbl, g, err := Split(tetrahedron(t), nil)
	require.NoError(t, err)

	_, ok := g.(*geometry.PointCloud)
	require.True(t, ok)
	assert.Equal(t, []string{"intensity"}, tbl.Names())
}

func TestSplitNoGeometryWithoutRequiredColumns(t *testing.T) {
	// Removing any one of the six point-cloud columns leaves a pure
	// attribute table.
	for _, missing := range []string{"x", "y", "z", "red", "green", "blue"} {
		tbl := tetrahedron(t)
		tbl.Drop(missing)

		got, g, err := Split(tbl, nil)
		require.NoError(t, err)
		assert.Nil(t, g, missing)
		// Nothing was dropped: the table comes back as-is.
		assert.Equal(t, 6, got.NumColumns(), missing)
	}
}

func TestSplitKeepGeometryColumns(t *testing.T) {
	tbl, g, err := Split(tetrahedron(t), [][3]int32{{0, 1, 2}}, WithDropGeometryColumns(false))
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.Equal(t, []string{
		"x", "y", "z", "red", "green", "blue", "intensity",
		"triangle1", "triangle2", "triangle3",
	}, tbl.Names())
}

func TestSplitWithoutGeometry(t *testing.T) {
	tbl, g, err := Split(tetrahedron(t), [][3]int32{{0, 1, 2}}, WithoutGeometry())
	require.NoError(t, err)
	assert.Nil(t, g)
	// Triangle columns are attached but nothing is dropped.
	assert.True(t, tbl.Has("x", "intensity", "triangle1"))
}

func TestSplitPadsTriangleRows(t *testing.T) {
	// One face over four vertices: rows 1..3 of the triangle columns
	// are null padding, not zeros.
	tbl, _, err := Split(tetrahedron(t), [][3]int32{{0, 2, 3}}, WithDropGeometryColumns(false))
	require.NoError(t, err)

	t1 := tbl.Column("triangle1")
	require.NotNil(t, t1)
	assert.False(t, t1.Null(0))
	assert.True(t, t1.Null(1))
	assert.True(t, t1.Null(3))
	assert.Equal(t, int32(0), t1.Int32s()[0])
	assert.Equal(t, int32(2), tbl.Column("triangle2").Int32s()[0])
	assert.Equal(t, int32(3), tbl.Column("triangle3").Int32s()[0])
}

func TestSplitTruncatesExcessFaces(t *testing.T) {
	// More faces than vertex rows: the row-shared layout can only
	// carry the first N.
	faces := make([][3]int32, 6)
	for i := range faces {
		faces[i] = [3]int32{0, 1, 2}
	}

	_, g, err := Split(tetrahedron(t), faces)
	require.NoError(t, err)

	mesh, ok := g.(*geometry.Mesh)
	require.True(t, ok)
	tris, _ := mesh.Triangles()
	assert.Len(t, tris, 4)
}

func TestSplitInvalidTopology(t *testing.T) {
	for _, faces := range [][][3]int32{
		{{0, 1, -1}},
		{{0, 1, 4}},
	} {
		_, _, err := Split(tetrahedron(t), faces)
		assert.ErrorIs(t, err, ErrInvalidTopology)
	}
}

func TestMerge(t *testing.T) {
	attrs := table.New()
	require.NoError(t, attrs.AddColumn(table.Float32Column("intensity", []float32{0.5, 0.6})))

	points := []vector3.Float64{vector3.New(0.0, 0.0, 0.0), vector3.New(1.0, 2.0, 3.0)}
	colors := []vector3.Float64{vector3.New(1.0, 1.0, 1.0), vector3.New(0.0, 0.5, 1.0)}
	pc, err := geometry.NewPointCloud(points, colors)
	require.NoError(t, err)

	merged, faces, err := Merge(attrs, pc)
	require.NoError(t, err)
	assert.Nil(t, faces)

	assert.Equal(t, []string{"x", "y", "z", "red", "green", "blue", "intensity"}, merged.Names())
	assert.Equal(t, []float32{0, 1}, merged.Column("x").Float32s())
	assert.Equal(t, []uint8{255, 0}, merged.Column("red").Uint8s())
	assert.Equal(t, []uint8{255, 128}, merged.Column("green").Uint8s())
	assert.Equal(t, []uint8{255, 255}, merged.Column("blue").Uint8s())
	assert.Equal(t, []float32{0.5, 0.6}, merged.Column("intensity").Float32s())
}

func TestMergeClampsColors(t *testing.T) {
	points := []vector3.Float64{vector3.New(0.0, 0.0, 0.0)}
	colors := []vector3.Float64{vector3.New(1.5, -0.25, 0.999)}
	pc, err := geometry.NewPointCloud(points, colors)
	require.NoError(t, err)

	merged, _, err := Merge(nil, pc)
	require.NoError(t, err)
	assert.Equal(t, []uint8{255}, merged.Column("red").Uint8s())
	assert.Equal(t, []uint8{0}, merged.Column("green").Uint8s())
	assert.Equal(t, []uint8{255}, merged.Column("blue").Uint8s())
}

func TestMergeRowCountMismatch(t *testing.T) {
	attrs := table.New()
	require.NoError(t, attrs.AddColumn(table.Float32Column("intensity", []float32{1, 2, 3})))

	points := []vector3.Float64{vector3.New(0.0, 0.0, 0.0)}
	colors := []vector3.Float64{vector3.New(1.0, 1.0, 1.0)}
	pc, err := geometry.NewPointCloud(points, colors)
	require.NoError(t, err)

	_, _, err = Merge(attrs, pc)
	var rm *ErrRowCountMismatch
	require.ErrorAs(t, err, &rm)
	assert.Equal(t, 3, rm.TableRows)
	assert.Equal(t, 1, rm.Vertices)
}

func TestMergeDropsStaleGeometryColumns(t *testing.T) {
	attrs := table.New()
	require.NoError(t, attrs.AddColumn(table.Float32Column("x", []float32{99})))
	require.NoError(t, attrs.AddColumn(table.Int32Column("triangle1", []int32{5})))
	require.NoError(t, attrs.AddColumn(table.Float32Column("quality", []float32{0.7})))

	points := []vector3.Float64{vector3.New(1.0, 0.0, 0.0)}
	colors := []vector3.Float64{vector3.New(1.0, 1.0, 1.0)}
	pc, err := geometry.NewPointCloud(points, colors)
	require.NoError(t, err)

	merged, _, err := Merge(attrs, pc)
	require.NoError(t, err)

	// The geometry wins over the stale x column and triangle columns
	// never become vertex fields.
	assert.Equal(t, []string{"x", "y", "z", "red", "green", "blue", "quality"}, merged.Names())
	assert.Equal(t, []float32{1}, merged.Column("x").Float32s())
}

func TestMergeZeroTriangleMeshEmitsNoFaces(t *testing.T) {
	points := []vector3.Float64{vector3.New(0.0, 0.0, 0.0)}
	colors := []vector3.Float64{vector3.New(1.0, 1.0, 1.0)}
	mesh, err := geometry.NewMesh(points, colors, nil)
	require.NoError(t, err)

	_, faces, err := Merge(nil, mesh)
	require.NoError(t, err)
	assert.Nil(t, faces)
}
