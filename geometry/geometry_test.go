package geometry

import (
	"testing"

	"github.com/EliCDavis/vector/vector3"
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JTvD/plygo/table"
)

func somePoints() ([]vector3.Float64, []vector3.Float64) {
	points := []vector3.Float64{
		vector3.New(0.0, 0.0, 0.0),
		vector3.New(1.0, 0.0, 0.0),
		vector3.New(0.0, 1.0, 0.0),
	}
	colors := []vector3.Float64{
		vector3.New(1.0, 1.0, 1.0),
		vector3.New(0.5, 0.5, 0.5),
		vector3.New(0.0, 0.0, 0.0),
	}
	return points, colors
}

func TestNewPointCloud(t *testing.T) {
	points, colors := somePoints()

	pc, err := NewPointCloud(points, colors)
	require.NoError(t, err)
	assert.Equal(t, 3, pc.Len())
	assert.Equal(t, points, pc.Positions())
	assert.Equal(t, colors, pc.Colors())

	tris, ok := pc.Triangles()
	assert.Nil(t, tris)
	assert.False(t, ok)
}

func TestNewPointCloudLengthMismatch(t *testing.T) {
	points, colors := somePoints()

	_, err := NewPointCloud(points, colors[:2])
	var lm *ErrLengthMismatch
	require.ErrorAs(t, err, &lm)
	assert.Equal(t, 3, lm.Positions)
	assert.Equal(t, 2, lm.Colors)
}

func TestNewMesh(t *testing.T) {
	points, colors := somePoints()

	m, err := NewMesh(points, colors, []Triangle{{0, 1, 2}})
	require.NoError(t, err)

	tris, ok := m.Triangles()
	assert.True(t, ok)
	assert.Equal(t, []Triangle{{0, 1, 2}}, tris)
}

func TestNewMeshZeroTriangles(t *testing.T) {
	points, colors := somePoints()

	m, err := NewMesh(points, colors, nil)
	require.NoError(t, err)

	tris, ok := m.Triangles()
	assert.True(t, ok)
	assert.Empty(t, tris)
}

func TestNewMeshInvalidTopology(t *testing.T) {
	points, colors := somePoints()

	tests := []struct {
		name string
		tri  Triangle
		idx  int32
	}{
		{"negative", Triangle{0, -1, 2}, -1},
		{"out of range", Triangle{0, 1, 3}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMesh(points, colors, []Triangle{tt.tri})
			var it *ErrInvalidTopology
			require.ErrorAs(t, err, &it)
			assert.Equal(t, tt.idx, it.Index)
			assert.Equal(t, 3, it.Vertices)
		})
	}
}

func geometryTable(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New()
	for _, c := range []*table.Column{
		table.Float32Column("x", []float32{0, 1, 0}),
		table.Float32Column("y", []float32{0, 0, 1}),
		table.Float32Column("z", []float32{0, 0, 0}),
		table.Uint8Column("red", []uint8{255, 255, 255}),
		table.Uint8Column("green", []uint8{255, 255, 255}),
		table.Uint8Column("blue", []uint8{255, 255, 255}),
	} {
		require.NoError(t, tbl.AddColumn(c))
	}
	return tbl
}

func TestPointCloudFromColumns(t *testing.T) {
	pc, err := PointCloudFromColumns(geometryTable(t))
	require.NoError(t, err)

	assert.Equal(t, vector3.New(1.0, 0.0, 0.0), pc.Positions()[1])
	// Color bytes scale to [0,1].
	assert.Equal(t, vector3.New(1.0, 1.0, 1.0), pc.Colors()[0])
}

func TestPointCloudFromColumnsMissing(t *testing.T) {
	tbl := geometryTable(t)
	tbl.Drop("blue")

	_, err := PointCloudFromColumns(tbl)
	assert.Error(t, err)
}

func TestMeshFromColumnsMasksNullRows(t *testing.T) {
	tbl := geometryTable(t)

	// One triangle in row 0; rows 1 and 2 are padding.
	valid := roaring.New()
	valid.Add(0)
	require.NoError(t, tbl.AddColumn(table.NullableInt32Column("triangle1", []int32{0, 0, 0}, valid)))
	require.NoError(t, tbl.AddColumn(table.NullableInt32Column("triangle2", []int32{1, 0, 0}, valid)))
	require.NoError(t, tbl.AddColumn(table.NullableInt32Column("triangle3", []int32{2, 0, 0}, valid)))

	m, err := MeshFromColumns(tbl)
	require.NoError(t, err)

	tris, ok := m.Triangles()
	require.True(t, ok)
	assert.Equal(t, []Triangle{{0, 1, 2}}, tris)
}
