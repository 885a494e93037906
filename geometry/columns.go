package geometry

import (
	"fmt"

	"github.com/EliCDavis/vector/vector3"

	"github.com/JTvD/plygo/table"
)

// PointCloudFromColumns builds a PointCloud from a table holding the
// six geometry columns x,y,z,red,green,blue. Color bytes are scaled
// to [0,1].
func PointCloudFromColumns(t *table.Table) (*PointCloud, error) {
	points, colors, err := pointsAndColors(t)
	if err != nil {
		return nil, err
	}
	return NewPointCloud(points, colors)
}

// MeshFromColumns builds a Mesh from a table holding the six geometry
// columns plus triangle1, triangle2 and triangle3. Only rows where all
// three triangle columns are non-null contribute a triangle; null rows
// are the padding the row-shared vertex/face layout produces.
func MeshFromColumns(t *table.Table) (*Mesh, error) {
	points, colors, err := pointsAndColors(t)
	if err != nil {
		return nil, err
	}
	t1, t2, t3 := t.Column("triangle1"), t.Column("triangle2"), t.Column("triangle3")
	if t1 == nil || t2 == nil || t3 == nil {
		return nil, fmt.Errorf("geometry: missing triangle columns")
	}
	var triangles []Triangle
	for i := 0; i < t1.Len(); i++ {
		if t1.Null(i) || t2.Null(i) || t3.Null(i) {
			continue
		}
		triangles = append(triangles, Triangle{t1.Int32s()[i], t2.Int32s()[i], t3.Int32s()[i]})
	}
	return NewMesh(points, colors, triangles)
}

func pointsAndColors(t *table.Table) ([]vector3.Float64, []vector3.Float64, error) {
	for _, name := range append(append([]string{}, table.PositionColumns...), table.ColorColumns...) {
		if t.Column(name) == nil {
			return nil, nil, fmt.Errorf("geometry: missing column %q", name)
		}
	}
	x, y, z := t.Column("x"), t.Column("y"), t.Column("z")
	r, g, b := t.Column("red"), t.Column("green"), t.Column("blue")

	n := x.Len()
	points := make([]vector3.Float64, n)
	colors := make([]vector3.Float64, n)
	for i := 0; i < n; i++ {
		points[i] = vector3.New(x.Float64At(i), y.Float64At(i), z.Float64At(i))
		colors[i] = vector3.New(r.Float64At(i)/255, g.Float64At(i)/255, b.Float64At(i)/255)
	}
	return points, colors, nil
}
