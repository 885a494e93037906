// Package geometry holds the in-memory point cloud and triangle mesh
// value objects produced and consumed by the reconciler.
//
// The two variants form an explicit tagged union behind the Geometry
// interface. Which variant a caller holds is decided at construction,
// never inferred from the presence of attributes on an opaque value.
package geometry

import (
	"fmt"

	"github.com/EliCDavis/vector/vector3"
)

// Triangle is a triple of vertex indices.
type Triangle [3]int32

// Geometry is the capability set the reconciler needs from a point
// cloud or mesh: positions, colors and, for meshes, triangles.
type Geometry interface {
	// Positions returns one 3-D position per vertex.
	Positions() []vector3.Float64
	// Colors returns one RGB color per vertex, channels in [0,1].
	Colors() []vector3.Float64
	// Triangles returns the triangle list and true for a mesh,
	// nil and false for a point cloud.
	Triangles() ([]Triangle, bool)
}

// ErrInvalidTopology indicates a triangle referencing a vertex index
// outside [0, Vertices).
type ErrInvalidTopology struct {
	Triangle int
	Index    int32
	Vertices int
}

func (e *ErrInvalidTopology) Error() string {
	return fmt.Sprintf("geometry: triangle %d references vertex %d, valid range [0,%d)", e.Triangle, e.Index, e.Vertices)
}

// ErrLengthMismatch indicates position and color sequences of
// different lengths.
type ErrLengthMismatch struct {
	Positions int
	Colors    int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("geometry: %d positions but %d colors", e.Positions, e.Colors)
}

// PointCloud is an ordered set of colored points.
type PointCloud struct {
	points []vector3.Float64
	colors []vector3.Float64
}

// NewPointCloud creates a PointCloud. Positions and colors must have
// the same length.
func NewPointCloud(points, colors []vector3.Float64) (*PointCloud, error) {
	if len(points) != len(colors) {
		return nil, &ErrLengthMismatch{Positions: len(points), Colors: len(colors)}
	}
	return &PointCloud{points: points, colors: colors}, nil
}

// Positions implements Geometry.
func (p *PointCloud) Positions() []vector3.Float64 { return p.points }

// Colors implements Geometry.
func (p *PointCloud) Colors() []vector3.Float64 { return p.colors }

// Triangles implements Geometry. A point cloud has no topology.
func (p *PointCloud) Triangles() ([]Triangle, bool) { return nil, false }

// Len returns the number of points.
func (p *PointCloud) Len() int { return len(p.points) }

// Mesh is a point cloud plus triangle topology. A mesh with zero
// triangles is valid, if unusual.
type Mesh struct {
	PointCloud
	triangles []Triangle
}

// NewMesh creates a Mesh. Every triangle index must reference a valid
// vertex; a violation is a data-integrity error, not dropped.
func NewMesh(points, colors []vector3.Float64, triangles []Triangle) (*Mesh, error) {
	pc, err := NewPointCloud(points, colors)
	if err != nil {
		return nil, err
	}
	n := int32(len(points))
	for i, tri := range triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= n {
				return nil, &ErrInvalidTopology{Triangle: i, Index: idx, Vertices: len(points)}
			}
		}
	}
	return &Mesh{PointCloud: *pc, triangles: triangles}, nil
}

// Triangles implements Geometry.
func (m *Mesh) Triangles() ([]Triangle, bool) { return m.triangles, true }
