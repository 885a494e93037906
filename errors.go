package plygo

import (
	"errors"
	"fmt"

	"github.com/JTvD/plygo/geometry"
	"github.com/JTvD/plygo/ply"
)

var (
	// ErrCorruptHeader is returned when a PLY header cannot be parsed.
	ErrCorruptHeader = errors.New("corrupt header")
	// ErrTruncatedRecord is returned when the record bytes do not
	// match the declared element layout.
	ErrTruncatedRecord = errors.New("truncated record")
	// ErrUnsupportedType is returned for a column or property type
	// with no declared mapping.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrInvalidTopology is returned for triangles referencing
	// invalid vertices or non-triangle face records.
	ErrInvalidTopology = errors.New("invalid topology")
)

// ErrRowCountMismatch indicates a save-time disagreement between the
// attribute table's row count and the geometry's vertex count.
//
// The write path never pads or truncates; only the read path pads, to
// recover the row-shared vertex/face layout.
type ErrRowCountMismatch struct {
	TableRows int
	Vertices  int
}

func (e *ErrRowCountMismatch) Error() string {
	return fmt.Sprintf("row count mismatch: table has %d rows, geometry has %d vertices", e.TableRows, e.Vertices)
}

// translateError normalizes package-level errors onto the facade
// sentinels so callers can branch with errors.Is without importing
// the subpackages. The original error stays reachable via Unwrap.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ch *ply.ErrCorruptHeader
	if errors.As(err, &ch) {
		return fmt.Errorf("%w: %w", ErrCorruptHeader, err)
	}
	var tr *ply.ErrTruncatedRecord
	if errors.As(err, &tr) {
		return fmt.Errorf("%w: %w", ErrTruncatedRecord, err)
	}
	var ut *ply.ErrUnsupportedType
	if errors.As(err, &ut) {
		return fmt.Errorf("%w: %w", ErrUnsupportedType, err)
	}
	var fs *ply.ErrInvalidFaceSize
	if errors.As(err, &fs) {
		return fmt.Errorf("%w: %w", ErrInvalidTopology, err)
	}
	var it *geometry.ErrInvalidTopology
	if errors.As(err, &it) {
		return fmt.Errorf("%w: %w", ErrInvalidTopology, err)
	}

	return err
}
