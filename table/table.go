// Package table implements an ordered collection of named scalar
// columns sharing a single row count. It is the in-memory form of the
// per-vertex data of a PLY file: positions, colors and arbitrary
// scalar fields all appear as columns here.
//
// Column element types form a closed enum. There is no dynamic typing
// and no implicit coercion; a value outside the enum cannot enter a
// table.
package table

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// Reserved geometry column names. A table may or may not contain
// them; whether it does is state the reconciler tracks, never an
// assumption of this package.
var (
	// PositionColumns are the vertex position columns.
	PositionColumns = []string{"x", "y", "z"}
	// ColorColumns are the vertex color columns.
	ColorColumns = []string{"red", "green", "blue"}
	// TriangleColumns are the per-row triangle index columns.
	TriangleColumns = []string{"triangle1", "triangle2", "triangle3"}
)

// GeometryColumns returns all reserved geometry column names.
func GeometryColumns() []string {
	names := make([]string, 0, 9)
	names = append(names, PositionColumns...)
	names = append(names, ColorColumns...)
	names = append(names, TriangleColumns...)
	return names
}

// ElementType identifies the concrete type stored in a Column.
type ElementType uint8

const (
	// TypeInvalid represents an invalid element type.
	TypeInvalid ElementType = iota
	// TypeFloat32 is a 32-bit IEEE 754 float.
	TypeFloat32
	// TypeFloat64 is a 64-bit IEEE 754 float.
	TypeFloat64
	// TypeUint8 is an 8-bit unsigned integer.
	TypeUint8
	// TypeUint16 is a 16-bit unsigned integer.
	TypeUint16
	// TypeInt16 is a 16-bit signed integer.
	TypeInt16
	// TypeInt32 is a 32-bit signed integer.
	TypeInt32
	// TypeBool is a boolean, stored on disk as an 8-bit unsigned integer.
	TypeBool
)

// String returns the string representation of the ElementType.
func (t ElementType) String() string {
	switch t {
	case TypeFloat32:
		return "Float32"
	case TypeFloat64:
		return "Float64"
	case TypeUint8:
		return "Uint8"
	case TypeUint16:
		return "Uint16"
	case TypeInt16:
		return "Int16"
	case TypeInt32:
		return "Int32"
	case TypeBool:
		return "Bool"
	default:
		return "Invalid"
	}
}

// Column is a named homogeneous sequence of scalar values.
//
// Exactly one backing slice is populated, selected by Type. Int32
// columns may additionally carry a validity bitmap; a row missing from
// the bitmap is null. Null is distinguishable from zero, which matters
// for vertex indices where zero is a valid value.
type Column struct {
	name string
	typ  ElementType

	f32 []float32
	f64 []float64
	u8  []uint8
	u16 []uint16
	i16 []int16
	i32 []int32
	b   []bool

	// valid is nil when every row is valid.
	valid *roaring.Bitmap
}

// Float32Column creates a Column of 32-bit floats.
func Float32Column(name string, values []float32) *Column {
	return &Column{name: name, typ: TypeFloat32, f32: values}
}

// Float64Column creates a Column of 64-bit floats.
func Float64Column(name string, values []float64) *Column {
	return &Column{name: name, typ: TypeFloat64, f64: values}
}

// Uint8Column creates a Column of 8-bit unsigned integers.
func Uint8Column(name string, values []uint8) *Column {
	return &Column{name: name, typ: TypeUint8, u8: values}
}

// Uint16Column creates a Column of 16-bit unsigned integers.
func Uint16Column(name string, values []uint16) *Column {
	return &Column{name: name, typ: TypeUint16, u16: values}
}

// Int16Column creates a Column of 16-bit signed integers.
func Int16Column(name string, values []int16) *Column {
	return &Column{name: name, typ: TypeInt16, i16: values}
}

// Int32Column creates a Column of 32-bit signed integers.
func Int32Column(name string, values []int32) *Column {
	return &Column{name: name, typ: TypeInt32, i32: values}
}

// NullableInt32Column creates an Int32 Column where only the rows set
// in valid carry a value. Unset rows read as null.
func NullableInt32Column(name string, values []int32, valid *roaring.Bitmap) *Column {
	return &Column{name: name, typ: TypeInt32, i32: values, valid: valid}
}

// BoolColumn creates a Column of booleans.
func BoolColumn(name string, values []bool) *Column {
	return &Column{name: name, typ: TypeBool, b: values}
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Type returns the element type.
func (c *Column) Type() ElementType { return c.typ }

// Len returns the number of rows.
func (c *Column) Len() int {
	switch c.typ {
	case TypeFloat32:
		return len(c.f32)
	case TypeFloat64:
		return len(c.f64)
	case TypeUint8:
		return len(c.u8)
	case TypeUint16:
		return len(c.u16)
	case TypeInt16:
		return len(c.i16)
	case TypeInt32:
		return len(c.i32)
	case TypeBool:
		return len(c.b)
	default:
		return 0
	}
}

// Null reports whether the value at row i is null.
func (c *Column) Null(i int) bool {
	return c.valid != nil && !c.valid.Contains(uint32(i))
}

// Validity returns the validity bitmap, or nil when every row is valid.
func (c *Column) Validity() *roaring.Bitmap { return c.valid }

// Float32s returns the backing slice of a Float32 column.
func (c *Column) Float32s() []float32 { return c.f32 }

// Float64s returns the backing slice of a Float64 column.
func (c *Column) Float64s() []float64 { return c.f64 }

// Uint8s returns the backing slice of a Uint8 column.
func (c *Column) Uint8s() []uint8 { return c.u8 }

// Uint16s returns the backing slice of a Uint16 column.
func (c *Column) Uint16s() []uint16 { return c.u16 }

// Int16s returns the backing slice of an Int16 column.
func (c *Column) Int16s() []int16 { return c.i16 }

// Int32s returns the backing slice of an Int32 column.
func (c *Column) Int32s() []int32 { return c.i32 }

// Bools returns the backing slice of a Bool column.
func (c *Column) Bools() []bool { return c.b }

// Float64At returns the value at row i widened to float64.
// Every element type in the enum is exactly representable in float64.
func (c *Column) Float64At(i int) float64 {
	switch c.typ {
	case TypeFloat32:
		return float64(c.f32[i])
	case TypeFloat64:
		return c.f64[i]
	case TypeUint8:
		return float64(c.u8[i])
	case TypeUint16:
		return float64(c.u16[i])
	case TypeInt16:
		return float64(c.i16[i])
	case TypeInt32:
		return float64(c.i32[i])
	case TypeBool:
		if c.b[i] {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Table is an ordered set of uniquely named columns sharing one row
// count. The zero value is not usable; use New.
type Table struct {
	cols  []*Column
	index map[string]int
}

// New creates an empty Table.
func New() *Table {
	return &Table{index: make(map[string]int)}
}

// AddColumn appends a column. It fails when the name is already taken
// or when the column length disagrees with the existing row count.
func (t *Table) AddColumn(c *Column) error {
	if c == nil || c.typ == TypeInvalid {
		return fmt.Errorf("table: invalid column")
	}
	if _, ok := t.index[c.name]; ok {
		return fmt.Errorf("table: duplicate column %q", c.name)
	}
	if len(t.cols) > 0 && c.Len() != t.Rows() {
		return &ErrLengthMismatch{Column: c.name, Expected: t.Rows(), Actual: c.Len()}
	}
	t.index[c.name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// Column returns the named column, or nil when absent.
func (t *Table) Column(name string) *Column {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	return t.cols[i]
}

// Has reports whether all named columns are present.
func (t *Table) Has(names ...string) bool {
	for _, n := range names {
		if _, ok := t.index[n]; !ok {
			return false
		}
	}
	return true
}

// Drop removes the named columns. Unknown names are ignored.
func (t *Table) Drop(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := t.cols[:0]
	for _, c := range t.cols {
		if !drop[c.name] {
			kept = append(kept, c)
		}
	}
	t.cols = kept
	t.index = make(map[string]int, len(t.cols))
	for i, c := range t.cols {
		t.index[c.name] = i
	}
}

// Columns returns the columns in declared order. The slice is shared;
// callers must not mutate it.
func (t *Table) Columns() []*Column { return t.cols }

// Names returns the column names in declared order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.name
	}
	return names
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.cols) }

// Rows returns the shared row count, zero for an empty table.
func (t *Table) Rows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// ErrLengthMismatch indicates a column whose length disagrees with the
// table's row count.
type ErrLengthMismatch struct {
	Column   string
	Expected int
	Actual   int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("table: column %q has %d rows, expected %d", e.Column, e.Actual, e.Expected)
}
