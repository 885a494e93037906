// Package ply reads and writes the binary little-endian PLY format:
// an ASCII header declaring elements and properties, followed by
// packed fixed-width records.
//
// Only the subset this engine needs is supported: one vertex element
// of scalar properties and an optional face element holding triangle
// vertex-index triples. The codec knows nothing about geometry
// semantics beyond the reserved column names the type mapper pins to
// fixed property types.
package ply

import (
	"fmt"

	"github.com/JTvD/plygo/table"
)

// PropertyType identifies a PLY scalar property type.
type PropertyType uint8

const (
	// PropInvalid represents an invalid property type.
	PropInvalid PropertyType = iota
	// PropInt8 is the PLY char type.
	PropInt8
	// PropUint8 is the PLY uchar type.
	PropUint8
	// PropInt16 is the PLY short type.
	PropInt16
	// PropUint16 is the PLY ushort type.
	PropUint16
	// PropInt32 is the PLY int type.
	PropInt32
	// PropUint32 is the PLY uint type.
	PropUint32
	// PropFloat32 is the PLY float type.
	PropFloat32
	// PropFloat64 is the PLY double type.
	PropFloat64
)

// Size returns the encoded width in bytes.
func (t PropertyType) Size() int {
	switch t {
	case PropInt8, PropUint8:
		return 1
	case PropInt16, PropUint16:
		return 2
	case PropInt32, PropUint32, PropFloat32:
		return 4
	case PropFloat64:
		return 8
	default:
		return 0
	}
}

// Token returns the traditional header spelling of the type.
func (t PropertyType) Token() string {
	switch t {
	case PropInt8:
		return "char"
	case PropUint8:
		return "uchar"
	case PropInt16:
		return "short"
	case PropUint16:
		return "ushort"
	case PropInt32:
		return "int"
	case PropUint32:
		return "uint"
	case PropFloat32:
		return "float"
	case PropFloat64:
		return "double"
	default:
		return "invalid"
	}
}

// parsePropertyType accepts both the traditional and the sized token
// spellings found in headers written by other tools.
func parsePropertyType(tok string) (PropertyType, bool) {
	switch tok {
	case "char", "int8":
		return PropInt8, true
	case "uchar", "uint8":
		return PropUint8, true
	case "short", "int16":
		return PropInt16, true
	case "ushort", "uint16":
		return PropUint16, true
	case "int", "int32":
		return PropInt32, true
	case "uint", "uint32":
		return PropUint32, true
	case "float", "float32":
		return PropFloat32, true
	case "double", "float64":
		return PropFloat64, true
	default:
		return PropInvalid, false
	}
}

// PropertyTypeFor maps a column to the property type it is encoded
// with. The reserved geometry columns have fixed mappings regardless
// of the column's in-memory type; every other column maps by element
// type alone. A column outside the mapping is a hard error, never
// coerced to a default.
func PropertyTypeFor(name string, t table.ElementType) (PropertyType, error) {
	switch name {
	case "x", "y", "z":
		return PropFloat32, nil
	case "red", "green", "blue":
		return PropUint8, nil
	case "triangle1", "triangle2", "triangle3":
		return PropInt32, nil
	}
	switch t {
	case table.TypeFloat32:
		return PropFloat32, nil
	case table.TypeFloat64:
		return PropFloat64, nil
	case table.TypeInt16:
		return PropInt16, nil
	case table.TypeInt32:
		return PropInt32, nil
	case table.TypeUint8, table.TypeBool:
		return PropUint8, nil
	case table.TypeUint16:
		return PropUint16, nil
	default:
		return PropInvalid, &ErrUnsupportedType{Name: name, Type: t.String()}
	}
}

// elementTypeFor is the reader-side inverse: the column type a decoded
// property materializes as. One-to-one; bool never comes back as bool,
// it decodes as uint8 with the same values.
func elementTypeFor(p property) (table.ElementType, error) {
	switch p.typ {
	case PropFloat32:
		return table.TypeFloat32, nil
	case PropFloat64:
		return table.TypeFloat64, nil
	case PropUint8:
		return table.TypeUint8, nil
	case PropUint16:
		return table.TypeUint16, nil
	case PropInt16:
		return table.TypeInt16, nil
	case PropInt32:
		return table.TypeInt32, nil
	default:
		return table.TypeInvalid, &ErrUnsupportedType{Name: p.name, Type: p.typ.Token()}
	}
}

// ErrCorruptHeader indicates a header this codec cannot parse.
type ErrCorruptHeader struct {
	Line   int
	Reason string
}

func (e *ErrCorruptHeader) Error() string {
	return fmt.Sprintf("ply: corrupt header at line %d: %s", e.Line, e.Reason)
}

// ErrTruncatedRecord indicates a record region whose byte count does
// not match the declared element layout.
type ErrTruncatedRecord struct {
	Element string
	Got     int
	Want    int
}

func (e *ErrTruncatedRecord) Error() string {
	return fmt.Sprintf("ply: element %q truncated: %d bytes, need %d", e.Element, e.Got, e.Want)
}

// ErrUnsupportedType indicates a column or property type with no
// declared mapping.
type ErrUnsupportedType struct {
	Name string
	Type string
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("ply: property %q has unsupported type %s", e.Name, e.Type)
}

// ErrInvalidFaceSize indicates a face record that is not a triangle.
type ErrInvalidFaceSize struct {
	Face  int
	Count int
}

func (e *ErrInvalidFaceSize) Error() string {
	return fmt.Sprintf("ply: face %d has %d vertex indices, only triangles are supported", e.Face, e.Count)
}
