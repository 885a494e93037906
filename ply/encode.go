package ply

import (
	"encoding/binary"
	"math"

	"github.com/JTvD/plygo/table"
)

// Encode serializes a vertex table and optional faces to binary
// little-endian PLY bytes.
//
// The emitted property order is a wire contract: x,y,z,red,green,blue
// first (those present), then the remaining columns in the table's
// declared order. A face element is written only when faces is
// non-empty, so a mesh without topology is byte-identical to a point
// cloud.
func Encode(tbl *table.Table, faces [][3]int32) ([]byte, error) {
	cols := orderColumns(tbl)

	props := make([]property, len(cols))
	stride := 0
	for i, c := range cols {
		typ, err := PropertyTypeFor(c.Name(), c.Type())
		if err != nil {
			return nil, err
		}
		props[i] = property{name: c.Name(), typ: typ}
		stride += typ.Size()
	}

	n := tbl.Rows()
	buf := make([]byte, 0, 128+32*len(props)+n*stride+len(faces)*13)
	buf = appendHeader(buf, props, n, len(faces))

	for i := 0; i < n; i++ {
		for j, c := range cols {
			buf = appendValue(buf, props[j].typ, c, i)
		}
	}
	for _, f := range faces {
		buf = append(buf, 3)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(f[0]))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(f[1]))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(f[2]))
	}
	return buf, nil
}

// orderColumns applies the deterministic geometry-first ordering.
// The table is already ordered, so this never depends on map
// iteration.
func orderColumns(tbl *table.Table) []*table.Column {
	geo := append(append([]string{}, table.PositionColumns...), table.ColorColumns...)
	cols := make([]*table.Column, 0, tbl.NumColumns())
	leading := make(map[string]bool, len(geo))
	for _, name := range geo {
		if c := tbl.Column(name); c != nil {
			cols = append(cols, c)
			leading[name] = true
		}
	}
	for _, c := range tbl.Columns() {
		if !leading[c.Name()] {
			cols = append(cols, c)
		}
	}
	return cols
}

// appendValue encodes row i of column c as the target property type.
// The mapper guarantees the pairing; reserved columns may require a
// width change (for example float64 positions narrowing to float32).
func appendValue(buf []byte, typ PropertyType, c *table.Column, i int) []byte {
	switch typ {
	case PropFloat32:
		v := float32(c.Float64At(i))
		if c.Type() == table.TypeFloat32 {
			v = c.Float32s()[i]
		}
		return binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	case PropFloat64:
		return binary.LittleEndian.AppendUint64(buf, math.Float64bits(c.Float64At(i)))
	case PropUint8:
		if c.Type() == table.TypeUint8 {
			return append(buf, c.Uint8s()[i])
		}
		return append(buf, clampUint8(c.Float64At(i)))
	case PropUint16:
		return binary.LittleEndian.AppendUint16(buf, c.Uint16s()[i])
	case PropInt16:
		return binary.LittleEndian.AppendUint16(buf, uint16(c.Int16s()[i]))
	case PropInt32:
		if c.Type() == table.TypeInt32 {
			return binary.LittleEndian.AppendUint32(buf, uint32(c.Int32s()[i]))
		}
		return binary.LittleEndian.AppendUint32(buf, uint32(clampInt32(c.Float64At(i))))
	default:
		return buf
	}
}

// Out-of-range float to integer conversion is implementation-defined
// in Go, so the width-change fallbacks clamp. NaN maps to zero.
func clampUint8(v float64) uint8 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(v)
}

func clampInt32(v float64) int32 {
	if math.IsNaN(v) {
		return 0
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v)
}
