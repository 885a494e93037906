package ply

import (
	"encoding/binary"
	"math"

	"github.com/JTvD/plygo/table"
)

// Decode parses a binary little-endian PLY file into a vertex table
// and, when a non-empty face element is declared, its triangle index
// triples. A face element declared with count zero, or absent, yields
// nil faces.
func Decode(data []byte) (*table.Table, [][3]int32, error) {
	h, body, err := parseHeader(data)
	if err != nil {
		return nil, nil, err
	}

	stride := 0
	for _, p := range h.vertex.props {
		stride += p.typ.Size()
	}

	// Counts come straight from the header and are untrusted: bound
	// them against the bytes actually present before any allocation
	// sized by them.
	n := h.vertex.count
	if stride > 0 && n > len(body)/stride {
		return nil, nil, &ErrTruncatedRecord{Element: vertexElement, Got: len(body), Want: mulSat(n, stride)}
	}
	vertexBytes := n * stride
	if h.face == nil && stride > 0 && len(body)%stride != 0 {
		return nil, nil, &ErrTruncatedRecord{Element: vertexElement, Got: len(body), Want: vertexBytes}
	}

	tbl, err := decodeVertices(h.vertex, body[:vertexBytes], stride)
	if err != nil {
		return nil, nil, err
	}

	var faces [][3]int32
	if h.face != nil {
		rest := body[vertexBytes:]
		if h.face.count > 0 {
			faces, err = decodeFaces(rest, h.face.count)
			if err != nil {
				return nil, nil, err
			}
		}
		// Every face record is exactly 13 bytes; anything left over
		// is garbage the header never declared.
		if want := h.face.count * 13; len(rest) != want {
			return nil, nil, &ErrTruncatedRecord{Element: faceElement, Got: len(rest), Want: want}
		}
	}
	return tbl, faces, nil
}

// mulSat multiplies without wrapping; header-declared counts can be
// absurd and the product only feeds error reporting.
func mulSat(a, b int) int {
	if b != 0 && a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

func decodeVertices(elem element, body []byte, stride int) (*table.Table, error) {
	tbl := table.New()
	n := elem.count

	offset := 0
	for _, p := range elem.props {
		col, err := decodeColumn(p, body, offset, stride, n)
		if err != nil {
			return nil, err
		}
		if err := tbl.AddColumn(col); err != nil {
			return nil, err
		}
		offset += p.typ.Size()
	}
	return tbl, nil
}

// decodeColumn reads one property out of the interleaved records into
// a fresh column buffer of the matching element type.
func decodeColumn(p property, body []byte, offset, stride, n int) (*table.Column, error) {
	if _, err := elementTypeFor(p); err != nil {
		return nil, err
	}
	switch p.typ {
	case PropFloat32:
		vals := make([]float32, n)
		for i := 0; i < n; i++ {
			vals[i] = math.Float32frombits(binary.LittleEndian.Uint32(body[i*stride+offset:]))
		}
		return table.Float32Column(p.name, vals), nil
	case PropFloat64:
		vals := make([]float64, n)
		for i := 0; i < n; i++ {
			vals[i] = math.Float64frombits(binary.LittleEndian.Uint64(body[i*stride+offset:]))
		}
		return table.Float64Column(p.name, vals), nil
	case PropUint8:
		vals := make([]uint8, n)
		for i := 0; i < n; i++ {
			vals[i] = body[i*stride+offset]
		}
		return table.Uint8Column(p.name, vals), nil
	case PropUint16:
		vals := make([]uint16, n)
		for i := 0; i < n; i++ {
			vals[i] = binary.LittleEndian.Uint16(body[i*stride+offset:])
		}
		return table.Uint16Column(p.name, vals), nil
	case PropInt16:
		vals := make([]int16, n)
		for i := 0; i < n; i++ {
			vals[i] = int16(binary.LittleEndian.Uint16(body[i*stride+offset:]))
		}
		return table.Int16Column(p.name, vals), nil
	case PropInt32:
		vals := make([]int32, n)
		for i := 0; i < n; i++ {
			vals[i] = int32(binary.LittleEndian.Uint32(body[i*stride+offset:]))
		}
		return table.Int32Column(p.name, vals), nil
	default:
		return nil, &ErrUnsupportedType{Name: p.name, Type: p.typ.Token()}
	}
}

// decodeFaces reads m face records of the form
// [uchar count][count × int32]. Every record must be a triangle.
func decodeFaces(body []byte, m int) ([][3]int32, error) {
	capHint := m
	if max := len(body) / 13; capHint > max {
		capHint = max
	}
	faces := make([][3]int32, 0, capHint)
	pos := 0
	for i := 0; i < m; i++ {
		if pos >= len(body) {
			return nil, &ErrTruncatedRecord{Element: faceElement, Got: len(body), Want: pos + 13}
		}
		count := int(body[pos])
		pos++
		if count != 3 {
			return nil, &ErrInvalidFaceSize{Face: i, Count: count}
		}
		if pos+12 > len(body) {
			return nil, &ErrTruncatedRecord{Element: faceElement, Got: len(body), Want: pos + 12}
		}
		faces = append(faces, [3]int32{
			int32(binary.LittleEndian.Uint32(body[pos:])),
			int32(binary.LittleEndian.Uint32(body[pos+4:])),
			int32(binary.LittleEndian.Uint32(body[pos+8:])),
		})
		pos += 12
	}
	return faces, nil
}
