package ply

import (
	"bytes"
	"strconv"
	"strings"
)

const (
	vertexElement = "vertex"
	faceElement   = "face"
	faceProperty  = "vertex_index"
)

// property is one declared property of an element.
type property struct {
	name string
	typ  PropertyType
	// list properties carry a count prefix per record.
	list      bool
	countType PropertyType
}

// element is one declared element: a name, a record count and an
// ordered property list.
type element struct {
	name  string
	count int
	props []property
}

// header is the parsed self-describing preamble of a PLY file.
type header struct {
	vertex element
	// face is nil when the file declares no face element.
	face *element
}

// parseHeader parses the ASCII header and returns it together with
// the record bytes that follow end_header. Header and format errors
// abort before any record is touched.
func parseHeader(data []byte) (*header, []byte, error) {
	var (
		h        header
		elems    []*element
		sawMagic bool
		sawFmt   bool
		line     int
	)

	rest := data
	for {
		nl := bytes.IndexByte(rest, '\n')
		if nl < 0 {
			return nil, nil, &ErrCorruptHeader{Line: line + 1, Reason: "missing end_header"}
		}
		raw := strings.TrimRight(string(rest[:nl]), "\r")
		rest = rest[nl+1:]
		line++

		fields := strings.Fields(raw)
		if len(fields) == 0 {
			return nil, nil, &ErrCorruptHeader{Line: line, Reason: "empty line"}
		}

		if line == 1 {
			if raw != "ply" {
				return nil, nil, &ErrCorruptHeader{Line: line, Reason: "missing ply magic"}
			}
			sawMagic = true
			continue
		}

		switch fields[0] {
		case "format":
			if len(fields) != 3 || fields[1] != "binary_little_endian" || fields[2] != "1.0" {
				return nil, nil, &ErrCorruptHeader{Line: line, Reason: "unsupported format " + raw}
			}
			sawFmt = true

		case "comment", "obj_info":
			// Carried by other writers; nothing we need.

		case "element":
			if len(fields) != 3 {
				return nil, nil, &ErrCorruptHeader{Line: line, Reason: "malformed element declaration"}
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil || count < 0 {
				return nil, nil, &ErrCorruptHeader{Line: line, Reason: "bad element count " + fields[2]}
			}
			elems = append(elems, &element{name: fields[1], count: count})

		case "property":
			if len(elems) == 0 {
				return nil, nil, &ErrCorruptHeader{Line: line, Reason: "property before element"}
			}
			cur := elems[len(elems)-1]
			if len(fields) == 5 && fields[1] == "list" {
				countType, ok := parsePropertyType(fields[2])
				if !ok {
					return nil, nil, &ErrUnsupportedType{Name: fields[4], Type: fields[2]}
				}
				entryType, ok := parsePropertyType(fields[3])
				if !ok {
					return nil, nil, &ErrUnsupportedType{Name: fields[4], Type: fields[3]}
				}
				cur.props = append(cur.props, property{
					name: fields[4], typ: entryType, list: true, countType: countType,
				})
			} else if len(fields) == 3 {
				typ, ok := parsePropertyType(fields[1])
				if !ok {
					return nil, nil, &ErrUnsupportedType{Name: fields[2], Type: fields[1]}
				}
				cur.props = append(cur.props, property{name: fields[2], typ: typ})
			} else {
				return nil, nil, &ErrCorruptHeader{Line: line, Reason: "malformed property declaration"}
			}

		case "end_header":
			if !sawMagic || !sawFmt {
				return nil, nil, &ErrCorruptHeader{Line: line, Reason: "end_header before format"}
			}
			if err := assemble(&h, elems, line); err != nil {
				return nil, nil, err
			}
			return &h, rest, nil

		default:
			return nil, nil, &ErrCorruptHeader{Line: line, Reason: "unknown keyword " + fields[0]}
		}
	}
}

// assemble validates the declared elements against the subset this
// codec supports: a vertex element of scalars, optionally followed by
// a face element holding one uchar-counted int list named
// vertex_index.
func assemble(h *header, elems []*element, line int) error {
	if len(elems) == 0 || elems[0].name != vertexElement {
		return &ErrCorruptHeader{Line: line, Reason: "first element must be vertex"}
	}
	if len(elems) > 2 {
		return &ErrCorruptHeader{Line: line, Reason: "only vertex and face elements are supported"}
	}
	for _, p := range elems[0].props {
		if p.list {
			return &ErrCorruptHeader{Line: line, Reason: "list property in vertex element"}
		}
	}
	h.vertex = *elems[0]

	if len(elems) == 2 {
		face := elems[1]
		if face.name != faceElement {
			return &ErrCorruptHeader{Line: line, Reason: "unsupported element " + face.name}
		}
		if len(face.props) != 1 || !face.props[0].list || face.props[0].name != faceProperty {
			return &ErrCorruptHeader{Line: line, Reason: "face element must hold a single vertex_index list"}
		}
		if face.props[0].typ != PropInt32 {
			return &ErrUnsupportedType{Name: faceProperty, Type: face.props[0].typ.Token()}
		}
		if face.props[0].countType != PropUint8 {
			return &ErrUnsupportedType{Name: faceProperty, Type: face.props[0].countType.Token()}
		}
		h.face = face
	}
	return nil
}

// appendHeader serializes the header for the given vertex properties
// and face count. Property order is the caller's contract; this
// function writes exactly what it is handed.
func appendHeader(buf []byte, props []property, vertexCount, faceCount int) []byte {
	buf = append(buf, "ply\nformat binary_little_endian 1.0\n"...)
	buf = append(buf, "element vertex "...)
	buf = strconv.AppendInt(buf, int64(vertexCount), 10)
	buf = append(buf, '\n')
	for _, p := range props {
		buf = append(buf, "property "...)
		buf = append(buf, p.typ.Token()...)
		buf = append(buf, ' ')
		buf = append(buf, p.name...)
		buf = append(buf, '\n')
	}
	if faceCount > 0 {
		buf = append(buf, "element face "...)
		buf = strconv.AppendInt(buf, int64(faceCount), 10)
		buf = append(buf, '\n')
		buf = append(buf, "property list uchar int vertex_index\n"...)
	}
	buf = append(buf, "end_header\n"...)
	return buf
}
