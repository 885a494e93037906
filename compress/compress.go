// Package compress centralizes byte-stream compression for stored
// PLY files.
//
// The engine treats compression as an external collaborator: it hands
// a Compressor whole byte slices and expects whole byte slices back,
// so an already-decompressed input and a compressed-then-decompressed
// one are indistinguishable downstream.
package compress

import "strings"

// Compressor compresses and decompresses byte sequences.
// Implementations must be safe for concurrent use.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
	Name() string
}

// ByName returns a built-in compressor by its stable name.
func ByName(name string) (Compressor, bool) {
	switch name {
	case "gzip":
		return Gzip{}, true
	case "zstd":
		return Zstd{}, true
	case "lz4":
		return LZ4{}, true
	case "none":
		return None{}, true
	default:
		return nil, false
	}
}

// ForPath picks a compressor from a file name extension:
// .gz, .zst/.zstd and .lz4 map to their codecs, anything else to None.
func ForPath(name string) Compressor {
	switch {
	case strings.HasSuffix(name, ".gz"):
		return Gzip{}
	case strings.HasSuffix(name, ".zst"), strings.HasSuffix(name, ".zstd"):
		return Zstd{}
	case strings.HasSuffix(name, ".lz4"):
		return LZ4{}
	default:
		return None{}
	}
}

// None is the identity compressor.
type None struct{}

// Compress implements Compressor.
func (None) Compress(data []byte) ([]byte, error) { return data, nil }

// Decompress implements Compressor.
func (None) Decompress(data []byte) ([]byte, error) { return data, nil }

// Name implements Compressor.
func (None) Name() string { return "none" }
