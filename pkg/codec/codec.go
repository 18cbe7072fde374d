// Package codec implements the streaming-codec capability from spec.md
// §4.C: a small, stable set of compression identities dispatched by a
// numeric id persisted in the archive footer. Concrete codecs are opaque
// from the orchestrator's point of view — it only ever calls Encode and
// Decode through the Codec interface returned by New.
package codec

import (
	"fmt"
	"io"

	"solidpack/internal/errs"
)

// ID is a codec identity, persisted verbatim in the archive footer. The
// numeric values are part of the archive wire format and must never be
// renumbered once an archive using them could exist.
type ID uint32

const (
	ZLIB   ID = 1
	BROTLI ID = 2
	ZSTD   ID = 3
)

// String returns the codec's canonical name, as accepted on the CLI.
func (id ID) String() string {
	switch id {
	case ZLIB:
		return "zlib"
	case BROTLI:
		return "brotli"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(id))
	}
}

// ParseID parses a codec name as accepted on the CLI (--compression=...).
func ParseID(name string) (ID, error) {
	switch name {
	case "zlib":
		return ZLIB, nil
	case "brotli":
		return BROTLI, nil
	case "zstd":
		return ZSTD, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedCodec, name)
	}
}

// DefaultBufferSize is the internal copy-buffer size codecs use while
// streaming, per spec.md §4.C (32-128 KiB is acceptable; 64 KiB chosen).
const DefaultBufferSize = 64 * 1024

// Codec streams data between an encoded (compressed) form and a decoded
// (raw) form. Encode reads r to end-of-file and emits a single
// self-contained frame to w, flushing/finalising on end of input. Decode
// reads exactly one frame from r, writes the decoded bytes to w, and
// returns the number of decoded bytes written. r may contain bytes past
// the frame. Decode does not limit its reads to the frame: the decoders
// buffer their input, so the position of r after Decode is not defined.
type Codec interface {
	ID() ID
	Encode(r io.Reader, w io.Writer) error
	Decode(r io.Reader, w io.Writer) (int64, error)
}

// Factory constructs a fresh Codec instance. The built-in codecs hold no
// state between calls (each Encode or Decode builds its own stream), so
// one instance can serve every original of a run.
type Factory func() Codec

var registry = map[ID]Factory{
	ZLIB:   newZlibCodec,
	BROTLI: newBrotliCodec,
	ZSTD:   newZstdCodec,
}

// New constructs a Codec for id. It returns errs.ErrUnsupportedCodec if
// id has no implementation registered in this build — the situation a
// feature-gated build would also hit for a codec compiled out.
func New(id ID) (Codec, error) {
	factory, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: codec id %d", errs.ErrUnsupportedCodec, uint32(id))
	}
	return factory(), nil
}
