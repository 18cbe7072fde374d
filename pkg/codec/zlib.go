package codec

import (
	"compress/zlib"
	"fmt"
	"io"

	"solidpack/internal/errs"
)

// zlibCodec wraps stdlib compress/zlib, the DEFLATE-based codec every
// build ships since it has no external dependency. Mirrors
// riannucci-sarchive's CompressionScheme dispatch, generalized from
// compress/flate to the zlib container format (zlib adds its own
// 2-byte header and Adler-32 trailer around the deflate stream, which
// lets the reader detect truncation the bare flate format cannot).
type zlibCodec struct{}

func newZlibCodec() Codec { return zlibCodec{} }

func (zlibCodec) ID() ID { return ZLIB }

func (zlibCodec) Encode(r io.Reader, w io.Writer) error {
	zw := zlib.NewWriter(w)
	buf := make([]byte, DefaultBufferSize)
	if _, err := io.CopyBuffer(zw, r, buf); err != nil {
		zw.Close()
		return fmt.Errorf("%w: zlib encode: %v", errs.ErrCodec, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: zlib encode close: %v", errs.ErrCodec, err)
	}
	return nil
}

func (zlibCodec) Decode(r io.Reader, w io.Writer) (int64, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("%w: zlib decode: %v", errs.ErrCodec, err)
	}
	defer zr.Close()

	buf := make([]byte, DefaultBufferSize)
	n, err := io.CopyBuffer(w, zr, buf)
	if err != nil {
		return n, fmt.Errorf("%w: zlib decode: %v", errs.ErrCodec, err)
	}
	return n, nil
}
