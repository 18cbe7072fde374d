package codec

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"solidpack/internal/errs"
)

// zstdCodec wraps github.com/klauspost/compress/zstd, grounded on
// bureau-foundation-bureau's lib/artifactstore/compress.go choice of
// zstd.SpeedDefault (level 3) as the default encoder level — a good
// ratio without excessive CPU cost.
type zstdCodec struct{}

func newZstdCodec() Codec { return zstdCodec{} }

func (zstdCodec) ID() ID { return ZSTD }

func (zstdCodec) Encode(r io.Reader, w io.Writer) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("%w: zstd encoder init: %v", errs.ErrCodec, err)
	}

	buf := make([]byte, DefaultBufferSize)
	if _, err := io.CopyBuffer(zw, r, buf); err != nil {
		zw.Close()
		return fmt.Errorf("%w: zstd encode: %v", errs.ErrCodec, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: zstd encode close: %v", errs.ErrCodec, err)
	}
	return nil
}

func (zstdCodec) Decode(r io.Reader, w io.Writer) (int64, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("%w: zstd decoder init: %v", errs.ErrCodec, err)
	}
	defer zr.Close()

	buf := make([]byte, DefaultBufferSize)
	n, err := io.CopyBuffer(w, zr, buf)
	if err != nil {
		return n, fmt.Errorf("%w: zstd decode: %v", errs.ErrCodec, err)
	}
	return n, nil
}
