// Package errs defines the sentinel error kinds shared across solidpack's
// core packages. Call sites wrap one of these with fmt.Errorf's %w so that
// callers can classify a failure with errors.Is without parsing strings.
package errs

import "errors"

var (
	// ErrIO covers open/read/write/seek failures against the filesystem
	// or the archive stream, including short reads.
	ErrIO = errors.New("io error")

	// ErrFormat covers an archive header that doesn't match: bad magic
	// bytes or an unsupported format version. A truncated footer or an
	// unexpected end of the metadata section is a short read and is
	// reported as ErrIO.
	ErrFormat = errors.New("format error")

	// ErrCodec covers failures inside a codec's encode/decode engine.
	ErrCodec = errors.New("codec error")

	// ErrIntegrity covers a hash mismatch between a materialised
	// original and the digest recorded for it.
	ErrIntegrity = errors.New("integrity error")

	// ErrUnsupportedCodec covers a codec id that has no registered
	// implementation in this build.
	ErrUnsupportedCodec = errors.New("unsupported codec")

	// ErrShutdown is returned by Pool.Submit and Pool.ParallelFor once
	// the pool has been shut down.
	ErrShutdown = errors.New("shutdown")
)
