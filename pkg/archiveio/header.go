package archiveio

import (
	"fmt"
	"io"

	"solidpack/internal/errs"
)

// Magic identifies a solidpack archive. HeaderSize bytes are reserved at
// the very start of every archive: the 4-byte magic, a version byte, and
// 3 reserved zero bytes — SPEC_FULL.md §1's resolution of spec.md §9's
// format-versioning open question, modeled on riannucci-sarchive's
// WriteMagic/ReadMagic.
const (
	Magic      = "SPCK"
	Version    = byte(1)
	HeaderSize = 8
)

// WriteHeader writes the 8-byte magic+version header.
func WriteHeader(w io.Writer) error {
	buf := [HeaderSize]byte{}
	copy(buf[:4], Magic)
	buf[4] = Version
	return writeAll(w, buf[:])
}

// ReadHeader reads and validates the 8-byte magic+version header,
// returning the archive's format version.
func ReadHeader(r io.Reader) (byte, error) {
	buf := [HeaderSize]byte{}
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	if string(buf[:4]) != Magic {
		return 0, fmt.Errorf("%w: bad magic %q", errs.ErrFormat, buf[:4])
	}
	version := buf[4]
	if version > Version {
		return 0, fmt.Errorf("%w: unsupported archive version %d", errs.ErrFormat, version)
	}
	return version, nil
}
