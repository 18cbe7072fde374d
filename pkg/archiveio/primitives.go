// Package archiveio implements the bit-exact, little-endian archive
// serialisation from spec.md §4.D: fixed-width integers, length-prefixed
// strings, FileRecord metadata, and the fixed-size footer. It is the Go
// generalisation of agcp's hand-rolled binary.Write/binary.Read archive
// header code, switched from agcp's big-endian convention to the
// little-endian layout spec.md §4.D requires.
package archiveio

import (
	"encoding/binary"
	"fmt"
	"io"

	"solidpack/internal/errs"
)

// WriteUint64 writes a fixed-width unsigned integer in little-endian order.
func WriteUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return writeAll(w, buf[:])
}

func WriteInt64(w io.Writer, v int64) error {
	return WriteUint64(w, uint64(v))
}

func WriteUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return writeAll(w, buf[:])
}

func ReadUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func ReadInt64(r io.Reader) (int64, error) {
	v, err := ReadUint64(r)
	return int64(v), err
}

func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteString writes a uint64 length prefix followed by the utf-8 bytes
// of s.
func WriteString(w io.Writer, s string) error {
	if err := WriteUint64(w, uint64(len(s))); err != nil {
		return err
	}
	return writeAll(w, []byte(s))
}

// ReadString reads a length-prefixed utf-8 string written by WriteString.
func ReadString(r io.Reader) (string, error) {
	length, err := ReadUint64(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, length)
	if err := readFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeAll(w io.Writer, p []byte) error {
	if _, err := w.Write(p); err != nil {
		return fmt.Errorf("%w: stream error: %v", errs.ErrIO, err)
	}
	return nil
}

func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: incomplete read", errs.ErrIO)
		}
		return fmt.Errorf("%w: stream error: %v", errs.ErrIO, err)
	}
	return nil
}
