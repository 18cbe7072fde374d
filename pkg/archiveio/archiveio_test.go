package archiveio

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"solidpack/internal/errs"
	"solidpack/pkg/codec"
)

func TestUint64RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteUint64(&buf, 0xdeadbeefcafebabe); err != nil {
		t.Fatalf("WriteUint64: %v", err)
	}
	got, err := ReadUint64(&buf)
	if err != nil {
		t.Fatalf("ReadUint64: %v", err)
	}
	if got != 0xdeadbeefcafebabe {
		t.Fatalf("got %x, want %x", got, uint64(0xdeadbeefcafebabe))
	}
}

func TestStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteString(&buf, "hello/world.txt"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	got, err := ReadString(&buf)
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if got != "hello/world.txt" {
		t.Fatalf("got %q", got)
	}
}

func TestStringRoundTripEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteString(&buf, ""); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	got, err := ReadString(&buf)
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestReadUint64TruncatedIsIOError(t *testing.T) {
	buf := bytes.NewReader([]byte{1, 2, 3})
	if _, err := ReadUint64(buf); !errors.Is(err, errs.ErrIO) {
		t.Fatalf("error = %v, want errs.ErrIO", err)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHeader(&buf); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if buf.Len() != HeaderSize {
		t.Fatalf("header length = %d, want %d", buf.Len(), HeaderSize)
	}
	version, err := ReadHeader(&buf)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if version != Version {
		t.Fatalf("version = %d, want %d", version, Version)
	}
}

func TestReadHeaderBadMagic(t *testing.T) {
	buf := bytes.NewBuffer([]byte{'B', 'A', 'D', '!', 1, 0, 0, 0})
	if _, err := ReadHeader(buf); !errors.Is(err, errs.ErrFormat) {
		t.Fatalf("error = %v, want errs.ErrFormat", err)
	}
}

func TestReadHeaderFutureVersionRejected(t *testing.T) {
	buf := bytes.NewBuffer([]byte{'S', 'P', 'C', 'K', 255, 0, 0, 0})
	if _, err := ReadHeader(buf); !errors.Is(err, errs.ErrFormat) {
		t.Fatalf("error = %v, want errs.ErrFormat", err)
	}
}

func TestFooterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := Footer{CodecID: codec.ZSTD, NOriginal: 3, NDuplicate: 2, MetaOffset: 4096}
	if err := WriteFooter(&buf, want); err != nil {
		t.Fatalf("WriteFooter: %v", err)
	}
	if buf.Len() != FooterSize {
		t.Fatalf("footer length = %d, want %d", buf.Len(), FooterSize)
	}
	got, err := ReadFooter(&buf)
	if err != nil {
		t.Fatalf("ReadFooter: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

// seekBuffer is an in-memory byte slice with a read/write position that
// implements io.Seeker, so WriteMetadata
// and ReadMetadata can be exercised against a plain in-memory backing
// store, mirroring how pipeline code seeks an *os.File.
type seekBuffer struct {
	data []byte
	pos  int64
}

func (s *seekBuffer) Write(p []byte) (int, error) {
	if s.pos < int64(len(s.data)) {
		s.data = s.data[:s.pos]
	}
	s.data = append(s.data, p...)
	s.pos = int64(len(s.data))
	return len(p), nil
}

func (s *seekBuffer) Read(p []byte) (int, error) {
	if s.pos >= int64(len(s.data)) {
		return 0, errUnexpectedEOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += int64(n)
	return n, nil
}

func (s *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = s.pos
	case io.SeekEnd:
		base = int64(len(s.data))
	}
	s.pos = base + offset
	return s.pos, nil
}

type ioEOFError struct{}

func (ioEOFError) Error() string { return "unexpected EOF" }

var errUnexpectedEOF = ioEOFError{}

func TestMetadataRoundTrip(t *testing.T) {
	records := []FileRecord{
		{DataOffset: 0, Digest: "aaa111", RelativePath: "file1.txt"},
		{DataOffset: 128, Digest: "bbb222", RelativePath: "file3.txt"},
		{DataOffset: 0, Digest: "", RelativePath: "file2.txt"},
	}

	buf := &seekBuffer{}
	if err := WriteMetadata(buf, records, codec.ZLIB); err != nil {
		t.Fatalf("WriteMetadata: %v", err)
	}

	got, gotCodec, err := ReadMetadata(buf)
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}
	if gotCodec != codec.ZLIB {
		t.Fatalf("codec = %v, want %v", gotCodec, codec.ZLIB)
	}
	if len(got) != len(records) {
		t.Fatalf("record count = %d, want %d", len(got), len(records))
	}

	byPath := map[string]FileRecord{}
	for _, rec := range got {
		byPath[rec.RelativePath] = rec
	}

	if rec := byPath["file1.txt"]; rec.Digest != "aaa111" || rec.IsDuplicate() {
		t.Fatalf("file1.txt record = %+v", rec)
	}
	if rec := byPath["file3.txt"]; rec.Digest != "bbb222" || rec.DataOffset != 128 {
		t.Fatalf("file3.txt record = %+v", rec)
	}
	if rec := byPath["file2.txt"]; !rec.IsDuplicate() || rec.Digest != "" {
		t.Fatalf("file2.txt record = %+v, want duplicate with empty digest", rec)
	}
}

func TestMetadataRoundTripEmpty(t *testing.T) {
	buf := &seekBuffer{}
	if err := WriteMetadata(buf, nil, codec.BROTLI); err != nil {
		t.Fatalf("WriteMetadata: %v", err)
	}
	got, gotCodec, err := ReadMetadata(buf)
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d records, want 0", len(got))
	}
	if gotCodec != codec.BROTLI {
		t.Fatalf("codec = %v, want %v", gotCodec, codec.BROTLI)
	}
}
