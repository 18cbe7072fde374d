package codec

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"solidpack/internal/errs"
)

func TestRoundTripAllCodecs(t *testing.T) {
	payload := make([]byte, 64*1024)
	if _, err := rand.Read(payload); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	// Mix in a long repeated run so compressors have something to work
	// with, rather than pure incompressible noise.
	payload = append(payload, bytes.Repeat([]byte("abcabcabc"), 4096)...)

	for _, id := range []ID{ZLIB, BROTLI, ZSTD} {
		t.Run(id.String(), func(t *testing.T) {
			c, err := New(id)
			if err != nil {
				t.Fatalf("New(%s): %v", id, err)
			}
			if c.ID() != id {
				t.Fatalf("ID() = %s, want %s", c.ID(), id)
			}

			var encoded bytes.Buffer
			if err := c.Encode(bytes.NewReader(payload), &encoded); err != nil {
				t.Fatalf("Encode: %v", err)
			}

			decoder, err := New(id)
			if err != nil {
				t.Fatalf("New(%s) for decode: %v", id, err)
			}
			var decoded bytes.Buffer
			n, err := decoder.Decode(bytes.NewReader(encoded.Bytes()), &decoded)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if n != int64(decoded.Len()) {
				t.Fatalf("Decode returned count %d, buffer holds %d bytes", n, decoded.Len())
			}
			if !bytes.Equal(decoded.Bytes(), payload) {
				t.Fatalf("round trip mismatch for %s", id)
			}
		})
	}
}

func TestRoundTripEmptyInput(t *testing.T) {
	for _, id := range []ID{ZLIB, BROTLI, ZSTD} {
		t.Run(id.String(), func(t *testing.T) {
			c, _ := New(id)
			var encoded bytes.Buffer
			if err := c.Encode(bytes.NewReader(nil), &encoded); err != nil {
				t.Fatalf("Encode: %v", err)
			}

			decoder, _ := New(id)
			var decoded bytes.Buffer
			n, err := decoder.Decode(bytes.NewReader(encoded.Bytes()), &decoded)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if n != 0 || decoded.Len() != 0 {
				t.Fatalf("expected empty round trip, got %d bytes", n)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	cases := map[string]ID{"zlib": ZLIB, "brotli": BROTLI, "zstd": ZSTD}
	for name, want := range cases {
		got, err := ParseID(name)
		if err != nil {
			t.Fatalf("ParseID(%q): %v", name, err)
		}
		if got != want {
			t.Fatalf("ParseID(%q) = %v, want %v", name, got, want)
		}
	}

	if _, err := ParseID("lz4"); !errors.Is(err, errs.ErrUnsupportedCodec) {
		t.Fatalf("ParseID(\"lz4\") error = %v, want errs.ErrUnsupportedCodec", err)
	}
}

func TestNewUnsupportedCodec(t *testing.T) {
	_, err := New(ID(255))
	if !errors.Is(err, errs.ErrUnsupportedCodec) {
		t.Fatalf("New(255) error = %v, want errs.ErrUnsupportedCodec", err)
	}
}

func TestIDStringUnknown(t *testing.T) {
	if got := ID(99).String(); got != "unknown(99)" {
		t.Fatalf("String() = %q, want unknown(99)", got)
	}
}
