// Package hash computes SHA-256 content digests for files and buffers,
// in the format solidpack's archive metadata stores them: lower-case,
// 64-character hexadecimal.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"solidpack/internal/errs"
)

// chunkSize is the read buffer used while streaming a file through the
// digest, per spec.md §4.B.
const chunkSize = 8 * 1024

// HashFile streams the file at path through SHA-256 in chunkSize chunks
// and returns its lower-case hex digest. A missing file, an open
// failure, or a failure while reading the file are all reported as
// errs.ErrIO, distinguished by message text ("not found", "open
// failed", "hash failed").
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: not found: %s", errs.ErrIO, path)
		}
		return "", fmt.Errorf("%w: open failed: %s: %v", errs.ErrIO, path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("%w: hash failed: %s: %v", errs.ErrIO, path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashBytes returns the lower-case hex SHA-256 digest of data. The empty
// slice hashes to the canonical SHA-256 of the empty string.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
