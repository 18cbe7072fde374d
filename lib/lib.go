// Package lib re-exports solidpack's pipeline entry points for callers
// that want the compress/decompress operations without reaching into
// pkg/pipeline directly, in agcp's lib/lib.go facade style.
package lib

import (
	"solidpack/pkg/codec"
	"solidpack/pkg/pipeline"
)

// Re-exported codec identities.
const (
	ZLIB   = codec.ZLIB
	BROTLI = codec.BROTLI
	ZSTD   = codec.ZSTD
)

// CodecID re-exported from codec.
type CodecID = codec.ID

// CompressOptions re-exported from pipeline.
type CompressOptions = pipeline.CompressOptions

// DecompressOptions re-exported from pipeline.
type DecompressOptions = pipeline.DecompressOptions

// CompressStats re-exported from pipeline.
type CompressStats = pipeline.CompressStats

// DecompressStats re-exported from pipeline.
type DecompressStats = pipeline.DecompressStats

// Compress is a thin wrapper around pipeline.Compress.
func Compress(rootDir, outputPath string, codecID CodecID, opts CompressOptions) (CompressStats, error) {
	return pipeline.Compress(rootDir, outputPath, codecID, opts)
}

// Decompress is a thin wrapper around pipeline.Decompress.
func Decompress(archivePath, outputDir string, opts DecompressOptions) (DecompressStats, error) {
	return pipeline.Decompress(archivePath, outputDir, opts)
}
