// Package pipeline orchestrates the scan → hash → classify → compress
// → write-metadata flow and its reverse, generalising agcp's
// Compress/Decompress entry points in tests/core/compress.go and
// decompress.go to the content-addressed, codec-pluggable format.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"solidpack/internal/errs"
	"solidpack/pkg/archiveio"
	"solidpack/pkg/codec"
	"solidpack/pkg/dedup"
	"solidpack/pkg/progress"
	"solidpack/pkg/scan"
	"solidpack/pkg/workerpool"
)

// Logger receives the per-file progress lines the pipeline emits.
// Implementations must be safe to call from multiple goroutines; the
// pipeline itself serialises calls under its own logMutex so a simple
// fmt.Println-backed Logger is sufficient.
type Logger interface {
	Printf(format string, args ...any)
}

// stdoutLogger is the default Logger, printing directly to stdout in
// the line shapes spec.md §6 contracts.
type stdoutLogger struct{}

func (stdoutLogger) Printf(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// CompressStats summarises one compress run.
type CompressStats struct {
	Originals  int
	Duplicates int
}

// CompressOptions configures a Compress call. A zero value is usable:
// a nil Pool makes Compress create a default pool for the call and shut
// it down on return, a nil Logger prints to stdout, and Quiet is false.
type CompressOptions struct {
	Pool   *workerpool.Pool
	Logger Logger
	Quiet  bool
}

// Compress packs rootDir into a new archive at outputPath, deduplicating
// identical file contents and compressing each unique blob with the
// codec identified by codecID.
func Compress(rootDir, outputPath string, codecID codec.ID, opts CompressOptions) (CompressStats, error) {
	pool := opts.Pool
	if pool == nil {
		pool = workerpool.NewDefault()
		defer pool.Shutdown()
	}
	logger := opts.Logger
	if logger == nil {
		logger = stdoutLogger{}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return CompressStats{}, fmt.Errorf("%w: archive creation: %v", errs.ErrIO, err)
	}
	archive, err := os.Create(outputPath)
	if err != nil {
		return CompressStats{}, fmt.Errorf("%w: archive creation: %v", errs.ErrIO, err)
	}
	defer archive.Close()

	files, err := scan.Dir(rootDir, true)
	if err != nil {
		return CompressStats{}, err
	}

	classes, err := dedup.Classify(pool, files)
	if err != nil {
		return CompressStats{}, err
	}

	c, err := codec.New(codecID)
	if err != nil {
		return CompressStats{}, err
	}

	if err := archiveio.WriteHeader(archive); err != nil {
		return CompressStats{}, err
	}

	var totalSize uint64
	for _, cl := range classes {
		totalSize += uint64(cl.File.Size)
	}
	tracker := progress.New(totalSize, opts.Quiet)
	defer tracker.Stop()

	var originals, duplicates []dedup.Class
	for _, cl := range classes {
		if cl.IsOriginal() {
			originals = append(originals, cl)
		} else {
			duplicates = append(duplicates, cl)
		}
	}

	var (
		writerMutex      sync.Mutex
		digestIndexMutex sync.Mutex
		metadataMutex    sync.Mutex
		logMutex         sync.Mutex
	)
	digestToOffset := make(map[string]int64, len(originals))
	var records []archiveio.FileRecord

	// Per-file failures during the parallel phases are caught, logged,
	// and suppressed: one bad file must not fail the whole archive.
	// Only orchestrator-level setup above (archive creation, scan,
	// classify, codec lookup, header write) and the metadata write
	// below are fatal.
	if err := pool.ParallelFor(len(originals), func(i int) {
		cl := originals[i]

		writerMutex.Lock()
		dataOffset, serr := archive.Seek(0, io.SeekCurrent)
		var encodeErr error
		var compressedSize int64
		if serr != nil {
			encodeErr = fmt.Errorf("%w: %v", errs.ErrIO, serr)
		} else {
			encodeErr = encodeFile(c, cl.File.AbsPath, archive, tracker)
			if encodeErr == nil {
				endOffset, serr2 := archive.Seek(0, io.SeekCurrent)
				if serr2 != nil {
					encodeErr = fmt.Errorf("%w: %v", errs.ErrIO, serr2)
				} else {
					compressedSize = endOffset - dataOffset
				}
			}
		}
		writerMutex.Unlock()
		if encodeErr != nil {
			logMutex.Lock()
			logger.Printf("Error: compress %s: %v", cl.File.RelPath, encodeErr)
			logMutex.Unlock()
			return
		}

		digestIndexMutex.Lock()
		digestToOffset[cl.Digest] = dataOffset
		digestIndexMutex.Unlock()

		rec := archiveio.FileRecord{DataOffset: dataOffset, Digest: cl.Digest, RelativePath: cl.File.RelPath}
		metadataMutex.Lock()
		records = append(records, rec)
		metadataMutex.Unlock()

		logMutex.Lock()
		logger.Printf("Compressed file: %s (%d -> %d bytes)", cl.File.RelPath, cl.File.Size, compressedSize)
		logMutex.Unlock()
	}); err != nil {
		return CompressStats{}, err
	}

	if err := pool.ParallelFor(len(duplicates), func(i int) {
		cl := duplicates[i]

		digestIndexMutex.Lock()
		dataOffset, ok := digestToOffset[cl.Digest]
		digestIndexMutex.Unlock()
		if !ok {
			logMutex.Lock()
			logger.Printf("Error: no original recorded for digest of %s", cl.File.RelPath)
			logMutex.Unlock()
			return
		}

		rec := archiveio.FileRecord{DataOffset: dataOffset, Digest: "", RelativePath: cl.File.RelPath}
		metadataMutex.Lock()
		records = append(records, rec)
		metadataMutex.Unlock()

		logMutex.Lock()
		logger.Printf("Duplicate file: %s", cl.File.RelPath)
		logMutex.Unlock()
	}); err != nil {
		return CompressStats{}, err
	}

	if err := archiveio.WriteMetadata(archive, records, codecID); err != nil {
		return CompressStats{}, err
	}

	nOriginal, nDuplicate := 0, 0
	for _, rec := range records {
		if rec.IsDuplicate() {
			nDuplicate++
		} else {
			nOriginal++
		}
	}
	logger.Printf("Archive created successfully: %s", outputPath)

	return CompressStats{Originals: nOriginal, Duplicates: nDuplicate}, nil
}

func encodeFile(c codec.Codec, path string, w *os.File, tracker *progress.Tracker) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open failed: %v", errs.ErrIO, err)
	}
	defer f.Close()

	return c.Encode(f, tracker.Writer(w))
}
