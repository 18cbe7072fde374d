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
	"solidpack/pkg/hash"
	"solidpack/pkg/progress"
	"solidpack/pkg/workerpool"
)

// DecompressStats summarises one decompress run.
type DecompressStats struct {
	Originals  int
	Duplicates int
}

// DecompressOptions configures a Decompress call. A zero value is
// usable: a nil Pool makes Decompress create a default pool for the call
// and shut it down on return, and a nil Logger prints to stdout.
type DecompressOptions struct {
	Pool   *workerpool.Pool
	Logger Logger
	Quiet  bool
}

// Decompress reads the archive at archivePath and reconstructs its
// tree under outputDir, verifying every materialised original against
// its recorded digest.
func Decompress(archivePath, outputDir string, opts DecompressOptions) (DecompressStats, error) {
	pool := opts.Pool
	if pool == nil {
		pool = workerpool.NewDefault()
		defer pool.Shutdown()
	}
	logger := opts.Logger
	if logger == nil {
		logger = stdoutLogger{}
	}

	archive, err := os.Open(archivePath)
	if err != nil {
		return DecompressStats{}, fmt.Errorf("%w: archive reading: %v", errs.ErrIO, err)
	}
	defer archive.Close()

	if _, err := archiveio.ReadHeader(archive); err != nil {
		return DecompressStats{}, err
	}

	records, codecID, err := archiveio.ReadMetadata(archive)
	if err != nil {
		return DecompressStats{}, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return DecompressStats{}, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	// The codec is resolved once, here, rather than per file inside the
	// fan-out below: an archive naming an unsupported codec is a fatal,
	// orchestrator-level error, not a per-file one.
	c, err := codec.New(codecID)
	if err != nil {
		return DecompressStats{}, err
	}

	var originals, duplicates []archiveio.FileRecord
	for _, rec := range records {
		if rec.IsDuplicate() {
			duplicates = append(duplicates, rec)
		} else {
			originals = append(originals, rec)
		}
	}

	tracker := progress.New(0, opts.Quiet)
	defer tracker.Stop()

	var (
		writerMutex sync.Mutex
		logMutex    sync.Mutex
	)
	offsetToPath := make(map[int64]string, len(originals))
	var offsetMapMutex sync.Mutex
	var nOriginalsExtracted, nDuplicatesExtracted int

	if err := pool.ParallelFor(len(originals), func(i int) {
		rec := originals[i]
		outPath := filepath.Join(outputDir, filepath.FromSlash(rec.RelativePath))

		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			logMutex.Lock()
			logger.Printf("Error: create dir for %s: %v", rec.RelativePath, err)
			logMutex.Unlock()
			return
		}

		writerMutex.Lock()
		decodeErr := decodeOriginal(archive, rec.DataOffset, c, outPath, tracker)
		writerMutex.Unlock()
		if decodeErr != nil {
			logMutex.Lock()
			logger.Printf("Error: decode %s: %v", rec.RelativePath, decodeErr)
			logMutex.Unlock()
			return
		}

		digest, err := hash.HashFile(outPath)
		if err != nil {
			logMutex.Lock()
			logger.Printf("Error: rehash %s: %v", rec.RelativePath, err)
			logMutex.Unlock()
			return
		}
		if digest != rec.Digest {
			os.Remove(outPath)
			logMutex.Lock()
			logger.Printf("Error: %s: hash mismatch for %s", errs.ErrIntegrity, rec.RelativePath)
			logMutex.Unlock()
			return
		}

		offsetMapMutex.Lock()
		offsetToPath[rec.DataOffset] = outPath
		offsetMapMutex.Unlock()

		logMutex.Lock()
		nOriginalsExtracted++
		logger.Printf("Extracted: %s", rec.RelativePath)
		logMutex.Unlock()
	}); err != nil {
		return DecompressStats{}, err
	}

	if err := pool.ParallelFor(len(duplicates), func(i int) {
		rec := duplicates[i]
		outPath := filepath.Join(outputDir, filepath.FromSlash(rec.RelativePath))

		offsetMapMutex.Lock()
		srcPath, ok := offsetToPath[rec.DataOffset]
		offsetMapMutex.Unlock()
		if !ok {
			logMutex.Lock()
			logger.Printf("Error: missing source for duplicate %s", rec.RelativePath)
			logMutex.Unlock()
			return
		}

		if err := copyFile(srcPath, outPath); err != nil {
			logMutex.Lock()
			logger.Printf("Error: copy duplicate %s: %v", rec.RelativePath, err)
			logMutex.Unlock()
			return
		}

		logMutex.Lock()
		nDuplicatesExtracted++
		logger.Printf("Extracted duplicate: %s", rec.RelativePath)
		logMutex.Unlock()
	}); err != nil {
		return DecompressStats{}, err
	}

	logger.Printf("Total files in archive: %d", len(records))
	logger.Printf("Unique files: %d, Duplicate files: %d", nOriginalsExtracted, nDuplicatesExtracted)

	return DecompressStats{Originals: nOriginalsExtracted, Duplicates: nDuplicatesExtracted}, nil
}

func decodeOriginal(archive *os.File, dataOffset int64, c codec.Codec, outPath string, tracker *progress.Tracker) error {
	if _, err := archive.Seek(dataOffset, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	defer out.Close()

	_, err = c.Decode(archive, tracker.Writer(out))
	return err
}

func copyFile(srcPath, dstPath string) error {
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	return nil
}
