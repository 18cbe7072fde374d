// Package dedup partitions a set of scanned files into originals and
// duplicates by content digest, fanning the hashing step out across a
// worker pool the way agcp's decompressFiles fans out its semaphore-
// bounded goroutines.
package dedup

import (
	"sync"

	"solidpack/pkg/hash"
	"solidpack/pkg/scan"
	"solidpack/pkg/workerpool"
)

// Class is the verdict assigned to one scanned file.
type Class struct {
	File   scan.File
	Digest string
	// OriginalRelPath is the RelPath of the file that owns the stored
	// payload for this content. It equals File.RelPath when this
	// Class is itself the original.
	OriginalRelPath string
}

// IsOriginal reports whether this file is the first-seen owner of its
// content.
func (c Class) IsOriginal() bool {
	return c.OriginalRelPath == c.File.RelPath
}

// Classify hashes every file in parallel on pool, then partitions them
// by first-seen digest: walking files in their given order, the first
// file to produce a given digest is the original and every subsequent
// file sharing that digest is a duplicate of it.
func Classify(pool *workerpool.Pool, files []scan.File) ([]Class, error) {
	digests := make([]string, len(files))
	hashErrs := make([]error, len(files))

	err := pool.ParallelFor(len(files), func(i int) {
		d, err := hash.HashFile(files[i].AbsPath)
		if err != nil {
			hashErrs[i] = err
			return
		}
		digests[i] = d
	})
	if err != nil {
		return nil, err
	}
	for _, e := range hashErrs {
		if e != nil {
			return nil, e
		}
	}

	var mu sync.Mutex
	digestToFirstPath := make(map[string]string, len(files))

	classes := make([]Class, len(files))
	for i, f := range files {
		digest := digests[i]

		mu.Lock()
		owner, seen := digestToFirstPath[digest]
		if !seen {
			digestToFirstPath[digest] = f.RelPath
			owner = f.RelPath
		}
		mu.Unlock()

		classes[i] = Class{File: f, Digest: digest, OriginalRelPath: owner}
	}

	return classes, nil
}
