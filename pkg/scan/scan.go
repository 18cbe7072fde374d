// Package scan enumerates the regular files under a directory tree,
// generalising agcp's filepath.Walk-based collectDirEntries to the
// fs.WalkDir-based successor and an explicit empty-file policy.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"solidpack/internal/errs"
)

// File is one regular file discovered under a scan root.
type File struct {
	// AbsPath is the file's full path on disk.
	AbsPath string
	// RelPath is AbsPath relative to the scan root, with path
	// separators normalised to forward slashes.
	RelPath string
	// Size is the file's size in bytes at scan time.
	Size int64
}

// Dir walks root and returns every regular file found, in the order
// fs.WalkDir visits them. When skipEmpty is true, zero-byte files are
// omitted from the result.
func Dir(root string, skipEmpty bool) ([]File, error) {
	var files []File

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: walk %s: %v", errs.ErrIO, path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("%w: stat %s: %v", errs.ErrIO, path, err)
		}
		if skipEmpty && info.Size() == 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("%w: relativize %s: %v", errs.ErrIO, path, err)
		}

		files = append(files, File{
			AbsPath: path,
			RelPath: filepath.ToSlash(rel),
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
