package archiveio

// FileRecord is one entry in the archive's metadata table, per
// spec.md §3.
//
// For an original, DataOffset is the byte offset at which its
// codec-encoded frame begins and Digest is its SHA-256 hex digest. For a
// duplicate, DataOffset equals the DataOffset of the original it aliases
// and Digest is empty — the canonical encoding from spec.md §3/§9.
type FileRecord struct {
	DataOffset   int64
	Digest       string
	RelativePath string
}

// IsDuplicate reports whether this record is classified as a duplicate:
// a record is a duplicate iff its digest is empty (spec.md §3 invariant
// 4).
func (r FileRecord) IsDuplicate() bool {
	return r.Digest == ""
}
