package archiveio

import (
	"fmt"
	"io"

	"solidpack/internal/errs"
	"solidpack/pkg/codec"
)

// WriteMetadata writes the metadata section at the writer's current
// position: records are partitioned into originals and duplicates
// (spec.md §3 invariant 4), originals are written as full records
// (dataOffset, digest, relativePath) followed by duplicates as short
// records (dataOffset, relativePath only), and the section is closed
// with a Footer pointing back at where it started.
//
// w must also implement io.Seeker so the metadata offset can be
// recovered without the caller tracking byte counts by hand.
func WriteMetadata(w io.Writer, records []FileRecord, codecID codec.ID) error {
	seeker, ok := w.(io.Seeker)
	if !ok {
		return fmt.Errorf("%w: writer does not support Seek", errs.ErrIO)
	}
	metaOffset, err := seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	var originals, duplicates []FileRecord
	for _, rec := range records {
		if rec.IsDuplicate() {
			duplicates = append(duplicates, rec)
		} else {
			originals = append(originals, rec)
		}
	}

	for _, rec := range originals {
		if err := writeFullRecord(w, rec); err != nil {
			return err
		}
	}
	for _, rec := range duplicates {
		if err := writeShortRecord(w, rec); err != nil {
			return err
		}
	}

	return WriteFooter(w, Footer{
		CodecID:    codecID,
		NOriginal:  uint64(len(originals)),
		NDuplicate: uint64(len(duplicates)),
		MetaOffset: uint64(metaOffset),
	})
}

// ReadMetadata reads the footer from the end of r, seeks to the start
// of the metadata section it describes, and reconstructs the full
// record list: N_original full records followed by N_duplicate short
// records, each duplicate record reconstructed with an empty digest.
func ReadMetadata(r io.ReadSeeker) ([]FileRecord, codec.ID, error) {
	if _, err := r.Seek(-int64(FooterSize), io.SeekEnd); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}
	footer, err := ReadFooter(r)
	if err != nil {
		return nil, 0, err
	}

	if _, err := r.Seek(int64(footer.MetaOffset), io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	records := make([]FileRecord, 0, footer.NOriginal+footer.NDuplicate)
	for i := uint64(0); i < footer.NOriginal; i++ {
		rec, err := readFullRecord(r)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	for i := uint64(0); i < footer.NDuplicate; i++ {
		rec, err := readShortRecord(r)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}

	return records, footer.CodecID, nil
}

func writeFullRecord(w io.Writer, rec FileRecord) error {
	if err := WriteInt64(w, rec.DataOffset); err != nil {
		return err
	}
	if err := WriteString(w, rec.Digest); err != nil {
		return err
	}
	return WriteString(w, rec.RelativePath)
}

func readFullRecord(r io.Reader) (FileRecord, error) {
	offset, err := ReadInt64(r)
	if err != nil {
		return FileRecord{}, err
	}
	digest, err := ReadString(r)
	if err != nil {
		return FileRecord{}, err
	}
	path, err := ReadString(r)
	if err != nil {
		return FileRecord{}, err
	}
	return FileRecord{DataOffset: offset, Digest: digest, RelativePath: path}, nil
}

func writeShortRecord(w io.Writer, rec FileRecord) error {
	if err := WriteInt64(w, rec.DataOffset); err != nil {
		return err
	}
	return WriteString(w, rec.RelativePath)
}

func readShortRecord(r io.Reader) (FileRecord, error) {
	offset, err := ReadInt64(r)
	if err != nil {
		return FileRecord{}, err
	}
	path, err := ReadString(r)
	if err != nil {
		return FileRecord{}, err
	}
	return FileRecord{DataOffset: offset, Digest: "", RelativePath: path}, nil
}
