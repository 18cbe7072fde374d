package archiveio

import (
	"io"

	"solidpack/pkg/codec"
)

// Footer is the fixed-size trailer at the very end of an archive,
// read first on extraction. Field widths are pinned by spec.md §6:
// codecIdInt is uint32, the remaining three fields are uint64.
type Footer struct {
	CodecID    codec.ID
	NOriginal  uint64
	NDuplicate uint64
	MetaOffset uint64
}

// FooterSize is the fixed byte size of a serialised Footer: one uint32
// plus three uint64.
const FooterSize = 4 + 8 + 8 + 8

// WriteFooter serialises f to w in the fixed field order codecId,
// N_original, N_duplicate, metaOffset.
func WriteFooter(w io.Writer, f Footer) error {
	if err := WriteUint32(w, uint32(f.CodecID)); err != nil {
		return err
	}
	if err := WriteUint64(w, f.NOriginal); err != nil {
		return err
	}
	if err := WriteUint64(w, f.NDuplicate); err != nil {
		return err
	}
	return WriteUint64(w, f.MetaOffset)
}

// ReadFooter deserialises a Footer from r, which must be positioned at
// the start of the footer.
func ReadFooter(r io.Reader) (Footer, error) {
	var f Footer
	id, err := ReadUint32(r)
	if err != nil {
		return Footer{}, err
	}
	f.CodecID = codec.ID(id)

	if f.NOriginal, err = ReadUint64(r); err != nil {
		return Footer{}, err
	}
	if f.NDuplicate, err = ReadUint64(r); err != nil {
		return Footer{}, err
	}
	if f.MetaOffset, err = ReadUint64(r); err != nil {
		return Footer{}, err
	}
	return f, nil
}
