// Package sauce reads and writes SAUCE records, the 128-byte metadata
// trailer that ANSI art editors and viewers use to learn an artwork's
// dimensions, font and rendering flags.
package sauce

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
)

const (
	// Size is the length of a SAUCE record.
	Size = 128
	// EOF is the DOS end-of-file marker written before the record.
	EOF = 0x1A

	id      = "SAUCE"
	version = "00"

	// DataTypeCharacter is the data type of text based artwork.
	DataTypeCharacter = 1
	// FileTypeANSi is the character file type of ANSI escape art.
	FileTypeANSi = 1

	// FontNameSize is the length of the TInfoS font name field.
	FontNameSize = 22
	// MaxDimension is the largest column or row count a record can hold.
	MaxDimension = math.MaxUint16
)

// Flags are the TFlags bits of a character record.
type Flags uint8

const (
	// FlagICEColors marks blink as selecting a bright background.
	FlagICEColors Flags = 1 << 0
	// FlagLetterSpacing8 requests 8 pixel wide characters.
	FlagLetterSpacing8 Flags = 1 << 1
	// FlagLetterSpacing9 requests 9 pixel wide characters.
	FlagLetterSpacing9 Flags = 2 << 1
	// FlagAspectLegacy requests stretching for a legacy 4:3 display.
	FlagAspectLegacy Flags = 1 << 3
	// FlagAspectSquare requests square pixels.
	FlagAspectSquare Flags = 2 << 3
)

var (
	// ErrNoRecord indicates data that does not end in a SAUCE record.
	ErrNoRecord = errors.New("no SAUCE record")
	// ErrFieldTooLong indicates a string that does not fit its field.
	ErrFieldTooLong = errors.New("SAUCE field too long")
	// ErrFieldRange indicates a number that does not fit its field.
	ErrFieldRange = errors.New("SAUCE field out of range")
)

// Record holds the fields of a SAUCE record. Strings are stored in code
// page 437 and padded with spaces; TInfoS is padded with zeros.
type Record struct {
	Title    string
	Author   string
	Group    string
	Date     time.Time
	FileSize uint32
	DataType uint8
	FileType uint8
	TInfo1   uint16
	TInfo2   uint16
	TInfo3   uint16
	TInfo4   uint16
	Comments uint8
	Flags    Flags
	TInfoS   string
}

// NewANSi returns a record describing an ANSI file of size bytes holding
// columns x rows characters drawn in the named font. The font name is
// shortened to fit its field with [FontName].
func NewANSi(size, columns, rows int, font string, flags Flags) (Record, error) {
	if size < 0 || uint64(size) > math.MaxUint32 {
		return Record{}, fmt.Errorf("%w: file size %d", ErrFieldRange, size)
	}
	if columns < 0 || columns > MaxDimension {
		return Record{}, fmt.Errorf("%w: %d columns exceeds %d", ErrFieldRange, columns, MaxDimension)
	}
	if rows < 0 || rows > MaxDimension {
		return Record{}, fmt.Errorf("%w: %d rows exceeds %d", ErrFieldRange, rows, MaxDimension)
	}

	return Record{
		Date:     time.Now(),
		FileSize: uint32(size),
		DataType: DataTypeCharacter,
		FileType: FileTypeANSi,
		TInfo1:   uint16(columns),
		TInfo2:   uint16(rows),
		Flags:    flags,
		TInfoS:   FontName(font),
	}, nil
}

// FontName returns name cut to the first FontNameSize characters, with
// characters outside code page 437 replaced by '?'.
func FontName(name string) string {
	var b strings.Builder
	n := 0
	for _, r := range name {
		if n == FontNameSize {
			break
		}
		if _, ok := charmap.CodePage437.EncodeRune(r); !ok {
			r = '?'
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// Columns returns the character width of an ANSi record.
func (r Record) Columns() int { return int(r.TInfo1) }

// Rows returns the character height of an ANSi record.
func (r Record) Rows() int { return int(r.TInfo2) }

// MarshalBinary encodes r as a 128-byte record.
func (r Record) MarshalBinary() ([]byte, error) {
	b := make([]byte, Size)
	copy(b[0:5], id)
	copy(b[5:7], version)

	fields := []struct {
		name string
		val  string
		dst  []byte
		pad  byte
	}{
		{"title", r.Title, b[7:42], ' '},
		{"author", r.Author, b[42:62], ' '},
		{"group", r.Group, b[62:82], ' '},
		{"font", r.TInfoS, b[106:128], 0},
	}
	for _, f := range fields {
		if err := putString(f.dst, f.val, f.pad); err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	date := "        "
	if !r.Date.IsZero() {
		date = r.Date.Format("20060102")
	}
	copy(b[82:90], date)

	binary.LittleEndian.PutUint32(b[90:94], r.FileSize)
	b[94] = r.DataType
	b[95] = r.FileType
	binary.LittleEndian.PutUint16(b[96:98], r.TInfo1)
	binary.LittleEndian.PutUint16(b[98:100], r.TInfo2)
	binary.LittleEndian.PutUint16(b[100:102], r.TInfo3)
	binary.LittleEndian.PutUint16(b[102:104], r.TInfo4)
	b[104] = r.Comments
	b[105] = uint8(r.Flags)
	return b, nil
}

// UnmarshalBinary decodes a 128-byte record.
func (r *Record) UnmarshalBinary(b []byte) error {
	if len(b) != Size || string(b[0:5]) != id {
		return ErrNoRecord
	}

	dec := charmap.CodePage437.NewDecoder()
	str := func(field []byte) (string, error) {
		s, err := dec.Bytes(bytes.TrimRight(field, " \x00"))
		return string(s), err
	}

	var err error
	if r.Title, err = str(b[7:42]); err != nil {
		return err
	}
	if r.Author, err = str(b[42:62]); err != nil {
		return err
	}
	if r.Group, err = str(b[62:82]); err != nil {
		return err
	}
	if r.TInfoS, err = str(b[106:128]); err != nil {
		return err
	}

	r.Date = time.Time{}
	if d := strings.TrimSpace(string(b[82:90])); d != "" {
		if r.Date, err = time.Parse("20060102", d); err != nil {
			return fmt.Errorf("date: %w", err)
		}
	}

	r.FileSize = binary.LittleEndian.Uint32(b[90:94])
	r.DataType = b[94]
	r.FileType = b[95]
	r.TInfo1 = binary.LittleEndian.Uint16(b[96:98])
	r.TInfo2 = binary.LittleEndian.Uint16(b[98:100])
	r.TInfo3 = binary.LittleEndian.Uint16(b[100:102])
	r.TInfo4 = binary.LittleEndian.Uint16(b[102:104])
	r.Comments = b[104]
	r.Flags = Flags(b[105])
	return nil
}

// Write writes the EOF marker followed by r to w.
func Write(w io.Writer, r Record) error {
	b, err := r.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte{EOF}); err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Split separates data into its content and trailing record. Content ends
// at the EOF marker preceding the record, or at the record itself when the
// marker is missing. Data without a record yields ErrNoRecord.
func Split(data []byte) ([]byte, Record, error) {
	var r Record
	if len(data) < Size {
		return data, r, ErrNoRecord
	}
	start := len(data) - Size
	if err := r.UnmarshalBinary(data[start:]); err != nil {
		return data, Record{}, err
	}

	content := data[:start]
	if i := bytes.LastIndexByte(content, EOF); i >= 0 {
		content = content[:i]
	}
	return content, r, nil
}

func putString(dst []byte, s string, pad byte) error {
	enc, err := charmap.CodePage437.NewEncoder().String(s)
	if err != nil {
		return err
	}
	if len(enc) > len(dst) {
		return fmt.Errorf("%w: %q exceeds %d bytes", ErrFieldTooLong, s, len(dst))
	}
	n := copy(dst, enc)
	for i := n; i < len(dst); i++ {
		dst[i] = pad
	}
	return nil
}
