package blockansi

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const (
	// ESC is the escape character that starts every control sequence.
	ESC = "\u001b"
	// Reset is the SGR sequence that clears all attributes.
	Reset = ESC + "[0m"
)

// BrightMode selects how bright 16-color entries are expressed.
type BrightMode int

const (
	// BrightAixterm uses SGR 90-97 and 100-107 for bright colors.
	BrightAixterm BrightMode = iota
	// BrightICE restates the full attribute set on every change, with bold
	// for a bright foreground and blink for a bright background, as DOS
	// ANSI art viewers with iCE colors expect.
	BrightICE
)

func (m BrightMode) String() string {
	switch m {
	case BrightAixterm:
		return "aixterm"
	case BrightICE:
		return "ice"
	}
	return fmt.Sprintf("BrightMode(%d)", int(m))
}

// ParseBrightMode parses "aixterm" or "ice".
func ParseBrightMode(s string) (BrightMode, error) {
	switch strings.ToLower(s) {
	case "aixterm", "":
		return BrightAixterm, nil
	case "ice":
		return BrightICE, nil
	}
	return 0, fmt.Errorf("%w: unknown bright mode %q", ErrInvalidOption, s)
}

// Encoding selects how glyphs are written to the output stream.
type Encoding int

const (
	// EncodingUTF8 writes Unicode block elements as UTF-8.
	EncodingUTF8 Encoding = iota
	// EncodingCP437 writes one code page 437 byte per glyph.
	EncodingCP437
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "utf8"
	case EncodingCP437:
		return "cp437"
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// ParseEncoding parses "utf8" or "cp437".
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "utf8", "utf-8", "":
		return EncodingUTF8, nil
	case "cp437", "ibm437":
		return EncodingCP437, nil
	}
	return 0, fmt.Errorf("%w: unknown encoding %q", ErrInvalidOption, s)
}

// Emitter writes a Grid as text interleaved with SGR color sequences.
//
// A color sequence is written only when a cell's foreground or background
// differs from the previous cell's, so a run of cells sharing both colors
// costs a single sequence. Line breaks do not reset the color state: it
// carries over to the next row, and one Reset terminates the stream.
type Emitter struct {
	Bright   BrightMode
	Encoding Encoding
	CRLF     bool
}

// emitState is the color state threaded through one Emit call.
type emitState struct {
	fg, bg Color
	set    bool
}

// CheckRepertoire reports an ErrInvalidOption if some glyph of rep cannot
// be written in the emitter's encoding.
func (e Emitter) CheckRepertoire(rep Repertoire) error {
	if e.Encoding != EncodingCP437 {
		return nil
	}
	for _, g := range rep.glyphs {
		if _, ok := charmap.CodePage437.EncodeRune(g.Rune()); !ok {
			return fmt.Errorf("%w: glyph %q of the %s repertoire is not in code page 437",
				ErrInvalidOption, g.Rune(), rep.Name())
		}
	}
	return nil
}

// Emit writes grid to w.
func (e Emitter) Emit(w io.Writer, grid *Grid) error {
	bw := bufio.NewWriter(w)
	lineBreak := "\n"
	if e.CRLF {
		lineBreak = "\r\n"
	}

	var st emitState
	buf := make([]byte, 0, 64)
	for row := 0; row < grid.Rows; row++ {
		for _, c := range grid.Row(row) {
			buf = e.appendSGR(buf[:0], grid.Space, &st, c.FG, c.BG)
			var err error
			buf, err = e.appendGlyph(buf, c.Glyph)
			if err != nil {
				return err
			}
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(lineBreak); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString(Reset); err != nil {
		return err
	}
	return bw.Flush()
}

// appendSGR appends a color sequence for the colors that changed since the
// previous cell, updating st.
func (e Emitter) appendSGR(buf []byte, space ColorSpace, st *emitState, fg, bg Color) []byte {
	fgChanged := !st.set || fg != st.fg
	bgChanged := !st.set || bg != st.bg
	if !fgChanged && !bgChanged {
		return buf
	}

	buf = append(buf, ESC...)
	buf = append(buf, '[')
	if space == Ansi16 && e.Bright == BrightICE {
		buf = append(buf, '0')
		if fg.Bright() {
			buf = append(buf, ";1"...)
		}
		if bg.Bright() {
			buf = append(buf, ";5"...)
		}
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(30+fg.Index%8), 10)
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(40+bg.Index%8), 10)
	} else {
		if fgChanged {
			buf = appendColorCode(buf, space, fg, true)
		}
		if bgChanged {
			if fgChanged {
				buf = append(buf, ';')
			}
			buf = appendColorCode(buf, space, bg, false)
		}
	}
	buf = append(buf, 'm')

	st.fg, st.bg, st.set = fg, bg, true
	return buf
}

// appendColorCode appends the SGR parameters selecting c as the foreground
// or background color.
func appendColorCode(buf []byte, space ColorSpace, c Color, foreground bool) []byte {
	if space == Truecolor {
		if foreground {
			buf = append(buf, "38;2;"...)
		} else {
			buf = append(buf, "48;2;"...)
		}
		buf = strconv.AppendInt(buf, int64(c.R), 10)
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(c.G), 10)
		buf = append(buf, ';')
		return strconv.AppendInt(buf, int64(c.B), 10)
	}

	base := 30
	if !foreground {
		base = 40
	}
	idx := c.Index
	if c.Bright() {
		base += 60
		idx -= PaletteSize / 2
	}
	return strconv.AppendInt(buf, int64(base+idx), 10)
}

func (e Emitter) appendGlyph(buf []byte, g Glyph) ([]byte, error) {
	r := g.Rune()
	if e.Encoding == EncodingCP437 {
		b, ok := charmap.CodePage437.EncodeRune(r)
		if !ok {
			return buf, fmt.Errorf("%w: glyph %q is not in code page 437", ErrInvalidOption, r)
		}
		return append(buf, b), nil
	}
	return utf8.AppendRune(buf, r), nil
}
