package sauce

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalLayout(t *testing.T) {
	t.Parallel()

	rec, err := NewANSi(1234, 80, 25, "IBM VGA", FlagICEColors|FlagLetterSpacing8)
	require.NoError(t, err)
	rec.Title = "Café"
	rec.Author = "wb"
	rec.Date = time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)

	b, err := rec.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, Size)

	assert.Equal(t, "SAUCE00", string(b[0:7]))
	assert.Equal(t, []byte{'C', 'a', 'f', 0x82, ' '}, b[7:12], "title is code page 437")
	assert.Equal(t, "wb"+string(bytes.Repeat([]byte{' '}, 18)), string(b[42:62]))
	assert.Equal(t, bytes.Repeat([]byte{' '}, 20), b[62:82])
	assert.Equal(t, "20240309", string(b[82:90]))
	assert.Equal(t, []byte{0xD2, 0x04, 0, 0}, b[90:94])
	assert.Equal(t, byte(DataTypeCharacter), b[94])
	assert.Equal(t, byte(FileTypeANSi), b[95])
	assert.Equal(t, []byte{80, 0}, b[96:98])
	assert.Equal(t, []byte{25, 0}, b[98:100])
	assert.Equal(t, byte(0x03), b[105])
	assert.Equal(t, "IBM VGA", string(bytes.TrimRight(b[106:], "\x00")))
	assert.Equal(t, byte(0), b[127])
}

func TestWriteAndSplit(t *testing.T) {
	t.Parallel()

	content := []byte("\x1b[37;40m\xdb\xdb\r\n\x1b[0m")
	rec, err := NewANSi(len(content), 2, 1, "IBM VGA50", FlagICEColors)
	require.NoError(t, err)
	rec.Title = "bars"
	rec.Date = time.Date(1994, time.July, 1, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	buf.Write(content)
	require.NoError(t, Write(&buf, rec))
	require.Equal(t, len(content)+1+Size, buf.Len())
	assert.Equal(t, byte(EOF), buf.Bytes()[len(content)])

	gotContent, got, err := Split(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, content, gotContent)
	assert.Equal(t, rec, got)
	assert.Equal(t, 2, got.Columns())
	assert.Equal(t, 1, got.Rows())
}

func TestSplitWithoutEOF(t *testing.T) {
	t.Parallel()

	b, err := Record{Title: "x"}.MarshalBinary()
	require.NoError(t, err)

	content, rec, err := Split(append([]byte("art"), b...))
	require.NoError(t, err)
	assert.Equal(t, "art", string(content))
	assert.Equal(t, "x", rec.Title)
	assert.True(t, rec.Date.IsZero())
}

func TestSplitNoRecord(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{
		nil,
		[]byte("short"),
		bytes.Repeat([]byte{'A'}, 300),
	} {
		content, _, err := Split(data)
		require.ErrorIs(t, err, ErrNoRecord)
		assert.Equal(t, data, content)
	}
}

func TestMarshalFieldTooLong(t *testing.T) {
	t.Parallel()

	_, err := Record{Author: "an author name well past twenty bytes"}.MarshalBinary()
	require.ErrorIs(t, err, ErrFieldTooLong)

	_, err = Record{TInfoS: "a font name longer than the field"}.MarshalBinary()
	require.ErrorIs(t, err, ErrFieldTooLong)

	_, err = Record{Title: string(bytes.Repeat([]byte{'t'}, 35))}.MarshalBinary()
	require.NoError(t, err)
}

func TestNewANSiRange(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		size, columns, rows int
	}{
		"rows":          {size: 10, columns: 1, rows: MaxDimension + 1},
		"columns":       {size: 10, columns: MaxDimension + 1, rows: 1},
		"negative rows": {size: 10, columns: 1, rows: -1},
		"negative size": {size: -1, columns: 1, rows: 1},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := NewANSi(tc.size, tc.columns, tc.rows, "IBM VGA", 0)
			require.ErrorIs(t, err, ErrFieldRange)
		})
	}

	rec, err := NewANSi(10, MaxDimension, MaxDimension, "IBM VGA", 0)
	require.NoError(t, err)
	assert.Equal(t, MaxDimension, rec.Columns())
	assert.Equal(t, MaxDimension, rec.Rows())
}

func TestFontName(t *testing.T) {
	t.Parallel()

	tcs := map[string]string{
		"IBM VGA":                           "IBM VGA",
		"GoMono-Regular-Nerd-Font-Complete": "GoMono-Regular-Nerd-Fo",
		"Résumé":                            "Résumé",
		"字体":                                "??",
		"":                                  "",
	}

	for in, want := range tcs {
		got := FontName(in)
		assert.Equal(t, want, got, in)

		_, err := Record{TInfoS: got}.MarshalBinary()
		require.NoError(t, err, in)
	}

	rec, err := NewANSi(0, 2, 1, "GoMono-Regular-Nerd-Font-Complete", 0)
	require.NoError(t, err)
	assert.Len(t, rec.TInfoS, FontNameSize)
}
