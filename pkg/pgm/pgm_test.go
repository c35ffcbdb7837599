package pgm_test

import (
	"bytes"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uzunenes/piciem/internal/testutil"
	"github.com/uzunenes/piciem/pkg/pgm"
	"github.com/uzunenes/piciem/pkg/raster"
)

// TestWriteReadRoundTrip verifies that both encodings preserve the header and pixels.
func TestWriteReadRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, format := range []pgm.Format{pgm.Binary, pgm.ASCII} {
		t.Run(format.String(), func(t *testing.T) {
			im := testutil.RandomImage(rng, 23, 9)
			in := &pgm.File{Format: format, Comment: "created by piciem", MaxVal: 255, Image: im}

			var buf bytes.Buffer
			require.NoError(t, pgm.Write(&buf, in))
			assert.True(t, strings.HasPrefix(buf.String(), format.Magic()+"\n#created by piciem\n23 9\n255\n"))

			out, err := pgm.Read(&buf)
			require.NoError(t, err)
			assert.Equal(t, format, out.Format)
			assert.Equal(t, "created by piciem", out.Comment)
			assert.Equal(t, 255, out.MaxVal)
			testutil.AssertImagesInDelta(t, im, out.Image, 0)
		})
	}
}

// TestReadHeaderVariants covers comments and irregular whitespace.
func TestReadHeaderVariants(t *testing.T) {
	src := "P2\n# first\n3  2\n# second\n7\n0 1 2\n\t3 4\n  5\n"
	f, err := pgm.Read(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, pgm.ASCII, f.Format)
	assert.Equal(t, "first,second", f.Comment)
	assert.Equal(t, 7, f.MaxVal)
	assert.Equal(t, 3, f.Image.Width)
	assert.Equal(t, 2, f.Image.Height)
	assert.Equal(t, []float32{0, 1, 2, 3, 4, 5}, f.Image.Data)
	assert.Equal(t, float32(5), f.Image.At(1, 2))
}

// TestReadBinary checks a hand-built P5 stream.
func TestReadBinary(t *testing.T) {
	src := append([]byte("P5 2 2 255\n"), 0, 10, 200, 255)
	f, err := pgm.Read(bytes.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, pgm.Binary, f.Format)
	assert.Empty(t, f.Comment)
	assert.Equal(t, []float32{0, 10, 200, 255}, f.Image.Data)
}

// TestReadErrors checks the sentinel errors.
func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"bad magic", "P6\n2 2\n255\n", pgm.ErrBadMagic},
		{"empty", "", pgm.ErrBadMagic},
		{"bad width", "P5\nx 2\n255\n", pgm.ErrBadHeader},
		{"zero height", "P5\n2 0\n255\n", pgm.ErrBadHeader},
		{"missing maxval", "P5\n2 2", pgm.ErrBadHeader},
		{"16 bit", "P5\n2 2\n65535\n", pgm.ErrUnsupportedMaxVal},
		{"zero maxval", "P2\n2 2\n0\n", pgm.ErrUnsupportedMaxVal},
		{"short binary", "P5\n2 2\n255\n\x01\x02", pgm.ErrTruncated},
		{"short ascii", "P2\n2 2\n255\n1 2 3", pgm.ErrTruncated},
		{"oversized", "P5\n3037000500 3037000500\n255\n", pgm.ErrBadHeader},
		{"size wraps to zero", "P5\n4294967296 4294967296\n255\n", pgm.ErrBadHeader},
		{"one past limit", "P5\n16385 16384\n255\n", pgm.ErrBadHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pgm.Read(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := pgm.Read(strings.NewReader("P2\n1 1\n10\n11\n"))
	assert.Error(t, err)
}

// TestWriteClampsAndTruncates checks the pixel conversion on output.
func TestWriteClampsAndTruncates(t *testing.T) {
	im, err := raster.FromData(5, 1, []float32{-3, 12.9, 254.99, 300, 0.4})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, pgm.Write(&buf, &pgm.File{Format: pgm.ASCII, Image: im}))
	assert.Equal(t, "P2\n5 1\n255\n0 12 254 255 0\n", buf.String())

	buf.Reset()
	require.NoError(t, pgm.Write(&buf, pgm.New(im, "")))
	assert.Equal(t, append([]byte("P5\n5 1\n255\n"), 0, 12, 254, 255, 0), buf.Bytes())
}

// TestWriteNaN checks that NaN pixels are written as zero.
func TestWriteNaN(t *testing.T) {
	nan := float32(math.NaN())
	im, err := raster.FromData(3, 1, []float32{nan, 7, nan})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, pgm.Write(&buf, &pgm.File{Format: pgm.ASCII, Image: im}))
	assert.Equal(t, "P2\n3 1\n255\n0 7 0\n", buf.String())

	buf.Reset()
	require.NoError(t, pgm.Write(&buf, pgm.New(im, "")))
	assert.Equal(t, append([]byte("P5\n3 1\n255\n"), 0, 7, 0), buf.Bytes())
}

// TestWriteASCIILineLength checks the line wrapping of P2 output.
func TestWriteASCIILineLength(t *testing.T) {
	im := raster.New(40, 1)
	im.Fill(255)
	var buf bytes.Buffer
	require.NoError(t, pgm.Write(&buf, &pgm.File{Format: pgm.ASCII, Image: im}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3+3)
	for _, line := range lines[3:] {
		assert.LessOrEqual(t, len(line), 70)
	}
	assert.Len(t, strings.Fields(lines[3]), 17)
}

// TestWriteErrors checks invalid inputs.
func TestWriteErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, pgm.Write(&buf, nil), raster.ErrNilImage)
	assert.ErrorIs(t, pgm.Write(&buf, &pgm.File{}), raster.ErrNilImage)
	assert.ErrorIs(t, pgm.Write(&buf, &pgm.File{MaxVal: 300, Image: raster.New(1, 1)}), pgm.ErrUnsupportedMaxVal)
	assert.Error(t, pgm.Write(&buf, &pgm.File{Format: pgm.Format(4), Image: raster.New(1, 1)}))
}

// TestFiles exercises the path based helpers.
func TestFiles(t *testing.T) {
	im := raster.New(4, 3)
	im.FillBlock(1, 1, 2, 3, 128)
	path := testutil.TempPGM(t, "block.pgm", im)

	f, err := pgm.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pgm.Binary, f.Format)
	testutil.AssertImagesInDelta(t, im, f.Image, 0)

	_, err = pgm.ReadFile(path + ".missing")
	assert.Error(t, err)
}

// TestParseFormat checks format names.
func TestParseFormat(t *testing.T) {
	for name, want := range map[string]pgm.Format{"binary": pgm.Binary, "P5": pgm.Binary, "ascii": pgm.ASCII, "p2": pgm.ASCII} {
		got, err := pgm.ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := pgm.ParseFormat("png")
	assert.Error(t, err)
}
