// Package pgm reads and writes Netpbm graymaps in the binary (P5) and ASCII
// (P2) variants.
//
// The header is a magic number followed by width, height and maximum value,
// separated by whitespace. Lines starting with '#' inside the header are
// comments; they are collected into File.Comment joined with ','.
package pgm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/uzunenes/piciem/pkg/raster"
)

// DefaultMaxVal is the maximum value written when File.MaxVal is unset.
const DefaultMaxVal = 255

// MaxPixels bounds width*height accepted from a header.
const MaxPixels = 1 << 28

// asciiValuesPerLine keeps P2 lines below the 70 character limit of the format.
const asciiValuesPerLine = 17

var (
	// ErrBadMagic is returned for streams that do not start with P2 or P5.
	ErrBadMagic = errors.New("pgm: unknown magic number")

	// ErrBadHeader is returned for malformed width, height or maxval tokens.
	ErrBadHeader = errors.New("pgm: malformed header")

	// ErrUnsupportedMaxVal is returned for maximum values outside [1, 255].
	ErrUnsupportedMaxVal = errors.New("pgm: unsupported maximum value")

	// ErrTruncated is returned when the pixel data ends early.
	ErrTruncated = errors.New("pgm: truncated pixel data")
)

// Format selects the pixel encoding of a graymap.
type Format int

const (
	// Binary stores one byte per pixel after the header ("P5").
	Binary Format = iota

	// ASCII stores whitespace separated decimal values ("P2").
	ASCII
)

// Magic returns the two-character magic number of the format.
func (f Format) Magic() string {
	if f == ASCII {
		return "P2"
	}
	return "P5"
}

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case Binary:
		return "binary"
	case ASCII:
		return "ascii"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat accepts "binary"/"p5" and "ascii"/"p2" in any case.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "binary", "p5":
		return Binary, nil
	case "ascii", "p2":
		return ASCII, nil
	default:
		return 0, fmt.Errorf("pgm: unknown format %q", name)
	}
}

func formatFromMagic(magic string) (Format, error) {
	switch magic {
	case "P5":
		return Binary, nil
	case "P2":
		return ASCII, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadMagic, magic)
	}
}

// File is a decoded graymap together with its header fields.
type File struct {
	// Format is the encoding read from, or to be written to, the stream
	Format Format

	// Comment holds the header comments, joined with ','
	Comment string

	// MaxVal is the maximum gray value declared in the header
	MaxVal int

	// Image holds the pixels as intensities in [0, MaxVal]
	Image *raster.Image
}

// headerScanner tokenises a PNM header and gathers comments on the way.
type headerScanner struct {
	r        *bufio.Reader
	comments []string
}

func (h *headerScanner) token() (string, error) {
	var sb strings.Builder
	for {
		b, err := h.r.ReadByte()
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		switch {
		case b == '#' && sb.Len() == 0:
			line, err := h.r.ReadString('\n')
			if err != nil && err != io.EOF {
				return "", err
			}
			h.comments = append(h.comments, strings.TrimSpace(line))
		case isSpace(b):
			if sb.Len() > 0 {
				return sb.String(), nil
			}
		default:
			sb.WriteByte(b)
		}
	}
}

func (h *headerScanner) int(field string) (int, error) {
	tok, err := h.token()
	if err != nil {
		return 0, fmt.Errorf("%w: reading %s: %v", ErrBadHeader, field, err)
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s %q", ErrBadHeader, field, tok)
	}
	return v, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// Read decodes a P5 or P2 graymap from r.
func Read(r io.Reader) (*File, error) {
	h := &headerScanner{r: bufio.NewReader(r)}

	magic, err := h.token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMagic, err)
	}
	format, err := formatFromMagic(magic)
	if err != nil {
		return nil, err
	}
	width, err := h.int("width")
	if err != nil {
		return nil, err
	}
	height, err := h.int("height")
	if err != nil {
		return nil, err
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrBadHeader, width, height, MaxPixels)
	}
	tok, err := h.token()
	if err != nil {
		return nil, fmt.Errorf("%w: reading maxval: %v", ErrBadHeader, err)
	}
	maxVal, err := strconv.Atoi(tok)
	if err != nil {
		return nil, fmt.Errorf("%w: maxval %q", ErrBadHeader, tok)
	}
	if maxVal < 1 || maxVal > 255 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMaxVal, maxVal)
	}

	f := &File{
		Format:  format,
		Comment: strings.Join(h.comments, ","),
		MaxVal:  maxVal,
		Image:   raster.New(width, height),
	}
	logrus.WithFields(logrus.Fields{
		"function": "pgm.Read",
		"magic":    magic,
		"comment":  f.Comment,
		"width":    width,
		"height":   height,
		"maxval":   maxVal,
	}).Debug("Parsed PGM header")

	if format == Binary {
		err = readBinary(h.r, f.Image)
	} else {
		err = readASCII(h, f.Image, maxVal)
	}
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "pgm.Read",
		"pixels":   f.Image.Len(),
	}).Debug("Read PGM pixel data")
	return f, nil
}

func readBinary(r io.Reader, im *raster.Image) error {
	buf := make([]byte, im.Len())
	if n, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("%w: got %d of %d bytes", ErrTruncated, n, len(buf))
	}
	for i, b := range buf {
		im.Data[i] = float32(b)
	}
	return nil
}

func readASCII(h *headerScanner, im *raster.Image, maxVal int) error {
	for i := range im.Data {
		tok, err := h.token()
		if err != nil {
			return fmt.Errorf("%w: got %d of %d values", ErrTruncated, i, im.Len())
		}
		v, err := strconv.Atoi(tok)
		if err != nil || v < 0 || v > maxVal {
			return fmt.Errorf("pgm: invalid pixel value %q at index %d", tok, i)
		}
		im.Data[i] = float32(v)
	}
	return nil
}

// ReadFile decodes the graymap stored at path.
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening PGM file: %w", err)
	}
	defer fh.Close()

	f, err := Read(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Write encodes f to w in f.Format. Pixels are clamped to [0, MaxVal] and
// truncated toward zero.
func Write(w io.Writer, f *File) error {
	if f == nil {
		return raster.ErrNilImage
	}
	if err := f.Image.Validate(); err != nil {
		return err
	}
	maxVal := f.MaxVal
	if maxVal == 0 {
		maxVal = DefaultMaxVal
	}
	if maxVal < 1 || maxVal > 255 {
		return fmt.Errorf("%w: %d", ErrUnsupportedMaxVal, maxVal)
	}
	if f.Format != Binary && f.Format != ASCII {
		return fmt.Errorf("pgm: cannot write %v", f.Format)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n", f.Format.Magic())
	if f.Comment != "" {
		fmt.Fprintf(bw, "#%s\n", f.Comment)
	}
	fmt.Fprintf(bw, "%d %d\n%d\n", f.Image.Width, f.Image.Height, maxVal)

	logrus.WithFields(logrus.Fields{
		"function": "pgm.Write",
		"magic":    f.Format.Magic(),
		"width":    f.Image.Width,
		"height":   f.Image.Height,
		"maxval":   maxVal,
		"pixels":   f.Image.Len(),
	}).Debug("Writing PGM")

	top := float32(maxVal)
	if f.Format == Binary {
		for _, v := range f.Image.Data {
			bw.WriteByte(byte(sample(v, top)))
		}
	} else {
		for i, v := range f.Image.Data {
			sep := byte(' ')
			if (i+1)%asciiValuesPerLine == 0 || i == len(f.Image.Data)-1 {
				sep = '\n'
			}
			bw.WriteString(strconv.Itoa(int(math.Floor(float64(sample(v, top))))))
			bw.WriteByte(sep)
		}
	}
	return bw.Flush()
}

// sample clamps v to [0, top]; NaN becomes 0.
func sample(v, top float32) float32 {
	if math.IsNaN(float64(v)) {
		return 0
	}
	return raster.ClampValue(v, 0, top)
}

// WriteFile encodes f into the file at path, replacing any existing file.
func WriteFile(path string, f *File) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating PGM file: %w", err)
	}
	if err := Write(fh, f); err != nil {
		fh.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return fh.Close()
}

// New wraps an image in a binary File with the default maximum value.
func New(im *raster.Image, comment string) *File {
	return &File{Format: Binary, Comment: comment, MaxVal: DefaultMaxVal, Image: im}
}
