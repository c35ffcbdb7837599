// Package raster provides the grayscale image model shared by every piciem package.
//
// Images are stored as a flat row-major buffer of float32 intensities. The
// coordinate convention is fixed for the whole module: the first index is the
// row (0 <= row < Height) and the second is the column (0 <= col < Width), so
// a pixel lives at Data[row*Width+col].
package raster

import (
	"errors"
	"fmt"
)

// MaxIntensity is the largest displayable gray level.
const MaxIntensity = 255.0

var (
	// ErrNilImage is returned when an operation receives a nil image or one without pixel data.
	ErrNilImage = errors.New("raster: nil image")

	// ErrInvalidSize is returned for non-positive dimensions or a buffer whose
	// length differs from Width*Height.
	ErrInvalidSize = errors.New("raster: invalid image size")
)

// Image is a single-channel image with row-major float32 pixels.
type Image struct {
	// Width is the number of columns
	Width int

	// Height is the number of rows
	Height int

	// Data holds Width*Height intensities, Data[row*Width+col]
	Data []float32
}

// New creates a zero-filled image of the given width and height.
func New(width, height int) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{
		Width:  width,
		Height: height,
		Data:   make([]float32, width*height),
	}
}

// FromData wraps an existing buffer. The buffer is not copied.
func FromData(width, height int, data []float32) (*Image, error) {
	if width <= 0 || height <= 0 || len(data) != width*height {
		return nil, fmt.Errorf("%w: %dx%d with %d samples", ErrInvalidSize, width, height, len(data))
	}
	return &Image{Width: width, Height: height, Data: data}, nil
}

// Validate reports whether the image is usable by the processing packages.
func (im *Image) Validate() error {
	if im == nil || im.Data == nil {
		return ErrNilImage
	}
	if im.Width <= 0 || im.Height <= 0 || len(im.Data) != im.Width*im.Height {
		return fmt.Errorf("%w: %dx%d with %d samples", ErrInvalidSize, im.Width, im.Height, len(im.Data))
	}
	return nil
}

// Len returns the number of pixels.
func (im *Image) Len() int {
	return im.Width * im.Height
}

// Copy returns a deep copy of the image.
func (im *Image) Copy() *Image {
	out := New(im.Width, im.Height)
	copy(out.Data, im.Data)
	return out
}

// At returns the pixel at (row, col). It panics when out of range, like a slice index.
func (im *Image) At(row, col int) float32 {
	return im.Data[row*im.Width+col]
}

// Set stores val at (row, col).
func (im *Image) Set(row, col int, val float32) {
	im.Data[row*im.Width+col] = val
}

// AtExtend returns the pixel at (row, col), or 0 outside the image.
func (im *Image) AtExtend(row, col int) float32 {
	if !im.In(row, col) {
		return 0
	}
	return im.At(row, col)
}

// In reports whether (row, col) lies inside the image.
func (im *Image) In(row, col int) bool {
	return row >= 0 && row < im.Height && col >= 0 && col < im.Width
}

// Fill sets every pixel to val.
func (im *Image) Fill(val float32) {
	for i := range im.Data {
		im.Data[i] = val
	}
}

// FillBlock sets every pixel in rows [row0,row1) and columns [col0,col1) to val.
// The block is clipped to the image.
func (im *Image) FillBlock(row0, col0, row1, col1 int, val float32) {
	row0, row1 = max(row0, 0), min(row1, im.Height)
	col0, col1 = max(col0, 0), min(col1, im.Width)
	for r := row0; r < row1; r++ {
		for c := col0; c < col1; c++ {
			im.Data[r*im.Width+c] = val
		}
	}
}

// Border returns a copy of im surrounded by size pixels of zeros on every side.
func Border(im *Image, size int) (*Image, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: negative border %d", ErrInvalidSize, size)
	}

	out := New(im.Width+2*size, im.Height+2*size)
	for r := 0; r < im.Height; r++ {
		copy(out.Data[(r+size)*out.Width+size:], im.Data[r*im.Width:(r+1)*im.Width])
	}
	return out, nil
}
