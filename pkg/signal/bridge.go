package signal

import (
	"fmt"

	"github.com/uzunenes/piciem/pkg/raster"
)

// FromImage converts an image into a new Height x Width signal whose real
// parts are the pixel intensities and whose imaginary parts are zero.
func FromImage(im *raster.Image) (Signal, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	out := New(im.Len())
	if err := FromImageInto(out, im); err != nil {
		return nil, err
	}
	return out, nil
}

// FromImageInto writes the pixels of im into the first Width*Height samples
// of dst. Samples beyond the image are left untouched, so dst may be a larger
// buffer that is later zero padded in place.
func FromImageInto(dst Signal, im *raster.Image) error {
	if err := im.Validate(); err != nil {
		return err
	}
	if len(dst) == 0 {
		return ErrNilSignal
	}
	if len(dst) < im.Len() {
		return fmt.Errorf("%w: signal of %d samples cannot hold a %dx%d image",
			ErrDimensionMismatch, len(dst), im.Width, im.Height)
	}

	for i, v := range im.Data {
		dst[i] = complex(v, 0)
	}
	return nil
}

// ToImage builds a width x height image from a rows x cols signal by taking
// the real part of the top-left width x height region and clamping it into
// [0, raster.MaxIntensity]. It is the usual way back from an inverse transform.
func ToImage(s Signal, rows, cols, width, height int) (*raster.Image, error) {
	if err := Check2D(s, rows, cols); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 || width > cols || height > rows {
		return nil, fmt.Errorf("%w: %dx%d image from %dx%d signal", ErrDimensionMismatch, width, height, cols, rows)
	}

	out := raster.New(width, height)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			out.Data[r*width+c] = raster.ClampValue(real(s[r*cols+c]), 0, raster.MaxIntensity)
		}
	}
	return out, nil
}
