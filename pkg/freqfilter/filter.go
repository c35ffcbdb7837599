// Package freqfilter implements radially symmetric frequency-domain filters.
//
// Every filter is defined on a centered spectrum: the DC term must have been
// moved to (rows/2, cols/2) with signal.Center before Apply is called, and
// moved back with signal.Uncenter afterwards. The gain of a sample depends only
// on its distance from the centre,
//
//	D(u, v) = sqrt((u - rows/2)^2 + (v - cols/2)^2)
//
// where u is the row and v the column. No energy correction is applied.
package freqfilter

import (
	"errors"
	"fmt"
	"math"

	"github.com/uzunenes/piciem/pkg/raster"
	"github.com/uzunenes/piciem/pkg/signal"
)

// ErrInvalidParameter is returned by Validate and Apply for unusable filter parameters.
var ErrInvalidParameter = errors.New("freqfilter: invalid parameter")

// Filter is a radial transfer function H(D).
type Filter interface {
	// Gain returns H for a distance D >= 0 from the spectrum centre.
	Gain(d float64) float64

	// Validate reports whether the parameters produce finite gains.
	Validate() error

	// Name returns the short identifier used in configuration files.
	Name() string
}

// Distance returns the distance of (u, v) from the centre of a rows x cols spectrum.
func Distance(u, v, rows, cols int) float64 {
	du := float64(u) - float64(rows)/2
	dv := float64(v) - float64(cols)/2
	return math.Sqrt(du*du + dv*dv)
}

// Apply multiplies both components of every sample of a centered rows x cols
// spectrum by the filter gain at that position. The spectrum is modified in place.
func Apply(spectrum signal.Signal, rows, cols int, f Filter) error {
	if f == nil {
		return fmt.Errorf("%w: nil filter", ErrInvalidParameter)
	}
	if err := f.Validate(); err != nil {
		return err
	}
	if err := signal.Check2D(spectrum, rows, cols); err != nil {
		return err
	}

	for u := 0; u < rows; u++ {
		for v := 0; v < cols; v++ {
			h := float32(f.Gain(Distance(u, v, rows, cols)))
			spectrum[u*cols+v] *= complex(h, 0)
		}
	}
	return nil
}

// Mask renders the filter gains for a rows x cols spectrum as an image scaled
// so that the largest gain maps to raster.MaxIntensity.
func Mask(rows, cols int, f Filter) (*raster.Image, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil filter", ErrInvalidParameter)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", signal.ErrDimensionMismatch, rows, cols)
	}

	gains := make([]float64, rows*cols)
	maxGain := 0.0
	for u := 0; u < rows; u++ {
		for v := 0; v < cols; v++ {
			h := f.Gain(Distance(u, v, rows, cols))
			gains[u*cols+v] = h
			maxGain = math.Max(maxGain, h)
		}
	}

	img := raster.New(cols, rows)
	if maxGain == 0 {
		return img, nil
	}
	for i, h := range gains {
		img.Data[i] = float32(h / maxGain * raster.MaxIntensity)
	}
	return img, nil
}
