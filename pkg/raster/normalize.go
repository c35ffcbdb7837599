package raster

import (
	"gonum.org/v1/gonum/floats"
)

// degenerateRange is the span below which a buffer is treated as constant.
const degenerateRange = 1e-9

// NormalizeArray rescales data in place so that its minimum maps to 0 and its
// maximum maps to newMax. A constant buffer is scaled as if its range were [0,1].
func NormalizeArray(data []float32, newMax float32) {
	if len(data) == 0 {
		return
	}

	wide := make([]float64, len(data))
	for i, v := range data {
		wide[i] = float64(v)
	}
	lo, hi := floats.Min(wide), floats.Max(wide)
	if hi-lo < degenerateRange {
		lo, hi = 0, 1
	}

	scale := float64(newMax) / (hi - lo)
	for i, v := range wide {
		data[i] = float32((v - lo) * scale)
	}
}

// Normalize rescales the image in place into [0, newMax].
func (im *Image) Normalize(newMax float32) {
	NormalizeArray(im.Data, newMax)
}

// Clamp limits every pixel to [lo, hi] in place.
func (im *Image) Clamp(lo, hi float32) {
	for i, v := range im.Data {
		im.Data[i] = ClampValue(v, lo, hi)
	}
}

// ClampValue limits v to [lo, hi]. NaN is passed through unchanged.
func ClampValue(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
