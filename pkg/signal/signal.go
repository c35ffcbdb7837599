// Package signal provides the complex sample buffers consumed by the Fourier
// transforms and frequency-domain filters, together with the spectrum
// utilities (circular shift, zero padding, power-of-two sizing) and the
// bridge from raster images.
//
// A 2D signal is a Signal with externally tracked dimensions laid out in
// row-major order: sample (row, col) lives at index row*cols+col, and every
// function taking rows and cols checks that rows*cols equals the buffer length.
package signal

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

var (
	// ErrNilSignal is returned when a required buffer is nil or empty.
	ErrNilSignal = errors.New("signal: nil or empty signal")

	// ErrDimensionMismatch is returned when buffer lengths and declared dimensions disagree.
	ErrDimensionMismatch = errors.New("signal: dimension mismatch")
)

// Signal is a fixed-length sequence of complex samples.
type Signal []complex64

// New allocates a zero-initialised signal of length n.
func New(n int) Signal {
	if n < 0 {
		n = 0
	}
	return make(Signal, n)
}

// Clone returns a copy of s backed by fresh memory.
func (s Signal) Clone() Signal {
	out := make(Signal, len(s))
	copy(out, s)
	return out
}

// Zero sets every sample to 0.
func (s Signal) Zero() {
	for i := range s {
		s[i] = 0
	}
}

// Check2D validates that s is a non-empty rows x cols signal.
func Check2D(s Signal, rows, cols int) error {
	if len(s) == 0 {
		return ErrNilSignal
	}
	if rows <= 0 || cols <= 0 || rows*cols != len(s) {
		return fmt.Errorf("%w: %dx%d does not describe %d samples", ErrDimensionMismatch, rows, cols, len(s))
	}
	return nil
}

// SameBuffer reports whether a and b start at the same element, i.e. whether
// writing to a would clobber b before it is read.
func SameBuffer(a, b Signal) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}

// source returns src itself, or a snapshot of it when dst and src share storage.
func source(dst, src Signal) Signal {
	if SameBuffer(dst, src) {
		return src.Clone()
	}
	return src
}

// Real returns the real parts of s.
func Real(s Signal) []float32 {
	out := make([]float32, len(s))
	for i, v := range s {
		out[i] = real(v)
	}
	return out
}

// Magnitude returns |s[i]| = sqrt(re^2 + im^2) for every sample.
func Magnitude(s Signal) []float32 {
	out := make([]float32, len(s))
	for i, v := range s {
		re, im := float64(real(v)), float64(imag(v))
		out[i] = float32(math.Sqrt(re*re + im*im))
	}
	return out
}

// Scale multiplies every sample by k in place.
func (s Signal) Scale(k float32) {
	c := complex(k, 0)
	for i := range s {
		s[i] *= c
	}
}

// Fprint writes a rows x cols signal as a text grid. Samples whose imaginary
// part is negligible are printed as real numbers.
func Fprint(w io.Writer, s Signal, rows, cols int) error {
	if err := Check2D(s, rows, cols); err != nil {
		return err
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := s[r*cols+c]
			if math.Abs(float64(imag(v))) < 1e-6 {
				fmt.Fprintf(&b, "%.1f  ", real(v))
			} else {
				fmt.Fprintf(&b, "%.1f j%.1f  ", real(v), imag(v))
			}
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
