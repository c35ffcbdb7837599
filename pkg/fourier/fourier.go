// Package fourier implements the discrete Fourier transforms used by piciem:
// a naive O(N^2) DFT, an iterative radix-2 Cooley-Tukey FFT, and the separable
// row-then-column composition of either engine into a 2D transform.
//
// Forward transforms are unnormalised; inverse transforms divide by the
// transform length, so Inverse(Forward(x)) == x up to rounding.
//
// All functions follow the destination-first convention: dst must already have
// the length of src and may be the same buffer as src.
package fourier

import (
	"errors"
	"fmt"

	"github.com/uzunenes/piciem/pkg/signal"
)

// ErrNotPowerOfTwo is returned by the FFT paths for lengths or dimensions
// that are not powers of two. Zero pad with signal.Pad first, or use the DFT.
var ErrNotPowerOfTwo = errors.New("fourier: length is not a power of two")

// Direction selects a forward or inverse transform.
type Direction int

const (
	// Forward computes X[k] = sum x[n] e^{-j2πkn/N}.
	Forward Direction = iota

	// Inverse computes x[n] = (1/N) sum X[k] e^{+j2πkn/N}.
	Inverse
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Inverse:
		return "inverse"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// sign is the sign of the exponent for the direction.
func (d Direction) sign() float64 {
	if d == Inverse {
		return 1
	}
	return -1
}

// Engine selects the 1D algorithm used by Transform2D.
type Engine int

const (
	// EngineFFT is the radix-2 Cooley-Tukey FFT. Dimensions must be powers of two.
	EngineFFT Engine = iota

	// EngineDFT is the direct O(N^2) DFT. Any positive dimension is accepted.
	EngineDFT
)

// String implements fmt.Stringer.
func (e Engine) String() string {
	switch e {
	case EngineFFT:
		return "fft"
	case EngineDFT:
		return "dft"
	default:
		return fmt.Sprintf("Engine(%d)", int(e))
	}
}

// ParseEngine converts "fft" or "dft" into an Engine.
func ParseEngine(name string) (Engine, error) {
	switch name {
	case "fft", "FFT":
		return EngineFFT, nil
	case "dft", "DFT":
		return EngineDFT, nil
	default:
		return 0, fmt.Errorf("fourier: unknown engine %q", name)
	}
}

// Transform returns the 1D function implementing the engine.
func (e Engine) Transform() (func(dst, src signal.Signal, dir Direction) error, error) {
	switch e {
	case EngineFFT:
		return FFT, nil
	case EngineDFT:
		return DFT, nil
	default:
		return nil, fmt.Errorf("fourier: unknown engine %d", int(e))
	}
}

// Accepts reports whether the engine can transform a rows x cols signal.
func (e Engine) Accepts(rows, cols int) bool {
	if e == EngineFFT {
		return signal.IsPowerOfTwo(rows) && signal.IsPowerOfTwo(cols)
	}
	return rows > 0 && cols > 0
}

func checkPair(dst, src signal.Signal) error {
	if len(src) == 0 || len(dst) == 0 {
		return signal.ErrNilSignal
	}
	if len(dst) != len(src) {
		return fmt.Errorf("%w: destination has %d samples, source %d", signal.ErrDimensionMismatch, len(dst), len(src))
	}
	return nil
}
