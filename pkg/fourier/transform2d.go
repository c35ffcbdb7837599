package fourier

import (
	"fmt"

	"github.com/uzunenes/piciem/pkg/signal"
)

// Transform2D computes the 2D transform of a rows x cols signal by applying
// the engine to every row (length cols) and then to every column (length rows)
// of the intermediate result.
//
// Once the buffer lengths are valid, every failure leaves dst all zero
// (unless dst is src, which is then left untouched for precondition errors).
// Each row and column is copied into its own scratch buffer before
// transforming; no strided views are used.
func Transform2D(dst, src signal.Signal, rows, cols int, dir Direction, engine Engine) error {
	if len(dst) == 0 {
		return signal.ErrNilSignal
	}
	if err := signal.Check2D(src, rows, cols); err != nil {
		return err
	}
	if len(dst) != len(src) {
		return fmt.Errorf("%w: destination has %d samples, want %d", signal.ErrDimensionMismatch, len(dst), len(src))
	}
	transform, err := engine.Transform()
	if err != nil {
		return err
	}
	if !engine.Accepts(rows, cols) {
		if !signal.SameBuffer(dst, src) {
			dst.Zero()
		}
		return fmt.Errorf("%w: %dx%d", ErrNotPowerOfTwo, rows, cols)
	}

	// the intermediate is separate from dst so that dst may alias src
	temp := signal.New(rows * cols)
	rowIn := signal.New(cols)
	rowOut := signal.New(cols)
	colIn := signal.New(rows)
	colOut := signal.New(rows)

	for r := 0; r < rows; r++ {
		copy(rowIn, src[r*cols:(r+1)*cols])
		if err := transform(rowOut, rowIn, dir); err != nil {
			dst.Zero()
			return fmt.Errorf("row %d: %w", r, err)
		}
		copy(temp[r*cols:(r+1)*cols], rowOut)
	}

	dst.Zero()
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			colIn[r] = temp[r*cols+c]
		}
		if err := transform(colOut, colIn, dir); err != nil {
			dst.Zero()
			return fmt.Errorf("column %d: %w", c, err)
		}
		for r := 0; r < rows; r++ {
			dst[r*cols+c] = colOut[r]
		}
	}
	return nil
}

// FFT2 is Transform2D with the FFT engine; rows and cols must be powers of two.
func FFT2(dst, src signal.Signal, rows, cols int, dir Direction) error {
	return Transform2D(dst, src, rows, cols, dir, EngineFFT)
}

// DFT2 is Transform2D with the direct DFT engine.
func DFT2(dst, src signal.Signal, rows, cols int, dir Direction) error {
	return Transform2D(dst, src, rows, cols, dir, EngineDFT)
}
