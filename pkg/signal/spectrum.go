package signal

import (
	"fmt"
)

// NextPowerOfTwo returns the smallest power of two >= n. Values below 1 yield 1.
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// CircShift circularly shifts a rows x cols signal so that
//
//	dst[(r+rowShift) mod rows][(c+colShift) mod cols] = src[r][c]
//
// Negative shifts are allowed. dst may be the same buffer as src.
// Shifting by (rows/2, cols/2) moves the DC term of a spectrum to its centre.
func CircShift(dst, src Signal, rows, cols, rowShift, colShift int) error {
	if len(dst) == 0 {
		return ErrNilSignal
	}
	if err := Check2D(src, rows, cols); err != nil {
		return err
	}
	if len(dst) != len(src) {
		return fmt.Errorf("%w: destination has %d samples, want %d", ErrDimensionMismatch, len(dst), len(src))
	}

	in := source(dst, src)
	for r := 0; r < rows; r++ {
		rr := wrap(r+rowShift, rows)
		for c := 0; c < cols; c++ {
			dst[rr*cols+wrap(c+colShift, cols)] = in[r*cols+c]
		}
	}
	return nil
}

// Center moves the DC term of a rows x cols spectrum to (rows/2, cols/2) in place.
func Center(s Signal, rows, cols int) error {
	return CircShift(s, s, rows, cols, rows/2, cols/2)
}

// Uncenter undoes Center for any rows and cols, odd or even.
func Uncenter(s Signal, rows, cols int) error {
	return CircShift(s, s, rows, cols, -(rows / 2), -(cols / 2))
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// ZeroPad copies a rows x cols signal into the top-left corner of a
// newRows x newCols destination and zeroes every other sample. dst may share
// its first element with src, in which case src is snapshotted first.
func ZeroPad(dst, src Signal, rows, cols, newRows, newCols int) error {
	if len(dst) == 0 {
		return ErrNilSignal
	}
	if err := Check2D(src, rows, cols); err != nil {
		return err
	}
	if newRows < rows || newCols < cols {
		return fmt.Errorf("%w: cannot pad %dx%d down to %dx%d", ErrDimensionMismatch, rows, cols, newRows, newCols)
	}
	if len(dst) != newRows*newCols {
		return fmt.Errorf("%w: destination has %d samples, want %d", ErrDimensionMismatch, len(dst), newRows*newCols)
	}

	in := source(dst, src)
	dst.Zero()
	for r := 0; r < rows; r++ {
		copy(dst[r*newCols:r*newCols+cols], in[r*cols:(r+1)*cols])
	}
	return nil
}

// Pad returns a new newRows x newCols signal holding src in its top-left corner.
func Pad(src Signal, rows, cols, newRows, newCols int) (Signal, error) {
	if newRows < 0 || newCols < 0 {
		return nil, fmt.Errorf("%w: negative target %dx%d", ErrDimensionMismatch, newRows, newCols)
	}
	out := New(newRows * newCols)
	if err := ZeroPad(out, src, rows, cols, newRows, newCols); err != nil {
		return nil, err
	}
	return out, nil
}

// PadToPowerOfTwo pads a rows x cols signal up to the next power of two in
// each dimension. It returns src unchanged when both are already powers of two.
func PadToPowerOfTwo(src Signal, rows, cols int) (Signal, int, int, error) {
	newRows, newCols := NextPowerOfTwo(rows), NextPowerOfTwo(cols)
	if newRows == rows && newCols == cols {
		if err := Check2D(src, rows, cols); err != nil {
			return nil, 0, 0, err
		}
		return src, rows, cols, nil
	}
	out, err := Pad(src, rows, cols, newRows, newCols)
	if err != nil {
		return nil, 0, 0, err
	}
	return out, newRows, newCols, nil
}

// Crop returns the top-left newRows x newCols region of a rows x cols signal.
func Crop(src Signal, rows, cols, newRows, newCols int) (Signal, error) {
	if err := Check2D(src, rows, cols); err != nil {
		return nil, err
	}
	if newRows <= 0 || newCols <= 0 || newRows > rows || newCols > cols {
		return nil, fmt.Errorf("%w: cannot crop %dx%d to %dx%d", ErrDimensionMismatch, rows, cols, newRows, newCols)
	}

	out := New(newRows * newCols)
	for r := 0; r < newRows; r++ {
		copy(out[r*newCols:(r+1)*newCols], src[r*cols:r*cols+newCols])
	}
	return out, nil
}
