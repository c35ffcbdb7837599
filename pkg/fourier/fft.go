package fourier

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/uzunenes/piciem/pkg/signal"
)

// FFT computes the 1D discrete Fourier transform of src into dst using the
// iterative radix-2 Cooley-Tukey algorithm. len(src) must be a power of two.
//
// The input is first permuted into bit-reversed order, then combined by
// log2(N) butterfly stages of size m = 2, 4, ..., N:
//
//	t          = W^j * out[k+j+m/2]
//	out[k+j+m/2] = out[k+j] - t
//	out[k+j]     = out[k+j] + t
//
// where W = e^{∓j2π/m}. The twiddle factor is advanced by multiplication
// rather than recomputed for every j.
func FFT(dst, src signal.Signal, dir Direction) error {
	if err := checkPair(dst, src); err != nil {
		return err
	}
	n := len(src)
	if !signal.IsPowerOfTwo(n) {
		return fmt.Errorf("%w: got %d", ErrNotPowerOfTwo, n)
	}

	bitReverseCopy(dst, src)

	for m := 2; m <= n; m <<= 1 {
		half := m / 2
		angle := dir.sign() * 2 * math.Pi / float64(m)
		wm := complex(math.Cos(angle), math.Sin(angle))

		for k := 0; k < n; k += m {
			w := complex(1, 0)
			for j := 0; j < half; j++ {
				t := complex64(w * complex128(dst[k+j+half]))
				u := dst[k+j]
				dst[k+j+half] = u - t
				dst[k+j] = u + t
				w *= wm
			}
		}
	}

	if dir == Inverse {
		dst.Scale(1 / float32(n))
	}
	return nil
}

// bitReverseCopy writes src into dst in bit-reversed index order.
// dst may be the same buffer as src.
func bitReverseCopy(dst, src signal.Signal) {
	n := len(src)
	in := src
	if signal.SameBuffer(dst, src) {
		in = src.Clone()
	}

	// n == 1 gives a shift of UintSize, which yields 0
	shift := bits.UintSize - bits.TrailingZeros(uint(n))
	for i := 0; i < n; i++ {
		j := int(bits.Reverse(uint(i)) >> shift)
		dst[j] = in[i]
	}
}
