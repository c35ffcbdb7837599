package fourier

import (
	"math"

	"github.com/uzunenes/piciem/pkg/signal"
)

// DFT computes the 1D discrete Fourier transform of src into dst directly
// from the definition. It works for any length and costs O(N^2).
func DFT(dst, src signal.Signal, dir Direction) error {
	if err := checkPair(dst, src); err != nil {
		return err
	}

	in := src
	if signal.SameBuffer(dst, src) {
		in = src.Clone()
	}

	n := len(in)
	step := dir.sign() * 2 * math.Pi / float64(n)
	for k := 0; k < n; k++ {
		var sum complex128
		for j := 0; j < n; j++ {
			// k*j is reduced mod n to keep the angle small and the sin/cos exact
			angle := step * float64((k*j)%n)
			sum += complex128(in[j]) * complex(math.Cos(angle), math.Sin(angle))
		}
		if dir == Inverse {
			sum /= complex(float64(n), 0)
		}
		dst[k] = complex64(sum)
	}
	return nil
}
