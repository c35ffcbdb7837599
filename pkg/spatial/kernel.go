// Package spatial implements neighbourhood filters that work directly on
// pixels: kernel convolution, blurs, Sobel edges, the median filter and
// salt-and-pepper noise.
//
// Kernels are gonum matrices. Pixels outside the image read as zero for
// convolution; the median filter only looks at in-bounds neighbours.
package spatial

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrKernelSize is returned for kernels that are not square with an odd side.
var ErrKernelSize = errors.New("spatial: kernel must be square with an odd size")

// CheckSize reports whether k is a usable odd, positive window size.
func CheckSize(k int) error {
	if k < 1 || k%2 == 0 {
		return fmt.Errorf("%w: got %d", ErrKernelSize, k)
	}
	return nil
}

// BoxKernel returns a k x k kernel whose entries all equal 1/k².
func BoxKernel(k int) (*mat.Dense, error) {
	if err := CheckSize(k); err != nil {
		return nil, err
	}
	data := make([]float64, k*k)
	for i := range data {
		data[i] = 1 / float64(k*k)
	}
	return mat.NewDense(k, k, data), nil
}

// GaussianKernel samples exp(-(x²+y²)/(2σ²)) on a k x k grid centred on the
// middle entry and normalises the result to sum 1.
func GaussianKernel(k int, sigma float64) (*mat.Dense, error) {
	if err := CheckSize(k); err != nil {
		return nil, err
	}
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("spatial: sigma must be positive, got %g", sigma)
	}

	half := k / 2
	g := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			x, y := float64(i-half), float64(j-half)
			g.Set(i, j, math.Exp(-(x*x+y*y)/(2*sigma*sigma)))
		}
	}
	g.Scale(1/mat.Sum(g), g)
	return g, nil
}

// Gaussian3x3 returns the classic binomial smoothing kernel
//
//	1 2 1
//	2 4 2  / 16
//	1 2 1
func Gaussian3x3() *mat.Dense {
	g := mat.NewDense(3, 3, []float64{
		1, 2, 1,
		2, 4, 2,
		1, 2, 1,
	})
	g.Scale(1.0/16, g)
	return g
}

// SobelX returns the horizontal gradient kernel.
func SobelX() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	})
}

// SobelY returns the vertical gradient kernel.
func SobelY() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	})
}

func checkKernel(k mat.Matrix) error {
	if k == nil {
		return fmt.Errorf("%w: nil kernel", ErrKernelSize)
	}
	r, c := k.Dims()
	if r != c {
		return fmt.Errorf("%w: got %dx%d", ErrKernelSize, r, c)
	}
	return CheckSize(r)
}
