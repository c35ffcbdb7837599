package spatial

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/uzunenes/piciem/pkg/raster"
)

// Convolve slides k over im and returns the weighted sums
//
//	out[r][c] = Σ k[i][j] · in[r+i-h][c+j-h],  h = size/2
//
// Out-of-bounds pixels count as zero. The kernel is not flipped, which makes
// no difference for the symmetric smoothing kernels. Results are not clamped.
func Convolve(im *raster.Image, k mat.Matrix) (*raster.Image, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	if err := checkKernel(k); err != nil {
		return nil, err
	}

	size, _ := k.Dims()
	half := size / 2
	out := raster.New(im.Width, im.Height)
	for r := 0; r < im.Height; r++ {
		for c := 0; c < im.Width; c++ {
			var sum float64
			for i := 0; i < size; i++ {
				rr := r + i - half
				if rr < 0 || rr >= im.Height {
					continue
				}
				for j := 0; j < size; j++ {
					cc := c + j - half
					if cc < 0 || cc >= im.Width {
						continue
					}
					sum += k.At(i, j) * float64(im.At(rr, cc))
				}
			}
			out.Set(r, c, float32(sum))
		}
	}
	return out, nil
}

// BoxBlur averages every k x k neighbourhood.
func BoxBlur(im *raster.Image, k int) (*raster.Image, error) {
	kernel, err := BoxKernel(k)
	if err != nil {
		return nil, err
	}
	return Convolve(im, kernel)
}

// GaussianBlur convolves im with a normalised k x k Gaussian of the given sigma.
func GaussianBlur(im *raster.Image, k int, sigma float64) (*raster.Image, error) {
	kernel, err := GaussianKernel(k, sigma)
	if err != nil {
		return nil, err
	}
	return Convolve(im, kernel)
}

// Sobel returns the gradient magnitude sqrt(Gx² + Gy²), clamped to [0, 255].
func Sobel(im *raster.Image) (*raster.Image, error) {
	gx, err := Convolve(im, SobelX())
	if err != nil {
		return nil, err
	}
	gy, err := Convolve(im, SobelY())
	if err != nil {
		return nil, err
	}

	out := raster.New(im.Width, im.Height)
	for i := range out.Data {
		m := math.Hypot(float64(gx.Data[i]), float64(gy.Data[i]))
		out.Data[i] = raster.ClampValue(float32(m), 0, raster.MaxIntensity)
	}
	return out, nil
}

// Median replaces every pixel by the median of its in-bounds k x k
// neighbourhood. For an even number of neighbours the upper median is used.
func Median(im *raster.Image, k int) (*raster.Image, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	if err := CheckSize(k); err != nil {
		return nil, err
	}

	half := k / 2
	window := make([]float32, 0, k*k)
	out := raster.New(im.Width, im.Height)
	for r := 0; r < im.Height; r++ {
		for c := 0; c < im.Width; c++ {
			window = window[:0]
			for rr := max(r-half, 0); rr <= min(r+half, im.Height-1); rr++ {
				for cc := max(c-half, 0); cc <= min(c+half, im.Width-1); cc++ {
					window = append(window, im.At(rr, cc))
				}
			}
			sort.Slice(window, func(a, b int) bool { return window[a] < window[b] })
			out.Set(r, c, window[len(window)/2])
		}
	}
	return out, nil
}

// SaltAndPepper returns a copy of im in which round(density·N) randomly chosen
// pixels are set to 0 or 255 with equal probability. Pixels may be hit more
// than once. density is clamped to [0, 1].
func SaltAndPepper(im *raster.Image, density float64, rng *rand.Rand) (*raster.Image, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	density = math.Min(math.Max(density, 0), 1)

	out := im.Copy()
	n := int(math.Round(density * float64(out.Len())))
	for i := 0; i < n; i++ {
		idx := rng.Intn(out.Len())
		if rng.Intn(2) == 0 {
			out.Data[idx] = 0
		} else {
			out.Data[idx] = raster.MaxIntensity
		}
	}
	return out, nil
}
