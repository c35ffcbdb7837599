package enhance

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/uzunenes/piciem/pkg/raster"
)

// Levels is the number of gray levels in a histogram.
const Levels = 256

// Histogram counts pixels per gray level. Intensities are rounded and clamped into [0, 255].
func Histogram(im *raster.Image) ([]float64, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	hist := make([]float64, Levels)
	for _, v := range im.Data {
		hist[level(v)]++
	}
	return hist, nil
}

func level(v float32) int {
	l := int(math.Round(float64(v)))
	return min(max(l, 0), Levels-1)
}

// Equalize spreads the intensities over [0, 255] using the cumulative histogram:
//
//	out = round((CDF[in] - CDF_min) / (N - CDF_min) · 255)
//
// where CDF_min is the count of the darkest occupied level. An image with a
// single gray level is returned unchanged.
func Equalize(im *raster.Image) (*raster.Image, error) {
	hist, err := Histogram(im)
	if err != nil {
		return nil, err
	}

	cdf := floats.CumSum(make([]float64, Levels), hist)
	total := cdf[Levels-1]
	cdfMin := 0.0
	for _, c := range cdf {
		if c > 0 {
			cdfMin = c
			break
		}
	}
	if total == cdfMin {
		return im.Copy(), nil
	}

	var lut [Levels]float32
	for i, c := range cdf {
		lut[i] = float32(math.Round(math.Max(c-cdfMin, 0) / (total - cdfMin) * raster.MaxIntensity))
	}

	out := raster.New(im.Width, im.Height)
	for i, v := range im.Data {
		out.Data[i] = lut[level(v)]
	}
	return out, nil
}

// OtsuLevel returns the gray level that maximises the between-class variance
//
//	σ_B² = w0·w1·(μ0 - μ1)²
//
// where class 0 holds levels <= t and class 1 the rest.
func OtsuLevel(im *raster.Image) (int, error) {
	hist, err := Histogram(im)
	if err != nil {
		return 0, err
	}

	weights := make([]float64, Levels)
	for i := range weights {
		weights[i] = float64(i)
	}
	total := floats.Sum(hist)
	sumAll := floats.Dot(weights, hist)

	best, bestVar := 0, -1.0
	w0, sum0 := 0.0, 0.0
	for t := 0; t < Levels; t++ {
		w0 += hist[t]
		sum0 += float64(t) * hist[t]
		w1 := total - w0
		if w0 == 0 || w1 == 0 {
			continue
		}
		mu0 := sum0 / w0
		mu1 := (sumAll - sum0) / w1
		between := w0 * w1 * (mu0 - mu1) * (mu0 - mu1)
		if between > bestVar {
			best, bestVar = t, between
		}
	}
	return best, nil
}

// OtsuThreshold binarises the image at the Otsu level.
func OtsuThreshold(im *raster.Image) (*raster.Image, int, error) {
	t, err := OtsuLevel(im)
	if err != nil {
		return nil, 0, err
	}
	out, err := Threshold(im, float32(t))
	if err != nil {
		return nil, 0, err
	}
	return out, t, nil
}
