// Package metrics compares a processed image against a reference.
package metrics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/uzunenes/piciem/pkg/enhance"
	"github.com/uzunenes/piciem/pkg/raster"
)

// ErrSizeMismatch is returned when the two images differ in size.
var ErrSizeMismatch = errors.New("metrics: image sizes differ")

// SSIM stabilising constants for an 8-bit dynamic range.
const (
	ssimK1 = 0.01
	ssimK2 = 0.03
)

// Metrics holds the fidelity measures of one comparison.
type Metrics struct {
	// MSE is the mean squared pixel difference
	MSE float64

	// RMSE is the square root of MSE, in gray levels
	RMSE float64

	// PSNR is the peak signal-to-noise ratio in dB, +Inf for identical images
	PSNR float64

	// SSIM is the structural similarity computed over the whole image.
	// Values range from -1 to 1, with 1 indicating identical images.
	SSIM float64

	// Correlation is the Pearson correlation of the pixel values. It is 0
	// when either image is constant.
	Correlation float64

	// MutualInformation is the Gaussian approximation
	// 0.5·ln(σx²σy² / (σx²σy² - cov²)), 0 when undefined.
	MutualInformation float64

	// EntropyDiff is the absolute difference of the gray-level entropies in bits.
	EntropyDiff float64
}

// String renders the metrics on one line.
func (m Metrics) String() string {
	return fmt.Sprintf("MSE=%.4f RMSE=%.4f PSNR=%.2fdB SSIM=%.4f r=%.4f MI=%.4f dH=%.4f",
		m.MSE, m.RMSE, m.PSNR, m.SSIM, m.Correlation, m.MutualInformation, m.EntropyDiff)
}

// Compare measures how far got is from ref.
func Compare(ref, got *raster.Image) (Metrics, error) {
	if err := ref.Validate(); err != nil {
		return Metrics{}, err
	}
	if err := got.Validate(); err != nil {
		return Metrics{}, err
	}
	if ref.Width != got.Width || ref.Height != got.Height {
		return Metrics{}, fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, ref.Width, ref.Height, got.Width, got.Height)
	}

	x, y := widen(ref.Data), widen(got.Data)
	var m Metrics
	m.MSE = meanSquaredError(x, y)
	m.RMSE = math.Sqrt(m.MSE)
	m.PSNR = psnr(m.MSE)

	muX, varX := stat.MeanVariance(x, nil)
	muY, varY := stat.MeanVariance(y, nil)
	cov := stat.Covariance(x, y, nil)
	m.SSIM = ssim(muX, muY, varX, varY, cov)
	if varX > 0 && varY > 0 {
		m.Correlation = stat.Correlation(x, y, nil)
		if det := varX*varY - cov*cov; det > 0 {
			m.MutualInformation = 0.5 * math.Log(varX*varY/det)
		}
	}

	hx, err := entropy(ref)
	if err != nil {
		return Metrics{}, err
	}
	hy, err := entropy(got)
	if err != nil {
		return Metrics{}, err
	}
	m.EntropyDiff = math.Abs(hx - hy)
	return m, nil
}

func widen(data []float32) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}
	return out
}

func meanSquaredError(x, y []float64) float64 {
	diff := make([]float64, len(x))
	floats.SubTo(diff, x, y)
	return floats.Dot(diff, diff) / float64(len(x))
}

func psnr(mse float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(raster.MaxIntensity*raster.MaxIntensity/mse)
}

func ssim(muX, muY, varX, varY, cov float64) float64 {
	c1 := (ssimK1 * raster.MaxIntensity) * (ssimK1 * raster.MaxIntensity)
	c2 := (ssimK2 * raster.MaxIntensity) * (ssimK2 * raster.MaxIntensity)

	num := (2*muX*muY + c1) * (2*cov + c2)
	den := (muX*muX + muY*muY + c1) * (varX + varY + c2)
	return num / den
}

// entropy returns the Shannon entropy of the gray-level histogram in bits.
func entropy(im *raster.Image) (float64, error) {
	hist, err := enhance.Histogram(im)
	if err != nil {
		return 0, err
	}
	floats.Scale(1/floats.Sum(hist), hist)
	return stat.Entropy(hist) / math.Ln2, nil
}
