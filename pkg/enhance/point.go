// Package enhance provides intensity transforms: per-pixel point operations
// and histogram-based equalisation and thresholding. Every function returns a
// new image and leaves its input untouched.
package enhance

import (
	"fmt"
	"math"

	"github.com/uzunenes/piciem/pkg/raster"
)

// contrastPivot is the gray level left fixed by Contrast.
const contrastPivot = 128.0

// mapPixels applies fn to every pixel of a validated copy of im.
func mapPixels(im *raster.Image, fn func(float32) float32) (*raster.Image, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	out := raster.New(im.Width, im.Height)
	for i, v := range im.Data {
		out.Data[i] = fn(v)
	}
	return out, nil
}

// Brightness adds delta to every pixel: out = in + delta.
func Brightness(im *raster.Image, delta float32) (*raster.Image, error) {
	return mapPixels(im, func(v float32) float32 { return v + delta })
}

// Contrast stretches intensities about mid-gray: out = (in - 128)·factor + 128.
func Contrast(im *raster.Image, factor float32) (*raster.Image, error) {
	return mapPixels(im, func(v float32) float32 { return (v-contrastPivot)*factor + contrastPivot })
}

// Invert produces the negative image: out = 255 - in.
func Invert(im *raster.Image) (*raster.Image, error) {
	return mapPixels(im, func(v float32) float32 { return raster.MaxIntensity - v })
}

// Threshold binarises the image: out = 255 if in > level, else 0.
func Threshold(im *raster.Image, level float32) (*raster.Image, error) {
	return mapPixels(im, func(v float32) float32 {
		if v > level {
			return raster.MaxIntensity
		}
		return 0
	})
}

// Gamma applies power-law correction: out = 255·(in/255)^gamma.
// gamma < 1 brightens and gamma > 1 darkens.
func Gamma(im *raster.Image, gamma float64) (*raster.Image, error) {
	if !(gamma > 0) {
		return nil, fmt.Errorf("enhance: gamma must be positive, got %g", gamma)
	}
	return mapPixels(im, func(v float32) float32 {
		return float32(raster.MaxIntensity * math.Pow(float64(v)/raster.MaxIntensity, gamma))
	})
}

// LogTransform compresses the dynamic range with out = c·ln(1 + in/255) and
// rescales the result into [0, 255].
func LogTransform(im *raster.Image, c float64) (*raster.Image, error) {
	out, err := mapPixels(im, func(v float32) float32 {
		return float32(c * math.Log1p(float64(v)/raster.MaxIntensity))
	})
	if err != nil {
		return nil, err
	}
	out.Normalize(raster.MaxIntensity)
	return out, nil
}
