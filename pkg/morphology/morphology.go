// Package morphology implements grayscale erosion and dilation with a flat
// square structuring element, and the opening and closing built from them.
package morphology

import (
	"github.com/uzunenes/piciem/pkg/raster"
	"github.com/uzunenes/piciem/pkg/spatial"
)

// Erode replaces every pixel by the minimum of its in-bounds k x k neighbourhood.
func Erode(im *raster.Image, k int) (*raster.Image, error) {
	return rank(im, k, func(a, b float32) bool { return a < b })
}

// Dilate replaces every pixel by the maximum of its in-bounds k x k neighbourhood.
func Dilate(im *raster.Image, k int) (*raster.Image, error) {
	return rank(im, k, func(a, b float32) bool { return a > b })
}

// Open erodes then dilates, removing bright details smaller than k.
func Open(im *raster.Image, k int) (*raster.Image, error) {
	eroded, err := Erode(im, k)
	if err != nil {
		return nil, err
	}
	return Dilate(eroded, k)
}

// Close dilates then erodes, filling dark details smaller than k.
func Close(im *raster.Image, k int) (*raster.Image, error) {
	dilated, err := Dilate(im, k)
	if err != nil {
		return nil, err
	}
	return Erode(dilated, k)
}

// rank keeps, for every pixel, the neighbour for which better reports true
// against all others.
func rank(im *raster.Image, k int, better func(a, b float32) bool) (*raster.Image, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	if err := spatial.CheckSize(k); err != nil {
		return nil, err
	}

	half := k / 2
	out := raster.New(im.Width, im.Height)
	for r := 0; r < im.Height; r++ {
		for c := 0; c < im.Width; c++ {
			best := im.At(r, c)
			for rr := max(r-half, 0); rr <= min(r+half, im.Height-1); rr++ {
				for cc := max(c-half, 0); cc <= min(c+half, im.Width-1); cc++ {
					if v := im.At(rr, cc); better(v, best) {
						best = v
					}
				}
			}
			out.Set(r, c, best)
		}
	}
	return out, nil
}
