package enhance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uzunenes/piciem/internal/testutil"
	"github.com/uzunenes/piciem/pkg/raster"
)

func ramp() *raster.Image {
	im, _ := raster.FromData(4, 1, []float32{0, 64, 128, 255})
	return im
}

func TestPointOperations(t *testing.T) {
	tests := []struct {
		name string
		op   func(*raster.Image) (*raster.Image, error)
		want []float32
	}{
		{"brightness", func(im *raster.Image) (*raster.Image, error) { return Brightness(im, 10) },
			[]float32{10, 74, 138, 265}},
		{"contrast", func(im *raster.Image) (*raster.Image, error) { return Contrast(im, 2) },
			[]float32{-128, 0, 128, 382}},
		{"invert", Invert,
			[]float32{255, 191, 127, 0}},
		{"threshold", func(im *raster.Image) (*raster.Image, error) { return Threshold(im, 64) },
			[]float32{0, 0, 255, 255}},
		{"gamma one", func(im *raster.Image) (*raster.Image, error) { return Gamma(im, 1) },
			[]float32{0, 64, 128, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ramp()
			got, err := tt.op(in)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, got.Data, 1e-3)
			assert.Equal(t, ramp().Data, in.Data, "input must be untouched")
		})
	}
}

func TestGamma(t *testing.T) {
	got, err := Gamma(ramp(), 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 255*math.Sqrt(64.0/255), got.Data[1], 1e-3)
	assert.Greater(t, got.Data[1], float32(64), "gamma < 1 brightens")

	_, err = Gamma(ramp(), 0)
	assert.Error(t, err)
	_, err = Gamma(nil, 1)
	assert.ErrorIs(t, err, raster.ErrNilImage)
}

func TestLogTransform(t *testing.T) {
	got, err := LogTransform(ramp(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 0, got.Data[0], 1e-4)
	assert.InDelta(t, 255, got.Data[3], 1e-3)
	assert.InDelta(t, 255*math.Log1p(64.0/255)/math.Ln2, got.Data[1], 1e-2)
}

func TestHistogram(t *testing.T) {
	im, _ := raster.FromData(3, 2, []float32{0, 0.4, 1.6, 255, 300, -5})
	hist, err := Histogram(im)
	require.NoError(t, err)
	assert.Len(t, hist, Levels)
	assert.Equal(t, 3.0, hist[0])
	assert.Equal(t, 1.0, hist[2])
	assert.Equal(t, 2.0, hist[255])
}

// TestEqualizeTwoLevels checks that a two-level image spans the full range.
func TestEqualizeTwoLevels(t *testing.T) {
	im := raster.New(4, 4)
	im.Fill(100)
	im.FillBlock(0, 0, 2, 4, 120)

	got, err := Equalize(im)
	require.NoError(t, err)
	assert.Equal(t, float32(255), got.At(0, 0))
	assert.Equal(t, float32(0), got.At(3, 3))
	testutil.AssertAllInRange(t, got, 0, 255)
}

func TestEqualizeFormula(t *testing.T) {
	im, _ := raster.FromData(4, 1, []float32{10, 20, 20, 30})
	got, err := Equalize(im)
	require.NoError(t, err)
	// CDF = 1, 3, 4; CDF_min = 1; N = 4
	assert.Equal(t, []float32{0, 170, 170, 255}, got.Data)
}

func TestEqualizeConstant(t *testing.T) {
	im := raster.New(3, 3)
	im.Fill(42)
	got, err := Equalize(im)
	require.NoError(t, err)
	assert.Equal(t, im.Data, got.Data)
}

// TestOtsuBimodal checks that the Otsu level separates two clusters.
func TestOtsuBimodal(t *testing.T) {
	im := raster.New(10, 10)
	for i := range im.Data {
		if i%2 == 0 {
			im.Data[i] = float32(40 + i%5)
		} else {
			im.Data[i] = float32(200 + i%7)
		}
	}

	level, err := OtsuLevel(im)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, level, 44)
	assert.Less(t, level, 200)

	bin, got, err := OtsuThreshold(im)
	require.NoError(t, err)
	assert.Equal(t, level, got)
	for i, v := range bin.Data {
		if im.Data[i] < 100 {
			assert.Equal(t, float32(0), v)
		} else {
			assert.Equal(t, float32(255), v)
		}
	}
}

func TestOtsuConstant(t *testing.T) {
	im := raster.New(2, 2)
	im.Fill(7)
	level, err := OtsuLevel(im)
	require.NoError(t, err)
	assert.Equal(t, 0, level)

	_, _, err = OtsuThreshold(nil)
	assert.ErrorIs(t, err, raster.ErrNilImage)
}
