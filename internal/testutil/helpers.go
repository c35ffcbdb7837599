// Package testutil provides reusable test helpers for piciem packages.
package testutil

import (
	"math"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uzunenes/piciem/pkg/pgm"
	"github.com/uzunenes/piciem/pkg/raster"
	"github.com/uzunenes/piciem/pkg/signal"
)

// Default tolerances for various test scenarios.
const (
	// SignalTolerance is the absolute tolerance for unit-magnitude complex64 samples.
	SignalTolerance = 1e-4

	// PixelTolerance is the absolute tolerance for 0..255 intensities after a round trip.
	PixelTolerance = 1e-2
)

// AssertSignalsInDelta verifies that two signals have the same length and that
// the real and imaginary parts of every sample differ by at most tolerance.
func AssertSignalsInDelta(t *testing.T, want, got signal.Signal, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, got, len(want), msgAndArgs...) {
		return false
	}
	for i := range want {
		if !assert.InDelta(t, real(want[i]), real(got[i]), tolerance, "real part of sample %d", i) {
			return false
		}
		if !assert.InDelta(t, imag(want[i]), imag(got[i]), tolerance, "imaginary part of sample %d", i) {
			return false
		}
	}
	return true
}

// AssertComplexInDelta compares a complex128 reference with a complex64 result.
func AssertComplexInDelta(t *testing.T, want []complex128, got signal.Signal, tolerance float64) bool {
	t.Helper()
	if !assert.Len(t, got, len(want)) {
		return false
	}
	for i := range want {
		if !assert.InDelta(t, real(want[i]), float64(real(got[i])), tolerance, "real part of sample %d", i) {
			return false
		}
		if !assert.InDelta(t, imag(want[i]), float64(imag(got[i])), tolerance, "imaginary part of sample %d", i) {
			return false
		}
	}
	return true
}

// AssertImagesInDelta verifies that two images have equal dimensions and
// that every pixel differs by at most tolerance.
func AssertImagesInDelta(t *testing.T, want, got *raster.Image, tolerance float64) bool {
	t.Helper()
	if !assert.NotNil(t, got) {
		return false
	}
	if !assert.Equal(t, want.Width, got.Width, "width") || !assert.Equal(t, want.Height, got.Height, "height") {
		return false
	}
	for i := range want.Data {
		if !assert.InDelta(t, want.Data[i], got.Data[i], tolerance,
			"pixel (%d,%d)", i/want.Width, i%want.Width) {
			return false
		}
	}
	return true
}

// AssertAllInRange verifies that every pixel is within [minVal, maxVal].
func AssertAllInRange(t *testing.T, im *raster.Image, minVal, maxVal float32) bool {
	t.Helper()
	for i, v := range im.Data {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"pixel %d = %f is outside [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// RandomSignal returns n samples with real and imaginary parts uniform in [-1, 1).
func RandomSignal(rng *rand.Rand, n int) signal.Signal {
	s := signal.New(n)
	for i := range s {
		s[i] = complex(float32(2*rng.Float64()-1), float32(2*rng.Float64()-1))
	}
	return s
}

// RandomImage returns a width x height image with integer intensities in [0, 255].
func RandomImage(rng *rand.Rand, width, height int) *raster.Image {
	im := raster.New(width, height)
	for i := range im.Data {
		im.Data[i] = float32(rng.Intn(256))
	}
	return im
}

// ToComplex128 widens a signal for comparison with float64 reference libraries.
func ToComplex128(s signal.Signal) []complex128 {
	out := make([]complex128, len(s))
	for i, v := range s {
		out[i] = complex128(v)
	}
	return out
}

// MaxAbs returns the largest sample magnitude of x.
func MaxAbs(x []complex128) float64 {
	m := 0.0
	for _, v := range x {
		m = math.Max(m, math.Hypot(real(v), imag(v)))
	}
	return m
}

// TempPGM writes im as a binary graymap into a per-test directory and returns its path.
func TempPGM(t *testing.T, name string, im *raster.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, pgm.WriteFile(path, pgm.New(im, "")))
	return path
}
