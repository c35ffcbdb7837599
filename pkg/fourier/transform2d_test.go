package fourier

import (
	"math/rand"
	"testing"

	dspfft "github.com/mjibson/go-dsp/fft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uzunenes/piciem/internal/testutil"
	"github.com/uzunenes/piciem/pkg/raster"
	"github.com/uzunenes/piciem/pkg/signal"
)

// TestFFT2Impulse verifies that the 2D transform of an impulse is flat.
func TestFFT2Impulse(t *testing.T) {
	rows, cols := 4, 8
	x := signal.New(rows * cols)
	x[0] = 1

	got := signal.New(rows * cols)
	require.NoError(t, FFT2(got, x, rows, cols, Forward))
	for i, v := range got {
		assert.InDelta(t, 1.0, real(v), 1e-6, "sample %d", i)
		assert.InDelta(t, 0.0, imag(v), 1e-6, "sample %d", i)
	}
}

// TestFFT2MatchesDFT2 checks that both engines agree on a rectangular signal.
func TestFFT2MatchesDFT2(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	rows, cols := 8, 16
	x := testutil.RandomSignal(rng, rows*cols)

	viaFFT := signal.New(rows * cols)
	viaDFT := signal.New(rows * cols)
	require.NoError(t, FFT2(viaFFT, x, rows, cols, Forward))
	require.NoError(t, DFT2(viaDFT, x, rows, cols, Forward))
	testutil.AssertSignalsInDelta(t, viaDFT, viaFFT, 1e-3)
}

// TestDFT2MatchesGoDSP compares a non-power-of-two 2D DFT with go-dsp.
func TestDFT2MatchesGoDSP(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	rows, cols := 3, 5
	x := testutil.RandomSignal(rng, rows*cols)

	grid := make([][]complex128, rows)
	for r := range grid {
		grid[r] = testutil.ToComplex128(x[r*cols : (r+1)*cols])
	}
	ref := dspfft.FFT2(grid)
	want := make([]complex128, 0, rows*cols)
	for _, row := range ref {
		want = append(want, row...)
	}

	got := signal.New(rows * cols)
	require.NoError(t, DFT2(got, x, rows, cols, Forward))
	testutil.AssertComplexInDelta(t, want, got, 1e-4)
}

// TestTransform2DRoundTrip verifies the inverse for both engines and for aliasing buffers.
func TestTransform2DRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	tests := []struct {
		name       string
		rows, cols int
		engine     Engine
	}{
		{"FFT square", 16, 16, EngineFFT},
		{"FFT wide", 4, 32, EngineFFT},
		{"DFT odd", 5, 7, EngineDFT},
		{"DFT single row", 1, 6, EngineDFT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := testutil.RandomSignal(rng, tt.rows*tt.cols)
			buf := x.Clone()
			require.NoError(t, Transform2D(buf, buf, tt.rows, tt.cols, Forward, tt.engine))
			require.NoError(t, Transform2D(buf, buf, tt.rows, tt.cols, Inverse, tt.engine))
			testutil.AssertSignalsInDelta(t, x, buf, testutil.SignalTolerance)
		})
	}
}

// TestFFT2ConstantImage is the 8x8 all-100 scenario: a forward and inverse
// transform must reproduce the image, with all energy in the DC term.
func TestFFT2ConstantImage(t *testing.T) {
	im := raster.New(8, 8)
	im.Fill(100)

	x, err := signal.FromImage(im)
	require.NoError(t, err)

	freq := signal.New(len(x))
	require.NoError(t, FFT2(freq, x, 8, 8, Forward))
	assert.InDelta(t, 6400.0, real(freq[0]), 1e-2)
	for i := 1; i < len(freq); i++ {
		assert.InDelta(t, 0.0, real(freq[i]), 1e-3, "sample %d", i)
		assert.InDelta(t, 0.0, imag(freq[i]), 1e-3, "sample %d", i)
	}

	back := signal.New(len(x))
	require.NoError(t, FFT2(back, freq, 8, 8, Inverse))
	out, err := signal.ToImage(back, 8, 8, 8, 8)
	require.NoError(t, err)
	testutil.AssertImagesInDelta(t, im, out, 1e-3)
}

// TestTransform2DErrors covers precondition failures and the zeroed output.
func TestTransform2DErrors(t *testing.T) {
	t.Run("non power of two leaves zero output", func(t *testing.T) {
		src := signal.New(12)
		for i := range src {
			src[i] = 1
		}
		dst := signal.New(12)
		for i := range dst {
			dst[i] = 7
		}
		err := FFT2(dst, src, 3, 4, Forward)
		assert.ErrorIs(t, err, ErrNotPowerOfTwo)
		for i, v := range dst {
			assert.Equal(t, complex64(0), v, "sample %d", i)
		}
	})
	t.Run("dimension mismatch", func(t *testing.T) {
		err := FFT2(signal.New(16), signal.New(16), 2, 4, Forward)
		assert.ErrorIs(t, err, signal.ErrDimensionMismatch)
	})
	t.Run("nil destination", func(t *testing.T) {
		err := DFT2(nil, signal.New(4), 2, 2, Forward)
		assert.ErrorIs(t, err, signal.ErrNilSignal)
	})
	t.Run("unknown engine", func(t *testing.T) {
		err := Transform2D(signal.New(4), signal.New(4), 2, 2, Forward, Engine(9))
		assert.Error(t, err)
	})
}

// BenchmarkFFT2 benchmarks a 256x256 2D FFT.
func BenchmarkFFT2(b *testing.B) {
	x := testutil.RandomSignal(rand.New(rand.NewSource(1)), 256*256)
	dst := signal.New(len(x))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = FFT2(dst, x, 256, 256, Forward)
	}
}
