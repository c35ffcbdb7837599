package fourier

import (
	"fmt"
	"math/rand"
	"testing"

	dspfft "github.com/mjibson/go-dsp/fft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gfourier "gonum.org/v1/gonum/dsp/fourier"

	"github.com/uzunenes/piciem/internal/testutil"
	"github.com/uzunenes/piciem/pkg/signal"
)

// TestFFTKnownTransforms checks transforms that can be computed by hand.
func TestFFTKnownTransforms(t *testing.T) {
	tests := []struct {
		name  string
		input signal.Signal
		want  signal.Signal
	}{
		{"Impulse", signal.Signal{1, 0, 0, 0}, signal.Signal{1, 1, 1, 1}},
		{"Constant", signal.Signal{1, 1, 1, 1}, signal.Signal{4, 0, 0, 0}},
		{"Alternating", signal.Signal{1, -1, 1, -1}, signal.Signal{0, 0, 4, 0}},
		{"Single sample", signal.Signal{complex(3, -2)}, signal.Signal{complex(3, -2)}},
		{"Shifted impulse", signal.Signal{0, 1, 0, 0}, signal.Signal{1, complex(0, -1), -1, complex(0, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := signal.New(len(tt.input))
			require.NoError(t, FFT(got, tt.input, Forward))
			testutil.AssertSignalsInDelta(t, tt.want, got, 1e-6)

			got = signal.New(len(tt.input))
			require.NoError(t, DFT(got, tt.input, Forward))
			testutil.AssertSignalsInDelta(t, tt.want, got, 1e-5)
		})
	}
}

// TestRoundTrip verifies Inverse(Forward(x)) == x for both engines.
func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	engines := map[string]func(dst, src signal.Signal, dir Direction) error{
		"FFT": FFT,
		"DFT": DFT,
	}

	for name, transform := range engines {
		for _, n := range []int{1, 2, 4, 16, 64, 256} {
			t.Run(fmt.Sprintf("%s/%d", name, n), func(t *testing.T) {
				x := testutil.RandomSignal(rng, n)
				freq := signal.New(n)
				back := signal.New(n)

				require.NoError(t, transform(freq, x, Forward))
				require.NoError(t, transform(back, freq, Inverse))
				testutil.AssertSignalsInDelta(t, x, back, testutil.SignalTolerance)
			})
		}
	}
}

// TestDFTRoundTripArbitraryLength covers lengths the FFT rejects.
func TestDFTRoundTripArbitraryLength(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, n := range []int{3, 5, 7, 12, 100} {
		x := testutil.RandomSignal(rng, n)
		freq := signal.New(n)
		back := signal.New(n)
		require.NoError(t, DFT(freq, x, Forward))
		require.NoError(t, DFT(back, freq, Inverse))
		testutil.AssertSignalsInDelta(t, x, back, testutil.SignalTolerance, "n=%d", n)
	}
}

// TestFFTMatchesDFT checks that both engines agree for power-of-two lengths.
func TestFFTMatchesDFT(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for n := 1; n <= 256; n <<= 1 {
		x := testutil.RandomSignal(rng, n)
		viaFFT := signal.New(n)
		viaDFT := signal.New(n)
		require.NoError(t, FFT(viaFFT, x, Forward))
		require.NoError(t, DFT(viaDFT, x, Forward))
		testutil.AssertSignalsInDelta(t, viaDFT, viaFFT, 1e-3, "n=%d", n)
	}
}

// TestFFTMatchesGonum compares against gonum's complex FFT.
func TestFFTMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for _, n := range []int{2, 8, 32, 128, 512} {
		x := testutil.RandomSignal(rng, n)
		want := gfourier.NewCmplxFFT(n).Coefficients(nil, testutil.ToComplex128(x))

		got := signal.New(n)
		require.NoError(t, FFT(got, x, Forward))
		testutil.AssertComplexInDelta(t, want, got, 1e-5*testutil.MaxAbs(want)+1e-6)
	}
}

// TestDFTMatchesGoDSP compares arbitrary-length DFTs against go-dsp.
func TestDFTMatchesGoDSP(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, n := range []int{3, 6, 10, 17, 31} {
		x := testutil.RandomSignal(rng, n)
		want := dspfft.FFT(testutil.ToComplex128(x))

		got := signal.New(n)
		require.NoError(t, DFT(got, x, Forward))
		testutil.AssertComplexInDelta(t, want, got, 1e-4)
	}
}

// TestFFTLinearity verifies FFT(a*x + b*y) == a*FFT(x) + b*FFT(y).
func TestFFTLinearity(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	const n = 64
	a, b := complex64(complex(2.5, 0)), complex64(complex(-0.75, 0.5))

	x := testutil.RandomSignal(rng, n)
	y := testutil.RandomSignal(rng, n)
	mix := signal.New(n)
	for i := range mix {
		mix[i] = a*x[i] + b*y[i]
	}

	fx, fy, fmix := signal.New(n), signal.New(n), signal.New(n)
	require.NoError(t, FFT(fx, x, Forward))
	require.NoError(t, FFT(fy, y, Forward))
	require.NoError(t, FFT(fmix, mix, Forward))

	want := signal.New(n)
	for i := range want {
		want[i] = a*fx[i] + b*fy[i]
	}
	testutil.AssertSignalsInDelta(t, want, fmix, 1e-3)
}

// TestInPlace verifies that dst may be the same buffer as src.
func TestInPlace(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	x := testutil.RandomSignal(rng, 32)

	want := signal.New(32)
	require.NoError(t, FFT(want, x, Forward))

	buf := x.Clone()
	require.NoError(t, FFT(buf, buf, Forward))
	testutil.AssertSignalsInDelta(t, want, buf, 1e-6)

	require.NoError(t, DFT(want, x, Forward))
	buf = x.Clone()
	require.NoError(t, DFT(buf, buf, Forward))
	testutil.AssertSignalsInDelta(t, want, buf, 1e-6)
}

// TestBitReverseCopy checks the permutation for N=8.
func TestBitReverseCopy(t *testing.T) {
	src := signal.Signal{0, 1, 2, 3, 4, 5, 6, 7}
	want := signal.Signal{0, 4, 2, 6, 1, 5, 3, 7}

	dst := signal.New(8)
	bitReverseCopy(dst, src)
	assert.Equal(t, want, dst)

	bitReverseCopy(src, src)
	assert.Equal(t, want, src)
}

// TestErrors covers precondition violations.
func TestErrors(t *testing.T) {
	t.Run("FFT not power of two", func(t *testing.T) {
		err := FFT(signal.New(6), signal.New(6), Forward)
		assert.ErrorIs(t, err, ErrNotPowerOfTwo)
	})
	t.Run("nil input", func(t *testing.T) {
		assert.ErrorIs(t, FFT(signal.New(4), nil, Forward), signal.ErrNilSignal)
		assert.ErrorIs(t, DFT(nil, signal.New(4), Forward), signal.ErrNilSignal)
	})
	t.Run("length mismatch", func(t *testing.T) {
		assert.ErrorIs(t, DFT(signal.New(3), signal.New(4), Forward), signal.ErrDimensionMismatch)
	})
	t.Run("unknown engine", func(t *testing.T) {
		_, err := ParseEngine("wavelet")
		assert.Error(t, err)
	})
}

// TestParseEngine checks the engine names used by the configuration.
func TestParseEngine(t *testing.T) {
	e, err := ParseEngine("fft")
	require.NoError(t, err)
	assert.Equal(t, EngineFFT, e)

	e, err = ParseEngine("DFT")
	require.NoError(t, err)
	assert.Equal(t, EngineDFT, e)
	assert.Equal(t, "dft", e.String())
	assert.Equal(t, "inverse", Inverse.String())
}

// BenchmarkFFT benchmarks a 1024-point FFT.
func BenchmarkFFT(b *testing.B) {
	x := testutil.RandomSignal(rand.New(rand.NewSource(1)), 1024)
	dst := signal.New(len(x))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = FFT(dst, x, Forward)
	}
}

// BenchmarkDFT benchmarks a 1024-point DFT for comparison.
func BenchmarkDFT(b *testing.B) {
	x := testutil.RandomSignal(rand.New(rand.NewSource(1)), 1024)
	dst := signal.New(len(x))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = DFT(dst, x, Forward)
	}
}
