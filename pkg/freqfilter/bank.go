package freqfilter

import (
	"fmt"
	"math"
)

// butterworthMinDistance keeps the high-pass Butterworth gain finite at the centre.
const butterworthMinDistance = 1e-4

// IdealLowPass passes everything within Cutoff of the centre: H = 1 if D <= Cutoff, else 0.
type IdealLowPass struct {
	Cutoff float64
}

// Gain returns the ideal low-pass transfer value at distance d from the centre.
func (f IdealLowPass) Gain(d float64) float64 {
	if d <= f.Cutoff {
		return 1
	}
	return 0
}

// Validate reports an ErrInvalidParameter for unusable cutoffs.
func (f IdealLowPass) Validate() error { return checkCutoff(f.Cutoff, true) }

// Name returns "ideal-lowpass".
func (IdealLowPass) Name() string { return "ideal-lowpass" }

// IdealHighPass blocks everything within Cutoff of the centre: H = 0 if D <= Cutoff, else 1.
type IdealHighPass struct {
	Cutoff float64
}

// Gain returns the ideal high-pass transfer value at distance d from the centre.
func (f IdealHighPass) Gain(d float64) float64 {
	if d <= f.Cutoff {
		return 0
	}
	return 1
}

// Validate reports an ErrInvalidParameter for unusable cutoffs.
func (f IdealHighPass) Validate() error { return checkCutoff(f.Cutoff, true) }

// Name returns "ideal-highpass".
func (IdealHighPass) Name() string { return "ideal-highpass" }

// ButterworthLowPass is H = 1 / (1 + (D/Cutoff)^(2·Order)).
type ButterworthLowPass struct {
	Cutoff float64
	Order  int
}

// Gain returns the Butterworth low-pass transfer value at distance d from the centre.
func (f ButterworthLowPass) Gain(d float64) float64 {
	return 1 / (1 + math.Pow(d/f.Cutoff, 2*float64(f.Order)))
}

// Validate reports an ErrInvalidParameter for unusable cutoff or order.
func (f ButterworthLowPass) Validate() error { return checkButterworth(f.Cutoff, f.Order) }

// Name returns "butterworth-lowpass".
func (ButterworthLowPass) Name() string { return "butterworth-lowpass" }

// ButterworthHighPass is H = 1 / (1 + (Cutoff/D)^(2·Order)), with D clamped to 1e-4.
type ButterworthHighPass struct {
	Cutoff float64
	Order  int
}

// Gain returns the Butterworth high-pass transfer value at distance d from the centre.
func (f ButterworthHighPass) Gain(d float64) float64 {
	d = math.Max(d, butterworthMinDistance)
	return 1 / (1 + math.Pow(f.Cutoff/d, 2*float64(f.Order)))
}

// Validate reports an ErrInvalidParameter for unusable cutoff or order.
func (f ButterworthHighPass) Validate() error { return checkButterworth(f.Cutoff, f.Order) }

// Name returns "butterworth-highpass".
func (ButterworthHighPass) Name() string { return "butterworth-highpass" }

// GaussianLowPass is H = exp(-D² / (2σ²)).
type GaussianLowPass struct {
	Sigma float64
}

// Gain returns the Gaussian low-pass transfer value at distance d from the centre.
func (f GaussianLowPass) Gain(d float64) float64 {
	return math.Exp(-(d * d) / (2 * f.Sigma * f.Sigma))
}

// Validate reports an ErrInvalidParameter for unusable sigma.
func (f GaussianLowPass) Validate() error { return checkSigma(f.Sigma) }

// Name returns "gaussian-lowpass".
func (GaussianLowPass) Name() string { return "gaussian-lowpass" }

// GaussianHighPass is H = 1 - exp(-D² / (2σ²)).
type GaussianHighPass struct {
	Sigma float64
}

// Gain returns the Gaussian high-pass transfer value at distance d from the centre.
func (f GaussianHighPass) Gain(d float64) float64 {
	return 1 - math.Exp(-(d*d)/(2*f.Sigma*f.Sigma))
}

// Validate reports an ErrInvalidParameter for unusable sigma.
func (f GaussianHighPass) Validate() error { return checkSigma(f.Sigma) }

// Name returns "gaussian-highpass".
func (GaussianHighPass) Name() string { return "gaussian-highpass" }

// Homomorphic is the Gaussian-shaped emphasis filter used for homomorphic
// filtering of log-intensity images:
//
//	H = (GammaHigh - GammaLow) · (1 - exp(-C·D²/D0²)) + GammaLow
//
// Unlike the other filters its gain ranges over [GammaLow, GammaHigh], which
// is usually not within [0, 1].
type Homomorphic struct {
	D0        float64
	GammaLow  float64
	GammaHigh float64
	C         float64
}

// Gain returns the emphasis transfer value at distance d from the centre.
func (f Homomorphic) Gain(d float64) float64 {
	return (f.GammaHigh-f.GammaLow)*(1-math.Exp(-f.C*d*d/(f.D0*f.D0))) + f.GammaLow
}

// Validate reports an ErrInvalidParameter for unusable D0, C or gammas.
func (f Homomorphic) Validate() error {
	switch {
	case !(f.D0 > 0) || math.IsInf(f.D0, 0):
		return fmt.Errorf("%w: homomorphic D0 must be positive, got %g", ErrInvalidParameter, f.D0)
	case !(f.C > 0) || math.IsInf(f.C, 0):
		return fmt.Errorf("%w: homomorphic c must be positive, got %g", ErrInvalidParameter, f.C)
	case math.IsNaN(f.GammaLow) || math.IsNaN(f.GammaHigh):
		return fmt.Errorf("%w: homomorphic gammas must be numbers", ErrInvalidParameter)
	}
	return nil
}

// Name returns "homomorphic".
func (Homomorphic) Name() string { return "homomorphic" }

func checkCutoff(cutoff float64, allowZero bool) error {
	if math.IsNaN(cutoff) || cutoff < 0 || (!allowZero && cutoff == 0) {
		return fmt.Errorf("%w: cutoff %g", ErrInvalidParameter, cutoff)
	}
	return nil
}

func checkButterworth(cutoff float64, order int) error {
	if err := checkCutoff(cutoff, false); err != nil {
		return err
	}
	if math.IsInf(cutoff, 0) {
		return fmt.Errorf("%w: cutoff %g", ErrInvalidParameter, cutoff)
	}
	if order < 1 {
		return fmt.Errorf("%w: order %d", ErrInvalidParameter, order)
	}
	return nil
}

func checkSigma(sigma float64) error {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return fmt.Errorf("%w: sigma %g", ErrInvalidParameter, sigma)
	}
	return nil
}
