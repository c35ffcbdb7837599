// Package frequency runs images through the Fourier domain: transform,
// centre, filter, restore and invert.
//
// Every entry point follows the same staged layout:
//  1. Convert the image into a complex signal (real part = intensity)
//  2. Zero-pad to powers of two when the engine needs it or Options ask for it
//  3. Forward 2D transform
//  4. Shift the DC term to the centre, work on the spectrum, shift back
//  5. Inverse 2D transform and crop back to the input size
//
// A failed stage returns a wrapped error and no image.
package frequency

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/uzunenes/piciem/pkg/fourier"
	"github.com/uzunenes/piciem/pkg/freqfilter"
	"github.com/uzunenes/piciem/pkg/raster"
	"github.com/uzunenes/piciem/pkg/signal"
)

// Options controls how images are moved into the frequency domain.
type Options struct {
	// Engine selects the 1D transform used along rows and columns.
	Engine fourier.Engine

	// PadToPowerOfTwo forces zero padding to the next power of two in both
	// dimensions. With EngineFFT padding happens regardless when a dimension
	// is not a power of two.
	PadToPowerOfTwo bool

	// Logger receives debug entries for every stage. Nil means the logrus
	// standard logger.
	Logger logrus.FieldLogger
}

// DefaultOptions returns FFT-based options that log to the standard logger.
func DefaultOptions() Options {
	return Options{
		Engine: fourier.EngineFFT,
		Logger: logrus.StandardLogger(),
	}
}

// plan holds the geometry of one pipeline run.
type plan struct {
	engine        fourier.Engine
	width, height int
	rows, cols    int
	log           logrus.FieldLogger
}

func newPlan(im *raster.Image, opts Options) (*plan, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	if _, err := opts.Engine.Transform(); err != nil {
		return nil, err
	}

	p := &plan{
		engine: opts.Engine,
		width:  im.Width,
		height: im.Height,
		rows:   im.Height,
		cols:   im.Width,
		log:    opts.Logger,
	}
	if p.log == nil {
		p.log = logrus.StandardLogger()
	}
	if opts.PadToPowerOfTwo || !opts.Engine.Accepts(p.rows, p.cols) {
		p.rows = signal.NextPowerOfTwo(p.rows)
		p.cols = signal.NextPowerOfTwo(p.cols)
	}
	return p, nil
}

func (p *plan) padded() bool {
	return p.rows != p.height || p.cols != p.width
}

func (p *plan) stage(name string) {
	p.log.WithFields(logrus.Fields{
		"stage":  name,
		"rows":   p.rows,
		"cols":   p.cols,
		"engine": p.engine.String(),
	}).Debug("frequency stage")
}

// forward converts im into a (possibly padded) signal and transforms it in place.
func (p *plan) forward(im *raster.Image) (signal.Signal, error) {
	p.stage("load")
	s := signal.New(p.rows * p.cols)
	if err := signal.FromImageInto(s, im); err != nil {
		return nil, fmt.Errorf("frequency: load image: %w", err)
	}
	if p.padded() {
		p.stage("pad")
		if err := signal.ZeroPad(s, s[:p.height*p.width], p.height, p.width, p.rows, p.cols); err != nil {
			return nil, fmt.Errorf("frequency: pad: %w", err)
		}
	}

	p.stage("forward")
	if err := fourier.Transform2D(s, s, p.rows, p.cols, fourier.Forward, p.engine); err != nil {
		return nil, fmt.Errorf("frequency: forward transform: %w", err)
	}
	return s, nil
}

// inverse transforms a spectrum back in place and crops away any padding.
func (p *plan) inverse(spectrum signal.Signal) (signal.Signal, error) {
	p.stage("inverse")
	if err := fourier.Transform2D(spectrum, spectrum, p.rows, p.cols, fourier.Inverse, p.engine); err != nil {
		return nil, fmt.Errorf("frequency: inverse transform: %w", err)
	}
	if !p.padded() {
		return spectrum, nil
	}

	p.stage("crop")
	out, err := signal.Crop(spectrum, p.rows, p.cols, p.height, p.width)
	if err != nil {
		return nil, fmt.Errorf("frequency: crop: %w", err)
	}
	return out, nil
}

// filter centres the spectrum, applies f and moves the DC term back.
func (p *plan) filter(spectrum signal.Signal, f freqfilter.Filter) error {
	p.stage("center")
	if err := signal.Center(spectrum, p.rows, p.cols); err != nil {
		return fmt.Errorf("frequency: center: %w", err)
	}
	p.log.WithField("filter", f.Name()).Debug("applying filter")
	if err := freqfilter.Apply(spectrum, p.rows, p.cols, f); err != nil {
		return fmt.Errorf("frequency: apply %s: %w", f.Name(), err)
	}
	p.stage("uncenter")
	if err := signal.Uncenter(spectrum, p.rows, p.cols); err != nil {
		return fmt.Errorf("frequency: uncenter: %w", err)
	}
	return nil
}

// Filter applies a frequency-domain filter to im and returns the real part of
// the result clamped to [0, 255]. The output has the size of im whatever
// padding took place.
func Filter(im *raster.Image, f freqfilter.Filter, opts Options) (*raster.Image, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil filter", freqfilter.ErrInvalidParameter)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	p, err := newPlan(im, opts)
	if err != nil {
		return nil, err
	}

	spectrum, err := p.forward(im)
	if err != nil {
		return nil, err
	}
	if err := p.filter(spectrum, f); err != nil {
		return nil, err
	}
	spatial, err := p.inverse(spectrum)
	if err != nil {
		return nil, err
	}
	return signal.ToImage(spatial, p.height, p.width, p.width, p.height)
}

// RoundTrip transforms im forward and back without touching the spectrum.
// The difference to im measures the numerical error of the engine.
func RoundTrip(im *raster.Image, opts Options) (*raster.Image, error) {
	p, err := newPlan(im, opts)
	if err != nil {
		return nil, err
	}
	spectrum, err := p.forward(im)
	if err != nil {
		return nil, err
	}
	spatial, err := p.inverse(spectrum)
	if err != nil {
		return nil, err
	}
	return signal.ToImage(spatial, p.height, p.width, p.width, p.height)
}

// Spectrum returns the centred log-magnitude spectrum log(1+|F|) of im,
// normalised into [0, 255]. Its size is the padded transform size.
func Spectrum(im *raster.Image, opts Options) (*raster.Image, error) {
	p, err := newPlan(im, opts)
	if err != nil {
		return nil, err
	}
	spectrum, err := p.forward(im)
	if err != nil {
		return nil, err
	}
	p.stage("center")
	if err := signal.Center(spectrum, p.rows, p.cols); err != nil {
		return nil, fmt.Errorf("frequency: center: %w", err)
	}

	p.stage("magnitude")
	mag := signal.Magnitude(spectrum)
	for i, m := range mag {
		mag[i] = float32(math.Log1p(float64(m)))
	}
	out, err := raster.FromData(p.cols, p.rows, mag)
	if err != nil {
		return nil, err
	}
	out.Normalize(raster.MaxIntensity)
	return out, nil
}

// Mask renders the gains of f at the transform size Filter would use for im,
// so the centre of the mask lines up with the centred spectrum.
func Mask(im *raster.Image, f freqfilter.Filter, opts Options) (*raster.Image, error) {
	p, err := newPlan(im, opts)
	if err != nil {
		return nil, err
	}
	p.stage("mask")
	return freqfilter.Mask(p.rows, p.cols, f)
}

// Homomorphic separates illumination from reflectance: the image is taken to
// the log domain as ln(1 + r/255), filtered with h, brought back with
// exp(|·|) - 1 and normalised into [0, 255].
func Homomorphic(im *raster.Image, h freqfilter.Homomorphic, opts Options) (*raster.Image, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	p, err := newPlan(im, opts)
	if err != nil {
		return nil, err
	}

	p.stage("log")
	logIm := raster.New(im.Width, im.Height)
	for i, v := range im.Data {
		logIm.Data[i] = float32(math.Log1p(float64(v) / raster.MaxIntensity))
	}

	spectrum, err := p.forward(logIm)
	if err != nil {
		return nil, err
	}
	if err := p.filter(spectrum, h); err != nil {
		return nil, err
	}
	spatial, err := p.inverse(spectrum)
	if err != nil {
		return nil, err
	}

	p.stage("exp")
	mag := signal.Magnitude(spatial)
	for i, m := range mag {
		mag[i] = float32(math.Expm1(float64(m)))
	}
	out, err := raster.FromData(p.width, p.height, mag)
	if err != nil {
		return nil, err
	}
	out.Normalize(raster.MaxIntensity)
	return out, nil
}
