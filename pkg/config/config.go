// Package config provides configuration loading and management for piciem.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/uzunenes/piciem/pkg/fourier"
	"github.com/uzunenes/piciem/pkg/freqfilter"
	"github.com/uzunenes/piciem/pkg/frequency"
	"github.com/uzunenes/piciem/pkg/pgm"
	"github.com/uzunenes/piciem/pkg/spatial"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Frequency-domain parameters
	Frequency struct {
		// Engine is the 1D transform, "fft" or "dft"
		Engine string `yaml:"engine"`

		// PadToPowerOfTwo forces zero padding even for the DFT engine
		PadToPowerOfTwo bool `yaml:"padToPowerOfTwo"`

		// Filter selects the filter used by the filter command
		Filter struct {
			// Kind is one of the names listed by freqfilter.Kinds
			Kind string `yaml:"kind"`

			// Cutoff is the radius used by the ideal and Butterworth filters
			Cutoff float64 `yaml:"cutoff"`

			// Order is the Butterworth order
			Order int `yaml:"order"`

			// Sigma is the Gaussian spread
			Sigma float64 `yaml:"sigma"`
		} `yaml:"filter"`

		// Homomorphic holds the emphasis filter parameters
		Homomorphic struct {
			D0        float64 `yaml:"d0"`
			GammaLow  float64 `yaml:"gammaLow"`
			GammaHigh float64 `yaml:"gammaHigh"`
			C         float64 `yaml:"c"`

			// Equalize runs histogram equalisation on the result
			Equalize bool `yaml:"equalize"`
		} `yaml:"homomorphic"`
	} `yaml:"frequency"`

	// Spatial filter parameters
	Spatial struct {
		// KernelSize is the odd window size for blur, median and morphology
		KernelSize int `yaml:"kernelSize"`

		// Sigma is the spread of the Gaussian blur kernel
		Sigma float64 `yaml:"sigma"`
	} `yaml:"spatial"`

	// Noise parameters
	Noise struct {
		// Density is the fraction of pixels hit by salt-and-pepper noise
		Density float64 `yaml:"density"`

		// Seed initialises the random source; 0 picks a time based seed
		Seed int64 `yaml:"seed"`
	} `yaml:"noise"`

	// Output parameters
	Output struct {
		// Format is the PGM encoding for written files, "binary" or "ascii"
		Format string `yaml:"format"`

		// Verbose enables debug logging
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Frequency.Engine = fourier.EngineFFT.String()
	cfg.Frequency.PadToPowerOfTwo = false
	cfg.Frequency.Filter.Kind = freqfilter.ButterworthLowPass{}.Name()
	cfg.Frequency.Filter.Cutoff = 30
	cfg.Frequency.Filter.Order = 2
	cfg.Frequency.Filter.Sigma = 30

	cfg.Frequency.Homomorphic.D0 = 40
	cfg.Frequency.Homomorphic.GammaLow = 0.5
	cfg.Frequency.Homomorphic.GammaHigh = 2.0
	cfg.Frequency.Homomorphic.C = 1
	cfg.Frequency.Homomorphic.Equalize = true

	cfg.Spatial.KernelSize = 3
	cfg.Spatial.Sigma = 1.0

	cfg.Noise.Density = 0.05
	cfg.Noise.Seed = 0

	cfg.Output.Format = pgm.Binary.String()
	cfg.Output.Verbose = false

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

// Validate checks every section and reports the first problem found.
func (c *Config) Validate() error {
	if _, err := fourier.ParseEngine(c.Frequency.Engine); err != nil {
		return err
	}
	if _, err := c.FilterFromConfig(); err != nil {
		return err
	}
	if err := c.HomomorphicFilter().Validate(); err != nil {
		return err
	}
	if err := spatial.CheckSize(c.Spatial.KernelSize); err != nil {
		return err
	}
	if !(c.Spatial.Sigma > 0) {
		return fmt.Errorf("spatial sigma must be positive, got %g", c.Spatial.Sigma)
	}
	if c.Noise.Density < 0 || c.Noise.Density > 1 {
		return fmt.Errorf("noise density must be within [0, 1], got %g", c.Noise.Density)
	}
	if _, err := pgm.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	return nil
}

// FilterFromConfig builds the configured frequency filter.
func (c *Config) FilterFromConfig() (freqfilter.Filter, error) {
	f := c.Frequency.Filter
	return freqfilter.New(f.Kind, freqfilter.Params{Cutoff: f.Cutoff, Order: f.Order, Sigma: f.Sigma})
}

// HomomorphicFilter returns the configured homomorphic emphasis filter.
func (c *Config) HomomorphicFilter() freqfilter.Homomorphic {
	h := c.Frequency.Homomorphic
	return freqfilter.Homomorphic{D0: h.D0, GammaLow: h.GammaLow, GammaHigh: h.GammaHigh, C: h.C}
}

// FrequencyOptions returns pipeline options that log through logger.
func (c *Config) FrequencyOptions(logger logrus.FieldLogger) (frequency.Options, error) {
	engine, err := fourier.ParseEngine(c.Frequency.Engine)
	if err != nil {
		return frequency.Options{}, err
	}
	return frequency.Options{
		Engine:          engine,
		PadToPowerOfTwo: c.Frequency.PadToPowerOfTwo,
		Logger:          logger,
	}, nil
}

// OutputFormat returns the PGM encoding for written files.
func (c *Config) OutputFormat() (pgm.Format, error) {
	return pgm.ParseFormat(c.Output.Format)
}
