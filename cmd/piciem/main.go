// Command piciem applies frequency-domain and spatial image processing to
// grayscale images.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/uzunenes/piciem/pkg/config"
	"github.com/uzunenes/piciem/pkg/metrics"
	"github.com/uzunenes/piciem/pkg/pgm"
	"github.com/uzunenes/piciem/pkg/raster"
	"github.com/uzunenes/piciem/pkg/visualization"
)

const defaultConfigPath = "piciem.yaml"

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool
	format     string

	cfg *config.Config
	log *logrus.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("piciem failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{log: logrus.StandardLogger()}

	root := &cobra.Command{
		Use:           "piciem",
		Short:         "Grayscale image processing in the frequency and spatial domains",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", defaultConfigPath, "YAML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.format, "format", "", "PGM output encoding: binary or ascii (overrides config)")

	root.AddCommand(
		a.infoCommand(),
		a.convertCommand(),
		a.compareCommand(),
		a.spectrumCommand(),
		a.filterCommand(),
		a.homomorphicCommand(),
		a.roundTripCommand(),
		a.pointCommand(),
		a.equalizeCommand(),
		a.otsuCommand(),
		a.blurCommand(),
		a.sobelCommand(),
		a.medianCommand(),
		a.morphCommand(),
		a.noiseCommand(),
		a.configCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	a.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.format != "" {
		cfg.Output.Format = a.format
		if _, err := cfg.OutputFormat(); err != nil {
			return err
		}
	}
	if a.verbose {
		cfg.Output.Verbose = true
	}
	a.cfg = cfg

	a.log.SetLevel(logrus.InfoLevel)
	if cfg.Output.Verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}
	a.log.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"config":  a.configPath,
		"engine":  cfg.Frequency.Engine,
	}).Debug("Configuration loaded")
	return nil
}

func isPGM(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".pgm" || ext == ".pnm"
}

// load reads a PGM file directly and any other format through the image decoders.
func (a *app) load(path string) (*raster.Image, error) {
	if isPGM(path) {
		f, err := pgm.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return f.Image, nil
	}
	return visualization.Import(path, 0, 0)
}

// save writes im as PGM in the configured encoding, or as the image format
// implied by the extension.
func (a *app) save(path string, im *raster.Image, comment string) error {
	if isPGM(path) {
		format, err := a.cfg.OutputFormat()
		if err != nil {
			return err
		}
		f := pgm.New(im, comment)
		f.Format = format
		if err := pgm.WriteFile(path, f); err != nil {
			return err
		}
	} else if err := visualization.Export(im, path); err != nil {
		return err
	}

	a.log.WithFields(logrus.Fields{
		"path":   path,
		"width":  im.Width,
		"height": im.Height,
	}).Info("Saved image")
	return nil
}

// transform is the shape of every single-input, single-output subcommand.
func (a *app) transform(in, out, comment string, fn func(*raster.Image) (*raster.Image, error)) error {
	src, err := a.load(in)
	if err != nil {
		return err
	}
	start := time.Now()
	dst, err := fn(src)
	if err != nil {
		return err
	}
	a.log.WithField("elapsed", time.Since(start)).Debug("Processing finished")
	return a.save(out, dst, comment)
}

func (a *app) report(cmd *cobra.Command, ref, got *raster.Image) error {
	m, err := metrics.Compare(ref, got)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), m.String())
	return nil
}

func (a *app) rng() *rand.Rand {
	seed := a.cfg.Noise.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
