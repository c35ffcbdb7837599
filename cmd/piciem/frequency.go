package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/uzunenes/piciem/pkg/enhance"
	"github.com/uzunenes/piciem/pkg/freqfilter"
	"github.com/uzunenes/piciem/pkg/frequency"
	"github.com/uzunenes/piciem/pkg/raster"
)

func (a *app) options() (frequency.Options, error) {
	return a.cfg.FrequencyOptions(a.log)
}

func (a *app) spectrumCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "spectrum <input> <output>",
		Short: "Write the centred log-magnitude spectrum",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options()
			if err != nil {
				return err
			}
			return a.transform(args[0], args[1], "log magnitude spectrum", func(im *raster.Image) (*raster.Image, error) {
				return frequency.Spectrum(im, opts)
			})
		},
	}
}

func (a *app) filterCommand() *cobra.Command {
	var (
		mask    string
		compare bool
	)
	cmd := &cobra.Command{
		Use:   "filter <input> <output>",
		Short: "Apply a frequency-domain filter",
		Long: "Apply one of the filter bank members: " +
			"ideal, Butterworth or Gaussian, each as low-pass or high-pass.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fc := &a.cfg.Frequency.Filter
			flags := cmd.Flags()
			if flags.Changed("kind") {
				fc.Kind, _ = flags.GetString("kind")
			}
			if flags.Changed("cutoff") {
				fc.Cutoff, _ = flags.GetFloat64("cutoff")
			}
			if flags.Changed("order") {
				fc.Order, _ = flags.GetInt("order")
			}
			if flags.Changed("sigma") {
				fc.Sigma, _ = flags.GetFloat64("sigma")
			}

			f, err := a.cfg.FilterFromConfig()
			if err != nil {
				return err
			}
			opts, err := a.options()
			if err != nil {
				return err
			}

			src, err := a.load(args[0])
			if err != nil {
				return err
			}
			dst, err := frequency.Filter(src, f, opts)
			if err != nil {
				return err
			}
			if err := a.save(args[1], dst, f.Name()); err != nil {
				return err
			}

			if mask != "" {
				m, err := frequency.Mask(src, f, opts)
				if err != nil {
					return err
				}
				if err := a.save(mask, m, f.Name()+" mask"); err != nil {
					return err
				}
			}
			if compare {
				return a.report(cmd, src, dst)
			}
			return nil
		},
	}
	cmd.Flags().String("kind", "", "filter kind, one of "+strings.Join(freqfilter.Kinds(), ", "))
	cmd.Flags().Float64("cutoff", 0, "cutoff radius D0 for ideal and Butterworth filters")
	cmd.Flags().Int("order", 0, "Butterworth order")
	cmd.Flags().Float64("sigma", 0, "Gaussian spread")
	cmd.Flags().StringVar(&mask, "mask", "", "also write the filter gains to this file")
	cmd.Flags().BoolVar(&compare, "compare", false, "print fidelity metrics against the input")
	return cmd
}

func (a *app) homomorphicCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "homomorphic <input> <output>",
		Short: "Even out illumination with a homomorphic filter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hc := &a.cfg.Frequency.Homomorphic
			flags := cmd.Flags()
			if flags.Changed("d0") {
				hc.D0, _ = flags.GetFloat64("d0")
			}
			if flags.Changed("gamma-low") {
				hc.GammaLow, _ = flags.GetFloat64("gamma-low")
			}
			if flags.Changed("gamma-high") {
				hc.GammaHigh, _ = flags.GetFloat64("gamma-high")
			}
			if flags.Changed("c") {
				hc.C, _ = flags.GetFloat64("c")
			}
			if flags.Changed("equalize") {
				hc.Equalize, _ = flags.GetBool("equalize")
			}

			opts, err := a.options()
			if err != nil {
				return err
			}
			h := a.cfg.HomomorphicFilter()
			return a.transform(args[0], args[1], "homomorphic", func(im *raster.Image) (*raster.Image, error) {
				out, err := frequency.Homomorphic(im, h, opts)
				if err != nil || !hc.Equalize {
					return out, err
				}
				return enhance.Equalize(out)
			})
		},
	}
	cmd.Flags().Float64("d0", 0, "cutoff distance")
	cmd.Flags().Float64("gamma-low", 0, "gain applied to low frequencies (illumination)")
	cmd.Flags().Float64("gamma-high", 0, "gain applied to high frequencies (reflectance)")
	cmd.Flags().Float64("c", 0, "sharpness of the transition")
	cmd.Flags().Bool("equalize", true, "equalise the histogram of the result")
	return cmd
}

func (a *app) roundTripCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip <input> [output]",
		Short: "Transform forward and back and report the reconstruction error",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options()
			if err != nil {
				return err
			}
			src, err := a.load(args[0])
			if err != nil {
				return err
			}
			dst, err := frequency.RoundTrip(src, opts)
			if err != nil {
				return err
			}
			if len(args) == 2 {
				if err := a.save(args[1], dst, "round trip"); err != nil {
					return err
				}
			}
			return a.report(cmd, src, dst)
		},
	}
}
