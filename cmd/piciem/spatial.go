package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uzunenes/piciem/pkg/enhance"
	"github.com/uzunenes/piciem/pkg/morphology"
	"github.com/uzunenes/piciem/pkg/raster"
	"github.com/uzunenes/piciem/pkg/spatial"
)

// kernelSize returns the --size flag when given and the configured size otherwise.
func (a *app) kernelSize(cmd *cobra.Command) int {
	if cmd.Flags().Changed("size") {
		k, _ := cmd.Flags().GetInt("size")
		return k
	}
	return a.cfg.Spatial.KernelSize
}

func (a *app) blurCommand() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "blur <input> <output>",
		Short: "Smooth with a box or Gaussian kernel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k := a.kernelSize(cmd)
			sigma := a.cfg.Spatial.Sigma
			if cmd.Flags().Changed("sigma") {
				sigma, _ = cmd.Flags().GetFloat64("sigma")
			}
			return a.transform(args[0], args[1], kind+" blur", func(im *raster.Image) (*raster.Image, error) {
				switch kind {
				case "box":
					return spatial.BoxBlur(im, k)
				case "gaussian":
					return spatial.GaussianBlur(im, k, sigma)
				case "gaussian3":
					return spatial.Convolve(im, spatial.Gaussian3x3())
				default:
					return nil, fmt.Errorf("unknown blur %q (want box, gaussian or gaussian3)", kind)
				}
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "gaussian", "box, gaussian or gaussian3 (fixed 1-2-1 kernel)")
	cmd.Flags().Int("size", 0, "odd kernel size")
	cmd.Flags().Float64("sigma", 0, "Gaussian spread")
	return cmd
}

func (a *app) sobelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sobel <input> <output>",
		Short: "Detect edges with the Sobel gradient magnitude",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(args[0], args[1], "sobel", spatial.Sobel)
		},
	}
}

func (a *app) medianCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "median <input> <output>",
		Short: "Remove impulse noise with a median filter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k := a.kernelSize(cmd)
			return a.transform(args[0], args[1], "median", func(im *raster.Image) (*raster.Image, error) {
				return spatial.Median(im, k)
			})
		},
	}
	cmd.Flags().Int("size", 0, "odd window size")
	return cmd
}

func (a *app) morphCommand() *cobra.Command {
	var binarize bool
	cmd := &cobra.Command{
		Use:       "morph <erode|dilate|open|close> <input> <output>",
		Short:     "Apply a morphological operator",
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{"erode", "dilate", "open", "close"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ops := map[string]func(*raster.Image, int) (*raster.Image, error){
				"erode":  morphology.Erode,
				"dilate": morphology.Dilate,
				"open":   morphology.Open,
				"close":  morphology.Close,
			}
			op, ok := ops[args[0]]
			if !ok {
				return fmt.Errorf("unknown operator %q", args[0])
			}
			k := a.kernelSize(cmd)
			return a.transform(args[1], args[2], args[0], func(im *raster.Image) (*raster.Image, error) {
				if binarize {
					bin, _, err := enhance.OtsuThreshold(im)
					if err != nil {
						return nil, err
					}
					im = bin
				}
				return op(im, k)
			})
		},
	}
	cmd.Flags().Int("size", 0, "odd structuring element size")
	cmd.Flags().BoolVar(&binarize, "binarize", false, "apply an Otsu threshold first")
	return cmd
}

func (a *app) noiseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "noise <input> <output>",
		Short: "Add salt-and-pepper noise",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("density") {
				a.cfg.Noise.Density, _ = cmd.Flags().GetFloat64("density")
			}
			if cmd.Flags().Changed("seed") {
				a.cfg.Noise.Seed, _ = cmd.Flags().GetInt64("seed")
			}
			rng := a.rng()
			return a.transform(args[0], args[1], "salt and pepper", func(im *raster.Image) (*raster.Image, error) {
				return spatial.SaltAndPepper(im, a.cfg.Noise.Density, rng)
			})
		},
	}
	cmd.Flags().Float64("density", 0, "fraction of pixels to corrupt")
	cmd.Flags().Int64("seed", 0, "random seed, 0 for a time based seed")
	return cmd
}
