package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uzunenes/piciem/pkg/enhance"
	"github.com/uzunenes/piciem/pkg/raster"
)

func (a *app) pointCommand() *cobra.Command {
	var value float64
	cmd := &cobra.Command{
		Use:   "point <brightness|contrast|invert|threshold|gamma|log> <input> <output>",
		Short: "Apply a per-pixel intensity transform",
		Long: "brightness adds --value, contrast scales around 128 by --value, " +
			"threshold binarises at --value, gamma raises to the power --value " +
			"and log applies --value·ln(1+in/255) before normalising.",
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{"brightness", "contrast", "invert", "threshold", "gamma", "log"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var fn func(*raster.Image) (*raster.Image, error)
			switch args[0] {
			case "brightness":
				fn = func(im *raster.Image) (*raster.Image, error) { return enhance.Brightness(im, float32(value)) }
			case "contrast":
				fn = func(im *raster.Image) (*raster.Image, error) { return enhance.Contrast(im, float32(value)) }
			case "invert":
				fn = enhance.Invert
			case "threshold":
				fn = func(im *raster.Image) (*raster.Image, error) { return enhance.Threshold(im, float32(value)) }
			case "gamma":
				fn = func(im *raster.Image) (*raster.Image, error) { return enhance.Gamma(im, value) }
			case "log":
				fn = func(im *raster.Image) (*raster.Image, error) { return enhance.LogTransform(im, value) }
			default:
				return fmt.Errorf("unknown point operation %q", args[0])
			}
			return a.transform(args[1], args[2], args[0], fn)
		},
	}
	cmd.Flags().Float64Var(&value, "value", 1, "operation parameter")
	return cmd
}

func (a *app) equalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "equalize <input> <output>",
		Short: "Spread intensities with histogram equalisation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(args[0], args[1], "equalized", enhance.Equalize)
		},
	}
}

func (a *app) otsuCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "otsu <input> <output>",
		Short: "Binarise at the Otsu threshold",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(args[0], args[1], "otsu", func(im *raster.Image) (*raster.Image, error) {
				out, level, err := enhance.OtsuThreshold(im)
				if err != nil {
					return nil, err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Otsu threshold: %d\n", level)
				return out, nil
			})
		},
	}
}
