package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/uzunenes/piciem/pkg/config"
	"github.com/uzunenes/piciem/pkg/enhance"
	"github.com/uzunenes/piciem/pkg/pgm"
	"github.com/uzunenes/piciem/pkg/raster"
	"github.com/uzunenes/piciem/pkg/visualization"
)

func (a *app) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <input>",
		Short: "Print header fields and intensity statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var im *raster.Image
			if isPGM(args[0]) {
				f, err := pgm.ReadFile(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Format:  %s (%s)\n", f.Format.Magic(), f.Format)
				fmt.Fprintf(out, "Comment: %s\n", f.Comment)
				fmt.Fprintf(out, "MaxVal:  %d\n", f.MaxVal)
				im = f.Image
			} else {
				var err error
				if im, err = a.load(args[0]); err != nil {
					return err
				}
			}

			data := make([]float64, im.Len())
			for i, v := range im.Data {
				data[i] = float64(v)
			}
			mean, std := stat.MeanStdDev(data, nil)
			level, err := enhance.OtsuLevel(im)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Size:    %dx%d\n", im.Width, im.Height)
			fmt.Fprintf(out, "Range:   %.0f..%.0f\n", floats.Min(data), floats.Max(data))
			fmt.Fprintf(out, "Mean:    %.3f\n", mean)
			fmt.Fprintf(out, "StdDev:  %.3f\n", std)
			fmt.Fprintf(out, "Otsu:    %d\n", level)
			return nil
		},
	}
}

// parseRegion parses "row,col,height,width".
func parseRegion(s string) ([4]int, error) {
	var r [4]int
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return r, fmt.Errorf("region %q: want row,col,height,width", s)
	}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return r, fmt.Errorf("region %q: %w", s, err)
		}
		r[i] = v
	}
	return r, nil
}

func (a *app) convertCommand() *cobra.Command {
	var (
		width, height int
		region        string
	)
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert between PGM and common image formats",
		Long: "The output format follows the extension. PGM files are written in the " +
			"configured encoding, other formats (png, jpg, gif, tif, bmp) through the image encoders.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				im  *raster.Image
				err error
			)
			if width > 0 && height > 0 && !isPGM(args[0]) {
				im, err = visualization.Import(args[0], width, height)
			} else {
				im, err = a.load(args[0])
			}
			if err != nil {
				return err
			}

			if region != "" {
				r, err := parseRegion(region)
				if err != nil {
					return err
				}
				v, err := visualization.NewViewer(im)
				if err != nil {
					return err
				}
				if im, err = v.ExtractRegion(r[0], r[1], r[2], r[3]); err != nil {
					return err
				}
			}
			return a.save(args[1], im, "converted by piciem")
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "rescale non-PGM input to this width")
	cmd.Flags().IntVar(&height, "height", 0, "rescale non-PGM input to this height")
	cmd.Flags().StringVar(&region, "region", "", "crop to row,col,height,width")
	return cmd
}

func (a *app) compareCommand() *cobra.Command {
	var montage string
	cmd := &cobra.Command{
		Use:   "compare <reference> <image>",
		Short: "Print fidelity metrics between two images",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := a.load(args[0])
			if err != nil {
				return err
			}
			got, err := a.load(args[1])
			if err != nil {
				return err
			}
			if err := a.report(cmd, ref, got); err != nil {
				return err
			}
			if montage == "" {
				return nil
			}
			canvas, err := visualization.Montage(4, ref, got)
			if err != nil {
				return err
			}
			return imaging.Save(canvas, montage, imaging.JPEGQuality(visualization.JPEGQuality))
		},
	}
	cmd.Flags().StringVar(&montage, "montage", "", "write both images side by side to this file")
	return cmd
}

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.CreateDefaultConfigFile(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default configuration written to %s\n", path)
			return nil
		},
	})
	return cmd
}
