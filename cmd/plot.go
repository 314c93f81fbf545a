package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/grovetools/joystick/export"
	"github.com/grovetools/joystick/logging"
	"github.com/grovetools/joystick/pkg/profiling"
	"github.com/grovetools/joystick/state"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const plotLong = `Render exported trace files into an image.

Each file becomes one line, labelled with its file name, on fixed [-1, 1]
axes. The last sample of every trace is marked. The image format follows
the output extension (png, svg, pdf, jpg).

Examples:
  joystick-reader plot joystick1.csv joystick2.csv
  joystick-reader plot runs/joystick_reader_*/joystick*.csv -o runs.svg
  joystick-reader plot --last`

// plotOptions configures renderPlot.
type plotOptions struct {
	Output string
	Title  string
	Width  float64
	Height float64
}

func NewPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [FILE...]",
		Short: "Plot exported traces to an image",
		Long:  plotLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			if last, _ := cmd.Flags().GetBool("last"); last {
				if len(args) > 0 {
					return fmt.Errorf("--last cannot be combined with file arguments")
				}
				files, err := state.GetStrings(lastFilesKey)
				if err != nil {
					return err
				}
				if len(files) == 0 {
					return fmt.Errorf("no recording has been exported yet")
				}
				args = files
			}
			if len(args) == 0 {
				return fmt.Errorf("requires at least one trace file, or --last")
			}

			var opts plotOptions
			opts.Output, _ = cmd.Flags().GetString("output")
			opts.Title, _ = cmd.Flags().GetString("title")
			opts.Width, _ = cmd.Flags().GetFloat64("width")
			opts.Height, _ = cmd.Flags().GetFloat64("height")

			if opts.Width <= 0 || opts.Height <= 0 {
				return fmt.Errorf("--width and --height must be positive")
			}

			reading := profiling.Start("read traces")
			files, err := export.ReadFiles(args)
			reading.Stop()
			if err != nil {
				return err
			}

			defer profiling.Start("render plot").Stop()
			if err := renderPlot(files, opts); err != nil {
				return err
			}

			logging.NewPrettyLogger().WithWriter(cmd.ErrOrStderr()).Path("plot", opts.Output)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "joystick.png", "Image file to write, format from the extension: png, svg, pdf, or jpg")
	cmd.Flags().String("title", "Joystick traces", "Plot title")
	cmd.Flags().Float64("width", 6, "Image width in inches")
	cmd.Flags().Float64("height", 6, "Image height in inches")
	cmd.Flags().Bool("last", false, "Plot the files of the last recording")

	return cmd
}

func renderPlot(files []export.File, opts plotOptions) error {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Min, p.X.Max = -1, 1
	p.Y.Min, p.Y.Max = -1, 1
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	var ends plotter.XYs
	for i, f := range files {
		if len(f.Samples) == 0 {
			continue
		}

		pts := make(plotter.XYs, len(f.Samples))
		for j, s := range f.Samples {
			pts[j].X = s.X
			pts[j].Y = s.Y
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("plot %s: %w", f.Path, err)
		}
		line.LineStyle.Color = plotutil.Color(i)
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(traceLabel(f.Path), line)

		ends = append(ends, pts[len(pts)-1])
	}

	if len(ends) > 0 {
		marker, err := plotter.NewScatter(ends)
		if err != nil {
			return fmt.Errorf("plot final positions: %w", err)
		}
		marker.GlyphStyle.Shape = draw.CircleGlyph{}
		marker.GlyphStyle.Color = plotutil.Color(0)
		marker.GlyphStyle.Radius = vg.Points(3)
		p.Add(marker)
		p.Legend.Add("final position", marker)
	}

	if err := p.Save(vg.Length(opts.Width)*vg.Inch, vg.Length(opts.Height)*vg.Inch, opts.Output); err != nil {
		return fmt.Errorf("failed to save plot to %s: %w", opts.Output, err)
	}
	return nil
}

// traceLabel turns "runs/joystick3.csv" into "joystick3".
func traceLabel(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
