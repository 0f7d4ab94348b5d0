package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/offsetcurve/pkg/errors"
	pkgio "github.com/matzehuels/offsetcurve/pkg/io"
	"github.com/matzehuels/offsetcurve/pkg/pipeline"
	"github.com/matzehuels/offsetcurve/pkg/render"
)

const (
	defaultSize   = 800 // default image size in pixels along the longer side
	defaultMargin = 20  // default image margin in pixels
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	curveOpts
	formats []string // output formats: svg, png, json
	output  string   // output base path
	size    float64  // image size in pixels along the longer side
	margin  float64  // image margin in pixels
}

// renderCommand creates the render command that draws the input, raw and
// resolved curves.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{size: defaultSize, margin: defaultMargin}

	cmd := &cobra.Command{
		Use:   "render [wkt|-]",
		Short: "Draw the input, raw and resolved curves as SVG or PNG",
		Long: `Draw the input line (dashed), the raw offset curve and the resolved curve.

Examples:
  offsetcurve render -i line.wkt -d 10                  # writes line.svg
  offsetcurve render -i line.wkt -d 10 -f svg,png -o out # writes out.svg and out.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, pipeline.FormatSVG)
			for _, f := range opts.formats {
				if err := errors.ValidateFormat(f, pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatJSON); err != nil {
					return err
				}
			}
			line, err := opts.readLine(cmd, args)
			if err != nil {
				return err
			}
			popts, err := opts.options(cmd, c.config, line, opts.distance)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.ErrOrStderr(), popts, &opts)
		},
	}

	opts.addCurveFlags(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: input file name)")
	cmd.Flags().Float64Var(&opts.size, "size", opts.size, "image size in pixels along the longer side")
	cmd.Flags().Float64Var(&opts.margin, "margin", opts.margin, "image margin in pixels")

	return cmd
}

// runRender resolves the curve and writes one file per format.
func (c *CLI) runRender(ctx context.Context, w io.Writer, popts pipeline.Options, opts *renderOpts) error {
	res, err := c.resolve(ctx, popts, opts.noCache)
	if err != nil {
		return err
	}

	artifacts, err := pipeline.Render(res, opts.formats, render.WithSize(opts.size), render.WithMargin(opts.margin))
	if err != nil {
		return err
	}
	return writeArtifacts(w, artifacts, basePath(opts.output, opts.input))
}

// writeArtifacts exports artifacts next to base and lists the written files.
func writeArtifacts(w io.Writer, artifacts map[string][]byte, base string) error {
	paths, err := pkgio.ExportArtifacts(artifacts, base)
	if err != nil {
		return err
	}
	printSuccess(w, "Generated %d %s", len(paths), plural(len(paths), "file", "files"))
	for _, p := range paths {
		printFile(w, p)
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
