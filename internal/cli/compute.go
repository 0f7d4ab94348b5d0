package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/offsetcurve/pkg/errors"
	pkgio "github.com/matzehuels/offsetcurve/pkg/io"
	"github.com/matzehuels/offsetcurve/pkg/pipeline"
)

// computeOpts holds the command-line flags for the compute command.
type computeOpts struct {
	curveOpts
	format string // curve encoding: wkt, geojson
	output string // output file (stdout if empty)
}

// computeCommand creates the compute command that prints the resolved curve.
func (c *CLI) computeCommand() *cobra.Command {
	opts := computeOpts{format: pkgio.FormatWKT}

	cmd := &cobra.Command{
		Use:   "compute [wkt|-]",
		Short: "Resolve the offset curve of a line",
		Long: `Resolve the single-sided offset curve of a line.

The line is read from the argument, the --input file, or stdin, as WKT or
GeoJSON. The resolved curve is written as WKT or GeoJSON.

Examples:
  offsetcurve compute 'LINESTRING (0 10, 125 10, 75 0, 200 0)' -d 5
  offsetcurve compute -i line.geojson -d -2.5 --join mitre --format geojson
  echo 'LINESTRING (0 0, 10 0)' | offsetcurve compute -d 1 --strategy linear`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(opts.format, pkgio.FormatWKT, pkgio.FormatGeoJSON); err != nil {
				return err
			}
			line, err := opts.readLine(cmd, args)
			if err != nil {
				return err
			}
			popts, err := opts.options(cmd, c.config, line, opts.distance)
			if err != nil {
				return err
			}
			return c.runCompute(cmd.Context(), cmd.OutOrStdout(), popts, &opts)
		},
	}

	opts.addCurveFlags(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: wkt, geojson")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// runCompute resolves the curve and writes it to the output file or stdout.
func (c *CLI) runCompute(ctx context.Context, stdout io.Writer, popts pipeline.Options, opts *computeOpts) error {
	res, err := c.resolve(ctx, popts, opts.noCache)
	if err != nil {
		return err
	}

	if opts.output == "" {
		return pkgio.WriteCurve(stdout, res.Curve, opts.format)
	}
	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.output, err)
	}
	defer f.Close()
	if err := pkgio.WriteCurve(f, res.Curve, opts.format); err != nil {
		return err
	}
	loggerFromContext(ctx).Infof("Wrote %s", opts.output)
	return nil
}

// resolve runs the pipeline once with a runner built from the CLI config.
func (c *CLI) resolve(ctx context.Context, popts pipeline.Options, noCache bool) (*pipeline.Result, error) {
	logger := loggerFromContext(ctx)
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	elapsed := stopwatch()
	res, err := runner.Execute(ctx, popts)
	if err != nil {
		return nil, err
	}
	logResult(logger, res, elapsed())
	return res, nil
}
