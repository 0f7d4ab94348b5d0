package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/offsetcurve/pkg/errors"
	"github.com/matzehuels/offsetcurve/pkg/pipeline"
)

// Formats accepted by the graph command.
const (
	graphFormatDOT = "dot"
	graphFormatSVG = "svg"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	curveOpts
	format string // dot or svg
	output string // output base path (stdout for dot if empty)
}

// graphCommand creates the graph command that exports the noded arrangement.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: graphFormatDOT}

	cmd := &cobra.Command{
		Use:   "graph [wkt|-]",
		Short: "Export the noded arrangement as DOT or SVG",
		Long: `Export the planar graph built from the noded raw offset curve.

Vertices and edges on the resolved path are highlighted and the endpoints are
drawn as double circles. DOT output goes to stdout unless --output is set; SVG
is laid out with Graphviz.

Examples:
  offsetcurve graph -i line.wkt -d 10 | dot -Tpng > graph.png
  offsetcurve graph -i line.wkt -d 10 -f svg             # writes line.graph.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(opts.format, graphFormatDOT, graphFormatSVG); err != nil {
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

			res, err := c.resolve(cmd.Context(), popts, opts.noCache)
			if err != nil {
				return err
			}
			format := pipeline.FormatDOT
			if opts.format == graphFormatSVG {
				format = pipeline.FormatGraph
			}
			artifacts, err := pipeline.Render(res, []string{format})
			if err != nil {
				return err
			}

			if format == pipeline.FormatDOT && opts.output == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), string(artifacts[format]))
				return err
			}
			return writeArtifacts(cmd.ErrOrStderr(), artifacts, basePath(opts.output, opts.input))
		},
	}

	opts.addCurveFlags(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path")

	return cmd
}
