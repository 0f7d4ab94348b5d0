package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	"github.com/matzehuels/offsetcurve/pkg/config"
	"github.com/matzehuels/offsetcurve/pkg/geom"
	pkgio "github.com/matzehuels/offsetcurve/pkg/io"
	"github.com/matzehuels/offsetcurve/pkg/offset"
	"github.com/matzehuels/offsetcurve/pkg/pipeline"
	"github.com/matzehuels/offsetcurve/pkg/shortestpath"
)

// curveOpts holds the flags shared by commands that resolve a curve.
// Buffer and strategy flags only override the configuration when set.
type curveOpts struct {
	input            string  // input file ("-" for stdin)
	distance         float64 // signed offset distance
	join             string  // join style: round, mitre, bevel
	quadrantSegments int     // fillet segments per quarter circle
	mitreLimit       float64 // mitre ratio above which joins are bevelled
	simplifyFactor   float64 // simplify tolerance as a fraction of |distance|
	strategy         string  // search strategy: priority-queue, linear
	noCache          bool    // bypass the result cache
	refresh          bool    // recompute and overwrite the cached result
}

// addInputFlags registers --input.
func (o *curveOpts) addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.input, "input", "i", "", "input file with a WKT or GeoJSON line (- for stdin)")
}

// addBufferFlags registers the buffer, strategy and cache flags.
func (o *curveOpts) addBufferFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.join, "join", "", "join style: round, mitre, bevel")
	cmd.Flags().IntVar(&o.quadrantSegments, "quadrant-segments", 0, "fillet segments per quarter circle")
	cmd.Flags().Float64Var(&o.mitreLimit, "mitre-limit", 0, "mitre ratio limit")
	cmd.Flags().Float64Var(&o.simplifyFactor, "simplify-factor", 0, "simplify tolerance as a fraction of the distance")
	var strategies []string
	for _, s := range shortestpath.Strategies() {
		strategies = append(strategies, s.String())
	}
	cmd.Flags().StringVar(&o.strategy, "strategy", "", "search strategy: "+strings.Join(strategies, ", "))
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "recompute and replace cached results")
}

// addCurveFlags registers all curve flags including a required --distance.
func (o *curveOpts) addCurveFlags(cmd *cobra.Command) {
	o.addInputFlags(cmd)
	o.addBufferFlags(cmd)
	cmd.Flags().Float64VarP(&o.distance, "distance", "d", 0, "signed offset distance (positive offsets to the left)")
	_ = cmd.MarkFlagRequired("distance")
}

// readLine reads the input line from the positional argument, --input, or
// stdin when neither is given or either is "-".
func (o *curveOpts) readLine(cmd *cobra.Command, args []string) (orb.LineString, error) {
	switch {
	case len(args) > 0 && o.input != "":
		return nil, fmt.Errorf("pass the line either as an argument or with --input, not both")
	case len(args) > 0 && args[0] != "-":
		return geom.ParseLine(args[0])
	case o.input != "" && o.input != "-":
		return pkgio.ImportLine(o.input)
	}
	return pkgio.ReadLine(cmd.InOrStdin())
}

// options builds pipeline options from cfg, overridden by any set flags.
func (o *curveOpts) options(cmd *cobra.Command, cfg config.Config, line orb.LineString, distance float64) (pipeline.Options, error) {
	opts, err := cfg.PipelineOptions(line, distance)
	if err != nil {
		return opts, err
	}

	flags := cmd.Flags()
	if flags.Changed("join") {
		if opts.Params.JoinStyle, err = offset.ParseJoinStyle(o.join); err != nil {
			return opts, err
		}
	}
	if flags.Changed("quadrant-segments") {
		opts.Params.QuadrantSegments = o.quadrantSegments
	}
	if flags.Changed("mitre-limit") {
		opts.Params.MitreLimit = o.mitreLimit
	}
	if flags.Changed("simplify-factor") {
		opts.Params.SimplifyFactor = o.simplifyFactor
	}
	if flags.Changed("strategy") {
		if opts.Strategy, err = shortestpath.ParseStrategy(o.strategy); err != nil {
			return opts, err
		}
	}
	opts.Refresh = o.refresh
	return opts, nil
}

// basePath derives the base output path. An explicit output wins, then the
// input file without its extension, then "offset".
func basePath(output, input string) string {
	switch {
	case output != "":
		return output
	case input != "" && input != "-":
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	return "offset"
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s, fallback string) []string {
	if s == "" {
		return []string{fallback}
	}
	return strings.Split(s, ",")
}
