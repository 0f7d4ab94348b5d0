package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/offsetcurve/pkg/pipeline"
	"github.com/matzehuels/offsetcurve/pkg/shortestpath"
)

// lengthTolerance is the relative difference below which two strategies are
// considered to agree.
const lengthTolerance = 1e-9

var defaultDistances = []float64{1, 2.5, 5, 10, 15}

// comparison holds the results of both strategies at one distance.
type comparison struct {
	Distance float64
	Linear   *pipeline.Result
	Queue    *pipeline.Result
}

// Agree reports whether both strategies found paths of equal length.
func (c comparison) Agree() bool {
	a, b := c.Linear.Length, c.Queue.Length
	return math.Abs(a-b) <= lengthTolerance*math.Max(1, math.Max(a, b))
}

// compareCommand creates the compare command that checks both search
// strategies against each other.
func (c *CLI) compareCommand() *cobra.Command {
	var opts curveOpts
	distances := defaultDistances

	cmd := &cobra.Command{
		Use:   "compare [wkt|-]",
		Short: "Compare both search strategies over a list of distances",
		Long: `Resolve the offset curve with the linear-scan and priority-queue strategies at
each distance and print lengths, committed vertices and search times.

The command fails when the two strategies disagree on a path length.

Example:
  offsetcurve compare -i line.wkt --distances 1,2.5,5,-5,10`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := opts.readLine(cmd, args)
			if err != nil {
				return err
			}
			popts, err := opts.options(cmd, c.config, line, 0)
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Resolving %d distances...", len(distances)))
			spinner.Start()
			progress := func(i int, d float64) {
				spinner.Update(fmt.Sprintf("Resolving distance %g (%d/%d)...", d, i+1, len(distances)))
			}
			rows, err := compareStrategies(cmd.Context(), pipeline.NewRunner(nil, nil, c.Logger), popts, distances, progress)
			if err != nil {
				spinner.StopWithError("Comparison failed")
				return err
			}
			spinner.Stop()

			fmt.Fprintln(cmd.OutOrStdout(), compareTable(rows))
			if n := countDisagreements(rows); n > 0 {
				for _, r := range rows {
					if !r.Agree() {
						printWarning(cmd.ErrOrStderr(), "distance %g: linear %.12g, priority queue %.12g", r.Distance, r.Linear.Length, r.Queue.Length)
					}
				}
				return fmt.Errorf("strategies disagree at %d of %d distances", n, len(rows))
			}
			printSuccess(cmd.ErrOrStderr(), "Strategies agree at all %d distances", len(rows))
			return nil
		},
	}

	opts.addInputFlags(cmd)
	cmd.Flags().StringVar(&opts.join, "join", "", "join style: round, mitre, bevel")
	cmd.Flags().IntVar(&opts.quadrantSegments, "quadrant-segments", 0, "fillet segments per quarter circle")
	cmd.Flags().Float64Var(&opts.mitreLimit, "mitre-limit", 0, "mitre ratio limit")
	cmd.Flags().Float64Var(&opts.simplifyFactor, "simplify-factor", 0, "simplify tolerance as a fraction of the distance")
	cmd.Flags().Float64SliceVar(&distances, "distances", distances, "signed offset distances (comma-separated)")

	return cmd
}

// compareStrategies resolves base at every distance with both strategies,
// calling progress (if non-nil) before each distance. The runner should not
// cache, so that timings reflect the search.
func compareStrategies(ctx context.Context, runner *pipeline.Runner, base pipeline.Options, distances []float64, progress func(int, float64)) ([]comparison, error) {
	rows := make([]comparison, 0, len(distances))
	for i, d := range distances {
		if progress != nil {
			progress(i, d)
		}
		row := comparison{Distance: d}
		for _, s := range []shortestpath.Strategy{shortestpath.LinearScan, shortestpath.PriorityQueue} {
			opts := base
			opts.Distance = d
			opts.Strategy = s
			res, err := runner.Execute(ctx, opts)
			if err != nil {
				return nil, fmt.Errorf("distance %g, %s: %w", d, s, err)
			}
			if s == shortestpath.LinearScan {
				row.Linear = res
			} else {
				row.Queue = res
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func countDisagreements(rows []comparison) int {
	n := 0
	for _, r := range rows {
		if !r.Agree() {
			n++
		}
	}
	return n
}

// compareTable formats comparison rows as a bordered table.
func compareTable(rows []comparison) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		match := StyleSuccess.Render(iconSuccess)
		if !r.Agree() {
			match = StyleError.Render(iconError)
		}
		data = append(data, []string{
			strconv.FormatFloat(r.Distance, 'g', -1, 64),
			fmt.Sprintf("%.6f", r.Linear.Length),
			fmt.Sprintf("%.6f", r.Queue.Length),
			strconv.Itoa(len(r.Queue.Curve)),
			fmt.Sprintf("%d / %d", r.Linear.Search.Committed, r.Queue.Search.Committed),
			fmt.Sprintf("%s / %s", roundDuration(r.Linear.Stats.ResolveTime), roundDuration(r.Queue.Stats.ResolveTime)),
			match,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("Distance", "Linear", "Queue", "Vertices", "Committed", "Search", "").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

func roundDuration(d time.Duration) time.Duration {
	if d > time.Millisecond {
		return d.Round(10 * time.Microsecond)
	}
	return d.Round(time.Microsecond)
}
