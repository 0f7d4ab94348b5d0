package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/offsetcurve/pkg/pipeline"
)

// logTimeFormat renders timestamps as "14:32:01.45".
const logTimeFormat = "15:04:05.00"

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// stopwatch starts timing and returns a func that reports the elapsed time,
// rounded to the millisecond.
func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start).Round(time.Millisecond)
	}
}

// logResult reports a finished run: the curve summary at info level and the
// search counters at debug level.
func logResult(l *log.Logger, res *pipeline.Result, elapsed time.Duration) {
	verb := "Resolved"
	if res.CacheHit {
		verb = "Loaded cached"
	}
	l.Infof("%s curve: %d vertices, length %.4g (%s)", verb, len(res.Curve), res.Length, elapsed)
	l.Debug("search",
		"strategy", res.Search.Strategy,
		"vertices", res.Search.Vertices,
		"edges", res.Search.Edges,
		"committed", res.Search.Committed,
		"relaxations", res.Search.Relaxations)
}

type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger set by the root command, or
// log.Default when the command runs outside it.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
