package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/speich/dGraph/pkg/config"
	"github.com/speich/dGraph/pkg/grid"
)

// newLogger returns the command logger. Lines carry a "15:04:05.00"
// timestamp and the dgraph prefix.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Prefix:          appName,
		Level:           level,
	})
}

// logLevel resolves the level of the [log] table, which already holds
// DGRAPH_LOG_LEVEL after config.ApplyEnv. --verbose forces debug; an
// unparsable level falls back to info.
func logLevel(cfg config.LogConfig, verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// stage times one pipeline step of a command and reports the grid it
// produced.
type stage struct {
	logger *log.Logger
	name   string
	start  time.Time
}

func startStage(l *log.Logger, name string) *stage {
	return &stage{logger: l, name: name, start: time.Now()}
}

// done logs the grid statistics, e.g.
//
//	14:32:01.45 INFO dgraph: layout nodes=8 virtual=2 width=3 cached=false elapsed=3ms
func (s *stage) done(st grid.Stats, cached bool) {
	s.logger.Info(s.name,
		"nodes", st.Nodes,
		"virtual", st.Virtual,
		"width", st.Width,
		"cached", cached,
		"elapsed", time.Since(s.start).Round(time.Millisecond))
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger set by the root command, or
// log.Default when a command runs without it (as in unit tests).
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
