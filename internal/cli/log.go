package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes level-filtered, timestamped ("14:32:01.45") records to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command step. Fields given to newProgress are attached
// to the completion record together with the elapsed time:
//
//	INFO Exported 3 materials scene=studio.yaml took=84ms
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger, keyvals ...any) *progress {
	return &progress{logger: l.With(keyvals...), start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Info(msg, "took", time.Since(p.start).Round(time.Millisecond))
}

type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the command logger. Without one, records are
// discarded, matching the nil-logger behavior of the exporters.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}
