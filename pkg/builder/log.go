package builder

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// ctxKey distinguishes this package's context keys from others.
type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a new context with l attached, for Run and RunSerial
// to emit structured progress through.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the attached logger, falling back to
// log.Default() so Run is always safe to call without WithLogger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// progress tracks the start time of a pipeline stage and logs its
// completion with elapsed duration. It mirrors internal/cli's helper of the
// same shape; this package cannot import internal/cli (the dependency runs
// the other way), so Run and RunSerial get their own copy to log one line
// per stage: table init, edge generation, aggregation, DOT write.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
