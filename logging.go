package catalog

import (
	"context"

	"github.com/pitabwire/util"
)

// WithLogger is an Option that configures the engine's structured logger,
// mirroring the teacher's WithLogger(opts ...util.Option) Option on Service.
func WithLogger(opts ...util.Option) Option {
	return func(e *Engine) {
		logLevelStr := "info"
		if e.config.LogLevel != "" {
			logLevelStr = e.config.LogLevel
		}

		logLevel, err := util.ParseLevel(logLevelStr)
		if err == nil {
			opts = append(opts, util.WithLogLevel(logLevel))
		}

		e.logger = util.NewLogger(context.Background(), opts...)
	}
}

// Log returns a log entry scoped to this engine, tagged with the engine's name.
func (e *Engine) Log(ctx context.Context) *util.LogEntry {
	if e.logger == nil {
		e.logger = util.NewLogger(ctx)
	}
	return e.logger.WithContext(ctx).WithField("component", e.name)
}
