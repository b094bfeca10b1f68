package bootstrap

import (
	"io"
	"time"

	"github.com/kbukum/registry-api/logger"
)

// Option configures NewApp. Options are not generic so one set serves
// every config type.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout time.Duration
	summaryOut      io.Writer
}

// WithLogger supplies the logger, typically the one installed by
// observability.Init.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithGracefulTimeout bounds OnStop hooks plus component shutdown.
// Non-positive values keep the 15s default.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		if d > 0 {
			o.gracefulTimeout = d
		}
	}
}

// WithSummaryOutput redirects the startup summary away from stdout.
func WithSummaryOutput(w io.Writer) Option {
	return func(o *appOptions) {
		if w != nil {
			o.summaryOut = w
		}
	}
}
