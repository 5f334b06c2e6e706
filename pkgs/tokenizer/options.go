package tokenizer

import (
	"time"

	"github.com/charmbracelet/log"
)

// Option configures a Tokenize call
type Option func(*config)

type config struct {
	logger    *log.Logger
	telemetry *Telemetry
}

// WithLogger enables debug tracing of emitted events and continuation runs.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithTelemetry fills t with counts and timing once Tokenize returns
// successfully.
func WithTelemetry(t *Telemetry) Option {
	return func(c *config) {
		c.telemetry = t
	}
}

// Telemetry holds tokenizer metrics for one call
type Telemetry struct {
	Lines             int           // Physical lines in the source
	Events            int           // Events emitted
	ContinuationLines int           // Lines folded into a preceding directive
	IgnoredLines      int           // Lines that produced nothing
	Duration          time.Duration // Wall time of the call
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *config) debug(msg string, keyvals ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, keyvals...)
	}
}
