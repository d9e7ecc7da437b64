package live

import (
	"github.com/rs/zerolog"
)

type config struct {
	logger  zerolog.Logger
	metrics *Metrics
	name    string
}

func newConfig(opts []Option) config {
	cfg := config{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a node. Logger and metrics are set on the root of a
// graph and shared by every node derived from it; on derived nodes only the
// name is used.
type Option func(*config)

// WithLogger sets the logger used for activation and suppression traces.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMetrics records graph events into m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithName names the node in log entries.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}
