package markov

import (
	"io"
	"log/slog"
)

// Generator walks transition tables. It holds the random Source every draw is
// taken from, so two Generators built on equally seeded sources produce the
// same output for the same table and arguments.
type Generator struct {
	rng    Source
	logger *slog.Logger
}

// NewGenerator creates a Generator drawing from rng. A nil rng is replaced by
// a randomly seeded source.
func NewGenerator(rng Source) *Generator {
	if rng == nil {
		rng = defaultSource()
	}
	return &Generator{
		rng:    rng,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the Generator. By default, all logs are discarded.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}
