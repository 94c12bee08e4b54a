package markov

import (
	"iter"
	"log/slog"
)

// Stream validates seed like Generate and returns an iterator over the tokens
// of a walk. Tokens are produced one at a time as the walk advances, and the
// walk stops as soon as the consumer stops ranging. Each range over the
// returned sequence performs a fresh walk from the same initial state, drawing
// new values from the Generator's Source.
func (g *Generator) Stream(t *Table, seed Seed, length int) (iter.Seq[string], error) {
	initial, err := g.start(t, seed)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		res := g.walk(t, initial, length, yield)
		g.logger.Debug("Stream finished",
			slog.Int("order", t.order),
			slog.Int("requested_length", length),
			slog.Int("generated_length", res.emitted),
			slog.Int("dead_ends", res.deadEnds),
		)
	}, nil
}
