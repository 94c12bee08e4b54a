package markov

import (
	"fmt"
	"log/slog"
	"slices"
)

// walkResult summarizes a single walk over a table.
type walkResult struct {
	emitted  int
	deadEnds int
}

// Generate walks t starting from seed and returns the generated tokens.
//
// A nil seed starts from a state chosen uniformly at random. Otherwise the seed
// must normalize to a state of t, or Generate fails with ErrSeedArityMismatch
// or ErrUnknownSeedState before producing anything.
//
// The output always begins with the k tokens of the initial state. Tokens are
// then drawn until the output holds at least length tokens. Reaching a state
// with no recorded successors restarts the walk from a random state and emits
// all k of its tokens at once, so the output may exceed length by up to k-1
// tokens per restart. The output is never truncated; when length <= k it is
// exactly the initial state.
func (g *Generator) Generate(t *Table, seed Seed, length int) ([]string, error) {
	initial, err := g.start(t, seed)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, max(length, t.order))
	res := g.walk(t, initial, length, func(token string) bool {
		out = append(out, token)
		return true
	})

	g.logger.Debug("Generation finished",
		slog.Int("order", t.order),
		slog.Int("requested_length", length),
		slog.Int("generated_length", res.emitted),
		slog.Int("dead_ends", res.deadEnds),
	)

	return out, nil
}

// start resolves the initial state of a walk as token IDs.
func (g *Generator) start(t *Table, seed Seed) ([]int, error) {
	if seed == nil {
		if len(t.states) == 0 {
			return nil, fmt.Errorf("%w: transition table has no states", ErrCorpusTooSmall)
		}
		return slices.Clone(t.states[pick(g.rng, len(t.states))]), nil
	}

	state, err := NormalizeSeed(seed, t.order)
	if err != nil {
		return nil, err
	}
	idx, ok := t.stateIndex(state)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSeedState, state.String())
	}
	return slices.Clone(t.states[idx]), nil
}

// walk contains the main loop for generating a chain. Every emitted token is
// passed to yield; the walk stops early if yield returns false.
func (g *Generator) walk(t *Table, initial []int, length int, yield func(string) bool) walkResult {
	var res walkResult
	emit := func(tokenID int) bool {
		res.emitted++
		return yield(t.words[tokenID])
	}

	state := slices.Clone(initial)
	for _, tokenID := range state {
		if !emit(tokenID) {
			return res
		}
	}

	var keyBuf []byte
	for res.emitted < length {
		keyBuf = appendPrefixKey(keyBuf[:0], state)

		var choices []int
		if idx, ok := t.prefixes[string(keyBuf)]; ok {
			choices = t.successors[idx]
		}

		if len(choices) == 0 { // Dead end in chain
			res.deadEnds++
			copy(state, t.states[pick(g.rng, len(t.states))])
			g.logger.Debug("Dead end reached, reseeding",
				slog.String("last_prefix", string(keyBuf)),
				slog.Int("generated_length", res.emitted),
			)
			for _, tokenID := range state {
				if !emit(tokenID) {
					return res
				}
			}
			continue
		}

		nextToken := choices[pick(g.rng, len(choices))]
		if !emit(nextToken) {
			return res
		}
		copy(state, state[1:])
		state[len(state)-1] = nextToken
	}

	return res
}
