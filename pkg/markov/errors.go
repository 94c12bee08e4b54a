package markov

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned when the model order is below 1.
	ErrInvalidParameter = errors.New("markov: invalid parameter")
	// ErrCorpusTooSmall is returned when the corpus has fewer than order+1 tokens.
	ErrCorpusTooSmall = errors.New("markov: corpus too small for order")
	// ErrSeedArityMismatch is returned when a seed does not normalize to exactly
	// order tokens.
	ErrSeedArityMismatch = errors.New("markov: seed arity mismatch")
	// ErrUnknownSeedState is returned when a normalized seed is not a state of
	// the transition table.
	ErrUnknownSeedState = errors.New("markov: unknown seed state")
)

// checkParams validates the order and corpus size before any table is built.
func checkParams(tokenCount, order int) error {
	if order < 1 {
		return fmt.Errorf("%w: order must be at least 1, got %d", ErrInvalidParameter, order)
	}
	if tokenCount < order+1 {
		return fmt.Errorf("%w: %d tokens, order %d needs at least %d", ErrCorpusTooSmall, tokenCount, order, order+1)
	}
	return nil
}
