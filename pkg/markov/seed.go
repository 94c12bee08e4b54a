package markov

import (
	"fmt"
	"slices"
	"strings"
)

// State is a k-token context. A state of an order-1 model holds a single
// token.
type State []string

// String joins the tokens of the state with single spaces.
func (s State) String() string {
	return strings.Join(s, " ")
}

// Equal reports whether both states hold the same tokens in the same order.
func (s State) Equal(other State) bool {
	return slices.Equal(s, other)
}

// Seed is the starting point of a generation walk. It is a closed set of
// variants: SingleToken, TokenSequence and DelimitedText.
type Seed interface {
	seedTokens(order int) ([]string, error)
}

// SingleToken is a bare token seed. It is only valid for order-1 models.
type SingleToken string

func (s SingleToken) seedTokens(order int) ([]string, error) {
	if order != 1 {
		return nil, fmt.Errorf("%w: single token seed needs order 1, model order is %d", ErrSeedArityMismatch, order)
	}
	return []string{string(s)}, nil
}

// TokenSequence is an explicit ordered list of seed tokens.
type TokenSequence []string

func (s TokenSequence) seedTokens(int) ([]string, error) {
	return slices.Clone(s), nil
}

// DelimitedText is a whitespace-delimited string of seed tokens.
type DelimitedText string

func (s DelimitedText) seedTokens(int) ([]string, error) {
	return strings.Fields(string(s)), nil
}

// NormalizeSeed resolves a seed into the State it names for a model of the
// given order. It fails with ErrSeedArityMismatch unless the seed resolves to
// exactly order tokens.
func NormalizeSeed(seed Seed, order int) (State, error) {
	if seed == nil {
		return nil, fmt.Errorf("%w: no seed given", ErrSeedArityMismatch)
	}
	tokens, err := seed.seedTokens(order)
	if err != nil {
		return nil, err
	}
	if len(tokens) != order {
		return nil, fmt.Errorf("%w: seed has %d tokens, model order is %d", ErrSeedArityMismatch, len(tokens), order)
	}
	return State(tokens), nil
}
