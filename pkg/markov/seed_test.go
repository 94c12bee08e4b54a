package markov

import (
	"errors"
	"testing"
)

func TestNormalizeSeed(t *testing.T) {
	testCases := []struct {
		name    string
		seed    Seed
		order   int
		want    State
		wantErr error
	}{
		{name: "Single token", seed: SingleToken("a"), order: 1, want: State{"a"}},
		{name: "Single token wrong order", seed: SingleToken("a"), order: 2, wantErr: ErrSeedArityMismatch},
		{name: "Delimited text", seed: DelimitedText(" x \t y "), order: 2, want: State{"x", "y"}},
		{name: "Delimited text for order one", seed: DelimitedText("x"), order: 1, want: State{"x"}},
		{name: "Delimited text too long", seed: DelimitedText("x y z"), order: 2, wantErr: ErrSeedArityMismatch},
		{name: "Token sequence", seed: TokenSequence{"p", "q", "r"}, order: 3, want: State{"p", "q", "r"}},
		{name: "Token sequence too short", seed: TokenSequence{"p"}, order: 3, wantErr: ErrSeedArityMismatch},
		{name: "Nil seed", seed: nil, order: 1, wantErr: ErrSeedArityMismatch},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeSeed(tc.seed, tc.order)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("NormalizeSeed() error = %v, want %v", err, tc.wantErr)
			}
			if !got.Equal(tc.want) {
				t.Errorf("NormalizeSeed() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNormalizeSeedCopies(t *testing.T) {
	seq := TokenSequence{"a", "b"}
	state, err := NormalizeSeed(seq, 2)
	if err != nil {
		t.Fatal(err)
	}
	seq[0] = "changed"
	if state[0] != "a" {
		t.Errorf("state shares memory with the seed: %v", state)
	}
}
