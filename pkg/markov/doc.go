/*
Package markov builds order-k Markov models from a whitespace-tokenized corpus
and walks them to generate new token sequences.

A Model owns an immutable corpus and lazily derives a transition Table from it.
The Table maps each State (k consecutive tokens) to the ordered list of tokens
observed to follow it, keeping duplicates so that sampling uniformly by list
position reproduces the empirical frequencies of the corpus.

Generation is driven by a Generator holding an injected random Source. Seeding
a Source with a fixed value makes every walk reproducible:

	m, err := markov.NewModel("a b a c a b", 1, markov.WithRand(markov.NewSource(42)))
	if err != nil {
		return err
	}
	tokens, err := m.Generate(markov.SingleToken("a"), 10)

Seeds are given as one of the closed variants SingleToken, TokenSequence or
DelimitedText; a nil Seed starts the walk from a random state.
*/
package markov
