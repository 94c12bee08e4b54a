package markov

import (
	"slices"
	"strconv"
)

// Table is the transition table of an order-k model. It maps every State seen
// in the corpus to the ordered list of tokens that followed it, one entry per
// occurrence. A Table is immutable once built; its accessors return copies.
type Table struct {
	order int
	// vocab interns token text; words is its inverse.
	vocab map[string]int
	words []string
	// prefixes maps a prefix key to the index of its state.
	prefixes   map[string]int
	states     [][]int
	successors [][]int
}

// BuildTable slides a window of width order across tokens and records, for
// every window, the token that follows it. States are kept in order of first
// appearance and successor lists in order of occurrence, so building twice
// from the same input yields equal tables.
func BuildTable(tokens []string, order int) (*Table, error) {
	if err := checkParams(len(tokens), order); err != nil {
		return nil, err
	}

	t := &Table{
		order:    order,
		vocab:    make(map[string]int),
		prefixes: make(map[string]int),
	}

	ids := make([]int, len(tokens))
	for i, token := range tokens {
		ids[i] = t.intern(token)
	}

	var keyBuf []byte
	for i := 0; i+order < len(ids); i++ {
		prefix := ids[i : i+order]
		keyBuf = appendPrefixKey(keyBuf[:0], prefix)

		idx, ok := t.prefixes[string(keyBuf)]
		if !ok {
			idx = len(t.states)
			t.prefixes[string(keyBuf)] = idx
			t.states = append(t.states, slices.Clone(prefix))
			t.successors = append(t.successors, nil)
		}
		t.successors[idx] = append(t.successors[idx], ids[i+order])
	}

	return t, nil
}

func (t *Table) intern(token string) int {
	if id, ok := t.vocab[token]; ok {
		return id
	}
	id := len(t.words)
	t.vocab[token] = id
	t.words = append(t.words, token)
	return id
}

// appendPrefixKey encodes a prefix of token IDs as space separated integers.
func appendPrefixKey(keyBuf []byte, prefix []int) []byte {
	for j, tokenID := range prefix {
		if j > 0 {
			keyBuf = append(keyBuf, ' ')
		}
		keyBuf = strconv.AppendInt(keyBuf, int64(tokenID), 10)
	}
	return keyBuf
}

// stateIndex resolves a state given as text to its index in the table.
func (t *Table) stateIndex(state State) (int, bool) {
	if len(state) != t.order {
		return 0, false
	}
	var keyBuf []byte
	for j, token := range state {
		id, ok := t.vocab[token]
		if !ok {
			return 0, false
		}
		if j > 0 {
			keyBuf = append(keyBuf, ' ')
		}
		keyBuf = strconv.AppendInt(keyBuf, int64(id), 10)
	}
	idx, ok := t.prefixes[string(keyBuf)]
	return idx, ok
}

func (t *Table) text(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = t.words[id]
	}
	return out
}

// Order returns the number of tokens in each state.
func (t *Table) Order() int {
	return t.order
}

// Len returns the number of states in the table.
func (t *Table) Len() int {
	return len(t.states)
}

// States returns every state of the table in order of first appearance.
func (t *Table) States() []State {
	states := make([]State, len(t.states))
	for i, ids := range t.states {
		states[i] = t.text(ids)
	}
	return states
}

// Contains reports whether state is a key of the table.
func (t *Table) Contains(state State) bool {
	_, ok := t.stateIndex(state)
	return ok
}

// Successors returns the tokens recorded after state, one entry per
// occurrence. It returns nil for a state that is not in the table.
func (t *Table) Successors(state State) []string {
	idx, ok := t.stateIndex(state)
	if !ok {
		return nil
	}
	return t.text(t.successors[idx])
}

// Equal reports whether both tables have the same order, the same states in
// the same order and the same successor lists.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.order != other.order || len(t.states) != len(other.states) {
		return false
	}
	for i := range t.states {
		if !slices.Equal(t.text(t.states[i]), other.text(other.states[i])) {
			return false
		}
		if !slices.Equal(t.text(t.successors[i]), other.text(other.successors[i])) {
			return false
		}
	}
	return true
}
