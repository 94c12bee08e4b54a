package markov

// Stats holds aggregated statistics for a transition table.
type Stats struct {
	Order        int // The number of tokens in each state
	States       int // The number of distinct states
	Transitions  int // The total number of recorded state->token observations
	Vocabulary   int // The number of distinct tokens in the corpus
	DeadEnds     int // The number of states with no recorded successor
	MaxBranching int // The largest number of distinct successors of any state
}

// Stats returns a snapshot of statistics for the table.
func (t *Table) Stats() Stats {
	stats := Stats{
		Order:      t.order,
		States:     len(t.states),
		Vocabulary: len(t.words),
	}
	distinct := make(map[int]struct{})
	for _, successors := range t.successors {
		stats.Transitions += len(successors)
		if len(successors) == 0 {
			stats.DeadEnds++
			continue
		}
		clear(distinct)
		for _, id := range successors {
			distinct[id] = struct{}{}
		}
		stats.MaxBranching = max(stats.MaxBranching, len(distinct))
	}
	return stats
}
