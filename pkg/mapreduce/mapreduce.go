package mapreduce

// FrequencyTable counts token occurrences and remembers the order in which
// tokens were first seen, which is used to break ties in TopN.
type FrequencyTable struct {
	counts map[string]int
	order  []string
	total  int
}

// NewFrequencyTable returns an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[string]int)}
}

// Add counts one occurrence of token.
func (t *FrequencyTable) Add(token string) {
	t.AddN(token, 1)
}

// AddN counts n occurrences of token. n <= 0 is ignored.
func (t *FrequencyTable) AddN(token string, n int) {
	if n <= 0 {
		return
	}
	if _, seen := t.counts[token]; !seen {
		t.order = append(t.order, token)
	}
	t.counts[token] += n
	t.total += n
}

// Count returns how often token was seen.
func (t *FrequencyTable) Count(token string) int {
	return t.counts[token]
}

// Len returns the number of distinct tokens.
func (t *FrequencyTable) Len() int {
	return len(t.order)
}

// Total returns the sum of all counts.
func (t *FrequencyTable) Total() int {
	return t.total
}

// Map generates a frequency table for one source's tokens.
func Map(tokens []string) *FrequencyTable {
	t := NewFrequencyTable()
	for _, tok := range tokens {
		t.Add(tok)
	}
	return t
}

// Reduce aggregates per-source tables into a single table. First-seen order
// follows the order of the inputs.
func Reduce(intermediate []*FrequencyTable) *FrequencyTable {
	final := NewFrequencyTable()
	for _, t := range intermediate {
		if t == nil {
			continue
		}
		for _, tok := range t.order {
			final.AddN(tok, t.counts[tok])
		}
	}
	return final
}
