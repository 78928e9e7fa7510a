package mapreduce

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// KeywordCount is one entry of a top-N selection.
type KeywordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// TopN returns the n most frequent tokens, highest count first. Equal
// counts keep first-seen order. Fewer than n distinct tokens returns all of
// them; n <= 0 returns nothing.
func (t *FrequencyTable) TopN(n int) []KeywordCount {
	if n <= 0 || t == nil || len(t.order) == 0 {
		return nil
	}

	ss := make([]KeywordCount, 0, len(t.order))
	for _, tok := range t.order {
		ss = append(ss, KeywordCount{Word: tok, Count: t.counts[tok]})
	}

	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].Count > ss[j].Count
	})

	if len(ss) > n {
		ss = ss[:n]
	}
	return ss
}

// TopKeywords returns the top n keywords formatted as "word:count".
func TopKeywords(t *FrequencyTable, n int) []string {
	top := t.TopN(n)
	keywords := make([]string, len(top))
	for i, kc := range top {
		keywords[i] = fmt.Sprintf("%s:%d", kc.Word, kc.Count)
	}
	return keywords
}

// FormatKeywords renders a selection the way the summary line prints it:
// [('word', 3), ('other', 1)].
func FormatKeywords(top []KeywordCount) string {
	parts := make([]string, len(top))
	for i, kc := range top {
		parts[i] = fmt.Sprintf("('%s', %d)", kc.Word, kc.Count)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// PrintTopKeywords writes a selection as a numbered list.
func PrintTopKeywords(w io.Writer, top []KeywordCount) {
	for i, kc := range top {
		fmt.Fprintf(w, "%d. %s: %d\n", i+1, kc.Word, kc.Count)
	}
}
