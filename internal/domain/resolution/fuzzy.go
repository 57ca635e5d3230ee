package resolution

import (
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/FACorreiaa/invoice-ledger/internal/reference"
)

// Suggestion is a reference entry ranked by similarity to a code the
// resolver could not classify.
type Suggestion struct {
	ItemCode      string
	GLCode        string
	GLDescription string
	Score         int // 0-100, higher is closer
	Distance      int // Levenshtein edit distance
}

// Suggester proposes nearby reference codes for unresolved ones. It
// catches the usual damage: truncated codes, OCR flips, and pack-size
// suffixes the reference sheet does not carry.
type Suggester struct {
	entries []reference.Entry
	mu      sync.RWMutex
}

// NewSuggester builds a suggester over the table's entries.
func NewSuggester(table *reference.Table) *Suggester {
	s := &Suggester{}
	s.Rebuild(table)
	return s
}

// Rebuild replaces the entry set, for long-lived processes that reload
// the reference table.
func (s *Suggester) Rebuild(table *reference.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = table.Entries()
}

// Rank returns up to limit entries ordered by similarity to code,
// closest first. Ties keep table order.
func (s *Suggester) Rank(code string, limit int) []Suggestion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 {
		return nil
	}

	normalized := strings.ToUpper(strings.TrimSpace(code))
	results := make([]Suggestion, 0, len(s.entries))
	for _, e := range s.entries {
		results = append(results, Suggestion{
			ItemCode:      e.ItemCode,
			GLCode:        e.GLCode,
			GLDescription: e.GLDescription,
			Score:         similarityScore(normalized, strings.ToUpper(e.ItemCode)),
			Distance:      levenshteinDistance(normalized, strings.ToUpper(e.ItemCode)),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results
}

// Best returns the closest entry scoring at or above threshold, or nil.
func (s *Suggester) Best(code string, threshold int) *Suggestion {
	ranked := s.Rank(code, 1)
	if len(ranked) == 0 || ranked[0].Score < threshold {
		return nil
	}
	return &ranked[0]
}

// EntryCount reports the number of entries the suggester ranks against.
func (s *Suggester) EntryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// similarityScore rates two codes 0-100 by combining exact and
// containment checks, Levenshtein distance, and subsequence ranking.
func similarityScore(s1, s2 string) int {
	if s1 == s2 {
		return 100
	}

	// Containment covers pack-size suffixes: "JUC15" inside "JUC15CS".
	if strings.Contains(s1, s2) {
		return 75 + (25 * len(s2) / len(s1))
	}
	if strings.Contains(s2, s1) {
		return 75 + (25 * len(s1) / len(s2))
	}

	distance := levenshteinDistance(s1, s2)
	maxLen := max(len(s1), len(s2))
	if maxLen == 0 {
		return 0
	}
	levenshteinScore := 100 * (maxLen - distance) / maxLen

	// Subsequence rank from the fuzzy library: the earlier the match
	// starts, the better.
	fuzzyLibScore := 0
	if rank := fuzzy.RankMatch(s2, s1); rank >= 0 && rank < len(s1) {
		fuzzyLibScore = 60 - (rank * 40 / len(s1))
	}

	return max(levenshteinScore, fuzzyLibScore)
}

// levenshteinDistance is the classic two-row edit distance.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}
