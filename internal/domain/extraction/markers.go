package extraction

import (
	"sync"

	"github.com/cloudflare/ahocorasick"
)

// MarkerSet scans text for a fixed set of layout phrases in a single pass
// using an Aho-Corasick automaton. Matching is case-sensitive because the
// vendor prints its markers with fixed casing ("Sub Total", "PRODUCT ID").
// An empty set matches nothing.
type MarkerSet struct {
	matcher *ahocorasick.Matcher
	phrases []string
	mu      sync.RWMutex
}

// NewMarkerSet builds a matcher over the given phrases. Blank phrases are
// dropped.
func NewMarkerSet(phrases []string) *MarkerSet {
	m := &MarkerSet{}
	m.Build(phrases)
	return m
}

// Build reconstructs the automaton, replacing any previous phrase set.
func (m *MarkerSet) Build(phrases []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p != "" {
			kept = append(kept, p)
		}
	}
	m.phrases = kept

	if len(kept) == 0 {
		m.matcher = nil
		return
	}
	bytePhrases := make([][]byte, len(kept))
	for i, p := range kept {
		bytePhrases[i] = []byte(p)
	}
	m.matcher = ahocorasick.NewMatcher(bytePhrases)
}

// Contains reports whether any phrase occurs in s.
func (m *MarkerSet) Contains(s string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.matcher == nil {
		return false
	}
	return len(m.matcher.MatchThreadSafe([]byte(s))) > 0
}

// ContainsAll reports whether every phrase occurs in s.
func (m *MarkerSet) ContainsAll(s string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.matcher == nil {
		return false
	}
	// Match reports each phrase index at most once per call.
	return len(m.matcher.MatchThreadSafe([]byte(s))) == len(m.phrases)
}

// Matches returns the phrases that occur in s, each at most once, in the
// order the scan first completes them.
func (m *MarkerSet) Matches(s string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.matcher == nil {
		return nil
	}
	hits := m.matcher.MatchThreadSafe([]byte(s))
	if len(hits) == 0 {
		return nil
	}
	found := make([]string, 0, len(hits))
	for _, idx := range hits {
		if idx >= 0 && idx < len(m.phrases) {
			found = append(found, m.phrases[idx])
		}
	}
	return found
}

// Size reports the number of phrases loaded.
func (m *MarkerSet) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.phrases)
}
