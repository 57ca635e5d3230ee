package extraction

import (
	"strings"

	"github.com/FACorreiaa/invoice-ledger/internal/profile"
)

// SegmentState tracks whether the scan is inside the items table.
type SegmentState int

const (
	// BeforeItems covers everything outside the items table: the
	// invoice head, footer boilerplate, and the gap between a totals
	// block and the next page's table.
	BeforeItems SegmentState = iota
	// InItems marks the table body where item lines live.
	InItems
)

func (s SegmentState) String() string {
	if s == InItems {
		return "in_items"
	}
	return "before_items"
}

// Segmenter decides line by line which parts of the rendered document
// belong to the items table. Footer boilerplate knocks the scan out of
// the table, the column header row arms it, and a totals line ends it
// until the next page's header re-arms it.
type Segmenter struct {
	minLineTokens int
	footers       *MarkerSet
	headers       *MarkerSet
	terminators   *MarkerSet

	state      SegmentState
	headerSeen bool
}

// NewSegmenter builds a segmenter from the profile's layout phrases.
func NewSegmenter(p *profile.Profile) *Segmenter {
	return &Segmenter{
		minLineTokens: p.MinLineTokens,
		footers:       NewMarkerSet(p.FooterPhrases),
		headers:       NewMarkerSet(p.HeaderMarkers),
		terminators:   NewMarkerSet(p.TerminatorPhrases),
	}
}

// Next consumes the next line of the document and reports whether it is
// an items-table body candidate. Lines below the minimum token count are
// ignored outright and never affect state, so a two-word footer fragment
// cannot knock the scan out of the table.
func (s *Segmenter) Next(line string) bool {
	if len(strings.Fields(line)) < s.minLineTokens {
		return false
	}
	if s.footers.Contains(line) {
		s.state = BeforeItems
		return false
	}
	if s.headers.ContainsAll(line) {
		s.headerSeen = true
		return false
	}
	// A seen header arms the table from the following line onward,
	// including re-arming after a totals block on multi-page invoices.
	if s.headerSeen && s.state == BeforeItems {
		s.state = InItems
	}
	if s.state == BeforeItems {
		return false
	}
	if s.terminators.Contains(line) {
		s.state = BeforeItems
		return false
	}
	return true
}

// State returns the current scan state.
func (s *Segmenter) State() SegmentState {
	return s.state
}

// Reset returns the segmenter to its initial state for a fresh document.
func (s *Segmenter) Reset() {
	s.state = BeforeItems
	s.headerSeen = false
}
