// Package profile defines the vendor profile: every marker phrase, stoplist,
// override, and sentinel the extraction pipeline needs to read one vendor's
// invoice layout. Profiles are YAML documents; the Eberhardt Foods profile
// ships embedded as the default.
package profile

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed eberhardt.yaml
var defaultProfile []byte

// Profile carries the vendor-format vocabulary for one invoice layout.
type Profile struct {
	Name         string `yaml:"name"`
	Currency     string `yaml:"currency"`
	VendorMarker string `yaml:"vendor_marker"`

	// HeaderMarkers must ALL appear on a line for it to count as the
	// items-table header. FooterPhrases and TerminatorPhrases match on
	// containment of any one phrase.
	HeaderMarkers     []string `yaml:"header_markers"`
	FooterPhrases     []string `yaml:"footer_phrases"`
	TerminatorPhrases []string `yaml:"terminator_phrases"`

	// StopWords disqualify a leading token from being an item code, by
	// substring containment.
	StopWords []string `yaml:"stop_words"`

	MinLineTokens int `yaml:"min_line_tokens"`
	MinItemTokens int `yaml:"min_item_tokens"`
	MinCodeLength int `yaml:"min_code_length"`

	TaxMarker          string `yaml:"tax_marker"`
	InvoiceTotalMarker string `yaml:"invoice_total_marker"`

	// ZeroTotalExceptionCode is the one item code allowed to keep a 0.00
	// line total; every other zero-total record is suppressed.
	ZeroTotalExceptionCode string   `yaml:"zero_total_exception_code"`
	ZeroForceSubstrings    []string `yaml:"zero_force_substrings"`

	Deposit   DepositRule `yaml:"deposit"`
	Overrides []Override  `yaml:"overrides"`
	Fallback  Fallback    `yaml:"fallback"`
	Summary   Summary     `yaml:"summary"`
}

// DepositRule synthesizes an item record for container-deposit lines that
// carry no real item code.
type DepositRule struct {
	Marker        string `yaml:"marker"`
	Code          string `yaml:"code"`
	GLCode        string `yaml:"gl_code"`
	GLDescription string `yaml:"gl_description"`
}

// Override maps a known item code straight to its GL pair, ahead of any
// reference-table lookup.
type Override struct {
	ItemCode      string `yaml:"item_code"`
	GLCode        string `yaml:"gl_code"`
	GLDescription string `yaml:"gl_description"`
}

// Fallback is the sentinel GL pair for codes missing from the reference
// table; resolution never fails.
type Fallback struct {
	GLCode        string `yaml:"gl_code"`
	GLDescription string `yaml:"gl_description"`
}

// Summary controls report presentation of the grouped totals.
type Summary struct {
	RelocateGroup string `yaml:"relocate_group"`
}

// Default returns the embedded Eberhardt Foods profile.
func Default() *Profile {
	p, err := parse(defaultProfile)
	if err != nil {
		panic(fmt.Sprintf("embedded profile is invalid: %v", err))
	}
	return p
}

// Load reads and validates a profile from a YAML file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	p, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", path, err)
	}
	return p, nil
}

func parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	applyDefaults(&p)
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	return &p, nil
}

func applyDefaults(p *Profile) {
	if p.Currency == "" {
		p.Currency = "USD"
	}
	if p.MinLineTokens == 0 {
		p.MinLineTokens = 3
	}
	if p.MinItemTokens == 0 {
		p.MinItemTokens = 4
	}
	if p.MinCodeLength == 0 {
		p.MinCodeLength = 3
	}
}

// Validate checks that the profile carries everything the pipeline reads.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(p.HeaderMarkers) == 0 {
		return fmt.Errorf("at least one header marker is required")
	}
	if len(p.TerminatorPhrases) == 0 {
		return fmt.Errorf("at least one terminator phrase is required")
	}
	if p.TaxMarker == "" {
		return fmt.Errorf("tax_marker is required")
	}
	if p.InvoiceTotalMarker == "" {
		return fmt.Errorf("invoice_total_marker is required")
	}
	if p.Fallback.GLCode == "" || p.Fallback.GLDescription == "" {
		return fmt.Errorf("fallback gl_code and gl_description are required")
	}
	if p.Deposit.Marker != "" {
		if p.Deposit.Code == "" || p.Deposit.GLCode == "" || p.Deposit.GLDescription == "" {
			return fmt.Errorf("deposit rule needs code, gl_code and gl_description")
		}
	}
	for i, o := range p.Overrides {
		if o.ItemCode == "" || o.GLCode == "" || o.GLDescription == "" {
			return fmt.Errorf("override %d is incomplete", i)
		}
	}
	return nil
}

// OverrideFor returns the override GL pair for code, if one is configured.
func (p *Profile) OverrideFor(code string) (Override, bool) {
	for _, o := range p.Overrides {
		if o.ItemCode == code {
			return o, true
		}
	}
	return Override{}, false
}
