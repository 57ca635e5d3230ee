// Package resolution assigns general-ledger classifications to extracted
// item codes. Profile overrides take precedence over the reference table;
// codes found in neither fall back to the manual-review sentinel and are
// tracked so the run can report them.
package resolution

import (
	"log/slog"

	"github.com/FACorreiaa/invoice-ledger/internal/profile"
	"github.com/FACorreiaa/invoice-ledger/internal/reference"
)

// Resolver classifies item codes for a single processing run. It is not
// safe for concurrent use; each run builds its own resolver against the
// freshly loaded table.
type Resolver struct {
	profile *profile.Profile
	table   *reference.Table
	logger  *slog.Logger

	unresolved []string
	seen       map[string]struct{}
}

// New builds a resolver over the profile's overrides and the given table.
func New(p *profile.Profile, table *reference.Table, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		profile: p,
		table:   table,
		logger:  logger,
		seen:    make(map[string]struct{}),
	}
}

// Resolve returns the GL code and description for an item code. Override
// entries win over the table so a site can pin codes the vendor keeps
// reusing for different goods. Unknown codes get the fallback sentinel.
func (r *Resolver) Resolve(code string) (string, string) {
	if o, ok := r.profile.OverrideFor(code); ok {
		return o.GLCode, o.GLDescription
	}
	if e, ok := r.table.Lookup(code); ok {
		return e.GLCode, e.GLDescription
	}

	if _, dup := r.seen[code]; !dup {
		r.seen[code] = struct{}{}
		r.unresolved = append(r.unresolved, code)
		r.logger.Warn("item code missing from reference table",
			slog.String("item_code", code))
	}
	return r.profile.Fallback.GLCode, r.profile.Fallback.GLDescription
}

// Unresolved returns the distinct codes that fell back to the sentinel,
// in first-seen order.
func (r *Resolver) Unresolved() []string {
	return r.unresolved
}
