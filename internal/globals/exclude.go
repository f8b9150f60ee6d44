package globals

import "strings"

// Exclusion tokens with dedicated handling. These gate whole collection
// steps instead of only filtering their output.
const (
	GateComposables = "composables"
	GateServerUtils = "server-utils"
)

// ExclusionFilter decides which origin groups make it into the output.
//
// A group is excluded when any exclude token is a substring of its name.
// The "composables" token is kept out of that check because it occurs in
// many directory-derived group names (e.g. "#app/composables/router"); it
// only suppresses the dedicated composables group.
type ExclusionFilter struct {
	tokens []string
	gates  map[string]bool
}

// NewExclusionFilter builds a filter from Settings.Exclude. Blank tokens are
// ignored: an empty substring would match every group.
func NewExclusionFilter(exclude []string, gated ...string) ExclusionFilter {
	f := ExclusionFilter{gates: map[string]bool{}}

	gateable := map[string]bool{GateComposables: true, GateServerUtils: true}
	for _, g := range gated {
		gateable[g] = true
	}

	for _, raw := range exclude {
		t := strings.TrimSpace(raw)
		if t == "" {
			continue
		}
		if gateable[t] {
			f.gates[t] = true
		}
		if t == GateComposables {
			continue
		}
		f.tokens = append(f.tokens, t)
	}
	return f
}

// Excludes reports whether identifiers from group must be dropped
func (f ExclusionFilter) Excludes(group string) bool {
	if group == ComposablesGroup && f.gates[GateComposables] {
		return true
	}
	for _, t := range f.tokens {
		if strings.Contains(group, t) {
			return true
		}
	}
	return false
}

// Skips reports whether the collection step named gate should not run at all
func (f ExclusionFilter) Skips(gate string) bool {
	return f.gates[gate]
}

// Tokens returns the tokens used for substring matching
func (f ExclusionFilter) Tokens() []string {
	return append([]string{}, f.tokens...)
}
