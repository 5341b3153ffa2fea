package refactor

import "strings"

// Concern is a named category of code issue with its own instruction
// template and independent pass.
type Concern int

const (
	ConcernSecurity Concern = iota
	ConcernPerformance
	ConcernMemory
	ConcernCorrectness
	ConcernMaintainability
	ConcernReliability
)

// canonicalOrder fixes the pass sequence. Pipeline order is never
// derived from configuration iteration order, so two runs with the
// same enabled set always execute identically.
var canonicalOrder = []Concern{
	ConcernSecurity,
	ConcernPerformance,
	ConcernMemory,
	ConcernCorrectness,
	ConcernMaintainability,
	ConcernReliability,
}

// String returns the display name of the concern.
func (c Concern) String() string {
	switch c {
	case ConcernSecurity:
		return "Security"
	case ConcernPerformance:
		return "Performance"
	case ConcernMemory:
		return "Memory"
	case ConcernCorrectness:
		return "Correctness"
	case ConcernMaintainability:
		return "Maintainability"
	case ConcernReliability:
		return "Reliability"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so concerns serialize
// by name in JSON reports.
func (c Concern) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseConcern maps a case-insensitive concern name to its value.
func ParseConcern(name string) (Concern, bool) {
	for _, c := range canonicalOrder {
		if strings.EqualFold(c.String(), name) {
			return c, true
		}
	}
	return 0, false
}

// AllConcerns returns the canonical pass order.
func AllConcerns() []Concern {
	out := make([]Concern, len(canonicalOrder))
	copy(out, canonicalOrder)
	return out
}

// ConcernTemplate is a concern paired with its fixed instruction body.
type ConcernTemplate struct {
	Concern         Concern
	InstructionBody string
}

// ActivePasses returns the ordered pass templates for the config:
// the canonical order filtered to the enabled set. Returns
// ErrNoActivePasses when the filtered sequence is empty.
func ActivePasses(cfg *PipelineConfig) ([]ConcernTemplate, error) {
	var passes []ConcernTemplate
	for _, c := range canonicalOrder {
		if cfg.Enabled(c) {
			passes = append(passes, ConcernTemplate{
				Concern:         c,
				InstructionBody: concernInstructions[c],
			})
		}
	}
	if len(passes) == 0 {
		return nil, ErrNoActivePasses
	}
	return passes, nil
}
