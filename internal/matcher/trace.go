package matcher

import (
	"fmt"
	"strings"
)

// Attempt records the outcome of one strategy in the cascade.
type Attempt struct {
	Strategy string
	Found    bool
	Err      error
}

// Trace is the ordered record of strategy attempts for one resolution,
// used for diagnostics and audit output.
type Trace []Attempt

// Summary returns a compact human-readable view of the cascade, e.g.
// "learned_exact:no_match, rule:no_match, keyword_match:success".
func (t Trace) Summary() string {
	parts := make([]string, 0, len(t))
	for _, a := range t {
		status := "no_match"
		switch {
		case a.Found:
			status = "success"
		case a.Err != nil:
			status = "failed"
		}
		parts = append(parts, fmt.Sprintf("%s:%s", a.Strategy, status))
	}
	return strings.Join(parts, ", ")
}

// Errors returns every error encountered during the cascade.
func (t Trace) Errors() []error {
	var errs []error
	for _, a := range t {
		if a.Err != nil {
			errs = append(errs, fmt.Errorf("%s strategy: %w", a.Strategy, a.Err))
		}
	}
	return errs
}
