package domain

import dErrors "dermis/pkg/domain-errors"

// PregnancyStatus is a safety-relevant domain value.
// Invariant: the value must be one of the supported statuses.
//
// Usage: construct via ParsePregnancyStatus at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type PregnancyStatus string

const (
	PregnancyNone          PregnancyStatus = "none"
	PregnancyPregnant      PregnancyStatus = "pregnant"
	PregnancyBreastfeeding PregnancyStatus = "breastfeeding"
	PregnancyPlanning      PregnancyStatus = "planning"
)

var pregnancyStatuses = map[PregnancyStatus]struct{}{
	PregnancyNone:          {},
	PregnancyPregnant:      {},
	PregnancyBreastfeeding: {},
	PregnancyPlanning:      {},
}

// ParsePregnancyStatus validates and returns a PregnancyStatus. An empty
// string maps to PregnancyNone since most questionnaires leave it unanswered.
func ParsePregnancyStatus(s string) (PregnancyStatus, error) {
	if s == "" {
		return PregnancyNone, nil
	}
	v := PregnancyStatus(s)
	if _, ok := pregnancyStatuses[v]; !ok {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown pregnancy status: %s", s)
	}
	return v, nil
}

func (p PregnancyStatus) String() string {
	return string(p)
}

// RequiresSafetyReview reports whether the status restricts ingredient choice
// (retinoids, high-strength acids).
func (p PregnancyStatus) RequiresSafetyReview() bool {
	return p == PregnancyPregnant || p == PregnancyBreastfeeding
}
