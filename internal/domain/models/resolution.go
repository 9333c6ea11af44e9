package models

// ResolutionOutcome tags the result of a link resolution attempt.
type ResolutionOutcome string

const (
	OutcomeResolved       ResolutionOutcome = "resolved"
	OutcomeUnresolvable   ResolutionOutcome = "unresolvable"
	OutcomeTransportError ResolutionOutcome = "transport_error"
)

// Resolution is the result of asking the resolver for a direct media URL.
// DirectURL is only set when Outcome is OutcomeResolved; Reason carries a
// diagnostic for the failure outcomes.
type Resolution struct {
	Outcome   ResolutionOutcome
	DirectURL string
	Reason    string
}

// Resolved reports whether a playable URL was obtained.
func (r Resolution) Resolved() bool {
	return r.Outcome == OutcomeResolved && r.DirectURL != ""
}
