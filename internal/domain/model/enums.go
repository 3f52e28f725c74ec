package model

// Probe is the outcome of a single authoritative reputation lookup.
type Probe int

const (
	// ProbeIndeterminate means the platform refused to answer (HTTP 403) or the
	// probe was not run. It is the zero value.
	ProbeIndeterminate Probe = iota
	// ProbeDenied means the platform definitively answered "no" (HTTP 404 or
	// an exhausted listing).
	ProbeDenied
	// ProbeConfirmed means the platform definitively answered "yes" (HTTP 204
	// or a listing hit).
	ProbeConfirmed
)

// String returns a lower-case name for logging.
func (p Probe) String() string {
	switch p {
	case ProbeIndeterminate:
		return "indeterminate"
	case ProbeDenied:
		return "denied"
	case ProbeConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// CombineProbes folds probe results by precedence: any Confirmed wins, then
// any Indeterminate, otherwise Denied. An empty list is Indeterminate.
func CombineProbes(probes ...Probe) Probe {
	if len(probes) == 0 {
		return ProbeIndeterminate
	}
	result := ProbeDenied
	for _, p := range probes {
		switch p {
		case ProbeConfirmed:
			return ProbeConfirmed
		case ProbeIndeterminate:
			result = ProbeIndeterminate
		}
	}
	return result
}

// Reason records which rule decided a verdict.
type Reason string

const (
	ReasonNotPullRequestOpened  Reason = "not_pull_request_opened"
	ReasonOutsideWindow         Reason = "outside_window"
	ReasonExistingContributor   Reason = "existing_contributor"
	ReasonOverride              Reason = "all_new_contributors_are_spam"
	ReasonLowTrust              Reason = "low_trust_score"
	ReasonTrustedNewContributor Reason = "trusted_new_contributor"
)

// StepKind identifies a remediation command.
type StepKind string

const (
	StepAddLabels StepKind = "add_labels"
	StepClose     StepKind = "close"
	StepComment   StepKind = "comment"
	StepLock      StepKind = "lock"
)
