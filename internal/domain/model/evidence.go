package model

import "time"

// MembershipEvidence holds the results of the existing-contributor probe
// chain. Probes that were never run keep the zero value, ProbeIndeterminate.
type MembershipEvidence struct {
	OrgMember    Probe
	PublicMember Probe
	Collaborator Probe
	Contributor  Probe
}

// Combined folds every probe of the chain with CombineProbes.
func (m MembershipEvidence) Combined() Probe {
	return CombineProbes(m.OrgMember, m.PublicMember, m.Collaborator, m.Contributor)
}

// Existing reports whether any probe confirmed the actor as an existing
// member, collaborator or contributor.
func (m MembershipEvidence) Existing() bool {
	return m.Combined() == ProbeConfirmed
}

// ContributionDay is one cell of a user's public contribution calendar.
type ContributionDay struct {
	Date  time.Time
	Count int
}

// ContributionCount is the advisory contribution-volume signal. Known is
// false when the contribution calendar could not be fetched or parsed, which
// keeps "no activity" apart from "no data".
type ContributionCount struct {
	Total int
	Known bool
}

// Value returns the count used for scoring; an unknown count scores as zero.
func (c ContributionCount) Value() int {
	if !c.Known {
		return 0
	}
	return c.Total
}

// SumContributionsBefore totals the counts of all days strictly before cutoff.
func SumContributionsBefore(days []ContributionDay, cutoff time.Time) int {
	total := 0
	for _, d := range days {
		if d.Date.Before(cutoff) {
			total += d.Count
		}
	}
	return total
}

// Evidence is the bundle of probe results consumed by the classifier for one
// evaluation. It is never persisted.
type Evidence struct {
	Actor              Actor // Creation time resolved when the payload lacked it.
	Membership         MembershipEvidence
	Contributions      ContributionCount
	QualifyingComments int
}
