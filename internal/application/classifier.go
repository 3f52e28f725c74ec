package application

import "github.com/ericfisherdev/hacktoberspam/internal/domain/model"

// ExistingContributor reports whether the membership evidence confirms the
// actor as an organization member, collaborator or previous contributor.
// Existing contributors are never scored.
func ExistingContributor(m model.MembershipEvidence) bool {
	return m.Existing()
}

// ScoreNewContributor computes the trust score of an actor who is not an
// existing contributor. Account age is measured in fractional calendar months
// from account creation to the window start. An unknown contribution count
// scores as zero.
func ScoreNewContributor(ev model.Evidence, window model.Window, thresholds model.TrustThresholds) model.Score {
	return model.Score{
		AgeRule:        AccountAgeRule(model.MonthsBetween(ev.Actor.CreatedAt, window.Start), ev.Contributions, thresholds),
		EngagementRule: EngagementRule(ev.QualifyingComments, thresholds),
	}
}

// AccountAgeRule awards a point if any age tier is satisfied: the account is
// strictly older than the tier's months and has at least the tier's
// contributions.
func AccountAgeRule(ageMonths float64, contributions model.ContributionCount, thresholds model.TrustThresholds) bool {
	for _, tier := range thresholds.AgeTiers {
		if ageMonths > tier.MinMonths && contributions.Value() >= tier.MinContributions {
			return true
		}
	}
	return false
}

// EngagementRule awards a point for at least RequiredComments qualifying
// comments.
func EngagementRule(qualifyingComments int, thresholds model.TrustThresholds) bool {
	return qualifyingComments >= thresholds.RequiredComments
}
