package model

// MinimumNewContributorScore is the trust score a new contributor needs to
// reach to not be treated as spam.
const MinimumNewContributorScore = 2

// AgeTier awards the account-age point when the account is older than
// MinMonths and has at least MinContributions contributions before the window.
type AgeTier struct {
	MinMonths        float64
	MinContributions int
}

// TrustThresholds holds the scoring rules for new contributors.
type TrustThresholds struct {
	AgeTiers         []AgeTier
	RequiredComments int
	MinimumScore     int
}

// DefaultTrustThresholds returns the hard-coded scoring rules:
// older than 12 months, or older than 6 months with 25 contributions, or older
// than 3 months with 75 contributions; at least 3 prior comments.
func DefaultTrustThresholds() TrustThresholds {
	return TrustThresholds{
		AgeTiers: []AgeTier{
			{MinMonths: 12, MinContributions: 0},
			{MinMonths: 6, MinContributions: 25},
			{MinMonths: 3, MinContributions: 75},
		},
		RequiredComments: 3,
		MinimumScore:     MinimumNewContributorScore,
	}
}

// Score is the new-contributor trust score. Each rule awards at most one point.
type Score struct {
	AgeRule        bool
	EngagementRule bool
}

// Value returns the number of rules that awarded a point (0-2).
func (s Score) Value() int {
	count := 0
	if s.AgeRule {
		count++
	}
	if s.EngagementRule {
		count++
	}
	return count
}

// Reaches reports whether the score meets the given minimum.
func (s Score) Reaches(minimum int) bool {
	return s.Value() >= minimum
}
