package driven

import (
	"context"
	"time"

	"github.com/ericfisherdev/hacktoberspam/internal/domain/model"
)

// ReputationReader defines the driven port for the read-only GitHub lookups
// that feed the contributor classifier.
//
// Membership-style lookups return a model.Probe: ProbeConfirmed for an
// affirmative answer, ProbeDenied for a definitive "no", ProbeIndeterminate
// when the platform refused to answer. Any other failure is returned as an
// error.
type ReputationReader interface {
	// OrgMembership checks (private) organization membership.
	OrgMembership(ctx context.Context, org, login string) (model.Probe, error)
	// PublicOrgMembership checks public organization membership.
	PublicOrgMembership(ctx context.Context, org, login string) (model.Probe, error)
	// Collaborator checks direct collaborator status on the repository.
	Collaborator(ctx context.Context, repo model.Repository, login string) (model.Probe, error)
	// Contributor walks the repository's contributor list looking for login.
	Contributor(ctx context.Context, repo model.Repository, login string) (model.Probe, error)

	// EachRepoComment calls fn for every commit comment and every issue or pull
	// request comment in the repository created since the given instant,
	// fetching pages lazily.
	// Iteration stops as soon as fn returns false.
	EachRepoComment(ctx context.Context, repo model.Repository, since time.Time, fn func(model.Comment) bool) error

	// FetchUser returns the account with its creation time.
	FetchUser(ctx context.Context, login string) (model.Actor, error)
}

// ContributionGraph defines the driven port for a user's public contribution
// calendar.
type ContributionGraph interface {
	// Contributions returns the per-day contribution counts of login for the
	// calendar starting on January 1st of year.
	Contributions(ctx context.Context, login string, year int) ([]model.ContributionDay, error)
}
