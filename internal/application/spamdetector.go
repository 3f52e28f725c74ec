package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ericfisherdev/hacktoberspam/internal/domain/model"
)

// SpamDetector decides whether a pull request event is seasonal spam.
type SpamDetector struct {
	evidence                  *EvidenceService
	thresholds                model.TrustThresholds
	allNewContributorsAreSpam bool
	logger                    *slog.Logger
}

// NewSpamDetector creates a new SpamDetector. When allNewContributorsAreSpam is
// set, every actor who is not an existing contributor is treated as spam
// without being scored.
func NewSpamDetector(evidence *EvidenceService, thresholds model.TrustThresholds, allNewContributorsAreSpam bool) *SpamDetector {
	return &SpamDetector{
		evidence:                  evidence,
		thresholds:                thresholds,
		allNewContributorsAreSpam: allNewContributorsAreSpam,
		logger:                    slog.Default(),
	}
}

// Evaluate classifies event at instant now. A pull request is spam only if it
// was just opened, now is inside the season window, its author is not an
// existing contributor, and either the override is set or the author's trust
// score is below the minimum.
//
// Errors are only returned for failed platform lookups; no verdict is valid
// alongside an error.
func (d *SpamDetector) Evaluate(ctx context.Context, event model.Event, now time.Time) (model.Verdict, error) {
	if !event.IsPullRequestOpened() {
		return model.Verdict{Reason: model.ReasonNotPullRequestOpened}, nil
	}

	window := model.SeasonWindow(now)
	if !window.Contains(now) {
		return model.Verdict{Reason: model.ReasonOutsideWindow}, nil
	}

	logger := d.logger.With("repo", event.Repo.FullName(), "pr_number", event.Number, "actor", event.Actor.Login)

	membership, err := d.evidence.Membership(ctx, event.Repo, event.Actor.Login)
	if err != nil {
		return model.Verdict{}, fmt.Errorf("checking existing contributor: %w", err)
	}
	if ExistingContributor(membership) {
		logger.Info("existing contributor, skipping")
		return model.Verdict{
			Reason:   model.ReasonExistingContributor,
			Evidence: model.Evidence{Actor: event.Actor, Membership: membership},
		}, nil
	}

	if d.allNewContributorsAreSpam {
		logger.Info("new contributor treated as spam by configuration")
		return model.Verdict{
			Spam:     true,
			Reason:   model.ReasonOverride,
			Evidence: model.Evidence{Actor: event.Actor, Membership: membership},
		}, nil
	}

	ev, err := d.evidence.Scoring(ctx, event.Actor, event.Repo, window, d.thresholds.RequiredComments)
	if err != nil {
		return model.Verdict{}, fmt.Errorf("gathering new contributor evidence: %w", err)
	}
	ev.Membership = membership

	score := ScoreNewContributor(ev, window, d.thresholds)
	verdict := model.Verdict{
		Spam:     !score.Reaches(d.thresholds.MinimumScore),
		Reason:   model.ReasonTrustedNewContributor,
		Evidence: ev,
		Score:    score,
		Scored:   true,
	}
	if verdict.Spam {
		verdict.Reason = model.ReasonLowTrust
	}

	logger.Info("new contributor scored",
		"score", score.Value(),
		"age_rule", score.AgeRule,
		"engagement_rule", score.EngagementRule,
		"contributions", ev.Contributions.Total,
		"contributions_known", ev.Contributions.Known,
		"qualifying_comments", ev.QualifyingComments,
		"spam", verdict.Spam,
	)

	return verdict, nil
}
