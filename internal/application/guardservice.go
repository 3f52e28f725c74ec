package application

import (
	"context"
	"time"

	"github.com/ericfisherdev/hacktoberspam/internal/domain/model"
)

// GuardService runs one evaluation and, for spam, the remediation plan.
type GuardService struct {
	detector   *SpamDetector
	remediator *Remediator
	aggressive bool
}

// NewGuardService creates a new GuardService. aggressive selects the plan that
// also labels the pull request "spam" and locks it.
func NewGuardService(detector *SpamDetector, remediator *Remediator, aggressive bool) *GuardService {
	return &GuardService{
		detector:   detector,
		remediator: remediator,
		aggressive: aggressive,
	}
}

// Handle evaluates event at now and remediates the pull request when it is
// spam. The verdict is returned even when remediation fails part way, along
// with the per-step outcomes and the remediation error.
func (s *GuardService) Handle(ctx context.Context, event model.Event, now time.Time) (model.Verdict, []model.StepOutcome, error) {
	verdict, err := s.detector.Evaluate(ctx, event, now)
	if err != nil {
		return model.Verdict{}, nil, err
	}
	if !verdict.Spam {
		return verdict, nil, nil
	}

	outcomes, err := s.remediator.Apply(ctx, event.Repo, event.Number, model.PlanRemediation(s.aggressive))
	return verdict, outcomes, err
}
