package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/hacktoberspam/internal/domain/model"
	"github.com/ericfisherdev/hacktoberspam/internal/domain/port/driven"
)

// Remediator applies a remediation plan to a pull request.
type Remediator struct {
	writer driven.IssueWriter
	logger *slog.Logger
}

// NewRemediator creates a new Remediator.
func NewRemediator(writer driven.IssueWriter) *Remediator {
	return &Remediator{
		writer: writer,
		logger: slog.Default(),
	}
}

// Apply runs steps against pull request number in order. The first failing
// step stops the sequence: it is reported with its error, every later step is
// reported as skipped, and an error naming the failed step is returned.
// Steps that already ran are not rolled back and nothing is retried.
func (r *Remediator) Apply(ctx context.Context, repo model.Repository, number int, steps []model.RemediationStep) ([]model.StepOutcome, error) {
	outcomes := make([]model.StepOutcome, 0, len(steps))
	var failed error

	for _, step := range steps {
		if failed != nil {
			outcomes = append(outcomes, model.StepOutcome{Step: step, Skipped: true})
			continue
		}

		err := r.execute(ctx, repo, number, step)
		outcomes = append(outcomes, model.StepOutcome{Step: step, Err: err})
		if err != nil {
			r.logger.Error("remediation step failed", "repo", repo.FullName(), "pr_number", number, "step", step.Kind, "error", err)
			failed = fmt.Errorf("remediation step %s: %w", step.Kind, err)
			continue
		}
		r.logger.Info("remediation step applied", "repo", repo.FullName(), "pr_number", number, "step", step.Kind)
	}

	return outcomes, failed
}

func (r *Remediator) execute(ctx context.Context, repo model.Repository, number int, step model.RemediationStep) error {
	switch step.Kind {
	case model.StepAddLabels:
		return r.writer.AddLabels(ctx, repo, number, step.Labels)
	case model.StepClose:
		return r.writer.Close(ctx, repo, number)
	case model.StepComment:
		return r.writer.CreateComment(ctx, repo, number, step.Body)
	case model.StepLock:
		return r.writer.Lock(ctx, repo, number, step.LockReason)
	default:
		return fmt.Errorf("unknown remediation step %q", step.Kind)
	}
}
