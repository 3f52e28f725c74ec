package driven

import (
	"context"

	"github.com/ericfisherdev/hacktoberspam/internal/domain/model"
)

// IssueWriter defines the driven port for the GitHub write operations used to
// remediate a spam pull request. Pull requests are addressed through the
// Issues API, so number is the pull request number.
type IssueWriter interface {
	// AddLabels adds labels to the issue or pull request.
	AddLabels(ctx context.Context, repo model.Repository, number int, labels []string) error
	// Close transitions the issue or pull request to the closed state.
	Close(ctx context.Context, repo model.Repository, number int) error
	// CreateComment posts a top-level comment.
	CreateComment(ctx context.Context, repo model.Repository, number int, body string) error
	// Lock locks the conversation with the given reason.
	Lock(ctx context.Context, repo model.Repository, number int, reason string) error
}
