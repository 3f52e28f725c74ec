package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/hacktoberspam/internal/domain/model"
	"github.com/ericfisherdev/hacktoberspam/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.IssueWriter = (*Client)(nil)

// AddLabels adds labels to an issue or pull request.
func (c *Client) AddLabels(ctx context.Context, repo model.Repository, number int, labels []string) error {
	_, resp, err := c.gh.Issues.AddLabelsToIssue(ctx, repo.Owner, repo.Name, number, labels)
	if err != nil {
		return fmt.Errorf("adding labels %v to %s#%d: %w", labels, repo.FullName(), number, err)
	}

	logRateLimit(resp, repo.FullName()+"/labels", 0, len(labels))
	return nil
}

// Close sets the state of an issue or pull request to closed.
func (c *Client) Close(ctx context.Context, repo model.Repository, number int) error {
	_, resp, err := c.gh.Issues.Edit(ctx, repo.Owner, repo.Name, number, &gh.IssueRequest{
		State: gh.Ptr("closed"),
	})
	if err != nil {
		return fmt.Errorf("closing %s#%d: %w", repo.FullName(), number, err)
	}

	logRateLimit(resp, repo.FullName()+"/close", 0, 1)
	return nil
}

// CreateComment creates a top-level (non-diff) comment on an issue or pull request.
func (c *Client) CreateComment(ctx context.Context, repo model.Repository, number int, body string) error {
	_, resp, err := c.gh.Issues.CreateComment(ctx, repo.Owner, repo.Name, number, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return fmt.Errorf("creating comment on %s#%d: %w", repo.FullName(), number, err)
	}

	logRateLimit(resp, repo.FullName()+"/comment", 0, 1)
	return nil
}

// Lock locks the conversation of an issue or pull request.
func (c *Client) Lock(ctx context.Context, repo model.Repository, number int, reason string) error {
	resp, err := c.gh.Issues.Lock(ctx, repo.Owner, repo.Name, number, &gh.LockIssueOptions{
		LockReason: reason,
	})
	if err != nil {
		return fmt.Errorf("locking %s#%d: %w", repo.FullName(), number, err)
	}

	logRateLimit(resp, repo.FullName()+"/lock", 0, 1)
	return nil
}
