// Package github implements the ReputationReader, IssueWriter and
// ContributionGraph ports using the go-github library.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/hacktoberspam/internal/domain/model"
	"github.com/ericfisherdev/hacktoberspam/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ReputationReader = (*Client)(nil)

// DefaultAPIURL and DefaultGraphQLURL are the github.com endpoints.
const (
	DefaultAPIURL     = "https://api.github.com/"
	DefaultGraphQLURL = "https://api.github.com/graphql"
)

// Client implements the driven ports against the GitHub REST and GraphQL APIs.
type Client struct {
	gh         *gh.Client
	members    *gh.Client // Same transport, redirects not followed.
	token      string     // Stored for GraphQL Authorization header.
	graphqlURL string
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with token auth)
//
// apiURL and graphqlURL may be empty to use the github.com endpoints.
func NewClient(token, apiURL, graphqlURL string) (*Client, error) {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)
	members := gh.NewClient(withoutRedirects(rateLimitClient)).WithAuthToken(token)

	if apiURL != "" {
		u, err := parseBaseURL(apiURL)
		if err != nil {
			return nil, err
		}
		client.BaseURL = u
		members.BaseURL = u
	}
	if graphqlURL == "" {
		graphqlURL = DefaultGraphQLURL
	}

	return &Client{
		gh:         client,
		members:    members,
		token:      token,
		graphqlURL: graphqlURL,
	}, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) (*Client, error) {
	client := gh.NewClient(httpClient)
	members := gh.NewClient(withoutRedirects(httpClient))

	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	client.BaseURL = u
	members.BaseURL = u

	// Derive graphqlURL from baseURL so httptest servers can intercept GraphQL requests.
	graphqlU := *u
	graphqlU.Path = "/graphql"

	return &Client{
		gh:         client,
		members:    members,
		token:      token,
		graphqlURL: graphqlU.String(),
	}, nil
}

// withoutRedirects returns a copy of c that hands 3xx responses back to the
// caller instead of following them.
func withoutRedirects(c *http.Client) *http.Client {
	cp := *c
	cp.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &cp
}

// parseBaseURL parses a REST base URL, adding the trailing slash go-github requires.
func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	return u, nil
}

// OrgMembership checks whether login is a member of org. When the requester is
// not itself an org member GitHub answers with a 302 to the public membership
// endpoint; the redirect is not followed and the result is ProbeIndeterminate,
// leaving public membership to PublicOrgMembership.
func (c *Client) OrgMembership(ctx context.Context, org, login string) (model.Probe, error) {
	ok, resp, err := c.members.Organizations.IsMember(ctx, org, login)
	logRateLimit(resp, org+"/members", 0, 1)
	probe, err := probeResult(ok, err)
	if err != nil {
		return probe, fmt.Errorf("checking membership of %s in org %s: %w", login, org, err)
	}
	return probe, nil
}

// PublicOrgMembership checks whether login publicly belongs to org.
func (c *Client) PublicOrgMembership(ctx context.Context, org, login string) (model.Probe, error) {
	ok, resp, err := c.gh.Organizations.IsPublicMember(ctx, org, login)
	logRateLimit(resp, org+"/public_members", 0, 1)
	probe, err := probeResult(ok, err)
	if err != nil {
		return probe, fmt.Errorf("checking public membership of %s in org %s: %w", login, org, err)
	}
	return probe, nil
}

// Collaborator checks whether login is a direct collaborator on repo.
func (c *Client) Collaborator(ctx context.Context, repo model.Repository, login string) (model.Probe, error) {
	ok, resp, err := c.gh.Repositories.IsCollaborator(ctx, repo.Owner, repo.Name, login)
	logRateLimit(resp, repo.FullName()+"/collaborators", 0, 1)
	probe, err := probeResult(ok, err)
	if err != nil {
		return probe, fmt.Errorf("checking collaborator %s on %s: %w", login, repo.FullName(), err)
	}
	return probe, nil
}

// Contributor walks the contributor list of repo page by page and reports
// ProbeConfirmed as soon as login is found, ProbeDenied once every page has been
// read without a match.
func (c *Client) Contributor(ctx context.Context, repo model.Repository, login string) (model.Probe, error) {
	opts := &gh.ListContributorsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	for {
		contributors, resp, err := c.gh.Repositories.ListContributors(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			if isForbidden(err) {
				slog.Warn("contributor list not accessible", "repo", repo.FullName(), "error", err)
				return model.ProbeIndeterminate, nil
			}
			return model.ProbeIndeterminate, fmt.Errorf("listing contributors for %s (page %d): %w", repo.FullName(), opts.Page, err)
		}

		logRateLimit(resp, repo.FullName()+"/contributors", opts.Page, len(contributors))

		for _, contributor := range contributors {
			if strings.EqualFold(contributor.GetLogin(), login) {
				return model.ProbeConfirmed, nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return model.ProbeDenied, nil
}

// EachRepoComment streams the repository's commit comments and then its issue
// and pull request comments, skipping any created before since. Pages are
// fetched only while fn keeps returning true.
func (c *Client) EachRepoComment(ctx context.Context, repo model.Repository, since time.Time, fn func(model.Comment) bool) error {
	more, err := c.eachCommitComment(ctx, repo, since, fn)
	if err != nil || !more {
		return err
	}
	_, err = c.eachIssueComment(ctx, repo, since, fn)
	return err
}

// eachCommitComment walks GET /repos/{owner}/{repo}/comments. The endpoint has
// no since parameter, so the creation time is filtered here. It reports
// whether fn wants more comments.
func (c *Client) eachCommitComment(ctx context.Context, repo model.Repository, since time.Time, fn func(model.Comment) bool) (bool, error) {
	opts := &gh.ListOptions{PerPage: 100}

	for {
		comments, resp, err := c.gh.Repositories.ListComments(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return false, fmt.Errorf("listing commit comments for %s (page %d): %w", repo.FullName(), opts.Page, err)
		}

		logRateLimit(resp, repo.FullName()+"/comments", opts.Page, len(comments))

		for _, comment := range comments {
			mapped := mapCommitComment(comment)
			if mapped.CreatedAt.Before(since) {
				continue
			}
			if !fn(mapped) {
				return false, nil
			}
		}

		if resp.NextPage == 0 {
			return true, nil
		}
		opts.Page = resp.NextPage
	}
}

// eachIssueComment walks the repository-wide issue comment listing, oldest
// first. GitHub applies since to updated_at, so comments created earlier but
// edited later are skipped here.
func (c *Client) eachIssueComment(ctx context.Context, repo model.Repository, since time.Time, fn func(model.Comment) bool) (bool, error) {
	opts := &gh.IssueListCommentsOptions{
		Sort:        gh.Ptr("created"),
		Direction:   gh.Ptr("asc"),
		Since:       &since,
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	for {
		// Issue number 0 lists comments across the whole repository.
		comments, resp, err := c.gh.Issues.ListComments(ctx, repo.Owner, repo.Name, 0, opts)
		if err != nil {
			return false, fmt.Errorf("listing issue comments for %s (page %d): %w", repo.FullName(), opts.Page, err)
		}

		logRateLimit(resp, repo.FullName()+"/issues/comments", opts.Page, len(comments))

		for _, comment := range comments {
			mapped := mapComment(comment)
			if mapped.CreatedAt.Before(since) {
				continue
			}
			if !fn(mapped) {
				return false, nil
			}
		}

		if resp.NextPage == 0 {
			return true, nil
		}
		opts.Page = resp.NextPage
	}
}

// FetchUser returns login's account with its creation time.
func (c *Client) FetchUser(ctx context.Context, login string) (model.Actor, error) {
	user, resp, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		return model.Actor{}, fmt.Errorf("fetching user %s: %w", login, err)
	}

	logRateLimit(resp, "users/"+login, 0, 1)

	return model.Actor{
		Login:     user.GetLogin(),
		CreatedAt: user.GetCreatedAt().Time,
	}, nil
}

// probeResult maps a go-github boolean lookup to a Probe. go-github already
// turns 404 into (false, nil); a 403 or a 302 means the token may not see the
// answer.
func probeResult(ok bool, err error) (model.Probe, error) {
	if err != nil {
		if isForbidden(err) || isRedirect(err) {
			return model.ProbeIndeterminate, nil
		}
		return model.ProbeIndeterminate, err
	}
	if ok {
		return model.ProbeConfirmed, nil
	}
	return model.ProbeDenied, nil
}

// isForbidden reports whether err is a plain 403 from the API. Rate limit
// errors have their own types and are not matched.
func isForbidden(err error) bool {
	var ghErr *gh.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusForbidden
}

// mapCommitComment converts a go-github RepositoryComment to a domain model Comment.
func mapCommitComment(c *gh.RepositoryComment) model.Comment {
	return model.Comment{
		ID:        c.GetID(),
		Author:    c.GetUser().GetLogin(),
		CreatedAt: c.GetCreatedAt().Time,
	}
}

// isRedirect reports whether err wraps a 3xx response that was not followed.
func isRedirect(err error) bool {
	var redirErr *gh.RedirectionError
	if errors.As(err, &redirErr) {
		return true
	}
	var ghErr *gh.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil &&
		ghErr.Response.StatusCode >= 300 && ghErr.Response.StatusCode < 400
}

// mapComment converts a go-github IssueComment to a domain model Comment.
func mapComment(c *gh.IssueComment) model.Comment {
	return model.Comment{
		ID:        c.GetID(),
		Author:    c.GetUser().GetLogin(),
		CreatedAt: c.GetCreatedAt().Time,
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
