package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ericfisherdev/hacktoberspam/internal/domain/model"
	"github.com/ericfisherdev/hacktoberspam/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ContributionGraph = (*Client)(nil)

// graphqlHTTPClient is the HTTP client used for GraphQL requests.
// It enforces a 30-second timeout as a safety net alongside context cancellation.
var graphqlHTTPClient = &http.Client{Timeout: 30 * time.Second}

const contributionCalendarQuery = `query($login: String!, $from: DateTime!, $to: DateTime!) {
	user(login: $login) {
		contributionsCollection(from: $from, to: $to) {
			contributionCalendar {
				weeks {
					contributionDays {
						date
						contributionCount
					}
				}
			}
		}
	}
}`

// graphqlRequest is the JSON body sent to the GitHub GraphQL API.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// graphqlResponse represents the expected shape of a GitHub GraphQL response
// for a user's contribution calendar.
type graphqlResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					Weeks []struct {
						ContributionDays []struct {
							Date              string `json:"date"`
							ContributionCount int    `json:"contributionCount"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Contributions queries the GraphQL contribution calendar of login for the
// whole of year. Unlike the REST lookups this is only ever used as a fallback
// source for an advisory signal, so callers are expected to tolerate errors.
func (c *Client) Contributions(ctx context.Context, login string, year int) ([]model.ContributionDay, error) {
	if c.token == "" {
		return nil, errors.New("graphql contribution calendar requires a GitHub token")
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0).Add(-time.Second)

	reqBody := graphqlRequest{
		Query: contributionCalendarQuery,
		Variables: map[string]any{
			"login": login,
			"from":  from.Format(time.RFC3339),
			"to":    to.Format(time.RFC3339),
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling contribution calendar query: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating contribution calendar request: %w", err)
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("bearer %s", c.token))
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := graphqlHTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("contribution calendar query for %s: %w", login, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("contribution calendar query for %s: HTTP %d", login, resp.StatusCode)
	}

	var gqlResp graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return nil, fmt.Errorf("decoding contribution calendar for %s: %w", login, err)
	}

	if len(gqlResp.Errors) > 0 {
		return nil, fmt.Errorf("contribution calendar query for %s: %s", login, gqlResp.Errors[0].Message)
	}
	if gqlResp.Data.User == nil {
		return nil, fmt.Errorf("contribution calendar query for %s: user not found", login)
	}

	var days []model.ContributionDay
	for _, week := range gqlResp.Data.User.ContributionsCollection.ContributionCalendar.Weeks {
		for _, day := range week.ContributionDays {
			date, err := time.Parse(time.DateOnly, day.Date)
			if err != nil {
				return nil, fmt.Errorf("parsing contribution date %q for %s: %w", day.Date, login, err)
			}
			days = append(days, model.ContributionDay{Date: date, Count: day.ContributionCount})
		}
	}

	return days, nil
}
