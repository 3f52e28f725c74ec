package github_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ghAdapter "github.com/ericfisherdev/hacktoberspam/internal/adapter/driven/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContributions_Success(t *testing.T) {
	gqlResponse := map[string]any{
		"data": map[string]any{
			"user": map[string]any{
				"contributionsCollection": map[string]any{
					"contributionCalendar": map[string]any{
						"weeks": []any{
							map[string]any{
								"contributionDays": []any{
									map[string]any{"date": "2025-01-01", "contributionCount": 3},
									map[string]any{"date": "2025-01-02", "contributionCount": 0},
								},
							},
							map[string]any{
								"contributionDays": []any{
									map[string]any{"date": "2025-01-08", "contributionCount": 5},
								},
							},
						},
					},
				},
			},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/graphql" {
			assert.Equal(t, "bearer test-token", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req struct {
				Variables map[string]any `json:"variables"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "alice", req.Variables["login"])
			assert.Equal(t, "2025-01-01T00:00:00Z", req.Variables["from"])
			assert.Equal(t, "2025-12-31T23:59:59Z", req.Variables["to"])

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(gqlResponse)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/", "test-token")
	require.NoError(t, err)

	days, err := client.Contributions(context.Background(), "alice", 2025)
	require.NoError(t, err)

	require.Len(t, days, 3)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), days[0].Date)
	assert.Equal(t, 3, days[0].Count)
	assert.Equal(t, 0, days[1].Count)
	assert.Equal(t, 5, days[2].Count)
}

func TestContributions_GraphQLErrors(t *testing.T) {
	gqlResponse := map[string]any{
		"data":   nil,
		"errors": []any{map[string]any{"message": "Something went wrong"}},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(gqlResponse)
	}))
	defer server.Close()

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/", "test-token")
	require.NoError(t, err)

	_, err = client.Contributions(context.Background(), "alice", 2025)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Something went wrong")
}

func TestContributions_UnknownUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"user": nil}})
	}))
	defer server.Close()

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/", "test-token")
	require.NoError(t, err)

	_, err = client.Contributions(context.Background(), "ghost", 2025)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user not found")
}

func TestContributions_NoToken(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/", "")
	require.NoError(t, err)

	_, err = client.Contributions(context.Background(), "alice", 2025)
	require.Error(t, err)
	assert.False(t, called, "no HTTP call should be made when token is empty")
}

func TestContributions_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/", "test-token")
	require.NoError(t, err)

	_, err = client.Contributions(context.Background(), "alice", 2025)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}
