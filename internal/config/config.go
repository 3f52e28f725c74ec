// Package config loads the action configuration from the environment the
// workflow runner provides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Default endpoints, used when the runner does not provide its own
// (GitHub Enterprise Server runners do).
const (
	DefaultAPIURL     = "https://api.github.com/"
	DefaultGraphQLURL = "https://api.github.com/graphql"
	DefaultServerURL  = "https://github.com"
)

// Config holds the action inputs and runner environment for one run.
type Config struct {
	GitHubToken               string
	AllNewContributorsAreSpam bool
	AggressiveSpamRetaliation bool

	EventName  string
	EventPath  string
	OutputPath string // Empty means outputs go to stdout in the legacy format.

	APIURL     string
	GraphQLURL string
	ServerURL  string

	Debug bool
}

// Load reads the action inputs (INPUT_*) and the runner variables (GITHUB_*,
// RUNNER_DEBUG) and returns a validated Config.
// The token input is required and is accepted as INPUT_GITHUB-TOKEN (the name
// the runner derives from "github-token") or INPUT_GITHUB_TOKEN.
// GITHUB_EVENT_NAME and GITHUB_EVENT_PATH are required. Boolean inputs accept
// anything strconv.ParseBool does; empty means false.
func Load() (*Config, error) {
	token := firstNonEmpty(os.Getenv("INPUT_GITHUB-TOKEN"), os.Getenv("INPUT_GITHUB_TOKEN"))
	if token == "" {
		return nil, errors.New("input github-token is required (INPUT_GITHUB-TOKEN)")
	}

	allNew, err := boolInput("INPUT_ALL_NEW_CONTRIBUTORS_ARE_SPAM")
	if err != nil {
		return nil, err
	}
	aggressive, err := boolInput("INPUT_AGGRESSIVE_SPAM_RETALIATION")
	if err != nil {
		return nil, err
	}

	eventName := os.Getenv("GITHUB_EVENT_NAME")
	if eventName == "" {
		return nil, errors.New("GITHUB_EVENT_NAME is required")
	}
	eventPath := os.Getenv("GITHUB_EVENT_PATH")
	if eventPath == "" {
		return nil, errors.New("GITHUB_EVENT_PATH is required")
	}

	return &Config{
		GitHubToken:               token,
		AllNewContributorsAreSpam: allNew,
		AggressiveSpamRetaliation: aggressive,
		EventName:                 eventName,
		EventPath:                 eventPath,
		OutputPath:                os.Getenv("GITHUB_OUTPUT"),
		APIURL:                    envOr("GITHUB_API_URL", DefaultAPIURL),
		GraphQLURL:                envOr("GITHUB_GRAPHQL_URL", DefaultGraphQLURL),
		ServerURL:                 envOr("GITHUB_SERVER_URL", DefaultServerURL),
		Debug:                     os.Getenv("RUNNER_DEBUG") == "1",
	}, nil
}

func boolInput(key string) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s has invalid boolean %q: %w", key, v, err)
	}
	return b, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
