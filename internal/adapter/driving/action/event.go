// Package action adapts the GitHub Actions runner protocol: it reads the
// triggering event from the runner's payload file and reports outputs and
// failures through workflow commands.
package action

import (
	"fmt"
	"os"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/hacktoberspam/internal/domain/model"
)

// LoadEvent reads the webhook payload at path for the event called name.
// Only pull_request payloads are decoded; for any other event the returned
// Event carries just its name, which the detector rejects without probing.
func LoadEvent(name, path string) (model.Event, error) {
	if name != model.EventPullRequest {
		return model.Event{Name: name}, nil
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return model.Event{}, fmt.Errorf("reading event payload: %w", err)
	}
	return ParseEvent(name, payload)
}

// ParseEvent decodes a pull_request webhook payload into an Event. The actor
// is the pull request author, falling back to the event sender.
func ParseEvent(name string, payload []byte) (model.Event, error) {
	parsed, err := gh.ParseWebHook(name, payload)
	if err != nil {
		return model.Event{}, fmt.Errorf("parsing %s payload: %w", name, err)
	}

	pe, ok := parsed.(*gh.PullRequestEvent)
	if !ok {
		return model.Event{Name: name}, nil
	}

	user := pe.GetPullRequest().GetUser()
	if user.GetLogin() == "" {
		user = pe.GetSender()
	}
	if user.GetLogin() == "" {
		return model.Event{}, fmt.Errorf("%s payload has no pull request author", name)
	}

	repo := pe.GetRepo()
	if repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return model.Event{}, fmt.Errorf("%s payload has no repository", name)
	}

	number := pe.GetNumber()
	if number == 0 {
		number = pe.GetPullRequest().GetNumber()
	}

	return model.Event{
		Name:   name,
		Action: pe.GetAction(),
		Number: number,
		Actor: model.Actor{
			Login:     user.GetLogin(),
			CreatedAt: user.GetCreatedAt().Time,
		},
		Repo: model.Repository{
			Owner:     repo.GetOwner().GetLogin(),
			OwnerKind: model.ParseOwnerKind(repo.GetOwner().GetType()),
			Name:      repo.GetName(),
		},
	}, nil
}
