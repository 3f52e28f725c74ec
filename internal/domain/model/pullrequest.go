package model

import "time"

// Event names and actions the detector understands.
const (
	EventPullRequest = "pull_request"
	ActionOpened     = "opened"
)

// Actor is the account that opened the pull request.
type Actor struct {
	Login     string
	CreatedAt time.Time // Zero when the payload did not carry it.
}

// HasCreatedAt reports whether the account creation time is known.
func (a Actor) HasCreatedAt() bool {
	return !a.CreatedAt.IsZero()
}

// Event is the inbound trigger for one evaluation. Only pull_request events
// populate Number, Actor and Repo.
type Event struct {
	Name   string
	Action string
	Number int
	Actor  Actor
	Repo   Repository
}

// IsPullRequestOpened reports whether the event is a newly-opened pull request.
func (e Event) IsPullRequestOpened() bool {
	return e.Name == EventPullRequest && e.Action == ActionOpened
}
