package application_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ericfisherdev/hacktoberspam/internal/domain/model"
)

// --- Mock implementations ---

type mockReader struct {
	mu sync.Mutex

	orgMember    model.Probe
	publicMember model.Probe
	collaborator model.Probe
	contributor  model.Probe
	probeErr     map[string]error

	comments    []model.Comment
	commentsErr error

	user    model.Actor
	userErr error

	calls        []string
	commentsSeen int
	since        time.Time
}

func (m *mockReader) record(call string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	return m.probeErr[call]
}

func (m *mockReader) OrgMembership(_ context.Context, _, _ string) (model.Probe, error) {
	return m.orgMember, m.record("org_member")
}

func (m *mockReader) PublicOrgMembership(_ context.Context, _, _ string) (model.Probe, error) {
	return m.publicMember, m.record("public_member")
}

func (m *mockReader) Collaborator(_ context.Context, _ model.Repository, _ string) (model.Probe, error) {
	return m.collaborator, m.record("collaborator")
}

func (m *mockReader) Contributor(_ context.Context, _ model.Repository, _ string) (model.Probe, error) {
	return m.contributor, m.record("contributor")
}

func (m *mockReader) EachRepoComment(_ context.Context, _ model.Repository, since time.Time, fn func(model.Comment) bool) error {
	_ = m.record("comments")
	m.mu.Lock()
	m.since = since
	m.mu.Unlock()
	if m.commentsErr != nil {
		return m.commentsErr
	}
	for _, c := range m.comments {
		m.mu.Lock()
		m.commentsSeen++
		m.mu.Unlock()
		if !fn(c) {
			return nil
		}
	}
	return nil
}

func (m *mockReader) FetchUser(_ context.Context, login string) (model.Actor, error) {
	_ = m.record("user")
	if m.userErr != nil {
		return model.Actor{}, m.userErr
	}
	actor := m.user
	actor.Login = login
	return actor, nil
}

func (m *mockReader) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

type mockGraph struct {
	days []model.ContributionDay
	err  error
}

func (m *mockGraph) Contributions(_ context.Context, _ string, _ int) ([]model.ContributionDay, error) {
	return m.days, m.err
}

type writerCall struct {
	Op     string
	Number int
	Labels []string
	Body   string
	Reason string
}

type mockWriter struct {
	calls  []writerCall
	failOn string
}

func (m *mockWriter) do(call writerCall) error {
	m.calls = append(m.calls, call)
	if call.Op == m.failOn {
		return errors.New(call.Op + " failed")
	}
	return nil
}

func (m *mockWriter) AddLabels(_ context.Context, _ model.Repository, number int, labels []string) error {
	return m.do(writerCall{Op: "labels", Number: number, Labels: labels})
}

func (m *mockWriter) Close(_ context.Context, _ model.Repository, number int) error {
	return m.do(writerCall{Op: "close", Number: number})
}

func (m *mockWriter) CreateComment(_ context.Context, _ model.Repository, number int, body string) error {
	return m.do(writerCall{Op: "comment", Number: number, Body: body})
}

func (m *mockWriter) Lock(_ context.Context, _ model.Repository, number int, reason string) error {
	return m.do(writerCall{Op: "lock", Number: number, Reason: reason})
}

func (m *mockWriter) Ops() []string {
	ops := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		ops = append(ops, c.Op)
	}
	return ops
}

// --- Fixtures ---

// insideWindow is an instant in the middle of the 2025 season.
var insideWindow = time.Date(2025, time.October, 15, 9, 30, 0, 0, time.UTC)

var seasonStart = time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)

var orgRepo = model.Repository{Owner: "acme", OwnerKind: model.OwnerOrganization, Name: "widgets"}

var userRepo = model.Repository{Owner: "alice", OwnerKind: model.OwnerUser, Name: "dotfiles"}

// accountAged returns an actor created the given number of months before the
// season start.
func accountAged(months int) model.Actor {
	return model.Actor{Login: "drive-by", CreatedAt: seasonStart.AddDate(0, -months, 0)}
}

// openedEvent returns a pull_request/opened event by actor on orgRepo.
func openedEvent(actor model.Actor) model.Event {
	return model.Event{
		Name:   model.EventPullRequest,
		Action: model.ActionOpened,
		Number: 42,
		Actor:  actor,
		Repo:   orgRepo,
	}
}

// outsider returns a reader for an actor who is nobody on the repository.
func outsider() *mockReader {
	return &mockReader{
		orgMember:    model.ProbeDenied,
		publicMember: model.ProbeDenied,
		collaborator: model.ProbeDenied,
		contributor:  model.ProbeDenied,
	}
}

// commentsBy returns n comments by login, each created well before the
// comment cutoff of the 2025 season.
func commentsBy(login string, n int) []model.Comment {
	comments := make([]model.Comment, 0, n)
	for i := range n {
		comments = append(comments, model.Comment{
			ID:        int64(i + 1),
			Author:    login,
			CreatedAt: time.Date(2025, time.March, 1+i, 10, 0, 0, 0, time.UTC),
		})
	}
	return comments
}
