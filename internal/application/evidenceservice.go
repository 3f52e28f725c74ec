// Package application contains use-case orchestration services.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/hacktoberspam/internal/domain/model"
	"github.com/ericfisherdev/hacktoberspam/internal/domain/port/driven"
)

// EvidenceService gathers the reputation evidence used to classify the author
// of a pull request.
type EvidenceService struct {
	reader driven.ReputationReader
	graph  driven.ContributionGraph
	logger *slog.Logger
}

// NewEvidenceService creates a new EvidenceService.
func NewEvidenceService(reader driven.ReputationReader, graph driven.ContributionGraph) *EvidenceService {
	return &EvidenceService{
		reader: reader,
		graph:  graph,
		logger: slog.Default(),
	}
}

// Membership runs the existing-contributor probe chain and stops at the first
// confirmation:
//
//  1. organization membership (organization-owned repositories only),
//  2. public organization membership, only when (1) was indeterminate,
//  3. direct collaborator status,
//  4. the repository's contributor list.
//
// Probes after a confirmation are left indeterminate. Lookup failures other
// than "not found" or "forbidden" are returned.
func (s *EvidenceService) Membership(ctx context.Context, repo model.Repository, login string) (model.MembershipEvidence, error) {
	var ev model.MembershipEvidence
	var err error

	if repo.IsOrganization() {
		ev.OrgMember, err = s.reader.OrgMembership(ctx, repo.Owner, login)
		if err != nil {
			return ev, err
		}
		s.logProbe("org_member", repo, login, ev.OrgMember)
		if ev.OrgMember == model.ProbeConfirmed {
			return ev, nil
		}

		if ev.OrgMember == model.ProbeIndeterminate {
			ev.PublicMember, err = s.reader.PublicOrgMembership(ctx, repo.Owner, login)
			if err != nil {
				return ev, err
			}
			s.logProbe("public_member", repo, login, ev.PublicMember)
			if ev.PublicMember == model.ProbeConfirmed {
				return ev, nil
			}
		}
	}

	ev.Collaborator, err = s.reader.Collaborator(ctx, repo, login)
	if err != nil {
		return ev, err
	}
	s.logProbe("collaborator", repo, login, ev.Collaborator)
	if ev.Collaborator == model.ProbeConfirmed {
		return ev, nil
	}

	ev.Contributor, err = s.reader.Contributor(ctx, repo, login)
	if err != nil {
		return ev, err
	}
	s.logProbe("contributor", repo, login, ev.Contributor)

	return ev, nil
}

// Scoring gathers the new-contributor signals concurrently: the account
// creation time (when the payload lacked it), the contribution volume before
// the window, and the number of qualifying comments, counting at most
// requiredComments of them. It returns once every probe has finished.
func (s *EvidenceService) Scoring(
	ctx context.Context,
	actor model.Actor,
	repo model.Repository,
	window model.Window,
	requiredComments int,
) (model.Evidence, error) {
	ev := model.Evidence{Actor: actor}

	g, gctx := errgroup.WithContext(ctx)

	if !actor.HasCreatedAt() {
		g.Go(func() error {
			resolved, err := s.reader.FetchUser(gctx, actor.Login)
			if err != nil {
				return err
			}
			ev.Actor.CreatedAt = resolved.CreatedAt
			return nil
		})
	}

	g.Go(func() error {
		ev.Contributions = s.ContributionVolume(gctx, actor.Login, window)
		return nil
	})

	g.Go(func() error {
		count, err := s.QualifyingComments(gctx, repo, actor.Login, window, requiredComments)
		if err != nil {
			return err
		}
		ev.QualifyingComments = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.Evidence{}, err
	}
	return ev, nil
}

// ContributionVolume sums the actor's public contributions dated before the
// window start. The probe is advisory: any failure is logged and reported as
// an unknown count instead of an error.
func (s *EvidenceService) ContributionVolume(ctx context.Context, login string, window model.Window) model.ContributionCount {
	days, err := s.graph.Contributions(ctx, login, window.Start.Year())
	if err != nil {
		s.logger.Warn("contribution volume unavailable, scoring as zero", "actor", login, "error", err)
		return model.ContributionCount{}
	}

	total := model.SumContributionsBefore(days, window.Start)
	s.logger.Debug("contribution volume", "actor", login, "days", len(days), "total", total)
	return model.ContributionCount{Total: total, Known: true}
}

// QualifyingComments counts comments by login on the repository that were
// created this year (on or after January 1st) and more than one month before
// the window start. Counting
// stops once required comments have been found; required <= 0 means no limit.
func (s *EvidenceService) QualifyingComments(
	ctx context.Context,
	repo model.Repository,
	login string,
	window model.Window,
	required int,
) (int, error) {
	yearStart := window.YearStart()
	cutoff := window.CommentCutoff()
	count := 0

	err := s.reader.EachRepoComment(ctx, repo, yearStart, func(c model.Comment) bool {
		if !strings.EqualFold(c.Author, login) || c.CreatedAt.Before(yearStart) || !c.CreatedAt.Before(cutoff) {
			return true
		}
		count++
		return required <= 0 || count < required
	})
	if err != nil {
		return 0, fmt.Errorf("counting comments by %s: %w", login, err)
	}

	s.logger.Debug("qualifying comments", "repo", repo.FullName(), "actor", login, "count", count)
	return count, nil
}

func (s *EvidenceService) logProbe(probe string, repo model.Repository, login string, result model.Probe) {
	s.logger.Debug("reputation probe",
		"probe", probe,
		"repo", repo.FullName(),
		"actor", login,
		"result", result.String(),
	)
}
