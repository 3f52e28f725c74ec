package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/hacktoberspam/internal/adapter/driven/contributions"
	githubadapter "github.com/ericfisherdev/hacktoberspam/internal/adapter/driven/github"
	"github.com/ericfisherdev/hacktoberspam/internal/adapter/driving/action"
	"github.com/ericfisherdev/hacktoberspam/internal/application"
	"github.com/ericfisherdev/hacktoberspam/internal/config"
	"github.com/ericfisherdev/hacktoberspam/internal/domain/model"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		action.SetFailed(os.Stdout, err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing inputs).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 2. Configure logging; RUNNER_DEBUG=1 enables probe-level detail.
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	slog.Info("config loaded",
		"event", cfg.EventName,
		"api_url", cfg.APIURL,
		"all_new_contributors_are_spam", cfg.AllNewContributorsAreSpam,
		"aggressive_spam_retaliation", cfg.AggressiveSpamRetaliation,
	)

	// 3. Setup signal-based context (the runner sends SIGTERM on cancel).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Decode the triggering event.
	event, err := action.LoadEvent(cfg.EventName, cfg.EventPath)
	if err != nil {
		return err
	}

	// 5. Wire adapters. The contribution calendar is scraped from the profile
	// page first and read through GraphQL when scraping fails.
	ghClient, err := githubadapter.NewClient(cfg.GitHubToken, cfg.APIURL, cfg.GraphQLURL)
	if err != nil {
		return err
	}
	graph := contributions.Fallback{
		contributions.NewScraper(cfg.ServerURL),
		ghClient,
	}

	// 6. Create services.
	evidenceSvc := application.NewEvidenceService(ghClient, graph)
	detector := application.NewSpamDetector(evidenceSvc, model.DefaultTrustThresholds(), cfg.AllNewContributorsAreSpam)
	remediator := application.NewRemediator(ghClient)
	guard := application.NewGuardService(detector, remediator, cfg.AggressiveSpamRetaliation)

	// 7. Evaluate and remediate.
	verdict, outcomes, err := guard.Handle(ctx, event, time.Now().UTC())
	if err != nil {
		return err
	}
	slog.Info("evaluation complete",
		"repo", event.Repo.FullName(),
		"pr_number", event.Number,
		"actor", event.Actor.Login,
		"spam", verdict.Spam,
		"reason", verdict.Reason,
		"steps", len(outcomes),
	)

	// 8. Publish the verdict.
	return action.SetOutput(os.Stdout, cfg.OutputPath, "spam", strconv.FormatBool(verdict.Spam))
}
