package contributions

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ericfisherdev/hacktoberspam/internal/domain/model"
	"github.com/ericfisherdev/hacktoberspam/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ContributionGraph = Fallback(nil)

// Fallback tries each source in order and returns the first successful
// calendar. It fails only when every source fails.
type Fallback []driven.ContributionGraph

// Contributions implements driven.ContributionGraph.
func (f Fallback) Contributions(ctx context.Context, login string, year int) ([]model.ContributionDay, error) {
	if len(f) == 0 {
		return nil, errors.New("no contribution sources configured")
	}

	var errs []error
	for i, source := range f {
		days, err := source.Contributions(ctx, login, year)
		if err == nil {
			return days, nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
		slog.Debug("contribution source failed", "source", i, "login", login, "error", err)
	}
	return nil, errors.Join(errs...)
}
