package summary

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/moneymappr/internal"
	"golang.org/x/sync/errgroup"
)

// RepositoryAPI defines the aggregation queries the summary needs
type RepositoryAPI interface {
	MonthlyTotals(ctx context.Context) ([]MonthlyTotal, error)
	CategoryTotals(ctx context.Context) ([]CategoryTotal, error)
	Totals(ctx context.Context) (Totals, error)
}

type Service struct {
	repo         RepositoryAPI
	logger       *slog.Logger
	queryTimeout time.Duration
}

func NewService(repo RepositoryAPI, logger *slog.Logger, queryTimeout time.Duration) *Service {
	return &Service{
		repo:         repo,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

// Summary runs the three aggregations concurrently. It is recomputed on
// every call.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var (
		monthly    []MonthlyTotal
		byCategory []CategoryTotal
		totals     Totals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		monthly, err = s.repo.MonthlyTotals(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		byCategory, err = s.repo.CategoryTotals(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.repo.Totals(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to compute summary", "error", err)
		return nil, internal.NewInternalError("Failed to fetch summary", err)
	}

	return newSummary(monthly, byCategory, totals), nil
}

func (s *Service) MonthlyTotals(ctx context.Context) ([]MonthlyTotal, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	totals, err := s.repo.MonthlyTotals(ctx)
	if err != nil {
		s.logger.Error("failed to compute monthly totals", "error", err)
		return nil, internal.NewInternalError("Failed to fetch summary", err)
	}
	return totals, nil
}

func (s *Service) CategoryTotals(ctx context.Context) ([]CategoryTotal, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	totals, err := s.repo.CategoryTotals(ctx)
	if err != nil {
		s.logger.Error("failed to compute category totals", "error", err)
		return nil, internal.NewInternalError("Failed to fetch summary", err)
	}
	return totals, nil
}
