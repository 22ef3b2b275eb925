package budget

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/moneymappr/internal"
	"github.com/frahmantamala/moneymappr/internal/core/common/datetime"
	budgetDatamodel "github.com/frahmantamala/moneymappr/internal/core/datamodel/budget"
	"github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
	"github.com/frahmantamala/moneymappr/internal/core/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RepositoryAPI defines the data access methods for budgets
type RepositoryAPI interface {
	ListByMonth(ctx context.Context, month datetime.Month) ([]*budgetDatamodel.Budget, error)
	Upsert(ctx context.Context, b *budgetDatamodel.Budget) (*budgetDatamodel.Budget, error)
}

// SpendingReader sums a month's transactions per category.
type SpendingReader interface {
	SpentByCategory(ctx context.Context, month datetime.Month) (map[category.Category]decimal.Decimal, error)
}

type Service struct {
	repo         RepositoryAPI
	spending     SpendingReader
	publisher    events.Publisher
	logger       *slog.Logger
	queryTimeout time.Duration
}

func NewService(repo RepositoryAPI, spending SpendingReader, publisher events.Publisher, logger *slog.Logger, queryTimeout time.Duration) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		repo:         repo,
		spending:     spending,
		publisher:    publisher,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

// ListByMonth returns the month's budgets ordered by category. The month is
// checked before the store is touched.
func (s *Service) ListByMonth(ctx context.Context, rawMonth string) ([]*Budget, error) {
	month, appErr := parseMonthQuery(rawMonth)
	if appErr != nil {
		return nil, appErr
	}

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	budgets, err := s.repo.ListByMonth(ctx, month)
	if err != nil {
		s.logger.Error("failed to list budgets", "month", month, "error", err)
		return nil, internal.NewInternalError("Failed to fetch budgets", err)
	}

	return FromDataModelSlice(budgets), nil
}

// Save creates the budget for (category, month) or replaces its amount.
func (s *Service) Save(ctx context.Context, dto SaveBudgetDTO) (*Budget, error) {
	if appErr := dto.Validate(); appErr != nil {
		s.logger.Warn("budget validation failed", "error", appErr.GetDetailedMessage())
		return nil, appErr
	}

	repoCtx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	saved, err := s.repo.Upsert(repoCtx, &budgetDatamodel.Budget{
		ID:       uuid.New(),
		Category: dto.Category,
		Month:    dto.Month,
		Amount:   *dto.Amount,
	})
	if err != nil {
		s.logger.Error("failed to save budget",
			"category", dto.Category,
			"month", dto.Month,
			"error", err)
		return nil, internal.NewInternalError("Failed to save budget", err)
	}

	b := FromDataModel(saved)
	s.logger.Info("budget saved",
		"budget_id", b.ID,
		"category", b.Category,
		"month", b.Month,
		"amount", b.Amount.String())

	event := events.NewBudgetSavedEvent(b.ID, b.Category, b.Month, b.Amount)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish budget event", "budget_id", b.ID, "error", err)
	}

	return b, nil
}

// Compare reports spending against every budget of the month. Categories
// with spending but no budget are left out.
func (s *Service) Compare(ctx context.Context, rawMonth string) ([]Comparison, error) {
	month, appErr := parseMonthQuery(rawMonth)
	if appErr != nil {
		return nil, appErr
	}

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	budgets, err := s.repo.ListByMonth(ctx, month)
	if err != nil {
		s.logger.Error("failed to list budgets for comparison", "month", month, "error", err)
		return nil, internal.NewInternalError("Failed to compare budgets", err)
	}

	spent, err := s.spending.SpentByCategory(ctx, month)
	if err != nil {
		s.logger.Error("failed to sum spending for comparison", "month", month, "error", err)
		return nil, internal.NewInternalError("Failed to compare budgets", err)
	}

	comparisons := make([]Comparison, 0, len(budgets))
	for _, b := range budgets {
		comparisons = append(comparisons, NewComparison(FromDataModel(b), spent[b.Category]))
	}
	return comparisons, nil
}
