package budget_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/moneymappr/internal"
	"github.com/frahmantamala/moneymappr/internal/budget"
	"github.com/frahmantamala/moneymappr/internal/core/common/datetime"
	budgetDatamodel "github.com/frahmantamala/moneymappr/internal/core/datamodel/budget"
	"github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
	"github.com/frahmantamala/moneymappr/internal/core/events"
	"github.com/shopspring/decimal"
)

type budgetKey struct {
	category category.Category
	month    datetime.Month
}

// Mock repository for testing
type mockBudgetRepository struct {
	budgets   map[budgetKey]*budgetDatamodel.Budget
	listCalls int
	listError error
	saveError error
}

func newMockBudgetRepository() *mockBudgetRepository {
	return &mockBudgetRepository{budgets: make(map[budgetKey]*budgetDatamodel.Budget)}
}

func (m *mockBudgetRepository) ListByMonth(ctx context.Context, month datetime.Month) ([]*budgetDatamodel.Budget, error) {
	m.listCalls++
	if m.listError != nil {
		return nil, m.listError
	}
	var result []*budgetDatamodel.Budget
	for key, b := range m.budgets {
		if key.month == month {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Category < result[j].Category })
	return result, nil
}

func (m *mockBudgetRepository) Upsert(ctx context.Context, b *budgetDatamodel.Budget) (*budgetDatamodel.Budget, error) {
	if m.saveError != nil {
		return nil, m.saveError
	}
	key := budgetKey{b.Category, b.Month}
	if existing, ok := m.budgets[key]; ok {
		existing.Amount = b.Amount
		existing.UpdatedAt = time.Now()
		return existing, nil
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	m.budgets[key] = b
	return b, nil
}

type stubSpending struct {
	spent map[category.Category]decimal.Decimal
	err   error
}

func (s *stubSpending) SpentByCategory(ctx context.Context, month datetime.Month) (map[category.Category]decimal.Decimal, error) {
	return s.spent, s.err
}

type countingPublisher struct {
	published []events.Event
}

func (p *countingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func amountPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func fieldCode(err error) (string, string) {
	appErr, ok := internal.IsAppError(err)
	Expect(ok).To(BeTrue())
	details, ok := appErr.Details.(internal.ValidationErrors)
	Expect(ok).To(BeTrue())
	return details.Errors[0].Field, details.Errors[0].Code
}

var _ = Describe("Budget Service", func() {
	var (
		repo      *mockBudgetRepository
		spending  *stubSpending
		publisher *countingPublisher
		service   *budget.Service
		ctx       context.Context
	)

	BeforeEach(func() {
		repo = newMockBudgetRepository()
		spending = &stubSpending{spent: map[category.Category]decimal.Decimal{}}
		publisher = &countingPublisher{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = budget.NewService(repo, spending, publisher, logger, time.Second)
		ctx = context.Background()
	})

	Describe("ListByMonth", func() {
		It("rejects a missing month without touching the store", func() {
			_, err := service.ListByMonth(ctx, "")

			Expect(errors.Is(err, internal.ErrMonthRequired)).To(BeTrue())
			Expect(repo.listCalls).To(BeZero())
		})

		It("rejects a malformed month", func() {
			_, err := service.ListByMonth(ctx, "2025-13")

			field, code := fieldCode(err)
			Expect(field).To(Equal("month"))
			Expect(code).To(Equal(string(internal.ErrCodeInvalidMonth)))
			Expect(repo.listCalls).To(BeZero())
		})

		It("returns an empty list for a month without budgets", func() {
			budgets, err := service.ListByMonth(ctx, "2025-01")

			Expect(err).NotTo(HaveOccurred())
			Expect(budgets).To(BeEmpty())
		})

		It("maps store failures to an internal error", func() {
			repo.listError = errors.New("connection reset")

			_, err := service.ListByMonth(ctx, "2025-01")

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(500))
		})
	})

	Describe("Save", func() {
		It("creates a budget and publishes budget.saved", func() {
			b, err := service.Save(ctx, budget.SaveBudgetDTO{
				Category: category.Food,
				Amount:   amountPtr("300"),
				Month:    "2025-01",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(b.Category).To(Equal(category.Food))
			Expect(b.Amount.Equal(decimal.NewFromInt(300))).To(BeTrue())
			Expect(publisher.published).To(HaveLen(1))
			Expect(publisher.published[0].EventType()).To(Equal(events.EventTypeBudgetSaved))
		})

		It("replaces the amount for an existing pair", func() {
			first, err := service.Save(ctx, budget.SaveBudgetDTO{Category: category.Food, Amount: amountPtr("300"), Month: "2025-01"})
			Expect(err).NotTo(HaveOccurred())

			second, err := service.Save(ctx, budget.SaveBudgetDTO{Category: category.Food, Amount: amountPtr("350"), Month: "2025-01"})
			Expect(err).NotTo(HaveOccurred())

			Expect(second.ID).To(Equal(first.ID))
			Expect(second.Amount.Equal(decimal.NewFromInt(350))).To(BeTrue())
			budgets, err := service.ListByMonth(ctx, "2025-01")
			Expect(err).NotTo(HaveOccurred())
			Expect(budgets).To(HaveLen(1))
		})

		DescribeTable("rejects invalid input",
			func(dto budget.SaveBudgetDTO, expectedField string, expectedCode internal.ErrorCode) {
				_, err := service.Save(ctx, dto)

				field, code := fieldCode(err)
				Expect(field).To(Equal(expectedField))
				Expect(code).To(Equal(string(expectedCode)))
				Expect(repo.budgets).To(BeEmpty())
			},
			Entry("missing category", budget.SaveBudgetDTO{Amount: amountPtr("1"), Month: "2025-01"}, "category", internal.ErrCodeRequiredField),
			Entry("unknown category", budget.SaveBudgetDTO{Category: "Travel", Amount: amountPtr("1"), Month: "2025-01"}, "category", internal.ErrCodeInvalidCategory),
			Entry("missing amount", budget.SaveBudgetDTO{Category: category.Food, Month: "2025-01"}, "amount", internal.ErrCodeRequiredField),
			Entry("zero amount", budget.SaveBudgetDTO{Category: category.Food, Amount: amountPtr("0"), Month: "2025-01"}, "amount", internal.ErrCodeInvalidAmount),
			Entry("sub-cent amount", budget.SaveBudgetDTO{Category: category.Food, Amount: amountPtr("0.004"), Month: "2025-01"}, "amount", internal.ErrCodeInvalidAmount),
			Entry("three decimal places", budget.SaveBudgetDTO{Category: category.Food, Amount: amountPtr("12.345"), Month: "2025-01"}, "amount", internal.ErrCodeInvalidAmount),
			Entry("amount above column limit", budget.SaveBudgetDTO{Category: category.Food, Amount: amountPtr("1000000000000"), Month: "2025-01"}, "amount", internal.ErrCodeInvalidAmount),
			Entry("missing month", budget.SaveBudgetDTO{Category: category.Food, Amount: amountPtr("1")}, "month", internal.ErrCodeRequiredField),
			Entry("malformed month", budget.SaveBudgetDTO{Category: category.Food, Amount: amountPtr("1"), Month: "Jan 2025"}, "month", internal.ErrCodeInvalidMonth),
		)
	})

	Describe("Compare", func() {
		BeforeEach(func() {
			_, err := service.Save(ctx, budget.SaveBudgetDTO{Category: category.Food, Amount: amountPtr("200"), Month: "2025-01"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Save(ctx, budget.SaveBudgetDTO{Category: category.Bills, Amount: amountPtr("100"), Month: "2025-01"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("reports spending against each budget", func() {
			spending.spent = map[category.Category]decimal.Decimal{
				category.Food:     decimal.NewFromInt(150),
				category.Bills:    decimal.NewFromInt(125),
				category.Shopping: decimal.NewFromInt(80),
			}

			comparisons, err := service.Compare(ctx, "2025-01")

			Expect(err).NotTo(HaveOccurred())
			Expect(comparisons).To(HaveLen(2))

			bills := comparisons[0]
			Expect(bills.Category).To(Equal(category.Bills))
			Expect(bills.OverBudget).To(BeTrue())
			Expect(bills.Remaining.Equal(decimal.NewFromInt(-25))).To(BeTrue())
			Expect(bills.PercentUsed.Equal(decimal.NewFromInt(125))).To(BeTrue())

			food := comparisons[1]
			Expect(food.Category).To(Equal(category.Food))
			Expect(food.OverBudget).To(BeFalse())
			Expect(food.Spent.Equal(decimal.NewFromInt(150))).To(BeTrue())
			Expect(food.Remaining.Equal(decimal.NewFromInt(50))).To(BeTrue())
			Expect(food.PercentUsed.Equal(decimal.NewFromInt(75))).To(BeTrue())
		})

		It("reports zero spending for untouched budgets", func() {
			comparisons, err := service.Compare(ctx, "2025-01")

			Expect(err).NotTo(HaveOccurred())
			for _, c := range comparisons {
				Expect(c.Spent.IsZero()).To(BeTrue())
				Expect(c.OverBudget).To(BeFalse())
			}
		})

		It("maps spending failures to an internal error", func() {
			spending.err = errors.New("timeout")

			_, err := service.Compare(ctx, "2025-01")

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(500))
		})
	})
})
