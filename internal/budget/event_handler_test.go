package budget_test

import (
	"bytes"
	"context"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/moneymappr/internal/budget"
	"github.com/frahmantamala/moneymappr/internal/core/common/datetime"
	"github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
	"github.com/frahmantamala/moneymappr/internal/core/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type stubComparisons struct {
	month       string
	comparisons []budget.Comparison
}

func (s *stubComparisons) Compare(ctx context.Context, month string) ([]budget.Comparison, error) {
	s.month = month
	return s.comparisons, nil
}

var _ = Describe("Budget EventHandler", func() {
	var (
		logs     *bytes.Buffer
		stub     *stubComparisons
		handler  *budget.EventHandler
		txnEvent *events.TransactionEvent
	)

	BeforeEach(func() {
		logs = &bytes.Buffer{}
		logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
		stub = &stubComparisons{}
		handler = budget.NewEventHandler(stub, logger)
		txnEvent = events.NewTransactionEvent(events.EventTypeTransactionCreated, uuid.New(),
			decimal.NewFromInt(90), category.Food, datetime.MustParseDate("2025-01-20"))
	})

	It("looks up the transaction's month", func() {
		Expect(handler.HandleTransactionChanged(context.Background(), txnEvent)).To(Succeed())

		Expect(stub.month).To(Equal("2025-01"))
	})

	It("warns when the category is over budget", func() {
		b := &budget.Budget{Category: category.Food, Amount: decimal.NewFromInt(100)}
		stub.comparisons = []budget.Comparison{budget.NewComparison(b, decimal.NewFromInt(140))}

		Expect(handler.HandleTransactionChanged(context.Background(), txnEvent)).To(Succeed())

		Expect(logs.String()).To(ContainSubstring("category over budget"))
	})

	It("stays quiet for other categories", func() {
		b := &budget.Budget{Category: category.Bills, Amount: decimal.NewFromInt(100)}
		stub.comparisons = []budget.Comparison{budget.NewComparison(b, decimal.NewFromInt(140))}

		Expect(handler.HandleTransactionChanged(context.Background(), txnEvent)).To(Succeed())

		Expect(logs.String()).NotTo(ContainSubstring("category over budget"))
	})

	It("rejects events of the wrong shape", func() {
		event := events.NewBudgetSavedEvent(uuid.New(), category.Food, "2025-01", decimal.NewFromInt(1))

		Expect(handler.HandleTransactionChanged(context.Background(), event)).NotTo(Succeed())
	})

	It("subscribes to created and updated transactions", func() {
		bus := events.NewEventBus(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
		handler.RegisterEventHandlers(bus)

		Expect(bus.PublishSync(context.Background(), txnEvent)).To(Succeed())
		Expect(stub.month).To(Equal("2025-01"))
	})
})
