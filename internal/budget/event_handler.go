package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/moneymappr/internal/core/events"
)

// ComparisonReader is the part of Service the alert handler needs.
type ComparisonReader interface {
	Compare(ctx context.Context, month string) ([]Comparison, error)
}

// EventHandler warns when a transaction pushes its category over budget.
type EventHandler struct {
	comparisons ComparisonReader
	logger      *slog.Logger
}

func NewEventHandler(comparisons ComparisonReader, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		comparisons: comparisons,
		logger:      logger,
	}
}

func (h *EventHandler) HandleTransactionChanged(ctx context.Context, event events.Event) error {
	txEvent, ok := event.(*events.TransactionEvent)
	if !ok {
		h.logger.Error("invalid event type for budget alert handler", "event_type", event.EventType())
		return fmt.Errorf("expected TransactionEvent, got %T", event)
	}

	month := txEvent.Date.MonthKey()
	comparisons, err := h.comparisons.Compare(ctx, month.String())
	if err != nil {
		return fmt.Errorf("budget comparison for %s failed: %w", month, err)
	}

	for _, c := range comparisons {
		if c.Category != txEvent.Category || !c.OverBudget {
			continue
		}
		h.logger.Warn("category over budget",
			"category", c.Category,
			"month", month,
			"budget", c.Budget.String(),
			"spent", c.Spent.String(),
			"transaction_id", txEvent.TransactionID,
			"event_id", txEvent.EventID())
	}

	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	handled := []string{events.EventTypeTransactionCreated, events.EventTypeTransactionUpdated}
	eventBus.SubscribeAll(handled, h.HandleTransactionChanged)

	h.logger.Info("budget event handlers registered", "handlers", handled)
}
