package events

import (
	"time"

	"github.com/frahmantamala/moneymappr/internal/core/common/datetime"
	"github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventTypeTransactionCreated = "transaction.created"
	EventTypeTransactionUpdated = "transaction.updated"
	EventTypeTransactionDeleted = "transaction.deleted"
	EventTypeBudgetSaved        = "budget.saved"
)

// AllEventTypes lists every event the service publishes.
func AllEventTypes() []string {
	return []string{
		EventTypeTransactionCreated,
		EventTypeTransactionUpdated,
		EventTypeTransactionDeleted,
		EventTypeBudgetSaved,
	}
}

type TransactionEvent struct {
	BaseEvent
	TransactionID uuid.UUID         `json:"transaction_id"`
	Amount        decimal.Decimal   `json:"amount"`
	Category      category.Category `json:"category"`
	Date          datetime.Date     `json:"date"`
}

func NewTransactionEvent(eventType string, id uuid.UUID, amount decimal.Decimal, cat category.Category, date datetime.Date) *TransactionEvent {
	return &TransactionEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"transaction_id": id.String(),
				"amount":         amount.String(),
				"category":       string(cat),
				"date":           date.String(),
			},
		},
		TransactionID: id,
		Amount:        amount,
		Category:      cat,
		Date:          date,
	}
}

type BudgetSavedEvent struct {
	BaseEvent
	BudgetID uuid.UUID         `json:"budget_id"`
	Category category.Category `json:"category"`
	Month    datetime.Month    `json:"month"`
	Amount   decimal.Decimal   `json:"amount"`
}

func NewBudgetSavedEvent(id uuid.UUID, cat category.Category, month datetime.Month, amount decimal.Decimal) *BudgetSavedEvent {
	return &BudgetSavedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeBudgetSaved,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"budget_id": id.String(),
				"category":  string(cat),
				"month":     string(month),
				"amount":    amount.String(),
			},
		},
		BudgetID: id,
		Category: cat,
		Month:    month,
		Amount:   amount,
	}
}
