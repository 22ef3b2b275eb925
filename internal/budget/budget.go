package budget

import (
	"time"

	"github.com/frahmantamala/moneymappr/internal/core/common/datetime"
	budgetDatamodel "github.com/frahmantamala/moneymappr/internal/core/datamodel/budget"
	"github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Budget struct {
	ID        uuid.UUID         `json:"id"`
	Category  category.Category `json:"category"`
	Amount    decimal.Decimal   `json:"amount"`
	Month     datetime.Month    `json:"month"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Comparison sets a month's budget for one category against what was spent.
type Comparison struct {
	Category    category.Category `json:"category"`
	Budget      decimal.Decimal   `json:"budget"`
	Spent       decimal.Decimal   `json:"spent"`
	Remaining   decimal.Decimal   `json:"remaining"`
	PercentUsed decimal.Decimal   `json:"percentUsed"`
	OverBudget  bool              `json:"overBudget"`
}

var hundred = decimal.NewFromInt(100)

func NewComparison(b *Budget, spent decimal.Decimal) Comparison {
	percent := decimal.Zero
	if b.Amount.IsPositive() {
		percent = spent.Div(b.Amount).Mul(hundred).Round(2)
	}
	return Comparison{
		Category:    b.Category,
		Budget:      b.Amount,
		Spent:       spent,
		Remaining:   b.Amount.Sub(spent),
		PercentUsed: percent,
		OverBudget:  spent.GreaterThan(b.Amount),
	}
}

func ToDataModel(b *Budget) *budgetDatamodel.Budget {
	return &budgetDatamodel.Budget{
		ID:        b.ID,
		Category:  b.Category,
		Month:     b.Month,
		Amount:    b.Amount,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func FromDataModel(b *budgetDatamodel.Budget) *Budget {
	return &Budget{
		ID:        b.ID,
		Category:  b.Category,
		Amount:    b.Amount,
		Month:     b.Month,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func FromDataModelSlice(budgets []*budgetDatamodel.Budget) []*Budget {
	result := make([]*Budget, len(budgets))
	for i, b := range budgets {
		result[i] = FromDataModel(b)
	}
	return result
}
