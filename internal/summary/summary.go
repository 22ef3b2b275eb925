package summary

import (
	"github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
	"github.com/shopspring/decimal"
)

type MonthlyTotal struct {
	Month string          `db:"month" json:"month"`
	Total decimal.Decimal `db:"total" json:"total"`
}

type CategoryTotal struct {
	Category category.Category `db:"category" json:"category"`
	Total    decimal.Decimal   `db:"total" json:"total"`
}

// Totals is the flat summary across every transaction.
type Totals struct {
	Total decimal.Decimal `db:"total" json:"total"`
	Count int64           `db:"count" json:"count"`
}

// Summary is the document served by GET /transactions/summary.
type Summary struct {
	MonthlyTotals  []MonthlyTotal                        `json:"monthlyTotals"`
	CategoryTotals []CategoryTotal                       `json:"categoryTotals"`
	Total          decimal.Decimal                       `json:"total"`
	Count          int64                                 `json:"count"`
	Categories     map[category.Category]decimal.Decimal `json:"categories"`
}

func newSummary(monthly []MonthlyTotal, byCategory []CategoryTotal, totals Totals) *Summary {
	if monthly == nil {
		monthly = []MonthlyTotal{}
	}
	if byCategory == nil {
		byCategory = []CategoryTotal{}
	}
	categories := make(map[category.Category]decimal.Decimal, len(byCategory))
	for _, c := range byCategory {
		categories[c.Category] = c.Total
	}
	return &Summary{
		MonthlyTotals:  monthly,
		CategoryTotals: byCategory,
		Total:          totals.Total,
		Count:          totals.Count,
		Categories:     categories,
	}
}
