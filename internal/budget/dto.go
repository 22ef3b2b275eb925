package budget

import (
	"github.com/frahmantamala/moneymappr/internal"
	"github.com/frahmantamala/moneymappr/internal/core/common/datetime"
	"github.com/frahmantamala/moneymappr/internal/core/common/validation"
	"github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
	"github.com/shopspring/decimal"
)

// SaveBudgetDTO represents the request payload for setting a monthly budget
type SaveBudgetDTO struct {
	Category category.Category `json:"category"`
	Amount   *decimal.Decimal  `json:"amount"`
	Month    datetime.Month    `json:"month"`
}

func (dto SaveBudgetDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("category", dto.Category).Required().OneOfCategories()
	v.Field("amount", dto.Amount).Required().Positive().Money()
	v.Field("month", dto.Month).Required().MonthFormat()
	return v.Validate()
}

// parseMonthQuery validates the month query parameter shared by the list
// and comparison endpoints.
func parseMonthQuery(raw string) (datetime.Month, *internal.AppError) {
	if raw == "" {
		return "", internal.ErrMonthRequired
	}
	month, err := datetime.ParseMonth(raw)
	if err != nil {
		return "", internal.NewValidationFieldError("month", "month must be formatted as YYYY-MM", internal.ErrCodeInvalidMonth)
	}
	return month, nil
}
