package transaction

import (
	"errors"
	"time"

	"github.com/frahmantamala/moneymappr/internal"
	"github.com/frahmantamala/moneymappr/internal/core/common/datetime"
	"github.com/frahmantamala/moneymappr/internal/core/common/validation"
	"github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
	"github.com/shopspring/decimal"
)

// CreateTransactionDTO represents the request payload for creating a transaction
type CreateTransactionDTO struct {
	Amount      *decimal.Decimal  `json:"amount"`
	Description string            `json:"description,omitempty"`
	Date        datetime.Date     `json:"date"`
	Category    category.Category `json:"category"`
}

// Validate requires amount, date and category. Amounts must be positive
// and fit numeric(14,2).
func (dto CreateTransactionDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("amount", dto.Amount).Required().Positive().Money()
	v.Field("description", dto.Description).MaxLength(validation.MaxDescriptionLength)
	v.Field("date", dto.Date).Required()
	v.Field("category", dto.Category).Required().OneOfCategories()
	return v.Validate()
}

// UpdateTransactionDTO is a partial patch. Nil fields are left unchanged.
type UpdateTransactionDTO struct {
	Amount      *decimal.Decimal   `json:"amount,omitempty"`
	Description *string            `json:"description,omitempty"`
	Date        *datetime.Date     `json:"date,omitempty"`
	Category    *category.Category `json:"category,omitempty"`
}

func (dto UpdateTransactionDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if dto.Amount != nil {
		v.Field("amount", dto.Amount).Positive().Money()
	}
	if dto.Description != nil {
		v.Field("description", dto.Description).MaxLength(validation.MaxDescriptionLength)
	}
	if dto.Date != nil {
		v.Field("date", dto.Date).Required()
	}
	if dto.Category != nil {
		v.Field("category", dto.Category).Required().OneOfCategories()
	}
	return v.Validate()
}

func (dto UpdateTransactionDTO) IsEmpty() bool {
	return dto.Amount == nil && dto.Description == nil && dto.Date == nil && dto.Category == nil
}

// Changes returns the column updates for the fields present in the patch.
func (dto UpdateTransactionDTO) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if dto.Amount != nil {
		changes["amount"] = *dto.Amount
	}
	if dto.Description != nil {
		changes["description"] = *dto.Description
	}
	if dto.Date != nil {
		changes["date"] = *dto.Date
	}
	if dto.Category != nil {
		changes["category"] = *dto.Category
	}
	if len(changes) > 0 {
		changes["updated_at"] = time.Now()
	}
	return changes
}

type DeleteResponse struct {
	Message string `json:"message"`
}

// Domain errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
)
