package budget

import (
	"time"

	"github.com/frahmantamala/moneymappr/internal/core/common/datetime"
	"github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is unique per (category, month).
type Budget struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Category  category.Category `gorm:"column:category;type:varchar(32);not null;uniqueIndex:idx_budgets_category_month"`
	Month     datetime.Month    `gorm:"column:month;type:char(7);not null;uniqueIndex:idx_budgets_category_month"`
	Amount    decimal.Decimal   `gorm:"column:amount;type:numeric(14,2);not null"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Budget) TableName() string {
	return "budgets"
}
