package transaction

import (
	"time"

	"github.com/frahmantamala/moneymappr/internal/core/common/datetime"
	"github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Amount      decimal.Decimal   `gorm:"column:amount;type:numeric(14,2);not null"`
	Description string            `gorm:"column:description;not null"`
	Date        datetime.Date     `gorm:"column:date;type:date;not null;index"`
	Category    category.Category `gorm:"column:category;type:varchar(32);not null;index"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}
