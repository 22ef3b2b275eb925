package postgres

import (
	"context"

	"github.com/frahmantamala/moneymappr/internal/budget"
	"github.com/frahmantamala/moneymappr/internal/core/common/datetime"
	budgetDatamodel "github.com/frahmantamala/moneymappr/internal/core/datamodel/budget"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BudgetRepository implements budget.RepositoryAPI using GORM
type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) budget.RepositoryAPI {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) ListByMonth(ctx context.Context, month datetime.Month) ([]*budgetDatamodel.Budget, error) {
	var budgets []*budgetDatamodel.Budget
	err := r.db.WithContext(ctx).
		Where("month = ?", month).
		Order("category ASC").
		Find(&budgets).Error
	return budgets, err
}

// Upsert inserts b or, when (category, month) already exists, overwrites
// the amount in the same statement. The stored row is returned since its
// id may differ from b.ID.
func (r *BudgetRepository) Upsert(ctx context.Context, b *budgetDatamodel.Budget) (*budgetDatamodel.Budget, error) {
	db := r.db.WithContext(ctx)

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(b).Error
	if err != nil {
		return nil, err
	}

	var stored budgetDatamodel.Budget
	err = db.Where("category = ? AND month = ?", b.Category, b.Month).First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}
