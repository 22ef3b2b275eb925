package postgres

import (
	"context"
	"errors"

	transactionDatamodel "github.com/frahmantamala/moneymappr/internal/core/datamodel/transaction"
	"github.com/frahmantamala/moneymappr/internal/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionRepository implements transaction.RepositoryAPI using GORM
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) transaction.RepositoryAPI {
	return &TransactionRepository{db: db}
}

// GetAll returns every transaction ordered by date, newest first.
func (r *TransactionRepository) GetAll(ctx context.Context) ([]*transactionDatamodel.Transaction, error) {
	var transactions []*transactionDatamodel.Transaction
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transactionDatamodel.Transaction, error) {
	var t transactionDatamodel.Transaction
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transaction.ErrTransactionNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) Create(ctx context.Context, t *transactionDatamodel.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Update applies changes and reads the row back in the same database
// transaction.
func (r *TransactionRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*transactionDatamodel.Transaction, error) {
	var updated transactionDatamodel.Transaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&transactionDatamodel.Transaction{}).
			Where("id = ?", id).
			Updates(changes)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return transaction.ErrTransactionNotFound
		}
		return tx.Where("id = ?", id).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&transactionDatamodel.Transaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return transaction.ErrTransactionNotFound
	}
	return nil
}
