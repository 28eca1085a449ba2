package sqlite

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/budget"
)

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) budget.Repository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Create(b *budget.Budget) error {
	if err := r.db.Create(b).Error; err != nil {
		return internal.NewStorageError("create budget", err)
	}
	return nil
}

func (r *BudgetRepository) GetByID(budgetID string) (*budget.Budget, error) {
	var b budget.Budget
	err := r.db.Where("id = ?", budgetID).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrBudgetNotFound
		}
		return nil, internal.NewStorageError("get budget", err)
	}
	return &b, nil
}

func (r *BudgetRepository) List(includeArchived bool) ([]*budget.Budget, error) {
	var budgets []*budget.Budget
	q := r.db.Order("created_at ASC")
	if !includeArchived {
		q = q.Where("archived_at IS NULL")
	}
	if err := q.Find(&budgets).Error; err != nil {
		return nil, internal.NewStorageError("list budgets", err)
	}
	return budgets, nil
}

func (r *BudgetRepository) UpdateFields(budgetID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.Model(&budget.Budget{}).Where("id = ?", budgetID).Updates(fields)
	if res.Error != nil {
		return internal.NewStorageError("update budget", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrBudgetNotFound
	}
	return nil
}

func (r *BudgetRepository) SetArchived(budgetID string, at *int64) error {
	return r.UpdateFields(budgetID, map[string]interface{}{
		"archived_at": at,
		"updated_at":  time.Now().UnixMilli(),
	})
}
