package sqlite

import (
	"errors"

	"gorm.io/gorm"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/ledger"
)

// LedgerRepository implements ledger.Repository using GORM.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) ledger.Repository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) CreateExpense(e *ledger.Expense) error {
	if err := r.db.Create(e).Error; err != nil {
		return internal.NewStorageError("create expense", err)
	}
	return nil
}

func (r *LedgerRepository) GetExpenseByID(expenseID string) (*ledger.Expense, error) {
	var e ledger.Expense
	err := r.db.Where("id = ?", expenseID).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrExpenseNotFound
		}
		return nil, internal.NewStorageError("get expense", err)
	}
	return &e, nil
}

func (r *LedgerRepository) UpdateExpenseFields(expenseID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.Model(&ledger.Expense{}).Where("id = ?", expenseID).Updates(fields)
	if res.Error != nil {
		return internal.NewStorageError("update expense", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrExpenseNotFound
	}
	return nil
}

func (r *LedgerRepository) DeleteExpense(expenseID string) error {
	res := r.db.Where("id = ?", expenseID).Delete(&ledger.Expense{})
	if res.Error != nil {
		return internal.NewStorageError("delete expense", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrExpenseNotFound
	}
	return nil
}

func (r *LedgerRepository) CreateIncome(i *ledger.Income) error {
	if err := r.db.Create(i).Error; err != nil {
		return internal.NewStorageError("create income", err)
	}
	return nil
}

func (r *LedgerRepository) GetIncomeByID(incomeID string) (*ledger.Income, error) {
	var i ledger.Income
	err := r.db.Where("id = ?", incomeID).First(&i).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrIncomeNotFound
		}
		return nil, internal.NewStorageError("get income", err)
	}
	return &i, nil
}

func (r *LedgerRepository) UpdateIncomeFields(incomeID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.Model(&ledger.Income{}).Where("id = ?", incomeID).Updates(fields)
	if res.Error != nil {
		return internal.NewStorageError("update income", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrIncomeNotFound
	}
	return nil
}

func (r *LedgerRepository) DeleteIncome(incomeID string) error {
	res := r.db.Where("id = ?", incomeID).Delete(&ledger.Income{})
	if res.Error != nil {
		return internal.NewStorageError("delete income", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrIncomeNotFound
	}
	return nil
}

func (r *LedgerRepository) CreateTransfer(t *ledger.Transfer) error {
	if err := r.db.Create(t).Error; err != nil {
		return internal.NewStorageError("create transfer", err)
	}
	return nil
}

func (r *LedgerRepository) GetTransferByID(transferID string) (*ledger.Transfer, error) {
	var t ledger.Transfer
	err := r.db.Where("id = ?", transferID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrTransferNotFound
		}
		return nil, internal.NewStorageError("get transfer", err)
	}
	return &t, nil
}

func (r *LedgerRepository) DeleteTransfer(transferID string) error {
	res := r.db.Where("id = ?", transferID).Delete(&ledger.Transfer{})
	if res.Error != nil {
		return internal.NewStorageError("delete transfer", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrTransferNotFound
	}
	return nil
}
