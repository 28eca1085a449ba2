package sqlite

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/account"
)

// AccountRepository implements account.Repository using GORM.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) account.Repository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(a *account.Account) error {
	if err := r.db.Create(a).Error; err != nil {
		return internal.NewStorageError("create account", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(accountID string) (*account.Account, error) {
	var a account.Account
	err := r.db.Where("id = ?", accountID).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAccountNotFound
		}
		return nil, internal.NewStorageError("get account", err)
	}
	return &a, nil
}

func (r *AccountRepository) List(includeArchived bool) ([]*account.Account, error) {
	var accounts []*account.Account
	q := r.db.Order("created_at ASC")
	if !includeArchived {
		q = q.Where("archived_at IS NULL")
	}
	if err := q.Find(&accounts).Error; err != nil {
		return nil, internal.NewStorageError("list accounts", err)
	}
	return accounts, nil
}

func (r *AccountRepository) UpdateFields(accountID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.Model(&account.Account{}).Where("id = ?", accountID).Updates(fields)
	if res.Error != nil {
		return internal.NewStorageError("update account", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) SetArchived(accountID string, at *int64) error {
	return r.UpdateFields(accountID, map[string]interface{}{
		"archived_at": at,
		"updated_at":  time.Now().UnixMilli(),
	})
}

func (r *AccountRepository) Delete(accountID string) error {
	res := r.db.Where("id = ?", accountID).Delete(&account.Account{})
	if res.Error != nil {
		return internal.NewStorageError("delete account", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrAccountNotFound
	}
	return nil
}

// Referenced reports whether any expense, income or transfer points at
// the account.
func (r *AccountRepository) Referenced(accountID string) (bool, error) {
	var count int64
	err := r.db.Raw(`
		SELECT
			(SELECT COUNT(*) FROM expenses WHERE account_id = ?) +
			(SELECT COUNT(*) FROM incomes WHERE account_id = ?) +
			(SELECT COUNT(*) FROM transfers WHERE from_account_id = ? OR to_account_id = ?)`,
		accountID, accountID, accountID, accountID).Scan(&count).Error
	if err != nil {
		return false, internal.NewStorageError("check account references", err)
	}
	return count > 0, nil
}
