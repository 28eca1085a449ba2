package sqlite

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/currency"
)

// CurrencyRepository implements currency.Repository using GORM.
type CurrencyRepository struct {
	db *gorm.DB
}

func NewCurrencyRepository(db *gorm.DB) currency.Repository {
	return &CurrencyRepository{db: db}
}

func (r *CurrencyRepository) Upsert(c *currency.Currency) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "symbol", "rate_to_base"}),
	}).Create(c).Error
	if err != nil {
		return internal.NewStorageError("upsert currency", err)
	}
	return nil
}

func (r *CurrencyRepository) GetByCode(code string) (*currency.Currency, error) {
	var c currency.Currency
	err := r.db.Where("code = ?", code).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCurrencyNotFound
		}
		return nil, internal.NewStorageError("get currency", err)
	}
	return &c, nil
}

func (r *CurrencyRepository) List(includeArchived bool) ([]*currency.Currency, error) {
	var currencies []*currency.Currency
	q := r.db.Order("code ASC")
	if !includeArchived {
		q = q.Where("archived_at IS NULL")
	}
	if err := q.Find(&currencies).Error; err != nil {
		return nil, internal.NewStorageError("list currencies", err)
	}
	return currencies, nil
}

func (r *CurrencyRepository) UpdateFields(code string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.Model(&currency.Currency{}).Where("code = ?", code).Updates(fields)
	if res.Error != nil {
		return internal.NewStorageError("update currency", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrCurrencyNotFound
	}
	return nil
}

func (r *CurrencyRepository) Archive(code string, at int64) error {
	return r.UpdateFields(code, map[string]interface{}{"archived_at": at})
}
