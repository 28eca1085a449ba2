package sqlite

import (
	"errors"

	"gorm.io/gorm"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/recurring"
)

type RecurringRepository struct {
	db *gorm.DB
}

func NewRecurringRepository(db *gorm.DB) recurring.Repository {
	return &RecurringRepository{db: db}
}

func (r *RecurringRepository) Create(rule *recurring.RecurringRule) error {
	if err := r.db.Create(rule).Error; err != nil {
		return internal.NewStorageError("create recurring rule", err)
	}
	return nil
}

func (r *RecurringRepository) GetByID(ruleID string) (*recurring.RecurringRule, error) {
	var rule recurring.RecurringRule
	err := r.db.Where("id = ?", ruleID).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRuleNotFound
		}
		return nil, internal.NewStorageError("get recurring rule", err)
	}
	return &rule, nil
}

func (r *RecurringRepository) List(activeOnly bool) ([]*recurring.RecurringRule, error) {
	var rules []*recurring.RecurringRule
	q := r.db.Order("next_run ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&rules).Error; err != nil {
		return nil, internal.NewStorageError("list recurring rules", err)
	}
	return rules, nil
}

func (r *RecurringRepository) ListDue(asOf int64) ([]*recurring.RecurringRule, error) {
	var rules []*recurring.RecurringRule
	err := r.db.Where("active = ? AND next_run <= ?", true, asOf).
		Order("next_run ASC").
		Find(&rules).Error
	if err != nil {
		return nil, internal.NewStorageError("list due rules", err)
	}
	return rules, nil
}

func (r *RecurringRepository) UpdateFields(ruleID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.Model(&recurring.RecurringRule{}).Where("id = ?", ruleID).Updates(fields)
	if res.Error != nil {
		return internal.NewStorageError("update recurring rule", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrRuleNotFound
	}
	return nil
}

func (r *RecurringRepository) Delete(ruleID string) error {
	res := r.db.Where("id = ?", ruleID).Delete(&recurring.RecurringRule{})
	if res.Error != nil {
		return internal.NewStorageError("delete recurring rule", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrRuleNotFound
	}
	return nil
}
