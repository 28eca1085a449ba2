package sqlite

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/settings"
)

type row struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value"`
}

func (row) TableName() string {
	return "settings"
}

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) settings.Repository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(key string) (string, bool, error) {
	var rec row
	err := r.db.Where("key = ?", key).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, internal.NewStorageError("get setting", err)
	}
	return rec.Value, true, nil
}

func (r *SettingsRepository) GetAll() (map[string]string, error) {
	var rows []row
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, internal.NewStorageError("list settings", err)
	}
	all := make(map[string]string, len(rows))
	for _, rec := range rows {
		all[rec.Key] = rec.Value
	}
	return all, nil
}

func (r *SettingsRepository) Set(key, value string) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row{Key: key, Value: value}).Error
	if err != nil {
		return internal.NewStorageError("set setting", err)
	}
	return nil
}
