package sqlite

import (
	"errors"

	"gorm.io/gorm"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/receiptinbox"
)

type ReceiptRepository struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) receiptinbox.Repository {
	return &ReceiptRepository{db: db}
}

func (r *ReceiptRepository) Create(item *receiptinbox.ReceiptInboxItem) error {
	if err := r.db.Create(item).Error; err != nil {
		return internal.NewStorageError("create receipt item", err)
	}
	return nil
}

func (r *ReceiptRepository) GetByID(itemID string) (*receiptinbox.ReceiptInboxItem, error) {
	var item receiptinbox.ReceiptInboxItem
	err := r.db.Where("id = ?", itemID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrReceiptNotFound
		}
		return nil, internal.NewStorageError("get receipt item", err)
	}
	return &item, nil
}

func (r *ReceiptRepository) List(status string) ([]*receiptinbox.ReceiptInboxItem, error) {
	var items []*receiptinbox.ReceiptInboxItem
	q := r.db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, internal.NewStorageError("list receipt items", err)
	}
	return items, nil
}

func (r *ReceiptRepository) UpdateFields(itemID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.Model(&receiptinbox.ReceiptInboxItem{}).Where("id = ?", itemID).Updates(fields)
	if res.Error != nil {
		return internal.NewStorageError("update receipt item", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrReceiptNotFound
	}
	return nil
}

func (r *ReceiptRepository) Delete(itemID string) error {
	res := r.db.Where("id = ?", itemID).Delete(&receiptinbox.ReceiptInboxItem{})
	if res.Error != nil {
		return internal.NewStorageError("delete receipt item", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrReceiptNotFound
	}
	return nil
}
