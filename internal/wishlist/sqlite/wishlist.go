package sqlite

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/wishlist"
)

type WishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) wishlist.Repository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) Create(item *wishlist.WishlistItem) error {
	if err := r.db.Create(item).Error; err != nil {
		return internal.NewStorageError("create wishlist item", err)
	}
	return nil
}

func (r *WishlistRepository) GetByID(itemID string) (*wishlist.WishlistItem, error) {
	var item wishlist.WishlistItem
	err := r.db.Where("id = ?", itemID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrWishNotFound
		}
		return nil, internal.NewStorageError("get wishlist item", err)
	}
	return &item, nil
}

func (r *WishlistRepository) List(includeArchived bool) ([]*wishlist.WishlistItem, error) {
	var items []*wishlist.WishlistItem
	q := r.db.Order("priority IS NULL, priority ASC, created_at ASC")
	if !includeArchived {
		q = q.Where("archived_at IS NULL")
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, internal.NewStorageError("list wishlist items", err)
	}
	return items, nil
}

func (r *WishlistRepository) UpdateFields(itemID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.Model(&wishlist.WishlistItem{}).Where("id = ?", itemID).Updates(fields)
	if res.Error != nil {
		return internal.NewStorageError("update wishlist item", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrWishNotFound
	}
	return nil
}

func (r *WishlistRepository) SetArchived(itemID string, at *int64) error {
	return r.UpdateFields(itemID, map[string]interface{}{
		"archived_at": at,
		"updated_at":  time.Now().UnixMilli(),
	})
}
