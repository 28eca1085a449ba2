package sqlite

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/category"
)

// CategoryRepository implements category.Repository using GORM.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(c *category.Category) error {
	if err := r.db.Create(c).Error; err != nil {
		return internal.NewStorageError("create category", err)
	}
	return nil
}

func (r *CategoryRepository) GetByID(categoryID string) (*category.Category, error) {
	var c category.Category
	err := r.db.Where("id = ?", categoryID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCategoryNotFound
		}
		return nil, internal.NewStorageError("get category", err)
	}
	return &c, nil
}

func (r *CategoryRepository) List(includeArchived bool) ([]*category.Category, error) {
	var categories []*category.Category
	q := r.db.Order("sort_order ASC, created_at ASC")
	if !includeArchived {
		q = q.Where("archived_at IS NULL")
	}
	if err := q.Find(&categories).Error; err != nil {
		return nil, internal.NewStorageError("list categories", err)
	}
	return categories, nil
}

func (r *CategoryRepository) UpdateFields(categoryID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.Model(&category.Category{}).Where("id = ?", categoryID).Updates(fields)
	if res.Error != nil {
		return internal.NewStorageError("update category", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) SetArchived(categoryID string, at *int64) error {
	return r.UpdateFields(categoryID, map[string]interface{}{
		"archived_at": at,
		"updated_at":  time.Now().UnixMilli(),
	})
}

func (r *CategoryRepository) Delete(categoryID string) error {
	res := r.db.Where("id = ?", categoryID).Delete(&category.Category{})
	if res.Error != nil {
		return internal.NewStorageError("delete category", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) Referenced(categoryID string) (bool, error) {
	var count int64
	err := r.db.Raw(`
		SELECT
			(SELECT COUNT(*) FROM expenses WHERE category_id = ?) +
			(SELECT COUNT(*) FROM budgets WHERE category_id = ?) +
			(SELECT COUNT(*) FROM savings_buckets WHERE category_id = ?) +
			(SELECT COUNT(*) FROM wishlist_items WHERE category_id = ?)`,
		categoryID, categoryID, categoryID, categoryID).Scan(&count).Error
	if err != nil {
		return false, internal.NewStorageError("check category references", err)
	}
	return count > 0, nil
}

func (r *CategoryRepository) MaxSortOrder() (int, error) {
	var max *int
	err := r.db.Model(&category.Category{}).Select("MAX(sort_order)").Scan(&max).Error
	if err != nil {
		return 0, internal.NewStorageError("max sort order", err)
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

// Reorder runs the whole batch in one transaction; any failure rolls
// the entire reindex back.
func (r *CategoryRepository) Reorder(orderedIDs []string, updatedAt int64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for position, categoryID := range orderedIDs {
			res := tx.Model(&category.Category{}).
				Where("id = ?", categoryID).
				Updates(map[string]interface{}{
					"sort_order": position,
					"updated_at": updatedAt,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return internal.ErrCategoryNotFound
			}
		}
		return nil
	})
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return appErr
		}
		return internal.NewStorageError("reorder categories", err)
	}
	return nil
}
