package category

import (
	"time"

	"github.com/adityarahman/celengan/internal/core/id"
)

const IDPrefix = "cat"

// Category labels expenses, budgets, savings buckets and wishlist
// items. SortOrder is user-driven and dense after a reorder; gaps left
// by archiving are tolerated.
type Category struct {
	ID         string `json:"id" gorm:"primaryKey;column:id"`
	Name       string `json:"name" gorm:"column:name"`
	Icon       string `json:"icon" gorm:"column:icon"`
	Color      string `json:"color" gorm:"column:color"`
	SortOrder  int    `json:"sort_order" gorm:"column:sort_order"`
	CreatedAt  int64  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt  int64  `json:"updated_at" gorm:"column:updated_at"`
	ArchivedAt *int64 `json:"archived_at,omitempty" gorm:"column:archived_at"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) Archived() bool {
	return c.ArchivedAt != nil
}

func NewCategory(name, icon, color string, sortOrder int) *Category {
	now := time.Now().UnixMilli()
	return &Category{
		ID:        id.New(IDPrefix),
		Name:      name,
		Icon:      icon,
		Color:     color,
		SortOrder: sortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
