package wishlist

import (
	"log/slog"
	"time"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/category"
	"github.com/adityarahman/celengan/internal/core/id"
)

const IDPrefix = "wsh"

// WishlistItem is a planned purchase under a category.
type WishlistItem struct {
	ID          string  `json:"id" gorm:"primaryKey;column:id"`
	CategoryID  string  `json:"category_id" gorm:"column:category_id"`
	Title       string  `json:"title" gorm:"column:title"`
	TargetPrice *int64  `json:"target_price,omitempty" gorm:"column:target_price"`
	Link        *string `json:"link,omitempty" gorm:"column:link"`
	Priority    *int    `json:"priority,omitempty" gorm:"column:priority"`
	CreatedAt   int64   `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   int64   `json:"updated_at" gorm:"column:updated_at"`
	ArchivedAt  *int64  `json:"archived_at,omitempty" gorm:"column:archived_at"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}

type Repository interface {
	Create(item *WishlistItem) error
	GetByID(itemID string) (*WishlistItem, error)
	List(includeArchived bool) ([]*WishlistItem, error)
	UpdateFields(itemID string, fields map[string]interface{}) error
	SetArchived(itemID string, at *int64) error
}

type CategoryGetter interface {
	GetByID(categoryID string) (*category.Category, error)
}

type Service struct {
	repo       Repository
	categories CategoryGetter
	logger     *slog.Logger
}

func NewService(repo Repository, categories CategoryGetter, logger *slog.Logger) *Service {
	return &Service{repo: repo, categories: categories, logger: logger}
}

type CreateItemDTO struct {
	CategoryID  string
	Title       string
	TargetPrice *int64
	Link        *string
	Priority    *int
}

type UpdateItemDTO struct {
	Title       *string
	TargetPrice *int64
	Link        *string
	Priority    *int
}

func (s *Service) Create(dto CreateItemDTO) (*WishlistItem, error) {
	if dto.Title == "" {
		return nil, internal.NewValidationError("wishlist title is required", internal.ErrCodeValidationFailed)
	}
	if dto.TargetPrice != nil && *dto.TargetPrice <= 0 {
		return nil, internal.NewValidationError("target price must be positive", internal.ErrCodeInvalidAmount)
	}

	cat, err := s.categories.GetByID(dto.CategoryID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			return nil, internal.NewReferentialError("category does not exist", internal.ErrCodeMissingRef)
		}
		return nil, err
	}
	if cat.Archived() {
		return nil, internal.NewReferentialError("category is archived", internal.ErrCodeMissingRef)
	}

	now := time.Now().UnixMilli()
	item := &WishlistItem{
		ID:          id.New(IDPrefix),
		CategoryID:  dto.CategoryID,
		Title:       dto.Title,
		TargetPrice: dto.TargetPrice,
		Link:        dto.Link,
		Priority:    dto.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(item); err != nil {
		s.logger.Error("failed to create wishlist item", "error", err)
		return nil, err
	}
	return item, nil
}

func (s *Service) Get(itemID string) (*WishlistItem, error) {
	return s.repo.GetByID(itemID)
}

func (s *Service) List(includeArchived bool) ([]*WishlistItem, error) {
	return s.repo.List(includeArchived)
}

func (s *Service) Update(itemID string, dto UpdateItemDTO) error {
	fields := map[string]interface{}{}
	if dto.Title != nil {
		if *dto.Title == "" {
			return internal.NewValidationError("wishlist title is required", internal.ErrCodeValidationFailed)
		}
		fields["title"] = *dto.Title
	}
	if dto.TargetPrice != nil {
		if *dto.TargetPrice <= 0 {
			return internal.NewValidationError("target price must be positive", internal.ErrCodeInvalidAmount)
		}
		fields["target_price"] = *dto.TargetPrice
	}
	if dto.Link != nil {
		fields["link"] = *dto.Link
	}
	if dto.Priority != nil {
		fields["priority"] = *dto.Priority
	}
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UnixMilli()
	return s.repo.UpdateFields(itemID, fields)
}

func (s *Service) Archive(itemID string) error {
	at := time.Now().UnixMilli()
	return s.repo.SetArchived(itemID, &at)
}

func (s *Service) Unarchive(itemID string) error {
	return s.repo.SetArchived(itemID, nil)
}
