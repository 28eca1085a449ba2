package category

import (
	"log/slog"
	"time"

	"github.com/adityarahman/celengan/internal"
)

// Repository defines the data access methods for categories.
type Repository interface {
	Create(c *Category) error
	GetByID(categoryID string) (*Category, error)
	List(includeArchived bool) ([]*Category, error)
	UpdateFields(categoryID string, fields map[string]interface{}) error
	Delete(categoryID string) error
	SetArchived(categoryID string, at *int64) error
	Referenced(categoryID string) (bool, error)
	MaxSortOrder() (int, error)
	// Reorder rewrites sort_order for the given ids as one atomic batch.
	Reorder(orderedIDs []string, updatedAt int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

type CreateCategoryDTO struct {
	Name  string
	Icon  string
	Color string
}

type UpdateCategoryDTO struct {
	Name  *string
	Icon  *string
	Color *string
}

func (s *Service) Create(dto CreateCategoryDTO) (*Category, error) {
	if dto.Name == "" {
		return nil, internal.NewValidationError("category name is required", internal.ErrCodeValidationFailed)
	}

	// new categories sort after everything existing
	maxOrder, err := s.repo.MaxSortOrder()
	if err != nil {
		return nil, err
	}

	cat := NewCategory(dto.Name, dto.Icon, dto.Color, maxOrder+1)
	if err := s.repo.Create(cat); err != nil {
		s.logger.Error("failed to create category", "error", err)
		return nil, err
	}

	s.logger.Info("category created", "category_id", cat.ID, "name", cat.Name)
	return cat, nil
}

func (s *Service) Get(categoryID string) (*Category, error) {
	return s.repo.GetByID(categoryID)
}

func (s *Service) List(includeArchived bool) ([]*Category, error) {
	return s.repo.List(includeArchived)
}

func (s *Service) Update(categoryID string, dto UpdateCategoryDTO) error {
	fields := map[string]interface{}{}
	if dto.Name != nil {
		if *dto.Name == "" {
			return internal.NewValidationError("category name is required", internal.ErrCodeValidationFailed)
		}
		fields["name"] = *dto.Name
	}
	if dto.Icon != nil {
		fields["icon"] = *dto.Icon
	}
	if dto.Color != nil {
		fields["color"] = *dto.Color
	}
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UnixMilli()
	return s.repo.UpdateFields(categoryID, fields)
}

// Reorder assigns dense sort orders 0..n-1 following the given id
// sequence, atomically. Ids missing from the sequence keep their old
// order values; the ordering stays total because reads sort by
// (sort_order, created_at).
func (s *Service) Reorder(orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return nil
	}
	if err := s.repo.Reorder(orderedIDs, time.Now().UnixMilli()); err != nil {
		s.logger.Error("category reorder failed", "error", err, "count", len(orderedIDs))
		return err
	}
	return nil
}

func (s *Service) Archive(categoryID string) error {
	at := time.Now().UnixMilli()
	return s.repo.SetArchived(categoryID, &at)
}

func (s *Service) Unarchive(categoryID string) error {
	return s.repo.SetArchived(categoryID, nil)
}

// Delete hard-deletes an unreferenced category; referenced ones are
// rejected so history keeps resolving.
func (s *Service) Delete(categoryID string) error {
	referenced, err := s.repo.Referenced(categoryID)
	if err != nil {
		return err
	}
	if referenced {
		s.logger.Warn("delete rejected: category still referenced", "category_id", categoryID)
		return internal.ErrRowStillReferenced
	}
	return s.repo.Delete(categoryID)
}
