package budget

import (
	"log/slog"
	"time"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/category"
	"github.com/adityarahman/celengan/internal/core/id"
)

const IDPrefix = "bdg"

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// Budget caps spending for one category over a repeating period.
type Budget struct {
	ID          string `json:"id" gorm:"primaryKey;column:id"`
	CategoryID  string `json:"category_id" gorm:"column:category_id"`
	AmountLimit int64  `json:"amount_limit" gorm:"column:amount_limit"`
	PeriodType  string `json:"period_type" gorm:"column:period_type"`
	StartDate   int64  `json:"start_date" gorm:"column:start_date"`
	CreatedAt   int64  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   int64  `json:"updated_at" gorm:"column:updated_at"`
	ArchivedAt  *int64 `json:"archived_at,omitempty" gorm:"column:archived_at"`
}

func (Budget) TableName() string {
	return "budgets"
}

type Repository interface {
	Create(b *Budget) error
	GetByID(budgetID string) (*Budget, error)
	List(includeArchived bool) ([]*Budget, error)
	UpdateFields(budgetID string, fields map[string]interface{}) error
	SetArchived(budgetID string, at *int64) error
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

type CreateBudgetDTO struct {
	CategoryID  string
	AmountLimit int64
	PeriodType  string
	StartDate   int64
}

type UpdateBudgetDTO struct {
	AmountLimit *int64
	PeriodType  *string
	StartDate   *int64
}

func validPeriod(period string) bool {
	switch period {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

func (s *Service) Create(dto CreateBudgetDTO) (*Budget, error) {
	if dto.AmountLimit <= 0 {
		return nil, internal.NewValidationError("budget limit must be positive", internal.ErrCodeInvalidAmount)
	}
	if !validPeriod(dto.PeriodType) {
		return nil, internal.NewValidationError("period must be week, month or year", internal.ErrCodeInvalidPeriod)
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
	b := &Budget{
		ID:          id.New(IDPrefix),
		CategoryID:  dto.CategoryID,
		AmountLimit: dto.AmountLimit,
		PeriodType:  dto.PeriodType,
		StartDate:   dto.StartDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(b); err != nil {
		s.logger.Error("failed to create budget", "error", err)
		return nil, err
	}
	return b, nil
}

func (s *Service) Get(budgetID string) (*Budget, error) {
	return s.repo.GetByID(budgetID)
}

func (s *Service) List(includeArchived bool) ([]*Budget, error) {
	return s.repo.List(includeArchived)
}

func (s *Service) Update(budgetID string, dto UpdateBudgetDTO) error {
	fields := map[string]interface{}{}
	if dto.AmountLimit != nil {
		if *dto.AmountLimit <= 0 {
			return internal.NewValidationError("budget limit must be positive", internal.ErrCodeInvalidAmount)
		}
		fields["amount_limit"] = *dto.AmountLimit
	}
	if dto.PeriodType != nil {
		if !validPeriod(*dto.PeriodType) {
			return internal.NewValidationError("period must be week, month or year", internal.ErrCodeInvalidPeriod)
		}
		fields["period_type"] = *dto.PeriodType
	}
	if dto.StartDate != nil {
		fields["start_date"] = *dto.StartDate
	}
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UnixMilli()
	return s.repo.UpdateFields(budgetID, fields)
}

func (s *Service) Archive(budgetID string) error {
	at := time.Now().UnixMilli()
	return s.repo.SetArchived(budgetID, &at)
}
