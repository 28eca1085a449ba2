package recurring

import (
	"log/slog"
	"time"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/core/id"
)

const IDPrefix = "rec"

const (
	EntityExpense = "expense"
	EntityIncome  = "income"
)

// RecurringRule schedules re-creation of a template expense or income.
// The engine only stores and lists rules; the embedding application's
// scheduler polls ListDue and performs the re-creation.
type RecurringRule struct {
	ID         string `json:"id" gorm:"primaryKey;column:id"`
	EntityType string `json:"entity_type" gorm:"column:entity_type"`
	EntityID   string `json:"entity_id" gorm:"column:entity_id"`
	Recurrence string `json:"recurrence" gorm:"column:recurrence"`
	NextRun    int64  `json:"next_run" gorm:"column:next_run"`
	Active     bool   `json:"active" gorm:"column:active"`
	CreatedAt  int64  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt  int64  `json:"updated_at" gorm:"column:updated_at"`
}

func (RecurringRule) TableName() string {
	return "recurring_rules"
}

type Repository interface {
	Create(rule *RecurringRule) error
	GetByID(ruleID string) (*RecurringRule, error)
	List(activeOnly bool) ([]*RecurringRule, error)
	ListDue(asOf int64) ([]*RecurringRule, error)
	UpdateFields(ruleID string, fields map[string]interface{}) error
	Delete(ruleID string) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

type CreateRuleDTO struct {
	EntityType string
	EntityID   string
	Recurrence string
	NextRun    int64
}

func (s *Service) Create(dto CreateRuleDTO) (*RecurringRule, error) {
	if dto.EntityType != EntityExpense && dto.EntityType != EntityIncome {
		return nil, internal.NewValidationError("entity type must be expense or income", internal.ErrCodeValidationFailed)
	}
	if dto.EntityID == "" {
		return nil, internal.NewValidationError("entity id is required", internal.ErrCodeValidationFailed)
	}
	if dto.Recurrence == "" {
		return nil, internal.NewValidationError("recurrence is required", internal.ErrCodeValidationFailed)
	}

	now := time.Now().UnixMilli()
	rule := &RecurringRule{
		ID:         id.New(IDPrefix),
		EntityType: dto.EntityType,
		EntityID:   dto.EntityID,
		Recurrence: dto.Recurrence,
		NextRun:    dto.NextRun,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(rule); err != nil {
		s.logger.Error("failed to create recurring rule", "error", err)
		return nil, err
	}
	return rule, nil
}

func (s *Service) Get(ruleID string) (*RecurringRule, error) {
	return s.repo.GetByID(ruleID)
}

func (s *Service) List(activeOnly bool) ([]*RecurringRule, error) {
	return s.repo.List(activeOnly)
}

// ListDue returns active rules whose next run is at or before asOf.
func (s *Service) ListDue(asOf int64) ([]*RecurringRule, error) {
	return s.repo.ListDue(asOf)
}

// Advance moves a rule's next run forward after the scheduler fired it.
func (s *Service) Advance(ruleID string, nextRun int64) error {
	return s.repo.UpdateFields(ruleID, map[string]interface{}{
		"next_run":   nextRun,
		"updated_at": time.Now().UnixMilli(),
	})
}

func (s *Service) SetActive(ruleID string, active bool) error {
	return s.repo.UpdateFields(ruleID, map[string]interface{}{
		"active":     active,
		"updated_at": time.Now().UnixMilli(),
	})
}

func (s *Service) Delete(ruleID string) error {
	return s.repo.Delete(ruleID)
}
