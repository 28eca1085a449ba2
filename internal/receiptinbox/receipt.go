package receiptinbox

import (
	"log/slog"
	"time"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/core/id"
)

const IDPrefix = "rcp"

const (
	StatusPending   = "pending"
	StatusProcessed = "processed"
)

// ReceiptInboxItem is a captured receipt awaiting review. ImageURI is
// an opaque reference owned by the capture subsystem; the suggested
// fields come from its text recognition and are only suggestions until
// the user confirms them into an expense.
type ReceiptInboxItem struct {
	ID              string  `json:"id" gorm:"primaryKey;column:id"`
	ImageURI        string  `json:"image_uri" gorm:"column:image_uri"`
	Status          string  `json:"status" gorm:"column:status"`
	SuggestedTitle  *string `json:"suggested_title,omitempty" gorm:"column:suggested_title"`
	SuggestedAmount *int64  `json:"suggested_amount,omitempty" gorm:"column:suggested_amount"`
	SuggestedDate   *int64  `json:"suggested_date,omitempty" gorm:"column:suggested_date"`
	ExpenseID       *string `json:"expense_id,omitempty" gorm:"column:expense_id"`
	CreatedAt       int64   `json:"created_at" gorm:"column:created_at"`
	UpdatedAt       int64   `json:"updated_at" gorm:"column:updated_at"`
}

func (ReceiptInboxItem) TableName() string {
	return "receipt_inbox"
}

type Repository interface {
	Create(item *ReceiptInboxItem) error
	GetByID(itemID string) (*ReceiptInboxItem, error)
	List(status string) ([]*ReceiptInboxItem, error)
	UpdateFields(itemID string, fields map[string]interface{}) error
	Delete(itemID string) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

type CaptureDTO struct {
	ImageURI        string
	SuggestedTitle  *string
	SuggestedAmount *int64
	SuggestedDate   *int64
}

func (s *Service) Capture(dto CaptureDTO) (*ReceiptInboxItem, error) {
	if dto.ImageURI == "" {
		return nil, internal.NewValidationError("image uri is required", internal.ErrCodeValidationFailed)
	}
	if dto.SuggestedAmount != nil && *dto.SuggestedAmount <= 0 {
		return nil, internal.NewValidationError("suggested amount must be positive", internal.ErrCodeInvalidAmount)
	}

	now := time.Now().UnixMilli()
	item := &ReceiptInboxItem{
		ID:              id.New(IDPrefix),
		ImageURI:        dto.ImageURI,
		Status:          StatusPending,
		SuggestedTitle:  dto.SuggestedTitle,
		SuggestedAmount: dto.SuggestedAmount,
		SuggestedDate:   dto.SuggestedDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(item); err != nil {
		s.logger.Error("failed to capture receipt", "error", err)
		return nil, err
	}
	return item, nil
}

func (s *Service) Get(itemID string) (*ReceiptInboxItem, error) {
	return s.repo.GetByID(itemID)
}

// List filters by status; an empty status returns everything.
func (s *Service) List(status string) ([]*ReceiptInboxItem, error) {
	return s.repo.List(status)
}

// MarkProcessed links the receipt to the expense created from it.
func (s *Service) MarkProcessed(itemID, expenseID string) error {
	if expenseID == "" {
		return internal.NewValidationError("expense id is required", internal.ErrCodeValidationFailed)
	}
	return s.repo.UpdateFields(itemID, map[string]interface{}{
		"status":     StatusProcessed,
		"expense_id": expenseID,
		"updated_at": time.Now().UnixMilli(),
	})
}

func (s *Service) Delete(itemID string) error {
	return s.repo.Delete(itemID)
}
