package ledger

import (
	"time"

	"github.com/adityarahman/celengan/internal/core/id"
)

const IncomeIDPrefix = "inc"

// Income is money earned into an account. HoursWorked, when logged,
// feeds the effective hourly rate used by life-cost analytics.
type Income struct {
	ID           string   `json:"id" gorm:"primaryKey;column:id"`
	Source       string   `json:"source" gorm:"column:source"`
	Amount       int64    `json:"amount" gorm:"column:amount"`
	AccountID    string   `json:"account_id" gorm:"column:account_id"`
	CurrencyCode *string  `json:"currency_code,omitempty" gorm:"column:currency_code"`
	Date         int64    `json:"date" gorm:"column:date"`
	HoursWorked  *float64 `json:"hours_worked,omitempty" gorm:"column:hours_worked"`
	Notes        *string  `json:"notes,omitempty" gorm:"column:notes"`
	CreatedAt    int64    `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    int64    `json:"updated_at" gorm:"column:updated_at"`
}

func (Income) TableName() string {
	return "incomes"
}

func NewIncome(dto CreateIncomeDTO) *Income {
	now := time.Now().UnixMilli()
	return &Income{
		ID:           id.New(IncomeIDPrefix),
		Source:       dto.Source,
		Amount:       dto.Amount,
		AccountID:    dto.AccountID,
		CurrencyCode: dto.CurrencyCode,
		Date:         dto.Date,
		HoursWorked:  dto.HoursWorked,
		Notes:        dto.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
