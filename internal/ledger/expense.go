package ledger

import (
	"time"

	"github.com/adityarahman/celengan/internal/core/id"
)

const ExpenseIDPrefix = "exp"

// Expense is a single spend event. Amount is positive minor units in
// CurrencyCode if set, otherwise in the account's currency. Date is
// the event time; CreatedAt/UpdatedAt are audit times. Sentiment is
// the [0,100] regret-to-worth-it score; nil means never rated.
type Expense struct {
	ID           string  `json:"id" gorm:"primaryKey;column:id"`
	Title        string  `json:"title" gorm:"column:title"`
	Amount       int64   `json:"amount" gorm:"column:amount"`
	CategoryID   string  `json:"category_id" gorm:"column:category_id"`
	AccountID    string  `json:"account_id" gorm:"column:account_id"`
	CurrencyCode *string `json:"currency_code,omitempty" gorm:"column:currency_code"`
	Date         int64   `json:"date" gorm:"column:date"`
	Sentiment    *int    `json:"sentiment,omitempty" gorm:"column:sentiment"`
	Notes        *string `json:"notes,omitempty" gorm:"column:notes"`
	CreatedAt    int64   `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    int64   `json:"updated_at" gorm:"column:updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

func NewExpense(dto CreateExpenseDTO) *Expense {
	now := time.Now().UnixMilli()
	return &Expense{
		ID:           id.New(ExpenseIDPrefix),
		Title:        dto.Title,
		Amount:       dto.Amount,
		CategoryID:   dto.CategoryID,
		AccountID:    dto.AccountID,
		CurrencyCode: dto.CurrencyCode,
		Date:         dto.Date,
		Sentiment:    dto.Sentiment,
		Notes:        dto.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
