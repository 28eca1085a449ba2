package ledger

import (
	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/currency"
)

type CreateExpenseDTO struct {
	Title        string
	Amount       int64
	CategoryID   string
	AccountID    string
	CurrencyCode *string
	Date         int64
	Sentiment    *int
	Notes        *string
}

func (d *CreateExpenseDTO) Validate() error {
	if d.Title == "" {
		return internal.NewValidationError("expense title is required", internal.ErrCodeValidationFailed)
	}
	if d.Amount <= 0 {
		return internal.NewValidationError("amount must be positive", internal.ErrCodeInvalidAmount)
	}
	if d.CategoryID == "" {
		return internal.NewValidationError("category is required", internal.ErrCodeValidationFailed)
	}
	if d.AccountID == "" {
		return internal.NewValidationError("account is required", internal.ErrCodeValidationFailed)
	}
	if err := validateCurrencyOverride(d.CurrencyCode); err != nil {
		return err
	}
	return validateSentiment(d.Sentiment)
}

// UpdateExpenseDTO carries a partial field set; nil leaves a field
// unchanged. The Clear flags distinguish "unset" from "leave alone",
// which plain pointers cannot. ClearCurrency reverts an override so
// the entry follows its account's currency again.
type UpdateExpenseDTO struct {
	Title          *string
	Amount         *int64
	CategoryID     *string
	AccountID      *string
	CurrencyCode   *string
	ClearCurrency  bool
	Date           *int64
	Sentiment      *int
	ClearSentiment bool
	Notes          *string
	ClearNotes     bool
}

type CreateIncomeDTO struct {
	Source       string
	Amount       int64
	AccountID    string
	CurrencyCode *string
	Date         int64
	HoursWorked  *float64
	Notes        *string
}

func (d *CreateIncomeDTO) Validate() error {
	if d.Source == "" {
		return internal.NewValidationError("income source is required", internal.ErrCodeValidationFailed)
	}
	if d.Amount <= 0 {
		return internal.NewValidationError("amount must be positive", internal.ErrCodeInvalidAmount)
	}
	if d.AccountID == "" {
		return internal.NewValidationError("account is required", internal.ErrCodeValidationFailed)
	}
	if d.HoursWorked != nil && *d.HoursWorked < 0 {
		return internal.NewValidationError("hours worked cannot be negative", internal.ErrCodeValidationFailed)
	}
	return validateCurrencyOverride(d.CurrencyCode)
}

type UpdateIncomeDTO struct {
	Source        *string
	Amount        *int64
	AccountID     *string
	CurrencyCode  *string
	ClearCurrency bool
	Date          *int64
	HoursWorked   *float64
	ClearHours    bool
	Notes         *string
	ClearNotes    bool
}

type CreateTransferDTO struct {
	FromAccountID string
	ToAccountID   string
	Amount        int64
	Date          int64
	Notes         *string
}

func (d *CreateTransferDTO) Validate() error {
	if d.FromAccountID == "" || d.ToAccountID == "" {
		return internal.NewValidationError("both accounts are required", internal.ErrCodeValidationFailed)
	}
	if d.FromAccountID == d.ToAccountID {
		return internal.NewValidationError("cannot transfer to the same account", internal.ErrCodeSameAccount)
	}
	if d.Amount <= 0 {
		return internal.NewValidationError("amount must be positive", internal.ErrCodeInvalidAmount)
	}
	return nil
}

// ListFilter narrows listings; zero values mean "no constraint".
// Filters compose conjunctively. Archived category/account rows drop
// their transactions from listings unless IncludeArchivedRefs is set;
// retrieval by id is unaffected.
type ListFilter struct {
	Start               *int64
	End                 *int64
	CategoryID          string
	AccountID           string
	IncludeArchivedRefs bool
}

func validateSentiment(sentiment *int) error {
	if sentiment != nil && (*sentiment < 0 || *sentiment > 100) {
		return internal.NewValidationError("sentiment must be within [0,100]", internal.ErrCodeInvalidSentiment)
	}
	return nil
}

func validateCurrencyOverride(code *string) error {
	if code != nil && len(currency.NormalizeCode(*code)) != 3 {
		return internal.NewValidationError("currency code must be 3 letters", internal.ErrCodeInvalidCurrency)
	}
	return nil
}
