package ledger

import (
	"log/slog"
	"time"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/account"
	"github.com/adityarahman/celengan/internal/category"
	"github.com/adityarahman/celengan/internal/currency"
)

// Repository defines the write-side data access for ledger entries.
type Repository interface {
	CreateExpense(e *Expense) error
	GetExpenseByID(expenseID string) (*Expense, error)
	UpdateExpenseFields(expenseID string, fields map[string]interface{}) error
	DeleteExpense(expenseID string) error

	CreateIncome(i *Income) error
	GetIncomeByID(incomeID string) (*Income, error)
	UpdateIncomeFields(incomeID string, fields map[string]interface{}) error
	DeleteIncome(incomeID string) error

	CreateTransfer(t *Transfer) error
	GetTransferByID(transferID string) (*Transfer, error)
	DeleteTransfer(transferID string) error
}

// ReadRepository serves the denormalized listing projections.
type ReadRepository interface {
	ListExpenses(filter ListFilter) ([]*ExpenseListItem, error)
	ListIncomes(filter ListFilter) ([]*IncomeListItem, error)
	ListTransfers(filter ListFilter) ([]*TransferListItem, error)
	Feed(filter ListFilter, limit int) ([]*FeedItem, error)
}

// AccountGetter and CategoryGetter are the referential lookups the
// service needs before accepting a write.
type AccountGetter interface {
	GetByID(accountID string) (*account.Account, error)
}

type CategoryGetter interface {
	GetByID(categoryID string) (*category.Category, error)
}

// Service handles ledger mutations and listing reads.
type Service struct {
	repo       Repository
	reads      ReadRepository
	accounts   AccountGetter
	categories CategoryGetter
	logger     *slog.Logger
}

func NewService(repo Repository, reads ReadRepository, accounts AccountGetter, categories CategoryGetter, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		reads:      reads,
		accounts:   accounts,
		categories: categories,
		logger:     logger,
	}
}

func (s *Service) CreateExpense(dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err)
		return nil, err
	}
	if err := s.checkCategory(dto.CategoryID); err != nil {
		return nil, err
	}
	if err := s.checkAccount(dto.AccountID); err != nil {
		return nil, err
	}

	exp := NewExpense(dto)
	if exp.CurrencyCode != nil {
		normalized := currency.NormalizeCode(*exp.CurrencyCode)
		exp.CurrencyCode = &normalized
	}

	if err := s.repo.CreateExpense(exp); err != nil {
		s.logger.Error("failed to create expense", "error", err)
		return nil, err
	}

	s.logger.Info("expense created", "expense_id", exp.ID, "amount", exp.Amount, "category_id", exp.CategoryID)
	return exp, nil
}

func (s *Service) GetExpense(expenseID string) (*Expense, error) {
	return s.repo.GetExpenseByID(expenseID)
}

func (s *Service) ListExpenses(filter ListFilter) ([]*ExpenseListItem, error) {
	return s.reads.ListExpenses(filter)
}

func (s *Service) UpdateExpense(expenseID string, dto UpdateExpenseDTO) error {
	fields := map[string]interface{}{}
	if dto.Title != nil {
		if *dto.Title == "" {
			return internal.NewValidationError("expense title is required", internal.ErrCodeValidationFailed)
		}
		fields["title"] = *dto.Title
	}
	if dto.Amount != nil {
		if *dto.Amount <= 0 {
			return internal.NewValidationError("amount must be positive", internal.ErrCodeInvalidAmount)
		}
		fields["amount"] = *dto.Amount
	}
	if dto.CategoryID != nil {
		if err := s.checkCategory(*dto.CategoryID); err != nil {
			return err
		}
		fields["category_id"] = *dto.CategoryID
	}
	if dto.AccountID != nil {
		if err := s.checkAccount(*dto.AccountID); err != nil {
			return err
		}
		fields["account_id"] = *dto.AccountID
	}
	if dto.ClearCurrency {
		fields["currency_code"] = nil
	} else if dto.CurrencyCode != nil {
		if err := validateCurrencyOverride(dto.CurrencyCode); err != nil {
			return err
		}
		fields["currency_code"] = currency.NormalizeCode(*dto.CurrencyCode)
	}
	if dto.Date != nil {
		fields["date"] = *dto.Date
	}
	if dto.ClearSentiment {
		fields["sentiment"] = nil
	} else if dto.Sentiment != nil {
		if err := validateSentiment(dto.Sentiment); err != nil {
			return err
		}
		fields["sentiment"] = *dto.Sentiment
	}
	if dto.ClearNotes {
		fields["notes"] = nil
	} else if dto.Notes != nil {
		fields["notes"] = *dto.Notes
	}

	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UnixMilli()
	return s.repo.UpdateExpenseFields(expenseID, fields)
}

func (s *Service) DeleteExpense(expenseID string) error {
	return s.repo.DeleteExpense(expenseID)
}

func (s *Service) CreateIncome(dto CreateIncomeDTO) (*Income, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("income validation failed", "error", err)
		return nil, err
	}
	if err := s.checkAccount(dto.AccountID); err != nil {
		return nil, err
	}

	inc := NewIncome(dto)
	if inc.CurrencyCode != nil {
		normalized := currency.NormalizeCode(*inc.CurrencyCode)
		inc.CurrencyCode = &normalized
	}

	if err := s.repo.CreateIncome(inc); err != nil {
		s.logger.Error("failed to create income", "error", err)
		return nil, err
	}

	s.logger.Info("income created", "income_id", inc.ID, "amount", inc.Amount)
	return inc, nil
}

func (s *Service) GetIncome(incomeID string) (*Income, error) {
	return s.repo.GetIncomeByID(incomeID)
}

func (s *Service) ListIncomes(filter ListFilter) ([]*IncomeListItem, error) {
	return s.reads.ListIncomes(filter)
}

func (s *Service) UpdateIncome(incomeID string, dto UpdateIncomeDTO) error {
	fields := map[string]interface{}{}
	if dto.Source != nil {
		if *dto.Source == "" {
			return internal.NewValidationError("income source is required", internal.ErrCodeValidationFailed)
		}
		fields["source"] = *dto.Source
	}
	if dto.Amount != nil {
		if *dto.Amount <= 0 {
			return internal.NewValidationError("amount must be positive", internal.ErrCodeInvalidAmount)
		}
		fields["amount"] = *dto.Amount
	}
	if dto.AccountID != nil {
		if err := s.checkAccount(*dto.AccountID); err != nil {
			return err
		}
		fields["account_id"] = *dto.AccountID
	}
	if dto.ClearCurrency {
		fields["currency_code"] = nil
	} else if dto.CurrencyCode != nil {
		if err := validateCurrencyOverride(dto.CurrencyCode); err != nil {
			return err
		}
		fields["currency_code"] = currency.NormalizeCode(*dto.CurrencyCode)
	}
	if dto.Date != nil {
		fields["date"] = *dto.Date
	}
	if dto.ClearHours {
		fields["hours_worked"] = nil
	} else if dto.HoursWorked != nil {
		if *dto.HoursWorked < 0 {
			return internal.NewValidationError("hours worked cannot be negative", internal.ErrCodeValidationFailed)
		}
		fields["hours_worked"] = *dto.HoursWorked
	}
	if dto.ClearNotes {
		fields["notes"] = nil
	} else if dto.Notes != nil {
		fields["notes"] = *dto.Notes
	}

	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UnixMilli()
	return s.repo.UpdateIncomeFields(incomeID, fields)
}

func (s *Service) DeleteIncome(incomeID string) error {
	return s.repo.DeleteIncome(incomeID)
}

func (s *Service) CreateTransfer(dto CreateTransferDTO) (*Transfer, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("transfer validation failed", "error", err)
		return nil, err
	}
	if err := s.checkAccount(dto.FromAccountID); err != nil {
		return nil, err
	}
	if err := s.checkAccount(dto.ToAccountID); err != nil {
		return nil, err
	}

	trf := NewTransfer(dto)
	if err := s.repo.CreateTransfer(trf); err != nil {
		s.logger.Error("failed to create transfer", "error", err)
		return nil, err
	}

	s.logger.Info("transfer created", "transfer_id", trf.ID,
		"from", trf.FromAccountID, "to", trf.ToAccountID, "amount", trf.Amount)
	return trf, nil
}

func (s *Service) GetTransfer(transferID string) (*Transfer, error) {
	return s.repo.GetTransferByID(transferID)
}

func (s *Service) ListTransfers(filter ListFilter) ([]*TransferListItem, error) {
	return s.reads.ListTransfers(filter)
}

func (s *Service) DeleteTransfer(transferID string) error {
	return s.repo.DeleteTransfer(transferID)
}

// Feed merges expenses, incomes and transfers into one
// reverse-chronological stream.
func (s *Service) Feed(filter ListFilter, limit int) ([]*FeedItem, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.reads.Feed(filter, limit)
}

// checkCategory rejects writes naming a missing or archived category.
func (s *Service) checkCategory(categoryID string) error {
	cat, err := s.categories.GetByID(categoryID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			return internal.NewReferentialError("category does not exist", internal.ErrCodeMissingRef)
		}
		return err
	}
	if cat.Archived() {
		return internal.NewReferentialError("category is archived", internal.ErrCodeMissingRef)
	}
	return nil
}

func (s *Service) checkAccount(accountID string) error {
	acc, err := s.accounts.GetByID(accountID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			return internal.NewReferentialError("account does not exist", internal.ErrCodeMissingRef)
		}
		return err
	}
	if acc.Archived() {
		return internal.NewReferentialError("account is archived", internal.ErrCodeMissingRef)
	}
	return nil
}
