package account

import (
	"log/slog"
	"time"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/currency"
)

// Repository defines the data access methods for accounts.
type Repository interface {
	Create(a *Account) error
	GetByID(accountID string) (*Account, error)
	List(includeArchived bool) ([]*Account, error)
	UpdateFields(accountID string, fields map[string]interface{}) error
	Delete(accountID string) error
	SetArchived(accountID string, at *int64) error
	Referenced(accountID string) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

type CreateAccountDTO struct {
	Name            string
	Type            string
	CurrencyCode    string
	StartingBalance int64
}

func (d *CreateAccountDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationError("account name is required", internal.ErrCodeValidationFailed)
	}
	if !ValidType(d.Type) {
		return internal.NewValidationError("unknown account type", internal.ErrCodeValidationFailed)
	}
	if len(currency.NormalizeCode(d.CurrencyCode)) != 3 {
		return internal.NewValidationError("currency code must be 3 letters", internal.ErrCodeInvalidCurrency)
	}
	return nil
}

// UpdateAccountDTO is a partial field set: nil means "leave unchanged".
type UpdateAccountDTO struct {
	Name            *string
	Type            *string
	StartingBalance *int64
}

func (s *Service) Create(dto CreateAccountDTO) (*Account, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("account validation failed", "error", err)
		return nil, err
	}

	acc := NewAccount(dto.Name, dto.Type, currency.NormalizeCode(dto.CurrencyCode), dto.StartingBalance)
	if err := s.repo.Create(acc); err != nil {
		s.logger.Error("failed to create account", "error", err)
		return nil, err
	}

	s.logger.Info("account created", "account_id", acc.ID, "currency", acc.CurrencyCode)
	return acc, nil
}

func (s *Service) Get(accountID string) (*Account, error) {
	return s.repo.GetByID(accountID)
}

func (s *Service) List(includeArchived bool) ([]*Account, error) {
	return s.repo.List(includeArchived)
}

// Update rewrites only the supplied fields. An empty field set is a
// no-op that succeeds without touching the row.
func (s *Service) Update(accountID string, dto UpdateAccountDTO) error {
	fields := map[string]interface{}{}
	if dto.Name != nil {
		if *dto.Name == "" {
			return internal.NewValidationError("account name is required", internal.ErrCodeValidationFailed)
		}
		fields["name"] = *dto.Name
	}
	if dto.Type != nil {
		if !ValidType(*dto.Type) {
			return internal.NewValidationError("unknown account type", internal.ErrCodeValidationFailed)
		}
		fields["type"] = *dto.Type
	}
	if dto.StartingBalance != nil {
		fields["starting_balance"] = *dto.StartingBalance
	}
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UnixMilli()
	return s.repo.UpdateFields(accountID, fields)
}

func (s *Service) Archive(accountID string) error {
	at := time.Now().UnixMilli()
	return s.repo.SetArchived(accountID, &at)
}

func (s *Service) Unarchive(accountID string) error {
	return s.repo.SetArchived(accountID, nil)
}

// Delete hard-deletes an account that no transaction references.
// Referenced accounts must be archived instead.
func (s *Service) Delete(accountID string) error {
	referenced, err := s.repo.Referenced(accountID)
	if err != nil {
		return err
	}
	if referenced {
		s.logger.Warn("delete rejected: account still referenced", "account_id", accountID)
		return internal.ErrRowStillReferenced
	}
	return s.repo.Delete(accountID)
}
