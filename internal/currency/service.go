package currency

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adityarahman/celengan/internal"
)

// Repository defines the data access methods for currencies.
type Repository interface {
	Upsert(c *Currency) error
	GetByCode(code string) (*Currency, error)
	List(includeArchived bool) ([]*Currency, error)
	UpdateFields(code string, fields map[string]interface{}) error
	Archive(code string, at int64) error
}

// BaseProvider reports the configured base currency code. Implemented
// by the settings service; kept as an interface to avoid coupling the
// rate invariant to the settings storage.
type BaseProvider interface {
	BaseCurrency() (string, error)
}

type Service struct {
	repo   Repository
	base   BaseProvider
	logger *slog.Logger
}

func NewService(repo Repository, base BaseProvider, logger *slog.Logger) *Service {
	return &Service{repo: repo, base: base, logger: logger}
}

type UpsertCurrencyDTO struct {
	Code       string
	Name       string
	Symbol     *string
	RateToBase decimal.Decimal
}

func (d *UpsertCurrencyDTO) Validate() error {
	if len(NormalizeCode(d.Code)) != 3 {
		return internal.NewValidationError("currency code must be 3 letters", internal.ErrCodeInvalidCurrency)
	}
	if d.Name == "" {
		return internal.NewValidationError("currency name is required", internal.ErrCodeValidationFailed)
	}
	if !d.RateToBase.IsPositive() {
		return internal.NewValidationError("rate_to_base must be strictly positive", internal.ErrCodeInvalidRate)
	}
	return nil
}

// Upsert writes a currency row. Writing a row whose code matches the
// base currency pins its rate to 1 whatever the caller supplied.
func (s *Service) Upsert(dto UpsertCurrencyDTO) (*Currency, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("currency validation failed", "error", err, "code", dto.Code)
		return nil, err
	}

	cur := NewCurrency(dto.Code, dto.Name, dto.Symbol, dto.RateToBase)

	base, err := s.base.BaseCurrency()
	if err != nil {
		return nil, err
	}
	if cur.Code == NormalizeCode(base) {
		cur.RateToBase = decimal.NewFromInt(1)
	}

	if err := s.repo.Upsert(cur); err != nil {
		s.logger.Error("failed to upsert currency", "error", err, "code", cur.Code)
		return nil, err
	}
	return cur, nil
}

func (s *Service) Get(code string) (*Currency, error) {
	return s.repo.GetByCode(NormalizeCode(code))
}

func (s *Service) List(includeArchived bool) ([]*Currency, error) {
	return s.repo.List(includeArchived)
}

// SetRate updates a non-base currency's rate. Updating the base
// currency's rate is rejected; it is pinned to 1.
func (s *Service) SetRate(code string, rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return internal.NewValidationError("rate_to_base must be strictly positive", internal.ErrCodeInvalidRate)
	}

	code = NormalizeCode(code)
	base, err := s.base.BaseCurrency()
	if err != nil {
		return err
	}
	if code == NormalizeCode(base) {
		return internal.NewValidationError("base currency rate is fixed at 1", internal.ErrCodeInvalidRate)
	}

	return s.repo.UpdateFields(code, map[string]interface{}{"rate_to_base": rate.String()})
}

func (s *Service) Archive(code string) error {
	return s.repo.Archive(NormalizeCode(code), time.Now().UnixMilli())
}

// PinBase forces rate-to-base = 1 on the row matching the new base
// code, if one exists. Called whenever the base currency changes.
func (s *Service) PinBase(baseCode string) error {
	baseCode = NormalizeCode(baseCode)
	if _, err := s.repo.GetByCode(baseCode); err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			// no row for the base code yet; nothing to pin
			return nil
		}
		return err
	}
	return s.repo.UpdateFields(baseCode, map[string]interface{}{"rate_to_base": "1"})
}

// RateTable snapshots all currency rows, archived included, since
// historical transactions may still reference archived currencies.
func (s *Service) RateTable() (RateTable, error) {
	currencies, err := s.repo.List(true)
	if err != nil {
		return nil, err
	}
	return BuildRateTable(currencies), nil
}
