// Package seed populates first-run defaults. Every step checks before
// writing, so running it again is a no-op.
package seed

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/account"
	"github.com/adityarahman/celengan/internal/category"
	"github.com/adityarahman/celengan/internal/currency"
	"github.com/adityarahman/celengan/internal/settings"
)

var defaultCategories = []struct {
	Name  string
	Icon  string
	Color string
}{
	{"Food & Drink", "utensils", "#e67e22"},
	{"Transport", "bus", "#3498db"},
	{"Groceries", "cart", "#27ae60"},
	{"Bills & Utilities", "bolt", "#f1c40f"},
	{"Entertainment", "film", "#9b59b6"},
	{"Health", "heart", "#e74c3c"},
	{"Shopping", "bag", "#1abc9c"},
	{"Other", "dots", "#95a5a6"},
}

type Seeder struct {
	settings   *settings.Service
	currencies *currency.Service
	categories *category.Service
	accounts   *account.Service
	baseCode   string
	logger     *slog.Logger
}

func NewSeeder(
	settingsSvc *settings.Service,
	currencySvc *currency.Service,
	categorySvc *category.Service,
	accountSvc *account.Service,
	baseCode string,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		settings:   settingsSvc,
		currencies: currencySvc,
		categories: categorySvc,
		accounts:   accountSvc,
		baseCode:   currency.NormalizeCode(baseCode),
		logger:     logger,
	}
}

// Run bootstraps the base currency setting and row, the starter
// category set and a default cash account. Analytics assumes these
// exist on a fresh store.
func (s *Seeder) Run() error {
	existing, err := s.settings.Get(settings.KeyBaseCurrency)
	if err != nil {
		return err
	}
	if existing == nil {
		if err := s.settings.SetBaseCurrency(s.baseCode); err != nil {
			return err
		}
	}

	baseCode, err := s.settings.BaseCurrency()
	if err != nil {
		return err
	}

	if _, err := s.currencies.Get(baseCode); err != nil {
		if appErr, ok := internal.IsAppError(err); !ok || appErr.Type != internal.ErrorTypeNotFound {
			return err
		}
		if _, err := s.currencies.Upsert(currency.UpsertCurrencyDTO{
			Code:       baseCode,
			Name:       baseCode,
			RateToBase: decimal.NewFromInt(1),
		}); err != nil {
			return err
		}
		s.logger.Info("seeded base currency", "code", baseCode)
	}

	categories, err := s.categories.List(true)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		for _, c := range defaultCategories {
			if _, err := s.categories.Create(category.CreateCategoryDTO{
				Name:  c.Name,
				Icon:  c.Icon,
				Color: c.Color,
			}); err != nil {
				return err
			}
		}
		s.logger.Info("seeded default categories", "count", len(defaultCategories))
	}

	accounts, err := s.accounts.List(true)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		if _, err := s.accounts.Create(account.CreateAccountDTO{
			Name:         "Cash",
			Type:         account.TypeCash,
			CurrencyCode: baseCode,
		}); err != nil {
			return err
		}
		s.logger.Info("seeded default account", "name", "Cash", "currency", baseCode)
	}

	return nil
}
