// Package balance derives account balances from the ledger. Nothing
// here is cached; every call recomputes from the store.
package balance

import (
	"log/slog"

	"github.com/adityarahman/celengan/internal/account"
	"github.com/adityarahman/celengan/internal/currency"
)

// Repository supplies the per-account sums the derivation needs.
// Expense and income sums are grouped by resolved entry currency so
// conversion rounds once per currency, not once per row.
type Repository interface {
	ExpenseSumsByCurrency(accountID string) (map[string]int64, error)
	IncomeSumsByCurrency(accountID string) (map[string]int64, error)
	TransferTotals(accountID string) (in int64, out int64, err error)
}

type AccountSource interface {
	GetByID(accountID string) (*account.Account, error)
	List(includeArchived bool) ([]*account.Account, error)
}

type RateSource interface {
	RateTable() (currency.RateTable, error)
}

type BaseSource interface {
	BaseCurrency() (string, error)
}

type Service struct {
	accounts AccountSource
	repo     Repository
	rates    RateSource
	base     BaseSource
	logger   *slog.Logger
}

func NewService(accounts AccountSource, repo Repository, rates RateSource, base BaseSource, logger *slog.Logger) *Service {
	return &Service{accounts: accounts, repo: repo, rates: rates, base: base, logger: logger}
}

// AccountBalance is one account's derived position. Balance is in the
// account's own currency; BaseEquivalent is the same figure converted
// into the reporting currency.
type AccountBalance struct {
	AccountID      string `json:"account_id"`
	Name           string `json:"name"`
	CurrencyCode   string `json:"currency_code"`
	Balance        int64  `json:"balance"`
	BaseEquivalent int64  `json:"base_equivalent"`
}

// PortfolioTotal sums all non-archived accounts in the base currency.
type PortfolioTotal struct {
	BaseCurrency string           `json:"base_currency"`
	Total        int64            `json:"total"`
	Accounts     []AccountBalance `json:"accounts"`
}

// Balance computes starting balance plus net activity: incomes minus
// expenses (each converted into the account's currency via the
// composed rate of its own entry currency) plus transfers in, minus
// transfers out, both at face value with no conversion.
func (s *Service) Balance(accountID string) (int64, error) {
	acc, err := s.accounts.GetByID(accountID)
	if err != nil {
		return 0, err
	}
	rates, err := s.rates.RateTable()
	if err != nil {
		return 0, err
	}
	baseCode, err := s.base.BaseCurrency()
	if err != nil {
		return 0, err
	}
	return s.balanceOf(acc, rates, baseCode)
}

// Portfolio reports every non-archived account's balance plus the
// grand total converted into the base currency.
func (s *Service) Portfolio() (*PortfolioTotal, error) {
	accounts, err := s.accounts.List(false)
	if err != nil {
		return nil, err
	}
	rates, err := s.rates.RateTable()
	if err != nil {
		return nil, err
	}
	baseCode, err := s.base.BaseCurrency()
	if err != nil {
		return nil, err
	}

	total := &PortfolioTotal{BaseCurrency: baseCode, Accounts: make([]AccountBalance, 0, len(accounts))}
	for _, acc := range accounts {
		bal, err := s.balanceOf(acc, rates, baseCode)
		if err != nil {
			return nil, err
		}
		inBase := currency.ToBase(bal, acc.CurrencyCode, rates, baseCode)
		total.Accounts = append(total.Accounts, AccountBalance{
			AccountID:      acc.ID,
			Name:           acc.Name,
			CurrencyCode:   acc.CurrencyCode,
			Balance:        bal,
			BaseEquivalent: inBase,
		})
		total.Total += inBase
	}
	return total, nil
}

func (s *Service) balanceOf(acc *account.Account, rates currency.RateTable, baseCode string) (int64, error) {
	incomes, err := s.repo.IncomeSumsByCurrency(acc.ID)
	if err != nil {
		return 0, err
	}
	expenses, err := s.repo.ExpenseSumsByCurrency(acc.ID)
	if err != nil {
		return 0, err
	}
	in, out, err := s.repo.TransferTotals(acc.ID)
	if err != nil {
		return 0, err
	}

	balance := acc.StartingBalance
	for code, sum := range incomes {
		balance += s.toAccountCurrency(sum, code, acc.CurrencyCode, rates, baseCode)
	}
	for code, sum := range expenses {
		balance -= s.toAccountCurrency(sum, code, acc.CurrencyCode, rates, baseCode)
	}
	balance += in - out
	return balance, nil
}

// toAccountCurrency converts an entry-currency sum into the account's
// currency with the composed rate(entry)/rate(account), never routing
// through a third currency. A rate missing from the table resolves to
// 1 (fail open); it is logged because silently wrong totals are worse
// than noisy logs.
func (s *Service) toAccountCurrency(amount int64, entryCode, accountCode string, rates currency.RateTable, baseCode string) int64 {
	entry := currency.NormalizeCode(entryCode)
	if entry != currency.NormalizeCode(baseCode) {
		if _, ok := rates[entry]; !ok {
			s.logger.Warn("no rate for currency, converting at parity", "currency", entry)
		}
	}
	return currency.Between(amount, entryCode, accountCode, rates, baseCode)
}
