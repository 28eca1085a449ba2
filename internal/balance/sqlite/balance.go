package sqlite

import (
	"github.com/jmoiron/sqlx"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/balance"
)

// BalanceRepository reads per-account activity sums with raw SQL.
type BalanceRepository struct {
	db *sqlx.DB
}

func NewBalanceRepository(db *sqlx.DB) balance.Repository {
	return &BalanceRepository{db: db}
}

type currencySum struct {
	Currency string `db:"currency"`
	Total    int64  `db:"total"`
}

func (r *BalanceRepository) ExpenseSumsByCurrency(accountID string) (map[string]int64, error) {
	return r.sumsByCurrency(`
		SELECT COALESCE(e.currency_code, a.currency_code) AS currency, SUM(e.amount) AS total
		FROM expenses e JOIN accounts a ON a.id = e.account_id
		WHERE e.account_id = ?
		GROUP BY 1`, accountID, "sum expenses")
}

func (r *BalanceRepository) IncomeSumsByCurrency(accountID string) (map[string]int64, error) {
	return r.sumsByCurrency(`
		SELECT COALESCE(i.currency_code, a.currency_code) AS currency, SUM(i.amount) AS total
		FROM incomes i JOIN accounts a ON a.id = i.account_id
		WHERE i.account_id = ?
		GROUP BY 1`, accountID, "sum incomes")
}

func (r *BalanceRepository) TransferTotals(accountID string) (int64, int64, error) {
	var totals struct {
		In  int64 `db:"transfers_in"`
		Out int64 `db:"transfers_out"`
	}
	err := r.db.Get(&totals, `
		SELECT
			COALESCE((SELECT SUM(amount) FROM transfers WHERE to_account_id = ?), 0) AS transfers_in,
			COALESCE((SELECT SUM(amount) FROM transfers WHERE from_account_id = ?), 0) AS transfers_out`,
		accountID, accountID)
	if err != nil {
		return 0, 0, internal.NewStorageError("sum transfers", err)
	}
	return totals.In, totals.Out, nil
}

func (r *BalanceRepository) sumsByCurrency(query, accountID, op string) (map[string]int64, error) {
	var rows []currencySum
	if err := r.db.Select(&rows, query, accountID); err != nil {
		return nil, internal.NewStorageError(op, err)
	}
	sums := make(map[string]int64, len(rows))
	for _, row := range rows {
		sums[row.Currency] = row.Total
	}
	return sums, nil
}
