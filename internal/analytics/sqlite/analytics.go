package sqlite

import (
	"github.com/jmoiron/sqlx"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/analytics"
)

// AnalyticsRepository feeds the aggregation layer flat rows via raw
// SQL. Rows referencing archived accounts or categories are excluded
// so archived entities vanish from totals.
type AnalyticsRepository struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) analytics.Repository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) ExpensesInRange(start, end int64) ([]analytics.ExpenseRow, error) {
	rows := []analytics.ExpenseRow{}
	err := r.db.Select(&rows, `
		SELECT e.title, e.amount,
		       COALESCE(e.currency_code, a.currency_code) AS currency,
		       e.category_id, c.name AS category_name,
		       e.sentiment, e.date
		FROM expenses e
		JOIN categories c ON c.id = e.category_id
		JOIN accounts a ON a.id = e.account_id
		WHERE e.date >= ? AND e.date <= ?
		  AND c.archived_at IS NULL AND a.archived_at IS NULL
		ORDER BY e.date ASC`, start, end)
	if err != nil {
		return nil, internal.NewStorageError("analytics expenses", err)
	}
	return rows, nil
}

func (r *AnalyticsRepository) IncomesInRange(start, end int64) ([]analytics.IncomeRow, error) {
	rows := []analytics.IncomeRow{}
	err := r.db.Select(&rows, `
		SELECT i.amount,
		       COALESCE(i.currency_code, a.currency_code) AS currency,
		       i.hours_worked, i.date
		FROM incomes i
		JOIN accounts a ON a.id = i.account_id
		WHERE i.date >= ? AND i.date <= ?
		  AND a.archived_at IS NULL
		ORDER BY i.date ASC`, start, end)
	if err != nil {
		return nil, internal.NewStorageError("analytics incomes", err)
	}
	return rows, nil
}
