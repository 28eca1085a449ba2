package sqlite

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/ledger"
)

// ReadRepository serves listing projections with raw SQL. Display
// fields come from joins at query time; nothing denormalized is ever
// written back.
type ReadRepository struct {
	db *sqlx.DB
}

func NewReadRepository(db *sqlx.DB) ledger.ReadRepository {
	return &ReadRepository{db: db}
}

func (r *ReadRepository) ListExpenses(filter ledger.ListFilter) ([]*ledger.ExpenseListItem, error) {
	query := `
		SELECT e.id, e.title, e.amount,
		       COALESCE(e.currency_code, a.currency_code) AS currency,
		       e.category_id, c.name AS category_name, c.icon AS category_icon, c.color AS category_color,
		       e.account_id, a.name AS account_name,
		       e.date, e.sentiment, e.notes, e.created_at, e.updated_at
		FROM expenses e
		JOIN categories c ON c.id = e.category_id
		JOIN accounts a ON a.id = e.account_id`

	where, args := expenseFilter(filter)
	query += where + ` ORDER BY e.date DESC, e.created_at DESC`

	items := []*ledger.ExpenseListItem{}
	if err := r.db.Select(&items, query, args...); err != nil {
		return nil, internal.NewStorageError("list expenses", err)
	}
	return items, nil
}

func (r *ReadRepository) ListIncomes(filter ledger.ListFilter) ([]*ledger.IncomeListItem, error) {
	query := `
		SELECT i.id, i.source, i.amount,
		       COALESCE(i.currency_code, a.currency_code) AS currency,
		       i.account_id, a.name AS account_name,
		       i.date, i.hours_worked, i.notes, i.created_at, i.updated_at
		FROM incomes i
		JOIN accounts a ON a.id = i.account_id`

	conditions := []string{}
	args := []interface{}{}
	if filter.Start != nil {
		conditions = append(conditions, "i.date >= ?")
		args = append(args, *filter.Start)
	}
	if filter.End != nil {
		conditions = append(conditions, "i.date <= ?")
		args = append(args, *filter.End)
	}
	if filter.AccountID != "" {
		conditions = append(conditions, "i.account_id = ?")
		args = append(args, filter.AccountID)
	}
	if !filter.IncludeArchivedRefs {
		conditions = append(conditions, "a.archived_at IS NULL")
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY i.date DESC, i.created_at DESC`

	items := []*ledger.IncomeListItem{}
	if err := r.db.Select(&items, query, args...); err != nil {
		return nil, internal.NewStorageError("list incomes", err)
	}
	return items, nil
}

func (r *ReadRepository) ListTransfers(filter ledger.ListFilter) ([]*ledger.TransferListItem, error) {
	query := `
		SELECT t.id,
		       t.from_account_id, fa.name AS from_account_name, fa.currency_code AS from_currency,
		       t.to_account_id, ta.name AS to_account_name, ta.currency_code AS to_currency,
		       t.amount, t.date, t.notes, t.created_at
		FROM transfers t
		JOIN accounts fa ON fa.id = t.from_account_id
		JOIN accounts ta ON ta.id = t.to_account_id`

	conditions := []string{}
	args := []interface{}{}
	if filter.Start != nil {
		conditions = append(conditions, "t.date >= ?")
		args = append(args, *filter.Start)
	}
	if filter.End != nil {
		conditions = append(conditions, "t.date <= ?")
		args = append(args, *filter.End)
	}
	if filter.AccountID != "" {
		conditions = append(conditions, "(t.from_account_id = ? OR t.to_account_id = ?)")
		args = append(args, filter.AccountID, filter.AccountID)
	}
	if !filter.IncludeArchivedRefs {
		conditions = append(conditions, "fa.archived_at IS NULL AND ta.archived_at IS NULL")
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY t.date DESC, t.created_at DESC`

	items := []*ledger.TransferListItem{}
	if err := r.db.Select(&items, query, args...); err != nil {
		return nil, internal.NewStorageError("list transfers", err)
	}
	return items, nil
}

// Feed unions the three transaction kinds into one stream, newest
// first. Transfers surface under the from-account's currency.
func (r *ReadRepository) Feed(filter ledger.ListFilter, limit int) ([]*ledger.FeedItem, error) {
	var clauses []string
	var args []interface{}

	expenseWhere, expenseArgs := feedRange(filter, "e.date")
	clauses = append(clauses, `
		SELECT 'expense' AS kind, e.id, e.title,
		       e.amount, COALESCE(e.currency_code, a.currency_code) AS currency,
		       a.name AS account_name, e.date AS date, e.created_at AS created_at
		FROM expenses e JOIN accounts a ON a.id = e.account_id`+archived(filter, expenseWhere, "a"))
	args = append(args, expenseArgs...)

	incomeWhere, incomeArgs := feedRange(filter, "i.date")
	clauses = append(clauses, `
		SELECT 'income' AS kind, i.id, i.source AS title,
		       i.amount, COALESCE(i.currency_code, a.currency_code) AS currency,
		       a.name AS account_name, i.date AS date, i.created_at AS created_at
		FROM incomes i JOIN accounts a ON a.id = i.account_id`+archived(filter, incomeWhere, "a"))
	args = append(args, incomeArgs...)

	transferWhere, transferArgs := feedRange(filter, "t.date")
	clauses = append(clauses, `
		SELECT 'transfer' AS kind, t.id,
		       fa.name || ' -> ' || ta.name AS title,
		       t.amount, fa.currency_code AS currency,
		       fa.name AS account_name, t.date AS date, t.created_at AS created_at
		FROM transfers t
		JOIN accounts fa ON fa.id = t.from_account_id
		JOIN accounts ta ON ta.id = t.to_account_id`+transferArchived(filter, transferWhere))
	args = append(args, transferArgs...)

	query := strings.Join(clauses, "\nUNION ALL\n") +
		"\nORDER BY date DESC, created_at DESC LIMIT ?"
	args = append(args, limit)

	items := []*ledger.FeedItem{}
	if err := r.db.Select(&items, query, args...); err != nil {
		return nil, internal.NewStorageError("transaction feed", err)
	}
	return items, nil
}

func expenseFilter(filter ledger.ListFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	if filter.Start != nil {
		conditions = append(conditions, "e.date >= ?")
		args = append(args, *filter.Start)
	}
	if filter.End != nil {
		conditions = append(conditions, "e.date <= ?")
		args = append(args, *filter.End)
	}
	if filter.CategoryID != "" {
		conditions = append(conditions, "e.category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.AccountID != "" {
		conditions = append(conditions, "e.account_id = ?")
		args = append(args, filter.AccountID)
	}
	if !filter.IncludeArchivedRefs {
		conditions = append(conditions, "c.archived_at IS NULL AND a.archived_at IS NULL")
	}
	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func feedRange(filter ledger.ListFilter, dateCol string) ([]string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	if filter.Start != nil {
		conditions = append(conditions, dateCol+" >= ?")
		args = append(args, *filter.Start)
	}
	if filter.End != nil {
		conditions = append(conditions, dateCol+" <= ?")
		args = append(args, *filter.End)
	}
	return conditions, args
}

func archived(filter ledger.ListFilter, conditions []string, alias string) string {
	if !filter.IncludeArchivedRefs {
		conditions = append(conditions, alias+".archived_at IS NULL")
	}
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

func transferArchived(filter ledger.ListFilter, conditions []string) string {
	if !filter.IncludeArchivedRefs {
		conditions = append(conditions, "fa.archived_at IS NULL AND ta.archived_at IS NULL")
	}
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}
