package ledger

// Read projections. Display fields (category name/color/icon, account
// name/currency) are joined at read time, never persisted on the
// transaction rows, so renames can't go stale.

// ExpenseListItem is an expense plus joined display fields. Currency
// is the resolved entry currency: the override if present, else the
// account's currency.
type ExpenseListItem struct {
	ID            string  `db:"id" json:"id"`
	Title         string  `db:"title" json:"title"`
	Amount        int64   `db:"amount" json:"amount"`
	Currency      string  `db:"currency" json:"currency"`
	CategoryID    string  `db:"category_id" json:"category_id"`
	CategoryName  string  `db:"category_name" json:"category_name"`
	CategoryIcon  string  `db:"category_icon" json:"category_icon"`
	CategoryColor string  `db:"category_color" json:"category_color"`
	AccountID     string  `db:"account_id" json:"account_id"`
	AccountName   string  `db:"account_name" json:"account_name"`
	Date          int64   `db:"date" json:"date"`
	Sentiment     *int    `db:"sentiment" json:"sentiment,omitempty"`
	Notes         *string `db:"notes" json:"notes,omitempty"`
	CreatedAt     int64   `db:"created_at" json:"created_at"`
	UpdatedAt     int64   `db:"updated_at" json:"updated_at"`
}

type IncomeListItem struct {
	ID          string   `db:"id" json:"id"`
	Source      string   `db:"source" json:"source"`
	Amount      int64    `db:"amount" json:"amount"`
	Currency    string   `db:"currency" json:"currency"`
	AccountID   string   `db:"account_id" json:"account_id"`
	AccountName string   `db:"account_name" json:"account_name"`
	Date        int64    `db:"date" json:"date"`
	HoursWorked *float64 `db:"hours_worked" json:"hours_worked,omitempty"`
	Notes       *string  `db:"notes" json:"notes,omitempty"`
	CreatedAt   int64    `db:"created_at" json:"created_at"`
	UpdatedAt   int64    `db:"updated_at" json:"updated_at"`
}

type TransferListItem struct {
	ID              string  `db:"id" json:"id"`
	FromAccountID   string  `db:"from_account_id" json:"from_account_id"`
	FromAccountName string  `db:"from_account_name" json:"from_account_name"`
	FromCurrency    string  `db:"from_currency" json:"from_currency"`
	ToAccountID     string  `db:"to_account_id" json:"to_account_id"`
	ToAccountName   string  `db:"to_account_name" json:"to_account_name"`
	ToCurrency      string  `db:"to_currency" json:"to_currency"`
	Amount          int64   `db:"amount" json:"amount"`
	Date            int64   `db:"date" json:"date"`
	Notes           *string `db:"notes" json:"notes,omitempty"`
	CreatedAt       int64   `db:"created_at" json:"created_at"`
}

const (
	FeedKindExpense  = "expense"
	FeedKindIncome   = "income"
	FeedKindTransfer = "transfer"
)

// FeedItem is one row of the unified activity stream merging all three
// transaction kinds, reverse-chronological. Computed on demand, never
// stored.
type FeedItem struct {
	Kind        string `db:"kind" json:"kind"`
	ID          string `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Amount      int64  `db:"amount" json:"amount"`
	Currency    string `db:"currency" json:"currency"`
	AccountName string `db:"account_name" json:"account_name"`
	Date        int64  `db:"date" json:"date"`
	CreatedAt   int64  `db:"created_at" json:"created_at"`
}
