package migration

// Revisions is the ordered schema history of the ledger store. All
// timestamps and event dates are integer unix milliseconds; monetary
// amounts are integer minor units; currency rates are decimal strings.
//
// Structure statements tolerate re-application (IF NOT EXISTS) but the
// runner still skips applied versions so backfills never re-run.
var Revisions = []Revision{
	{
		Version: 1,
		Name:    "core ledger",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS currencies (
				code        TEXT PRIMARY KEY,
				name        TEXT NOT NULL,
				symbol      TEXT,
				rate_to_base TEXT NOT NULL DEFAULT '1',
				created_at  INTEGER NOT NULL,
				archived_at INTEGER
			)`,
			`CREATE TABLE IF NOT EXISTS accounts (
				id               TEXT PRIMARY KEY,
				name             TEXT NOT NULL,
				type             TEXT NOT NULL,
				currency_code    TEXT NOT NULL,
				starting_balance INTEGER NOT NULL DEFAULT 0,
				created_at       INTEGER NOT NULL,
				updated_at       INTEGER NOT NULL,
				archived_at      INTEGER
			)`,
			`CREATE TABLE IF NOT EXISTS categories (
				id          TEXT PRIMARY KEY,
				name        TEXT NOT NULL,
				icon        TEXT NOT NULL DEFAULT '',
				color       TEXT NOT NULL DEFAULT '',
				sort_order  INTEGER NOT NULL DEFAULT 0,
				created_at  INTEGER NOT NULL,
				updated_at  INTEGER NOT NULL,
				archived_at INTEGER
			)`,
			`CREATE TABLE IF NOT EXISTS expenses (
				id            TEXT PRIMARY KEY,
				title         TEXT NOT NULL,
				amount        INTEGER NOT NULL,
				category_id   TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
				account_id    TEXT NOT NULL REFERENCES accounts(id) ON DELETE RESTRICT,
				currency_code TEXT,
				date          INTEGER NOT NULL,
				sentiment     INTEGER,
				notes         TEXT,
				created_at    INTEGER NOT NULL,
				updated_at    INTEGER NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS incomes (
				id            TEXT PRIMARY KEY,
				source        TEXT NOT NULL,
				amount        INTEGER NOT NULL,
				account_id    TEXT NOT NULL REFERENCES accounts(id) ON DELETE RESTRICT,
				currency_code TEXT,
				date          INTEGER NOT NULL,
				hours_worked  REAL,
				notes         TEXT,
				created_at    INTEGER NOT NULL,
				updated_at    INTEGER NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS transfers (
				id              TEXT PRIMARY KEY,
				from_account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE RESTRICT,
				to_account_id   TEXT NOT NULL REFERENCES accounts(id) ON DELETE RESTRICT,
				amount          INTEGER NOT NULL,
				date            INTEGER NOT NULL,
				notes           TEXT,
				created_at      INTEGER NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS settings (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`,
			`CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category_id)`,
			`CREATE INDEX IF NOT EXISTS idx_expenses_account ON expenses(account_id)`,
			`CREATE INDEX IF NOT EXISTS idx_incomes_date ON incomes(date)`,
			`CREATE INDEX IF NOT EXISTS idx_incomes_account ON incomes(account_id)`,
			`CREATE INDEX IF NOT EXISTS idx_transfers_date ON transfers(date)`,
		},
	},
	{
		Version: 2,
		Name:    "budgets, savings, wishlist",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS budgets (
				id           TEXT PRIMARY KEY,
				category_id  TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
				amount_limit INTEGER NOT NULL,
				period_type  TEXT NOT NULL,
				start_date   INTEGER NOT NULL,
				created_at   INTEGER NOT NULL,
				updated_at   INTEGER NOT NULL,
				archived_at  INTEGER
			)`,
			`CREATE TABLE IF NOT EXISTS savings_buckets (
				id            TEXT PRIMARY KEY,
				category_id   TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
				name          TEXT NOT NULL,
				target_amount INTEGER,
				created_at    INTEGER NOT NULL,
				updated_at    INTEGER NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS savings_contributions (
				id         TEXT PRIMARY KEY,
				bucket_id  TEXT NOT NULL REFERENCES savings_buckets(id) ON DELETE CASCADE,
				amount     INTEGER NOT NULL,
				date       INTEGER NOT NULL,
				created_at INTEGER NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS wishlist_items (
				id           TEXT PRIMARY KEY,
				category_id  TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
				title        TEXT NOT NULL,
				target_price INTEGER,
				link         TEXT,
				priority     INTEGER,
				created_at   INTEGER NOT NULL,
				updated_at   INTEGER NOT NULL,
				archived_at  INTEGER
			)`,
			`CREATE INDEX IF NOT EXISTS idx_contributions_bucket ON savings_contributions(bucket_id)`,
		},
	},
	{
		Version: 3,
		Name:    "recurring rules, receipt inbox",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS recurring_rules (
				id          TEXT PRIMARY KEY,
				entity_type TEXT NOT NULL,
				entity_id   TEXT NOT NULL,
				recurrence  TEXT NOT NULL,
				next_run    INTEGER NOT NULL,
				active      INTEGER NOT NULL DEFAULT 1,
				created_at  INTEGER NOT NULL,
				updated_at  INTEGER NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS receipt_inbox (
				id               TEXT PRIMARY KEY,
				image_uri        TEXT NOT NULL,
				status           TEXT NOT NULL DEFAULT 'pending',
				suggested_title  TEXT,
				suggested_amount INTEGER,
				suggested_date   INTEGER,
				expense_id       TEXT REFERENCES expenses(id),
				created_at       INTEGER NOT NULL,
				updated_at       INTEGER NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_recurring_next_run ON recurring_rules(next_run)`,
			`CREATE INDEX IF NOT EXISTS idx_receipt_inbox_status ON receipt_inbox(status)`,
		},
	},
}
