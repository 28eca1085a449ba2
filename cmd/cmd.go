package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/account"
	accountsqlite "github.com/adityarahman/celengan/internal/account/sqlite"
	"github.com/adityarahman/celengan/internal/analytics"
	analyticssqlite "github.com/adityarahman/celengan/internal/analytics/sqlite"
	"github.com/adityarahman/celengan/internal/balance"
	balancesqlite "github.com/adityarahman/celengan/internal/balance/sqlite"
	"github.com/adityarahman/celengan/internal/budget"
	budgetsqlite "github.com/adityarahman/celengan/internal/budget/sqlite"
	"github.com/adityarahman/celengan/internal/category"
	categorysqlite "github.com/adityarahman/celengan/internal/category/sqlite"
	"github.com/adityarahman/celengan/internal/currency"
	currencysqlite "github.com/adityarahman/celengan/internal/currency/sqlite"
	"github.com/adityarahman/celengan/internal/database"
	"github.com/adityarahman/celengan/internal/ledger"
	ledgersqlite "github.com/adityarahman/celengan/internal/ledger/sqlite"
	"github.com/adityarahman/celengan/internal/migration"
	"github.com/adityarahman/celengan/internal/receiptinbox"
	receiptsqlite "github.com/adityarahman/celengan/internal/receiptinbox/sqlite"
	"github.com/adityarahman/celengan/internal/recurring"
	recurringsqlite "github.com/adityarahman/celengan/internal/recurring/sqlite"
	"github.com/adityarahman/celengan/internal/savings"
	savingssqlite "github.com/adityarahman/celengan/internal/savings/sqlite"
	"github.com/adityarahman/celengan/internal/settings"
	settingssqlite "github.com/adityarahman/celengan/internal/settings/sqlite"
	"github.com/adityarahman/celengan/internal/wishlist"
	wishlistsqlite "github.com/adityarahman/celengan/internal/wishlist/sqlite"
	"github.com/adityarahman/celengan/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "celengan",
	Short: "Personal finance ledger",
	Long:  `Tracks accounts, expenses, incomes and transfers in a local sqlite store and derives balances and spending analytics from them.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(wrapCmd)
}

func loadConfig(path string) (*internal.Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("CELENGAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := internal.DefaultConfig()
	v.SetDefault("database.path", defaults.Database.Path)
	v.SetDefault("database.max_open_conns", defaults.Database.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", defaults.Database.MaxIdleConns)
	v.SetDefault("ledger.default_base_currency", defaults.Ledger.DefaultBaseCurrency)
	v.SetDefault("ledger.hours_per_day", defaults.Ledger.HoursPerDay)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	if err := v.ReadInConfig(); err != nil {
		// a missing config file is fine; defaults and env carry it
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	return &cfg, nil
}

// Dependencies is the composition root: one store handle, repos on
// top, services on top of those. The store is opened lazily and
// exactly once per process via database.Handle.
type Dependencies struct {
	Config *internal.Config
	Logger *slog.Logger
	DB     *database.DB

	Settings   *settings.Service
	Currencies *currency.Service
	Accounts   *account.Service
	Categories *category.Service
	Ledger     *ledger.Service
	Budgets    *budget.Service
	Savings    *savings.Service
	Wishlist   *wishlist.Service
	Recurring  *recurring.Service
	Receipts   *receiptinbox.Service
	Balance    *balance.Service
	Analytics  *analytics.Service
}

// initDependencies loads config, opens the store and brings the schema
// current before wiring anything else; nothing may touch a stale
// schema. A migration failure is fatal to startup.
func initDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, err
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.L()

	handle := database.NewHandle(cfg.Database)
	db, err := handle.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	runner := migration.NewRunner(db.SQLx, migration.Revisions, log)
	if err := runner.Run(rootCmd.Context()); err != nil {
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}

	settingsSvc := settings.NewService(
		settingssqlite.NewSettingsRepository(db.Gorm),
		settings.Defaults{
			BaseCurrency: cfg.Ledger.DefaultBaseCurrency,
			HoursPerDay:  cfg.Ledger.HoursPerDay,
		},
		log,
	)
	currencySvc := currency.NewService(currencysqlite.NewCurrencyRepository(db.Gorm), settingsSvc, log)
	settingsSvc.AttachPinner(currencySvc)

	accountRepo := accountsqlite.NewAccountRepository(db.Gorm)
	accountSvc := account.NewService(accountRepo, log)

	categoryRepo := categorysqlite.NewCategoryRepository(db.Gorm)
	categorySvc := category.NewService(categoryRepo, log)

	ledgerSvc := ledger.NewService(
		ledgersqlite.NewLedgerRepository(db.Gorm),
		ledgersqlite.NewReadRepository(db.SQLx),
		accountRepo,
		categoryRepo,
		log,
	)

	return &Dependencies{
		Config:     cfg,
		Logger:     log,
		DB:         db,
		Settings:   settingsSvc,
		Currencies: currencySvc,
		Accounts:   accountSvc,
		Categories: categorySvc,
		Ledger:     ledgerSvc,
		Budgets:    budget.NewService(budgetsqlite.NewBudgetRepository(db.Gorm), categoryRepo, log),
		Savings:    savings.NewService(savingssqlite.NewSavingsRepository(db.Gorm), categoryRepo, log),
		Wishlist:   wishlist.NewService(wishlistsqlite.NewWishlistRepository(db.Gorm), categoryRepo, log),
		Recurring:  recurring.NewService(recurringsqlite.NewRecurringRepository(db.Gorm), log),
		Receipts:   receiptinbox.NewService(receiptsqlite.NewReceiptRepository(db.Gorm), log),
		Balance: balance.NewService(
			accountRepo,
			balancesqlite.NewBalanceRepository(db.SQLx),
			currencySvc,
			settingsSvc,
			log,
		),
		Analytics: analytics.NewService(
			analyticssqlite.NewAnalyticsRepository(db.SQLx),
			currencySvc,
			settingsSvc,
			settingsSvc,
			log,
		),
	}, nil
}
