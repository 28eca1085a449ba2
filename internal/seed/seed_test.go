package seed_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adityarahman/celengan/internal/account"
	accountsqlite "github.com/adityarahman/celengan/internal/account/sqlite"
	"github.com/adityarahman/celengan/internal/category"
	categorysqlite "github.com/adityarahman/celengan/internal/category/sqlite"
	"github.com/adityarahman/celengan/internal/currency"
	currencysqlite "github.com/adityarahman/celengan/internal/currency/sqlite"
	"github.com/adityarahman/celengan/internal/migration"
	"github.com/adityarahman/celengan/internal/seed"
	"github.com/adityarahman/celengan/internal/settings"
	settingssqlite "github.com/adityarahman/celengan/internal/settings/sqlite"
)

func TestSeed(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Seed Suite")
}

// The seeder is wired against the real services and an in-memory
// store, the same shape the composition root builds.
var _ = Describe("Seeder", func() {
	var (
		seeder *seed.Seeder

		settingsSvc *settings.Service
		currencySvc *currency.Service
		categorySvc *category.Service
		accountSvc  *account.Service
	)

	BeforeEach(func() {
		gdb, err := gorm.Open(gormsqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		sqlDB, err := gdb.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		sdb := sqlx.NewDb(sqlDB, "sqlite3")
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		Expect(migration.NewRunner(sdb, migration.Revisions, logger).Run(context.Background())).To(Succeed())

		settingsSvc = settings.NewService(settingssqlite.NewSettingsRepository(gdb),
			settings.Defaults{BaseCurrency: "USD", HoursPerDay: 8}, logger)
		currencySvc = currency.NewService(currencysqlite.NewCurrencyRepository(gdb), settingsSvc, logger)
		settingsSvc.AttachPinner(currencySvc)
		categorySvc = category.NewService(categorysqlite.NewCategoryRepository(gdb), logger)
		accountSvc = account.NewService(accountsqlite.NewAccountRepository(gdb), logger)

		seeder = seed.NewSeeder(settingsSvc, currencySvc, categorySvc, accountSvc, "USD", logger)
	})

	It("should bootstrap a fresh store", func() {
		Expect(seeder.Run()).To(Succeed())

		base, err := settingsSvc.BaseCurrency()
		Expect(err).NotTo(HaveOccurred())
		Expect(base).To(Equal("USD"))

		cur, err := currencySvc.Get("USD")
		Expect(err).NotTo(HaveOccurred())
		Expect(cur.RateToBase.IntPart()).To(Equal(int64(1)))

		categories, err := categorySvc.List(true)
		Expect(err).NotTo(HaveOccurred())
		Expect(categories).To(HaveLen(8))

		accounts, err := accountSvc.List(true)
		Expect(err).NotTo(HaveOccurred())
		Expect(accounts).To(HaveLen(1))
		Expect(accounts[0].Name).To(Equal("Cash"))
		Expect(accounts[0].CurrencyCode).To(Equal("USD"))
	})

	It("should be idempotent", func() {
		Expect(seeder.Run()).To(Succeed())
		Expect(seeder.Run()).To(Succeed())

		categories, err := categorySvc.List(true)
		Expect(err).NotTo(HaveOccurred())
		Expect(categories).To(HaveLen(8))

		accounts, err := accountSvc.List(true)
		Expect(err).NotTo(HaveOccurred())
		Expect(accounts).To(HaveLen(1))
	})

	It("should not grow a store the user has already shaped", func() {
		Expect(seeder.Run()).To(Succeed())

		_, err := accountSvc.Create(account.CreateAccountDTO{
			Name: "Savings", Type: account.TypeBank, CurrencyCode: "USD",
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(seeder.Run()).To(Succeed())

		accounts, err := accountSvc.List(true)
		Expect(err).NotTo(HaveOccurred())
		Expect(accounts).To(HaveLen(2))
	})

	It("should honor a base currency the user already picked", func() {
		Expect(settingsSvc.SetBaseCurrency("EUR")).To(Succeed())

		Expect(seeder.Run()).To(Succeed())

		base, err := settingsSvc.BaseCurrency()
		Expect(err).NotTo(HaveOccurred())
		Expect(base).To(Equal("EUR"))

		_, err = currencySvc.Get("EUR")
		Expect(err).NotTo(HaveOccurred())
	})
})
