package sqlite_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adityarahman/celengan/internal/account"
	"github.com/adityarahman/celengan/internal/analytics"
	analyticssqlite "github.com/adityarahman/celengan/internal/analytics/sqlite"
	"github.com/adityarahman/celengan/internal/category"
	"github.com/adityarahman/celengan/internal/ledger"
	"github.com/adityarahman/celengan/internal/migration"
)

func TestAnalyticsSqlite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Analytics Sqlite Suite")
}

// newTestStore opens an in-memory database and brings it to the
// current schema with the real revision list.
func newTestStore() (*gorm.DB, *sqlx.DB) {
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

	return gdb, sdb
}

func ptrTo[T any](v T) *T { return &v }

var _ = Describe("AnalyticsRepository", func() {
	var (
		gdb  *gorm.DB
		sdb  *sqlx.DB
		repo analytics.Repository

		usdAccount *account.Account
		eurAccount *account.Account
		food       *category.Category
		travel     *category.Category

		baseDate int64
	)

	BeforeEach(func() {
		gdb, sdb = newTestStore()
		repo = analyticssqlite.NewAnalyticsRepository(sdb)

		usdAccount = account.NewAccount("Cash", account.TypeCash, "USD", 0)
		eurAccount = account.NewAccount("Bank", account.TypeBank, "EUR", 0)
		food = category.NewCategory("Food", "🍜", "#ff8800", 0)
		travel = category.NewCategory("Travel", "✈️", "#0088ff", 1)

		Expect(gdb.Create(usdAccount).Error).NotTo(HaveOccurred())
		Expect(gdb.Create(eurAccount).Error).NotTo(HaveOccurred())
		Expect(gdb.Create(food).Error).NotTo(HaveOccurred())
		Expect(gdb.Create(travel).Error).NotTo(HaveOccurred())

		baseDate = time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC).UnixMilli()
	})

	AfterEach(func() {
		Expect(sdb.Close()).To(Succeed())
	})

	addExpense := func(title string, amount int64, cat *category.Category, acc *account.Account, date int64) *ledger.Expense {
		exp := ledger.NewExpense(ledger.CreateExpenseDTO{
			Title:      title,
			Amount:     amount,
			CategoryID: cat.ID,
			AccountID:  acc.ID,
			Date:       date,
		})
		Expect(gdb.Create(exp).Error).NotTo(HaveOccurred())
		return exp
	}

	addIncome := func(amount int64, acc *account.Account, hours *float64, date int64) *ledger.Income {
		inc := ledger.NewIncome(ledger.CreateIncomeDTO{
			Source:      "Salary",
			Amount:      amount,
			AccountID:   acc.ID,
			HoursWorked: hours,
			Date:        date,
		})
		Expect(gdb.Create(inc).Error).NotTo(HaveOccurred())
		return inc
	}

	Describe("ExpensesInRange", func() {
		It("should resolve the currency from the account and carry the category name", func() {
			exp := addExpense("Lunch", 1500, food, usdAccount, baseDate)
			Expect(gdb.Model(exp).Update("sentiment", 80).Error).NotTo(HaveOccurred())

			rows, err := repo.ExpensesInRange(baseDate-1, baseDate+1)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Title).To(Equal("Lunch"))
			Expect(rows[0].Currency).To(Equal("USD"))
			Expect(rows[0].CategoryName).To(Equal("Food"))
			Expect(rows[0].Sentiment).To(HaveValue(Equal(80)))
		})

		It("should prefer the per-entry currency override", func() {
			train := addExpense("Train", 900, travel, usdAccount, baseDate)
			Expect(gdb.Model(train).Update("currency_code", "EUR").Error).NotTo(HaveOccurred())

			rows, err := repo.ExpensesInRange(baseDate-1, baseDate+1)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Currency).To(Equal("EUR"))
		})

		It("should drop rows whose category is archived", func() {
			addExpense("Lunch", 1500, food, usdAccount, baseDate)
			addExpense("Flight", 9999, travel, usdAccount, baseDate)
			Expect(gdb.Model(travel).Update("archived_at", time.Now().UnixMilli()).Error).NotTo(HaveOccurred())

			rows, err := repo.ExpensesInRange(baseDate-1, baseDate+1)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Title).To(Equal("Lunch"))
		})

		It("should drop rows whose account is archived", func() {
			addExpense("Lunch", 1500, food, usdAccount, baseDate)
			addExpense("Hotel", 40000, food, eurAccount, baseDate)
			Expect(gdb.Model(eurAccount).Update("archived_at", time.Now().UnixMilli()).Error).NotTo(HaveOccurred())

			rows, err := repo.ExpensesInRange(baseDate-1, baseDate+1)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Title).To(Equal("Lunch"))
		})

		It("should honor the inclusive range and order ascending by date", func() {
			addExpense("Inside late", 200, food, usdAccount, baseDate)
			addExpense("Inside early", 100, food, usdAccount, baseDate-3600000)
			addExpense("Before", 50, food, usdAccount, baseDate-86400000)

			rows, err := repo.ExpensesInRange(baseDate-3600000, baseDate)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Title).To(Equal("Inside early"))
			Expect(rows[1].Title).To(Equal("Inside late"))
		})
	})

	Describe("IncomesInRange", func() {
		It("should carry the hours worked and the account currency", func() {
			addIncome(500000, eurAccount, ptrTo(40.0), baseDate)

			rows, err := repo.IncomesInRange(baseDate-1, baseDate+1)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Amount).To(Equal(int64(500000)))
			Expect(rows[0].Currency).To(Equal("EUR"))
			Expect(rows[0].HoursWorked).To(HaveValue(Equal(40.0)))
		})

		It("should prefer the per-entry currency override", func() {
			inc := addIncome(750000, usdAccount, nil, baseDate)
			Expect(gdb.Model(inc).Update("currency_code", "IDR").Error).NotTo(HaveOccurred())

			rows, err := repo.IncomesInRange(baseDate-1, baseDate+1)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Currency).To(Equal("IDR"))
		})

		It("should drop rows whose account is archived", func() {
			addIncome(500000, usdAccount, ptrTo(40.0), baseDate)
			addIncome(90000, eurAccount, nil, baseDate)
			Expect(gdb.Model(eurAccount).Update("archived_at", time.Now().UnixMilli()).Error).NotTo(HaveOccurred())

			rows, err := repo.IncomesInRange(baseDate-1, baseDate+1)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Amount).To(Equal(int64(500000)))
		})

		It("should honor the inclusive range", func() {
			addIncome(100, usdAccount, nil, baseDate-86400000)
			addIncome(200, usdAccount, nil, baseDate)

			rows, err := repo.IncomesInRange(baseDate, baseDate)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Amount).To(Equal(int64(200)))
		})
	})
})
