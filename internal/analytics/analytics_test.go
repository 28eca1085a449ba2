package analytics_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/adityarahman/celengan/internal/analytics"
	"github.com/adityarahman/celengan/internal/currency"
)

func TestAnalytics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Analytics Suite")
}

type mockAnalyticsRepository struct {
	expenses []analytics.ExpenseRow
	incomes  []analytics.IncomeRow
}

func (m *mockAnalyticsRepository) ExpensesInRange(start, end int64) ([]analytics.ExpenseRow, error) {
	out := []analytics.ExpenseRow{}
	for _, row := range m.expenses {
		if row.Date >= start && row.Date <= end {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *mockAnalyticsRepository) IncomesInRange(start, end int64) ([]analytics.IncomeRow, error) {
	out := []analytics.IncomeRow{}
	for _, row := range m.incomes {
		if row.Date >= start && row.Date <= end {
			out = append(out, row)
		}
	}
	return out, nil
}

type stubRateSource struct {
	rates currency.RateTable
}

func (s *stubRateSource) RateTable() (currency.RateTable, error) {
	return s.rates, nil
}

type stubBaseSource struct{}

func (stubBaseSource) BaseCurrency() (string, error) { return "USD", nil }

type stubRateSettings struct {
	fixedRate   *int64
	hoursPerDay int
}

func (s *stubRateSettings) HourlyRateMinor() (*int64, error) { return s.fixedRate, nil }
func (s *stubRateSettings) HoursPerDay() (int, error)        { return s.hoursPerDay, nil }

func ptrTo[T any](v T) *T { return &v }

func millis(value string) int64 {
	t, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	Expect(err).NotTo(HaveOccurred())
	return t.UnixMilli()
}

var _ = Describe("AnalyticsService", func() {
	var (
		service  *analytics.Service
		mockRepo *mockAnalyticsRepository
		settings *stubRateSettings

		start, end int64
	)

	BeforeEach(func() {
		mockRepo = &mockAnalyticsRepository{}
		settings = &stubRateSettings{hoursPerDay: 8}
		rates := &stubRateSource{rates: currency.RateTable{
			"USD": decimal.NewFromInt(1),
			"EUR": decimal.RequireFromString("1.1"),
		}}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = analytics.NewService(mockRepo, rates, stubBaseSource{}, settings, logger)

		start = millis("2026-07-01 00:00")
		end = millis("2026-07-31 23:59")
	})

	Describe("Series", func() {
		BeforeEach(func() {
			mockRepo.expenses = []analytics.ExpenseRow{
				{Title: "Coffee", Amount: 500, Currency: "USD", CategoryID: "cat_food", CategoryName: "Food", Date: millis("2026-07-01 09:00")},
				{Title: "Lunch", Amount: 1500, Currency: "USD", CategoryID: "cat_food", CategoryName: "Food", Date: millis("2026-07-01 12:30")},
				{Title: "Train", Amount: 1000, Currency: "EUR", CategoryID: "cat_travel", CategoryName: "Travel", Date: millis("2026-07-03 08:00")},
			}
			mockRepo.incomes = []analytics.IncomeRow{
				{Amount: 100000, Currency: "USD", Date: millis("2026-07-25 10:00")},
			}
		})

		It("should bucket by local calendar day, omitting empty days", func() {
			series, err := service.Series(start, end, analytics.GranularityDay)

			Expect(err).ToNot(HaveOccurred())
			Expect(series.Expenses).To(HaveLen(2))
			Expect(series.Expenses[0].Bucket).To(Equal("2026-07-01"))
			Expect(series.Expenses[0].Total).To(Equal(int64(2000)))
			// 1000 EUR cents * 1.1 = 1100 USD cents
			Expect(series.Expenses[1].Bucket).To(Equal("2026-07-03"))
			Expect(series.Expenses[1].Total).To(Equal(int64(1100)))
			Expect(series.Incomes).To(HaveLen(1))
			Expect(series.Incomes[0].Total).To(Equal(int64(100000)))
		})

		It("should collapse the month into one bucket at month granularity", func() {
			series, err := service.Series(start, end, analytics.GranularityMonth)

			Expect(err).ToNot(HaveOccurred())
			Expect(series.Expenses).To(HaveLen(1))
			Expect(series.Expenses[0].Bucket).To(Equal("2026-07"))
			Expect(series.Expenses[0].Total).To(Equal(int64(3100)))
		})

		It("should round once per bucket, not per row", func() {
			// Two rows of 5 EUR cents: exact per bucket 11.0; per-row
			// rounding would give 6+6=12.
			mockRepo.expenses = []analytics.ExpenseRow{
				{Title: "A", Amount: 5, Currency: "EUR", CategoryID: "c", CategoryName: "C", Date: millis("2026-07-10 10:00")},
				{Title: "B", Amount: 5, Currency: "EUR", CategoryID: "c", CategoryName: "C", Date: millis("2026-07-10 11:00")},
			}

			series, err := service.Series(start, end, analytics.GranularityDay)

			Expect(err).ToNot(HaveOccurred())
			Expect(series.Expenses[0].Total).To(Equal(int64(11)))
		})

		It("should return empty series for a range with no data", func() {
			series, err := service.Series(millis("2020-01-01 00:00"), millis("2020-01-31 23:59"), analytics.GranularityDay)

			Expect(err).ToNot(HaveOccurred())
			Expect(series.Expenses).To(BeEmpty())
			Expect(series.Incomes).To(BeEmpty())
		})
	})

	Describe("CategorySpend", func() {
		It("should total per category, largest first", func() {
			mockRepo.expenses = []analytics.ExpenseRow{
				{Title: "Coffee", Amount: 500, Currency: "USD", CategoryID: "cat_food", CategoryName: "Food", Date: millis("2026-07-01 09:00")},
				{Title: "Flight", Amount: 90000, Currency: "USD", CategoryID: "cat_travel", CategoryName: "Travel", Date: millis("2026-07-02 09:00")},
				{Title: "Lunch", Amount: 1500, Currency: "USD", CategoryID: "cat_food", CategoryName: "Food", Date: millis("2026-07-03 09:00")},
			}

			spend, err := service.CategorySpend(start, end)

			Expect(err).ToNot(HaveOccurred())
			Expect(spend).To(HaveLen(2))
			Expect(spend[0].CategoryName).To(Equal("Travel"))
			Expect(spend[0].Total).To(Equal(int64(90000)))
			Expect(spend[1].CategoryName).To(Equal("Food"))
			Expect(spend[1].Total).To(Equal(int64(2000)))
		})
	})

	Describe("Regret", func() {
		BeforeEach(func() {
			mockRepo.expenses = []analytics.ExpenseRow{
				{Title: "Impulse gadget", Amount: 20000, Currency: "USD", CategoryID: "cat_fun", CategoryName: "Fun", Sentiment: ptrTo(10), Date: millis("2026-07-01 10:00")},
				{Title: "Concert", Amount: 8000, Currency: "USD", CategoryID: "cat_fun", CategoryName: "Fun", Sentiment: ptrTo(95), Date: millis("2026-07-02 10:00")},
				{Title: "Groceries", Amount: 5000, Currency: "USD", CategoryID: "cat_food", CategoryName: "Food", Date: millis("2026-07-03 10:00")},
			}
		})

		It("should count unrated expenses as 50", func() {
			report, err := service.Regret(start, end)

			Expect(err).ToNot(HaveOccurred())
			histogram := map[string]int{}
			for _, bucket := range report.Histogram {
				histogram[bucket.Label] = bucket.Count
			}
			Expect(histogram[analytics.BucketTotalRegret]).To(Equal(1))
			Expect(histogram[analytics.BucketMixed]).To(Equal(1))
			Expect(histogram[analytics.BucketAbsolutelyWorthIt]).To(Equal(1))
		})

		It("should keep the five buckets in fixed order even when empty", func() {
			mockRepo.expenses = nil

			report, err := service.Regret(start, end)

			Expect(err).ToNot(HaveOccurred())
			Expect(report.Histogram).To(HaveLen(5))
			Expect(report.Histogram[0].Label).To(Equal(analytics.BucketTotalRegret))
			Expect(report.Histogram[4].Label).To(Equal(analytics.BucketAbsolutelyWorthIt))
		})

		It("should order categories most regretted first", func() {
			report, err := service.Regret(start, end)

			Expect(err).ToNot(HaveOccurred())
			Expect(report.ByCategory).To(HaveLen(2))
			// Food averages 50 (unrated), Fun averages (10+95)/2 = 52.5
			Expect(report.ByCategory[0].CategoryName).To(Equal("Food"))
			Expect(report.ByCategory[1].CategoryName).To(Equal("Fun"))
		})

		It("should rank titles at both extremes", func() {
			report, err := service.Regret(start, end)

			Expect(err).ToNot(HaveOccurred())
			Expect(report.MostRegretted[0].Title).To(Equal("Impulse gadget"))
			Expect(report.MostWorthIt[0].Title).To(Equal("Concert"))
		})
	})

	Describe("EffectiveHourlyRate", func() {
		It("should derive the rate from incomes with logged hours", func() {
			mockRepo.incomes = []analytics.IncomeRow{
				{Amount: 500000, Currency: "USD", HoursWorked: ptrTo(40.0), Date: millis("2026-07-20 10:00")},
			}

			rate, err := service.EffectiveHourlyRate(millis("2026-07-31 23:59"))

			Expect(err).ToNot(HaveOccurred())
			Expect(rate.Defined).To(BeTrue())
			Expect(rate.MinorPerHour.Equal(decimal.NewFromInt(12500))).To(BeTrue())
		})

		It("should ignore incomes without positive hours", func() {
			mockRepo.incomes = []analytics.IncomeRow{
				{Amount: 500000, Currency: "USD", HoursWorked: ptrTo(40.0), Date: millis("2026-07-20 10:00")},
				{Amount: 999999, Currency: "USD", Date: millis("2026-07-21 10:00")},
				{Amount: 999999, Currency: "USD", HoursWorked: ptrTo(0.0), Date: millis("2026-07-22 10:00")},
			}

			rate, err := service.EffectiveHourlyRate(millis("2026-07-31 23:59"))

			Expect(err).ToNot(HaveOccurred())
			Expect(rate.MinorPerHour.Equal(decimal.NewFromInt(12500))).To(BeTrue())
		})

		It("should ignore incomes outside the trailing window", func() {
			mockRepo.incomes = []analytics.IncomeRow{
				{Amount: 500000, Currency: "USD", HoursWorked: ptrTo(40.0), Date: millis("2026-05-01 10:00")},
			}

			rate, err := service.EffectiveHourlyRate(millis("2026-07-31 23:59"))

			Expect(err).ToNot(HaveOccurred())
			Expect(rate.Defined).To(BeFalse())
		})

		It("should fall back to the fixed setting when no hours are logged", func() {
			settings.fixedRate = ptrTo(int64(9000))

			rate, err := service.EffectiveHourlyRate(millis("2026-07-31 23:59"))

			Expect(err).ToNot(HaveOccurred())
			Expect(rate.Defined).To(BeTrue())
			Expect(rate.MinorPerHour.Equal(decimal.NewFromInt(9000))).To(BeTrue())
		})

		It("should report undefined with neither hours nor a fixed rate", func() {
			rate, err := service.EffectiveHourlyRate(millis("2026-07-31 23:59"))

			Expect(err).ToNot(HaveOccurred())
			Expect(rate.Defined).To(BeFalse())
		})
	})

	Describe("LifeCostHours", func() {
		It("should divide the amount by the hourly rate", func() {
			rate := analytics.HourlyRate{Defined: true, MinorPerHour: decimal.NewFromInt(12500)}

			hours, ok := analytics.LifeCostHours(500000, rate)

			Expect(ok).To(BeTrue())
			Expect(hours).To(BeNumerically("~", 40.0, 1e-9))
		})

		It("should give no answer for an undefined rate", func() {
			_, ok := analytics.LifeCostHours(500000, analytics.HourlyRate{})

			Expect(ok).To(BeFalse())
		})

		It("should give no answer for a zero rate", func() {
			rate := analytics.HourlyRate{Defined: true, MinorPerHour: decimal.Zero}

			_, ok := analytics.LifeCostHours(500000, rate)

			Expect(ok).To(BeFalse())
		})
	})

	Describe("FormatLifeCost", func() {
		It("should render minutes under an hour", func() {
			Expect(service.FormatLifeCost(0.5)).To(Equal("30m"))
		})

		It("should render hours and minutes under a working day", func() {
			Expect(service.FormatLifeCost(2.5)).To(Equal("2h 30m"))
			Expect(service.FormatLifeCost(3.0)).To(Equal("3h"))
		})

		It("should render working days beyond a day", func() {
			Expect(service.FormatLifeCost(12.0)).To(Equal("1.5d"))
		})

		It("should render years beyond 365 working days", func() {
			Expect(service.FormatLifeCost(8 * 365 * 2)).To(Equal("2.0y"))
		})
	})

	Describe("Wrap", func() {
		BeforeEach(func() {
			mockRepo.expenses = []analytics.ExpenseRow{
				{Title: "Coffee", Amount: 500, Currency: "USD", CategoryID: "cat_food", CategoryName: "Food", Date: millis("2026-07-01 09:00")},
				{Title: "Flight", Amount: 90000, Currency: "USD", CategoryID: "cat_travel", CategoryName: "Travel", Date: millis("2026-07-02 09:00")},
				{Title: "Lunch", Amount: 1500, Currency: "USD", CategoryID: "cat_food", CategoryName: "Food", Date: millis("2026-07-02 12:00")},
			}
			mockRepo.incomes = []analytics.IncomeRow{
				{Amount: 300000, Currency: "USD", Date: millis("2026-07-25 10:00")},
			}
		})

		It("should summarize totals, counts and highlights", func() {
			summary, err := service.Wrap(start, end)

			Expect(err).ToNot(HaveOccurred())
			Expect(summary.TotalExpense).To(Equal(int64(92000)))
			Expect(summary.TotalIncome).To(Equal(int64(300000)))
			Expect(summary.ExpenseCount).To(Equal(3))
			Expect(summary.IncomeCount).To(Equal(1))
			Expect(summary.TopCategory.CategoryName).To(Equal("Travel"))
			Expect(summary.LargestExpense.Title).To(Equal("Flight"))
			Expect(summary.PeakDay.Day).To(Equal("2026-07-02"))
			Expect(summary.PeakDay.Total).To(Equal(int64(91500)))
		})

		It("should return zero totals and nil highlights for an empty period", func() {
			summary, err := service.Wrap(millis("2020-01-01 00:00"), millis("2020-01-31 23:59"))

			Expect(err).ToNot(HaveOccurred())
			Expect(summary.TotalExpense).To(BeZero())
			Expect(summary.ExpenseCount).To(BeZero())
			Expect(summary.TopCategory).To(BeNil())
			Expect(summary.LargestExpense).To(BeNil())
			Expect(summary.PeakDay).To(BeNil())
		})
	})
})
