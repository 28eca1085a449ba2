// Package analytics computes read-only aggregations over the ledger.
// Every function is pure with respect to its input range and the store
// snapshot: no caching, no hidden state. Absence of data is a valid
// result, never an error.
package analytics

import (
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adityarahman/celengan/internal/currency"
)

// ExpenseRow and IncomeRow are the flat projections analytics consumes.
// Currency is the resolved entry currency (override or account).
type ExpenseRow struct {
	Title        string `db:"title"`
	Amount       int64  `db:"amount"`
	Currency     string `db:"currency"`
	CategoryID   string `db:"category_id"`
	CategoryName string `db:"category_name"`
	Sentiment    *int   `db:"sentiment"`
	Date         int64  `db:"date"`
}

type IncomeRow struct {
	Amount      int64    `db:"amount"`
	Currency    string   `db:"currency"`
	HoursWorked *float64 `db:"hours_worked"`
	Date        int64    `db:"date"`
}

// Repository fetches ledger rows for an inclusive [start, end]
// millisecond range, excluding rows referencing archived accounts or
// categories.
type Repository interface {
	ExpensesInRange(start, end int64) ([]ExpenseRow, error)
	IncomesInRange(start, end int64) ([]IncomeRow, error)
}

type RateSource interface {
	RateTable() (currency.RateTable, error)
}

type BaseSource interface {
	BaseCurrency() (string, error)
}

// RateSettings supplies the optional fixed hourly rate and the working
// day length; both live in the settings bag.
type RateSettings interface {
	HourlyRateMinor() (*int64, error)
	HoursPerDay() (int, error)
}

type Service struct {
	repo     Repository
	rates    RateSource
	base     BaseSource
	settings RateSettings
	logger   *slog.Logger
}

func NewService(repo Repository, rates RateSource, base BaseSource, settings RateSettings, logger *slog.Logger) *Service {
	return &Service{repo: repo, rates: rates, base: base, settings: settings, logger: logger}
}

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// SeriesPoint is one non-empty calendar bucket. Bucket keys are local
// calendar dates, "2006-01-02" for days and "2006-01" for months.
type SeriesPoint struct {
	Bucket string `json:"bucket"`
	Total  int64  `json:"total"`
}

// TimeSeries holds the sparse expense and income series for a range;
// buckets with no activity are omitted.
type TimeSeries struct {
	Granularity Granularity   `json:"granularity"`
	Expenses    []SeriesPoint `json:"expenses"`
	Incomes     []SeriesPoint `json:"incomes"`
}

// CategorySpend is one category's expense total in base currency.
type CategorySpend struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Total        int64  `json:"total"`
}

// Series buckets expenses and incomes by local calendar day or month,
// each bucket total converted to base currency and rounded once.
func (s *Service) Series(start, end int64, granularity Granularity) (*TimeSeries, error) {
	if granularity != GranularityDay && granularity != GranularityMonth {
		granularity = GranularityDay
	}

	rates, baseCode, err := s.conversionContext()
	if err != nil {
		return nil, err
	}

	expenses, err := s.repo.ExpensesInRange(start, end)
	if err != nil {
		return nil, err
	}
	incomes, err := s.repo.IncomesInRange(start, end)
	if err != nil {
		return nil, err
	}

	expenseBuckets := map[string]decimal.Decimal{}
	for _, row := range expenses {
		key := bucketKey(row.Date, granularity)
		expenseBuckets[key] = expenseBuckets[key].Add(inBaseExact(row.Amount, row.Currency, rates, baseCode))
	}
	incomeBuckets := map[string]decimal.Decimal{}
	for _, row := range incomes {
		key := bucketKey(row.Date, granularity)
		incomeBuckets[key] = incomeBuckets[key].Add(inBaseExact(row.Amount, row.Currency, rates, baseCode))
	}

	return &TimeSeries{
		Granularity: granularity,
		Expenses:    sortedSeries(expenseBuckets),
		Incomes:     sortedSeries(incomeBuckets),
	}, nil
}

// CategorySpend totals expenses per category in base currency,
// descending by total.
func (s *Service) CategorySpend(start, end int64) ([]CategorySpend, error) {
	rates, baseCode, err := s.conversionContext()
	if err != nil {
		return nil, err
	}

	expenses, err := s.repo.ExpensesInRange(start, end)
	if err != nil {
		return nil, err
	}

	totals := map[string]decimal.Decimal{}
	names := map[string]string{}
	for _, row := range expenses {
		totals[row.CategoryID] = totals[row.CategoryID].Add(inBaseExact(row.Amount, row.Currency, rates, baseCode))
		names[row.CategoryID] = row.CategoryName
	}

	result := make([]CategorySpend, 0, len(totals))
	for categoryID, total := range totals {
		result = append(result, CategorySpend{
			CategoryID:   categoryID,
			CategoryName: names[categoryID],
			Total:        total.Round(0).IntPart(),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].CategoryName < result[j].CategoryName
	})
	return result, nil
}

func (s *Service) conversionContext() (currency.RateTable, string, error) {
	rates, err := s.rates.RateTable()
	if err != nil {
		return nil, "", err
	}
	baseCode, err := s.base.BaseCurrency()
	if err != nil {
		return nil, "", err
	}
	return rates, baseCode, nil
}

// inBaseExact converts without rounding so bucket totals round exactly
// once, on output.
func inBaseExact(amount int64, code string, rates currency.RateTable, baseCode string) decimal.Decimal {
	return decimal.NewFromInt(amount).Mul(currency.RateOf(code, rates, baseCode))
}

func bucketKey(dateMillis int64, granularity Granularity) string {
	t := time.UnixMilli(dateMillis).Local()
	if granularity == GranularityMonth {
		return t.Format("2006-01")
	}
	return t.Format("2006-01-02")
}

func sortedSeries(buckets map[string]decimal.Decimal) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(buckets))
	for key, total := range buckets {
		points = append(points, SeriesPoint{Bucket: key, Total: total.Round(0).IntPart()})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Bucket < points[j].Bucket })
	return points
}
