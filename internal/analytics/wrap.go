package analytics

import "github.com/shopspring/decimal"

// ExpenseHighlight is the single largest expense of a period, in base
// currency.
type ExpenseHighlight struct {
	Title  string `json:"title"`
	Amount int64  `json:"amount"`
	Date   int64  `json:"date"`
}

// DayHighlight is the calendar day with the highest spend.
type DayHighlight struct {
	Day   string `json:"day"`
	Total int64  `json:"total"`
}

// WrapSummary is the fixed recap bundle for a period. A data-free
// period yields zero totals and nil highlights, never an error.
type WrapSummary struct {
	Start          int64             `json:"start"`
	End            int64             `json:"end"`
	TotalExpense   int64             `json:"total_expense"`
	TotalIncome    int64             `json:"total_income"`
	ExpenseCount   int               `json:"expense_count"`
	IncomeCount    int               `json:"income_count"`
	TopCategory    *CategorySpend    `json:"top_category,omitempty"`
	LargestExpense *ExpenseHighlight `json:"largest_expense,omitempty"`
	PeakDay        *DayHighlight     `json:"peak_day,omitempty"`
}

// Wrap evaluates the recap bundle over one pass of the period's rows.
func (s *Service) Wrap(start, end int64) (*WrapSummary, error) {
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

	summary := &WrapSummary{
		Start:        start,
		End:          end,
		ExpenseCount: len(expenses),
		IncomeCount:  len(incomes),
	}

	totalExpense := decimal.Zero
	categoryTotals := map[string]decimal.Decimal{}
	categoryNames := map[string]string{}
	dayTotals := map[string]decimal.Decimal{}

	var largest *ExpenseHighlight
	largestExact := decimal.Zero

	for _, row := range expenses {
		inBase := inBaseExact(row.Amount, row.Currency, rates, baseCode)
		totalExpense = totalExpense.Add(inBase)

		categoryTotals[row.CategoryID] = categoryTotals[row.CategoryID].Add(inBase)
		categoryNames[row.CategoryID] = row.CategoryName

		day := bucketKey(row.Date, GranularityDay)
		dayTotals[day] = dayTotals[day].Add(inBase)

		if largest == nil || inBase.GreaterThan(largestExact) {
			largestExact = inBase
			largest = &ExpenseHighlight{
				Title:  row.Title,
				Amount: inBase.Round(0).IntPart(),
				Date:   row.Date,
			}
		}
	}
	summary.TotalExpense = totalExpense.Round(0).IntPart()
	summary.LargestExpense = largest

	totalIncome := decimal.Zero
	for _, row := range incomes {
		totalIncome = totalIncome.Add(inBaseExact(row.Amount, row.Currency, rates, baseCode))
	}
	summary.TotalIncome = totalIncome.Round(0).IntPart()

	var topCategoryID string
	topCategoryTotal := decimal.Zero
	for categoryID, total := range categoryTotals {
		if topCategoryID == "" || total.GreaterThan(topCategoryTotal) ||
			(total.Equal(topCategoryTotal) && categoryNames[categoryID] < categoryNames[topCategoryID]) {
			topCategoryID = categoryID
			topCategoryTotal = total
		}
	}
	if topCategoryID != "" {
		summary.TopCategory = &CategorySpend{
			CategoryID:   topCategoryID,
			CategoryName: categoryNames[topCategoryID],
			Total:        topCategoryTotal.Round(0).IntPart(),
		}
	}

	var peakDay string
	peakTotal := decimal.Zero
	for day, total := range dayTotals {
		if peakDay == "" || total.GreaterThan(peakTotal) || (total.Equal(peakTotal) && day < peakDay) {
			peakDay = day
			peakTotal = total
		}
	}
	if peakDay != "" {
		summary.PeakDay = &DayHighlight{Day: peakDay, Total: peakTotal.Round(0).IntPart()}
	}

	return summary, nil
}
