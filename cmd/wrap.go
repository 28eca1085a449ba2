package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/adityarahman/celengan/internal/analytics"
)

var wrapMonth string

var wrapCmd = &cobra.Command{
	Use:   "wrap",
	Short: "Print the monthly recap",
	Run: func(cmd *cobra.Command, args []string) {
		deps, err := initDependencies()
		if err != nil {
			log.Fatalf("failed to initialize: %v", err)
		}
		defer deps.DB.Close()

		start, end, err := monthRange(wrapMonth)
		if err != nil {
			log.Fatal(err)
		}

		summary, err := deps.Analytics.Wrap(start, end)
		if err != nil {
			log.Fatalf("wrap failed: %v", err)
		}

		base, err := deps.Settings.BaseCurrency()
		if err != nil {
			log.Fatalf("failed to read base currency: %v", err)
		}

		fmt.Printf("Wrap for %s\n", wrapMonth)
		fmt.Printf("  spent  %12d %s across %d expenses\n", summary.TotalExpense, base, summary.ExpenseCount)
		fmt.Printf("  earned %12d %s across %d incomes\n", summary.TotalIncome, base, summary.IncomeCount)
		if summary.TopCategory != nil {
			fmt.Printf("  top category: %s (%d %s)\n", summary.TopCategory.CategoryName, summary.TopCategory.Total, base)
		}
		if summary.LargestExpense != nil {
			fmt.Printf("  largest expense: %s (%d %s)\n", summary.LargestExpense.Title, summary.LargestExpense.Amount, base)
			printLifeCost(deps, summary.LargestExpense.Amount, end)
		}
		if summary.PeakDay != nil {
			fmt.Printf("  peak day: %s (%d %s)\n", summary.PeakDay.Day, summary.PeakDay.Total, base)
		}

		regret, err := deps.Analytics.Regret(start, end)
		if err != nil {
			log.Fatalf("regret report failed: %v", err)
		}
		fmt.Println("\nHow it felt:")
		for _, bucket := range regret.Histogram {
			fmt.Printf("  %-20s %d\n", bucket.Label, bucket.Count)
		}
		if len(regret.MostRegretted) > 0 {
			fmt.Printf("  most regretted: %s (avg %.0f)\n",
				regret.MostRegretted[0].Title, regret.MostRegretted[0].Average)
		}
		if len(regret.MostWorthIt) > 0 {
			fmt.Printf("  most worth it:  %s (avg %.0f)\n",
				regret.MostWorthIt[0].Title, regret.MostWorthIt[0].Average)
		}
	},
}

func init() {
	wrapCmd.Flags().StringVar(&wrapMonth, "month", time.Now().Format("2006-01"), "month to recap (YYYY-MM, local)")
}

func printLifeCost(deps *Dependencies, amountBaseMinor int64, asOf int64) {
	rate, err := deps.Analytics.EffectiveHourlyRate(asOf)
	if err != nil {
		log.Fatalf("hourly rate lookup failed: %v", err)
	}
	hours, ok := analytics.LifeCostHours(amountBaseMinor, rate)
	if !ok {
		return
	}
	rendered, err := deps.Analytics.FormatLifeCost(hours)
	if err != nil {
		log.Fatalf("life-cost formatting failed: %v", err)
	}
	fmt.Printf("    that cost %s of your working time\n", rendered)
}

// monthRange expands a local calendar month into its inclusive
// millisecond range.
func monthRange(month string) (int64, int64, error) {
	start, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --month: %w", err)
	}
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start.UnixMilli(), end.UnixMilli(), nil
}
