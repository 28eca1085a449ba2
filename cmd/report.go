package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/adityarahman/celengan/internal/analytics"
)

var (
	reportFrom string
	reportTo   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print balances and spending for a date range",
	Run: func(cmd *cobra.Command, args []string) {
		deps, err := initDependencies()
		if err != nil {
			log.Fatalf("failed to initialize: %v", err)
		}
		defer deps.DB.Close()

		start, end, err := parseRange(reportFrom, reportTo)
		if err != nil {
			log.Fatal(err)
		}

		portfolio, err := deps.Balance.Portfolio()
		if err != nil {
			log.Fatalf("balance computation failed: %v", err)
		}
		fmt.Printf("Accounts (total %d %s):\n", portfolio.Total, portfolio.BaseCurrency)
		for _, acc := range portfolio.Accounts {
			fmt.Printf("  %-20s %12d %s (%d %s)\n",
				acc.Name, acc.Balance, acc.CurrencyCode, acc.BaseEquivalent, portfolio.BaseCurrency)
		}

		spend, err := deps.Analytics.CategorySpend(start, end)
		if err != nil {
			log.Fatalf("category spend failed: %v", err)
		}
		fmt.Printf("\nSpending by category (%s to %s):\n", reportFrom, reportTo)
		for _, row := range spend {
			fmt.Printf("  %-20s %12d %s\n", row.CategoryName, row.Total, portfolio.BaseCurrency)
		}

		series, err := deps.Analytics.Series(start, end, analytics.GranularityDay)
		if err != nil {
			log.Fatalf("time series failed: %v", err)
		}
		fmt.Println("\nDaily expense series:")
		for _, point := range series.Expenses {
			fmt.Printf("  %s %12d\n", point.Bucket, point.Total)
		}
	},
}

func init() {
	today := time.Now().Format("2006-01-02")
	monthStart := time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	reportCmd.Flags().StringVar(&reportFrom, "from", monthStart, "range start (YYYY-MM-DD, local)")
	reportCmd.Flags().StringVar(&reportTo, "to", today, "range end (YYYY-MM-DD, local, inclusive)")
}

// parseRange turns local calendar dates into the inclusive millisecond
// range [start of from-day, end of to-day].
func parseRange(from, to string) (int64, int64, error) {
	start, err := time.ParseInLocation("2006-01-02", from, time.Local)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --from: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02", to, time.Local)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --to: %w", err)
	}
	endOfDay := end.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start.UnixMilli(), endOfDay.UnixMilli(), nil
}
