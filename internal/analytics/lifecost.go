package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const trailingRateWindow = 30 * 24 * time.Hour

// HourlyRate is the effective earning rate in base-currency minor
// units per hour. Defined reports whether a rate exists at all: "no
// rate" and "zero rate" are different answers and callers must not
// collapse them.
type HourlyRate struct {
	Defined      bool            `json:"defined"`
	MinorPerHour decimal.Decimal `json:"minor_per_hour"`
}

// EffectiveHourlyRate derives the rate from incomes logged with a
// positive hours-worked value in the trailing 30 days before asOf:
// total income in base / total hours. The derived rate is the primary
// definition. When the window carries no logged hours, the fixed
// hourly-rate setting supplements it as a fallback; with neither the
// rate is undefined.
func (s *Service) EffectiveHourlyRate(asOf int64) (HourlyRate, error) {
	rates, baseCode, err := s.conversionContext()
	if err != nil {
		return HourlyRate{}, err
	}

	start := asOf - trailingRateWindow.Milliseconds()
	incomes, err := s.repo.IncomesInRange(start, asOf)
	if err != nil {
		return HourlyRate{}, err
	}

	totalBase := decimal.Zero
	totalHours := decimal.Zero
	for _, row := range incomes {
		if row.HoursWorked == nil || *row.HoursWorked <= 0 {
			continue
		}
		totalBase = totalBase.Add(inBaseExact(row.Amount, row.Currency, rates, baseCode))
		totalHours = totalHours.Add(decimal.NewFromFloat(*row.HoursWorked))
	}

	if totalHours.IsPositive() {
		return HourlyRate{Defined: true, MinorPerHour: totalBase.Div(totalHours)}, nil
	}

	fixed, err := s.settings.HourlyRateMinor()
	if err != nil {
		return HourlyRate{}, err
	}
	if fixed != nil {
		return HourlyRate{Defined: true, MinorPerHour: decimal.NewFromInt(*fixed)}, nil
	}
	return HourlyRate{}, nil
}

// LifeCostHours converts a base-currency amount into working hours at
// the given rate. Undefined or zero rates yield no answer.
func LifeCostHours(amountBaseMinor int64, rate HourlyRate) (float64, bool) {
	if !rate.Defined || !rate.MinorPerHour.IsPositive() {
		return 0, false
	}
	hours, _ := decimal.NewFromInt(amountBaseMinor).Div(rate.MinorPerHour).Float64()
	return hours, true
}

// FormatLifeCost renders hours for display: minutes under an hour,
// hours+minutes under a working day, working days under a year, years
// beyond. Rounding here is display-only and never feeds back into
// computation.
func (s *Service) FormatLifeCost(hours float64) (string, error) {
	hoursPerDay, err := s.settings.HoursPerDay()
	if err != nil {
		return "", err
	}
	return formatLifeCost(hours, hoursPerDay), nil
}

func formatLifeCost(hours float64, hoursPerDay int) string {
	if hours < 0 {
		hours = 0
	}
	if hours < 1 {
		return fmt.Sprintf("%dm", int(math.Round(hours*60)))
	}
	if hours < float64(hoursPerDay) {
		whole := int(hours)
		minutes := int(math.Round((hours - float64(whole)) * 60))
		if minutes == 60 {
			whole++
			minutes = 0
		}
		if minutes == 0 {
			return fmt.Sprintf("%dh", whole)
		}
		return fmt.Sprintf("%dh %dm", whole, minutes)
	}
	days := hours / float64(hoursPerDay)
	if days < 365 {
		return fmt.Sprintf("%.1fd", days)
	}
	return fmt.Sprintf("%.1fy", days/365)
}
