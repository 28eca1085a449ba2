package currency_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/adityarahman/celengan/internal/currency"
)

func TestCurrency(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Currency Suite")
}

var _ = Describe("Conversion", func() {
	var rates currency.RateTable

	BeforeEach(func() {
		rates = currency.RateTable{
			"USD": decimal.NewFromInt(1),
			"EUR": decimal.RequireFromString("1.1"),
			"IDR": decimal.RequireFromString("0.0000625"),
			"BAD": decimal.NewFromInt(-3),
		}
	})

	Describe("ToBase", func() {
		It("should return the amount unchanged for the base currency", func() {
			Expect(currency.ToBase(1000, "USD", rates, "USD")).To(Equal(int64(1000)))
		})

		It("should multiply by the rate and round to integer minor units", func() {
			// 1000 EUR cents * 1.1 = 1100 USD cents
			Expect(currency.ToBase(1000, "EUR", rates, "USD")).To(Equal(int64(1100)))
		})

		It("should round half away from zero", func() {
			// 15 * 1.1 = 16.5 -> 17
			Expect(currency.ToBase(15, "EUR", rates, "USD")).To(Equal(int64(17)))
		})

		It("should treat an unknown currency as rate 1", func() {
			Expect(currency.ToBase(2500, "XXX", rates, "USD")).To(Equal(int64(2500)))
		})

		It("should treat a non-positive rate as rate 1", func() {
			Expect(currency.ToBase(2500, "BAD", rates, "USD")).To(Equal(int64(2500)))
		})

		It("should ignore a stale table entry for the base currency itself", func() {
			rates["USD"] = decimal.RequireFromString("2")
			Expect(currency.ToBase(1000, "USD", rates, "USD")).To(Equal(int64(1000)))
		})

		It("should normalize lowercase codes", func() {
			Expect(currency.ToBase(1000, "eur", rates, "usd")).To(Equal(int64(1100)))
		})
	})

	Describe("Between", func() {
		It("should return the amount unchanged for identical codes", func() {
			Expect(currency.Between(777, "EUR", "EUR", rates, "USD")).To(Equal(int64(777)))
		})

		It("should compose the two rates directly", func() {
			// 1000 USD cents / 1.1 = 909.09... -> 909 EUR cents
			Expect(currency.Between(1000, "USD", "EUR", rates, "USD")).To(Equal(int64(909)))
		})

		It("should convert across two non-base currencies", func() {
			// 100 EUR cents * 1.1 / 0.0000625 = 1,760,000 IDR minor
			Expect(currency.Between(100, "EUR", "IDR", rates, "USD")).To(Equal(int64(1760000)))
		})

		It("should short-circuit when both rates resolve equal", func() {
			rates["GBP"] = decimal.RequireFromString("1.1")
			Expect(currency.Between(333, "EUR", "GBP", rates, "USD")).To(Equal(int64(333)))
		})
	})

	Describe("BuildRateTable", func() {
		It("should key rates by normalized code", func() {
			table := currency.BuildRateTable([]*currency.Currency{
				{Code: "eur", RateToBase: decimal.RequireFromString("1.1")},
			})
			Expect(table).To(HaveKey("EUR"))
			Expect(table["EUR"].String()).To(Equal("1.1"))
		})
	})
})
