package currency_test

import (
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/currency"
)

type mockCurrencyRepository struct {
	currencies  map[string]*currency.Currency
	upsertError error
	updates     map[string]map[string]interface{}
}

func newMockCurrencyRepository() *mockCurrencyRepository {
	return &mockCurrencyRepository{
		currencies: make(map[string]*currency.Currency),
		updates:    make(map[string]map[string]interface{}),
	}
}

func (m *mockCurrencyRepository) Upsert(c *currency.Currency) error {
	if m.upsertError != nil {
		return m.upsertError
	}
	m.currencies[c.Code] = c
	return nil
}

func (m *mockCurrencyRepository) GetByCode(code string) (*currency.Currency, error) {
	c, exists := m.currencies[code]
	if !exists {
		return nil, internal.ErrCurrencyNotFound
	}
	return c, nil
}

func (m *mockCurrencyRepository) List(includeArchived bool) ([]*currency.Currency, error) {
	out := make([]*currency.Currency, 0, len(m.currencies))
	for _, c := range m.currencies {
		if !includeArchived && c.ArchivedAt != nil {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCurrencyRepository) UpdateFields(code string, fields map[string]interface{}) error {
	if _, exists := m.currencies[code]; !exists {
		return internal.ErrCurrencyNotFound
	}
	m.updates[code] = fields
	if rate, ok := fields["rate_to_base"].(string); ok {
		m.currencies[code].RateToBase = decimal.RequireFromString(rate)
	}
	return nil
}

func (m *mockCurrencyRepository) Archive(code string, at int64) error {
	c, exists := m.currencies[code]
	if !exists {
		return internal.ErrCurrencyNotFound
	}
	c.ArchivedAt = &at
	return nil
}

type stubBaseProvider struct {
	code string
	err  error
}

func (s *stubBaseProvider) BaseCurrency() (string, error) {
	return s.code, s.err
}

var _ = Describe("CurrencyService", func() {
	var (
		service  *currency.Service
		mockRepo *mockCurrencyRepository
		base     *stubBaseProvider
	)

	BeforeEach(func() {
		mockRepo = newMockCurrencyRepository()
		base = &stubBaseProvider{code: "USD"}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = currency.NewService(mockRepo, base, logger)
	})

	Describe("Upsert", func() {
		It("should store a normalized currency", func() {
			result, err := service.Upsert(currency.UpsertCurrencyDTO{
				Code:       "eur",
				Name:       "Euro",
				RateToBase: decimal.RequireFromString("1.1"),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Code).To(Equal("EUR"))
			Expect(result.RateToBase.String()).To(Equal("1.1"))
			Expect(mockRepo.currencies).To(HaveKey("EUR"))
		})

		It("should pin the rate to 1 when the code matches the base currency", func() {
			result, err := service.Upsert(currency.UpsertCurrencyDTO{
				Code:       "USD",
				Name:       "US Dollar",
				RateToBase: decimal.RequireFromString("2.5"),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.RateToBase.Equal(decimal.NewFromInt(1))).To(BeTrue())
		})

		It("should reject a malformed code", func() {
			_, err := service.Upsert(currency.UpsertCurrencyDTO{
				Code:       "EURO",
				Name:       "Euro",
				RateToBase: decimal.NewFromInt(1),
			})

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should reject a non-positive rate", func() {
			_, err := service.Upsert(currency.UpsertCurrencyDTO{
				Code:       "EUR",
				Name:       "Euro",
				RateToBase: decimal.Zero,
			})

			Expect(err).To(HaveOccurred())
		})

		It("should surface repository errors", func() {
			mockRepo.upsertError = errors.New("disk full")

			_, err := service.Upsert(currency.UpsertCurrencyDTO{
				Code:       "EUR",
				Name:       "Euro",
				RateToBase: decimal.NewFromInt(1),
			})

			Expect(err).To(MatchError(ContainSubstring("disk full")))
		})
	})

	Describe("SetRate", func() {
		BeforeEach(func() {
			_, err := service.Upsert(currency.UpsertCurrencyDTO{
				Code:       "EUR",
				Name:       "Euro",
				RateToBase: decimal.NewFromInt(1),
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should update the stored rate", func() {
			err := service.SetRate("EUR", decimal.RequireFromString("1.2"))

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.currencies["EUR"].RateToBase.String()).To(Equal("1.2"))
		})

		It("should refuse to change the base currency rate", func() {
			err := service.SetRate("USD", decimal.RequireFromString("0.5"))

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("fixed at 1"))
		})

		It("should refuse a non-positive rate", func() {
			err := service.SetRate("EUR", decimal.NewFromInt(-1))

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("PinBase", func() {
		It("should reset the row for the new base code to rate 1", func() {
			_, err := service.Upsert(currency.UpsertCurrencyDTO{
				Code:       "EUR",
				Name:       "Euro",
				RateToBase: decimal.RequireFromString("1.1"),
			})
			Expect(err).ToNot(HaveOccurred())

			err = service.PinBase("EUR")

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.currencies["EUR"].RateToBase.Equal(decimal.NewFromInt(1))).To(BeTrue())
		})

		It("should be a no-op when no row exists for the code", func() {
			err := service.PinBase("JPY")

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.updates).To(BeEmpty())
		})
	})

	Describe("RateTable", func() {
		It("should include archived currencies", func() {
			_, err := service.Upsert(currency.UpsertCurrencyDTO{
				Code:       "EUR",
				Name:       "Euro",
				RateToBase: decimal.RequireFromString("1.1"),
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(service.Archive("EUR")).To(Succeed())

			table, err := service.RateTable()

			Expect(err).ToNot(HaveOccurred())
			Expect(table).To(HaveKey("EUR"))
		})
	})
})
