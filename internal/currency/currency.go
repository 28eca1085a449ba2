package currency

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Currency is a code-keyed rate row. RateToBase converts one unit of
// this currency into base-currency units: amount * rate = base amount.
// The base currency's own rate is pinned to 1 by the service.
type Currency struct {
	Code       string          `json:"code" gorm:"primaryKey;column:code"`
	Name       string          `json:"name" gorm:"column:name"`
	Symbol     *string         `json:"symbol,omitempty" gorm:"column:symbol"`
	RateToBase decimal.Decimal `json:"rate_to_base" gorm:"column:rate_to_base;type:text"`
	CreatedAt  int64           `json:"created_at" gorm:"column:created_at"`
	ArchivedAt *int64          `json:"archived_at,omitempty" gorm:"column:archived_at"`
}

func (Currency) TableName() string {
	return "currencies"
}

func (c *Currency) Archived() bool {
	return c.ArchivedAt != nil
}

// NormalizeCode upper-cases and trims a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func NewCurrency(code, name string, symbol *string, rate decimal.Decimal) *Currency {
	return &Currency{
		Code:       NormalizeCode(code),
		Name:       name,
		Symbol:     symbol,
		RateToBase: rate,
		CreatedAt:  time.Now().UnixMilli(),
	}
}
