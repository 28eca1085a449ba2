package account

import (
	"time"

	"github.com/adityarahman/celengan/internal/core/id"
)

const IDPrefix = "acc"

const (
	TypeCash    = "cash"
	TypeBank    = "bank"
	TypeEWallet = "e-wallet"
	TypeCredit  = "credit"
)

// Account holds money in exactly one currency. StartingBalance is the
// opening amount in minor units; the live balance is always derived,
// never stored.
type Account struct {
	ID              string  `json:"id" gorm:"primaryKey;column:id"`
	Name            string  `json:"name" gorm:"column:name"`
	Type            string  `json:"type" gorm:"column:type"`
	CurrencyCode    string  `json:"currency_code" gorm:"column:currency_code"`
	StartingBalance int64   `json:"starting_balance" gorm:"column:starting_balance"`
	CreatedAt       int64   `json:"created_at" gorm:"column:created_at"`
	UpdatedAt       int64   `json:"updated_at" gorm:"column:updated_at"`
	ArchivedAt      *int64  `json:"archived_at,omitempty" gorm:"column:archived_at"`
}

func (Account) TableName() string {
	return "accounts"
}

func (a *Account) Archived() bool {
	return a.ArchivedAt != nil
}

func ValidType(accountType string) bool {
	switch accountType {
	case TypeCash, TypeBank, TypeEWallet, TypeCredit:
		return true
	}
	return false
}

func NewAccount(name, accountType, currencyCode string, startingBalance int64) *Account {
	now := time.Now().UnixMilli()
	return &Account{
		ID:              id.New(IDPrefix),
		Name:            name,
		Type:            accountType,
		CurrencyCode:    currencyCode,
		StartingBalance: startingBalance,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
