package ledger

import (
	"time"

	"github.com/adityarahman/celengan/internal/core/id"
)

const TransferIDPrefix = "trf"

// Transfer moves Amount between two accounts as one directed movement,
// not two offsetting entries. The amount is denominated in the
// from-account's currency and applied to the to-account at face value
// with no conversion; a cross-currency transfer therefore changes
// magnitude with no recorded rate. Kept for compatibility with the
// existing data model rather than corrected here.
type Transfer struct {
	ID            string  `json:"id" gorm:"primaryKey;column:id"`
	FromAccountID string  `json:"from_account_id" gorm:"column:from_account_id"`
	ToAccountID   string  `json:"to_account_id" gorm:"column:to_account_id"`
	Amount        int64   `json:"amount" gorm:"column:amount"`
	Date          int64   `json:"date" gorm:"column:date"`
	Notes         *string `json:"notes,omitempty" gorm:"column:notes"`
	CreatedAt     int64   `json:"created_at" gorm:"column:created_at"`
}

func (Transfer) TableName() string {
	return "transfers"
}

func NewTransfer(dto CreateTransferDTO) *Transfer {
	return &Transfer{
		ID:            id.New(TransferIDPrefix),
		FromAccountID: dto.FromAccountID,
		ToAccountID:   dto.ToAccountID,
		Amount:        dto.Amount,
		Date:          dto.Date,
		Notes:         dto.Notes,
		CreatedAt:     time.Now().UnixMilli(),
	}
}
