package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is a transient value object: one row of a payment schedule. It
// is never persisted on its own; the contract row keeps the totals and counts
// while the rendered document carries the full rows.
type Installment struct {
	Sequence int             `json:"sequence"`
	Label    string          `json:"label"`
	DueDate  time.Time       `json:"due_date"`
	Amount   decimal.Decimal `json:"amount"`
	Method   string          `json:"method"`
}
