package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation is the database representation of a money-movement event.
// ClientID and BalanceAfter are nullable: both are absent on admin self operations.
type Operation struct {
	OperationID            string           `db:"operation_id"`
	UserID                 string           `db:"user_id"`
	ClientID               *string          `db:"client_id"`
	Type                   string           `db:"type"`
	Amount                 decimal.Decimal  `db:"amount"`
	Description            string           `db:"description"`
	RecipientAccountNumber string           `db:"recipient_account_number"`
	Status                 string           `db:"status"`
	BalanceAfter           *decimal.Decimal `db:"balance_after"`
	CreatedAt              time.Time        `db:"created_at"`
	UpdatedAt              time.Time        `db:"updated_at"`

	// Joined client display fields, not columns of the operations table.
	ClientFirstName     string `db:"client_first_name"`
	ClientLastName      string `db:"client_last_name"`
	ClientAccountNumber string `db:"client_account_number"`
}
