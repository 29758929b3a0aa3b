package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is the database representation of a beneficiary account.
type Client struct {
	ClientID      string          `db:"client_id"`
	UserID        string          `db:"user_id"`
	FirstName     string          `db:"first_name"`
	LastName      string          `db:"last_name"`
	Email         string          `db:"email"`
	Phone         string          `db:"phone"`
	Street        string          `db:"street"`
	City          string          `db:"city"`
	PostalCode    string          `db:"postal_code"`
	Country       string          `db:"country"`
	AccountNumber string          `db:"account_number"`
	Balance       decimal.Decimal `db:"balance"`
	Status        string          `db:"status"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}
