package domain

import (
	"github.com/shopspring/decimal"
)

// ClientStatus indicates the lifecycle state of a client account.
type ClientStatus string

const (
	ClientActive    ClientStatus = "active"
	ClientInactive  ClientStatus = "inactive"
	ClientSuspended ClientStatus = "suspended"
)

// Address holds the optional structured postal address of a client.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Client represents a beneficiary account managed by a bank-employee user.
// The balance is maintained incrementally by the operation ledger; it is never
// recomputed from history on read.
type Client struct {
	ClientID      string          `json:"clientID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`   // Owning user; every query is scoped by it
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone,omitempty"`
	Address       Address         `json:"address"`
	AccountNumber string          `json:"accountNumber"` // Globally unique across all clients
	Balance       decimal.Decimal `json:"balance"`
	Status        ClientStatus    `json:"status"`
	Timestamps
}
