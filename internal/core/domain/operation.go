package domain

import (
	"github.com/shopspring/decimal"
)

// OperationType identifies the kind of money movement an operation records.
type OperationType string

const (
	Deposit    OperationType = "deposit"
	Withdrawal OperationType = "withdrawal"
	Transfer   OperationType = "transfer"
	Payment    OperationType = "payment"
)

// KnownOperationType reports whether t is one of the four operation kinds.
func KnownOperationType(t OperationType) bool {
	switch t {
	case Deposit, Withdrawal, Transfer, Payment:
		return true
	}
	return false
}

// OperationStatus indicates the state of an operation.
type OperationStatus string

const (
	StatusPending   OperationStatus = "pending"
	StatusCompleted OperationStatus = "completed"
	StatusFailed    OperationStatus = "failed"
	StatusCancelled OperationStatus = "cancelled"
)

// Direction is the sign an operation applies to a client balance.
type Direction int

const (
	Credit Direction = iota
	Debit
)

// OperationDirection collapses the operation type plus the admin-origin marker
// into a single sign rule: deposits credit the client, a transfer originating
// from the employee's own funds credits the client, everything else debits it.
func OperationDirection(t OperationType, fromAdmin bool) Direction {
	if t == Deposit {
		return Credit
	}
	if t == Transfer && fromAdmin {
		return Credit
	}
	return Debit
}

// Operation represents a single money-movement event. Operations are immutable
// except for their status; balanceAfter is a point-in-time snapshot taken at
// creation and is never retroactively corrected.
type Operation struct {
	OperationID            string           `json:"operationID"` // Primary Key (UUID)
	UserID                 string           `json:"userID"`      // Owning user
	ClientID               *string          `json:"clientID"`    // Nil for admin self operations
	Type                   OperationType    `json:"type"`
	Amount                 decimal.Decimal  `json:"amount"` // Strictly positive
	Description            string           `json:"description,omitempty"`
	RecipientAccountNumber string           `json:"recipientAccountNumber,omitempty"`
	Status                 OperationStatus  `json:"status"`
	BalanceAfter           *decimal.Decimal `json:"balanceAfter"` // Set for client-linked operations
	Timestamps

	// Display fields of the referenced client, populated on reads.
	ClientFirstName     string `json:"clientFirstName,omitempty"`
	ClientLastName      string `json:"clientLastName,omitempty"`
	ClientAccountNumber string `json:"clientAccountNumber,omitempty"`
}

// IsAdminOperation reports whether the operation affects no client record and
// instead represents the employee's own funds.
func (o Operation) IsAdminOperation() bool {
	return o.ClientID == nil
}
