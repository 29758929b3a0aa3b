package dto

import (
	"time"

	"github.com/bankmgmt/bank_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOperationRequest defines the data needed to record an operation.
// Amount accepts both JSON numbers and numeric strings (decimal handles both);
// positivity is validated by the service. AdminAccountID marks a transfer
// originating from the employee's own funds, which credits the beneficiary.
type CreateOperationRequest struct {
	ClientID               *string              `json:"clientId"`
	Type                   domain.OperationType `json:"type" binding:"required"`
	Amount                 decimal.Decimal      `json:"amount"`
	Description            string               `json:"description"`
	RecipientAccountNumber string               `json:"recipientAccountNumber"`
	AdminAccountID         string               `json:"adminAccountId"`
}

// UpdateOperationStatusRequest defines the body of a status transition.
type UpdateOperationStatusRequest struct {
	Status domain.OperationStatus `json:"status" binding:"required,oneof=pending completed failed cancelled"`
}

// ListOperationsParams defines the supported operation list filters.
// Dates are accepted as RFC 3339 timestamps or plain YYYY-MM-DD dates.
type ListOperationsParams struct {
	ClientID  string `form:"clientId"`
	Type      string `form:"type"`
	Status    string `form:"status"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// OperationResponse defines the data returned for an operation. The client
// block is present only for client-linked operations.
type OperationResponse struct {
	ID                     string                 `json:"id"`
	UserID                 string                 `json:"userId"`
	ClientID               *string                `json:"clientId"`
	Type                   domain.OperationType   `json:"type"`
	Amount                 decimal.Decimal        `json:"amount"`
	Description            string                 `json:"description,omitempty"`
	RecipientAccountNumber string                 `json:"recipientAccountNumber,omitempty"`
	Status                 domain.OperationStatus `json:"status"`
	BalanceAfter           *decimal.Decimal       `json:"balanceAfter,omitempty"`
	Client                 *OperationClientInfo   `json:"client,omitempty"`
	CreatedAt              time.Time              `json:"createdAt"`
	UpdatedAt              time.Time              `json:"updatedAt"`
}

// OperationClientInfo carries the display fields of the referenced client.
type OperationClientInfo struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	AccountNumber string `json:"accountNumber"`
}

// AdminBalanceResponse defines the response for the derived admin balance.
type AdminBalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// ToOperationResponse converts a domain.Operation to its response DTO.
func ToOperationResponse(o *domain.Operation) OperationResponse {
	resp := OperationResponse{
		ID:                     o.OperationID,
		UserID:                 o.UserID,
		ClientID:               o.ClientID,
		Type:                   o.Type,
		Amount:                 o.Amount,
		Description:            o.Description,
		RecipientAccountNumber: o.RecipientAccountNumber,
		Status:                 o.Status,
		BalanceAfter:           o.BalanceAfter,
		CreatedAt:              o.CreatedAt,
		UpdatedAt:              o.UpdatedAt,
	}
	if o.ClientID != nil {
		resp.Client = &OperationClientInfo{
			FirstName:     o.ClientFirstName,
			LastName:      o.ClientLastName,
			AccountNumber: o.ClientAccountNumber,
		}
	}
	return resp
}

// ToOperationResponseList converts a slice of domain operations.
func ToOperationResponseList(ops []domain.Operation) []OperationResponse {
	res := make([]OperationResponse, len(ops))
	for i := range ops {
		res[i] = ToOperationResponse(&ops[i])
	}
	return res
}
