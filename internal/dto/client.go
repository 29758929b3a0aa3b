package dto

import (
	"time"

	"github.com/bankmgmt/bank_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddressInput mirrors domain.Address for request binding.
type AddressInput struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// CreateClientRequest defines the data needed to create a new client.
// AccountNumber is optional; one is allocated when absent.
type CreateClientRequest struct {
	FirstName     string        `json:"firstName" binding:"required"`
	LastName      string        `json:"lastName" binding:"required"`
	Email         string        `json:"email" binding:"required,email"`
	Phone         string        `json:"phone"`
	Address       *AddressInput `json:"address"`
	AccountNumber *string       `json:"accountNumber"`
}

// UpdateClientRequest defines the fields a client update may touch.
// AccountNumber and balance are deliberately absent: both are system-managed
// and attempts to set them through this path are dropped at the boundary.
type UpdateClientRequest struct {
	FirstName *string             `json:"firstName"`
	LastName  *string             `json:"lastName"`
	Email     *string             `json:"email" binding:"omitempty,email"`
	Phone     *string             `json:"phone"`
	Address   *AddressInput       `json:"address"`
	Status    *domain.ClientStatus `json:"status" binding:"omitempty,oneof=active inactive suspended"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"userId"`
	FirstName     string              `json:"firstName"`
	LastName      string              `json:"lastName"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone,omitempty"`
	Address       AddressInput        `json:"address"`
	AccountNumber string              `json:"accountNumber"`
	Balance       decimal.Decimal     `json:"balance"`
	Status        domain.ClientStatus `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// ToClientResponse converts a domain.Client to its response DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ClientID,
		UserID:    c.UserID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Address: AddressInput{
			Street:     c.Address.Street,
			City:       c.Address.City,
			PostalCode: c.Address.PostalCode,
			Country:    c.Address.Country,
		},
		AccountNumber: c.AccountNumber,
		Balance:       c.Balance,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToClientResponseList converts a slice of domain clients.
func ToClientResponseList(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i := range clients {
		res[i] = ToClientResponse(&clients[i])
	}
	return res
}
