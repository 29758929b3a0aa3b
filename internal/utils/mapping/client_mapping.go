package mapping

import (
	"github.com/bankmgmt/bank_management_app/internal/core/domain"
	"github.com/bankmgmt/bank_management_app/internal/models"
)

// ToModelClient converts a domain.Client to its DB representation.
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:      d.ClientID,
		UserID:        d.UserID,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		Phone:         d.Phone,
		Street:        d.Address.Street,
		City:          d.Address.City,
		PostalCode:    d.Address.PostalCode,
		Country:       d.Address.Country,
		AccountNumber: d.AccountNumber,
		Balance:       d.Balance,
		Status:        string(d.Status),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDomainClient converts a DB client row to the domain representation.
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:  m.ClientID,
		UserID:    m.UserID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Phone:     m.Phone,
		Address: domain.Address{
			Street:     m.Street,
			City:       m.City,
			PostalCode: m.PostalCode,
			Country:    m.Country,
		},
		AccountNumber: m.AccountNumber,
		Balance:       m.Balance,
		Status:        domain.ClientStatus(m.Status),
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainClientSlice converts a slice of DB client rows.
func ToDomainClientSlice(ms []models.Client) []domain.Client {
	ds := make([]domain.Client, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClient(m)
	}
	return ds
}
