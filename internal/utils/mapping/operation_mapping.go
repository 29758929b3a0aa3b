package mapping

import (
	"github.com/bankmgmt/bank_management_app/internal/core/domain"
	"github.com/bankmgmt/bank_management_app/internal/models"
)

// ToModelOperation converts a domain.Operation to its DB representation.
func ToModelOperation(d domain.Operation) models.Operation {
	return models.Operation{
		OperationID:            d.OperationID,
		UserID:                 d.UserID,
		ClientID:               d.ClientID,
		Type:                   string(d.Type),
		Amount:                 d.Amount,
		Description:            d.Description,
		RecipientAccountNumber: d.RecipientAccountNumber,
		Status:                 string(d.Status),
		BalanceAfter:           d.BalanceAfter,
		CreatedAt:              d.CreatedAt,
		UpdatedAt:              d.UpdatedAt,
	}
}

// ToDomainOperation converts a DB operation row, including any joined client
// display fields, to the domain representation.
func ToDomainOperation(m models.Operation) domain.Operation {
	return domain.Operation{
		OperationID:            m.OperationID,
		UserID:                 m.UserID,
		ClientID:               m.ClientID,
		Type:                   domain.OperationType(m.Type),
		Amount:                 m.Amount,
		Description:            m.Description,
		RecipientAccountNumber: m.RecipientAccountNumber,
		Status:                 domain.OperationStatus(m.Status),
		BalanceAfter:           m.BalanceAfter,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ClientFirstName:     m.ClientFirstName,
		ClientLastName:      m.ClientLastName,
		ClientAccountNumber: m.ClientAccountNumber,
	}
}

// ToDomainOperationSlice converts a slice of DB operation rows.
func ToDomainOperationSlice(ms []models.Operation) []domain.Operation {
	ds := make([]domain.Operation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOperation(m)
	}
	return ds
}
