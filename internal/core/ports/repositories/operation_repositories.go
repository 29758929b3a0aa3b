package repositories

import (
	"context"
	"time"

	"github.com/bankmgmt/bank_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OperationFilter narrows an operation list query. Zero values mean "no filter";
// the date bounds are inclusive on the operation creation time.
type OperationFilter struct {
	ClientID  string
	Type      domain.OperationType
	Status    domain.OperationStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// OperationRepository defines persistence operations for the operation ledger.
type OperationRepository interface {
	// SaveOperation inserts an operation without touching any client balance.
	// Used for admin self operations.
	SaveOperation(ctx context.Context, op domain.Operation) error

	// SaveOperationWithBalance atomically applies a client-linked operation:
	// within one database transaction it adjusts the client balance by the
	// signed amount and inserts the operation with the resulting balance
	// snapshot. The write fails with apperrors.ErrNotFound when the client is
	// missing, or apperrors.ErrInsufficientFunds when the debit would go below
	// zero and allowOverdraft is false. On success the returned operation
	// carries the balance snapshot and the client display fields.
	SaveOperationWithBalance(ctx context.Context, op domain.Operation, direction domain.Direction, allowOverdraft bool) (*domain.Operation, error)

	// FindOperationByID retrieves an operation owned by userID with the client
	// display fields joined in, or apperrors.ErrNotFound.
	FindOperationByID(ctx context.Context, userID, operationID string) (*domain.Operation, error)

	// ListOperations retrieves the operations of userID matching the filter,
	// newest first, with client display fields joined in.
	ListOperations(ctx context.Context, userID string, filter OperationFilter) ([]domain.Operation, error)

	// UpdateOperationStatus sets the status of an operation owned by userID.
	// It never reapplies the balance effect.
	UpdateOperationStatus(ctx context.Context, userID, operationID string, status domain.OperationStatus, now time.Time) error

	// SumCompletedOperations folds over every completed operation of userID:
	// deposits add, all other types subtract. This is the derive-on-read
	// aggregate behind the admin balance.
	SumCompletedOperations(ctx context.Context, userID string) (decimal.Decimal, error)
}
