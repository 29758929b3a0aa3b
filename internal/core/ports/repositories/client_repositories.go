package repositories

import (
	"context"

	"github.com/bankmgmt/bank_management_app/internal/core/domain"
)

// ClientRepository defines persistence operations for clients. Every read and
// write except the account-number existence probe is scoped by the owning user.
// Client balances are never written through this interface; the operation
// repository owns the only balance-mutation path.
type ClientRepository interface {
	// SaveClient inserts a new client. A duplicate account number surfaces as
	// apperrors.ErrDuplicate.
	SaveClient(ctx context.Context, client domain.Client) error

	// FindClientByID retrieves a client owned by userID, or apperrors.ErrNotFound.
	FindClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error)

	// ListClients retrieves all clients of userID, newest-created first.
	ListClients(ctx context.Context, userID string) ([]domain.Client, error)

	// UpdateClient persists the mutable profile fields of an existing client.
	// Account number and balance columns are not touched by this method.
	UpdateClient(ctx context.Context, client domain.Client) error

	// DeleteClient removes a client owned by userID. Historical operations
	// referencing the client are retained.
	DeleteClient(ctx context.Context, userID, clientID string) error

	// AccountNumberExists reports whether any client, regardless of owner,
	// already carries the given account number.
	AccountNumberExists(ctx context.Context, accountNumber string) (bool, error)
}
