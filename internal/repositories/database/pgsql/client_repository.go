package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bankmgmt/bank_management_app/internal/apperrors"
	"github.com/bankmgmt/bank_management_app/internal/core/domain"
	portsrepo "github.com/bankmgmt/bank_management_app/internal/core/ports/repositories"
	"github.com/bankmgmt/bank_management_app/internal/models"
	"github.com/bankmgmt/bank_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

type PgxClientRepository struct {
	BaseRepository
}

// NewPgxClientRepository creates a new repository for client data.
func NewPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepository {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepository = (*PgxClientRepository)(nil)

const clientColumns = `client_id, user_id, first_name, last_name, email, phone, street, city, postal_code, country, account_number, balance, status, created_at, updated_at`

func scanClient(row pgx.Row) (*models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.UserID,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.Phone,
		&m.Street,
		&m.City,
		&m.PostalCode,
		&m.Country,
		&m.AccountNumber,
		&m.Balance,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveClient inserts a new client. A unique violation on the account number
// surfaces as apperrors.ErrDuplicate so the service can retry allocation.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)

	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ClientID,
		m.UserID,
		m.FirstName,
		m.LastName,
		m.Email,
		m.Phone,
		m.Street,
		m.City,
		m.PostalCode,
		m.Country,
		m.AccountNumber,
		m.Balance,
		m.Status,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: account number %s", apperrors.ErrDuplicate, m.AccountNumber)
		}
		return fmt.Errorf("failed to save client %s: %w", m.ClientID, err)
	}
	return nil
}

// FindClientByID retrieves a client owned by userID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE client_id = $1 AND user_id = $2;
	`
	m, err := scanClient(r.Pool.QueryRow(ctx, query, clientID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}

	d := mapping.ToDomainClient(*m)
	return &d, nil
}

// ListClients retrieves all clients of userID, newest-created first.
func (r *PgxClientRepository) ListClients(ctx context.Context, userID string) ([]domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients for user %s: %w", userID, err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}

	return mapping.ToDomainClientSlice(clients), nil
}

// UpdateClient persists the mutable profile fields of an existing client.
// The account_number and balance columns are deliberately not part of the
// statement; they are system-managed.
func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)

	query := `
		UPDATE clients
		SET first_name = $3, last_name = $4, email = $5, phone = $6,
		    street = $7, city = $8, postal_code = $9, country = $10,
		    status = $11, updated_at = $12
		WHERE client_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ClientID,
		m.UserID,
		m.FirstName,
		m.LastName,
		m.Email,
		m.Phone,
		m.Street,
		m.City,
		m.PostalCode,
		m.Country,
		m.Status,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", m.ClientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteClient removes a client owned by userID. Operations referencing the
// client are retained; their client reference dangles from then on.
func (r *PgxClientRepository) DeleteClient(ctx context.Context, userID, clientID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM clients WHERE client_id = $1 AND user_id = $2;`, clientID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete client %s: %w", clientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AccountNumberExists reports whether any client already carries the given
// account number. The check spans all users: account numbers are globally unique.
func (r *PgxClientRepository) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM clients WHERE account_number = $1);`, accountNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account number existence: %w", err)
	}
	return exists, nil
}
