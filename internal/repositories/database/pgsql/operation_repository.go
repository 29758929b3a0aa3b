package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bankmgmt/bank_management_app/internal/apperrors"
	"github.com/bankmgmt/bank_management_app/internal/core/domain"
	portsrepo "github.com/bankmgmt/bank_management_app/internal/core/ports/repositories"
	"github.com/bankmgmt/bank_management_app/internal/models"
	"github.com/bankmgmt/bank_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxOperationRepository struct {
	BaseRepository
}

// NewPgxOperationRepository creates a new repository for operation data.
func NewPgxOperationRepository(pool *pgxpool.Pool) portsrepo.OperationRepository {
	return &PgxOperationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OperationRepository = (*PgxOperationRepository)(nil)

// operationColumns selects operation rows with the client display fields
// joined in. COALESCE keeps admin operations and dangling client references
// scannable as empty strings.
const operationColumns = `
	o.operation_id, o.user_id, o.client_id, o.type, o.amount, o.description,
	o.recipient_account_number, o.status, o.balance_after, o.created_at, o.updated_at,
	COALESCE(c.first_name, ''), COALESCE(c.last_name, ''), COALESCE(c.account_number, '')`

const operationFromJoin = `
	FROM operations o
	LEFT JOIN clients c ON o.client_id = c.client_id`

func scanOperation(row pgx.Row) (*models.Operation, error) {
	var m models.Operation
	err := row.Scan(
		&m.OperationID,
		&m.UserID,
		&m.ClientID,
		&m.Type,
		&m.Amount,
		&m.Description,
		&m.RecipientAccountNumber,
		&m.Status,
		&m.BalanceAfter,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.ClientFirstName,
		&m.ClientLastName,
		&m.ClientAccountNumber,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const insertOperationQuery = `
	INSERT INTO operations (operation_id, user_id, client_id, type, amount, description, recipient_account_number, status, balance_after, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

// SaveOperation inserts an operation without touching any client balance.
func (r *PgxOperationRepository) SaveOperation(ctx context.Context, op domain.Operation) error {
	m := mapping.ToModelOperation(op)

	_, err := r.Pool.Exec(ctx, insertOperationQuery,
		m.OperationID,
		m.UserID,
		m.ClientID,
		m.Type,
		m.Amount,
		m.Description,
		m.RecipientAccountNumber,
		m.Status,
		m.BalanceAfter,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save operation %s: %w", m.OperationID, err)
	}
	return nil
}

// SaveOperationWithBalance applies a client-linked operation atomically: one
// database transaction adjusts the client balance with a single conditional
// UPDATE and inserts the operation carrying the resulting balance snapshot.
// A concurrent operation on the same client serializes on the row update, so
// the read-compute-write race of a two-round-trip approach cannot occur, and
// a failure at any point rolls both writes back.
func (r *PgxOperationRepository) SaveOperationWithBalance(ctx context.Context, op domain.Operation, direction domain.Direction, allowOverdraft bool) (*domain.Operation, error) {
	if op.ClientID == nil {
		return nil, fmt.Errorf("%w: operation has no client", apperrors.ErrValidation)
	}

	delta := op.Amount
	if direction == domain.Debit {
		delta = delta.Neg()
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE clients
		SET balance = balance + $3, updated_at = $4
		WHERE client_id = $1 AND user_id = $2
	`
	if !allowOverdraft {
		updateQuery += ` AND balance + $3 >= 0`
	}
	updateQuery += ` RETURNING balance, first_name, last_name, account_number;`

	m := mapping.ToModelOperation(op)
	var newBalance decimal.Decimal
	err = tx.QueryRow(ctx, updateQuery, *op.ClientID, op.UserID, delta, m.UpdatedAt).Scan(
		&newBalance,
		&m.ClientFirstName,
		&m.ClientLastName,
		&m.ClientAccountNumber,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the client is gone or the overdraft guard refused the
			// debit; check which before reporting.
			var exists bool
			if checkErr := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM clients WHERE client_id = $1 AND user_id = $2);`, *op.ClientID, op.UserID).Scan(&exists); checkErr != nil {
				return nil, fmt.Errorf("failed to check client after rejected balance update: %w", checkErr)
			}
			if exists {
				return nil, fmt.Errorf("%w: balance of client %s cannot cover %s", apperrors.ErrInsufficientFunds, *op.ClientID, op.Amount)
			}
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to adjust balance for client %s: %w", *op.ClientID, err)
	}

	m.BalanceAfter = &newBalance
	_, err = tx.Exec(ctx, insertOperationQuery,
		m.OperationID,
		m.UserID,
		m.ClientID,
		m.Type,
		m.Amount,
		m.Description,
		m.RecipientAccountNumber,
		m.Status,
		m.BalanceAfter,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save operation %s: %w", m.OperationID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit operation %s: %w", m.OperationID, err)
	}

	saved := mapping.ToDomainOperation(m)
	return &saved, nil
}

// FindOperationByID retrieves an operation owned by userID.
func (r *PgxOperationRepository) FindOperationByID(ctx context.Context, userID, operationID string) (*domain.Operation, error) {
	query := `SELECT` + operationColumns + operationFromJoin + `
		WHERE o.operation_id = $1 AND o.user_id = $2;`

	m, err := scanOperation(r.Pool.QueryRow(ctx, query, operationID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find operation by ID %s: %w", operationID, err)
	}

	d := mapping.ToDomainOperation(*m)
	return &d, nil
}

// ListOperations retrieves the operations of userID matching the filter,
// newest first.
func (r *PgxOperationRepository) ListOperations(ctx context.Context, userID string, filter portsrepo.OperationFilter) ([]domain.Operation, error) {
	query := `SELECT` + operationColumns + operationFromJoin + `
		WHERE o.user_id = $1`
	args := []interface{}{userID}

	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += ` AND o.client_id = $` + strconv.Itoa(len(args))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		query += ` AND o.type = $` + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += ` AND o.status = $` + strconv.Itoa(len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND o.created_at >= $` + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND o.created_at <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY o.created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query operations for user %s: %w", userID, err)
	}
	defer rows.Close()

	operations := []models.Operation{}
	for rows.Next() {
		m, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan operation row: %w", err)
		}
		operations = append(operations, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operation rows: %w", err)
	}

	return mapping.ToDomainOperationSlice(operations), nil
}

// UpdateOperationStatus sets the status of an operation owned by userID.
// Balance effects are applied at creation only; transitioning into or out of
// completed never reapplies them.
func (r *PgxOperationRepository) UpdateOperationStatus(ctx context.Context, userID, operationID string, status domain.OperationStatus, now time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`UPDATE operations SET status = $3, updated_at = $4 WHERE operation_id = $1 AND user_id = $2;`,
		operationID, userID, string(status), now,
	)
	if err != nil {
		return fmt.Errorf("failed to update status of operation %s: %w", operationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SumCompletedOperations folds the owner's completed operations into a single
// signed total: deposits add, everything else subtracts.
func (r *PgxOperationRepository) SumCompletedOperations(ctx context.Context, userID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'deposit' THEN amount ELSE -amount END), 0)
		FROM operations
		WHERE user_id = $1 AND status = 'completed';
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum completed operations for user %s: %w", userID, err)
	}
	return total, nil
}
