package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bankmgmt/bank_management_app/internal/apperrors"
	"github.com/bankmgmt/bank_management_app/internal/core/domain"
	portsrepo "github.com/bankmgmt/bank_management_app/internal/core/ports/repositories"
	portssvc "github.com/bankmgmt/bank_management_app/internal/core/ports/services"
	"github.com/bankmgmt/bank_management_app/internal/dto"
	"github.com/bankmgmt/bank_management_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultTopUpDescription is used when an admin self-deposit arrives without one.
const defaultTopUpDescription = "Balance top-up"

// OperationService is the ledger of money movements. Client-linked operations
// mutate the client balance atomically with the ledger insert; admin self
// operations only append to the ledger and are folded into a derived balance
// on demand.
type OperationService struct {
	operationRepo  portsrepo.OperationRepository
	clientRepo     portsrepo.ClientRepository
	allowOverdraft bool
}

// NewOperationService creates a new OperationService. When allowOverdraft is
// false, debits that would push a client balance below zero are rejected.
func NewOperationService(operationRepo portsrepo.OperationRepository, clientRepo portsrepo.ClientRepository, allowOverdraft bool) *OperationService {
	return &OperationService{
		operationRepo:  operationRepo,
		clientRepo:     clientRepo,
		allowOverdraft: allowOverdraft,
	}
}

var _ portssvc.OperationSvcFacade = (*OperationService)(nil)

// RecordOperation validates and persists a new operation. Client-linked
// operations verify ownership, derive the balance direction from the type and
// admin-origin marker and commit the balance adjustment together with the
// ledger row. A deposit without a client is an admin self top-up and touches
// no client balance.
func (s *OperationService) RecordOperation(ctx context.Context, userID string, req dto.CreateOperationRequest) (*domain.Operation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.KnownOperationType(req.Type) {
		return nil, fmt.Errorf("%w: unknown operation type %q", apperrors.ErrValidation, req.Type)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be strictly positive", apperrors.ErrValidation)
	}

	hasClient := req.ClientID != nil && *req.ClientID != ""
	if !hasClient && req.Type != domain.Deposit {
		return nil, fmt.Errorf("%w: a client is required for %s operations", apperrors.ErrValidation, req.Type)
	}

	now := time.Now()
	op := domain.Operation{
		OperationID:            uuid.NewString(),
		UserID:                 userID,
		Type:                   req.Type,
		Amount:                 req.Amount,
		Description:            req.Description,
		RecipientAccountNumber: req.RecipientAccountNumber,
		Status:                 domain.StatusCompleted,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if !hasClient {
		if op.Description == "" {
			op.Description = defaultTopUpDescription
		}
		if err := s.operationRepo.SaveOperation(ctx, op); err != nil {
			logger.Error("Failed to save admin operation", slog.String("error", err.Error()), slog.String("operation_id", op.OperationID))
			return nil, err
		}
		logger.Info("Admin balance top-up recorded",
			slog.String("operation_id", op.OperationID),
			slog.String("amount", op.Amount.String()))
		return &op, nil
	}

	if _, err := s.clientRepo.FindClientByID(ctx, userID, *req.ClientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: beneficiary %s", apperrors.ErrNotFound, *req.ClientID)
		}
		logger.Error("Failed to resolve beneficiary", slog.String("error", err.Error()), slog.String("client_id", *req.ClientID))
		return nil, err
	}

	op.ClientID = req.ClientID
	direction := domain.OperationDirection(req.Type, req.AdminAccountID != "")

	saved, err := s.operationRepo.SaveOperationWithBalance(ctx, op, direction, s.allowOverdraft)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to save operation", slog.String("error", err.Error()), slog.String("operation_id", op.OperationID))
		}
		return nil, err
	}

	logger.Info("Operation recorded",
		slog.String("operation_id", saved.OperationID),
		slog.String("client_id", *saved.ClientID),
		slog.String("type", string(saved.Type)),
		slog.String("amount", saved.Amount.String()))
	return saved, nil
}

// GetOperationByID retrieves a single operation owned by userID.
func (s *OperationService) GetOperationByID(ctx context.Context, userID, operationID string) (*domain.Operation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	op, err := s.operationRepo.FindOperationByID(ctx, userID, operationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find operation", slog.String("error", err.Error()), slog.String("operation_id", operationID))
		}
		return nil, err
	}
	return op, nil
}

// parseFilterDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date.
func parseFilterDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("%w: %s must be an RFC 3339 timestamp or YYYY-MM-DD date", apperrors.ErrValidation, field)
}

// ListOperations retrieves the operations of userID matching the given
// filters, newest first. Unknown type or status filter values and unparseable
// dates are rejected rather than silently matching nothing.
func (s *OperationService) ListOperations(ctx context.Context, userID string, params dto.ListOperationsParams) ([]domain.Operation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.OperationFilter{ClientID: params.ClientID}

	if params.Type != "" {
		t := domain.OperationType(params.Type)
		if !domain.KnownOperationType(t) {
			return nil, fmt.Errorf("%w: unknown operation type %q", apperrors.ErrValidation, params.Type)
		}
		filter.Type = t
	}
	if params.Status != "" {
		switch st := domain.OperationStatus(params.Status); st {
		case domain.StatusPending, domain.StatusCompleted, domain.StatusFailed, domain.StatusCancelled:
			filter.Status = st
		default:
			return nil, fmt.Errorf("%w: unknown operation status %q", apperrors.ErrValidation, params.Status)
		}
	}

	startDate, err := parseFilterDate("startDate", params.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseFilterDate("endDate", params.EndDate)
	if err != nil {
		return nil, err
	}
	filter.StartDate = startDate
	filter.EndDate = endDate

	operations, err := s.operationRepo.ListOperations(ctx, userID, filter)
	if err != nil {
		logger.Error("Failed to list operations", slog.String("error", err.Error()))
		return nil, err
	}
	if operations == nil {
		operations = []domain.Operation{}
	}
	return operations, nil
}

// ListClientHistory retrieves all operations linked to one client of userID.
// The client must exist and belong to the caller.
func (s *OperationService) ListClientHistory(ctx context.Context, userID, clientID string) ([]domain.Operation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.clientRepo.FindClientByID(ctx, userID, clientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: beneficiary %s", apperrors.ErrNotFound, clientID)
		}
		logger.Error("Failed to resolve beneficiary", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, err
	}

	operations, err := s.operationRepo.ListOperations(ctx, userID, portsrepo.OperationFilter{ClientID: clientID})
	if err != nil {
		logger.Error("Failed to list client history", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, err
	}
	if operations == nil {
		operations = []domain.Operation{}
	}
	return operations, nil
}

// UpdateOperationStatus transitions an operation to the given status and
// returns the updated operation. Status changes never reapply balance
// effects; the balance moved exactly once, at creation.
func (s *OperationService) UpdateOperationStatus(ctx context.Context, userID, operationID string, status domain.OperationStatus) (*domain.Operation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.operationRepo.UpdateOperationStatus(ctx, userID, operationID, status, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to update operation status", slog.String("error", err.Error()), slog.String("operation_id", operationID))
		}
		return nil, err
	}

	op, err := s.operationRepo.FindOperationByID(ctx, userID, operationID)
	if err != nil {
		logger.Error("Failed to reload operation after status update", slog.String("error", err.Error()), slog.String("operation_id", operationID))
		return nil, err
	}

	logger.Info("Operation status updated",
		slog.String("operation_id", operationID),
		slog.String("status", string(status)))
	return op, nil
}

// ProjectAdminBalance derives the employee's own balance by folding every
// completed operation: deposits add, all other types subtract. Nothing is
// stored; the projection is recomputed on each call.
func (s *OperationService) ProjectAdminBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	total, err := s.operationRepo.SumCompletedOperations(ctx, userID)
	if err != nil {
		logger.Error("Failed to project admin balance", slog.String("error", err.Error()))
		return decimal.Zero, err
	}
	return total, nil
}
