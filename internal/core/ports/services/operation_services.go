package services

import (
	"context"

	"github.com/bankmgmt/bank_management_app/internal/core/domain"
	"github.com/bankmgmt/bank_management_app/internal/dto"
	"github.com/shopspring/decimal"
)

// OperationSvcFacade defines the operation ledger operations exposed to handlers.
type OperationSvcFacade interface {
	RecordOperation(ctx context.Context, userID string, req dto.CreateOperationRequest) (*domain.Operation, error)
	GetOperationByID(ctx context.Context, userID, operationID string) (*domain.Operation, error)
	ListOperations(ctx context.Context, userID string, params dto.ListOperationsParams) ([]domain.Operation, error)
	ListClientHistory(ctx context.Context, userID, clientID string) ([]domain.Operation, error)
	UpdateOperationStatus(ctx context.Context, userID, operationID string, status domain.OperationStatus) (*domain.Operation, error)
	ProjectAdminBalance(ctx context.Context, userID string) (decimal.Decimal, error)
}
