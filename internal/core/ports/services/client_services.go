package services

import (
	"context"

	"github.com/bankmgmt/bank_management_app/internal/core/domain"
	"github.com/bankmgmt/bank_management_app/internal/dto"
)

// ClientSvcFacade defines the client store operations exposed to handlers.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, userID string, req dto.CreateClientRequest) (*domain.Client, error)
	GetClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, userID string) ([]domain.Client, error)
	UpdateClient(ctx context.Context, userID, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, userID, clientID string) error
}
