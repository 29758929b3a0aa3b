package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bankmgmt/bank_management_app/internal/apperrors"
	"github.com/bankmgmt/bank_management_app/internal/core/domain"
	portsrepo "github.com/bankmgmt/bank_management_app/internal/core/ports/repositories"
	portssvc "github.com/bankmgmt/bank_management_app/internal/core/ports/services"
	"github.com/bankmgmt/bank_management_app/internal/dto"
	"github.com/bankmgmt/bank_management_app/internal/middleware"
	"github.com/bankmgmt/bank_management_app/internal/utils/accountnumber"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientService owns client records and their balances. It is the only
// component allowed to create, update and delete clients; balance mutation is
// delegated to the operation ledger's transactional write path.
type ClientService struct {
	clientRepo portsrepo.ClientRepository
	rng        accountnumber.Rand
}

// NewClientService creates a new ClientService.
func NewClientService(clientRepo portsrepo.ClientRepository) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		rng:        accountnumber.NewRand(),
	}
}

var _ portssvc.ClientSvcFacade = (*ClientService)(nil)

// allocateAccountNumber draws primary-scheme candidates until one is unused,
// bounded at accountnumber.MaxAttempts, then falls back to the high-entropy
// scheme without a further existence check. The database unique constraint
// remains the final arbiter; CreateClient handles its rejection.
func (s *ClientService) allocateAccountNumber(ctx context.Context, userID string) (string, error) {
	for attempt := 0; attempt < accountnumber.MaxAttempts; attempt++ {
		candidate := accountnumber.Generate(time.Now(), s.rng)
		exists, err := s.clientRepo.AccountNumberExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check account number candidate: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return accountnumber.GenerateFallback(time.Now(), userID, s.rng), nil
}

// CreateClient validates the request, allocates an account number when none is
// supplied and persists the new client with a zero balance. A duplicate
// account number reported by the store triggers exactly one retry with a
// higher-entropy candidate before the conflict surfaces.
func (s *ClientService) CreateClient(ctx context.Context, userID string, req dto.CreateClientRequest) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("%w: first name, last name and email are required", apperrors.ErrValidation)
	}

	accountNumber := ""
	if req.AccountNumber != nil && *req.AccountNumber != "" {
		accountNumber = *req.AccountNumber
	} else {
		allocated, err := s.allocateAccountNumber(ctx, userID)
		if err != nil {
			return nil, err
		}
		accountNumber = allocated
	}

	now := time.Now()
	client := domain.Client{
		ClientID:      uuid.NewString(),
		UserID:        userID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         req.Phone,
		AccountNumber: accountNumber,
		Balance:       decimal.Zero,
		Status:        domain.ClientActive,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if req.Address != nil {
		client.Address = domain.Address{
			Street:     req.Address.Street,
			City:       req.Address.City,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
		}
	}

	err := s.clientRepo.SaveClient(ctx, client)
	if errors.Is(err, apperrors.ErrDuplicate) {
		// A concurrent allocation won the race; retry once with a wider
		// random segment before giving up.
		client.AccountNumber = accountnumber.GenerateRetry(time.Now(), userID, s.rng)
		logger.Warn("Account number collision at persist, retrying",
			slog.String("client_id", client.ClientID),
			slog.String("retry_account_number", client.AccountNumber))
		err = s.clientRepo.SaveClient(ctx, client)
	}
	if err != nil {
		logger.Error("Failed to save client", slog.String("error", err.Error()), slog.String("client_id", client.ClientID))
		return nil, err
	}

	logger.Info("Client created", slog.String("client_id", client.ClientID), slog.String("account_number", client.AccountNumber))
	return &client, nil
}

// GetClientByID retrieves a single client owned by userID.
func (s *ClientService) GetClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	client, err := s.clientRepo.FindClientByID(ctx, userID, clientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find client", slog.String("error", err.Error()), slog.String("client_id", clientID))
		}
		return nil, err
	}
	return client, nil
}

// ListClients retrieves every client of userID, newest-created first.
func (s *ClientService) ListClients(ctx context.Context, userID string) ([]domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	clients, err := s.clientRepo.ListClients(ctx, userID)
	if err != nil {
		logger.Error("Failed to list clients", slog.String("error", err.Error()))
		return nil, err
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	return clients, nil
}

// UpdateClient applies a partial update to a client's profile fields. The
// account number and balance are system-managed and cannot be set through
// this path; the request type does not even carry them.
func (s *ClientService) UpdateClient(ctx context.Context, userID, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	client, err := s.clientRepo.FindClientByID(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		client.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		client.LastName = *req.LastName
	}
	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = domain.Address{
			Street:     req.Address.Street,
			City:       req.Address.City,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
		}
	}
	if req.Status != nil {
		client.Status = *req.Status
	}
	client.UpdatedAt = time.Now()

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		logger.Error("Failed to update client", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, err
	}

	logger.Info("Client updated", slog.String("client_id", clientID))
	return client, nil
}

// DeleteClient removes a client. Historical operations keep referencing the
// deleted client id; reads join their display fields as empty strings.
func (s *ClientService) DeleteClient(ctx context.Context, userID, clientID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.clientRepo.DeleteClient(ctx, userID, clientID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete client", slog.String("error", err.Error()), slog.String("client_id", clientID))
		}
		return err
	}

	logger.Info("Client deleted", slog.String("client_id", clientID))
	return nil
}
