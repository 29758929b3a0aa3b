package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bankmgmt/bank_management_app/internal/apperrors"
	"github.com/bankmgmt/bank_management_app/internal/core/domain"
	portssvc "github.com/bankmgmt/bank_management_app/internal/core/ports/services"
	"github.com/bankmgmt/bank_management_app/internal/dto"
	"github.com/bankmgmt/bank_management_app/internal/handlers"
	"github.com/bankmgmt/bank_management_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// --- Mock ClientService ---
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) CreateClient(ctx context.Context, userID string, req dto.CreateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) GetClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, userID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) ListClients(ctx context.Context, userID string) ([]domain.Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}
func (m *MockClientService) UpdateClient(ctx context.Context, userID, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, userID, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) DeleteClient(ctx context.Context, userID, clientID string) error {
	args := m.Called(ctx, userID, clientID)
	return args.Error(0)
}

var _ portssvc.ClientSvcFacade = (*MockClientService)(nil)

// --- Mock OperationService ---
type MockOperationService struct {
	mock.Mock
}

func (m *MockOperationService) RecordOperation(ctx context.Context, userID string, req dto.CreateOperationRequest) (*domain.Operation, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operation), args.Error(1)
}
func (m *MockOperationService) GetOperationByID(ctx context.Context, userID, operationID string) (*domain.Operation, error) {
	args := m.Called(ctx, userID, operationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operation), args.Error(1)
}
func (m *MockOperationService) ListOperations(ctx context.Context, userID string, params dto.ListOperationsParams) ([]domain.Operation, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Operation), args.Error(1)
}
func (m *MockOperationService) ListClientHistory(ctx context.Context, userID, clientID string) ([]domain.Operation, error) {
	args := m.Called(ctx, userID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Operation), args.Error(1)
}
func (m *MockOperationService) UpdateOperationStatus(ctx context.Context, userID, operationID string, status domain.OperationStatus) (*domain.Operation, error) {
	args := m.Called(ctx, userID, operationID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operation), args.Error(1)
}
func (m *MockOperationService) ProjectAdminBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.OperationSvcFacade = (*MockOperationService)(nil)

// --- Test Suite ---
type OperationHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockClientService    *MockClientService
	mockOperationService *MockOperationService
	jwtSecret            string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *OperationHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "bank-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *OperationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockClientService = new(MockClientService)
	suite.mockOperationService = new(MockOperationService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // keeps swagger routes out of the test router
	}
	rate, err := limiter.NewRateFromFormatted("1000-M")
	suite.Require().NoError(err)
	rateLimiter := limiter.New(memory.NewStore(), rate)

	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Client:    suite.mockClientService,
		Operation: suite.mockOperationService,
	}, rateLimiter)
}

func (suite *OperationHandlerTestSuite) doRequest(method, url, userID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *OperationHandlerTestSuite) TestHealth_NoAuthRequired() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *OperationHandlerTestSuite) TestCreateOperation_MissingToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/operations", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)

	var resp dto.APIError
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.NotEmpty(resp.Message)
	suite.mockOperationService.AssertNotCalled(suite.T(), "RecordOperation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OperationHandlerTestSuite) TestCreateOperation_Success() {
	userID := uuid.NewString()
	clientID := uuid.NewString()
	balanceAfter := decimal.NewFromInt(600)

	saved := &domain.Operation{
		OperationID:         uuid.NewString(),
		UserID:              userID,
		ClientID:            &clientID,
		Type:                domain.Deposit,
		Amount:              decimal.NewFromInt(100),
		Status:              domain.StatusCompleted,
		BalanceAfter:        &balanceAfter,
		ClientFirstName:     "Marie",
		ClientLastName:      "Dupont",
		ClientAccountNumber: "ACC123456780001",
	}

	suite.mockOperationService.On("RecordOperation",
		mock.Anything,
		userID,
		mock.MatchedBy(func(req dto.CreateOperationRequest) bool {
			return req.ClientID != nil && *req.ClientID == clientID && req.Type == domain.Deposit
		}),
	).Return(saved, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/operations", userID, gin.H{
		"clientId": clientID,
		"type":     "deposit",
		"amount":   100,
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Data    dto.OperationResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal(saved.OperationID, resp.Data.ID)
	suite.Require().NotNil(resp.Data.Client)
	suite.Equal("Marie", resp.Data.Client.FirstName)
	suite.Require().NotNil(resp.Data.BalanceAfter)
	suite.True(resp.Data.BalanceAfter.Equal(balanceAfter))

	suite.mockOperationService.AssertExpectations(suite.T())
}

func (suite *OperationHandlerTestSuite) TestCreateOperation_AmountAsString() {
	userID := uuid.NewString()

	suite.mockOperationService.On("RecordOperation",
		mock.Anything,
		userID,
		mock.MatchedBy(func(req dto.CreateOperationRequest) bool {
			return req.Amount.Equal(decimal.NewFromFloat(99.99))
		}),
	).Return(&domain.Operation{OperationID: uuid.NewString(), Type: domain.Deposit}, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/operations", userID, gin.H{
		"type":   "deposit",
		"amount": "99.99",
	})

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockOperationService.AssertExpectations(suite.T())
}

func (suite *OperationHandlerTestSuite) TestCreateOperation_InsufficientFunds() {
	userID := uuid.NewString()
	clientID := uuid.NewString()

	suite.mockOperationService.On("RecordOperation", mock.Anything, userID, mock.AnythingOfType("dto.CreateOperationRequest")).
		Return(nil, apperrors.ErrInsufficientFunds).Once()

	w := suite.doRequest(http.MethodPost, "/api/operations", userID, gin.H{
		"clientId": clientID,
		"type":     "withdrawal",
		"amount":   10000,
	})

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp dto.APIError
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
}

func (suite *OperationHandlerTestSuite) TestCreateOperation_BeneficiaryNotFound() {
	userID := uuid.NewString()

	suite.mockOperationService.On("RecordOperation", mock.Anything, userID, mock.AnythingOfType("dto.CreateOperationRequest")).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodPost, "/api/operations", userID, gin.H{
		"clientId": uuid.NewString(),
		"type":     "deposit",
		"amount":   100,
	})

	suite.Equal(http.StatusNotFound, w.Code)

	var resp dto.APIError
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.Equal("Beneficiary not found", resp.Message)
}

func (suite *OperationHandlerTestSuite) TestGetAdminBalance() {
	userID := uuid.NewString()

	suite.mockOperationService.On("ProjectAdminBalance", mock.Anything, userID).
		Return(decimal.NewFromInt(1250), nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/operations/balance", userID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Success bool                     `json:"success"`
		Data    dto.AdminBalanceResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.True(resp.Data.Balance.Equal(decimal.NewFromInt(1250)))
	// Must hit the balance route, not the :id route.
	suite.mockOperationService.AssertNotCalled(suite.T(), "GetOperationByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OperationHandlerTestSuite) TestListOperations_CountInEnvelope() {
	userID := uuid.NewString()
	clientID := uuid.NewString()

	ops := []domain.Operation{
		{OperationID: uuid.NewString(), UserID: userID, ClientID: &clientID, Type: domain.Deposit, Amount: decimal.NewFromInt(100)},
		{OperationID: uuid.NewString(), UserID: userID, Type: domain.Deposit, Amount: decimal.NewFromInt(50)},
	}

	suite.mockOperationService.On("ListOperations", mock.Anything, userID, mock.MatchedBy(func(p dto.ListOperationsParams) bool {
		return p.Type == "deposit"
	})).Return(ops, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/operations?type=deposit", userID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Success bool                    `json:"success"`
		Data    []dto.OperationResponse `json:"data"`
		Count   *int                    `json:"count"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Require().NotNil(resp.Count)
	suite.Equal(2, *resp.Count)
	suite.Len(resp.Data, 2)
	// The admin operation carries no client block.
	suite.Nil(resp.Data[1].Client)
}

func (suite *OperationHandlerTestSuite) TestUpdateOperationStatus_InvalidValueRejected() {
	userID := uuid.NewString()
	operationID := uuid.NewString()

	w := suite.doRequest(http.MethodPut, "/api/operations/"+operationID+"/status", userID, gin.H{
		"status": "done",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockOperationService.AssertNotCalled(suite.T(), "UpdateOperationStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OperationHandlerTestSuite) TestCreateClient_Success() {
	userID := uuid.NewString()

	created := &domain.Client{
		ClientID:      uuid.NewString(),
		UserID:        userID,
		FirstName:     "Marie",
		LastName:      "Dupont",
		Email:         "marie@example.com",
		AccountNumber: "ACC123456780001",
		Balance:       decimal.Zero,
		Status:        domain.ClientActive,
	}

	suite.mockClientService.On("CreateClient", mock.Anything, userID, mock.MatchedBy(func(req dto.CreateClientRequest) bool {
		return req.FirstName == "Marie" && req.Email == "marie@example.com"
	})).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/clients", userID, gin.H{
		"firstName": "Marie",
		"lastName":  "Dupont",
		"email":     "marie@example.com",
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp struct {
		Success bool               `json:"success"`
		Data    dto.ClientResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal(created.ClientID, resp.Data.ID)
	suite.Equal("ACC123456780001", resp.Data.AccountNumber)
	suite.mockClientService.AssertExpectations(suite.T())
}

func (suite *OperationHandlerTestSuite) TestCreateClient_MissingEmailRejectedAtBinding() {
	userID := uuid.NewString()

	w := suite.doRequest(http.MethodPost, "/api/clients", userID, gin.H{
		"firstName": "Marie",
		"lastName":  "Dupont",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockClientService.AssertNotCalled(suite.T(), "CreateClient", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OperationHandlerTestSuite) TestDeleteClient_Success() {
	userID := uuid.NewString()
	clientID := uuid.NewString()

	suite.mockClientService.On("DeleteClient", mock.Anything, userID, clientID).Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/clients/"+clientID, userID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.APIResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal("Client deleted successfully", resp.Message)
}

// --- Run Test Suite ---
func TestOperationHandler(t *testing.T) {
	suite.Run(t, new(OperationHandlerTestSuite))
}
