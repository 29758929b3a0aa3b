package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bankmgmt/bank_management_app/internal/core/ports/services"
	"github.com/bankmgmt/bank_management_app/internal/dto"
	"github.com/bankmgmt/bank_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// operationHandler handles HTTP requests related to operations.
type operationHandler struct {
	operationService portssvc.OperationSvcFacade
}

// newOperationHandler creates a new operationHandler.
func newOperationHandler(os portssvc.OperationSvcFacade) *operationHandler {
	return &operationHandler{
		operationService: os,
	}
}

// registerOperationRoutes registers routes related to operations. The static
// /balance and /history segments are registered alongside the :id parameter;
// gin gives static segments priority.
func registerOperationRoutes(rg *gin.RouterGroup, operationService portssvc.OperationSvcFacade) {
	h := newOperationHandler(operationService)

	operations := rg.Group("/operations")
	{
		operations.POST("", h.createOperation)
		operations.GET("", h.listOperations)
		operations.GET("/balance", h.getAdminBalance)
		operations.GET("/history/:clientId", h.getClientHistory)
		operations.GET("/:id", h.getOperation)
		operations.PUT("/:id/status", h.updateOperationStatus)
	}
}

// createOperation godoc
// @Summary Record a new operation
// @Description Records a money movement; client-linked operations adjust the client balance atomically, a deposit without a client tops up the employee's own funds
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   operation body dto.CreateOperationRequest true "Operation details"
// @Success 201 {object} dto.APIResponse{data=dto.OperationResponse}
// @Failure 400 {object} dto.APIError "Invalid input, unknown type or insufficient funds"
// @Failure 401 {object} dto.APIError "Unauthorized"
// @Failure 404 {object} dto.APIError "Beneficiary not found"
// @Failure 500 {object} dto.APIError "Failed to record operation"
// @Security BearerAuth
// @Router /operations [post]
func (h *operationHandler) createOperation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOperation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request format: "+err.Error()))
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID))
	logger.Info("Received request to create operation",
		slog.String("type", string(req.Type)),
		slog.String("amount", req.Amount.String()))

	op, err := h.operationService.RecordOperation(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Beneficiary not found", "Failed to record operation")
		return
	}

	logger.Info("Operation recorded successfully", slog.String("operation_id", op.OperationID))
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.ToOperationResponse(op)))
}

// listOperations godoc
// @Summary List operations of the logged-in user
// @Description Retrieves operations, newest first, optionally filtered by client, type, status and creation date range
// @Tags operations
// @Produce  json
// @Param   clientId query string false "Filter by client ID"
// @Param   type query string false "Filter by operation type" Enums(deposit, withdrawal, transfer, payment)
// @Param   status query string false "Filter by status" Enums(pending, completed, failed, cancelled)
// @Param   startDate query string false "Creation date lower bound (RFC 3339 or YYYY-MM-DD)"
// @Param   endDate query string false "Creation date upper bound (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=[]dto.OperationResponse}
// @Failure 400 {object} dto.APIError "Invalid filter value"
// @Failure 401 {object} dto.APIError "Unauthorized"
// @Failure 500 {object} dto.APIError "Failed to list operations"
// @Security BearerAuth
// @Router /operations [get]
func (h *operationHandler) listOperations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.ListOperationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListOperations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid query parameters: "+err.Error()))
		return
	}

	logger = logger.With(slog.String("user_id", userID))

	operations, err := h.operationService.ListOperations(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Operation not found", "Failed to list operations")
		return
	}

	logger.Info("Operations listed successfully", slog.Int("count", len(operations)))
	c.JSON(http.StatusOK, dto.NewListResponse(dto.ToOperationResponseList(operations), len(operations)))
}

// getAdminBalance godoc
// @Summary Get the employee's own balance
// @Description Derives the employee balance by folding all completed operations: deposits add, every other type subtracts
// @Tags operations
// @Produce  json
// @Success 200 {object} dto.APIResponse{data=dto.AdminBalanceResponse}
// @Failure 401 {object} dto.APIError "Unauthorized"
// @Failure 500 {object} dto.APIError "Failed to compute balance"
// @Security BearerAuth
// @Router /operations/balance [get]
func (h *operationHandler) getAdminBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID))

	balance, err := h.operationService.ProjectAdminBalance(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Operation not found", "Failed to compute balance")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AdminBalanceResponse{Balance: balance}))
}

// getClientHistory godoc
// @Summary List the operation history of one client
// @Description Retrieves every operation linked to the given client of the logged-in user, newest first
// @Tags operations
// @Produce  json
// @Param   clientId path string true "Client ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.OperationResponse}
// @Failure 401 {object} dto.APIError "Unauthorized"
// @Failure 404 {object} dto.APIError "Beneficiary not found"
// @Failure 500 {object} dto.APIError "Failed to list client history"
// @Security BearerAuth
// @Router /operations/history/{clientId} [get]
func (h *operationHandler) getClientHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientId")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("client_id", clientID))

	operations, err := h.operationService.ListClientHistory(c.Request.Context(), userID, clientID)
	if err != nil {
		respondServiceError(c, logger, err, "Beneficiary not found", "Failed to list client history")
		return
	}

	logger.Info("Client history listed successfully", slog.Int("count", len(operations)))
	c.JSON(http.StatusOK, dto.NewListResponse(dto.ToOperationResponseList(operations), len(operations)))
}

// getOperation godoc
// @Summary Get an operation by ID
// @Description Retrieves a single operation owned by the logged-in user
// @Tags operations
// @Produce  json
// @Param   id path string true "Operation ID"
// @Success 200 {object} dto.APIResponse{data=dto.OperationResponse}
// @Failure 401 {object} dto.APIError "Unauthorized"
// @Failure 404 {object} dto.APIError "Operation not found"
// @Failure 500 {object} dto.APIError "Failed to retrieve operation"
// @Security BearerAuth
// @Router /operations/{id} [get]
func (h *operationHandler) getOperation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	operationID := c.Param("id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("operation_id", operationID))

	op, err := h.operationService.GetOperationByID(c.Request.Context(), userID, operationID)
	if err != nil {
		respondServiceError(c, logger, err, "Operation not found", "Failed to retrieve operation")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToOperationResponse(op)))
}

// updateOperationStatus godoc
// @Summary Update the status of an operation
// @Description Transitions an operation to a new status; balance effects are never reapplied
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   id path string true "Operation ID"
// @Param   status body dto.UpdateOperationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.OperationResponse}
// @Failure 400 {object} dto.APIError "Invalid status value"
// @Failure 401 {object} dto.APIError "Unauthorized"
// @Failure 404 {object} dto.APIError "Operation not found"
// @Failure 500 {object} dto.APIError "Failed to update operation"
// @Security BearerAuth
// @Router /operations/{id}/status [put]
func (h *operationHandler) updateOperationStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	operationID := c.Param("id")

	var req dto.UpdateOperationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateOperationStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request format: "+err.Error()))
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("operation_id", operationID))
	logger.Info("Received request to update operation status", slog.String("status", string(req.Status)))

	op, err := h.operationService.UpdateOperationStatus(c.Request.Context(), userID, operationID, req.Status)
	if err != nil {
		respondServiceError(c, logger, err, "Operation not found", "Failed to update operation")
		return
	}

	logger.Info("Operation status updated successfully")
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToOperationResponse(op)))
}
