package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bankmgmt/bank_management_app/internal/core/ports/services"
	"github.com/bankmgmt/bank_management_app/internal/dto"
	"github.com/bankmgmt/bank_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// clientHandler handles HTTP requests related to clients.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

// newClientHandler creates a new clientHandler.
func newClientHandler(cs portssvc.ClientSvcFacade) *clientHandler {
	return &clientHandler{
		clientService: cs,
	}
}

// registerClientRoutes registers routes related to clients.
func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade) {
	h := newClientHandler(clientService)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:id", h.getClient)
		clients.PUT("/:id", h.updateClient)
		clients.DELETE("/:id", h.deleteClient)
	}
}

// createClient godoc
// @Summary Create a new client
// @Description Creates a new client for the logged-in user, allocating an account number when none is provided
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.APIResponse{data=dto.ClientResponse}
// @Failure 400 {object} dto.APIError "Invalid input format or validation error"
// @Failure 401 {object} dto.APIError "Unauthorized"
// @Failure 500 {object} dto.APIError "Failed to create client"
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request format: "+err.Error()))
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID))
	logger.Info("Received request to create client", slog.String("email", req.Email))

	client, err := h.clientService.CreateClient(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Client not found", "Failed to create client")
		return
	}

	logger.Info("Client created successfully", slog.String("client_id", client.ClientID))
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.ToClientResponse(client)))
}

// listClients godoc
// @Summary List clients of the logged-in user
// @Description Retrieves every client owned by the logged-in user, newest first
// @Tags clients
// @Produce  json
// @Success 200 {object} dto.APIResponse{data=[]dto.ClientResponse}
// @Failure 401 {object} dto.APIError "Unauthorized"
// @Failure 500 {object} dto.APIError "Failed to list clients"
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID))

	clients, err := h.clientService.ListClients(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Client not found", "Failed to list clients")
		return
	}

	logger.Info("Clients listed successfully", slog.Int("count", len(clients)))
	c.JSON(http.StatusOK, dto.NewListResponse(dto.ToClientResponseList(clients), len(clients)))
}

// getClient godoc
// @Summary Get a client by ID
// @Description Retrieves a single client owned by the logged-in user
// @Tags clients
// @Produce  json
// @Param   id path string true "Client ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClientResponse}
// @Failure 401 {object} dto.APIError "Unauthorized"
// @Failure 404 {object} dto.APIError "Client not found"
// @Failure 500 {object} dto.APIError "Failed to retrieve client"
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("client_id", clientID))

	client, err := h.clientService.GetClientByID(c.Request.Context(), userID, clientID)
	if err != nil {
		respondServiceError(c, logger, err, "Client not found", "Failed to retrieve client")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToClientResponse(client)))
}

// updateClient godoc
// @Summary Update a client
// @Description Applies a partial update to a client's profile fields; the account number and balance cannot be changed
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   id path string true "Client ID to update"
// @Param   client body dto.UpdateClientRequest true "Client fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.ClientResponse}
// @Failure 400 {object} dto.APIError "Invalid input"
// @Failure 401 {object} dto.APIError "Unauthorized"
// @Failure 404 {object} dto.APIError "Client not found"
// @Failure 500 {object} dto.APIError "Failed to update client"
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request format: "+err.Error()))
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("client_id", clientID))
	logger.Info("Received request to update client")

	client, err := h.clientService.UpdateClient(c.Request.Context(), userID, clientID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Client not found", "Failed to update client")
		return
	}

	logger.Info("Client updated successfully")
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToClientResponse(client)))
}

// deleteClient godoc
// @Summary Delete a client
// @Description Removes a client; operations recorded against it are retained
// @Tags clients
// @Produce  json
// @Param   id path string true "Client ID to delete"
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIError "Unauthorized"
// @Failure 404 {object} dto.APIError "Client not found"
// @Failure 500 {object} dto.APIError "Failed to delete client"
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *clientHandler) deleteClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("client_id", clientID))
	logger.Info("Received request to delete client")

	if err := h.clientService.DeleteClient(c.Request.Context(), userID, clientID); err != nil {
		respondServiceError(c, logger, err, "Client not found", "Failed to delete client")
		return
	}

	logger.Info("Client deleted successfully")
	c.JSON(http.StatusOK, dto.APIResponse{Success: true, Message: "Client deleted successfully"})
}
