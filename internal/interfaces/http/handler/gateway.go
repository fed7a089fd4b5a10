package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/societyhub/backend/internal/application/billing"
	"github.com/societyhub/backend/internal/interfaces/http/dto"
)

// GatewayHandler handles payment gateway API endpoints
type GatewayHandler struct {
	BaseHandler
	gatewayService *billingapp.GatewayService
}

// NewGatewayHandler creates a new GatewayHandler
func NewGatewayHandler(gatewayService *billingapp.GatewayService) *GatewayHandler {
	return &GatewayHandler{
		gatewayService: gatewayService,
	}
}

// InitiateCheckout starts a gateway checkout for a pending maintenance bill
func (h *GatewayHandler) InitiateCheckout(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	var req billingapp.InitiateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.InitiatedBy = userID

	checkout, err := h.gatewayService.Initiate(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, checkout)
}

// Verify resolves an initiated transaction as success or failure
func (h *GatewayHandler) Verify(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	transactionRef := c.Param("transactionRef")
	if transactionRef == "" {
		h.BadRequest(c, "Transaction reference is required")
		return
	}

	var req billingapp.VerifyTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.VerifiedBy = userID

	txn, err := h.gatewayService.Verify(c.Request.Context(), tenantID, transactionRef, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, txn)
}

// Callback receives the provider's asynchronous notification. The route is
// not behind JWT auth; the tenant comes from the X-Tenant-ID header and the
// raw body is preserved for audit.
func (h *GatewayHandler) Callback(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		h.BadRequest(c, "Unable to read callback payload")
		return
	}

	var req billingapp.GatewayCallbackRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		h.BadRequest(c, "Invalid callback payload")
		return
	}
	if req.TransactionRef == "" || req.Status == "" {
		h.BadRequest(c, "transaction_ref and status are required")
		return
	}
	req.RawPayload = string(raw)

	txn, err := h.gatewayService.Callback(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, txn)
}

// Get retrieves a gateway transaction by ID
func (h *GatewayHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	txn, err := h.gatewayService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, txn)
}

// GetByTransactionRef retrieves a gateway transaction by its reference
func (h *GatewayHandler) GetByTransactionRef(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	transactionRef := c.Param("ref")
	if transactionRef == "" {
		h.BadRequest(c, "Transaction reference is required")
		return
	}

	txn, err := h.gatewayService.GetByTransactionRef(c.Request.Context(), tenantID, transactionRef)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, txn)
}

// List lists gateway transactions with pagination
func (h *GatewayHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := toSharedFilter(req)
	txns, total, err := h.gatewayService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, txns, total, filter.Page, filter.PageSize)
}

// RegisterRoutes registers gateway routes
func (h *GatewayHandler) RegisterRoutes(rg *gin.RouterGroup) {
	gateway := rg.Group("/gateway")
	{
		gateway.POST("/checkout", h.InitiateCheckout)
		gateway.POST("/verify/:transactionRef", h.Verify)
		gateway.POST("/callback", h.Callback)
		gateway.GET("/transactions", h.List)
		gateway.GET("/transactions/by-ref/:ref", h.GetByTransactionRef)
		gateway.GET("/transactions/:id", h.Get)
	}
}
