package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/societyhub/backend/internal/application/billing"
)

// BillingCycleHandler handles billing cycle API endpoints
type BillingCycleHandler struct {
	BaseHandler
	cycleService *billingapp.BillingCycleService
}

// NewBillingCycleHandler creates a new BillingCycleHandler
func NewBillingCycleHandler(cycleService *billingapp.BillingCycleService) *BillingCycleHandler {
	return &BillingCycleHandler{
		cycleService: cycleService,
	}
}

// Create creates a new billing cycle in draft status
func (h *BillingCycleHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req billingapp.CreateBillingCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	cycle, err := h.cycleService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, cycle)
}

// Get retrieves a billing cycle by ID
func (h *BillingCycleHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid billing cycle ID format")
		return
	}

	cycle, err := h.cycleService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cycle)
}

// GetCurrent retrieves the active billing cycle for the current month
func (h *BillingCycleHandler) GetCurrent(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	cycle, err := h.cycleService.GetCurrent(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cycle)
}

// List lists billing cycles with filtering and pagination
func (h *BillingCycleHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter billingapp.BillingCycleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter.Page, filter.PageSize = normalizePagination(filter.Page, filter.PageSize)

	cycles, total, err := h.cycleService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, cycles, total, filter.Page, filter.PageSize)
}

// Update updates a billing cycle's name and dates
func (h *BillingCycleHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid billing cycle ID format")
		return
	}

	var req billingapp.UpdateBillingCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cycle, err := h.cycleService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cycle)
}

// Publish activates a draft billing cycle
func (h *BillingCycleHandler) Publish(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid billing cycle ID format")
		return
	}

	cycle, err := h.cycleService.Publish(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cycle)
}

// Close closes an active billing cycle
func (h *BillingCycleHandler) Close(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid billing cycle ID format")
		return
	}

	cycle, err := h.cycleService.Close(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cycle)
}

// Delete removes a draft billing cycle
func (h *BillingCycleHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid billing cycle ID format")
		return
	}

	if err := h.cycleService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers billing cycle routes
func (h *BillingCycleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cycles := rg.Group("/billing-cycles")
	{
		cycles.GET("", h.List)
		cycles.GET("/current", h.GetCurrent)
		cycles.GET("/:id", h.Get)
		cycles.POST("", h.Create)
		cycles.PUT("/:id", h.Update)
		cycles.POST("/:id/publish", h.Publish)
		cycles.POST("/:id/close", h.Close)
		cycles.DELETE("/:id", h.Delete)
	}
}
