package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	accountingapp "github.com/societyhub/backend/internal/application/accounting"
	"github.com/societyhub/backend/internal/interfaces/http/dto"
)

// AccountHeadHandler handles account head API endpoints
type AccountHeadHandler struct {
	BaseHandler
	headService *accountingapp.AccountHeadService
}

// NewAccountHeadHandler creates a new AccountHeadHandler
func NewAccountHeadHandler(headService *accountingapp.AccountHeadService) *AccountHeadHandler {
	return &AccountHeadHandler{
		headService: headService,
	}
}

// Create creates a new account head
func (h *AccountHeadHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req accountingapp.CreateAccountHeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	head, err := h.headService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, head)
}

// Get retrieves an account head by ID
func (h *AccountHeadHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account head ID format")
		return
	}

	head, err := h.headService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, head)
}

// List lists account heads with pagination and search
func (h *AccountHeadHandler) List(c *gin.Context) {
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
	heads, total, err := h.headService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, heads, total, filter.Page, filter.PageSize)
}

// ListByType lists account heads of a given type
func (h *AccountHeadHandler) ListByType(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	heads, err := h.headService.ListByType(c.Request.Context(), tenantID, c.Param("type"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, heads)
}

// Hierarchy returns account heads ordered so parents precede children
func (h *AccountHeadHandler) Hierarchy(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	heads, err := h.headService.Hierarchy(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, heads)
}

// Update updates an account head
func (h *AccountHeadHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account head ID format")
		return
	}

	var req accountingapp.UpdateAccountHeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	head, err := h.headService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, head)
}

// Delete deletes an account head
func (h *AccountHeadHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account head ID format")
		return
	}

	if err := h.headService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers account head routes
func (h *AccountHeadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	heads := rg.Group("/account-heads")
	{
		heads.GET("", h.List)
		heads.GET("/hierarchy", h.Hierarchy)
		heads.GET("/by-type/:type", h.ListByType)
		heads.GET("/:id", h.Get)
		heads.POST("", h.Create)
		heads.PUT("/:id", h.Update)
		heads.DELETE("/:id", h.Delete)
	}
}
