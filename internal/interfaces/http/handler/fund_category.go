package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	accountingapp "github.com/societyhub/backend/internal/application/accounting"
	"github.com/societyhub/backend/internal/interfaces/http/dto"
)

// FundCategoryHandler handles fund category API endpoints
type FundCategoryHandler struct {
	BaseHandler
	fundService *accountingapp.FundCategoryService
}

// NewFundCategoryHandler creates a new FundCategoryHandler
func NewFundCategoryHandler(fundService *accountingapp.FundCategoryService) *FundCategoryHandler {
	return &FundCategoryHandler{
		fundService: fundService,
	}
}

// Create creates a new fund category
func (h *FundCategoryHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req accountingapp.CreateFundCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	fund, err := h.fundService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, fund)
}

// Get retrieves a fund category by ID
func (h *FundCategoryHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid fund category ID format")
		return
	}

	fund, err := h.fundService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, fund)
}

// List lists fund categories with pagination and search
func (h *FundCategoryHandler) List(c *gin.Context) {
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
	funds, total, err := h.fundService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, funds, total, filter.Page, filter.PageSize)
}

// Update updates a fund category
func (h *FundCategoryHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid fund category ID format")
		return
	}

	var req accountingapp.UpdateFundCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fund, err := h.fundService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, fund)
}

// AdjustBalance applies a signed delta to a fund category balance
func (h *FundCategoryHandler) AdjustBalance(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid fund category ID format")
		return
	}

	var req accountingapp.AdjustFundBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fund, err := h.fundService.AdjustBalance(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, fund)
}

// Delete deletes a fund category
func (h *FundCategoryHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid fund category ID format")
		return
	}

	if err := h.fundService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers fund category routes
func (h *FundCategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	funds := rg.Group("/fund-categories")
	{
		funds.GET("", h.List)
		funds.GET("/:id", h.Get)
		funds.POST("", h.Create)
		funds.PUT("/:id", h.Update)
		funds.POST("/:id/adjust-balance", h.AdjustBalance)
		funds.DELETE("/:id", h.Delete)
	}
}
