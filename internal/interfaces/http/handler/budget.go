package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	accountingapp "github.com/societyhub/backend/internal/application/accounting"
	"github.com/societyhub/backend/internal/interfaces/http/dto"
)

// BudgetHandler handles budget API endpoints
type BudgetHandler struct {
	BaseHandler
	budgetService *accountingapp.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *accountingapp.BudgetService) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
	}
}

// Create creates a budget allocation for an account head
func (h *BudgetHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req accountingapp.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	budget, err := h.budgetService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, budget)
}

// Get retrieves a budget by ID
func (h *BudgetHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}

	budget, err := h.budgetService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, budget)
}

// List lists budgets with pagination
func (h *BudgetHandler) List(c *gin.Context) {
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
	budgets, total, err := h.budgetService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, budgets, total, filter.Page, filter.PageSize)
}

// ListByFinancialYear lists budgets for a financial year
func (h *BudgetHandler) ListByFinancialYear(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	budgets, err := h.budgetService.ListByFinancialYear(c.Request.Context(), tenantID, c.Param("year"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, budgets)
}

// Update updates a budget allocation
func (h *BudgetHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}

	var req accountingapp.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	budget, err := h.budgetService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, budget)
}

// Delete removes a budget allocation
func (h *BudgetHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}

	if err := h.budgetService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// BudgetVsActual compares budgeted amounts against actual approved expenses
func (h *BudgetHandler) BudgetVsActual(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	financialYear := c.Query("financial_year")
	if financialYear == "" {
		h.BadRequest(c, "financial_year query parameter is required")
		return
	}

	report, err := h.budgetService.BudgetVsActual(c.Request.Context(), tenantID, financialYear)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// RegisterRoutes registers budget routes
func (h *BudgetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	budgets := rg.Group("/budgets")
	{
		budgets.GET("", h.List)
		budgets.GET("/vs-actual", h.BudgetVsActual)
		budgets.GET("/by-year/:year", h.ListByFinancialYear)
		budgets.GET("/:id", h.Get)
		budgets.POST("", h.Create)
		budgets.PUT("/:id", h.Update)
		budgets.DELETE("/:id", h.Delete)
	}
}
