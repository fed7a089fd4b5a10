package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/societyhub/backend/internal/application/billing"
)

// MaintenanceBillHandler handles maintenance bill API endpoints
type MaintenanceBillHandler struct {
	BaseHandler
	billService *billingapp.MaintenanceBillService
}

// NewMaintenanceBillHandler creates a new MaintenanceBillHandler
func NewMaintenanceBillHandler(billService *billingapp.MaintenanceBillService) *MaintenanceBillHandler {
	return &MaintenanceBillHandler{
		billService: billService,
	}
}

type maintenanceBillListQuery struct {
	UnitID   string `form:"unit_id"`
	Status   string `form:"status"`
	Month    *int   `form:"month"`
	Year     *int   `form:"year"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

func (q maintenanceBillListQuery) toFilter() (billingapp.MaintenanceBillListFilter, error) {
	unitID, err := parseUUIDParam(q.UnitID)
	if err != nil {
		return billingapp.MaintenanceBillListFilter{}, err
	}
	page, pageSize := normalizePagination(q.Page, q.PageSize)
	return billingapp.MaintenanceBillListFilter{
		UnitID:   unitID,
		Status:   q.Status,
		Month:    q.Month,
		Year:     q.Year,
		Page:     page,
		PageSize: pageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}, nil
}

// Create raises a maintenance bill for a unit
func (h *MaintenanceBillHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req billingapp.CreateMaintenanceBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	bill, err := h.billService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, bill)
}

// Get retrieves a maintenance bill by ID
func (h *MaintenanceBillHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	bill, err := h.billService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bill)
}

// List lists maintenance bills with filtering and pagination
func (h *MaintenanceBillHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var query maintenanceBillListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bills, total, err := h.billService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, bills, total, filter.Page, filter.PageSize)
}

// ListByUnit lists maintenance bills for a unit
func (h *MaintenanceBillHandler) ListByUnit(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	unitID, err := uuid.Parse(c.Param("unitId"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	bills, err := h.billService.ListByUnit(c.Request.Context(), tenantID, unitID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bills)
}

// RecordPayment settles a maintenance bill with an offline payment
func (h *MaintenanceBillHandler) RecordPayment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	var req billingapp.RecordBillPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	payment, err := h.billService.RecordPayment(c.Request.Context(), tenantID, billID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, payment)
}

// RegisterRoutes registers maintenance bill routes
func (h *MaintenanceBillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bills := rg.Group("/maintenance-bills")
	{
		bills.GET("", h.List)
		bills.GET("/by-unit/:unitId", h.ListByUnit)
		bills.GET("/:id", h.Get)
		bills.POST("", h.Create)
		bills.POST("/:id/pay", h.RecordPayment)
	}
}
