package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/societyhub/backend/internal/application/billing"
)

// InvoiceHandler handles invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

type invoiceListQuery struct {
	Search         string `form:"search"`
	UnitID         string `form:"unit_id"`
	BillingCycleID string `form:"billing_cycle_id"`
	Status         string `form:"status"`
	FromDate       string `form:"from_date"`
	ToDate         string `form:"to_date"`
	Page           int    `form:"page"`
	PageSize       int    `form:"page_size"`
	OrderBy        string `form:"order_by"`
	OrderDir       string `form:"order_dir"`
}

func (q invoiceListQuery) toFilter() (billingapp.InvoiceListFilter, error) {
	unitID, err := parseUUIDParam(q.UnitID)
	if err != nil {
		return billingapp.InvoiceListFilter{}, err
	}
	cycleID, err := parseUUIDParam(q.BillingCycleID)
	if err != nil {
		return billingapp.InvoiceListFilter{}, err
	}
	fromDate, err := parseDateParam(q.FromDate)
	if err != nil {
		return billingapp.InvoiceListFilter{}, err
	}
	toDate, err := parseEndDateParam(q.ToDate)
	if err != nil {
		return billingapp.InvoiceListFilter{}, err
	}
	page, pageSize := normalizePagination(q.Page, q.PageSize)
	return billingapp.InvoiceListFilter{
		Search:         q.Search,
		UnitID:         unitID,
		BillingCycleID: cycleID,
		Status:         q.Status,
		FromDate:       fromDate,
		ToDate:         toDate,
		Page:           page,
		PageSize:       pageSize,
		OrderBy:        q.OrderBy,
		OrderDir:       q.OrderDir,
	}, nil
}

type setInvoiceDueDateRequest struct {
	DueDate time.Time `json:"due_date" binding:"required"`
}

// Generate creates an invoice for a unit
func (h *InvoiceHandler) Generate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req billingapp.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	invoice, err := h.invoiceService.Generate(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, invoice)
}

// BulkGenerate creates invoices for multiple units from a shared template
func (h *InvoiceHandler) BulkGenerate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req billingapp.BulkGenerateInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	invoices, err := h.invoiceService.BulkGenerate(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, invoices)
}

// Get retrieves an invoice by ID
func (h *InvoiceHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List lists invoices with filtering and pagination
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var query invoiceListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}

// ListDefaulters lists units with invoices overdue as of a given date
func (h *InvoiceHandler) ListDefaulters(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := parseDateParam(raw)
		if err != nil {
			h.BadRequest(c, err.Error())
			return
		}
		asOf = *parsed
	}

	defaulters, err := h.invoiceService.ListDefaulters(c.Request.Context(), tenantID, asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, defaulters)
}

// ListOutstanding lists invoices with an unpaid balance
func (h *InvoiceHandler) ListOutstanding(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoices, err := h.invoiceService.ListOutstanding(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoices)
}

// ReviseAmounts replaces an invoice's fee components
func (h *InvoiceHandler) ReviseAmounts(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.ReviseInvoiceAmountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.ReviseAmounts(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// ForceStatus sets an invoice's status directly with an audit reason
func (h *InvoiceHandler) ForceStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.ForceInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.UserID = &userID
	}

	invoice, err := h.invoiceService.ForceStatus(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// SetDueDate updates an invoice's due date
func (h *InvoiceHandler) SetDueDate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req setInvoiceDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.SetDueDate(c.Request.Context(), tenantID, id, req.DueDate)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Delete removes an unpaid invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.List)
		invoices.GET("/defaulters", h.ListDefaulters)
		invoices.GET("/outstanding", h.ListOutstanding)
		invoices.GET("/:id", h.Get)
		invoices.POST("", h.Generate)
		invoices.POST("/bulk", h.BulkGenerate)
		invoices.PUT("/:id/amounts", h.ReviseAmounts)
		invoices.POST("/:id/status", h.ForceStatus)
		invoices.PATCH("/:id/due-date", h.SetDueDate)
		invoices.DELETE("/:id", h.Delete)
	}
}
