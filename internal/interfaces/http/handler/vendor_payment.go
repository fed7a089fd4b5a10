package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	accountingapp "github.com/societyhub/backend/internal/application/accounting"
)

// VendorPaymentHandler handles vendor payment API endpoints
type VendorPaymentHandler struct {
	BaseHandler
	paymentService *accountingapp.VendorPaymentService
}

// NewVendorPaymentHandler creates a new VendorPaymentHandler
func NewVendorPaymentHandler(paymentService *accountingapp.VendorPaymentService) *VendorPaymentHandler {
	return &VendorPaymentHandler{
		paymentService: paymentService,
	}
}

// vendorPaymentListQuery captures vendor payment list query parameters
type vendorPaymentListQuery struct {
	Search    string `form:"search"`
	VendorID  string `form:"vendor_id"`
	ExpenseID string `form:"expense_id"`
	Status    string `form:"status"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir"`
}

func (q vendorPaymentListQuery) toFilter() (accountingapp.VendorPaymentListFilter, error) {
	filter := accountingapp.VendorPaymentListFilter{
		Search:   q.Search,
		Status:   q.Status,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}
	filter.Page, filter.PageSize = normalizePagination(q.Page, q.PageSize)

	var err error
	if filter.VendorID, err = parseUUIDParam(q.VendorID); err != nil {
		return filter, err
	}
	if filter.ExpenseID, err = parseUUIDParam(q.ExpenseID); err != nil {
		return filter, err
	}
	return filter, nil
}

// Create records an outgoing payment to a vendor
func (h *VendorPaymentHandler) Create(c *gin.Context) {
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

	var req accountingapp.CreateVendorPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = userID

	payment, err := h.paymentService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, payment)
}

// Get retrieves a vendor payment by ID
func (h *VendorPaymentHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vendor payment ID format")
		return
	}

	payment, err := h.paymentService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payment)
}

// List lists vendor payments with filters and pagination
func (h *VendorPaymentHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var query vendorPaymentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, "Invalid filter parameter: "+err.Error())
		return
	}

	payments, total, err := h.paymentService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, payments, total, filter.Page, filter.PageSize)
}

// ListByVendor lists payments made to a vendor
func (h *VendorPaymentHandler) ListByVendor(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	vendorID, err := uuid.Parse(c.Param("vendorId"))
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID format")
		return
	}

	var query vendorPaymentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page, pageSize := normalizePagination(query.Page, query.PageSize)

	payments, total, err := h.paymentService.ListByVendor(c.Request.Context(), tenantID, vendorID, page, pageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, payments, total, page, pageSize)
}

// ListByExpense lists payments recorded against an expense
func (h *VendorPaymentHandler) ListByExpense(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	expenseID, err := uuid.Parse(c.Param("expenseId"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	var query vendorPaymentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page, pageSize := normalizePagination(query.Page, query.PageSize)

	payments, total, err := h.paymentService.ListByExpense(c.Request.Context(), tenantID, expenseID, page, pageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, payments, total, page, pageSize)
}

// Delete removes a vendor payment
func (h *VendorPaymentHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vendor payment ID format")
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers vendor payment routes
func (h *VendorPaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/vendor-payments")
	{
		payments.GET("", h.List)
		payments.GET("/by-vendor/:vendorId", h.ListByVendor)
		payments.GET("/by-expense/:expenseId", h.ListByExpense)
		payments.GET("/:id", h.Get)
		payments.POST("", h.Create)
		payments.DELETE("/:id", h.Delete)
	}
}
