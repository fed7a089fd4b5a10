package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/societyhub/backend/internal/application/billing"
)

// PaymentHandler handles payment API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

type paymentListQuery struct {
	Search    string `form:"search"`
	InvoiceID string `form:"invoice_id"`
	BillID    string `form:"bill_id"`
	UnitID    string `form:"unit_id"`
	Status    string `form:"status"`
	FromDate  string `form:"from_date"`
	ToDate    string `form:"to_date"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir"`
}

func (q paymentListQuery) toFilter() (billingapp.PaymentListFilter, error) {
	invoiceID, err := parseUUIDParam(q.InvoiceID)
	if err != nil {
		return billingapp.PaymentListFilter{}, err
	}
	billID, err := parseUUIDParam(q.BillID)
	if err != nil {
		return billingapp.PaymentListFilter{}, err
	}
	unitID, err := parseUUIDParam(q.UnitID)
	if err != nil {
		return billingapp.PaymentListFilter{}, err
	}
	fromDate, err := parseDateParam(q.FromDate)
	if err != nil {
		return billingapp.PaymentListFilter{}, err
	}
	toDate, err := parseEndDateParam(q.ToDate)
	if err != nil {
		return billingapp.PaymentListFilter{}, err
	}
	page, pageSize := normalizePagination(q.Page, q.PageSize)
	return billingapp.PaymentListFilter{
		Search:    q.Search,
		InvoiceID: invoiceID,
		BillID:    billID,
		UnitID:    unitID,
		Status:    q.Status,
		FromDate:  fromDate,
		ToDate:    toDate,
		Page:      page,
		PageSize:  pageSize,
		OrderBy:   q.OrderBy,
		OrderDir:  q.OrderDir,
	}, nil
}

// RecordCash records a cash payment against an invoice
func (h *PaymentHandler) RecordCash(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req billingapp.RecordCashPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	payment, err := h.paymentService.RecordCashPayment(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, payment)
}

// RecordCheque records a cheque payment against an invoice
func (h *PaymentHandler) RecordCheque(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req billingapp.RecordChequePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	payment, err := h.paymentService.RecordChequePayment(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, payment)
}

// Refund refunds a completed payment and restores the invoice balance
func (h *PaymentHandler) Refund(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	var req billingapp.RefundPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	payment, err := h.paymentService.Refund(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payment)
}

// Get retrieves a payment by ID
func (h *PaymentHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	payment, err := h.paymentService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payment)
}

// GetReceipt retrieves the receipt for a completed payment
func (h *PaymentHandler) GetReceipt(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	receipt, err := h.paymentService.GetReceipt(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, receipt)
}

// List lists payments with filtering and pagination
func (h *PaymentHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var query paymentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payments, total, err := h.paymentService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, payments, total, filter.Page, filter.PageSize)
}

// ListByInvoice lists payments recorded against an invoice
func (h *PaymentHandler) ListByInvoice(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("invoiceId"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var query paymentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page, pageSize := normalizePagination(query.Page, query.PageSize)

	payments, total, err := h.paymentService.ListByInvoice(c.Request.Context(), tenantID, invoiceID, page, pageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, payments, total, page, pageSize)
}

// ListByUnit lists payments recorded for a unit
func (h *PaymentHandler) ListByUnit(c *gin.Context) {
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

	var query paymentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page, pageSize := normalizePagination(query.Page, query.PageSize)

	payments, total, err := h.paymentService.ListByUnit(c.Request.Context(), tenantID, unitID, page, pageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, payments, total, page, pageSize)
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.GET("", h.List)
		payments.GET("/by-invoice/:invoiceId", h.ListByInvoice)
		payments.GET("/by-unit/:unitId", h.ListByUnit)
		payments.GET("/:id", h.Get)
		payments.GET("/:id/receipt", h.GetReceipt)
		payments.POST("/cash", h.RecordCash)
		payments.POST("/cheque", h.RecordCheque)
		payments.POST("/:id/refund", h.Refund)
	}
}
