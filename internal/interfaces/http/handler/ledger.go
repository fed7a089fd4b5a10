package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	accountingapp "github.com/societyhub/backend/internal/application/accounting"
)

// LedgerHandler handles ledger entry API endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService *accountingapp.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *accountingapp.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// ledgerListQuery captures list query parameters with string dates
type ledgerListQuery struct {
	Search         string `form:"search"`
	AccountHeadID  string `form:"account_head_id"`
	FundCategoryID string `form:"fund_category_id"`
	Type           string `form:"type"`
	FromDate       string `form:"from_date"`
	ToDate         string `form:"to_date"`
	Page           int    `form:"page"`
	PageSize       int    `form:"page_size"`
	OrderBy        string `form:"order_by"`
	OrderDir       string `form:"order_dir"`
}

func (q ledgerListQuery) toFilter() (accountingapp.LedgerEntryListFilter, error) {
	filter := accountingapp.LedgerEntryListFilter{
		Search:   q.Search,
		Type:     q.Type,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}
	filter.Page, filter.PageSize = normalizePagination(q.Page, q.PageSize)

	var err error
	if filter.AccountHeadID, err = parseUUIDParam(q.AccountHeadID); err != nil {
		return filter, err
	}
	if filter.FundCategoryID, err = parseUUIDParam(q.FundCategoryID); err != nil {
		return filter, err
	}
	if filter.FromDate, err = parseDateParam(q.FromDate); err != nil {
		return filter, err
	}
	if filter.ToDate, err = parseEndDateParam(q.ToDate); err != nil {
		return filter, err
	}
	return filter, nil
}

// Create records a single ledger entry
func (h *LedgerHandler) Create(c *gin.Context) {
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

	var req accountingapp.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = userID

	entry, err := h.ledgerService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entry)
}

// BulkCreate records a batch of ledger entries atomically
func (h *LedgerHandler) BulkCreate(c *gin.Context) {
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

	var reqs []accountingapp.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	for i := range reqs {
		reqs[i].CreatedBy = userID
	}

	entries, err := h.ledgerService.BulkCreate(c.Request.Context(), tenantID, reqs)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entries)
}

// Get retrieves a ledger entry by ID
func (h *LedgerHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ledger entry ID format")
		return
	}

	entry, err := h.ledgerService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entry)
}

// List lists ledger entries with filters and pagination
func (h *LedgerHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var query ledgerListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, "Invalid filter parameter: "+err.Error())
		return
	}

	entries, total, err := h.ledgerService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// Update updates a ledger entry
func (h *LedgerHandler) Update(c *gin.Context) {
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

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ledger entry ID format")
		return
	}

	var req accountingapp.UpdateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.ledgerService.Update(c.Request.Context(), tenantID, id, userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entry)
}

// Delete removes a ledger entry
func (h *LedgerHandler) Delete(c *gin.Context) {
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

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ledger entry ID format")
		return
	}

	if err := h.ledgerService.Delete(c.Request.Context(), tenantID, id, userID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Summary returns aggregate income, expense and net balance
func (h *LedgerHandler) Summary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	summary, err := h.ledgerService.Summary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// ExportCSV streams filtered ledger entries as a CSV file
func (h *LedgerHandler) ExportCSV(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var query ledgerListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, "Invalid filter parameter: "+err.Error())
		return
	}

	data, err := h.ledgerService.ExportCSV(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="ledger_entries.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// RegisterRoutes registers ledger entry routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	entries := rg.Group("/ledger-entries")
	{
		entries.GET("", h.List)
		entries.GET("/summary", h.Summary)
		entries.GET("/export", h.ExportCSV)
		entries.GET("/:id", h.Get)
		entries.POST("", h.Create)
		entries.POST("/bulk", h.BulkCreate)
		entries.PUT("/:id", h.Update)
		entries.DELETE("/:id", h.Delete)
	}
}
