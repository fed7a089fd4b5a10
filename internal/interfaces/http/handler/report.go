package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/societyhub/backend/internal/application/report"
)

// ReportHandler handles financial report API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

type reportPeriodQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

func (q reportPeriodQuery) toRequest() (reportapp.ReportPeriodRequest, error) {
	startDate, err := parseDateParam(q.StartDate)
	if err != nil {
		return reportapp.ReportPeriodRequest{}, err
	}
	endDate, err := parseEndDateParam(q.EndDate)
	if err != nil {
		return reportapp.ReportPeriodRequest{}, err
	}
	return reportapp.ReportPeriodRequest{StartDate: startDate, EndDate: endDate}, nil
}

func (h *ReportHandler) bindPeriod(c *gin.Context) (reportapp.ReportPeriodRequest, bool) {
	var query reportPeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return reportapp.ReportPeriodRequest{}, false
	}
	req, err := query.toRequest()
	if err != nil {
		h.BadRequest(c, err.Error())
		return reportapp.ReportPeriodRequest{}, false
	}
	return req, true
}

// IncomeStatement builds the income statement for a period. Without an
// explicit period the current financial year is used.
func (h *ReportHandler) IncomeStatement(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	req, ok := h.bindPeriod(c)
	if !ok {
		return
	}

	statement, err := h.reportService.IncomeStatement(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, statement)
}

// BalanceSheet builds the balance sheet as of now
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	sheet, err := h.reportService.BalanceSheet(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sheet)
}

// CashFlow builds the cash flow statement for a period
func (h *ReportHandler) CashFlow(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	req, ok := h.bindPeriod(c)
	if !ok {
		return
	}

	statement, err := h.reportService.CashFlow(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, statement)
}

// TrialBalance builds the trial balance across all account heads
func (h *ReportHandler) TrialBalance(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	balance, err := h.reportService.TrialBalance(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, balance)
}

// FundSummary builds the per-fund-category balance summary
func (h *ReportHandler) FundSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	summary, err := h.reportService.FundSummary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// ExportCAFormat downloads the combined statements as a CSV document
func (h *ReportHandler) ExportCAFormat(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	req, ok := h.bindPeriod(c)
	if !ok {
		return
	}

	data, err := h.reportService.ExportCAFormat(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=financial_statements.csv")
	c.Data(200, "text/csv", data)
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/income-statement", h.IncomeStatement)
		reports.GET("/balance-sheet", h.BalanceSheet)
		reports.GET("/cash-flow", h.CashFlow)
		reports.GET("/trial-balance", h.TrialBalance)
		reports.GET("/fund-summary", h.FundSummary)
		reports.GET("/export-ca", h.ExportCAFormat)
	}
}
