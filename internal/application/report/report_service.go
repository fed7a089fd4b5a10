package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/accounting"
	"github.com/societyhub/backend/internal/domain/report"
	"github.com/societyhub/backend/internal/domain/shared"
)

// ReportService provides application-level financial report operations
type ReportService struct {
	reportRepo report.FinancialReportRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo report.FinancialReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// ReportPeriodRequest defines the date window for period-based reports.
// Both dates empty selects the default financial year window.
type ReportPeriodRequest struct {
	StartDate *time.Time `form:"start_date"`
	EndDate   *time.Time `form:"end_date"`
}

func (s *ReportService) resolvePeriod(tenantID uuid.UUID, req ReportPeriodRequest) (report.FinancialReportFilter, error) {
	filter := report.FinancialReportFilter{TenantID: tenantID}

	if req.StartDate == nil && req.EndDate == nil {
		fy := accounting.DefaultFinancialYear(time.Now())
		filter.StartDate = fy.Start
		filter.EndDate = fy.End
		return filter, nil
	}
	if req.StartDate == nil || req.EndDate == nil {
		return filter, shared.NewDomainError("INVALID_DATE_RANGE", "Both start date and end date are required")
	}
	if req.StartDate.After(*req.EndDate) {
		return filter, shared.NewDomainError("INVALID_DATE_RANGE", "Start date cannot be after end date")
	}

	filter.StartDate = *req.StartDate
	filter.EndDate = *req.EndDate
	return filter, nil
}

// IncomeStatement builds the income-versus-expense statement for a period
func (s *ReportService) IncomeStatement(ctx context.Context, tenantID uuid.UUID, req ReportPeriodRequest) (*report.IncomeStatement, error) {
	filter, err := s.resolvePeriod(tenantID, req)
	if err != nil {
		return nil, err
	}
	return s.reportRepo.GetIncomeStatement(ctx, filter)
}

// BalanceSheet builds the fund-balance-versus-obligation snapshot
func (s *ReportService) BalanceSheet(ctx context.Context, tenantID uuid.UUID) (*report.BalanceSheet, error) {
	return s.reportRepo.GetBalanceSheet(ctx, tenantID)
}

// CashFlow builds the inflow-versus-outflow statement for a period
func (s *ReportService) CashFlow(ctx context.Context, tenantID uuid.UUID, req ReportPeriodRequest) (*report.CashFlowStatement, error) {
	filter, err := s.resolvePeriod(tenantID, req)
	if err != nil {
		return nil, err
	}
	return s.reportRepo.GetCashFlowStatement(ctx, filter)
}

// TrialBalance builds the per-head aggregate ledger position
func (s *ReportService) TrialBalance(ctx context.Context, tenantID uuid.UUID) (*report.TrialBalance, error) {
	return s.reportRepo.GetTrialBalance(ctx, tenantID)
}

// FundSummary builds the per-fund-category balance summary
func (s *ReportService) FundSummary(ctx context.Context, tenantID uuid.UUID) (*report.FundSummary, error) {
	return s.reportRepo.GetFundSummary(ctx, tenantID)
}

// ExportCAFormat renders a single CSV document combining the income
// statement, cash flow statement, balance sheet, trial balance and fund
// summary for handover to a chartered accountant.
func (s *ReportService) ExportCAFormat(ctx context.Context, tenantID uuid.UUID, req ReportPeriodRequest) ([]byte, error) {
	filter, err := s.resolvePeriod(tenantID, req)
	if err != nil {
		return nil, err
	}

	income, err := s.reportRepo.GetIncomeStatement(ctx, filter)
	if err != nil {
		return nil, err
	}
	cashFlow, err := s.reportRepo.GetCashFlowStatement(ctx, filter)
	if err != nil {
		return nil, err
	}
	balance, err := s.reportRepo.GetBalanceSheet(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	trial, err := s.reportRepo.GetTrialBalance(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	funds, err := s.reportRepo.GetFundSummary(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	writeRow := func(fields ...string) error { return w.Write(fields) }
	writeAmount := func(label string, amount decimal.Decimal) error {
		return w.Write([]string{label, amount.StringFixed(2)})
	}

	if err := writeRow("Income Statement", filter.StartDate.Format("2006-01-02"), filter.EndDate.Format("2006-01-02")); err != nil {
		return nil, err
	}
	if err := writeAmount("Total Income", income.TotalIncome); err != nil {
		return nil, err
	}
	if err := writeAmount("Total Expense", income.TotalExpense); err != nil {
		return nil, err
	}
	if err := writeAmount("Net Amount", income.NetAmount); err != nil {
		return nil, err
	}

	if err := writeRow(); err != nil {
		return nil, err
	}
	if err := writeRow("Cash Flow Statement", filter.StartDate.Format("2006-01-02"), filter.EndDate.Format("2006-01-02")); err != nil {
		return nil, err
	}
	if err := writeAmount("Inflow", cashFlow.Inflow); err != nil {
		return nil, err
	}
	if err := writeAmount("Outflow", cashFlow.Outflow); err != nil {
		return nil, err
	}
	if err := writeAmount("Net Cash Flow", cashFlow.NetCashFlow); err != nil {
		return nil, err
	}

	if err := writeRow(); err != nil {
		return nil, err
	}
	if err := writeRow("Balance Sheet", balance.AsOf.Format("2006-01-02")); err != nil {
		return nil, err
	}
	if err := writeAmount("Total Assets", balance.TotalAssets); err != nil {
		return nil, err
	}
	if err := writeAmount("Total Liabilities", balance.TotalLiabilities); err != nil {
		return nil, err
	}
	if err := writeAmount("Net Position", balance.NetPosition); err != nil {
		return nil, err
	}

	if err := writeRow(); err != nil {
		return nil, err
	}
	if err := writeRow("Trial Balance"); err != nil {
		return nil, err
	}
	if err := writeRow("Head", "Type", "Amount"); err != nil {
		return nil, err
	}
	for _, line := range trial.Lines {
		if err := writeRow(line.HeadName, line.HeadType, line.Amount.StringFixed(2)); err != nil {
			return nil, err
		}
	}
	if err := writeAmount("Total", trial.Total); err != nil {
		return nil, err
	}

	if err := writeRow(); err != nil {
		return nil, err
	}
	if err := writeRow("Fund Summary"); err != nil {
		return nil, err
	}
	if err := writeRow("Fund", "Balance"); err != nil {
		return nil, err
	}
	for _, line := range funds.Lines {
		if err := writeRow(line.CategoryName, line.Balance.StringFixed(2)); err != nil {
			return nil, err
		}
	}
	if err := writeAmount("Total", funds.Total); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
