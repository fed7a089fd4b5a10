package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/accounting"
	"github.com/societyhub/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormFinancialReportRepository implements FinancialReportRepository using GORM
type GormFinancialReportRepository struct {
	db *gorm.DB
}

// NewGormFinancialReportRepository creates a new GormFinancialReportRepository
func NewGormFinancialReportRepository(db *gorm.DB) *GormFinancialReportRepository {
	return &GormFinancialReportRepository{db: db}
}

// GetIncomeStatement sums ledger entries by type for the period
func (r *GormFinancialReportRepository) GetIncomeStatement(ctx context.Context, filter report.FinancialReportFilter) (*report.IncomeStatement, error) {
	var totals struct {
		TotalIncome  decimal.Decimal
		TotalExpense decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Table("ledger_entries").
		Select(
			"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) as total_income, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) as total_expense",
			accounting.EntryTypeIncome, accounting.EntryTypeExpense,
		).
		Where("tenant_id = ? AND deleted = false", filter.TenantID).
		Where("entry_date BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	return &report.IncomeStatement{
		TenantID:     filter.TenantID,
		PeriodStart:  filter.StartDate,
		PeriodEnd:    filter.EndDate,
		TotalIncome:  totals.TotalIncome,
		TotalExpense: totals.TotalExpense,
		NetAmount:    totals.TotalIncome.Sub(totals.TotalExpense),
	}, nil
}

// GetBalanceSheet sums fund balances against pending expenses. Liabilities
// cover every pending expense in a wide fixed window rather than a true
// accounting-period cut.
func (r *GormFinancialReportRepository) GetBalanceSheet(ctx context.Context, tenantID uuid.UUID) (*report.BalanceSheet, error) {
	var assets decimal.Decimal
	if err := r.db.WithContext(ctx).Table("fund_categories").
		Select("COALESCE(SUM(current_balance), 0)").
		Where("tenant_id = ? AND deleted = false", tenantID).
		Scan(&assets).Error; err != nil {
		return nil, err
	}

	windowStart := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Now().AddDate(20, 0, 0)

	var liabilities decimal.Decimal
	if err := r.db.WithContext(ctx).Table("expenses").
		Select("COALESCE(SUM(amount), 0)").
		Where("tenant_id = ? AND payment_status = ? AND deleted = false", tenantID, accounting.ExpenseStatusPending).
		Where("expense_date BETWEEN ? AND ?", windowStart, windowEnd).
		Scan(&liabilities).Error; err != nil {
		return nil, err
	}

	return &report.BalanceSheet{
		TenantID:         tenantID,
		AsOf:             time.Now(),
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		NetPosition:      assets.Sub(liabilities),
	}, nil
}

// GetCashFlowStatement sums ledger income against completed vendor payments
func (r *GormFinancialReportRepository) GetCashFlowStatement(ctx context.Context, filter report.FinancialReportFilter) (*report.CashFlowStatement, error) {
	var inflow decimal.Decimal
	if err := r.db.WithContext(ctx).Table("ledger_entries").
		Select("COALESCE(SUM(amount), 0)").
		Where("tenant_id = ? AND type = ? AND deleted = false", filter.TenantID, accounting.EntryTypeIncome).
		Where("entry_date BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Scan(&inflow).Error; err != nil {
		return nil, err
	}

	var outflow decimal.Decimal
	if err := r.db.WithContext(ctx).Table("vendor_payments").
		Select("COALESCE(SUM(amount), 0)").
		Where("tenant_id = ? AND status = ? AND deleted = false", filter.TenantID, accounting.VendorPaymentStatusCompleted).
		Where("payment_date BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Scan(&outflow).Error; err != nil {
		return nil, err
	}

	return &report.CashFlowStatement{
		TenantID:    filter.TenantID,
		PeriodStart: filter.StartDate,
		PeriodEnd:   filter.EndDate,
		Inflow:      inflow,
		Outflow:     outflow,
		NetCashFlow: inflow.Sub(outflow),
	}, nil
}

// GetTrialBalance returns one aggregate line per account head
func (r *GormFinancialReportRepository) GetTrialBalance(ctx context.Context, tenantID uuid.UUID) (*report.TrialBalance, error) {
	var rows []struct {
		AccountHeadID uuid.UUID
		HeadName      string
		HeadType      string
		Amount        decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Table("account_heads ah").
		Select("ah.id as account_head_id, ah.head_name, ah.head_type, COALESCE(SUM(le.amount), 0) as amount").
		Joins("LEFT JOIN ledger_entries le ON le.account_head_id = ah.id AND le.deleted = false").
		Where("ah.tenant_id = ? AND ah.deleted = false", tenantID).
		Group("ah.id, ah.head_name, ah.head_type").
		Order("ah.head_name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := &report.TrialBalance{
		TenantID: tenantID,
		AsOf:     time.Now(),
		Lines:    make([]report.TrialBalanceLine, len(rows)),
		Total:    decimal.Zero,
	}
	for i, row := range rows {
		result.Lines[i] = report.TrialBalanceLine{
			AccountHeadID: row.AccountHeadID,
			HeadName:      row.HeadName,
			HeadType:      row.HeadType,
			Amount:        row.Amount,
		}
		result.Total = result.Total.Add(row.Amount)
	}
	return result, nil
}

// GetFundSummary returns one line per fund category with its balance
func (r *GormFinancialReportRepository) GetFundSummary(ctx context.Context, tenantID uuid.UUID) (*report.FundSummary, error) {
	var rows []struct {
		FundCategoryID uuid.UUID
		CategoryName   string
		Balance        decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Table("fund_categories").
		Select("id as fund_category_id, category_name, current_balance as balance").
		Where("tenant_id = ? AND deleted = false", tenantID).
		Order("category_name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := &report.FundSummary{
		TenantID: tenantID,
		AsOf:     time.Now(),
		Lines:    make([]report.FundSummaryLine, len(rows)),
		Total:    decimal.Zero,
	}
	for i, row := range rows {
		result.Lines[i] = report.FundSummaryLine{
			FundCategoryID: row.FundCategoryID,
			CategoryName:   row.CategoryName,
			Balance:        row.Balance,
		}
		result.Total = result.Total.Add(row.Balance)
	}
	return result, nil
}

// Ensure GormFinancialReportRepository implements FinancialReportRepository
var _ report.FinancialReportRepository = (*GormFinancialReportRepository)(nil)
