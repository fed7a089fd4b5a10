package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeStatement is a read model summarizing ledger income against expense
type IncomeStatement struct {
	TenantID     uuid.UUID       `json:"tenant_id"`
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetAmount    decimal.Decimal `json:"net_amount"` // TotalIncome - TotalExpense
}

// BalanceSheet is a read model of fund balances against pending obligations
type BalanceSheet struct {
	TenantID         uuid.UUID       `json:"tenant_id"`
	AsOf             time.Time       `json:"as_of"`
	TotalAssets      decimal.Decimal `json:"total_assets"`      // sum of fund category balances
	TotalLiabilities decimal.Decimal `json:"total_liabilities"` // sum of pending expenses
	NetPosition      decimal.Decimal `json:"net_position"`      // TotalAssets - TotalLiabilities
}

// CashFlowStatement is a read model of ledger inflow against vendor outflow
type CashFlowStatement struct {
	TenantID    uuid.UUID       `json:"tenant_id"`
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	Inflow      decimal.Decimal `json:"inflow"`
	Outflow     decimal.Decimal `json:"outflow"`
	NetCashFlow decimal.Decimal `json:"net_cash_flow"` // Inflow - Outflow
}

// TrialBalanceLine is one account head's aggregate ledger position
type TrialBalanceLine struct {
	AccountHeadID uuid.UUID       `json:"account_head_id"`
	HeadName      string          `json:"head_name"`
	HeadType      string          `json:"head_type"`
	Amount        decimal.Decimal `json:"amount"`
}

// TrialBalance is a read model with one line per account head
type TrialBalance struct {
	TenantID uuid.UUID          `json:"tenant_id"`
	AsOf     time.Time          `json:"as_of"`
	Lines    []TrialBalanceLine `json:"lines"`
	Total    decimal.Decimal    `json:"total"`
}

// FundSummaryLine is one fund category with its current balance
type FundSummaryLine struct {
	FundCategoryID uuid.UUID       `json:"fund_category_id"`
	CategoryName   string          `json:"category_name"`
	Balance        decimal.Decimal `json:"balance"`
}

// FundSummary is a read model with one line per fund category
type FundSummary struct {
	TenantID uuid.UUID         `json:"tenant_id"`
	AsOf     time.Time         `json:"as_of"`
	Lines    []FundSummaryLine `json:"lines"`
	Total    decimal.Decimal   `json:"total"`
}

// FinancialReportFilter defines the period for report queries
type FinancialReportFilter struct {
	TenantID  uuid.UUID `json:"-"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// FinancialReportRepository defines the interface for financial report queries.
// Every aggregate a query returns is coalesced to zero when no rows match.
type FinancialReportRepository interface {
	// GetIncomeStatement sums ledger entries by type for the period
	GetIncomeStatement(ctx context.Context, filter FinancialReportFilter) (*IncomeStatement, error)

	// GetBalanceSheet sums fund balances against pending expenses
	GetBalanceSheet(ctx context.Context, tenantID uuid.UUID) (*BalanceSheet, error)

	// GetCashFlowStatement sums ledger income against completed vendor payments
	GetCashFlowStatement(ctx context.Context, filter FinancialReportFilter) (*CashFlowStatement, error)

	// GetTrialBalance returns one aggregate line per account head
	GetTrialBalance(ctx context.Context, tenantID uuid.UUID) (*TrialBalance, error)

	// GetFundSummary returns one line per fund category with its balance
	GetFundSummary(ctx context.Context, tenantID uuid.UUID) (*FundSummary, error)
}
