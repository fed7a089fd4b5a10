package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/report"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFinancialReportRepository struct {
	mock.Mock
}

func (m *mockFinancialReportRepository) GetIncomeStatement(ctx context.Context, filter report.FinancialReportFilter) (*report.IncomeStatement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.IncomeStatement), args.Error(1)
}

func (m *mockFinancialReportRepository) GetBalanceSheet(ctx context.Context, tenantID uuid.UUID) (*report.BalanceSheet, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.BalanceSheet), args.Error(1)
}

func (m *mockFinancialReportRepository) GetCashFlowStatement(ctx context.Context, filter report.FinancialReportFilter) (*report.CashFlowStatement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.CashFlowStatement), args.Error(1)
}

func (m *mockFinancialReportRepository) GetTrialBalance(ctx context.Context, tenantID uuid.UUID) (*report.TrialBalance, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.TrialBalance), args.Error(1)
}

func (m *mockFinancialReportRepository) GetFundSummary(ctx context.Context, tenantID uuid.UUID) (*report.FundSummary, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.FundSummary), args.Error(1)
}

func datePtr(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return &parsed
}

func TestReportService_IncomeStatement(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	t.Run("passes the requested period through", func(t *testing.T) {
		reportRepo := new(mockFinancialReportRepository)
		service := NewReportService(reportRepo)

		from := datePtr(t, "2026-04-01")
		to := datePtr(t, "2026-06-30")
		statement := &report.IncomeStatement{
			TenantID:     tenantID,
			PeriodStart:  *from,
			PeriodEnd:    *to,
			TotalIncome:  decimal.NewFromInt(50000),
			TotalExpense: decimal.NewFromInt(32000),
			NetAmount:    decimal.NewFromInt(18000),
		}
		reportRepo.On("GetIncomeStatement", mock.Anything, report.FinancialReportFilter{
			TenantID:  tenantID,
			StartDate: *from,
			EndDate:   *to,
		}).Return(statement, nil)

		resp, err := service.IncomeStatement(ctx, tenantID, ReportPeriodRequest{StartDate: from, EndDate: to})

		require.NoError(t, err)
		assert.True(t, resp.NetAmount.Equal(decimal.NewFromInt(18000)))
		reportRepo.AssertExpectations(t)
	})

	t.Run("defaults to the financial year when no dates are given", func(t *testing.T) {
		reportRepo := new(mockFinancialReportRepository)
		service := NewReportService(reportRepo)

		reportRepo.On("GetIncomeStatement", mock.Anything, mock.MatchedBy(func(filter report.FinancialReportFilter) bool {
			return filter.TenantID == tenantID && !filter.StartDate.IsZero() && filter.EndDate.After(filter.StartDate)
		})).Return(&report.IncomeStatement{TenantID: tenantID}, nil)

		_, err := service.IncomeStatement(ctx, tenantID, ReportPeriodRequest{})

		require.NoError(t, err)
		reportRepo.AssertExpectations(t)
	})

	t.Run("rejects a half-open period", func(t *testing.T) {
		reportRepo := new(mockFinancialReportRepository)
		service := NewReportService(reportRepo)

		_, err := service.IncomeStatement(ctx, tenantID, ReportPeriodRequest{StartDate: datePtr(t, "2026-04-01")})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DATE_RANGE", domainErr.Code)
		reportRepo.AssertNotCalled(t, "GetIncomeStatement", mock.Anything, mock.Anything)
	})

	t.Run("rejects a start date after the end date", func(t *testing.T) {
		reportRepo := new(mockFinancialReportRepository)
		service := NewReportService(reportRepo)

		_, err := service.IncomeStatement(ctx, tenantID, ReportPeriodRequest{
			StartDate: datePtr(t, "2026-06-30"),
			EndDate:   datePtr(t, "2026-04-01"),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DATE_RANGE", domainErr.Code)
	})
}

func TestReportService_CashFlow(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	t.Run("rejects a half-open period", func(t *testing.T) {
		reportRepo := new(mockFinancialReportRepository)
		service := NewReportService(reportRepo)

		_, err := service.CashFlow(ctx, tenantID, ReportPeriodRequest{EndDate: datePtr(t, "2026-06-30")})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DATE_RANGE", domainErr.Code)
		reportRepo.AssertNotCalled(t, "GetCashFlowStatement", mock.Anything, mock.Anything)
	})

	t.Run("returns the repository read model", func(t *testing.T) {
		reportRepo := new(mockFinancialReportRepository)
		service := NewReportService(reportRepo)

		from := datePtr(t, "2026-04-01")
		to := datePtr(t, "2026-04-30")
		reportRepo.On("GetCashFlowStatement", mock.Anything, mock.Anything).Return(&report.CashFlowStatement{
			TenantID:    tenantID,
			Inflow:      decimal.NewFromInt(12000),
			Outflow:     decimal.NewFromInt(7000),
			NetCashFlow: decimal.NewFromInt(5000),
		}, nil)

		resp, err := service.CashFlow(ctx, tenantID, ReportPeriodRequest{StartDate: from, EndDate: to})

		require.NoError(t, err)
		assert.True(t, resp.NetCashFlow.Equal(decimal.NewFromInt(5000)))
	})
}

func TestReportService_ExportCAFormat(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	from := datePtr(t, "2026-04-01")
	to := datePtr(t, "2027-03-31")
	headID := uuid.New()
	fundID := uuid.New()

	newStubbedRepo := func() *mockFinancialReportRepository {
		reportRepo := new(mockFinancialReportRepository)
		reportRepo.On("GetIncomeStatement", mock.Anything, mock.Anything).Return(&report.IncomeStatement{
			TenantID:     tenantID,
			TotalIncome:  decimal.NewFromInt(90000),
			TotalExpense: decimal.NewFromInt(61000),
			NetAmount:    decimal.NewFromInt(29000),
		}, nil)
		reportRepo.On("GetCashFlowStatement", mock.Anything, mock.Anything).Return(&report.CashFlowStatement{
			TenantID:    tenantID,
			Inflow:      decimal.NewFromInt(85000),
			Outflow:     decimal.NewFromInt(54000),
			NetCashFlow: decimal.NewFromInt(31000),
		}, nil)
		reportRepo.On("GetBalanceSheet", mock.Anything, tenantID).Return(&report.BalanceSheet{
			TenantID:         tenantID,
			AsOf:             *to,
			TotalAssets:      decimal.NewFromInt(140000),
			TotalLiabilities: decimal.NewFromInt(22000),
			NetPosition:      decimal.NewFromInt(118000),
		}, nil)
		reportRepo.On("GetTrialBalance", mock.Anything, tenantID).Return(&report.TrialBalance{
			TenantID: tenantID,
			Lines: []report.TrialBalanceLine{
				{AccountHeadID: headID, HeadName: "Maintenance Collection", HeadType: "INCOME", Amount: decimal.NewFromInt(90000)},
			},
			Total: decimal.NewFromInt(90000),
		}, nil)
		reportRepo.On("GetFundSummary", mock.Anything, tenantID).Return(&report.FundSummary{
			TenantID: tenantID,
			Lines: []report.FundSummaryLine{
				{FundCategoryID: fundID, CategoryName: "Sinking Fund", Balance: decimal.NewFromInt(40000)},
			},
			Total: decimal.NewFromInt(40000),
		}, nil)
		return reportRepo
	}

	t.Run("assembles every section into one csv document", func(t *testing.T) {
		reportRepo := newStubbedRepo()
		service := NewReportService(reportRepo)

		out, err := service.ExportCAFormat(ctx, tenantID, ReportPeriodRequest{StartDate: from, EndDate: to})

		require.NoError(t, err)
		doc := string(out)
		assert.Contains(t, doc, "Income Statement,2026-04-01,2027-03-31")
		assert.Contains(t, doc, "Total Income,90000.00")
		assert.Contains(t, doc, "Cash Flow Statement")
		assert.Contains(t, doc, "Net Cash Flow,31000.00")
		assert.Contains(t, doc, "Balance Sheet,2027-03-31")
		assert.Contains(t, doc, "Net Position,118000.00")
		assert.Contains(t, doc, "Maintenance Collection,INCOME,90000.00")
		assert.Contains(t, doc, "Sinking Fund,40000.00")

		// Sections are separated by blank lines and ordered statement first
		assert.Less(t, strings.Index(doc, "Income Statement"), strings.Index(doc, "Trial Balance"))
		reportRepo.AssertExpectations(t)
	})

	t.Run("rejects a half-open period before any query", func(t *testing.T) {
		reportRepo := new(mockFinancialReportRepository)
		service := NewReportService(reportRepo)

		_, err := service.ExportCAFormat(ctx, tenantID, ReportPeriodRequest{StartDate: from})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DATE_RANGE", domainErr.Code)
		reportRepo.AssertNotCalled(t, "GetIncomeStatement", mock.Anything, mock.Anything)
	})

	t.Run("a failing query aborts the export", func(t *testing.T) {
		reportRepo := new(mockFinancialReportRepository)
		service := NewReportService(reportRepo)

		reportRepo.On("GetIncomeStatement", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		_, err := service.ExportCAFormat(ctx, tenantID, ReportPeriodRequest{StartDate: from, EndDate: to})

		require.ErrorIs(t, err, assert.AnError)
		reportRepo.AssertNotCalled(t, "GetBalanceSheet", mock.Anything, mock.Anything)
	})
}

func TestReportService_Snapshots(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	t.Run("balance sheet is a point-in-time read", func(t *testing.T) {
		reportRepo := new(mockFinancialReportRepository)
		service := NewReportService(reportRepo)

		reportRepo.On("GetBalanceSheet", mock.Anything, tenantID).Return(&report.BalanceSheet{
			TenantID:    tenantID,
			NetPosition: decimal.NewFromInt(5000),
		}, nil)

		resp, err := service.BalanceSheet(ctx, tenantID)

		require.NoError(t, err)
		assert.True(t, resp.NetPosition.Equal(decimal.NewFromInt(5000)))
	})

	t.Run("trial balance and fund summary pass through", func(t *testing.T) {
		reportRepo := new(mockFinancialReportRepository)
		service := NewReportService(reportRepo)

		reportRepo.On("GetTrialBalance", mock.Anything, tenantID).Return(&report.TrialBalance{TenantID: tenantID}, nil)
		reportRepo.On("GetFundSummary", mock.Anything, tenantID).Return(&report.FundSummary{TenantID: tenantID}, nil)

		trial, err := service.TrialBalance(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, tenantID, trial.TenantID)

		funds, err := service.FundSummary(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, tenantID, funds.TenantID)
	})
}
