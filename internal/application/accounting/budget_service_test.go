package accounting

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/accounting"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBudgetService_Create(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	t.Run("creates a budget for a valid financial year", func(t *testing.T) {
		budgetRepo := new(mockBudgetRepository)
		headRepo := new(mockAccountHeadRepository)
		expenseRepo := new(mockExpenseRepository)
		service := NewBudgetService(budgetRepo, headRepo, expenseRepo)

		head, err := accounting.NewAccountHead(tenantID, "Repairs", accounting.HeadTypeExpense, nil, "")
		require.NoError(t, err)
		headRepo.On("FindByIDForTenant", mock.Anything, tenantID, head.ID).Return(head, nil)
		budgetRepo.On("Save", mock.Anything, mock.AnythingOfType("*accounting.Budget")).Return(nil)

		resp, err := service.Create(ctx, tenantID, CreateBudgetRequest{
			FinancialYear:  "2026-2027",
			AccountHeadID:  head.ID,
			BudgetedAmount: decimal.NewFromInt(120000),
		})

		require.NoError(t, err)
		assert.Equal(t, "2026-2027", resp.FinancialYear)
	})

	t.Run("rejects a malformed financial year", func(t *testing.T) {
		budgetRepo := new(mockBudgetRepository)
		headRepo := new(mockAccountHeadRepository)
		expenseRepo := new(mockExpenseRepository)
		service := NewBudgetService(budgetRepo, headRepo, expenseRepo)

		head, err := accounting.NewAccountHead(tenantID, "Repairs", accounting.HeadTypeExpense, nil, "")
		require.NoError(t, err)
		headRepo.On("FindByIDForTenant", mock.Anything, tenantID, head.ID).Return(head, nil)

		_, err = service.Create(ctx, tenantID, CreateBudgetRequest{
			FinancialYear:  "FY26",
			AccountHeadID:  head.ID,
			BudgetedAmount: decimal.NewFromInt(1000),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_FINANCIAL_YEAR", domainErr.Code)
		budgetRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestBudgetService_BudgetVsActual(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	t.Run("computes variance per head over the year window", func(t *testing.T) {
		budgetRepo := new(mockBudgetRepository)
		headRepo := new(mockAccountHeadRepository)
		expenseRepo := new(mockExpenseRepository)
		service := NewBudgetService(budgetRepo, headRepo, expenseRepo)

		securityHead, err := accounting.NewAccountHead(tenantID, "Security", accounting.HeadTypeExpense, nil, "")
		require.NoError(t, err)
		repairsHead, err := accounting.NewAccountHead(tenantID, "Repairs", accounting.HeadTypeExpense, nil, "")
		require.NoError(t, err)

		securityBudget, err := accounting.NewBudget(tenantID, securityHead.ID, "2026-2027", decimal.NewFromInt(100000), "")
		require.NoError(t, err)
		repairsBudget, err := accounting.NewBudget(tenantID, repairsHead.ID, "2026-2027", decimal.NewFromInt(50000), "")
		require.NoError(t, err)

		yearStart := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
		yearEnd := time.Date(2027, time.December, 31, 23, 59, 59, 0, time.UTC)

		budgetRepo.On("FindByFinancialYear", mock.Anything, tenantID, "2026-2027").Return([]accounting.Budget{*securityBudget, *repairsBudget}, nil)
		headRepo.On("FindByIDForTenant", mock.Anything, tenantID, securityHead.ID).Return(securityHead, nil)
		headRepo.On("FindByIDForTenant", mock.Anything, tenantID, repairsHead.ID).Return(repairsHead, nil)
		expenseRepo.On("SumPaidByAccountHead", mock.Anything, tenantID, securityHead.ID, yearStart, yearEnd).Return(decimal.NewFromInt(64000), nil)
		expenseRepo.On("SumPaidByAccountHead", mock.Anything, tenantID, repairsHead.ID, yearStart, yearEnd).Return(decimal.Zero, nil)

		report, err := service.BudgetVsActual(ctx, tenantID, "2026-2027")

		require.NoError(t, err)
		require.Len(t, report.Lines, 2)
		assert.Equal(t, "Security", report.Lines[0].HeadName)
		assert.Equal(t, "64000", report.Lines[0].ActualAmount.String())
		assert.Equal(t, "36000", report.Lines[0].Variance.String())
		assert.Equal(t, "Repairs", report.Lines[1].HeadName)
		assert.True(t, report.Lines[1].ActualAmount.IsZero())
		assert.Equal(t, "50000", report.Lines[1].Variance.String())
		assert.Equal(t, "150000", report.TotalBudgeted.String())
		assert.Equal(t, "64000", report.TotalActual.String())
		assert.Equal(t, "86000", report.TotalVariance.String())
	})

	t.Run("defaults to the current year window when no year given", func(t *testing.T) {
		budgetRepo := new(mockBudgetRepository)
		headRepo := new(mockAccountHeadRepository)
		expenseRepo := new(mockExpenseRepository)
		service := NewBudgetService(budgetRepo, headRepo, expenseRepo)

		y := time.Now().Year()
		label := fmt.Sprintf("%d-%d", y, y+1)
		budgetRepo.On("FindByFinancialYear", mock.Anything, tenantID, label).Return([]accounting.Budget{}, nil)

		report, err := service.BudgetVsActual(ctx, tenantID, "")

		require.NoError(t, err)
		assert.Equal(t, label, report.FinancialYear)
		assert.Empty(t, report.Lines)
		assert.True(t, report.TotalBudgeted.IsZero())
	})

	t.Run("rejects a malformed financial year", func(t *testing.T) {
		budgetRepo := new(mockBudgetRepository)
		headRepo := new(mockAccountHeadRepository)
		expenseRepo := new(mockExpenseRepository)
		service := NewBudgetService(budgetRepo, headRepo, expenseRepo)

		_, err := service.BudgetVsActual(ctx, tenantID, "26-27")

		require.Error(t, err)
		budgetRepo.AssertNotCalled(t, "FindByFinancialYear", mock.Anything, mock.Anything, mock.Anything)
	})
}
