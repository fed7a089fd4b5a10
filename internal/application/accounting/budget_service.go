package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/accounting"
	"github.com/societyhub/backend/internal/domain/shared"
)

// BudgetService provides application-level budget operations
type BudgetService struct {
	budgetRepo  accounting.BudgetRepository
	headRepo    accounting.AccountHeadRepository
	expenseRepo accounting.ExpenseRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(
	budgetRepo accounting.BudgetRepository,
	headRepo accounting.AccountHeadRepository,
	expenseRepo accounting.ExpenseRepository,
) *BudgetService {
	return &BudgetService{
		budgetRepo:  budgetRepo,
		headRepo:    headRepo,
		expenseRepo: expenseRepo,
	}
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID             uuid.UUID       `json:"id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	FinancialYear  string          `json:"financial_year"`
	AccountHeadID  uuid.UUID       `json:"account_head_id"`
	BudgetedAmount decimal.Decimal `json:"budgeted_amount"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateBudgetRequest represents a request to create a budget
type CreateBudgetRequest struct {
	FinancialYear  string          `json:"financial_year" binding:"required"`
	AccountHeadID  uuid.UUID       `json:"account_head_id" binding:"required"`
	BudgetedAmount decimal.Decimal `json:"budgeted_amount" binding:"required"`
	Notes          string          `json:"notes"`
	CreatedBy      *uuid.UUID      `json:"-"`
}

// UpdateBudgetRequest represents a request to update a budget
type UpdateBudgetRequest struct {
	BudgetedAmount decimal.Decimal `json:"budgeted_amount" binding:"required"`
	Notes          string          `json:"notes"`
}

// BudgetVsActualLine compares one head's budgeted amount against what was
// actually spent in the same financial year.
type BudgetVsActualLine struct {
	AccountHeadID  uuid.UUID       `json:"account_head_id"`
	HeadName       string          `json:"head_name"`
	FinancialYear  string          `json:"financial_year"`
	BudgetedAmount decimal.Decimal `json:"budgeted_amount"`
	ActualAmount   decimal.Decimal `json:"actual_amount"`
	Variance       decimal.Decimal `json:"variance"`
}

// BudgetVsActualReport is the full budget-versus-actual comparison for a
// financial year.
type BudgetVsActualReport struct {
	FinancialYear string               `json:"financial_year"`
	Lines         []BudgetVsActualLine `json:"lines"`
	TotalBudgeted decimal.Decimal      `json:"total_budgeted"`
	TotalActual   decimal.Decimal      `json:"total_actual"`
	TotalVariance decimal.Decimal      `json:"total_variance"`
}

// Create creates a budget line for an account head and financial year
func (s *BudgetService) Create(ctx context.Context, tenantID uuid.UUID, req CreateBudgetRequest) (*BudgetResponse, error) {
	if _, err := s.headRepo.FindByIDForTenant(ctx, tenantID, req.AccountHeadID); err != nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_HEAD", "Account head not found")
	}

	budget, err := accounting.NewBudget(tenantID, req.AccountHeadID, req.FinancialYear, req.BudgetedAmount, req.Notes)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		budget.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.budgetRepo.Save(ctx, budget); err != nil {
		return nil, err
	}

	return toBudgetResponse(budget), nil
}

// Get gets a budget by ID
func (s *BudgetService) Get(ctx context.Context, tenantID, id uuid.UUID) (*BudgetResponse, error) {
	budget, err := s.budgetRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toBudgetResponse(budget), nil
}

// List lists budgets with pagination
func (s *BudgetService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]BudgetResponse, int64, error) {
	budgets, err := s.budgetRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.budgetRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		responses[i] = *toBudgetResponse(&b)
	}
	return responses, total, nil
}

// ListByFinancialYear lists all budget lines for a financial year
func (s *BudgetService) ListByFinancialYear(ctx context.Context, tenantID uuid.UUID, financialYear string) ([]BudgetResponse, error) {
	if _, err := accounting.ParseFinancialYear(financialYear); err != nil {
		return nil, err
	}

	budgets, err := s.budgetRepo.FindByFinancialYear(ctx, tenantID, financialYear)
	if err != nil {
		return nil, err
	}

	responses := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		responses[i] = *toBudgetResponse(&b)
	}
	return responses, nil
}

// Update updates a budget's amount and notes
func (s *BudgetService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateBudgetRequest) (*BudgetResponse, error) {
	budget, err := s.budgetRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := budget.Update(req.BudgetedAmount, req.Notes); err != nil {
		return nil, err
	}

	if err := s.budgetRepo.Save(ctx, budget); err != nil {
		return nil, err
	}

	return toBudgetResponse(budget), nil
}

// Delete soft-deletes a budget
func (s *BudgetService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	budget, err := s.budgetRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}

	budget.SoftDelete()
	return s.budgetRepo.Save(ctx, budget)
}

// BudgetVsActual compares budgeted amounts against PAID expenses per head
// for a financial year. An empty financialYear uses the default window
// anchored on the current year. Heads with no spending report zero actual.
func (s *BudgetService) BudgetVsActual(ctx context.Context, tenantID uuid.UUID, financialYear string) (*BudgetVsActualReport, error) {
	var fy accounting.FinancialYear
	if financialYear == "" {
		fy = accounting.DefaultFinancialYear(time.Now())
	} else {
		parsed, err := accounting.ParseFinancialYear(financialYear)
		if err != nil {
			return nil, err
		}
		fy = parsed
	}

	budgets, err := s.budgetRepo.FindByFinancialYear(ctx, tenantID, fy.Label)
	if err != nil {
		return nil, err
	}

	report := &BudgetVsActualReport{
		FinancialYear: fy.Label,
		Lines:         make([]BudgetVsActualLine, 0, len(budgets)),
		TotalBudgeted: decimal.Zero,
		TotalActual:   decimal.Zero,
		TotalVariance: decimal.Zero,
	}

	for _, b := range budgets {
		headName := ""
		if head, err := s.headRepo.FindByIDForTenant(ctx, tenantID, b.AccountHeadID); err == nil {
			headName = head.HeadName
		}

		actual, err := s.expenseRepo.SumPaidByAccountHead(ctx, tenantID, b.AccountHeadID, fy.Start, fy.End)
		if err != nil {
			return nil, err
		}

		variance := b.BudgetedAmount.Sub(actual)
		report.Lines = append(report.Lines, BudgetVsActualLine{
			AccountHeadID:  b.AccountHeadID,
			HeadName:       headName,
			FinancialYear:  fy.Label,
			BudgetedAmount: b.BudgetedAmount,
			ActualAmount:   actual,
			Variance:       variance,
		})
		report.TotalBudgeted = report.TotalBudgeted.Add(b.BudgetedAmount)
		report.TotalActual = report.TotalActual.Add(actual)
		report.TotalVariance = report.TotalVariance.Add(variance)
	}

	return report, nil
}

func toBudgetResponse(b *accounting.Budget) *BudgetResponse {
	return &BudgetResponse{
		ID:             b.ID,
		TenantID:       b.TenantID,
		FinancialYear:  b.FinancialYear,
		AccountHeadID:  b.AccountHeadID,
		BudgetedAmount: b.BudgetedAmount,
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
