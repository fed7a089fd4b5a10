package accounting

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/accounting"
	"github.com/societyhub/backend/internal/domain/audit"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// maxNumberAttempts bounds the unique expense number generation retry
const maxNumberAttempts = 10

// ExpenseService provides application-level expense operations
type ExpenseService struct {
	expenseRepo accounting.ExpenseRepository
	headRepo    accounting.AccountHeadRepository
	fundRepo    accounting.FundCategoryRepository
	vendorRepo  accounting.VendorRepository
	auditRec    audit.Recorder
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo accounting.ExpenseRepository,
	headRepo accounting.AccountHeadRepository,
	fundRepo accounting.FundCategoryRepository,
	vendorRepo accounting.VendorRepository,
	auditRec audit.Recorder,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		headRepo:    headRepo,
		fundRepo:    fundRepo,
		vendorRepo:  vendorRepo,
		auditRec:    auditRec,
	}
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID             uuid.UUID       `json:"id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	ExpenseNumber  string          `json:"expense_number"`
	AccountHeadID  uuid.UUID       `json:"account_head_id"`
	FundCategoryID *uuid.UUID      `json:"fund_category_id,omitempty"`
	VendorID       *uuid.UUID      `json:"vendor_id,omitempty"`
	ExpenseDate    time.Time       `json:"expense_date"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description,omitempty"`
	InvoiceNumber  string          `json:"invoice_number,omitempty"`
	InvoiceURL     string          `json:"invoice_url,omitempty"`
	PaymentStatus  string          `json:"payment_status"`
	ApprovedBy     *uuid.UUID      `json:"approved_by,omitempty"`
	ApprovalDate   *time.Time      `json:"approval_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// CreateExpenseRequest represents a request to create an expense
type CreateExpenseRequest struct {
	AccountHeadID  uuid.UUID       `json:"account_head_id" binding:"required"`
	FundCategoryID *uuid.UUID      `json:"fund_category_id"`
	VendorID       *uuid.UUID      `json:"vendor_id"`
	ExpenseDate    time.Time       `json:"expense_date" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Description    string          `json:"description"`
	InvoiceNumber  string          `json:"invoice_number"`
	InvoiceURL     string          `json:"invoice_url"`
	CreatedBy      *uuid.UUID      `json:"-"`
}

// UpdateExpenseRequest represents a request to update an expense
type UpdateExpenseRequest struct {
	AccountHeadID  uuid.UUID       `json:"account_head_id" binding:"required"`
	FundCategoryID *uuid.UUID      `json:"fund_category_id"`
	VendorID       *uuid.UUID      `json:"vendor_id"`
	ExpenseDate    time.Time       `json:"expense_date" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Description    string          `json:"description"`
	InvoiceNumber  string          `json:"invoice_number"`
	InvoiceURL     string          `json:"invoice_url"`
}

// ExpenseListFilter defines filtering options for expense list queries
type ExpenseListFilter struct {
	Search        string     `form:"search"`
	AccountHeadID *uuid.UUID `form:"account_head_id"`
	VendorID      *uuid.UUID `form:"vendor_id"`
	Status        string     `form:"status"`
	FromDate      *time.Time `form:"from_date"`
	ToDate        *time.Time `form:"to_date"`
	Page          int        `form:"page"`
	PageSize      int        `form:"page_size"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir"`
}

// Create creates a new expense with a generated unique expense number
func (s *ExpenseService) Create(ctx context.Context, tenantID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	if _, err := s.headRepo.FindByIDForTenant(ctx, tenantID, req.AccountHeadID); err != nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_HEAD", "Account head not found")
	}
	if req.FundCategoryID != nil {
		if _, err := s.fundRepo.FindByIDForTenant(ctx, tenantID, *req.FundCategoryID); err != nil {
			return nil, shared.NewDomainError("INVALID_FUND_CATEGORY", "Fund category not found")
		}
	}
	if req.VendorID != nil {
		if _, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, *req.VendorID); err != nil {
			return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor not found")
		}
	}

	expenseNumber, err := s.generateNumber(ctx, tenantID, req.ExpenseDate.Year())
	if err != nil {
		return nil, err
	}

	expense, err := accounting.NewExpense(tenantID, expenseNumber, req.AccountHeadID, req.ExpenseDate, req.Amount, req.Description)
	if err != nil {
		return nil, err
	}
	expense.FundCategoryID = req.FundCategoryID
	expense.VendorID = req.VendorID
	expense.InvoiceNumber = req.InvoiceNumber
	expense.InvoiceURL = req.InvoiceURL
	if req.CreatedBy != nil {
		expense.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	s.record(ctx, tenantID, req.CreatedBy, audit.EventExpenseCreated, expense.ID, map[string]any{
		"expense_number": expense.ExpenseNumber,
		"amount":         expense.Amount.String(),
	})

	return toExpenseResponse(expense), nil
}

// generateNumber generates a unique expense number with a bounded retry.
// Exhausting the attempts surfaces as a conflict.
func (s *ExpenseService) generateNumber(ctx context.Context, tenantID uuid.UUID, year int) (string, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		candidate := accounting.NewExpenseNumber(year)
		exists, err := s.expenseRepo.ExistsByNumber(ctx, tenantID, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", shared.NewDomainError("NUMBER_GENERATION_EXHAUSTED", "Could not generate a unique expense number")
}

// Get gets an expense by ID
func (s *ExpenseService) Get(ctx context.Context, tenantID, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// List lists expenses with filtering
func (s *ExpenseService) List(ctx context.Context, tenantID uuid.UUID, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
	domainFilter, err := toExpenseFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	expenses, err := s.expenseRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.expenseRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = *toExpenseResponse(&e)
	}
	return responses, total, nil
}

// ListPending lists expenses awaiting approval
func (s *ExpenseService) ListPending(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]ExpenseResponse, int64, error) {
	status := accounting.ExpenseStatusPending
	filter := accounting.ExpenseFilter{Status: &status}
	filter.Page = page
	filter.PageSize = pageSize

	expenses, err := s.expenseRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.expenseRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = *toExpenseResponse(&e)
	}
	return responses, total, nil
}

// Update rewrites an expense's mutable fields
func (s *ExpenseService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := expense.Update(req.AccountHeadID, req.FundCategoryID, req.VendorID, req.ExpenseDate, req.Amount, req.Description, req.InvoiceNumber, req.InvoiceURL); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	return toExpenseResponse(expense), nil
}

// Approve marks an expense as paid and stamps the approver
func (s *ExpenseService) Approve(ctx context.Context, tenantID, id, userID uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	expense.Approve(userID)

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	s.record(ctx, tenantID, &userID, audit.EventExpenseApproved, expense.ID, map[string]any{
		"expense_number": expense.ExpenseNumber,
	})

	return toExpenseResponse(expense), nil
}

// Reject marks an expense as rejected and stamps the approver
func (s *ExpenseService) Reject(ctx context.Context, tenantID, id, userID uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	expense.Reject(userID)

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	s.record(ctx, tenantID, &userID, audit.EventExpenseRejected, expense.ID, map[string]any{
		"expense_number": expense.ExpenseNumber,
	})

	return toExpenseResponse(expense), nil
}

// Delete soft-deletes an expense
func (s *ExpenseService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}

	expense.SoftDelete()
	return s.expenseRepo.Save(ctx, expense)
}

// ExportCSV renders the filtered expenses as a CSV document
func (s *ExpenseService) ExportCSV(ctx context.Context, tenantID uuid.UUID, filter ExpenseListFilter) ([]byte, error) {
	domainFilter, err := toExpenseFilter(filter)
	if err != nil {
		return nil, err
	}
	domainFilter.Page = 0
	domainFilter.PageSize = 0

	expenses, err := s.expenseRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Expense Number", "Date", "Amount", "Status", "Invoice Number", "Description"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, e := range expenses {
		row := []string{
			e.ExpenseNumber,
			e.ExpenseDate.Format("2006-01-02"),
			e.Amount.StringFixed(2),
			e.PaymentStatus.String(),
			e.InvoiceNumber,
			e.Description,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (s *ExpenseService) record(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, code string, entityID uuid.UUID, metadata map[string]any) {
	event := audit.NewEvent(tenantID, actorID, code, "Expense", &entityID, metadata)
	if err := s.auditRec.Record(ctx, event); err != nil {
		logger.L(ctx).Warn("audit record failed", zap.String("event_code", code), zap.Error(err))
	}
}

func toExpenseFilter(filter ExpenseListFilter) (accounting.ExpenseFilter, error) {
	domainFilter := accounting.ExpenseFilter{
		AccountHeadID: filter.AccountHeadID,
		VendorID:      filter.VendorID,
		FromDate:      filter.FromDate,
		ToDate:        filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir

	if filter.Status != "" {
		status := accounting.ExpenseStatus(filter.Status)
		if !status.IsValid() {
			return domainFilter, shared.NewDomainError("INVALID_STATUS", "Expense status is not valid")
		}
		domainFilter.Status = &status
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return domainFilter, shared.NewDomainError("INVALID_DATE_RANGE", "From date cannot be after to date")
	}

	return domainFilter, nil
}

func toExpenseResponse(e *accounting.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:             e.ID,
		TenantID:       e.TenantID,
		ExpenseNumber:  e.ExpenseNumber,
		AccountHeadID:  e.AccountHeadID,
		FundCategoryID: e.FundCategoryID,
		VendorID:       e.VendorID,
		ExpenseDate:    e.ExpenseDate,
		Amount:         e.Amount,
		Description:    e.Description,
		InvoiceNumber:  e.InvoiceNumber,
		InvoiceURL:     e.InvoiceURL,
		PaymentStatus:  e.PaymentStatus.String(),
		ApprovedBy:     e.ApprovedBy,
		ApprovalDate:   e.ApprovalDate,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
		Version:        e.Version,
	}
}
