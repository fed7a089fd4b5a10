package accounting

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/shared"
)

// ExpenseStatus represents the payment status of an expense
type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "PENDING"
	ExpenseStatusPaid     ExpenseStatus = "PAID"
	ExpenseStatusRejected ExpenseStatus = "REJECTED"
)

// IsValid checks if the status is a valid ExpenseStatus
func (s ExpenseStatus) IsValid() bool {
	switch s {
	case ExpenseStatusPending, ExpenseStatusPaid, ExpenseStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of ExpenseStatus
func (s ExpenseStatus) String() string {
	return string(s)
}

// Expense represents a society expense awaiting approval and settlement
type Expense struct {
	shared.TenantAggregateRoot
	ExpenseNumber  string          `json:"expense_number"`
	AccountHeadID  uuid.UUID       `json:"account_head_id"`
	FundCategoryID *uuid.UUID      `json:"fund_category_id"`
	VendorID       *uuid.UUID      `json:"vendor_id"`
	ExpenseDate    time.Time       `json:"expense_date"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	InvoiceNumber  string          `json:"invoice_number"`
	InvoiceURL     string          `json:"invoice_url"`
	PaymentStatus  ExpenseStatus   `json:"payment_status"`
	ApprovedBy     *uuid.UUID      `json:"approved_by"`
	ApprovalDate   *time.Time      `json:"approval_date"`
	Deleted        bool            `json:"deleted"`
}

// NewExpenseNumber generates a human-readable expense number of the form
// EXP-<year>-<8 hex>. Uniqueness is enforced by the caller via a bounded
// retry against the store.
func NewExpenseNumber(year int) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("EXP-%d-%s", year, suffix)
}

// NewExpense creates a new expense in PENDING status
func NewExpense(
	tenantID uuid.UUID,
	expenseNumber string,
	accountHeadID uuid.UUID,
	expenseDate time.Time,
	amount decimal.Decimal,
	description string,
) (*Expense, error) {
	if expenseNumber == "" {
		return nil, shared.NewDomainError("INVALID_EXPENSE_NUMBER", "Expense number cannot be empty")
	}
	if accountHeadID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_HEAD", "Account head ID cannot be empty")
	}
	if expenseDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_EXPENSE_DATE", "Expense date is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}

	return &Expense{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ExpenseNumber:       expenseNumber,
		AccountHeadID:       accountHeadID,
		ExpenseDate:         expenseDate,
		Amount:              amount,
		Description:         description,
		PaymentStatus:       ExpenseStatusPending,
	}, nil
}

// Approve transitions the expense to PAID and stamps the approver.
// Re-approving an already-terminal expense is permitted; the transition
// simply re-stamps the approver and date.
func (e *Expense) Approve(approvedBy uuid.UUID) {
	now := time.Now()
	e.PaymentStatus = ExpenseStatusPaid
	e.ApprovedBy = &approvedBy
	e.ApprovalDate = &now
	e.IncrementVersion()
}

// Reject transitions the expense to REJECTED and stamps the approver
func (e *Expense) Reject(rejectedBy uuid.UUID) {
	now := time.Now()
	e.PaymentStatus = ExpenseStatusRejected
	e.ApprovedBy = &rejectedBy
	e.ApprovalDate = &now
	e.IncrementVersion()
}

// SettleByVendorPayment force-transitions the expense to PAID when a linked
// vendor payment completes, regardless of its prior approval state.
func (e *Expense) SettleByVendorPayment() {
	e.PaymentStatus = ExpenseStatusPaid
	e.IncrementVersion()
}

// Update performs a full rewrite of the expense's mutable fields
func (e *Expense) Update(
	accountHeadID uuid.UUID,
	fundCategoryID, vendorID *uuid.UUID,
	expenseDate time.Time,
	amount decimal.Decimal,
	description, invoiceNumber, invoiceURL string,
) error {
	if accountHeadID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACCOUNT_HEAD", "Account head ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}

	e.AccountHeadID = accountHeadID
	e.FundCategoryID = fundCategoryID
	e.VendorID = vendorID
	e.ExpenseDate = expenseDate
	e.Amount = amount
	e.Description = description
	e.InvoiceNumber = invoiceNumber
	e.InvoiceURL = invoiceURL
	e.IncrementVersion()
	return nil
}

// SoftDelete flags the expense as deleted
func (e *Expense) SoftDelete() {
	e.Deleted = true
	e.IncrementVersion()
}

// IsPending returns true if the expense is awaiting approval
func (e *Expense) IsPending() bool {
	return e.PaymentStatus == ExpenseStatusPending
}
