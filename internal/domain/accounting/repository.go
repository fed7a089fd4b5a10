package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/shared"
)

// AccountHeadRepository defines the interface for account head persistence
type AccountHeadRepository interface {
	// FindByIDForTenant finds an account head by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*AccountHead, error)

	// FindAllForTenant finds all non-deleted account heads for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]AccountHead, error)

	// FindByType finds account heads of the given type for a tenant
	FindByType(ctx context.Context, tenantID uuid.UUID, headType HeadType) ([]AccountHead, error)

	// FindHierarchy returns all non-deleted heads ordered by name.
	// The hierarchy is presented flat; parent links are not materialized.
	FindHierarchy(ctx context.Context, tenantID uuid.UUID) ([]AccountHead, error)

	// Save creates or updates an account head
	Save(ctx context.Context, head *AccountHead) error

	// CountForTenant counts non-deleted account heads for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// FundCategoryRepository defines the interface for fund category persistence
type FundCategoryRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*FundCategory, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]FundCategory, error)
	Save(ctx context.Context, category *FundCategory) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// LedgerEntryFilter defines filtering options for ledger entry queries
type LedgerEntryFilter struct {
	shared.Filter
	AccountHeadID  *uuid.UUID
	FundCategoryID *uuid.UUID
	Type           *EntryType
	FromDate       *time.Time
	ToDate         *time.Time
}

// LedgerSummary holds the aggregate totals of a tenant's ledger
type LedgerSummary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
}

// LedgerEntryRepository defines the interface for ledger entry persistence
type LedgerEntryRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*LedgerEntry, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter LedgerEntryFilter) ([]LedgerEntry, error)
	Save(ctx context.Context, entry *LedgerEntry) error

	// SaveAll writes a batch of entries atomically; one failure rolls back
	// the whole batch
	SaveAll(ctx context.Context, entries []*LedgerEntry) error

	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter LedgerEntryFilter) (int64, error)

	// SumByType sums the amounts of non-deleted entries of the given type
	SumByType(ctx context.Context, tenantID uuid.UUID, entryType EntryType) (decimal.Decimal, error)

	// Summary returns income/expense totals and their balance for a tenant
	Summary(ctx context.Context, tenantID uuid.UUID) (*LedgerSummary, error)

	// SumByAccountHead sums entry amounts grouped by account head
	SumByAccountHead(ctx context.Context, tenantID, accountHeadID uuid.UUID) (decimal.Decimal, error)
}

// ExpenseFilter defines filtering options for expense queries
type ExpenseFilter struct {
	shared.Filter
	AccountHeadID *uuid.UUID
	VendorID      *uuid.UUID
	Status        *ExpenseStatus
	FromDate      *time.Time
	ToDate        *time.Time
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Expense, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ExpenseFilter) ([]Expense, error)
	Save(ctx context.Context, expense *Expense) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ExpenseFilter) (int64, error)

	// ExistsByNumber reports whether an expense number is already taken
	ExistsByNumber(ctx context.Context, tenantID uuid.UUID, expenseNumber string) (bool, error)

	// SumPaidByAccountHead sums PAID expense amounts for an account head
	// within a date range. A missing aggregate is returned as zero.
	SumPaidByAccountHead(ctx context.Context, tenantID, accountHeadID uuid.UUID, from, to time.Time) (decimal.Decimal, error)

	// SumPendingInRange sums PENDING expense amounts within a date range
	SumPendingInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}

// VendorFilter defines filtering options for vendor queries
type VendorFilter struct {
	shared.Filter
	VendorType *string
	Active     *bool
}

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Vendor, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter VendorFilter) ([]Vendor, error)
	Save(ctx context.Context, vendor *Vendor) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter VendorFilter) (int64, error)
}

// VendorPaymentFilter defines filtering options for vendor payment queries
type VendorPaymentFilter struct {
	shared.Filter
	VendorID  *uuid.UUID
	ExpenseID *uuid.UUID
	Status    *VendorPaymentStatus
}

// VendorPaymentRepository defines the interface for vendor payment persistence
type VendorPaymentRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*VendorPayment, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter VendorPaymentFilter) ([]VendorPayment, error)
	Save(ctx context.Context, payment *VendorPayment) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter VendorPaymentFilter) (int64, error)

	// SumCompleted sums the amounts of all completed vendor payments
	SumCompleted(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
}

// BudgetRepository defines the interface for budget persistence
type BudgetRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Budget, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Budget, error)
	FindByFinancialYear(ctx context.Context, tenantID uuid.UUID, financialYear string) ([]Budget, error)
	Save(ctx context.Context, budget *Budget) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
