package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/societyhub/backend/internal/domain/shared"
)

// BillingCycleFilter defines filtering options for billing cycle queries
type BillingCycleFilter struct {
	shared.Filter
	Year   *int
	Status *CycleStatus
}

// BillingCycleRepository defines the interface for billing cycle persistence
type BillingCycleRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*BillingCycle, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter BillingCycleFilter) ([]BillingCycle, error)

	// FindCurrent returns the most recently published cycle for a tenant
	FindCurrent(ctx context.Context, tenantID uuid.UUID) (*BillingCycle, error)

	Save(ctx context.Context, cycle *BillingCycle) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter BillingCycleFilter) (int64, error)
}

// InvoiceFilter defines filtering options for invoice queries
type InvoiceFilter struct {
	shared.Filter
	UnitID         *uuid.UUID
	BillingCycleID *uuid.UUID
	Status         *InvoiceStatus
	FromDate       *time.Time
	ToDate         *time.Time
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter) ([]Invoice, error)

	// FindDefaulters returns invoices past their due date with an
	// outstanding balance
	FindDefaulters(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]Invoice, error)

	// FindOutstanding returns invoices with outstanding balance > 0
	FindOutstanding(ctx context.Context, tenantID uuid.UUID) ([]Invoice, error)

	// ExistsByNumber reports whether an invoice number is already taken
	ExistsByNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (bool, error)

	// Save creates or updates an invoice without a version check
	Save(ctx context.Context, invoice *Invoice) error

	// SaveAll writes a batch of invoices atomically; one failure rolls back
	// the whole batch
	SaveAll(ctx context.Context, invoices []*Invoice) error

	// SaveWithLock updates an invoice with an optimistic version check.
	// Returns shared.ErrConcurrencyConflict when another writer got there
	// first.
	SaveWithLock(ctx context.Context, invoice *Invoice) error

	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter) (int64, error)
}

// PaymentFilter defines filtering options for payment queries
type PaymentFilter struct {
	shared.Filter
	InvoiceID *uuid.UUID
	BillID    *uuid.UUID
	UnitID    *uuid.UUID
	Status    *PaymentStatus
	FromDate  *time.Time
	ToDate    *time.Time
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter PaymentFilter) ([]Payment, error)

	// FindByTransactionRef finds a payment by its transaction reference.
	// The reference is the tenant-scoped idempotency key.
	FindByTransactionRef(ctx context.Context, tenantID uuid.UUID, transactionRef string) (*Payment, error)

	// ExistsByTransactionRef reports whether a transaction reference has
	// already been used for the tenant
	ExistsByTransactionRef(ctx context.Context, tenantID uuid.UUID, transactionRef string) (bool, error)

	Save(ctx context.Context, payment *Payment) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter PaymentFilter) (int64, error)
}

// MaintenanceBillRepository defines the interface for maintenance bill persistence
type MaintenanceBillRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*MaintenanceBill, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]MaintenanceBill, error)
	FindByUnit(ctx context.Context, tenantID, unitID uuid.UUID) ([]MaintenanceBill, error)
	Save(ctx context.Context, bill *MaintenanceBill) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// GatewayTransactionRepository defines the interface for gateway transaction persistence
type GatewayTransactionRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*GatewayTransaction, error)
	FindByTransactionRef(ctx context.Context, tenantID uuid.UUID, transactionRef string) (*GatewayTransaction, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]GatewayTransaction, error)
	Save(ctx context.Context, txn *GatewayTransaction) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
