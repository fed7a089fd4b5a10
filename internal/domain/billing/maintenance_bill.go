package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/shared"
)

// BillStatus represents the status of a maintenance bill
type BillStatus string

const (
	BillStatusPending BillStatus = "PENDING"
	BillStatusPaid    BillStatus = "PAID"
)

// IsValid checks if the status is a valid BillStatus
func (s BillStatus) IsValid() bool {
	return s == BillStatusPending || s == BillStatusPaid
}

// String returns the string representation of BillStatus
func (s BillStatus) String() string {
	return string(s)
}

// MaintenanceBill is the legacy per-unit monthly bill. Gateway-initiated
// payments target bills rather than invoices; a bill is settled in full
// (no partial gateway payments).
type MaintenanceBill struct {
	shared.TenantAggregateRoot
	UnitID  uuid.UUID       `json:"unit_id"`
	Month   int             `json:"month"`
	Year    int             `json:"year"`
	Amount  decimal.Decimal `json:"amount"`
	LateFee decimal.Decimal `json:"late_fee"`
	DueDate time.Time       `json:"due_date"`
	Status  BillStatus      `json:"status"`
	Deleted bool            `json:"deleted"`
}

// NewMaintenanceBill creates a new pending maintenance bill
func NewMaintenanceBill(tenantID, unitID uuid.UUID, month, year int, amount decimal.Decimal, dueDate time.Time) (*MaintenanceBill, error) {
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit ID cannot be empty")
	}
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month must be between 1 and 12")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Bill amount must be positive")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}

	return &MaintenanceBill{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UnitID:              unitID,
		Month:               month,
		Year:                year,
		Amount:              amount,
		LateFee:             decimal.Zero,
		DueDate:             dueDate,
		Status:              BillStatusPending,
	}, nil
}

// TotalDue returns the bill amount plus any late fee
func (b *MaintenanceBill) TotalDue() decimal.Decimal {
	return b.Amount.Add(b.LateFee)
}

// MarkPaid settles the bill
func (b *MaintenanceBill) MarkPaid() error {
	if b.Status == BillStatusPaid {
		return shared.NewDomainError("ALREADY_PAID", "Bill has already been paid")
	}
	b.Status = BillStatusPaid
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// IsPaid returns true if the bill has been settled
func (b *MaintenanceBill) IsPaid() bool {
	return b.Status == BillStatusPaid
}
