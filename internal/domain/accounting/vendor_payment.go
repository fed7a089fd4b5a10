package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/shared"
)

// VendorPaymentStatus represents the status of a vendor payment
type VendorPaymentStatus string

const (
	VendorPaymentStatusPending   VendorPaymentStatus = "PENDING"
	VendorPaymentStatusCompleted VendorPaymentStatus = "COMPLETED"
	VendorPaymentStatusFailed    VendorPaymentStatus = "FAILED"
)

// IsValid checks if the status is a valid VendorPaymentStatus
func (s VendorPaymentStatus) IsValid() bool {
	switch s {
	case VendorPaymentStatusPending, VendorPaymentStatusCompleted, VendorPaymentStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of VendorPaymentStatus
func (s VendorPaymentStatus) String() string {
	return string(s)
}

// VendorPayment records money paid out to a vendor, optionally settling
// a linked expense when it completes.
type VendorPayment struct {
	shared.TenantAggregateRoot
	VendorID             uuid.UUID           `json:"vendor_id"`
	ExpenseID            *uuid.UUID          `json:"expense_id"`
	PaymentDate          time.Time           `json:"payment_date"`
	Amount               decimal.Decimal     `json:"amount"`
	PaymentMethod        string              `json:"payment_method"`
	TransactionReference string              `json:"transaction_reference"`
	Status               VendorPaymentStatus `json:"status"`
	Deleted              bool                `json:"deleted"`
}

// NewVendorPayment creates a new vendor payment
func NewVendorPayment(
	tenantID uuid.UUID,
	vendorID uuid.UUID,
	expenseID *uuid.UUID,
	paymentDate time.Time,
	amount decimal.Decimal,
	paymentMethod string,
	transactionReference string,
	status VendorPaymentStatus,
	createdBy uuid.UUID,
) (*VendorPayment, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if paymentDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_DATE", "Payment date is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if status == "" {
		status = VendorPaymentStatusCompleted
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Vendor payment status is not valid")
	}

	vp := &VendorPayment{
		TenantAggregateRoot:  shared.NewTenantAggregateRoot(tenantID),
		VendorID:             vendorID,
		ExpenseID:            expenseID,
		PaymentDate:          paymentDate,
		Amount:               amount,
		PaymentMethod:        paymentMethod,
		TransactionReference: transactionReference,
		Status:               status,
	}
	vp.SetCreatedBy(createdBy)

	return vp, nil
}

// IsCompleted returns true if the payment has completed
func (vp *VendorPayment) IsCompleted() bool {
	return vp.Status == VendorPaymentStatusCompleted
}

// SettlesExpense returns true if completing this payment should mark the
// linked expense as paid.
func (vp *VendorPayment) SettlesExpense() bool {
	return vp.IsCompleted() && vp.ExpenseID != nil
}

// SoftDelete flags the vendor payment as deleted
func (vp *VendorPayment) SoftDelete() {
	vp.Deleted = true
	vp.IncrementVersion()
}
