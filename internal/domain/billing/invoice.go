package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/shared"
)

// InvoiceStatus represents the derived status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusUnpaid        InvoiceStatus = "UNPAID"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
	InvoiceStatusOverdue       InvoiceStatus = "OVERDUE"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPartiallyPaid, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// ParseInvoiceStatus parses an invoice status from a string, case-insensitively
func ParseInvoiceStatus(input string) (InvoiceStatus, error) {
	s := InvoiceStatus(strings.ToUpper(strings.TrimSpace(input)))
	if !s.IsValid() {
		return "", shared.NewDomainError("INVALID_STATUS", "Invoice status is not valid")
	}
	return s, nil
}

// DeriveInvoiceStatus computes the invoice status as a pure function of
// the outstanding amount, the total amount, and the due date. It is applied
// after every payment and refund.
func DeriveInvoiceStatus(outstanding, total decimal.Decimal, dueDate time.Time, now time.Time) InvoiceStatus {
	switch {
	case outstanding.LessThanOrEqual(decimal.Zero):
		return InvoiceStatusPaid
	case outstanding.LessThan(total):
		return InvoiceStatusPartiallyPaid
	case dueDate.Before(truncateToDay(now)):
		return InvoiceStatusOverdue
	default:
		return InvoiceStatusUnpaid
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NewInvoiceNumber generates a human-readable invoice number of the form
// INV-<year>-<8 hex>. Uniqueness is enforced by the caller via a bounded
// retry against the store.
func NewInvoiceNumber(year int) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("INV-%d-%s", year, suffix)
}

// Invoice represents a billing document for a unit with a total amount and a
// reducing outstanding balance. Status is derived, never chosen freely,
// except through the audited ForceStatus override.
type Invoice struct {
	shared.TenantAggregateRoot
	InvoiceNumber     string          `json:"invoice_number"`
	UnitID            uuid.UUID       `json:"unit_id"`
	BillingCycleID    *uuid.UUID      `json:"billing_cycle_id"`
	InvoiceDate       time.Time       `json:"invoice_date"`
	DueDate           time.Time       `json:"due_date"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	LateFee           decimal.Decimal `json:"late_fee"`
	GSTAmount         decimal.Decimal `json:"gst_amount"`
	OtherCharges      decimal.Decimal `json:"other_charges"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	Status            InvoiceStatus   `json:"status"`
	Deleted           bool            `json:"deleted"`
}

// NewInvoice creates a new invoice. The total is the sum of its components
// and the outstanding amount starts equal to the total.
func NewInvoice(
	tenantID uuid.UUID,
	invoiceNumber string,
	unitID uuid.UUID,
	billingCycleID *uuid.UUID,
	invoiceDate, dueDate time.Time,
	subtotal, lateFee, gstAmount, otherCharges decimal.Decimal,
) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit ID cannot be empty")
	}
	if invoiceDate.IsZero() || dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Invoice date and due date are required")
	}
	if subtotal.IsNegative() || lateFee.IsNegative() || gstAmount.IsNegative() || otherCharges.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amounts cannot be negative")
	}

	total := subtotal.Add(lateFee).Add(gstAmount).Add(otherCharges)
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice total must be positive")
	}

	inv := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		InvoiceNumber:       invoiceNumber,
		UnitID:              unitID,
		BillingCycleID:      billingCycleID,
		InvoiceDate:         invoiceDate,
		DueDate:             dueDate,
		Subtotal:            subtotal,
		LateFee:             lateFee,
		GSTAmount:           gstAmount,
		OtherCharges:        otherCharges,
		TotalAmount:         total,
		OutstandingAmount:   total,
	}
	inv.Status = DeriveInvoiceStatus(inv.OutstandingAmount, inv.TotalAmount, inv.DueDate, time.Now())

	return inv, nil
}

// ApplyPayment reduces the outstanding amount and re-derives the status.
// Overpayment is never permitted.
func (inv *Invoice) ApplyPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(inv.OutstandingAmount) {
		return shared.NewDomainError("EXCEEDS_OUTSTANDING",
			fmt.Sprintf("Payment amount %s exceeds outstanding amount %s", amount.StringFixed(2), inv.OutstandingAmount.StringFixed(2)))
	}

	inv.OutstandingAmount = inv.OutstandingAmount.Sub(amount)
	inv.Status = DeriveInvoiceStatus(inv.OutstandingAmount, inv.TotalAmount, inv.DueDate, time.Now())
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoicePaymentAppliedEvent(inv, amount))

	return nil
}

// ReversePayment adds a refunded payment's amount back to the outstanding
// balance and re-derives the status. The amount is not clamped at the total;
// under sequential use reversals never exceed what was paid.
func (inv *Invoice) ReversePayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Reversal amount must be positive")
	}

	inv.OutstandingAmount = inv.OutstandingAmount.Add(amount)
	inv.Status = DeriveInvoiceStatus(inv.OutstandingAmount, inv.TotalAmount, inv.DueDate, time.Now())
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// ReviseAmounts recomputes the invoice's fee components. The amount already
// paid is preserved; a revision that would push the paid amount above the
// new total is rejected. Status is re-derived, never overridden here.
func (inv *Invoice) ReviseAmounts(subtotal, lateFee, gstAmount, otherCharges decimal.Decimal) error {
	if subtotal.IsNegative() || lateFee.IsNegative() || gstAmount.IsNegative() || otherCharges.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Invoice amounts cannot be negative")
	}

	paid := inv.TotalAmount.Sub(inv.OutstandingAmount)
	newTotal := subtotal.Add(lateFee).Add(gstAmount).Add(otherCharges)
	if newTotal.LessThan(paid) {
		return shared.NewDomainError("INVALID_AMOUNT",
			fmt.Sprintf("Revised total %s is below the amount already paid %s", newTotal.StringFixed(2), paid.StringFixed(2)))
	}

	inv.Subtotal = subtotal
	inv.LateFee = lateFee
	inv.GSTAmount = gstAmount
	inv.OtherCharges = otherCharges
	inv.TotalAmount = newTotal
	inv.OutstandingAmount = newTotal.Sub(paid)
	inv.Status = DeriveInvoiceStatus(inv.OutstandingAmount, inv.TotalAmount, inv.DueDate, time.Now())
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// ForceStatus sets the status directly, bypassing derivation. This is an
// administrative escape hatch; the next payment or refund re-derives the
// status and the override does not survive it.
func (inv *Invoice) ForceStatus(status InvoiceStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invoice status is not valid")
	}
	inv.Status = status
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// SetDueDate updates the due date and re-derives the status
func (inv *Invoice) SetDueDate(dueDate time.Time) error {
	if dueDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Due date is required")
	}
	inv.DueDate = dueDate
	inv.Status = DeriveInvoiceStatus(inv.OutstandingAmount, inv.TotalAmount, inv.DueDate, time.Now())
	inv.IncrementVersion()
	return nil
}

// SoftDelete flags the invoice as deleted
func (inv *Invoice) SoftDelete() {
	inv.Deleted = true
	inv.IncrementVersion()
}

// PaidAmount returns the portion of the total already settled
func (inv *Invoice) PaidAmount() decimal.Decimal {
	return inv.TotalAmount.Sub(inv.OutstandingAmount)
}

// IsPaid returns true if nothing remains outstanding
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}
