package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/shared"
)

// PaymentMode represents how a payment was made
type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "CASH"
	PaymentModeCheque       PaymentMode = "CHEQUE"
	PaymentModeOnline       PaymentMode = "ONLINE"
	PaymentModeBankTransfer PaymentMode = "BANK_TRANSFER"
	PaymentModeUPI          PaymentMode = "UPI"
)

// IsValid checks if the mode is a valid PaymentMode
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeCheque, PaymentModeOnline, PaymentModeBankTransfer, PaymentModeUPI:
		return true
	}
	return false
}

// String returns the string representation of PaymentMode
func (m PaymentMode) String() string {
	return string(m)
}

// ParsePaymentMode parses a payment mode from a string, case-insensitively
func ParsePaymentMode(input string) (PaymentMode, error) {
	m := PaymentMode(strings.ToUpper(strings.TrimSpace(input)))
	if !m.IsValid() {
		return "", shared.NewDomainError("INVALID_PAYMENT_MODE", "Payment mode is not valid")
	}
	return m, nil
}

// PaymentStatus represents the settlement status of a payment
type PaymentStatus string

const (
	PaymentStatusSuccess  PaymentStatus = "SUCCESS"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusRefunded
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// PaymentReceiptURL derives the receipt URL from a payment id. The URL is
// computed before the insert so the payment and its receipt are a single
// write.
func PaymentReceiptURL(paymentID uuid.UUID) string {
	return fmt.Sprintf("receipt://payment/%s", paymentID)
}

// CashReference synthesizes a transaction reference for a cash payment
// when the caller does not supply one.
func CashReference() string {
	return "CASH-" + strings.ToUpper(uuid.New().String()[:8])
}

// ChequeReference synthesizes a transaction reference from a cheque number,
// falling back to a random suffix when the number is empty.
func ChequeReference(chequeNumber string) string {
	if strings.TrimSpace(chequeNumber) != "" {
		return "CHQ-" + strings.TrimSpace(chequeNumber)
	}
	return "CHQ-" + strings.ToUpper(uuid.New().String()[:8])
}

// Payment represents a settled payment. Exactly one of BillID/InvoiceID is
// the economic target in any given flow. TransactionRef is unique per
// tenant and acts as the idempotency guard against replayed submissions.
type Payment struct {
	shared.TenantAggregateRoot
	BillID         *uuid.UUID      `json:"bill_id"`
	InvoiceID      *uuid.UUID      `json:"invoice_id"`
	UnitID         *uuid.UUID      `json:"unit_id"`
	Amount         decimal.Decimal `json:"amount"`
	Mode           PaymentMode     `json:"mode"`
	PaymentStatus  PaymentStatus   `json:"payment_status"`
	TransactionRef string          `json:"transaction_ref"`
	ReceiptURL     string          `json:"receipt_url"`
	PaidAt         time.Time       `json:"paid_at"`
	RefundedAt     *time.Time      `json:"refunded_at"`
	RefundReason   string          `json:"refund_reason"`
	Deleted        bool            `json:"deleted"`
}

// NewInvoicePayment creates a successful payment against an invoice.
// The receipt URL is derived from the generated payment id.
func NewInvoicePayment(
	tenantID uuid.UUID,
	invoiceID, unitID uuid.UUID,
	amount decimal.Decimal,
	mode PaymentMode,
	transactionRef string,
) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_MODE", "Payment mode is not valid")
	}
	if transactionRef == "" {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_REF", "Transaction reference cannot be empty")
	}

	p := &Payment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		InvoiceID:           &invoiceID,
		Amount:              amount,
		Mode:                mode,
		PaymentStatus:       PaymentStatusSuccess,
		TransactionRef:      transactionRef,
		PaidAt:              time.Now(),
	}
	if unitID != uuid.Nil {
		p.UnitID = &unitID
	}
	p.ReceiptURL = PaymentReceiptURL(p.ID)

	return p, nil
}

// NewBillPayment creates a successful payment against a maintenance bill
// (the legacy bill flow fed by the payment gateway).
func NewBillPayment(
	tenantID uuid.UUID,
	billID, unitID uuid.UUID,
	amount decimal.Decimal,
	mode PaymentMode,
	transactionRef string,
) (*Payment, error) {
	if billID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BILL", "Bill ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_MODE", "Payment mode is not valid")
	}
	if transactionRef == "" {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_REF", "Transaction reference cannot be empty")
	}

	p := &Payment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BillID:              &billID,
		Amount:              amount,
		Mode:                mode,
		PaymentStatus:       PaymentStatusSuccess,
		TransactionRef:      transactionRef,
		PaidAt:              time.Now(),
	}
	if unitID != uuid.Nil {
		p.UnitID = &unitID
	}
	p.ReceiptURL = PaymentReceiptURL(p.ID)

	return p, nil
}

// Refund marks the payment as refunded. Only invoice-linked payments can be
// refunded through this path; refunding twice is a conflict.
func (p *Payment) Refund(reason string) error {
	if p.InvoiceID == nil {
		return shared.NewDomainError("REFUND_NOT_SUPPORTED", "Only invoice payments can be refunded")
	}
	if p.PaymentStatus == PaymentStatusRefunded {
		return shared.NewDomainError("ALREADY_REFUNDED", "Payment has already been refunded")
	}

	now := time.Now()
	p.PaymentStatus = PaymentStatusRefunded
	p.RefundedAt = &now
	p.RefundReason = reason
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPaymentRefundedEvent(p))

	return nil
}

// IsRefunded returns true if the payment has been refunded
func (p *Payment) IsRefunded() bool {
	return p.PaymentStatus == PaymentStatusRefunded
}
