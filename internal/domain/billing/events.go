package billing

import (
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/shared"
)

// Event types for the billing context
const (
	EventTypeInvoicePaymentApplied      = "billing.invoice.payment_applied"
	EventTypePaymentRefunded            = "billing.payment.refunded"
	EventTypeGatewayTransactionVerified = "billing.gateway_transaction.verified"
)

// InvoicePaymentAppliedEvent is raised when a payment reduces an invoice's
// outstanding amount
type InvoicePaymentAppliedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber     string          `json:"invoice_number"`
	Amount            decimal.Decimal `json:"amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	Status            InvoiceStatus   `json:"status"`
}

// NewInvoicePaymentAppliedEvent creates a new payment-applied event
func NewInvoicePaymentAppliedEvent(inv *Invoice, amount decimal.Decimal) *InvoicePaymentAppliedEvent {
	return &InvoicePaymentAppliedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeInvoicePaymentApplied, "Invoice", inv.ID, inv.TenantID),
		InvoiceNumber:     inv.InvoiceNumber,
		Amount:            amount,
		OutstandingAmount: inv.OutstandingAmount,
		Status:            inv.Status,
	}
}

// PaymentRefundedEvent is raised when a payment is refunded
type PaymentRefundedEvent struct {
	shared.BaseDomainEvent
	TransactionRef string          `json:"transaction_ref"`
	Amount         decimal.Decimal `json:"amount"`
	RefundReason   string          `json:"refund_reason"`
}

// NewPaymentRefundedEvent creates a new refunded event
func NewPaymentRefundedEvent(p *Payment) *PaymentRefundedEvent {
	return &PaymentRefundedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRefunded, "Payment", p.ID, p.TenantID),
		TransactionRef:  p.TransactionRef,
		Amount:          p.Amount,
		RefundReason:    p.RefundReason,
	}
}

// GatewayTransactionVerifiedEvent is raised when a gateway transaction is
// verified successfully
type GatewayTransactionVerifiedEvent struct {
	shared.BaseDomainEvent
	TransactionRef string          `json:"transaction_ref"`
	Amount         decimal.Decimal `json:"amount"`
}

// NewGatewayTransactionVerifiedEvent creates a new verified event
func NewGatewayTransactionVerifiedEvent(t *GatewayTransaction) *GatewayTransactionVerifiedEvent {
	return &GatewayTransactionVerifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGatewayTransactionVerified, "GatewayTransaction", t.ID, t.TenantID),
		TransactionRef:  t.TransactionRef,
		Amount:          t.Amount,
	}
}
