// Package audit defines the audit trail consumed as a side-effect sink by
// the billing and accounting services. Recording is fire-and-forget from
// the caller's perspective: a failed write is logged, never propagated.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event codes emitted by the billing and accounting services
const (
	EventLedgerEntryCreated   = "LEDGER_ENTRY_CREATED"
	EventLedgerEntryUpdated   = "LEDGER_ENTRY_UPDATED"
	EventLedgerEntryDeleted   = "LEDGER_ENTRY_DELETED"
	EventExpenseCreated       = "EXPENSE_CREATED"
	EventExpenseApproved      = "EXPENSE_APPROVED"
	EventExpenseRejected      = "EXPENSE_REJECTED"
	EventVendorPaymentCreated = "VENDOR_PAYMENT_CREATED"
	EventInvoiceGenerated     = "INVOICE_GENERATED"
	EventInvoiceRevised       = "INVOICE_REVISED"
	EventInvoiceStatusForced  = "INVOICE_STATUS_FORCED"
	EventPaymentRecorded      = "PAYMENT_RECORDED"
	EventPaymentRefunded      = "PAYMENT_REFUNDED"
	EventGatewayInitiated     = "GATEWAY_TXN_INITIATED"
	EventGatewayVerified      = "GATEWAY_TXN_VERIFIED"
	EventGatewayFailed        = "GATEWAY_TXN_FAILED"
)

// Event is a single audit trail entry
type Event struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	ActorID    *uuid.UUID
	EventCode  string
	EntityType string
	EntityID   *uuid.UUID
	Metadata   map[string]any
	OccurredAt time.Time
}

// NewEvent creates an audit event stamped with the current time
func NewEvent(tenantID uuid.UUID, actorID *uuid.UUID, eventCode, entityType string, entityID *uuid.UUID, metadata map[string]any) Event {
	return Event{
		ID:         uuid.New(),
		TenantID:   tenantID,
		ActorID:    actorID,
		EventCode:  eventCode,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
		OccurredAt: time.Now(),
	}
}

// Recorder persists audit events
type Recorder interface {
	Record(ctx context.Context, event Event) error
}
