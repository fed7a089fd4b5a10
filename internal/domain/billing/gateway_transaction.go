package billing

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/shared"
)

// GatewayProvider identifies the payment gateway provider
type GatewayProvider string

const (
	// GatewayProviderManualSimulator is the built-in simulated provider.
	// Verification is performed by an operator, not a network callback.
	GatewayProviderManualSimulator GatewayProvider = "MANUAL_SIMULATOR"
)

// GatewayStatus represents the status of a gateway transaction
type GatewayStatus string

const (
	GatewayStatusCreated GatewayStatus = "CREATED"
	GatewayStatusSuccess GatewayStatus = "SUCCESS"
	GatewayStatusFailed  GatewayStatus = "FAILED"
)

// IsValid checks if the status is a valid GatewayStatus
func (s GatewayStatus) IsValid() bool {
	switch s {
	case GatewayStatusCreated, GatewayStatusSuccess, GatewayStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of GatewayStatus
func (s GatewayStatus) String() string {
	return string(s)
}

// DefaultFailureReason is stamped on a failed verification when the caller
// supplies no reason.
const DefaultFailureReason = "Verification failed"

// CheckoutExpiry is the advisory validity window of a checkout session.
// It is informational only; no background sweep enforces it.
const CheckoutExpiry = 15 * time.Minute

// NewGatewayTransactionRef generates a transaction reference of the form
// PGTXN-<16 hex>
func NewGatewayTransactionRef() string {
	return "PGTXN-" + randomHex(8)
}

// NewGatewayOrderID generates a gateway order id of the form ORD-<12 hex>
func NewGatewayOrderID() string {
	return "ORD-" + randomHex(6)
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; fall back to uuid
		return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:n*2]
	}
	return strings.ToUpper(hex.EncodeToString(b))
}

// GatewayTransaction tracks a provider-mediated payment attempt
// independently of the settled Payment record. Transitions are one-way:
// CREATED -> SUCCESS or CREATED -> FAILED; a SUCCESS is terminal and can
// never be downgraded.
type GatewayTransaction struct {
	shared.TenantAggregateRoot
	TransactionRef   string          `json:"transaction_ref"`
	BillID           uuid.UUID       `json:"bill_id"`
	Provider         GatewayProvider `json:"provider"`
	GatewayOrderID   string          `json:"gateway_order_id"`
	GatewayPaymentID string          `json:"gateway_payment_id"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Mode             PaymentMode     `json:"mode"`
	Status           GatewayStatus   `json:"status"`
	FailureReason    string          `json:"failure_reason"`
	InitiatedBy      uuid.UUID       `json:"initiated_by"`
	VerifiedBy       *uuid.UUID      `json:"verified_by"`
	VerifiedAt       *time.Time      `json:"verified_at"`
	CallbackPayload  string          `json:"callback_payload"`
	ExpiresAt        time.Time       `json:"expires_at"`
}

// NewGatewayTransaction creates a checkout transaction in CREATED status
// with generated reference and order identifiers.
func NewGatewayTransaction(
	tenantID, billID uuid.UUID,
	amount decimal.Decimal,
	mode PaymentMode,
	initiatedBy uuid.UUID,
) (*GatewayTransaction, error) {
	if billID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BILL", "Bill ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_MODE", "Payment mode is not valid")
	}
	if initiatedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Initiating user cannot be empty")
	}

	txn := &GatewayTransaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TransactionRef:      NewGatewayTransactionRef(),
		BillID:              billID,
		Provider:            GatewayProviderManualSimulator,
		GatewayOrderID:      NewGatewayOrderID(),
		Amount:              amount,
		Currency:            "INR",
		Mode:                mode,
		Status:              GatewayStatusCreated,
		InitiatedBy:         initiatedBy,
		ExpiresAt:           time.Now().Add(CheckoutExpiry),
	}
	txn.SetCreatedBy(initiatedBy)

	return txn, nil
}

// CheckoutToken returns the opaque token handed to the checkout page.
// It is a plain base64url encoding of the reference and order id, not a
// cryptographic credential.
func (t *GatewayTransaction) CheckoutToken() string {
	return base64.URLEncoding.EncodeToString([]byte(t.TransactionRef + ":" + t.GatewayOrderID))
}

// MarkSuccess transitions the transaction to SUCCESS. Re-marking an
// already-successful transaction is a no-op so verification stays
// idempotent.
func (t *GatewayTransaction) MarkSuccess(verifiedBy uuid.UUID, gatewayPaymentID string) error {
	if t.Status == GatewayStatusSuccess {
		return nil
	}

	now := time.Now()
	t.Status = GatewayStatusSuccess
	t.FailureReason = ""
	t.VerifiedBy = &verifiedBy
	t.VerifiedAt = &now
	if gatewayPaymentID != "" {
		t.GatewayPaymentID = gatewayPaymentID
	}
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewGatewayTransactionVerifiedEvent(t))

	return nil
}

// MarkFailed transitions the transaction to FAILED. A terminal SUCCESS
// cannot be downgraded.
func (t *GatewayTransaction) MarkFailed(reason string, verifiedBy uuid.UUID) error {
	if t.Status == GatewayStatusSuccess {
		return shared.NewDomainError("ALREADY_VERIFIED", "A successful transaction cannot be marked failed")
	}
	if reason == "" {
		reason = DefaultFailureReason
	}

	now := time.Now()
	t.Status = GatewayStatusFailed
	t.FailureReason = reason
	t.VerifiedBy = &verifiedBy
	t.VerifiedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()

	return nil
}

// RecordCallback stores the raw provider payload for forensic replay
func (t *GatewayTransaction) RecordCallback(payload string) {
	t.CallbackPayload = payload
	t.UpdatedAt = time.Now()
}

// IsExpired reports whether the advisory checkout window has passed
func (t *GatewayTransaction) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
