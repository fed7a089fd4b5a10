package billing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/audit"
	"github.com/societyhub/backend/internal/domain/billing"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// GatewayService runs the simulated payment gateway checkout flow for
// maintenance bills: initiate, verify, provider callback.
type GatewayService struct {
	txnRepo     billing.GatewayTransactionRepository
	billRepo    billing.MaintenanceBillRepository
	paymentRepo billing.PaymentRepository
	auditRec    audit.Recorder
}

// NewGatewayService creates a new GatewayService
func NewGatewayService(
	txnRepo billing.GatewayTransactionRepository,
	billRepo billing.MaintenanceBillRepository,
	paymentRepo billing.PaymentRepository,
	auditRec audit.Recorder,
) *GatewayService {
	return &GatewayService{
		txnRepo:     txnRepo,
		billRepo:    billRepo,
		paymentRepo: paymentRepo,
		auditRec:    auditRec,
	}
}

// GatewayTransactionResponse represents a gateway transaction in API responses
type GatewayTransactionResponse struct {
	ID               uuid.UUID       `json:"id"`
	TenantID         uuid.UUID       `json:"tenant_id"`
	TransactionRef   string          `json:"transaction_ref"`
	BillID           uuid.UUID       `json:"bill_id"`
	Provider         string          `json:"provider"`
	GatewayOrderID   string          `json:"gateway_order_id"`
	GatewayPaymentID string          `json:"gateway_payment_id,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Mode             string          `json:"mode"`
	Status           string          `json:"status"`
	FailureReason    string          `json:"failure_reason,omitempty"`
	VerifiedBy       *uuid.UUID      `json:"verified_by,omitempty"`
	VerifiedAt       *time.Time      `json:"verified_at,omitempty"`
	ExpiresAt        time.Time       `json:"expires_at"`
	CreatedAt        time.Time       `json:"created_at"`
}

// InitiateCheckoutRequest starts a gateway checkout for a bill
type InitiateCheckoutRequest struct {
	BillID      uuid.UUID       `json:"bill_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Mode        string          `json:"mode" binding:"required"`
	InitiatedBy uuid.UUID       `json:"-"`
}

// InitiateCheckoutResponse carries the checkout handle back to the client
type InitiateCheckoutResponse struct {
	Transaction   GatewayTransactionResponse `json:"transaction"`
	CheckoutToken string                     `json:"checkout_token"`
}

// VerifyTransactionRequest resolves a checkout as success or failure
type VerifyTransactionRequest struct {
	Success          bool       `json:"success"`
	GatewayPaymentID string     `json:"gateway_payment_id"`
	FailureReason    string     `json:"failure_reason"`
	VerifiedBy       uuid.UUID  `json:"-"`
}

// GatewayCallbackRequest is the provider-shaped callback payload
type GatewayCallbackRequest struct {
	TransactionRef   string `json:"transaction_ref" binding:"required"`
	Status           string `json:"status" binding:"required"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	RawPayload       string `json:"-"`
}

// Initiate starts a checkout for a pending bill. The amount must match the
// bill's total due exactly; gateway payments never settle partially.
func (s *GatewayService) Initiate(ctx context.Context, tenantID uuid.UUID, req InitiateCheckoutRequest) (*InitiateCheckoutResponse, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, req.BillID)
	if err != nil {
		return nil, err
	}
	if bill.IsPaid() {
		return nil, shared.NewDomainError("ALREADY_PAID", "Bill has already been paid")
	}
	if !req.Amount.Equal(bill.TotalDue()) {
		return nil, shared.NewDomainError("AMOUNT_MISMATCH", "Checkout amount must equal the bill total due")
	}

	mode, err := billing.ParsePaymentMode(req.Mode)
	if err != nil {
		return nil, err
	}

	txn, err := billing.NewGatewayTransaction(tenantID, bill.ID, req.Amount, mode, req.InitiatedBy)
	if err != nil {
		return nil, err
	}

	if err := s.txnRepo.Save(ctx, txn); err != nil {
		return nil, err
	}

	s.record(ctx, tenantID, &req.InitiatedBy, audit.EventGatewayInitiated, txn.ID, map[string]any{
		"transaction_ref": txn.TransactionRef,
		"bill_id":         bill.ID.String(),
		"amount":          txn.Amount.String(),
	})

	return &InitiateCheckoutResponse{
		Transaction:   *toGatewayTransactionResponse(txn),
		CheckoutToken: txn.CheckoutToken(),
	}, nil
}

// Verify resolves a checkout by transaction reference. Success settles the
// bill and records the payment; re-verifying a successful transaction is a
// no-op and returns the existing result.
func (s *GatewayService) Verify(ctx context.Context, tenantID uuid.UUID, transactionRef string, req VerifyTransactionRequest) (*GatewayTransactionResponse, error) {
	txn, err := s.txnRepo.FindByTransactionRef(ctx, tenantID, transactionRef)
	if err != nil {
		return nil, err
	}

	if req.Success {
		return s.verifySuccess(ctx, tenantID, txn, req)
	}
	return s.verifyFailure(ctx, tenantID, txn, req)
}

func (s *GatewayService) verifySuccess(ctx context.Context, tenantID uuid.UUID, txn *billing.GatewayTransaction, req VerifyTransactionRequest) (*GatewayTransactionResponse, error) {
	if err := txn.MarkSuccess(req.VerifiedBy, req.GatewayPaymentID); err != nil {
		return nil, err
	}
	if err := s.txnRepo.Save(ctx, txn); err != nil {
		return nil, err
	}

	// Payment creation keys on the transaction reference so replayed
	// verifications do not double-record.
	_, err := s.paymentRepo.FindByTransactionRef(ctx, tenantID, txn.TransactionRef)
	if errors.Is(err, shared.ErrNotFound) {
		bill, billErr := s.billRepo.FindByIDForTenant(ctx, tenantID, txn.BillID)
		if billErr != nil {
			return nil, billErr
		}

		payment, payErr := billing.NewBillPayment(tenantID, bill.ID, bill.UnitID, txn.Amount, txn.Mode, txn.TransactionRef)
		if payErr != nil {
			return nil, payErr
		}
		payment.SetCreatedBy(req.VerifiedBy)
		if payErr := s.paymentRepo.Save(ctx, payment); payErr != nil {
			return nil, payErr
		}

		if !bill.IsPaid() {
			if markErr := bill.MarkPaid(); markErr != nil {
				return nil, markErr
			}
			if saveErr := s.billRepo.Save(ctx, bill); saveErr != nil {
				return nil, saveErr
			}
		}
	} else if err != nil {
		return nil, err
	}

	s.record(ctx, tenantID, &req.VerifiedBy, audit.EventGatewayVerified, txn.ID, map[string]any{
		"transaction_ref": txn.TransactionRef,
		"bill_id":         txn.BillID.String(),
	})

	return toGatewayTransactionResponse(txn), nil
}

func (s *GatewayService) verifyFailure(ctx context.Context, tenantID uuid.UUID, txn *billing.GatewayTransaction, req VerifyTransactionRequest) (*GatewayTransactionResponse, error) {
	if err := txn.MarkFailed(req.FailureReason, req.VerifiedBy); err != nil {
		return nil, err
	}
	if err := s.txnRepo.Save(ctx, txn); err != nil {
		return nil, err
	}

	s.record(ctx, tenantID, &req.VerifiedBy, audit.EventGatewayFailed, txn.ID, map[string]any{
		"transaction_ref": txn.TransactionRef,
		"reason":          txn.FailureReason,
	})

	return toGatewayTransactionResponse(txn), nil
}

// Callback ingests a provider-shaped callback. The raw payload is stored on
// the transaction before the verification outcome is applied.
func (s *GatewayService) Callback(ctx context.Context, tenantID uuid.UUID, req GatewayCallbackRequest) (*GatewayTransactionResponse, error) {
	txn, err := s.txnRepo.FindByTransactionRef(ctx, tenantID, req.TransactionRef)
	if err != nil {
		return nil, err
	}

	txn.RecordCallback(req.RawPayload)
	if err := s.txnRepo.Save(ctx, txn); err != nil {
		return nil, err
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	success := status == "SUCCESS" || status == "PAID"

	return s.Verify(ctx, tenantID, req.TransactionRef, VerifyTransactionRequest{
		Success:          success,
		GatewayPaymentID: req.GatewayPaymentID,
		FailureReason:    "Provider reported " + status,
		VerifiedBy:       txn.InitiatedBy,
	})
}

// Get gets a gateway transaction by ID
func (s *GatewayService) Get(ctx context.Context, tenantID, id uuid.UUID) (*GatewayTransactionResponse, error) {
	txn, err := s.txnRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toGatewayTransactionResponse(txn), nil
}

// GetByTransactionRef gets a gateway transaction by its reference
func (s *GatewayService) GetByTransactionRef(ctx context.Context, tenantID uuid.UUID, transactionRef string) (*GatewayTransactionResponse, error) {
	txn, err := s.txnRepo.FindByTransactionRef(ctx, tenantID, transactionRef)
	if err != nil {
		return nil, err
	}
	return toGatewayTransactionResponse(txn), nil
}

// List lists gateway transactions with pagination
func (s *GatewayService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]GatewayTransactionResponse, int64, error) {
	txns, err := s.txnRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.txnRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]GatewayTransactionResponse, len(txns))
	for i, t := range txns {
		responses[i] = *toGatewayTransactionResponse(&t)
	}
	return responses, total, nil
}

func (s *GatewayService) record(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, code string, entityID uuid.UUID, metadata map[string]any) {
	event := audit.NewEvent(tenantID, actorID, code, "GatewayTransaction", &entityID, metadata)
	if err := s.auditRec.Record(ctx, event); err != nil {
		logger.L(ctx).Warn("audit record failed", zap.String("event_code", code), zap.Error(err))
	}
}

func toGatewayTransactionResponse(t *billing.GatewayTransaction) *GatewayTransactionResponse {
	return &GatewayTransactionResponse{
		ID:               t.ID,
		TenantID:         t.TenantID,
		TransactionRef:   t.TransactionRef,
		BillID:           t.BillID,
		Provider:         string(t.Provider),
		GatewayOrderID:   t.GatewayOrderID,
		GatewayPaymentID: t.GatewayPaymentID,
		Amount:           t.Amount,
		Currency:         t.Currency,
		Mode:             t.Mode.String(),
		Status:           t.Status.String(),
		FailureReason:    t.FailureReason,
		VerifiedBy:       t.VerifiedBy,
		VerifiedAt:       t.VerifiedAt,
		ExpiresAt:        t.ExpiresAt,
		CreatedAt:        t.CreatedAt,
	}
}
