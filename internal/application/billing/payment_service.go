package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/audit"
	"github.com/societyhub/backend/internal/domain/billing"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// PaymentService provides application-level invoice payment operations
type PaymentService struct {
	paymentRepo billing.PaymentRepository
	invoiceRepo billing.InvoiceRepository
	auditRec    audit.Recorder
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo billing.PaymentRepository,
	invoiceRepo billing.InvoiceRepository,
	auditRec audit.Recorder,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		auditRec:    auditRec,
	}
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID             uuid.UUID       `json:"id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	BillID         *uuid.UUID      `json:"bill_id,omitempty"`
	InvoiceID      *uuid.UUID      `json:"invoice_id,omitempty"`
	UnitID         *uuid.UUID      `json:"unit_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Mode           string          `json:"mode"`
	PaymentStatus  string          `json:"payment_status"`
	TransactionRef string          `json:"transaction_ref"`
	ReceiptURL     string          `json:"receipt_url"`
	PaidAt         time.Time       `json:"paid_at"`
	RefundedAt     *time.Time      `json:"refunded_at,omitempty"`
	RefundReason   string          `json:"refund_reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// RecordCashPaymentRequest records a cash payment against an invoice
type RecordCashPaymentRequest struct {
	InvoiceID      uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	TransactionRef string          `json:"transaction_ref"`
	CreatedBy      *uuid.UUID      `json:"-"`
}

// RecordChequePaymentRequest records a cheque payment against an invoice
type RecordChequePaymentRequest struct {
	InvoiceID      uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	ChequeNumber   string          `json:"cheque_number"`
	TransactionRef string          `json:"transaction_ref"`
	CreatedBy      *uuid.UUID      `json:"-"`
}

// RefundPaymentRequest refunds an invoice payment
type RefundPaymentRequest struct {
	Reason    string     `json:"reason" binding:"required"`
	CreatedBy *uuid.UUID `json:"-"`
}

// PaymentListFilter defines filtering options for payment list queries
type PaymentListFilter struct {
	Search    string     `form:"search"`
	InvoiceID *uuid.UUID `form:"invoice_id"`
	BillID    *uuid.UUID `form:"bill_id"`
	UnitID    *uuid.UUID `form:"unit_id"`
	Status    string     `form:"status"`
	FromDate  *time.Time `form:"from_date"`
	ToDate    *time.Time `form:"to_date"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir"`
}

// ReceiptResponse resolves a payment's receipt
type ReceiptResponse struct {
	PaymentID      uuid.UUID       `json:"payment_id"`
	ReceiptURL     string          `json:"receipt_url"`
	Amount         decimal.Decimal `json:"amount"`
	Mode           string          `json:"mode"`
	TransactionRef string          `json:"transaction_ref"`
	PaidAt         time.Time       `json:"paid_at"`
}

// RecordCashPayment records a cash payment against an invoice. An empty
// transaction reference gets a synthesized CASH reference.
func (s *PaymentService) RecordCashPayment(ctx context.Context, tenantID uuid.UUID, req RecordCashPaymentRequest) (*PaymentResponse, error) {
	ref := req.TransactionRef
	if ref == "" {
		ref = billing.CashReference()
	}
	return s.recordInvoicePayment(ctx, tenantID, req.InvoiceID, req.Amount, billing.PaymentModeCash, ref, req.CreatedBy)
}

// RecordChequePayment records a cheque payment against an invoice. An empty
// transaction reference gets a CHQ reference derived from the cheque number.
func (s *PaymentService) RecordChequePayment(ctx context.Context, tenantID uuid.UUID, req RecordChequePaymentRequest) (*PaymentResponse, error) {
	ref := req.TransactionRef
	if ref == "" {
		ref = billing.ChequeReference(req.ChequeNumber)
	}
	return s.recordInvoicePayment(ctx, tenantID, req.InvoiceID, req.Amount, billing.PaymentModeCheque, ref, req.CreatedBy)
}

// recordInvoicePayment is the shared settlement path. Checks run in a fixed
// order: invoice existence, amount validity, overpayment, then duplicate
// transaction reference.
func (s *PaymentService) recordInvoicePayment(
	ctx context.Context,
	tenantID uuid.UUID,
	invoiceID uuid.UUID,
	amount decimal.Decimal,
	mode billing.PaymentMode,
	transactionRef string,
	createdBy *uuid.UUID,
) (*PaymentResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(invoice.OutstandingAmount) {
		return nil, shared.NewDomainError("EXCEEDS_OUTSTANDING", "Payment amount exceeds the outstanding amount")
	}

	exists, err := s.paymentRepo.ExistsByTransactionRef(ctx, tenantID, transactionRef)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_TRANSACTION_REF", "Transaction reference has already been used")
	}

	payment, err := billing.NewInvoicePayment(tenantID, invoice.ID, invoice.UnitID, amount, mode, transactionRef)
	if err != nil {
		return nil, err
	}
	if createdBy != nil {
		payment.SetCreatedBy(*createdBy)
	}

	if err := invoice.ApplyPayment(amount); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	s.record(ctx, tenantID, createdBy, audit.EventPaymentRecorded, payment.ID, map[string]any{
		"invoice_id":      invoice.ID.String(),
		"amount":          amount.String(),
		"mode":            mode.String(),
		"transaction_ref": transactionRef,
	})

	return toPaymentResponse(payment), nil
}

// Refund refunds an invoice payment and restores the invoice's outstanding
// balance.
func (s *PaymentService) Refund(ctx context.Context, tenantID, paymentID uuid.UUID, req RefundPaymentRequest) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByIDForTenant(ctx, tenantID, paymentID)
	if err != nil {
		return nil, err
	}

	if err := payment.Refund(req.Reason); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, *payment.InvoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.ReversePayment(payment.Amount); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	s.record(ctx, tenantID, req.CreatedBy, audit.EventPaymentRefunded, payment.ID, map[string]any{
		"invoice_id": invoice.ID.String(),
		"amount":     payment.Amount.String(),
		"reason":     req.Reason,
	})

	return toPaymentResponse(payment), nil
}

// Get gets a payment by ID
func (s *PaymentService) Get(ctx context.Context, tenantID, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// GetReceipt resolves a payment's receipt
func (s *PaymentService) GetReceipt(ctx context.Context, tenantID, id uuid.UUID) (*ReceiptResponse, error) {
	payment, err := s.paymentRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	return &ReceiptResponse{
		PaymentID:      payment.ID,
		ReceiptURL:     payment.ReceiptURL,
		Amount:         payment.Amount,
		Mode:           payment.Mode.String(),
		TransactionRef: payment.TransactionRef,
		PaidAt:         payment.PaidAt,
	}, nil
}

// List lists payments with filtering
func (s *PaymentService) List(ctx context.Context, tenantID uuid.UUID, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	domainFilter := billing.PaymentFilter{
		InvoiceID: filter.InvoiceID,
		BillID:    filter.BillID,
		UnitID:    filter.UnitID,
		FromDate:  filter.FromDate,
		ToDate:    filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir

	if filter.Status != "" {
		status := billing.PaymentStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Payment status is not valid")
		}
		domainFilter.Status = &status
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return nil, 0, shared.NewDomainError("INVALID_DATE_RANGE", "From date cannot be after to date")
	}

	payments, err := s.paymentRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.paymentRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = *toPaymentResponse(&p)
	}
	return responses, total, nil
}

// ListByInvoice lists payments recorded against an invoice
func (s *PaymentService) ListByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID, page, pageSize int) ([]PaymentResponse, int64, error) {
	return s.List(ctx, tenantID, PaymentListFilter{InvoiceID: &invoiceID, Page: page, PageSize: pageSize})
}

// ListByUnit lists payments made for a unit
func (s *PaymentService) ListByUnit(ctx context.Context, tenantID, unitID uuid.UUID, page, pageSize int) ([]PaymentResponse, int64, error) {
	return s.List(ctx, tenantID, PaymentListFilter{UnitID: &unitID, Page: page, PageSize: pageSize})
}

func (s *PaymentService) record(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, code string, entityID uuid.UUID, metadata map[string]any) {
	event := audit.NewEvent(tenantID, actorID, code, "Payment", &entityID, metadata)
	if err := s.auditRec.Record(ctx, event); err != nil {
		logger.L(ctx).Warn("audit record failed", zap.String("event_code", code), zap.Error(err))
	}
}

func toPaymentResponse(p *billing.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:             p.ID,
		TenantID:       p.TenantID,
		BillID:         p.BillID,
		InvoiceID:      p.InvoiceID,
		UnitID:         p.UnitID,
		Amount:         p.Amount,
		Mode:           p.Mode.String(),
		PaymentStatus:  p.PaymentStatus.String(),
		TransactionRef: p.TransactionRef,
		ReceiptURL:     p.ReceiptURL,
		PaidAt:         p.PaidAt,
		RefundedAt:     p.RefundedAt,
		RefundReason:   p.RefundReason,
		CreatedAt:      p.CreatedAt,
	}
}
