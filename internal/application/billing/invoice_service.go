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

// maxNumberAttempts bounds the unique invoice number generation retry
const maxNumberAttempts = 10

// InvoiceService provides application-level invoice operations
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	cycleRepo   billing.BillingCycleRepository
	auditRec    audit.Recorder
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	cycleRepo billing.BillingCycleRepository,
	auditRec audit.Recorder,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		cycleRepo:   cycleRepo,
		auditRec:    auditRec,
	}
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID                uuid.UUID       `json:"id"`
	TenantID          uuid.UUID       `json:"tenant_id"`
	InvoiceNumber     string          `json:"invoice_number"`
	UnitID            uuid.UUID       `json:"unit_id"`
	BillingCycleID    *uuid.UUID      `json:"billing_cycle_id,omitempty"`
	InvoiceDate       time.Time       `json:"invoice_date"`
	DueDate           time.Time       `json:"due_date"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	LateFee           decimal.Decimal `json:"late_fee"`
	GSTAmount         decimal.Decimal `json:"gst_amount"`
	OtherCharges      decimal.Decimal `json:"other_charges"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Version           int             `json:"version"`
}

// GenerateInvoiceRequest represents a request to generate an invoice
type GenerateInvoiceRequest struct {
	UnitID         uuid.UUID       `json:"unit_id" binding:"required"`
	BillingCycleID *uuid.UUID      `json:"billing_cycle_id"`
	InvoiceDate    time.Time       `json:"invoice_date" binding:"required"`
	DueDate        time.Time       `json:"due_date" binding:"required"`
	Subtotal       decimal.Decimal `json:"subtotal" binding:"required"`
	LateFee        decimal.Decimal `json:"late_fee"`
	GSTAmount      decimal.Decimal `json:"gst_amount"`
	OtherCharges   decimal.Decimal `json:"other_charges"`
	CreatedBy      *uuid.UUID      `json:"-"`
}

// BulkGenerateInvoicesRequest generates one invoice per unit from a shared
// amount template.
type BulkGenerateInvoicesRequest struct {
	UnitIDs        []uuid.UUID     `json:"unit_ids" binding:"required,min=1"`
	BillingCycleID *uuid.UUID      `json:"billing_cycle_id"`
	InvoiceDate    time.Time       `json:"invoice_date" binding:"required"`
	DueDate        time.Time       `json:"due_date" binding:"required"`
	Subtotal       decimal.Decimal `json:"subtotal" binding:"required"`
	LateFee        decimal.Decimal `json:"late_fee"`
	GSTAmount      decimal.Decimal `json:"gst_amount"`
	OtherCharges   decimal.Decimal `json:"other_charges"`
	CreatedBy      *uuid.UUID      `json:"-"`
}

// ReviseInvoiceAmountsRequest replaces the invoice's fee components while
// preserving what has already been paid.
type ReviseInvoiceAmountsRequest struct {
	Subtotal     decimal.Decimal `json:"subtotal" binding:"required"`
	LateFee      decimal.Decimal `json:"late_fee"`
	GSTAmount    decimal.Decimal `json:"gst_amount"`
	OtherCharges decimal.Decimal `json:"other_charges"`
}

// ForceInvoiceStatusRequest sets an invoice's status directly
type ForceInvoiceStatusRequest struct {
	Status string     `json:"status" binding:"required"`
	Reason string     `json:"reason"`
	UserID *uuid.UUID `json:"-"`
}

// InvoiceListFilter defines filtering options for invoice list queries
type InvoiceListFilter struct {
	Search         string     `form:"search"`
	UnitID         *uuid.UUID `form:"unit_id"`
	BillingCycleID *uuid.UUID `form:"billing_cycle_id"`
	Status         string     `form:"status"`
	FromDate       *time.Time `form:"from_date"`
	ToDate         *time.Time `form:"to_date"`
	Page           int        `form:"page"`
	PageSize       int        `form:"page_size"`
	OrderBy        string     `form:"order_by"`
	OrderDir       string     `form:"order_dir"`
}

// Generate creates a new invoice with a generated unique invoice number
func (s *InvoiceService) Generate(ctx context.Context, tenantID uuid.UUID, req GenerateInvoiceRequest) (*InvoiceResponse, error) {
	if req.BillingCycleID != nil {
		if _, err := s.cycleRepo.FindByIDForTenant(ctx, tenantID, *req.BillingCycleID); err != nil {
			return nil, shared.NewDomainError("INVALID_BILLING_CYCLE", "Billing cycle not found")
		}
	}

	invoice, err := s.buildInvoice(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.record(ctx, tenantID, req.CreatedBy, audit.EventInvoiceGenerated, invoice.ID, map[string]any{
		"invoice_number": invoice.InvoiceNumber,
		"total_amount":   invoice.TotalAmount.String(),
	})

	return toInvoiceResponse(invoice), nil
}

// BulkGenerate creates one invoice per unit from a shared amount template.
// All invoices are built and validated first, then written in a single
// transaction; any failure aborts the whole batch.
func (s *InvoiceService) BulkGenerate(ctx context.Context, tenantID uuid.UUID, req BulkGenerateInvoicesRequest) ([]InvoiceResponse, error) {
	if len(req.UnitIDs) == 0 {
		return nil, shared.NewDomainError("EMPTY_BATCH", "At least one unit is required")
	}
	if req.BillingCycleID != nil {
		if _, err := s.cycleRepo.FindByIDForTenant(ctx, tenantID, *req.BillingCycleID); err != nil {
			return nil, shared.NewDomainError("INVALID_BILLING_CYCLE", "Billing cycle not found")
		}
	}

	invoices := make([]*billing.Invoice, 0, len(req.UnitIDs))
	for _, unitID := range req.UnitIDs {
		invoice, err := s.buildInvoice(ctx, tenantID, GenerateInvoiceRequest{
			UnitID:         unitID,
			BillingCycleID: req.BillingCycleID,
			InvoiceDate:    req.InvoiceDate,
			DueDate:        req.DueDate,
			Subtotal:       req.Subtotal,
			LateFee:        req.LateFee,
			GSTAmount:      req.GSTAmount,
			OtherCharges:   req.OtherCharges,
			CreatedBy:      req.CreatedBy,
		})
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}

	if err := s.invoiceRepo.SaveAll(ctx, invoices); err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		s.record(ctx, tenantID, req.CreatedBy, audit.EventInvoiceGenerated, invoice.ID, map[string]any{
			"invoice_number": invoice.InvoiceNumber,
			"total_amount":   invoice.TotalAmount.String(),
		})
		responses = append(responses, *toInvoiceResponse(invoice))
	}

	return responses, nil
}

func (s *InvoiceService) buildInvoice(ctx context.Context, tenantID uuid.UUID, req GenerateInvoiceRequest) (*billing.Invoice, error) {
	invoiceNumber, err := s.generateNumber(ctx, tenantID, req.InvoiceDate.Year())
	if err != nil {
		return nil, err
	}

	invoice, err := billing.NewInvoice(
		tenantID,
		invoiceNumber,
		req.UnitID,
		req.BillingCycleID,
		req.InvoiceDate,
		req.DueDate,
		req.Subtotal,
		req.LateFee,
		req.GSTAmount,
		req.OtherCharges,
	)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		invoice.SetCreatedBy(*req.CreatedBy)
	}
	return invoice, nil
}

func (s *InvoiceService) generateNumber(ctx context.Context, tenantID uuid.UUID, year int) (string, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		candidate := billing.NewInvoiceNumber(year)
		exists, err := s.invoiceRepo.ExistsByNumber(ctx, tenantID, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", shared.NewDomainError("NUMBER_GENERATION_EXHAUSTED", "Could not generate a unique invoice number")
}

// Get gets an invoice by ID
func (s *InvoiceService) Get(ctx context.Context, tenantID, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// List lists invoices with filtering
func (s *InvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	domainFilter := billing.InvoiceFilter{
		UnitID:         filter.UnitID,
		BillingCycleID: filter.BillingCycleID,
		FromDate:       filter.FromDate,
		ToDate:         filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir

	if filter.Status != "" {
		status, err := billing.ParseInvoiceStatus(filter.Status)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Status = &status
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return nil, 0, shared.NewDomainError("INVALID_DATE_RANGE", "From date cannot be after to date")
	}

	invoices, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		responses[i] = *toInvoiceResponse(&inv)
	}
	return responses, total, nil
}

// ListDefaulters lists invoices past their due date with an open balance
func (s *InvoiceService) ListDefaulters(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]InvoiceResponse, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	invoices, err := s.invoiceRepo.FindDefaulters(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		responses[i] = *toInvoiceResponse(&inv)
	}
	return responses, nil
}

// ListOutstanding lists invoices with any open balance
func (s *InvoiceService) ListOutstanding(ctx context.Context, tenantID uuid.UUID) ([]InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.FindOutstanding(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		responses[i] = *toInvoiceResponse(&inv)
	}
	return responses, nil
}

// ReviseAmounts replaces an invoice's fee components. What has already been
// paid stays paid; the outstanding amount and status are recomputed.
func (s *InvoiceService) ReviseAmounts(ctx context.Context, tenantID, id uuid.UUID, req ReviseInvoiceAmountsRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := invoice.ReviseAmounts(req.Subtotal, req.LateFee, req.GSTAmount, req.OtherCharges); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	s.record(ctx, tenantID, nil, audit.EventInvoiceRevised, invoice.ID, map[string]any{
		"invoice_number": invoice.InvoiceNumber,
		"total_amount":   invoice.TotalAmount.String(),
	})

	return toInvoiceResponse(invoice), nil
}

// ForceStatus sets an invoice's status directly, bypassing derivation
func (s *InvoiceService) ForceStatus(ctx context.Context, tenantID, id uuid.UUID, req ForceInvoiceStatusRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	status, err := billing.ParseInvoiceStatus(req.Status)
	if err != nil {
		return nil, err
	}

	if err := invoice.ForceStatus(status); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	s.record(ctx, tenantID, req.UserID, audit.EventInvoiceStatusForced, invoice.ID, map[string]any{
		"invoice_number": invoice.InvoiceNumber,
		"status":         status.String(),
		"reason":         req.Reason,
	})

	return toInvoiceResponse(invoice), nil
}

// SetDueDate moves an invoice's due date and re-derives the status
func (s *InvoiceService) SetDueDate(ctx context.Context, tenantID, id uuid.UUID, dueDate time.Time) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := invoice.SetDueDate(dueDate); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	return toInvoiceResponse(invoice), nil
}

// Delete soft-deletes an invoice
func (s *InvoiceService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}

	invoice.SoftDelete()
	return s.invoiceRepo.Save(ctx, invoice)
}

func (s *InvoiceService) record(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, code string, entityID uuid.UUID, metadata map[string]any) {
	event := audit.NewEvent(tenantID, actorID, code, "Invoice", &entityID, metadata)
	if err := s.auditRec.Record(ctx, event); err != nil {
		logger.L(ctx).Warn("audit record failed", zap.String("event_code", code), zap.Error(err))
	}
}

func toInvoiceResponse(inv *billing.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:                inv.ID,
		TenantID:          inv.TenantID,
		InvoiceNumber:     inv.InvoiceNumber,
		UnitID:            inv.UnitID,
		BillingCycleID:    inv.BillingCycleID,
		InvoiceDate:       inv.InvoiceDate,
		DueDate:           inv.DueDate,
		Subtotal:          inv.Subtotal,
		LateFee:           inv.LateFee,
		GSTAmount:         inv.GSTAmount,
		OtherCharges:      inv.OtherCharges,
		TotalAmount:       inv.TotalAmount,
		OutstandingAmount: inv.OutstandingAmount,
		PaidAmount:        inv.PaidAmount(),
		Status:            inv.Status.String(),
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
		Version:           inv.Version,
	}
}
