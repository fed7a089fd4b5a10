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

// MaintenanceBillService provides application-level maintenance bill
// operations, including the direct (non-gateway) settlement path.
type MaintenanceBillService struct {
	billRepo    billing.MaintenanceBillRepository
	paymentRepo billing.PaymentRepository
	auditRec    audit.Recorder
}

// NewMaintenanceBillService creates a new MaintenanceBillService
func NewMaintenanceBillService(
	billRepo billing.MaintenanceBillRepository,
	paymentRepo billing.PaymentRepository,
	auditRec audit.Recorder,
) *MaintenanceBillService {
	return &MaintenanceBillService{
		billRepo:    billRepo,
		paymentRepo: paymentRepo,
		auditRec:    auditRec,
	}
}

// MaintenanceBillResponse represents a maintenance bill in API responses
type MaintenanceBillResponse struct {
	ID        uuid.UUID       `json:"id"`
	TenantID  uuid.UUID       `json:"tenant_id"`
	UnitID    uuid.UUID       `json:"unit_id"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	Amount    decimal.Decimal `json:"amount"`
	LateFee   decimal.Decimal `json:"late_fee"`
	TotalDue  decimal.Decimal `json:"total_due"`
	DueDate   time.Time       `json:"due_date"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateMaintenanceBillRequest represents a request to raise a bill
type CreateMaintenanceBillRequest struct {
	UnitID    uuid.UUID       `json:"unit_id" binding:"required"`
	Month     int             `json:"month" binding:"required,min=1,max=12"`
	Year      int             `json:"year" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	DueDate   time.Time       `json:"due_date" binding:"required"`
	CreatedBy *uuid.UUID      `json:"-"`
}

// RecordBillPaymentRequest settles a maintenance bill outside the gateway
type RecordBillPaymentRequest struct {
	Mode           string     `json:"mode" binding:"required"`
	TransactionRef string     `json:"transaction_ref" binding:"required"`
	CreatedBy      *uuid.UUID `json:"-"`
}

// MaintenanceBillListFilter defines filtering options for bill list queries
type MaintenanceBillListFilter struct {
	UnitID   *uuid.UUID `form:"unit_id"`
	Status   string     `form:"status"`
	Month    *int       `form:"month"`
	Year     *int       `form:"year"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir"`
}

// Create raises a new pending maintenance bill for a unit
func (s *MaintenanceBillService) Create(ctx context.Context, tenantID uuid.UUID, req CreateMaintenanceBillRequest) (*MaintenanceBillResponse, error) {
	bill, err := billing.NewMaintenanceBill(tenantID, req.UnitID, req.Month, req.Year, req.Amount, req.DueDate)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		bill.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	return toMaintenanceBillResponse(bill), nil
}

// Get gets a maintenance bill by ID
func (s *MaintenanceBillService) Get(ctx context.Context, tenantID, id uuid.UUID) (*MaintenanceBillResponse, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toMaintenanceBillResponse(bill), nil
}

// List lists maintenance bills with filtering
func (s *MaintenanceBillService) List(ctx context.Context, tenantID uuid.UUID, filter MaintenanceBillListFilter) ([]MaintenanceBillResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  map[string]interface{}{},
	}
	if filter.UnitID != nil {
		domainFilter.Filters["unit_id"] = *filter.UnitID
	}
	if filter.Status != "" {
		status := billing.BillStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Bill status is not valid")
		}
		domainFilter.Filters["status"] = status
	}
	if filter.Month != nil {
		domainFilter.Filters["month"] = *filter.Month
	}
	if filter.Year != nil {
		domainFilter.Filters["year"] = *filter.Year
	}

	bills, err := s.billRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.billRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]MaintenanceBillResponse, len(bills))
	for i, b := range bills {
		responses[i] = *toMaintenanceBillResponse(&b)
	}
	return responses, total, nil
}

// ListByUnit lists a unit's bills, most recent period first
func (s *MaintenanceBillService) ListByUnit(ctx context.Context, tenantID, unitID uuid.UUID) ([]MaintenanceBillResponse, error) {
	bills, err := s.billRepo.FindByUnit(ctx, tenantID, unitID)
	if err != nil {
		return nil, err
	}

	responses := make([]MaintenanceBillResponse, len(bills))
	for i, b := range bills {
		responses[i] = *toMaintenanceBillResponse(&b)
	}
	return responses, nil
}

// RecordPayment settles a pending bill in full outside the gateway flow.
// A bill that is already PAID or a reused transaction reference is rejected.
func (s *MaintenanceBillService) RecordPayment(ctx context.Context, tenantID, billID uuid.UUID, req RecordBillPaymentRequest) (*PaymentResponse, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}
	if bill.IsPaid() {
		return nil, shared.NewDomainError("ALREADY_PAID", "Bill has already been paid")
	}

	mode, err := billing.ParsePaymentMode(req.Mode)
	if err != nil {
		return nil, err
	}

	exists, err := s.paymentRepo.ExistsByTransactionRef(ctx, tenantID, req.TransactionRef)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_TRANSACTION_REF", "Transaction reference has already been used")
	}

	payment, err := billing.NewBillPayment(tenantID, bill.ID, bill.UnitID, bill.TotalDue(), mode, req.TransactionRef)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		payment.SetCreatedBy(*req.CreatedBy)
	}

	if err := bill.MarkPaid(); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	event := audit.NewEvent(tenantID, req.CreatedBy, audit.EventPaymentRecorded, "Payment", &payment.ID, map[string]any{
		"bill_id":         bill.ID.String(),
		"amount":          payment.Amount.String(),
		"mode":            mode.String(),
		"transaction_ref": req.TransactionRef,
	})
	if err := s.auditRec.Record(ctx, event); err != nil {
		logger.L(ctx).Warn("audit record failed", zap.String("event_code", audit.EventPaymentRecorded), zap.Error(err))
	}

	return toPaymentResponse(payment), nil
}

func toMaintenanceBillResponse(b *billing.MaintenanceBill) *MaintenanceBillResponse {
	return &MaintenanceBillResponse{
		ID:        b.ID,
		TenantID:  b.TenantID,
		UnitID:    b.UnitID,
		Month:     b.Month,
		Year:      b.Year,
		Amount:    b.Amount,
		LateFee:   b.LateFee,
		TotalDue:  b.TotalDue(),
		DueDate:   b.DueDate,
		Status:    b.Status.String(),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
