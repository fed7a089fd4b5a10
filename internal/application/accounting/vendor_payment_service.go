package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/accounting"
	"github.com/societyhub/backend/internal/domain/audit"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// VendorPaymentService provides application-level vendor payment operations
type VendorPaymentService struct {
	paymentRepo accounting.VendorPaymentRepository
	vendorRepo  accounting.VendorRepository
	expenseRepo accounting.ExpenseRepository
	auditRec    audit.Recorder
}

// NewVendorPaymentService creates a new VendorPaymentService
func NewVendorPaymentService(
	paymentRepo accounting.VendorPaymentRepository,
	vendorRepo accounting.VendorRepository,
	expenseRepo accounting.ExpenseRepository,
	auditRec audit.Recorder,
) *VendorPaymentService {
	return &VendorPaymentService{
		paymentRepo: paymentRepo,
		vendorRepo:  vendorRepo,
		expenseRepo: expenseRepo,
		auditRec:    auditRec,
	}
}

// VendorPaymentResponse represents a vendor payment in API responses
type VendorPaymentResponse struct {
	ID                   uuid.UUID       `json:"id"`
	TenantID             uuid.UUID       `json:"tenant_id"`
	VendorID             uuid.UUID       `json:"vendor_id"`
	ExpenseID            *uuid.UUID      `json:"expense_id,omitempty"`
	PaymentDate          time.Time       `json:"payment_date"`
	Amount               decimal.Decimal `json:"amount"`
	PaymentMethod        string          `json:"payment_method,omitempty"`
	TransactionReference string          `json:"transaction_reference,omitempty"`
	Status               string          `json:"status"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// CreateVendorPaymentRequest represents a request to record a vendor payment
type CreateVendorPaymentRequest struct {
	VendorID             uuid.UUID       `json:"vendor_id" binding:"required"`
	ExpenseID            *uuid.UUID      `json:"expense_id"`
	PaymentDate          time.Time       `json:"payment_date" binding:"required"`
	Amount               decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod        string          `json:"payment_method"`
	TransactionReference string          `json:"transaction_reference"`
	Status               string          `json:"status"`
	CreatedBy            uuid.UUID       `json:"-"`
}

// VendorPaymentListFilter defines filtering options for vendor payment queries
type VendorPaymentListFilter struct {
	Search    string     `form:"search"`
	VendorID  *uuid.UUID `form:"vendor_id"`
	ExpenseID *uuid.UUID `form:"expense_id"`
	Status    string     `form:"status"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir"`
}

// Create records a payment made to a vendor. A completed payment linked to
// an expense settles that expense as a side effect.
func (s *VendorPaymentService) Create(ctx context.Context, tenantID uuid.UUID, req CreateVendorPaymentRequest) (*VendorPaymentResponse, error) {
	if _, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, req.VendorID); err != nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor not found")
	}

	var expense *accounting.Expense
	if req.ExpenseID != nil {
		found, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, *req.ExpenseID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_EXPENSE", "Expense not found")
		}
		expense = found
	}

	payment, err := accounting.NewVendorPayment(
		tenantID,
		req.VendorID,
		req.ExpenseID,
		req.PaymentDate,
		req.Amount,
		req.PaymentMethod,
		req.TransactionReference,
		accounting.VendorPaymentStatus(req.Status),
		req.CreatedBy,
	)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	if payment.SettlesExpense() && expense != nil {
		expense.SettleByVendorPayment()
		if err := s.expenseRepo.Save(ctx, expense); err != nil {
			return nil, err
		}
	}

	s.recordAudit(ctx, tenantID, req.CreatedBy, payment)

	return toVendorPaymentResponse(payment), nil
}

// Get gets a vendor payment by ID
func (s *VendorPaymentService) Get(ctx context.Context, tenantID, id uuid.UUID) (*VendorPaymentResponse, error) {
	payment, err := s.paymentRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toVendorPaymentResponse(payment), nil
}

// List lists vendor payments with filtering
func (s *VendorPaymentService) List(ctx context.Context, tenantID uuid.UUID, filter VendorPaymentListFilter) ([]VendorPaymentResponse, int64, error) {
	domainFilter := accounting.VendorPaymentFilter{
		VendorID:  filter.VendorID,
		ExpenseID: filter.ExpenseID,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir

	if filter.Status != "" {
		status := accounting.VendorPaymentStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Vendor payment status is not valid")
		}
		domainFilter.Status = &status
	}

	payments, err := s.paymentRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.paymentRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]VendorPaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = *toVendorPaymentResponse(&p)
	}
	return responses, total, nil
}

// ListByVendor lists payments made to a vendor
func (s *VendorPaymentService) ListByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, page, pageSize int) ([]VendorPaymentResponse, int64, error) {
	return s.List(ctx, tenantID, VendorPaymentListFilter{VendorID: &vendorID, Page: page, PageSize: pageSize})
}

// ListByExpense lists payments recorded against an expense
func (s *VendorPaymentService) ListByExpense(ctx context.Context, tenantID, expenseID uuid.UUID, page, pageSize int) ([]VendorPaymentResponse, int64, error) {
	return s.List(ctx, tenantID, VendorPaymentListFilter{ExpenseID: &expenseID, Page: page, PageSize: pageSize})
}

// Delete soft-deletes a vendor payment
func (s *VendorPaymentService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	payment, err := s.paymentRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}

	payment.SoftDelete()
	return s.paymentRepo.Save(ctx, payment)
}

func (s *VendorPaymentService) recordAudit(ctx context.Context, tenantID, actorID uuid.UUID, payment *accounting.VendorPayment) {
	metadata := map[string]any{
		"vendor_id": payment.VendorID.String(),
		"amount":    payment.Amount.String(),
		"status":    payment.Status.String(),
	}
	if payment.ExpenseID != nil {
		metadata["expense_id"] = payment.ExpenseID.String()
	}
	event := audit.NewEvent(tenantID, &actorID, audit.EventVendorPaymentCreated, "VendorPayment", &payment.ID, metadata)
	if err := s.auditRec.Record(ctx, event); err != nil {
		logger.L(ctx).Warn("audit record failed", zap.String("event_code", audit.EventVendorPaymentCreated), zap.Error(err))
	}
}

func toVendorPaymentResponse(p *accounting.VendorPayment) *VendorPaymentResponse {
	return &VendorPaymentResponse{
		ID:                   p.ID,
		TenantID:             p.TenantID,
		VendorID:             p.VendorID,
		ExpenseID:            p.ExpenseID,
		PaymentDate:          p.PaymentDate,
		Amount:               p.Amount,
		PaymentMethod:        p.PaymentMethod,
		TransactionReference: p.TransactionReference,
		Status:               p.Status.String(),
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}
