package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/societyhub/backend/internal/domain/billing"
	"github.com/societyhub/backend/internal/domain/shared"
)

// BillingCycleService provides application-level billing cycle operations
type BillingCycleService struct {
	cycleRepo billing.BillingCycleRepository
}

// NewBillingCycleService creates a new BillingCycleService
func NewBillingCycleService(cycleRepo billing.BillingCycleRepository) *BillingCycleService {
	return &BillingCycleService{cycleRepo: cycleRepo}
}

// BillingCycleResponse represents a billing cycle in API responses
type BillingCycleResponse struct {
	ID                    uuid.UUID  `json:"id"`
	TenantID              uuid.UUID  `json:"tenant_id"`
	CycleName             string     `json:"cycle_name"`
	Month                 int        `json:"month"`
	Year                  int        `json:"year"`
	DueDate               time.Time  `json:"due_date"`
	LateFeeApplicableDate *time.Time `json:"late_fee_applicable_date,omitempty"`
	Status                string     `json:"status"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// CreateBillingCycleRequest represents a request to create a billing cycle
type CreateBillingCycleRequest struct {
	CycleName             string     `json:"cycle_name" binding:"required"`
	Month                 int        `json:"month" binding:"required,min=1,max=12"`
	Year                  int        `json:"year" binding:"required"`
	DueDate               time.Time  `json:"due_date" binding:"required"`
	LateFeeApplicableDate *time.Time `json:"late_fee_applicable_date"`
	CreatedBy             *uuid.UUID `json:"-"`
}

// UpdateBillingCycleRequest represents a request to update a billing cycle
type UpdateBillingCycleRequest struct {
	CycleName             string     `json:"cycle_name" binding:"required"`
	DueDate               time.Time  `json:"due_date" binding:"required"`
	LateFeeApplicableDate *time.Time `json:"late_fee_applicable_date"`
}

// BillingCycleListFilter defines filtering options for cycle list queries
type BillingCycleListFilter struct {
	Search   string `form:"search"`
	Year     *int   `form:"year"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// Create creates a new billing cycle in DRAFT status
func (s *BillingCycleService) Create(ctx context.Context, tenantID uuid.UUID, req CreateBillingCycleRequest) (*BillingCycleResponse, error) {
	cycle, err := billing.NewBillingCycle(tenantID, req.CycleName, req.Month, req.Year, req.DueDate, req.LateFeeApplicableDate)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		cycle.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.cycleRepo.Save(ctx, cycle); err != nil {
		return nil, err
	}

	return toBillingCycleResponse(cycle), nil
}

// Get gets a billing cycle by ID
func (s *BillingCycleService) Get(ctx context.Context, tenantID, id uuid.UUID) (*BillingCycleResponse, error) {
	cycle, err := s.cycleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toBillingCycleResponse(cycle), nil
}

// GetCurrent gets the most recent published cycle for a tenant
func (s *BillingCycleService) GetCurrent(ctx context.Context, tenantID uuid.UUID) (*BillingCycleResponse, error) {
	cycle, err := s.cycleRepo.FindCurrent(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return toBillingCycleResponse(cycle), nil
}

// List lists billing cycles with filtering
func (s *BillingCycleService) List(ctx context.Context, tenantID uuid.UUID, filter BillingCycleListFilter) ([]BillingCycleResponse, int64, error) {
	domainFilter := billing.BillingCycleFilter{Year: filter.Year}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir

	if filter.Status != "" {
		status := billing.CycleStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Cycle status is not valid")
		}
		domainFilter.Status = &status
	}

	cycles, err := s.cycleRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.cycleRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BillingCycleResponse, len(cycles))
	for i, c := range cycles {
		responses[i] = *toBillingCycleResponse(&c)
	}
	return responses, total, nil
}

// Update updates a cycle's details. Rejected once the cycle is CLOSED.
func (s *BillingCycleService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateBillingCycleRequest) (*BillingCycleResponse, error) {
	cycle, err := s.cycleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := cycle.Update(req.CycleName, req.DueDate, req.LateFeeApplicableDate); err != nil {
		return nil, err
	}

	if err := s.cycleRepo.Save(ctx, cycle); err != nil {
		return nil, err
	}

	return toBillingCycleResponse(cycle), nil
}

// Publish transitions a DRAFT cycle to PUBLISHED
func (s *BillingCycleService) Publish(ctx context.Context, tenantID, id uuid.UUID) (*BillingCycleResponse, error) {
	cycle, err := s.cycleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := cycle.Publish(); err != nil {
		return nil, err
	}

	if err := s.cycleRepo.Save(ctx, cycle); err != nil {
		return nil, err
	}

	return toBillingCycleResponse(cycle), nil
}

// Close transitions a PUBLISHED cycle to CLOSED
func (s *BillingCycleService) Close(ctx context.Context, tenantID, id uuid.UUID) (*BillingCycleResponse, error) {
	cycle, err := s.cycleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := cycle.Close(); err != nil {
		return nil, err
	}

	if err := s.cycleRepo.Save(ctx, cycle); err != nil {
		return nil, err
	}

	return toBillingCycleResponse(cycle), nil
}

// Delete soft-deletes a cycle. Rejected once the cycle is CLOSED.
func (s *BillingCycleService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	cycle, err := s.cycleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if err := cycle.SoftDelete(); err != nil {
		return err
	}

	return s.cycleRepo.Save(ctx, cycle)
}

func toBillingCycleResponse(c *billing.BillingCycle) *BillingCycleResponse {
	return &BillingCycleResponse{
		ID:                    c.ID,
		TenantID:              c.TenantID,
		CycleName:             c.CycleName,
		Month:                 c.Month,
		Year:                  c.Year,
		DueDate:               c.DueDate,
		LateFeeApplicableDate: c.LateFeeApplicableDate,
		Status:                c.Status.String(),
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}
