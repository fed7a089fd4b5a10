package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/accounting"
	"github.com/societyhub/backend/internal/domain/shared"
)

// FundCategoryService provides application-level fund category operations
type FundCategoryService struct {
	fundRepo accounting.FundCategoryRepository
}

// NewFundCategoryService creates a new FundCategoryService
func NewFundCategoryService(fundRepo accounting.FundCategoryRepository) *FundCategoryService {
	return &FundCategoryService{fundRepo: fundRepo}
}

// FundCategoryResponse represents a fund category in API responses
type FundCategoryResponse struct {
	ID             uuid.UUID       `json:"id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	CategoryName   string          `json:"category_name"`
	Description    string          `json:"description,omitempty"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// CreateFundCategoryRequest represents a request to create a fund category
type CreateFundCategoryRequest struct {
	CategoryName string     `json:"category_name" binding:"required,max=100"`
	Description  string     `json:"description"`
	CreatedBy    *uuid.UUID `json:"-"`
}

// UpdateFundCategoryRequest represents a request to update a fund category
type UpdateFundCategoryRequest struct {
	CategoryName string `json:"category_name" binding:"required,max=100"`
	Description  string `json:"description"`
}

// AdjustFundBalanceRequest represents a request to adjust a fund's balance
type AdjustFundBalanceRequest struct {
	Delta decimal.Decimal `json:"delta" binding:"required"`
}

// Create creates a new fund category with a zero balance
func (s *FundCategoryService) Create(ctx context.Context, tenantID uuid.UUID, req CreateFundCategoryRequest) (*FundCategoryResponse, error) {
	fund, err := accounting.NewFundCategory(tenantID, req.CategoryName, req.Description)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		fund.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.fundRepo.Save(ctx, fund); err != nil {
		return nil, err
	}

	return toFundCategoryResponse(fund), nil
}

// Get gets a fund category by ID
func (s *FundCategoryService) Get(ctx context.Context, tenantID, id uuid.UUID) (*FundCategoryResponse, error) {
	fund, err := s.fundRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toFundCategoryResponse(fund), nil
}

// List lists fund categories with pagination and search
func (s *FundCategoryService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]FundCategoryResponse, int64, error) {
	funds, err := s.fundRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.fundRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]FundCategoryResponse, len(funds))
	for i, f := range funds {
		responses[i] = *toFundCategoryResponse(&f)
	}
	return responses, total, nil
}

// Update updates a fund category's name and description
func (s *FundCategoryService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateFundCategoryRequest) (*FundCategoryResponse, error) {
	fund, err := s.fundRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := fund.Update(req.CategoryName, req.Description); err != nil {
		return nil, err
	}

	if err := s.fundRepo.Save(ctx, fund); err != nil {
		return nil, err
	}

	return toFundCategoryResponse(fund), nil
}

// AdjustBalance applies a signed delta to the fund's running balance
func (s *FundCategoryService) AdjustBalance(ctx context.Context, tenantID, id uuid.UUID, req AdjustFundBalanceRequest) (*FundCategoryResponse, error) {
	fund, err := s.fundRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	fund.AdjustBalance(req.Delta)

	if err := s.fundRepo.Save(ctx, fund); err != nil {
		return nil, err
	}

	return toFundCategoryResponse(fund), nil
}

// Delete soft-deletes a fund category
func (s *FundCategoryService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	fund, err := s.fundRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}

	fund.SoftDelete()
	return s.fundRepo.Save(ctx, fund)
}

func toFundCategoryResponse(f *accounting.FundCategory) *FundCategoryResponse {
	return &FundCategoryResponse{
		ID:             f.ID,
		TenantID:       f.TenantID,
		CategoryName:   f.CategoryName,
		Description:    f.Description,
		CurrentBalance: f.CurrentBalance,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
		Version:        f.Version,
	}
}
