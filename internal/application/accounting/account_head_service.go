package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/societyhub/backend/internal/domain/accounting"
	"github.com/societyhub/backend/internal/domain/shared"
)

// AccountHeadService provides application-level account head operations
type AccountHeadService struct {
	headRepo accounting.AccountHeadRepository
}

// NewAccountHeadService creates a new AccountHeadService
func NewAccountHeadService(headRepo accounting.AccountHeadRepository) *AccountHeadService {
	return &AccountHeadService{headRepo: headRepo}
}

// AccountHeadResponse represents an account head in API responses
type AccountHeadResponse struct {
	ID           uuid.UUID  `json:"id"`
	TenantID     uuid.UUID  `json:"tenant_id"`
	HeadName     string     `json:"head_name"`
	HeadType     string     `json:"head_type"`
	ParentHeadID *uuid.UUID `json:"parent_head_id,omitempty"`
	Description  string     `json:"description,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Version      int        `json:"version"`
}

// CreateAccountHeadRequest represents a request to create an account head
type CreateAccountHeadRequest struct {
	HeadName     string     `json:"head_name" binding:"required,max=100"`
	HeadType     string     `json:"head_type" binding:"required"`
	ParentHeadID *uuid.UUID `json:"parent_head_id"`
	Description  string     `json:"description"`
	CreatedBy    *uuid.UUID `json:"-"`
}

// UpdateAccountHeadRequest represents a request to update an account head
type UpdateAccountHeadRequest struct {
	HeadName     string     `json:"head_name" binding:"required,max=100"`
	HeadType     string     `json:"head_type" binding:"required"`
	ParentHeadID *uuid.UUID `json:"parent_head_id"`
	Description  string     `json:"description"`
}

// Create creates a new account head
func (s *AccountHeadService) Create(ctx context.Context, tenantID uuid.UUID, req CreateAccountHeadRequest) (*AccountHeadResponse, error) {
	headType, err := accounting.ParseHeadType(req.HeadType)
	if err != nil {
		return nil, err
	}

	if req.ParentHeadID != nil {
		if _, err := s.headRepo.FindByIDForTenant(ctx, tenantID, *req.ParentHeadID); err != nil {
			return nil, shared.NewDomainError("INVALID_PARENT_HEAD", "Parent account head not found")
		}
	}

	head, err := accounting.NewAccountHead(tenantID, req.HeadName, headType, req.ParentHeadID, req.Description)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		head.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.headRepo.Save(ctx, head); err != nil {
		return nil, err
	}

	return toAccountHeadResponse(head), nil
}

// Get gets an account head by ID
func (s *AccountHeadService) Get(ctx context.Context, tenantID, id uuid.UUID) (*AccountHeadResponse, error) {
	head, err := s.headRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toAccountHeadResponse(head), nil
}

// List lists account heads with pagination and search
func (s *AccountHeadService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]AccountHeadResponse, int64, error) {
	heads, err := s.headRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.headRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AccountHeadResponse, len(heads))
	for i, h := range heads {
		responses[i] = *toAccountHeadResponse(&h)
	}
	return responses, total, nil
}

// ListByType lists account heads of a given type
func (s *AccountHeadService) ListByType(ctx context.Context, tenantID uuid.UUID, headType string) ([]AccountHeadResponse, error) {
	parsed, err := accounting.ParseHeadType(headType)
	if err != nil {
		return nil, err
	}

	heads, err := s.headRepo.FindByType(ctx, tenantID, parsed)
	if err != nil {
		return nil, err
	}

	responses := make([]AccountHeadResponse, len(heads))
	for i, h := range heads {
		responses[i] = *toAccountHeadResponse(&h)
	}
	return responses, nil
}

// Hierarchy returns all account heads ordered by name. Parent/child
// structure is expressed through ParentHeadID; the client assembles the tree.
func (s *AccountHeadService) Hierarchy(ctx context.Context, tenantID uuid.UUID) ([]AccountHeadResponse, error) {
	heads, err := s.headRepo.FindHierarchy(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]AccountHeadResponse, len(heads))
	for i, h := range heads {
		responses[i] = *toAccountHeadResponse(&h)
	}
	return responses, nil
}

// Update updates an account head
func (s *AccountHeadService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateAccountHeadRequest) (*AccountHeadResponse, error) {
	head, err := s.headRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	headType, err := accounting.ParseHeadType(req.HeadType)
	if err != nil {
		return nil, err
	}

	if err := head.Update(req.HeadName, headType, req.ParentHeadID, req.Description); err != nil {
		return nil, err
	}

	if err := s.headRepo.Save(ctx, head); err != nil {
		return nil, err
	}

	return toAccountHeadResponse(head), nil
}

// Delete soft-deletes an account head
func (s *AccountHeadService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	head, err := s.headRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}

	head.SoftDelete()
	return s.headRepo.Save(ctx, head)
}

func toAccountHeadResponse(h *accounting.AccountHead) *AccountHeadResponse {
	return &AccountHeadResponse{
		ID:           h.ID,
		TenantID:     h.TenantID,
		HeadName:     h.HeadName,
		HeadType:     h.HeadType.String(),
		ParentHeadID: h.ParentHeadID,
		Description:  h.Description,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
		Version:      h.Version,
	}
}
