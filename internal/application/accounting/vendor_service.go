package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/societyhub/backend/internal/domain/accounting"
)

// VendorService provides application-level vendor operations
type VendorService struct {
	vendorRepo accounting.VendorRepository
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo accounting.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID            uuid.UUID `json:"id"`
	TenantID      uuid.UUID `json:"tenant_id"`
	VendorName    string    `json:"vendor_name"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	GSTIN         string    `json:"gstin,omitempty"`
	PAN           string    `json:"pan,omitempty"`
	VendorType    string    `json:"vendor_type,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateVendorRequest represents a request to create a vendor
type CreateVendorRequest struct {
	VendorName    string `json:"vendor_name" binding:"required,max=150"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address"`
	GSTIN         string `json:"gstin"`
	PAN           string `json:"pan"`
	VendorType    string `json:"vendor_type"`
	CreatedBy     *uuid.UUID `json:"-"`
}

// UpdateVendorRequest represents a request to update a vendor
type UpdateVendorRequest struct {
	VendorName    string `json:"vendor_name" binding:"required,max=150"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address"`
	GSTIN         string `json:"gstin"`
	PAN           string `json:"pan"`
	VendorType    string `json:"vendor_type"`
}

// VendorListFilter defines filtering options for vendor list queries
type VendorListFilter struct {
	Search     string  `form:"search"`
	VendorType *string `form:"vendor_type"`
	Active     *bool   `form:"active"`
	Page       int     `form:"page"`
	PageSize   int     `form:"page_size"`
	OrderBy    string  `form:"order_by"`
	OrderDir   string  `form:"order_dir"`
}

// Create creates a new active vendor
func (s *VendorService) Create(ctx context.Context, tenantID uuid.UUID, req CreateVendorRequest) (*VendorResponse, error) {
	vendor, err := accounting.NewVendor(tenantID, req.VendorName)
	if err != nil {
		return nil, err
	}
	vendor.ContactPerson = req.ContactPerson
	vendor.Phone = req.Phone
	vendor.Email = req.Email
	vendor.Address = req.Address
	vendor.GSTIN = req.GSTIN
	vendor.PAN = req.PAN
	vendor.VendorType = req.VendorType
	if req.CreatedBy != nil {
		vendor.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	return toVendorResponse(vendor), nil
}

// Get gets a vendor by ID
func (s *VendorService) Get(ctx context.Context, tenantID, id uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// List lists vendors with filtering
func (s *VendorService) List(ctx context.Context, tenantID uuid.UUID, filter VendorListFilter) ([]VendorResponse, int64, error) {
	domainFilter := accounting.VendorFilter{
		VendorType: filter.VendorType,
		Active:     filter.Active,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir

	vendors, err := s.vendorRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.vendorRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]VendorResponse, len(vendors))
	for i, v := range vendors {
		responses[i] = *toVendorResponse(&v)
	}
	return responses, total, nil
}

// ListActive lists vendors that can receive new payments
func (s *VendorService) ListActive(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]VendorResponse, int64, error) {
	active := true
	return s.List(ctx, tenantID, VendorListFilter{Active: &active, Page: page, PageSize: pageSize})
}

// Update updates a vendor's details
func (s *VendorService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateVendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := vendor.Update(req.VendorName, req.ContactPerson, req.Phone, req.Email, req.Address, req.GSTIN, req.PAN, req.VendorType); err != nil {
		return nil, err
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	return toVendorResponse(vendor), nil
}

// SetStatus activates or deactivates a vendor
func (s *VendorService) SetStatus(ctx context.Context, tenantID, id uuid.UUID, active bool) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	vendor.SetActive(active)

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	return toVendorResponse(vendor), nil
}

// Delete soft-deletes a vendor
func (s *VendorService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}

	vendor.SoftDelete()
	return s.vendorRepo.Save(ctx, vendor)
}

func toVendorResponse(v *accounting.Vendor) *VendorResponse {
	return &VendorResponse{
		ID:            v.ID,
		TenantID:      v.TenantID,
		VendorName:    v.VendorName,
		ContactPerson: v.ContactPerson,
		Phone:         v.Phone,
		Email:         v.Email,
		Address:       v.Address,
		GSTIN:         v.GSTIN,
		PAN:           v.PAN,
		VendorType:    v.VendorType,
		Active:        v.Active,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}
