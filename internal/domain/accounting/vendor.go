package accounting

import (
	"strings"

	"github.com/google/uuid"
	"github.com/societyhub/backend/internal/domain/shared"
)

// Vendor represents a supplier or service provider the society pays
type Vendor struct {
	shared.TenantAggregateRoot
	VendorName    string `json:"vendor_name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	GSTIN         string `json:"gstin"`
	PAN           string `json:"pan"`
	VendorType    string `json:"vendor_type"`
	Active        bool   `json:"active"`
	Deleted       bool   `json:"deleted"`
}

// NewVendor creates a new active vendor
func NewVendor(tenantID uuid.UUID, vendorName string) (*Vendor, error) {
	if strings.TrimSpace(vendorName) == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR_NAME", "Vendor name cannot be empty")
	}
	if len(vendorName) > 150 {
		return nil, shared.NewDomainError("INVALID_VENDOR_NAME", "Vendor name cannot exceed 150 characters")
	}

	return &Vendor{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		VendorName:          vendorName,
		Active:              true,
	}, nil
}

// Update replaces the vendor's contact and registration details
func (v *Vendor) Update(vendorName, contactPerson, phone, email, address, gstin, pan, vendorType string) error {
	if strings.TrimSpace(vendorName) == "" {
		return shared.NewDomainError("INVALID_VENDOR_NAME", "Vendor name cannot be empty")
	}

	v.VendorName = vendorName
	v.ContactPerson = contactPerson
	v.Phone = phone
	v.Email = email
	v.Address = address
	v.GSTIN = gstin
	v.PAN = pan
	v.VendorType = vendorType
	v.IncrementVersion()
	return nil
}

// SetActive toggles whether the vendor can receive new payments
func (v *Vendor) SetActive(active bool) {
	v.Active = active
	v.IncrementVersion()
}

// SoftDelete flags the vendor as deleted
func (v *Vendor) SoftDelete() {
	v.Deleted = true
	v.IncrementVersion()
}
