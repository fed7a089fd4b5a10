package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/societyhub/backend/internal/domain/shared"
)

// CycleStatus represents the lifecycle status of a billing cycle
type CycleStatus string

const (
	CycleStatusDraft     CycleStatus = "DRAFT"
	CycleStatusPublished CycleStatus = "PUBLISHED"
	CycleStatusClosed    CycleStatus = "CLOSED"
)

// IsValid checks if the status is a valid CycleStatus
func (s CycleStatus) IsValid() bool {
	switch s {
	case CycleStatusDraft, CycleStatusPublished, CycleStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of CycleStatus
func (s CycleStatus) String() string {
	return string(s)
}

// BillingCycle represents one billing period for a society. The lifecycle is
// strictly forward-only: DRAFT -> PUBLISHED -> CLOSED.
type BillingCycle struct {
	shared.TenantAggregateRoot
	CycleName             string      `json:"cycle_name"`
	Month                 int         `json:"month"`
	Year                  int         `json:"year"`
	DueDate               time.Time   `json:"due_date"`
	LateFeeApplicableDate *time.Time  `json:"late_fee_applicable_date"`
	Status                CycleStatus `json:"status"`
	Deleted               bool        `json:"deleted"`
}

// NewBillingCycle creates a new billing cycle in DRAFT status
func NewBillingCycle(tenantID uuid.UUID, cycleName string, month, year int, dueDate time.Time, lateFeeApplicableDate *time.Time) (*BillingCycle, error) {
	if strings.TrimSpace(cycleName) == "" {
		return nil, shared.NewDomainError("INVALID_CYCLE_NAME", "Cycle name cannot be empty")
	}
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month must be between 1 and 12")
	}
	if year < 2000 {
		return nil, shared.NewDomainError("INVALID_YEAR", "Year is not valid")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}

	return &BillingCycle{
		TenantAggregateRoot:   shared.NewTenantAggregateRoot(tenantID),
		CycleName:             cycleName,
		Month:                 month,
		Year:                  year,
		DueDate:               dueDate,
		LateFeeApplicableDate: lateFeeApplicableDate,
		Status:                CycleStatusDraft,
	}, nil
}

// Publish transitions the cycle from DRAFT to PUBLISHED
func (c *BillingCycle) Publish() error {
	if c.Status != CycleStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only a draft cycle can be published")
	}
	c.Status = CycleStatusPublished
	c.IncrementVersion()
	return nil
}

// Close transitions the cycle from PUBLISHED to CLOSED
func (c *BillingCycle) Close() error {
	if c.Status != CycleStatusPublished {
		return shared.NewDomainError("INVALID_STATE", "Only a published cycle can be closed")
	}
	c.Status = CycleStatusClosed
	c.IncrementVersion()
	return nil
}

// Update replaces the cycle's details. Rejected once the cycle is CLOSED.
func (c *BillingCycle) Update(cycleName string, dueDate time.Time, lateFeeApplicableDate *time.Time) error {
	if c.Status == CycleStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "A closed cycle cannot be modified")
	}
	if strings.TrimSpace(cycleName) == "" {
		return shared.NewDomainError("INVALID_CYCLE_NAME", "Cycle name cannot be empty")
	}

	c.CycleName = cycleName
	c.DueDate = dueDate
	c.LateFeeApplicableDate = lateFeeApplicableDate
	c.IncrementVersion()
	return nil
}

// SoftDelete flags the cycle as deleted. Rejected once CLOSED.
func (c *BillingCycle) SoftDelete() error {
	if c.Status == CycleStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "A closed cycle cannot be deleted")
	}
	c.Deleted = true
	c.IncrementVersion()
	return nil
}
