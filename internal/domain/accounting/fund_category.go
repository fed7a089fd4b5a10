package accounting

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/shared"
)

// FundCategory represents a named pool of money with a tracked running
// balance (e.g., reserve fund, sinking fund). CurrentBalance is a
// denormalized total mutated through AdjustBalance; callers are
// responsible for keeping it consistent with the ledger.
type FundCategory struct {
	shared.TenantAggregateRoot
	CategoryName   string          `json:"category_name"`
	Description    string          `json:"description"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	Deleted        bool            `json:"deleted"`
}

// NewFundCategory creates a new fund category with a zero balance
func NewFundCategory(tenantID uuid.UUID, categoryName, description string) (*FundCategory, error) {
	if strings.TrimSpace(categoryName) == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	if len(categoryName) > 100 {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot exceed 100 characters")
	}

	return &FundCategory{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CategoryName:        categoryName,
		Description:         description,
		CurrentBalance:      decimal.Zero,
	}, nil
}

// Update replaces the category name and description
func (f *FundCategory) Update(categoryName, description string) error {
	if strings.TrimSpace(categoryName) == "" {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}

	f.CategoryName = categoryName
	f.Description = description
	f.IncrementVersion()
	return nil
}

// AdjustBalance applies a signed delta to the running balance.
// Decimal arithmetic keeps many small adjustments free of rounding drift.
func (f *FundCategory) AdjustBalance(delta decimal.Decimal) {
	f.CurrentBalance = f.CurrentBalance.Add(delta)
	f.IncrementVersion()
}

// SoftDelete flags the fund category as deleted
func (f *FundCategory) SoftDelete() {
	f.Deleted = true
	f.IncrementVersion()
}
