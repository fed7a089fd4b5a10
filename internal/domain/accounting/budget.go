package accounting

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/shared"
)

var financialYearPattern = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// FinancialYear is a "YYYY-YYYY" label defining a reporting date range
type FinancialYear struct {
	Label string
	Start time.Time
	End   time.Time
}

// ParseFinancialYear parses a "YYYY-YYYY" label into a date range spanning
// January 1 of the start year to December 31 of the end year.
func ParseFinancialYear(label string) (FinancialYear, error) {
	m := financialYearPattern.FindStringSubmatch(label)
	if m == nil {
		return FinancialYear{}, shared.NewDomainError("INVALID_FINANCIAL_YEAR", "Financial year must be in YYYY-YYYY format")
	}
	startYear, _ := strconv.Atoi(m[1])
	endYear, _ := strconv.Atoi(m[2])
	if endYear < startYear {
		return FinancialYear{}, shared.NewDomainError("INVALID_FINANCIAL_YEAR", "Financial year end cannot precede start")
	}

	return FinancialYear{
		Label: label,
		Start: time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(endYear, time.December, 31, 23, 59, 59, 0, time.UTC),
	}, nil
}

// DefaultFinancialYear returns the range used when no explicit year is
// supplied: the label "<Y>-<Y+1>" spanning Jan 1 of the current year to
// Dec 31 of the next. The two-calendar-year window is the established
// behavior and is kept as-is.
func DefaultFinancialYear(now time.Time) FinancialYear {
	y := now.Year()
	return FinancialYear{
		Label: fmt.Sprintf("%d-%d", y, y+1),
		Start: time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(y+1, time.December, 31, 23, 59, 59, 0, time.UTC),
	}
}

// Budget represents a per-account-head budgeted amount for a financial year
type Budget struct {
	shared.TenantAggregateRoot
	FinancialYear  string          `json:"financial_year"`
	AccountHeadID  uuid.UUID       `json:"account_head_id"`
	BudgetedAmount decimal.Decimal `json:"budgeted_amount"`
	Notes          string          `json:"notes"`
	Deleted        bool            `json:"deleted"`
}

// NewBudget creates a new budget for an account head and financial year
func NewBudget(tenantID, accountHeadID uuid.UUID, financialYear string, budgetedAmount decimal.Decimal, notes string) (*Budget, error) {
	if accountHeadID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_HEAD", "Account head ID cannot be empty")
	}
	if _, err := ParseFinancialYear(financialYear); err != nil {
		return nil, err
	}
	if budgetedAmount.LessThan(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Budgeted amount cannot be negative")
	}

	return &Budget{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		FinancialYear:       financialYear,
		AccountHeadID:       accountHeadID,
		BudgetedAmount:      budgetedAmount,
		Notes:               notes,
	}, nil
}

// Update replaces the budgeted amount and notes
func (b *Budget) Update(budgetedAmount decimal.Decimal, notes string) error {
	if budgetedAmount.LessThan(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Budgeted amount cannot be negative")
	}

	b.BudgetedAmount = budgetedAmount
	b.Notes = notes
	b.IncrementVersion()
	return nil
}

// SoftDelete flags the budget as deleted
func (b *Budget) SoftDelete() {
	b.Deleted = true
	b.IncrementVersion()
}
