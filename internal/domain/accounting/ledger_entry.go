package accounting

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/shared"
)

// EntryType classifies a ledger entry as income or expense
type EntryType string

const (
	EntryTypeIncome  EntryType = "INCOME"
	EntryTypeExpense EntryType = "EXPENSE"
)

// IsValid checks if the entry type is valid
func (t EntryType) IsValid() bool {
	return t == EntryTypeIncome || t == EntryTypeExpense
}

// String returns the string representation of EntryType
func (t EntryType) String() string {
	return string(t)
}

// ParseEntryType parses an entry type from a string, case-insensitively
func ParseEntryType(s string) (EntryType, error) {
	t := EntryType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", shared.NewDomainError("INVALID_ENTRY_TYPE", "Entry type must be INCOME or EXPENSE")
	}
	return t, nil
}

// TransactionType is the optional debit/credit marker on a ledger entry
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "DEBIT"
	TransactionTypeCredit TransactionType = "CREDIT"
)

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeDebit || t == TransactionTypeCredit
}

// DefaultCategory is used when neither an explicit category nor an
// account head name is available.
const DefaultCategory = "GENERAL"

// LedgerEntry represents a single recorded financial event. Entries are
// append-style: once created they change only through full-rewrite update
// or soft delete.
type LedgerEntry struct {
	shared.TenantAggregateRoot
	EntryDate       time.Time        `json:"entry_date"`
	AccountHeadID   *uuid.UUID       `json:"account_head_id"`
	FundCategoryID  *uuid.UUID       `json:"fund_category_id"`
	TransactionType *TransactionType `json:"transaction_type"`
	Amount          decimal.Decimal  `json:"amount"`
	Type            EntryType        `json:"type"`
	Category        string           `json:"category"`
	Reference       string           `json:"reference"`
	ReferenceType   string           `json:"reference_type"`
	ReferenceID     *uuid.UUID       `json:"reference_id"`
	Description     string           `json:"description"`
	Deleted         bool             `json:"deleted"`
}

// NewLedgerEntry creates a new ledger entry. Type and category are expected
// to be already resolved by the caller (see ResolveEntryType/ResolveCategory).
func NewLedgerEntry(
	tenantID uuid.UUID,
	entryDate time.Time,
	entryType EntryType,
	category string,
	amount decimal.Decimal,
	createdBy uuid.UUID,
) (*LedgerEntry, error) {
	if entryDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_ENTRY_DATE", "Entry date is required")
	}
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Entry type must be INCOME or EXPENSE")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if category == "" {
		category = DefaultCategory
	}

	entry := &LedgerEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		EntryDate:           entryDate,
		Amount:              amount,
		Type:                entryType,
		Category:            category,
	}
	entry.SetCreatedBy(createdBy)

	return entry, nil
}

// ResolveEntryType derives the entry type from an explicit value or the
// referenced account head. A non-blank explicit value must parse; when it is
// blank, an INCOME head yields INCOME and everything else defaults to EXPENSE.
func ResolveEntryType(explicit string, head *AccountHead) (EntryType, error) {
	if strings.TrimSpace(explicit) != "" {
		return ParseEntryType(explicit)
	}
	if head != nil && head.HeadType == HeadTypeIncome {
		return EntryTypeIncome, nil
	}
	return EntryTypeExpense, nil
}

// ResolveCategory derives the category from an explicit value or the
// referenced account head's name, falling back to DefaultCategory.
func ResolveCategory(explicit string, head *AccountHead) string {
	if explicit != "" {
		return explicit
	}
	if head != nil && head.HeadName != "" {
		return head.HeadName
	}
	return DefaultCategory
}

// Update performs a full rewrite of the entry's mutable fields
func (e *LedgerEntry) Update(
	entryDate time.Time,
	entryType EntryType,
	category string,
	amount decimal.Decimal,
	description string,
) error {
	if entryDate.IsZero() {
		return shared.NewDomainError("INVALID_ENTRY_DATE", "Entry date is required")
	}
	if !entryType.IsValid() {
		return shared.NewDomainError("INVALID_ENTRY_TYPE", "Entry type must be INCOME or EXPENSE")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}

	e.EntryDate = entryDate
	e.Type = entryType
	if category != "" {
		e.Category = category
	}
	e.Amount = amount
	e.Description = description
	e.IncrementVersion()
	return nil
}

// SoftDelete flags the entry as deleted
func (e *LedgerEntry) SoftDelete() {
	e.Deleted = true
	e.IncrementVersion()
}
