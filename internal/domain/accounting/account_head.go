package accounting

import (
	"strings"

	"github.com/google/uuid"
	"github.com/societyhub/backend/internal/domain/shared"
)

// HeadType classifies an account head as an income or expense category
type HeadType string

const (
	HeadTypeIncome  HeadType = "INCOME"
	HeadTypeExpense HeadType = "EXPENSE"
)

// IsValid checks if the head type is a valid HeadType
func (t HeadType) IsValid() bool {
	return t == HeadTypeIncome || t == HeadTypeExpense
}

// String returns the string representation of HeadType
func (t HeadType) String() string {
	return string(t)
}

// ParseHeadType parses a head type from a string, case-insensitively
func ParseHeadType(s string) (HeadType, error) {
	t := HeadType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", shared.NewDomainError("INVALID_HEAD_TYPE", "Head type must be INCOME or EXPENSE")
	}
	return t, nil
}

// AccountHead represents a named category used to classify ledger entries
// and budgets. Heads form a self-referential hierarchy via ParentHeadID;
// no cycle detection is performed, so traversals must not assume a tree.
type AccountHead struct {
	shared.TenantAggregateRoot
	HeadName     string     `json:"head_name"`
	HeadType     HeadType   `json:"head_type"`
	ParentHeadID *uuid.UUID `json:"parent_head_id"`
	Description  string     `json:"description"`
	Deleted      bool       `json:"deleted"`
}

// NewAccountHead creates a new account head
func NewAccountHead(tenantID uuid.UUID, headName string, headType HeadType, parentHeadID *uuid.UUID, description string) (*AccountHead, error) {
	if strings.TrimSpace(headName) == "" {
		return nil, shared.NewDomainError("INVALID_HEAD_NAME", "Head name cannot be empty")
	}
	if len(headName) > 100 {
		return nil, shared.NewDomainError("INVALID_HEAD_NAME", "Head name cannot exceed 100 characters")
	}
	if !headType.IsValid() {
		return nil, shared.NewDomainError("INVALID_HEAD_TYPE", "Head type must be INCOME or EXPENSE")
	}

	return &AccountHead{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		HeadName:            headName,
		HeadType:            headType,
		ParentHeadID:        parentHeadID,
		Description:         description,
	}, nil
}

// Update replaces the mutable fields of the account head
func (h *AccountHead) Update(headName string, headType HeadType, parentHeadID *uuid.UUID, description string) error {
	if strings.TrimSpace(headName) == "" {
		return shared.NewDomainError("INVALID_HEAD_NAME", "Head name cannot be empty")
	}
	if !headType.IsValid() {
		return shared.NewDomainError("INVALID_HEAD_TYPE", "Head type must be INCOME or EXPENSE")
	}

	h.HeadName = headName
	h.HeadType = headType
	h.ParentHeadID = parentHeadID
	h.Description = description
	h.IncrementVersion()
	return nil
}

// SoftDelete flags the head as deleted. The row is never physically removed
// so ledger entries referencing it stay resolvable by id.
func (h *AccountHead) SoftDelete() {
	h.Deleted = true
	h.IncrementVersion()
}
