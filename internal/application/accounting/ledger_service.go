package accounting

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/accounting"
	"github.com/societyhub/backend/internal/domain/audit"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// LedgerService provides application-level ledger entry operations
type LedgerService struct {
	entryRepo accounting.LedgerEntryRepository
	headRepo  accounting.AccountHeadRepository
	fundRepo  accounting.FundCategoryRepository
	auditRec  audit.Recorder
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	entryRepo accounting.LedgerEntryRepository,
	headRepo accounting.AccountHeadRepository,
	fundRepo accounting.FundCategoryRepository,
	auditRec audit.Recorder,
) *LedgerService {
	return &LedgerService{
		entryRepo: entryRepo,
		headRepo:  headRepo,
		fundRepo:  fundRepo,
		auditRec:  auditRec,
	}
}

// LedgerEntryResponse represents a ledger entry in API responses
type LedgerEntryResponse struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	EntryDate       time.Time       `json:"entry_date"`
	AccountHeadID   *uuid.UUID      `json:"account_head_id,omitempty"`
	FundCategoryID  *uuid.UUID      `json:"fund_category_id,omitempty"`
	TransactionType *string         `json:"transaction_type,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Type            string          `json:"type"`
	Category        string          `json:"category"`
	Reference       string          `json:"reference,omitempty"`
	ReferenceType   string          `json:"reference_type,omitempty"`
	ReferenceID     *uuid.UUID      `json:"reference_id,omitempty"`
	Description     string          `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// LedgerSummaryResponse represents the aggregate ledger totals
type LedgerSummaryResponse struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
}

// CreateLedgerEntryRequest represents a request to create a ledger entry.
// Type and Category may be omitted; they are then derived from the account
// head when one is referenced.
type CreateLedgerEntryRequest struct {
	EntryDate       time.Time       `json:"entry_date" binding:"required"`
	AccountHeadID   *uuid.UUID      `json:"account_head_id"`
	FundCategoryID  *uuid.UUID      `json:"fund_category_id"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Type            string          `json:"type"`
	Category        string          `json:"category"`
	Reference       string          `json:"reference"`
	ReferenceType   string          `json:"reference_type"`
	ReferenceID     *uuid.UUID      `json:"reference_id"`
	Description     string          `json:"description"`
	CreatedBy       uuid.UUID       `json:"-"`
}

// UpdateLedgerEntryRequest represents a request to rewrite a ledger entry
type UpdateLedgerEntryRequest struct {
	EntryDate   time.Time       `json:"entry_date" binding:"required"`
	Type        string          `json:"type" binding:"required"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// LedgerEntryListFilter defines filtering options for ledger entry queries
type LedgerEntryListFilter struct {
	Search         string     `form:"search"`
	AccountHeadID  *uuid.UUID `form:"account_head_id"`
	FundCategoryID *uuid.UUID `form:"fund_category_id"`
	Type           string     `form:"type"`
	FromDate       *time.Time `form:"from_date"`
	ToDate         *time.Time `form:"to_date"`
	Page           int        `form:"page"`
	PageSize       int        `form:"page_size"`
	OrderBy        string     `form:"order_by"`
	OrderDir       string     `form:"order_dir"`
}

// Create creates a single ledger entry
func (s *LedgerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateLedgerEntryRequest) (*LedgerEntryResponse, error) {
	entry, err := s.buildEntry(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	s.record(ctx, tenantID, req.CreatedBy, audit.EventLedgerEntryCreated, entry.ID, map[string]any{
		"amount": entry.Amount.String(),
		"type":   entry.Type.String(),
	})

	return toLedgerEntryResponse(entry), nil
}

// BulkCreate creates a batch of ledger entries. Validation failures abort
// the whole batch before anything is written; there is no per-item
// isolation.
func (s *LedgerService) BulkCreate(ctx context.Context, tenantID uuid.UUID, reqs []CreateLedgerEntryRequest) ([]LedgerEntryResponse, error) {
	if len(reqs) == 0 {
		return nil, shared.NewDomainError("EMPTY_BATCH", "At least one entry is required")
	}

	entries := make([]*accounting.LedgerEntry, len(reqs))
	for i, req := range reqs {
		entry, err := s.buildEntry(ctx, tenantID, req)
		if err != nil {
			return nil, err
		}
		entries[i] = entry
	}

	if err := s.entryRepo.SaveAll(ctx, entries); err != nil {
		return nil, err
	}

	responses := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = *toLedgerEntryResponse(e)
	}
	return responses, nil
}

func (s *LedgerService) buildEntry(ctx context.Context, tenantID uuid.UUID, req CreateLedgerEntryRequest) (*accounting.LedgerEntry, error) {
	var head *accounting.AccountHead
	if req.AccountHeadID != nil {
		found, err := s.headRepo.FindByIDForTenant(ctx, tenantID, *req.AccountHeadID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ACCOUNT_HEAD", "Account head not found")
		}
		head = found
	}
	if req.FundCategoryID != nil {
		if _, err := s.fundRepo.FindByIDForTenant(ctx, tenantID, *req.FundCategoryID); err != nil {
			return nil, shared.NewDomainError("INVALID_FUND_CATEGORY", "Fund category not found")
		}
	}

	entryType, err := accounting.ResolveEntryType(req.Type, head)
	if err != nil {
		return nil, err
	}
	category := accounting.ResolveCategory(req.Category, head)

	entry, err := accounting.NewLedgerEntry(tenantID, req.EntryDate, entryType, category, req.Amount, req.CreatedBy)
	if err != nil {
		return nil, err
	}

	entry.AccountHeadID = req.AccountHeadID
	entry.FundCategoryID = req.FundCategoryID
	entry.Reference = req.Reference
	entry.ReferenceType = req.ReferenceType
	entry.ReferenceID = req.ReferenceID
	entry.Description = req.Description

	if req.TransactionType != "" {
		txnType := accounting.TransactionType(req.TransactionType)
		if !txnType.IsValid() {
			return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Transaction type must be DEBIT or CREDIT")
		}
		entry.TransactionType = &txnType
	}

	return entry, nil
}

// Get gets a ledger entry by ID
func (s *LedgerService) Get(ctx context.Context, tenantID, id uuid.UUID) (*LedgerEntryResponse, error) {
	entry, err := s.entryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toLedgerEntryResponse(entry), nil
}

// List lists ledger entries with filtering
func (s *LedgerService) List(ctx context.Context, tenantID uuid.UUID, filter LedgerEntryListFilter) ([]LedgerEntryResponse, int64, error) {
	domainFilter, err := toLedgerEntryFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	entries, err := s.entryRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.entryRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = *toLedgerEntryResponse(&e)
	}
	return responses, total, nil
}

// Update rewrites a ledger entry's mutable fields
func (s *LedgerService) Update(ctx context.Context, tenantID, id, userID uuid.UUID, req UpdateLedgerEntryRequest) (*LedgerEntryResponse, error) {
	entry, err := s.entryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	entryType, err := accounting.ParseEntryType(req.Type)
	if err != nil {
		return nil, err
	}

	if err := entry.Update(req.EntryDate, entryType, req.Category, req.Amount, req.Description); err != nil {
		return nil, err
	}

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	s.record(ctx, tenantID, userID, audit.EventLedgerEntryUpdated, entry.ID, map[string]any{
		"amount": entry.Amount.String(),
	})

	return toLedgerEntryResponse(entry), nil
}

// Delete soft-deletes a ledger entry
func (s *LedgerService) Delete(ctx context.Context, tenantID, id, userID uuid.UUID) error {
	entry, err := s.entryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}

	entry.SoftDelete()
	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return err
	}

	s.record(ctx, tenantID, userID, audit.EventLedgerEntryDeleted, entry.ID, nil)
	return nil
}

// Summary returns the tenant's aggregate income, expense, and balance
func (s *LedgerService) Summary(ctx context.Context, tenantID uuid.UUID) (*LedgerSummaryResponse, error) {
	summary, err := s.entryRepo.Summary(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &LedgerSummaryResponse{
		TotalIncome:  summary.TotalIncome,
		TotalExpense: summary.TotalExpense,
		Balance:      summary.Balance,
	}, nil
}

// ExportCSV renders the filtered entries as a CSV document
func (s *LedgerService) ExportCSV(ctx context.Context, tenantID uuid.UUID, filter LedgerEntryListFilter) ([]byte, error) {
	domainFilter, err := toLedgerEntryFilter(filter)
	if err != nil {
		return nil, err
	}
	domainFilter.Page = 0
	domainFilter.PageSize = 0

	entries, err := s.entryRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Date", "Type", "Category", "Amount", "Reference", "Description"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, e := range entries {
		row := []string{
			e.EntryDate.Format("2006-01-02"),
			e.Type.String(),
			e.Category,
			e.Amount.StringFixed(2),
			e.Reference,
			e.Description,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (s *LedgerService) record(ctx context.Context, tenantID, actorID uuid.UUID, code string, entityID uuid.UUID, metadata map[string]any) {
	var actor *uuid.UUID
	if actorID != uuid.Nil {
		actor = &actorID
	}
	event := audit.NewEvent(tenantID, actor, code, "LedgerEntry", &entityID, metadata)
	if err := s.auditRec.Record(ctx, event); err != nil {
		logger.L(ctx).Warn("audit record failed", zap.String("event_code", code), zap.Error(err))
	}
}

func toLedgerEntryFilter(filter LedgerEntryListFilter) (accounting.LedgerEntryFilter, error) {
	domainFilter := accounting.LedgerEntryFilter{
		AccountHeadID:  filter.AccountHeadID,
		FundCategoryID: filter.FundCategoryID,
		FromDate:       filter.FromDate,
		ToDate:         filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir

	if filter.Type != "" {
		entryType, err := accounting.ParseEntryType(filter.Type)
		if err != nil {
			return domainFilter, err
		}
		domainFilter.Type = &entryType
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return domainFilter, shared.NewDomainError("INVALID_DATE_RANGE", "From date cannot be after to date")
	}

	return domainFilter, nil
}

func toLedgerEntryResponse(e *accounting.LedgerEntry) *LedgerEntryResponse {
	var txnType *string
	if e.TransactionType != nil {
		s := string(*e.TransactionType)
		txnType = &s
	}
	return &LedgerEntryResponse{
		ID:              e.ID,
		TenantID:        e.TenantID,
		EntryDate:       e.EntryDate,
		AccountHeadID:   e.AccountHeadID,
		FundCategoryID:  e.FundCategoryID,
		TransactionType: txnType,
		Amount:          e.Amount,
		Type:            e.Type.String(),
		Category:        e.Category,
		Reference:       e.Reference,
		ReferenceType:   e.ReferenceType,
		ReferenceID:     e.ReferenceID,
		Description:     e.Description,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		Version:         e.Version,
	}
}
