package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/accounting"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLedgerEntryRepository implements LedgerEntryRepository using GORM
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

// NewGormLedgerEntryRepository creates a new GormLedgerEntryRepository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

// FindByIDForTenant finds a ledger entry by ID for a specific tenant
func (r *GormLedgerEntryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.LedgerEntry, error) {
	var model models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ? AND deleted = false", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all non-deleted ledger entries for a tenant with filtering
func (r *GormLedgerEntryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.LedgerEntryFilter) ([]accounting.LedgerEntry, error) {
	var entryModels []models.LedgerEntryModel
	query := r.db.WithContext(ctx).Model(&models.LedgerEntryModel{}).
		Where("tenant_id = ? AND deleted = false", tenantID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}
	entries := make([]accounting.LedgerEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// Save creates or updates a ledger entry
func (r *GormLedgerEntryRepository) Save(ctx context.Context, entry *accounting.LedgerEntry) error {
	model := models.LedgerEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveAll writes a batch of entries in one transaction. Any failure rolls
// back the whole batch.
func (r *GormLedgerEntryRepository) SaveAll(ctx context.Context, entries []*accounting.LedgerEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			model := models.LedgerEntryModelFromDomain(entry)
			if err := tx.Save(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CountForTenant counts non-deleted ledger entries for a tenant
func (r *GormLedgerEntryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.LedgerEntryFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.LedgerEntryModel{}).
		Where("tenant_id = ? AND deleted = false", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByType sums the amounts of non-deleted entries of the given type
func (r *GormLedgerEntryRepository) SumByType(ctx context.Context, tenantID uuid.UUID, entryType accounting.EntryType) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ? AND type = ? AND deleted = false", tenantID, entryType).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Summary returns income/expense totals and their balance for a tenant
func (r *GormLedgerEntryRepository) Summary(ctx context.Context, tenantID uuid.UUID) (*accounting.LedgerSummary, error) {
	var result struct {
		TotalIncome  decimal.Decimal
		TotalExpense decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) as total_income, "+
			"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) as total_expense",
			accounting.EntryTypeIncome, accounting.EntryTypeExpense).
		Where("tenant_id = ? AND deleted = false", tenantID).
		Scan(&result).Error; err != nil {
		return nil, err
	}
	return &accounting.LedgerSummary{
		TotalIncome:  result.TotalIncome,
		TotalExpense: result.TotalExpense,
		Balance:      result.TotalIncome.Sub(result.TotalExpense),
	}, nil
}

// SumByAccountHead sums entry amounts for an account head
func (r *GormLedgerEntryRepository) SumByAccountHead(ctx context.Context, tenantID, accountHeadID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ? AND account_head_id = ? AND deleted = false", tenantID, accountHeadID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func (r *GormLedgerEntryRepository) applyFilter(query *gorm.DB, filter accounting.LedgerEntryFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LedgerEntrySortFields, "entry_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormLedgerEntryRepository) applyFilterWithoutPagination(query *gorm.DB, filter accounting.LedgerEntryFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("category ILIKE ? OR description ILIKE ? OR reference ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}
	if filter.AccountHeadID != nil {
		query = query.Where("account_head_id = ?", *filter.AccountHeadID)
	}
	if filter.FundCategoryID != nil {
		query = query.Where("fund_category_id = ?", *filter.FundCategoryID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.FromDate != nil {
		query = query.Where("entry_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("entry_date <= ?", *filter.ToDate)
	}
	return query
}

// Ensure GormLedgerEntryRepository implements LedgerEntryRepository
var _ accounting.LedgerEntryRepository = (*GormLedgerEntryRepository)(nil)
