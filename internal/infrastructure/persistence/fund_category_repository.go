package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/societyhub/backend/internal/domain/accounting"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFundCategoryRepository implements FundCategoryRepository using GORM
type GormFundCategoryRepository struct {
	db *gorm.DB
}

// NewGormFundCategoryRepository creates a new GormFundCategoryRepository
func NewGormFundCategoryRepository(db *gorm.DB) *GormFundCategoryRepository {
	return &GormFundCategoryRepository{db: db}
}

// FindByIDForTenant finds a fund category by ID for a specific tenant
func (r *GormFundCategoryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.FundCategory, error) {
	var model models.FundCategoryModel
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

// FindAllForTenant finds all non-deleted fund categories for a tenant
func (r *GormFundCategoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]accounting.FundCategory, error) {
	var categoryModels []models.FundCategoryModel
	query := r.db.WithContext(ctx).Model(&models.FundCategoryModel{}).
		Where("tenant_id = ? AND deleted = false", tenantID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	categories := make([]accounting.FundCategory, len(categoryModels))
	for i, model := range categoryModels {
		categories[i] = *model.ToDomain()
	}
	return categories, nil
}

// Save creates or updates a fund category
func (r *GormFundCategoryRepository) Save(ctx context.Context, category *accounting.FundCategory) error {
	model := models.FundCategoryModelFromDomain(category)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForTenant counts non-deleted fund categories for a tenant
func (r *GormFundCategoryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.FundCategoryModel{}).
		Where("tenant_id = ? AND deleted = false", tenantID)
	query = r.applySearch(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormFundCategoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, FundCategorySortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormFundCategoryRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("category_name ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}
	return query
}

// Ensure GormFundCategoryRepository implements FundCategoryRepository
var _ accounting.FundCategoryRepository = (*GormFundCategoryRepository)(nil)
