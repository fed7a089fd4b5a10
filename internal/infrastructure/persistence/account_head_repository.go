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

// GormAccountHeadRepository implements AccountHeadRepository using GORM
type GormAccountHeadRepository struct {
	db *gorm.DB
}

// NewGormAccountHeadRepository creates a new GormAccountHeadRepository
func NewGormAccountHeadRepository(db *gorm.DB) *GormAccountHeadRepository {
	return &GormAccountHeadRepository{db: db}
}

// FindByIDForTenant finds an account head by ID for a specific tenant
func (r *GormAccountHeadRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.AccountHead, error) {
	var model models.AccountHeadModel
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

// FindAllForTenant finds all non-deleted account heads for a tenant
func (r *GormAccountHeadRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]accounting.AccountHead, error) {
	var headModels []models.AccountHeadModel
	query := r.db.WithContext(ctx).Model(&models.AccountHeadModel{}).
		Where("tenant_id = ? AND deleted = false", tenantID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&headModels).Error; err != nil {
		return nil, err
	}
	heads := make([]accounting.AccountHead, len(headModels))
	for i, model := range headModels {
		heads[i] = *model.ToDomain()
	}
	return heads, nil
}

// FindByType finds account heads of the given type for a tenant
func (r *GormAccountHeadRepository) FindByType(ctx context.Context, tenantID uuid.UUID, headType accounting.HeadType) ([]accounting.AccountHead, error) {
	var headModels []models.AccountHeadModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND head_type = ? AND deleted = false", tenantID, headType).
		Order("head_name ASC").
		Find(&headModels).Error; err != nil {
		return nil, err
	}
	heads := make([]accounting.AccountHead, len(headModels))
	for i, model := range headModels {
		heads[i] = *model.ToDomain()
	}
	return heads, nil
}

// FindHierarchy returns all non-deleted heads ordered by name
func (r *GormAccountHeadRepository) FindHierarchy(ctx context.Context, tenantID uuid.UUID) ([]accounting.AccountHead, error) {
	var headModels []models.AccountHeadModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND deleted = false", tenantID).
		Order("head_name ASC").
		Find(&headModels).Error; err != nil {
		return nil, err
	}
	heads := make([]accounting.AccountHead, len(headModels))
	for i, model := range headModels {
		heads[i] = *model.ToDomain()
	}
	return heads, nil
}

// Save creates or updates an account head
func (r *GormAccountHeadRepository) Save(ctx context.Context, head *accounting.AccountHead) error {
	model := models.AccountHeadModelFromDomain(head)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForTenant counts non-deleted account heads for a tenant
func (r *GormAccountHeadRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.AccountHeadModel{}).
		Where("tenant_id = ? AND deleted = false", tenantID)
	query = r.applySearch(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAccountHeadRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, AccountHeadSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormAccountHeadRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("head_name ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}
	return query
}

// Ensure GormAccountHeadRepository implements AccountHeadRepository
var _ accounting.AccountHeadRepository = (*GormAccountHeadRepository)(nil)
