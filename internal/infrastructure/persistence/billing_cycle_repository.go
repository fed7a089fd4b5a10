package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/societyhub/backend/internal/domain/billing"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBillingCycleRepository implements BillingCycleRepository using GORM
type GormBillingCycleRepository struct {
	db *gorm.DB
}

// NewGormBillingCycleRepository creates a new GormBillingCycleRepository
func NewGormBillingCycleRepository(db *gorm.DB) *GormBillingCycleRepository {
	return &GormBillingCycleRepository{db: db}
}

// FindByIDForTenant finds a billing cycle by ID for a specific tenant
func (r *GormBillingCycleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.BillingCycle, error) {
	var model models.BillingCycleModel
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

// FindAllForTenant finds all non-deleted billing cycles for a tenant with filtering
func (r *GormBillingCycleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.BillingCycleFilter) ([]billing.BillingCycle, error) {
	var cycleModels []models.BillingCycleModel
	query := r.db.WithContext(ctx).Model(&models.BillingCycleModel{}).
		Where("tenant_id = ? AND deleted = false", tenantID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&cycleModels).Error; err != nil {
		return nil, err
	}
	cycles := make([]billing.BillingCycle, len(cycleModels))
	for i, model := range cycleModels {
		cycles[i] = *model.ToDomain()
	}
	return cycles, nil
}

// FindCurrent returns the most recently published cycle for a tenant
func (r *GormBillingCycleRepository) FindCurrent(ctx context.Context, tenantID uuid.UUID) (*billing.BillingCycle, error) {
	var model models.BillingCycleModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND deleted = false", tenantID, billing.CycleStatusPublished).
		Order("year DESC, month DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a billing cycle
func (r *GormBillingCycleRepository) Save(ctx context.Context, cycle *billing.BillingCycle) error {
	model := models.BillingCycleModelFromDomain(cycle)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForTenant counts non-deleted billing cycles for a tenant
func (r *GormBillingCycleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.BillingCycleFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.BillingCycleModel{}).
		Where("tenant_id = ? AND deleted = false", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormBillingCycleRepository) applyFilter(query *gorm.DB, filter billing.BillingCycleFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, BillingCycleSortFields, "year")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if orderBy == "year" {
		return query.Order("year " + orderDir + ", month " + orderDir)
	}
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormBillingCycleRepository) applyFilterWithoutPagination(query *gorm.DB, filter billing.BillingCycleFilter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("cycle_name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Year != nil {
		query = query.Where("year = ?", *filter.Year)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

// Ensure GormBillingCycleRepository implements BillingCycleRepository
var _ billing.BillingCycleRepository = (*GormBillingCycleRepository)(nil)
