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

// GormMaintenanceBillRepository implements MaintenanceBillRepository using GORM
type GormMaintenanceBillRepository struct {
	db *gorm.DB
}

// NewGormMaintenanceBillRepository creates a new GormMaintenanceBillRepository
func NewGormMaintenanceBillRepository(db *gorm.DB) *GormMaintenanceBillRepository {
	return &GormMaintenanceBillRepository{db: db}
}

// FindByIDForTenant finds a maintenance bill by ID for a specific tenant
func (r *GormMaintenanceBillRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.MaintenanceBill, error) {
	var model models.MaintenanceBillModel
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

// FindAllForTenant finds all non-deleted maintenance bills for a tenant with filtering
func (r *GormMaintenanceBillRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.MaintenanceBill, error) {
	var billModels []models.MaintenanceBillModel
	query := r.db.WithContext(ctx).Model(&models.MaintenanceBillModel{}).
		Where("tenant_id = ? AND deleted = false", tenantID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&billModels).Error; err != nil {
		return nil, err
	}
	bills := make([]billing.MaintenanceBill, len(billModels))
	for i, model := range billModels {
		bills[i] = *model.ToDomain()
	}
	return bills, nil
}

// FindByUnit finds all maintenance bills for a unit, most recent period first
func (r *GormMaintenanceBillRepository) FindByUnit(ctx context.Context, tenantID, unitID uuid.UUID) ([]billing.MaintenanceBill, error) {
	var billModels []models.MaintenanceBillModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND unit_id = ? AND deleted = false", tenantID, unitID).
		Order("year DESC, month DESC").
		Find(&billModels).Error; err != nil {
		return nil, err
	}
	bills := make([]billing.MaintenanceBill, len(billModels))
	for i, model := range billModels {
		bills[i] = *model.ToDomain()
	}
	return bills, nil
}

// Save creates or updates a maintenance bill
func (r *GormMaintenanceBillRepository) Save(ctx context.Context, bill *billing.MaintenanceBill) error {
	model := models.MaintenanceBillModelFromDomain(bill)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForTenant counts non-deleted maintenance bills for a tenant
func (r *GormMaintenanceBillRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.MaintenanceBillModel{}).
		Where("tenant_id = ? AND deleted = false", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormMaintenanceBillRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, MaintenanceBillSortFields, "due_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormMaintenanceBillRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if unitID, ok := filter.Filters["unit_id"]; ok {
		query = query.Where("unit_id = ?", unitID)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if year, ok := filter.Filters["year"]; ok {
		query = query.Where("year = ?", year)
	}
	if month, ok := filter.Filters["month"]; ok {
		query = query.Where("month = ?", month)
	}
	return query
}

// Ensure GormMaintenanceBillRepository implements MaintenanceBillRepository
var _ billing.MaintenanceBillRepository = (*GormMaintenanceBillRepository)(nil)
