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

// GormBudgetRepository implements BudgetRepository using GORM
type GormBudgetRepository struct {
	db *gorm.DB
}

// NewGormBudgetRepository creates a new GormBudgetRepository
func NewGormBudgetRepository(db *gorm.DB) *GormBudgetRepository {
	return &GormBudgetRepository{db: db}
}

// FindByIDForTenant finds a budget by ID for a specific tenant
func (r *GormBudgetRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.Budget, error) {
	var model models.BudgetModel
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

// FindAllForTenant finds all non-deleted budgets for a tenant with filtering
func (r *GormBudgetRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]accounting.Budget, error) {
	var budgetModels []models.BudgetModel
	query := r.db.WithContext(ctx).Model(&models.BudgetModel{}).
		Where("tenant_id = ? AND deleted = false", tenantID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&budgetModels).Error; err != nil {
		return nil, err
	}
	budgets := make([]accounting.Budget, len(budgetModels))
	for i, model := range budgetModels {
		budgets[i] = *model.ToDomain()
	}
	return budgets, nil
}

// FindByFinancialYear finds all budgets for a tenant in a financial year
func (r *GormBudgetRepository) FindByFinancialYear(ctx context.Context, tenantID uuid.UUID, financialYear string) ([]accounting.Budget, error) {
	var budgetModels []models.BudgetModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND financial_year = ? AND deleted = false", tenantID, financialYear).
		Order("created_at ASC").
		Find(&budgetModels).Error; err != nil {
		return nil, err
	}
	budgets := make([]accounting.Budget, len(budgetModels))
	for i, model := range budgetModels {
		budgets[i] = *model.ToDomain()
	}
	return budgets, nil
}

// Save creates or updates a budget
func (r *GormBudgetRepository) Save(ctx context.Context, budget *accounting.Budget) error {
	model := models.BudgetModelFromDomain(budget)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForTenant counts non-deleted budgets for a tenant
func (r *GormBudgetRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.BudgetModel{}).
		Where("tenant_id = ? AND deleted = false", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormBudgetRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, BudgetSortFields, "financial_year")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormBudgetRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("financial_year ILIKE ? OR notes ILIKE ?", searchPattern, searchPattern)
	}
	if year, ok := filter.Filters["financial_year"]; ok {
		query = query.Where("financial_year = ?", year)
	}
	if headID, ok := filter.Filters["account_head_id"]; ok {
		query = query.Where("account_head_id = ?", headID)
	}
	return query
}

// Ensure GormBudgetRepository implements BudgetRepository
var _ accounting.BudgetRepository = (*GormBudgetRepository)(nil)
