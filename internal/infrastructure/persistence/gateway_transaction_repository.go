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

// GormGatewayTransactionRepository implements GatewayTransactionRepository using GORM
type GormGatewayTransactionRepository struct {
	db *gorm.DB
}

// NewGormGatewayTransactionRepository creates a new GormGatewayTransactionRepository
func NewGormGatewayTransactionRepository(db *gorm.DB) *GormGatewayTransactionRepository {
	return &GormGatewayTransactionRepository{db: db}
}

// FindByIDForTenant finds a gateway transaction by ID for a specific tenant
func (r *GormGatewayTransactionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.GatewayTransaction, error) {
	var model models.GatewayTransactionModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTransactionRef finds a gateway transaction by its transaction reference
func (r *GormGatewayTransactionRepository) FindByTransactionRef(ctx context.Context, tenantID uuid.UUID, transactionRef string) (*billing.GatewayTransaction, error) {
	var model models.GatewayTransactionModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND transaction_ref = ?", tenantID, transactionRef).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all gateway transactions for a tenant with filtering
func (r *GormGatewayTransactionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.GatewayTransaction, error) {
	var txnModels []models.GatewayTransactionModel
	query := r.db.WithContext(ctx).Model(&models.GatewayTransactionModel{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&txnModels).Error; err != nil {
		return nil, err
	}
	txns := make([]billing.GatewayTransaction, len(txnModels))
	for i, model := range txnModels {
		txns[i] = *model.ToDomain()
	}
	return txns, nil
}

// Save creates or updates a gateway transaction
func (r *GormGatewayTransactionRepository) Save(ctx context.Context, txn *billing.GatewayTransaction) error {
	model := models.GatewayTransactionModelFromDomain(txn)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForTenant counts gateway transactions for a tenant
func (r *GormGatewayTransactionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.GatewayTransactionModel{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormGatewayTransactionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, GatewayTransactionSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormGatewayTransactionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("transaction_ref ILIKE ? OR gateway_order_id ILIKE ?", searchPattern, searchPattern)
	}
	if billID, ok := filter.Filters["bill_id"]; ok {
		query = query.Where("bill_id = ?", billID)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if provider, ok := filter.Filters["provider"]; ok {
		query = query.Where("provider = ?", provider)
	}
	return query
}

// Ensure GormGatewayTransactionRepository implements GatewayTransactionRepository
var _ billing.GatewayTransactionRepository = (*GormGatewayTransactionRepository)(nil)
