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

// GormVendorPaymentRepository implements VendorPaymentRepository using GORM
type GormVendorPaymentRepository struct {
	db *gorm.DB
}

// NewGormVendorPaymentRepository creates a new GormVendorPaymentRepository
func NewGormVendorPaymentRepository(db *gorm.DB) *GormVendorPaymentRepository {
	return &GormVendorPaymentRepository{db: db}
}

// FindByIDForTenant finds a vendor payment by ID for a specific tenant
func (r *GormVendorPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.VendorPayment, error) {
	var model models.VendorPaymentModel
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

// FindAllForTenant finds all non-deleted vendor payments for a tenant with filtering
func (r *GormVendorPaymentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.VendorPaymentFilter) ([]accounting.VendorPayment, error) {
	var paymentModels []models.VendorPaymentModel
	query := r.db.WithContext(ctx).Model(&models.VendorPaymentModel{}).
		Where("tenant_id = ? AND deleted = false", tenantID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]accounting.VendorPayment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments, nil
}

// Save creates or updates a vendor payment
func (r *GormVendorPaymentRepository) Save(ctx context.Context, payment *accounting.VendorPayment) error {
	model := models.VendorPaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForTenant counts non-deleted vendor payments for a tenant
func (r *GormVendorPaymentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.VendorPaymentFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.VendorPaymentModel{}).
		Where("tenant_id = ? AND deleted = false", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumCompleted sums the amounts of all completed vendor payments
func (r *GormVendorPaymentRepository) SumCompleted(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.VendorPaymentModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ? AND status = ? AND deleted = false", tenantID, accounting.VendorPaymentStatusCompleted).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func (r *GormVendorPaymentRepository) applyFilter(query *gorm.DB, filter accounting.VendorPaymentFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, VendorPaymentSortFields, "payment_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormVendorPaymentRepository) applyFilterWithoutPagination(query *gorm.DB, filter accounting.VendorPaymentFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("transaction_reference ILIKE ? OR payment_method ILIKE ?",
			searchPattern, searchPattern)
	}
	if filter.VendorID != nil {
		query = query.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.ExpenseID != nil {
		query = query.Where("expense_id = ?", *filter.ExpenseID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

// Ensure GormVendorPaymentRepository implements VendorPaymentRepository
var _ accounting.VendorPaymentRepository = (*GormVendorPaymentRepository)(nil)
