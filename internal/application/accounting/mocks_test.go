package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/accounting"
	"github.com/societyhub/backend/internal/domain/audit"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// Mock implementations shared by the service tests in this package

type mockAccountHeadRepository struct {
	mock.Mock
}

func (m *mockAccountHeadRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.AccountHead, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.AccountHead), args.Error(1)
}

func (m *mockAccountHeadRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]accounting.AccountHead, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.AccountHead), args.Error(1)
}

func (m *mockAccountHeadRepository) FindByType(ctx context.Context, tenantID uuid.UUID, headType accounting.HeadType) ([]accounting.AccountHead, error) {
	args := m.Called(ctx, tenantID, headType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.AccountHead), args.Error(1)
}

func (m *mockAccountHeadRepository) FindHierarchy(ctx context.Context, tenantID uuid.UUID) ([]accounting.AccountHead, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.AccountHead), args.Error(1)
}

func (m *mockAccountHeadRepository) Save(ctx context.Context, head *accounting.AccountHead) error {
	args := m.Called(ctx, head)
	return args.Error(0)
}

func (m *mockAccountHeadRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockFundCategoryRepository struct {
	mock.Mock
}

func (m *mockFundCategoryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.FundCategory, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.FundCategory), args.Error(1)
}

func (m *mockFundCategoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]accounting.FundCategory, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.FundCategory), args.Error(1)
}

func (m *mockFundCategoryRepository) Save(ctx context.Context, category *accounting.FundCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockFundCategoryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockLedgerEntryRepository struct {
	mock.Mock
}

func (m *mockLedgerEntryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.LedgerEntry, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.LedgerEntry), args.Error(1)
}

func (m *mockLedgerEntryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.LedgerEntryFilter) ([]accounting.LedgerEntry, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.LedgerEntry), args.Error(1)
}

func (m *mockLedgerEntryRepository) Save(ctx context.Context, entry *accounting.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockLedgerEntryRepository) SaveAll(ctx context.Context, entries []*accounting.LedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *mockLedgerEntryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.LedgerEntryFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLedgerEntryRepository) SumByType(ctx context.Context, tenantID uuid.UUID, entryType accounting.EntryType) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, entryType)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockLedgerEntryRepository) Summary(ctx context.Context, tenantID uuid.UUID) (*accounting.LedgerSummary, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.LedgerSummary), args.Error(1)
}

func (m *mockLedgerEntryRepository) SumByAccountHead(ctx context.Context, tenantID, accountHeadID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accountHeadID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockExpenseRepository struct {
	mock.Mock
}

func (m *mockExpenseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.Expense, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Expense), args.Error(1)
}

func (m *mockExpenseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.ExpenseFilter) ([]accounting.Expense, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.Expense), args.Error(1)
}

func (m *mockExpenseRepository) Save(ctx context.Context, expense *accounting.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *mockExpenseRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.ExpenseFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockExpenseRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, expenseNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, expenseNumber)
	return args.Bool(0), args.Error(1)
}

func (m *mockExpenseRepository) SumPaidByAccountHead(ctx context.Context, tenantID, accountHeadID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accountHeadID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockExpenseRepository) SumPendingInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockVendorRepository struct {
	mock.Mock
}

func (m *mockVendorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.Vendor, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Vendor), args.Error(1)
}

func (m *mockVendorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.VendorFilter) ([]accounting.Vendor, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.Vendor), args.Error(1)
}

func (m *mockVendorRepository) Save(ctx context.Context, vendor *accounting.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *mockVendorRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.VendorFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockVendorPaymentRepository struct {
	mock.Mock
}

func (m *mockVendorPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.VendorPayment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.VendorPayment), args.Error(1)
}

func (m *mockVendorPaymentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.VendorPaymentFilter) ([]accounting.VendorPayment, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.VendorPayment), args.Error(1)
}

func (m *mockVendorPaymentRepository) Save(ctx context.Context, payment *accounting.VendorPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *mockVendorPaymentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter accounting.VendorPaymentFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockVendorPaymentRepository) SumCompleted(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockBudgetRepository struct {
	mock.Mock
}

func (m *mockBudgetRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.Budget, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Budget), args.Error(1)
}

func (m *mockBudgetRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]accounting.Budget, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.Budget), args.Error(1)
}

func (m *mockBudgetRepository) FindByFinancialYear(ctx context.Context, tenantID uuid.UUID, financialYear string) ([]accounting.Budget, error) {
	args := m.Called(ctx, tenantID, financialYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.Budget), args.Error(1)
}

func (m *mockBudgetRepository) Save(ctx context.Context, budget *accounting.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *mockBudgetRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockAuditRecorder struct {
	mock.Mock
}

func (m *mockAuditRecorder) Record(ctx context.Context, event audit.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
