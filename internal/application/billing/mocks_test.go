package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/audit"
	"github.com/societyhub/backend/internal/domain/billing"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations and fixtures shared by the service tests in this package

func newTestBill(t *testing.T, tenantID uuid.UUID, amount int64) *billing.MaintenanceBill {
	t.Helper()
	bill, err := billing.NewMaintenanceBill(
		tenantID,
		uuid.New(),
		4,
		2026,
		decimal.NewFromInt(amount),
		time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return bill
}

type mockInvoiceRepository struct {
	mock.Mock
}

func (m *mockInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *mockInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *mockInvoiceRepository) FindDefaulters(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]billing.Invoice, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *mockInvoiceRepository) FindOutstanding(ctx context.Context, tenantID uuid.UUID) ([]billing.Invoice, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *mockInvoiceRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, invoiceNumber)
	return args.Bool(0), args.Error(1)
}

func (m *mockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *mockInvoiceRepository) SaveAll(ctx context.Context, invoices []*billing.Invoice) error {
	args := m.Called(ctx, invoices)
	return args.Error(0)
}

func (m *mockInvoiceRepository) SaveWithLock(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *mockInvoiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.InvoiceFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockPaymentRepository struct {
	mock.Mock
}

func (m *mockPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *mockPaymentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.PaymentFilter) ([]billing.Payment, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *mockPaymentRepository) FindByTransactionRef(ctx context.Context, tenantID uuid.UUID, transactionRef string) (*billing.Payment, error) {
	args := m.Called(ctx, tenantID, transactionRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *mockPaymentRepository) ExistsByTransactionRef(ctx context.Context, tenantID uuid.UUID, transactionRef string) (bool, error) {
	args := m.Called(ctx, tenantID, transactionRef)
	return args.Bool(0), args.Error(1)
}

func (m *mockPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *mockPaymentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.PaymentFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockBillingCycleRepository struct {
	mock.Mock
}

func (m *mockBillingCycleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.BillingCycle, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.BillingCycle), args.Error(1)
}

func (m *mockBillingCycleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.BillingCycleFilter) ([]billing.BillingCycle, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.BillingCycle), args.Error(1)
}

func (m *mockBillingCycleRepository) FindCurrent(ctx context.Context, tenantID uuid.UUID) (*billing.BillingCycle, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.BillingCycle), args.Error(1)
}

func (m *mockBillingCycleRepository) Save(ctx context.Context, cycle *billing.BillingCycle) error {
	args := m.Called(ctx, cycle)
	return args.Error(0)
}

func (m *mockBillingCycleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.BillingCycleFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockMaintenanceBillRepository struct {
	mock.Mock
}

func (m *mockMaintenanceBillRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.MaintenanceBill, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.MaintenanceBill), args.Error(1)
}

func (m *mockMaintenanceBillRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.MaintenanceBill, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.MaintenanceBill), args.Error(1)
}

func (m *mockMaintenanceBillRepository) FindByUnit(ctx context.Context, tenantID, unitID uuid.UUID) ([]billing.MaintenanceBill, error) {
	args := m.Called(ctx, tenantID, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.MaintenanceBill), args.Error(1)
}

func (m *mockMaintenanceBillRepository) Save(ctx context.Context, bill *billing.MaintenanceBill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *mockMaintenanceBillRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockGatewayTransactionRepository struct {
	mock.Mock
}

func (m *mockGatewayTransactionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.GatewayTransaction, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.GatewayTransaction), args.Error(1)
}

func (m *mockGatewayTransactionRepository) FindByTransactionRef(ctx context.Context, tenantID uuid.UUID, transactionRef string) (*billing.GatewayTransaction, error) {
	args := m.Called(ctx, tenantID, transactionRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.GatewayTransaction), args.Error(1)
}

func (m *mockGatewayTransactionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.GatewayTransaction, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.GatewayTransaction), args.Error(1)
}

func (m *mockGatewayTransactionRepository) Save(ctx context.Context, txn *billing.GatewayTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *mockGatewayTransactionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
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
