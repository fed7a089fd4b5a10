package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/billing"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInvoiceService_Generate(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	baseRequest := func() GenerateInvoiceRequest {
		return GenerateInvoiceRequest{
			UnitID:      uuid.New(),
			InvoiceDate: time.Now(),
			DueDate:     time.Now().AddDate(0, 0, 15),
			Subtotal:    decimal.NewFromInt(3000),
			GSTAmount:   decimal.NewFromInt(540),
		}
	}

	t.Run("generates an invoice with derived totals", func(t *testing.T) {
		invoiceRepo := new(mockInvoiceRepository)
		cycleRepo := new(mockBillingCycleRepository)
		auditRec := new(mockAuditRecorder)
		service := NewInvoiceService(invoiceRepo, cycleRepo, auditRec)

		invoiceRepo.On("ExistsByNumber", mock.Anything, tenantID, mock.AnythingOfType("string")).Return(false, nil)
		invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)
		auditRec.On("Record", mock.Anything, mock.Anything).Return(nil)

		resp, err := service.Generate(ctx, tenantID, baseRequest())

		require.NoError(t, err)
		assert.Equal(t, "3540", resp.TotalAmount.String())
		assert.Equal(t, "3540", resp.OutstandingAmount.String())
		assert.True(t, resp.PaidAmount.IsZero())
		assert.Contains(t, resp.InvoiceNumber, "INV-")
	})

	t.Run("retries on a taken invoice number", func(t *testing.T) {
		invoiceRepo := new(mockInvoiceRepository)
		cycleRepo := new(mockBillingCycleRepository)
		auditRec := new(mockAuditRecorder)
		service := NewInvoiceService(invoiceRepo, cycleRepo, auditRec)

		invoiceRepo.On("ExistsByNumber", mock.Anything, tenantID, mock.AnythingOfType("string")).Return(true, nil).Once()
		invoiceRepo.On("ExistsByNumber", mock.Anything, tenantID, mock.AnythingOfType("string")).Return(false, nil).Once()
		invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)
		auditRec.On("Record", mock.Anything, mock.Anything).Return(nil)

		_, err := service.Generate(ctx, tenantID, baseRequest())

		require.NoError(t, err)
		invoiceRepo.AssertNumberOfCalls(t, "ExistsByNumber", 2)
	})

	t.Run("gives up after exhausting number attempts", func(t *testing.T) {
		invoiceRepo := new(mockInvoiceRepository)
		cycleRepo := new(mockBillingCycleRepository)
		auditRec := new(mockAuditRecorder)
		service := NewInvoiceService(invoiceRepo, cycleRepo, auditRec)

		invoiceRepo.On("ExistsByNumber", mock.Anything, tenantID, mock.AnythingOfType("string")).Return(true, nil)

		_, err := service.Generate(ctx, tenantID, baseRequest())

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NUMBER_GENERATION_EXHAUSTED", domainErr.Code)
		invoiceRepo.AssertNumberOfCalls(t, "ExistsByNumber", maxNumberAttempts)
		invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown billing cycle", func(t *testing.T) {
		invoiceRepo := new(mockInvoiceRepository)
		cycleRepo := new(mockBillingCycleRepository)
		auditRec := new(mockAuditRecorder)
		service := NewInvoiceService(invoiceRepo, cycleRepo, auditRec)

		cycleID := uuid.New()
		cycleRepo.On("FindByIDForTenant", mock.Anything, tenantID, cycleID).Return(nil, shared.ErrNotFound)

		req := baseRequest()
		req.BillingCycleID = &cycleID
		_, err := service.Generate(ctx, tenantID, req)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_BILLING_CYCLE", domainErr.Code)
	})
}

func TestInvoiceService_BulkGenerate(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	t.Run("one invoice per unit from a shared template", func(t *testing.T) {
		invoiceRepo := new(mockInvoiceRepository)
		cycleRepo := new(mockBillingCycleRepository)
		auditRec := new(mockAuditRecorder)
		service := NewInvoiceService(invoiceRepo, cycleRepo, auditRec)

		invoiceRepo.On("ExistsByNumber", mock.Anything, tenantID, mock.AnythingOfType("string")).Return(false, nil)
		invoiceRepo.On("SaveAll", mock.Anything, mock.MatchedBy(func(invoices []*billing.Invoice) bool {
			return len(invoices) == 3
		})).Return(nil)
		auditRec.On("Record", mock.Anything, mock.Anything).Return(nil)

		units := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
		responses, err := service.BulkGenerate(ctx, tenantID, BulkGenerateInvoicesRequest{
			UnitIDs:     units,
			InvoiceDate: time.Now(),
			DueDate:     time.Now().AddDate(0, 0, 15),
			Subtotal:    decimal.NewFromInt(2000),
		})

		require.NoError(t, err)
		require.Len(t, responses, 3)
		seen := map[string]bool{}
		for i, resp := range responses {
			assert.Equal(t, units[i], resp.UnitID)
			assert.Equal(t, "2000", resp.TotalAmount.String())
			assert.False(t, seen[resp.InvoiceNumber])
			seen[resp.InvoiceNumber] = true
		}
		invoiceRepo.AssertNumberOfCalls(t, "SaveAll", 1)
	})

	t.Run("a build failure aborts before any save", func(t *testing.T) {
		invoiceRepo := new(mockInvoiceRepository)
		cycleRepo := new(mockBillingCycleRepository)
		auditRec := new(mockAuditRecorder)
		service := NewInvoiceService(invoiceRepo, cycleRepo, auditRec)

		invoiceRepo.On("ExistsByNumber", mock.Anything, tenantID, mock.AnythingOfType("string")).Return(false, nil)

		// The nil unit id fails aggregate construction for the second unit.
		_, err := service.BulkGenerate(ctx, tenantID, BulkGenerateInvoicesRequest{
			UnitIDs:     []uuid.UUID{uuid.New(), uuid.Nil},
			InvoiceDate: time.Now(),
			DueDate:     time.Now().AddDate(0, 0, 15),
			Subtotal:    decimal.NewFromInt(2000),
		})

		require.Error(t, err)
		invoiceRepo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
	})

	t.Run("a write failure surfaces and records nothing", func(t *testing.T) {
		invoiceRepo := new(mockInvoiceRepository)
		cycleRepo := new(mockBillingCycleRepository)
		auditRec := new(mockAuditRecorder)
		service := NewInvoiceService(invoiceRepo, cycleRepo, auditRec)

		invoiceRepo.On("ExistsByNumber", mock.Anything, tenantID, mock.AnythingOfType("string")).Return(false, nil)
		invoiceRepo.On("SaveAll", mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := service.BulkGenerate(ctx, tenantID, BulkGenerateInvoicesRequest{
			UnitIDs:     []uuid.UUID{uuid.New(), uuid.New()},
			InvoiceDate: time.Now(),
			DueDate:     time.Now().AddDate(0, 0, 15),
			Subtotal:    decimal.NewFromInt(2000),
		})

		require.ErrorIs(t, err, assert.AnError)
		auditRec.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		invoiceRepo := new(mockInvoiceRepository)
		cycleRepo := new(mockBillingCycleRepository)
		auditRec := new(mockAuditRecorder)
		service := NewInvoiceService(invoiceRepo, cycleRepo, auditRec)

		_, err := service.BulkGenerate(ctx, tenantID, BulkGenerateInvoicesRequest{})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_BATCH", domainErr.Code)
	})
}

func TestInvoiceService_ReviseAmounts(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	t.Run("preserves the paid amount across a revision", func(t *testing.T) {
		invoiceRepo := new(mockInvoiceRepository)
		cycleRepo := new(mockBillingCycleRepository)
		auditRec := new(mockAuditRecorder)
		service := NewInvoiceService(invoiceRepo, cycleRepo, auditRec)

		invoice := newTestInvoice(t, tenantID, 1000)
		require.NoError(t, invoice.ApplyPayment(decimal.NewFromInt(400)))

		invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, invoice.ID).Return(invoice, nil)
		invoiceRepo.On("SaveWithLock", mock.Anything, invoice).Return(nil)
		auditRec.On("Record", mock.Anything, mock.Anything).Return(nil)

		resp, err := service.ReviseAmounts(ctx, tenantID, invoice.ID, ReviseInvoiceAmountsRequest{
			Subtotal: decimal.NewFromInt(1200),
			LateFee:  decimal.NewFromInt(100),
		})

		require.NoError(t, err)
		assert.Equal(t, "1300", resp.TotalAmount.String())
		assert.Equal(t, "400", resp.PaidAmount.String())
		assert.Equal(t, "900", resp.OutstandingAmount.String())
	})

	t.Run("rejects a revision below the paid amount", func(t *testing.T) {
		invoiceRepo := new(mockInvoiceRepository)
		cycleRepo := new(mockBillingCycleRepository)
		auditRec := new(mockAuditRecorder)
		service := NewInvoiceService(invoiceRepo, cycleRepo, auditRec)

		invoice := newTestInvoice(t, tenantID, 1000)
		require.NoError(t, invoice.ApplyPayment(decimal.NewFromInt(800)))

		invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, invoice.ID).Return(invoice, nil)

		_, err := service.ReviseAmounts(ctx, tenantID, invoice.ID, ReviseInvoiceAmountsRequest{
			Subtotal: decimal.NewFromInt(500),
		})

		require.Error(t, err)
		invoiceRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestInvoiceService_ForceStatus(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	invoiceRepo := new(mockInvoiceRepository)
	cycleRepo := new(mockBillingCycleRepository)
	auditRec := new(mockAuditRecorder)
	service := NewInvoiceService(invoiceRepo, cycleRepo, auditRec)

	invoice := newTestInvoice(t, tenantID, 1000)
	invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, invoice.ID).Return(invoice, nil)
	invoiceRepo.On("SaveWithLock", mock.Anything, invoice).Return(nil)
	auditRec.On("Record", mock.Anything, mock.Anything).Return(nil)

	userID := uuid.New()
	resp, err := service.ForceStatus(ctx, tenantID, invoice.ID, ForceInvoiceStatusRequest{
		Status: "overdue",
		Reason: "manual escalation",
		UserID: &userID,
	})

	require.NoError(t, err)
	assert.Equal(t, "OVERDUE", resp.Status)

	// The override does not survive the next settlement.
	require.NoError(t, invoice.ApplyPayment(decimal.NewFromInt(1000)))
	assert.Equal(t, billing.InvoiceStatusPaid, invoice.Status)

	_, err = service.ForceStatus(ctx, tenantID, invoice.ID, ForceInvoiceStatusRequest{Status: "nonsense"})
	require.Error(t, err)
}
