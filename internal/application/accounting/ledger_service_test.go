package accounting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/accounting"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_Create(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	ctx := context.Background()

	t.Run("derives type and category from the account head", func(t *testing.T) {
		entryRepo := new(mockLedgerEntryRepository)
		headRepo := new(mockAccountHeadRepository)
		fundRepo := new(mockFundCategoryRepository)
		auditRec := new(mockAuditRecorder)
		service := NewLedgerService(entryRepo, headRepo, fundRepo, auditRec)

		head, err := accounting.NewAccountHead(tenantID, "Maintenance Collection", accounting.HeadTypeIncome, nil, "")
		require.NoError(t, err)
		headRepo.On("FindByIDForTenant", mock.Anything, tenantID, head.ID).Return(head, nil)
		entryRepo.On("Save", mock.Anything, mock.AnythingOfType("*accounting.LedgerEntry")).Return(nil)
		auditRec.On("Record", mock.Anything, mock.Anything).Return(nil)

		resp, err := service.Create(ctx, tenantID, CreateLedgerEntryRequest{
			EntryDate:     time.Now(),
			AccountHeadID: &head.ID,
			Amount:        decimal.NewFromInt(750),
			CreatedBy:     userID,
		})

		require.NoError(t, err)
		assert.Equal(t, "INCOME", resp.Type)
		assert.Equal(t, "Maintenance Collection", resp.Category)
	})

	t.Run("explicit type wins over the head", func(t *testing.T) {
		entryRepo := new(mockLedgerEntryRepository)
		headRepo := new(mockAccountHeadRepository)
		fundRepo := new(mockFundCategoryRepository)
		auditRec := new(mockAuditRecorder)
		service := NewLedgerService(entryRepo, headRepo, fundRepo, auditRec)

		head, err := accounting.NewAccountHead(tenantID, "Repairs", accounting.HeadTypeIncome, nil, "")
		require.NoError(t, err)
		headRepo.On("FindByIDForTenant", mock.Anything, tenantID, head.ID).Return(head, nil)
		entryRepo.On("Save", mock.Anything, mock.AnythingOfType("*accounting.LedgerEntry")).Return(nil)
		auditRec.On("Record", mock.Anything, mock.Anything).Return(nil)

		resp, err := service.Create(ctx, tenantID, CreateLedgerEntryRequest{
			EntryDate:     time.Now(),
			AccountHeadID: &head.ID,
			Type:          "expense",
			Amount:        decimal.NewFromInt(200),
			CreatedBy:     userID,
		})

		require.NoError(t, err)
		assert.Equal(t, "EXPENSE", resp.Type)
	})

	t.Run("rejects an unknown account head", func(t *testing.T) {
		entryRepo := new(mockLedgerEntryRepository)
		headRepo := new(mockAccountHeadRepository)
		fundRepo := new(mockFundCategoryRepository)
		auditRec := new(mockAuditRecorder)
		service := NewLedgerService(entryRepo, headRepo, fundRepo, auditRec)

		headID := uuid.New()
		headRepo.On("FindByIDForTenant", mock.Anything, tenantID, headID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, tenantID, CreateLedgerEntryRequest{
			EntryDate:     time.Now(),
			AccountHeadID: &headID,
			Amount:        decimal.NewFromInt(100),
			CreatedBy:     userID,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ACCOUNT_HEAD", domainErr.Code)
		entryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a malformed entry type", func(t *testing.T) {
		entryRepo := new(mockLedgerEntryRepository)
		headRepo := new(mockAccountHeadRepository)
		fundRepo := new(mockFundCategoryRepository)
		auditRec := new(mockAuditRecorder)
		service := NewLedgerService(entryRepo, headRepo, fundRepo, auditRec)

		head, err := accounting.NewAccountHead(tenantID, "Maintenance Collection", accounting.HeadTypeIncome, nil, "")
		require.NoError(t, err)
		headRepo.On("FindByIDForTenant", mock.Anything, tenantID, head.ID).Return(head, nil)

		_, err = service.Create(ctx, tenantID, CreateLedgerEntryRequest{
			EntryDate:     time.Now(),
			AccountHeadID: &head.ID,
			Type:          "INCOM",
			Amount:        decimal.NewFromInt(100),
			CreatedBy:     userID,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ENTRY_TYPE", domainErr.Code)
		entryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an invalid transaction type", func(t *testing.T) {
		entryRepo := new(mockLedgerEntryRepository)
		headRepo := new(mockAccountHeadRepository)
		fundRepo := new(mockFundCategoryRepository)
		auditRec := new(mockAuditRecorder)
		service := NewLedgerService(entryRepo, headRepo, fundRepo, auditRec)

		_, err := service.Create(ctx, tenantID, CreateLedgerEntryRequest{
			EntryDate:       time.Now(),
			Type:            "EXPENSE",
			TransactionType: "TRANSFER",
			Amount:          decimal.NewFromInt(100),
			CreatedBy:       userID,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSACTION_TYPE", domainErr.Code)
	})
}

func TestLedgerService_BulkCreate(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	ctx := context.Background()

	t.Run("writes the whole batch in one call", func(t *testing.T) {
		entryRepo := new(mockLedgerEntryRepository)
		headRepo := new(mockAccountHeadRepository)
		fundRepo := new(mockFundCategoryRepository)
		auditRec := new(mockAuditRecorder)
		service := NewLedgerService(entryRepo, headRepo, fundRepo, auditRec)

		entryRepo.On("SaveAll", mock.Anything, mock.AnythingOfType("[]*accounting.LedgerEntry")).Return(nil)

		reqs := []CreateLedgerEntryRequest{
			{EntryDate: time.Now(), Type: "INCOME", Category: "Maintenance", Amount: decimal.NewFromInt(500), CreatedBy: userID},
			{EntryDate: time.Now(), Type: "EXPENSE", Category: "Security", Amount: decimal.NewFromInt(300), CreatedBy: userID},
		}
		responses, err := service.BulkCreate(ctx, tenantID, reqs)

		require.NoError(t, err)
		require.Len(t, responses, 2)
		entryRepo.AssertNumberOfCalls(t, "SaveAll", 1)
		entryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("a validation failure aborts before any write", func(t *testing.T) {
		entryRepo := new(mockLedgerEntryRepository)
		headRepo := new(mockAccountHeadRepository)
		fundRepo := new(mockFundCategoryRepository)
		auditRec := new(mockAuditRecorder)
		service := NewLedgerService(entryRepo, headRepo, fundRepo, auditRec)

		reqs := []CreateLedgerEntryRequest{
			{EntryDate: time.Now(), Type: "INCOME", Amount: decimal.NewFromInt(500), CreatedBy: userID},
			{EntryDate: time.Now(), Type: "INCOME", Amount: decimal.NewFromInt(-10), CreatedBy: userID},
		}
		_, err := service.BulkCreate(ctx, tenantID, reqs)

		require.Error(t, err)
		entryRepo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		entryRepo := new(mockLedgerEntryRepository)
		headRepo := new(mockAccountHeadRepository)
		fundRepo := new(mockFundCategoryRepository)
		auditRec := new(mockAuditRecorder)
		service := NewLedgerService(entryRepo, headRepo, fundRepo, auditRec)

		_, err := service.BulkCreate(ctx, tenantID, nil)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_BATCH", domainErr.Code)
	})
}

func TestLedgerService_Summary(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	entryRepo := new(mockLedgerEntryRepository)
	headRepo := new(mockAccountHeadRepository)
	fundRepo := new(mockFundCategoryRepository)
	auditRec := new(mockAuditRecorder)
	service := NewLedgerService(entryRepo, headRepo, fundRepo, auditRec)

	entryRepo.On("Summary", mock.Anything, tenantID).Return(&accounting.LedgerSummary{
		TotalIncome:  decimal.NewFromInt(10000),
		TotalExpense: decimal.NewFromInt(4000),
		Balance:      decimal.NewFromInt(6000),
	}, nil)

	resp, err := service.Summary(ctx, tenantID)

	require.NoError(t, err)
	assert.Equal(t, "10000", resp.TotalIncome.String())
	assert.Equal(t, "4000", resp.TotalExpense.String())
	assert.Equal(t, "6000", resp.Balance.String())
}

func TestLedgerService_ExportCSV(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	ctx := context.Background()

	entryRepo := new(mockLedgerEntryRepository)
	headRepo := new(mockAccountHeadRepository)
	fundRepo := new(mockFundCategoryRepository)
	auditRec := new(mockAuditRecorder)
	service := NewLedgerService(entryRepo, headRepo, fundRepo, auditRec)

	entry, err := accounting.NewLedgerEntry(tenantID, time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), accounting.EntryTypeIncome, "Maintenance, Collection", decimal.NewFromFloat(1250.50), userID)
	require.NoError(t, err)
	entry.Description = "April dues"

	entryRepo.On("FindAllForTenant", mock.Anything, tenantID, mock.AnythingOfType("accounting.LedgerEntryFilter")).Return([]accounting.LedgerEntry{*entry}, nil)

	data, err := service.ExportCSV(ctx, tenantID, LedgerEntryListFilter{})

	require.NoError(t, err)
	out := string(data)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Type,Category,Amount,Reference,Description", lines[0])
	assert.Contains(t, lines[1], "2026-04-10")
	assert.Contains(t, lines[1], "1250.50")
	// The comma inside the category is quoted, not split.
	assert.Contains(t, lines[1], `"Maintenance, Collection"`)
}
