package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/billing"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockInvoiceRepository creates a GormInvoiceRepository with a mocked SQL connection
func newMockInvoiceRepository(t *testing.T) (*GormInvoiceRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormInvoiceRepository(gormDB), mock, mockDB
}

func TestGormInvoiceRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds invoice within tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()
		tenantID := uuid.New()
		unitID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "version", "invoice_number", "unit_id", "total_amount", "outstanding_amount", "status"}).
			AddRow(invoiceID, tenantID, 1, "INV-202509-0001", unitID, decimal.NewFromInt(1000), decimal.NewFromInt(1000), "UNPAID")

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE tenant_id = \$1 AND id = \$2 AND deleted = false ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, invoiceID, 1).
			WillReturnRows(rows)

		invoice, err := repo.FindByIDForTenant(context.Background(), tenantID, invoiceID)

		assert.NoError(t, err)
		assert.NotNil(t, invoice)
		assert.Equal(t, invoiceID, invoice.ID)
		assert.Equal(t, "INV-202509-0001", invoice.InvoiceNumber)
		assert.Equal(t, billing.InvoiceStatusUnpaid, invoice.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns NotFound for missing invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE tenant_id = \$1 AND id = \$2 AND deleted = false ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, invoiceID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		invoice, err := repo.FindByIDForTenant(context.Background(), tenantID, invoiceID)

		assert.Error(t, err)
		assert.Nil(t, invoice)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_FindDefaulters(t *testing.T) {
	t.Run("returns only past-due invoices with outstanding balance", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		asOf := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "version", "invoice_number", "unit_id", "total_amount", "outstanding_amount", "status"}).
			AddRow(uuid.New(), tenantID, 1, "INV-202507-0003", uuid.New(), decimal.NewFromInt(1500), decimal.NewFromInt(500), "OVERDUE")

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE tenant_id = \$1 AND due_date < \$2 AND outstanding_amount > 0 AND deleted = false ORDER BY due_date ASC`).
			WithArgs(tenantID, asOf).
			WillReturnRows(rows)

		invoices, err := repo.FindDefaulters(context.Background(), tenantID, asOf)

		assert.NoError(t, err)
		assert.Len(t, invoices, 1)
		assert.Equal(t, "INV-202507-0003", invoices[0].InvoiceNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_ExistsByNumber(t *testing.T) {
	t.Run("reports taken invoice number", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE tenant_id = \$1 AND invoice_number = \$2`).
			WithArgs(tenantID, "INV-202509-0001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByNumber(context.Background(), tenantID, "INV-202509-0001")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports free invoice number", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE tenant_id = \$1 AND invoice_number = \$2`).
			WithArgs(tenantID, "INV-202509-9999").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByNumber(context.Background(), tenantID, "INV-202509-9999")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_SaveWithLock(t *testing.T) {
	t.Run("returns conflict when stored version moved on", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		unitID := uuid.New()

		invoice, err := billing.NewInvoice(tenantID, "INV-202509-0001", unitID, nil,
			time.Now(), time.Now().AddDate(0, 0, 15),
			decimal.NewFromInt(1000), decimal.Zero, decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		invoice.IncrementVersion() // caller mutated, expects stored version 1

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoice.ID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(5))
		mock.ExpectRollback()

		err = repo.SaveWithLock(context.Background(), invoice)

		assert.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when concurrent update wins the race", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		unitID := uuid.New()

		invoice, err := billing.NewInvoice(tenantID, "INV-202509-0002", unitID, nil,
			time.Now(), time.Now().AddDate(0, 0, 15),
			decimal.NewFromInt(1000), decimal.Zero, decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		invoice.IncrementVersion()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoice.ID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))
		mock.ExpectExec(`UPDATE "invoices" SET .* WHERE \(id = \$\d+ AND version = \$\d+\).*`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.SaveWithLock(context.Background(), invoice)

		assert.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("creates the invoice when it does not exist yet", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		unitID := uuid.New()

		invoice, err := billing.NewInvoice(tenantID, "INV-202509-0003", unitID, nil,
			time.Now(), time.Now().AddDate(0, 0, 15),
			decimal.NewFromInt(1000), decimal.Zero, decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoice.ID, 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectExec(`INSERT INTO "invoices"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.SaveWithLock(context.Background(), invoice)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
