package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func newTestInvoice(t *testing.T, subtotal int64) *Invoice {
	t.Helper()
	inv, err := NewInvoice(
		uuid.New(),
		NewInvoiceNumber(2026),
		uuid.New(),
		nil,
		time.Now(),
		time.Now().AddDate(0, 0, 15),
		d(subtotal), decimal.Zero, decimal.Zero, decimal.Zero,
	)
	require.NoError(t, err)
	return inv
}

func TestDeriveInvoiceStatus(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 10)
	past := now.AddDate(0, 0, -10)

	tests := []struct {
		name        string
		outstanding int64
		total       int64
		dueDate     time.Time
		want        InvoiceStatus
	}{
		{"fully paid", 0, 1000, future, InvoiceStatusPaid},
		{"paid ignores due date", 0, 1000, past, InvoiceStatusPaid},
		{"partially paid", 400, 1000, future, InvoiceStatusPartiallyPaid},
		{"partially paid past due stays partial", 400, 1000, past, InvoiceStatusPartiallyPaid},
		{"untouched before due", 1000, 1000, future, InvoiceStatusUnpaid},
		{"untouched past due", 1000, 1000, past, InvoiceStatusOverdue},
		{"due today is not overdue", 1000, 1000, now.Add(-time.Hour), InvoiceStatusUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveInvoiceStatus(d(tt.outstanding), d(tt.total), tt.dueDate, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewInvoice(t *testing.T) {
	inv, err := NewInvoice(
		uuid.New(), NewInvoiceNumber(2026), uuid.New(), nil,
		time.Now(), time.Now().AddDate(0, 0, 15),
		d(900), d(50), d(45), d(5),
	)
	require.NoError(t, err)

	assert.True(t, inv.TotalAmount.Equal(d(1000)))
	assert.True(t, inv.OutstandingAmount.Equal(d(1000)))
	assert.Equal(t, InvoiceStatusUnpaid, inv.Status)
	assert.Equal(t, 1, inv.GetVersion())
}

func TestNewInvoice_Invalid(t *testing.T) {
	now := time.Now()

	_, err := NewInvoice(uuid.New(), "", uuid.New(), nil, now, now, d(100), d(0), d(0), d(0))
	assert.Error(t, err)

	_, err = NewInvoice(uuid.New(), "INV-2026-AAAAAAAA", uuid.Nil, nil, now, now, d(100), d(0), d(0), d(0))
	assert.Error(t, err)

	_, err = NewInvoice(uuid.New(), "INV-2026-AAAAAAAA", uuid.New(), nil, now, now, d(0), d(0), d(0), d(0))
	assert.Error(t, err)

	_, err = NewInvoice(uuid.New(), "INV-2026-AAAAAAAA", uuid.New(), nil, now, now, d(100), d(-1), d(0), d(0))
	assert.Error(t, err)
}

func TestInvoice_ApplyPayment(t *testing.T) {
	inv := newTestInvoice(t, 1000)

	require.NoError(t, inv.ApplyPayment(d(500)))
	assert.True(t, inv.OutstandingAmount.Equal(d(500)))
	assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)

	require.NoError(t, inv.ApplyPayment(d(500)))
	assert.True(t, inv.OutstandingAmount.IsZero())
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.PaidAmount().Equal(d(1000)))
}

func TestInvoice_ApplyPayment_Rejections(t *testing.T) {
	inv := newTestInvoice(t, 1000)

	assert.Error(t, inv.ApplyPayment(decimal.Zero))
	assert.Error(t, inv.ApplyPayment(d(-10)))
	assert.Error(t, inv.ApplyPayment(d(1001)))

	// A rejected payment leaves the invoice unmodified
	assert.True(t, inv.OutstandingAmount.Equal(d(1000)))
	assert.Equal(t, InvoiceStatusUnpaid, inv.Status)
	assert.Equal(t, 1, inv.GetVersion())
}

func TestInvoice_PaymentThenRefundConservation(t *testing.T) {
	inv := newTestInvoice(t, 1000)

	require.NoError(t, inv.ApplyPayment(d(500)))
	require.NoError(t, inv.ReversePayment(d(500)))

	assert.True(t, inv.OutstandingAmount.Equal(d(1000)))
	assert.Equal(t, InvoiceStatusUnpaid, inv.Status)
}

func TestInvoice_CashThenChequeThenRefundScenario(t *testing.T) {
	inv := newTestInvoice(t, 1000)

	require.NoError(t, inv.ApplyPayment(d(500)))
	assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
	assert.True(t, inv.OutstandingAmount.Equal(d(500)))

	require.NoError(t, inv.ApplyPayment(d(500)))
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.OutstandingAmount.IsZero())

	require.NoError(t, inv.ReversePayment(d(500)))
	assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
	assert.True(t, inv.OutstandingAmount.Equal(d(500)))
}

func TestInvoice_OutstandingBoundsInvariant(t *testing.T) {
	inv := newTestInvoice(t, 1000)

	amounts := []int64{100, 250, 400, 250}
	for _, a := range amounts {
		require.NoError(t, inv.ApplyPayment(d(a)))
		assert.True(t, inv.OutstandingAmount.GreaterThanOrEqual(decimal.Zero))
		assert.True(t, inv.OutstandingAmount.LessThanOrEqual(inv.TotalAmount))
	}
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
}

func TestInvoice_ReviseAmounts(t *testing.T) {
	inv := newTestInvoice(t, 1000)
	require.NoError(t, inv.ApplyPayment(d(400)))

	require.NoError(t, inv.ReviseAmounts(d(1000), d(100), d(0), d(0)))
	assert.True(t, inv.TotalAmount.Equal(d(1100)))
	// Paid amount is preserved across a revision
	assert.True(t, inv.OutstandingAmount.Equal(d(700)))
	assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
}

func TestInvoice_ReviseAmounts_BelowPaidRejected(t *testing.T) {
	inv := newTestInvoice(t, 1000)
	require.NoError(t, inv.ApplyPayment(d(800)))

	err := inv.ReviseAmounts(d(500), d(0), d(0), d(0))
	assert.Error(t, err)
	assert.True(t, inv.TotalAmount.Equal(d(1000)))
}

func TestInvoice_ForceStatus(t *testing.T) {
	inv := newTestInvoice(t, 1000)

	require.NoError(t, inv.ForceStatus(InvoiceStatusPaid))
	assert.Equal(t, InvoiceStatusPaid, inv.Status)

	assert.Error(t, inv.ForceStatus(InvoiceStatus("VOID")))

	// The next state-changing operation re-derives and the override is gone
	require.NoError(t, inv.ApplyPayment(d(400)))
	assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
}

func TestParseInvoiceStatus(t *testing.T) {
	s, err := ParseInvoiceStatus("partially_paid")
	require.NoError(t, err)
	assert.Equal(t, InvoiceStatusPartiallyPaid, s)

	_, err = ParseInvoiceStatus("SETTLED")
	assert.Error(t, err)
}

func TestNewInvoiceNumber(t *testing.T) {
	assert.Regexp(t, `^INV-2026-[0-9A-F]{8}$`, NewInvoiceNumber(2026))
}
