package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/billing"
)

// BillingCycleModel is the persistence model for the BillingCycle aggregate root.
type BillingCycleModel struct {
	TenantAggregateModel
	CycleName             string              `gorm:"type:varchar(100);not null"`
	Month                 int                 `gorm:"not null;uniqueIndex:idx_cycle_tenant_period,priority:3"`
	Year                  int                 `gorm:"not null;uniqueIndex:idx_cycle_tenant_period,priority:2"`
	DueDate               time.Time           `gorm:"not null"`
	LateFeeApplicableDate *time.Time
	Status                billing.CycleStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Deleted               bool                `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (BillingCycleModel) TableName() string {
	return "billing_cycles"
}

// ToDomain converts the persistence model to a domain BillingCycle entity.
func (m *BillingCycleModel) ToDomain() *billing.BillingCycle {
	cycle := &billing.BillingCycle{
		CycleName:             m.CycleName,
		Month:                 m.Month,
		Year:                  m.Year,
		DueDate:               m.DueDate,
		LateFeeApplicableDate: m.LateFeeApplicableDate,
		Status:                m.Status,
		Deleted:               m.Deleted,
	}
	m.PopulateTenantAggregateRoot(&cycle.TenantAggregateRoot)
	return cycle
}

// FromDomain populates the persistence model from a domain BillingCycle entity.
func (m *BillingCycleModel) FromDomain(cycle *billing.BillingCycle) {
	m.FromDomainTenantAggregateRoot(cycle.TenantAggregateRoot)
	m.CycleName = cycle.CycleName
	m.Month = cycle.Month
	m.Year = cycle.Year
	m.DueDate = cycle.DueDate
	m.LateFeeApplicableDate = cycle.LateFeeApplicableDate
	m.Status = cycle.Status
	m.Deleted = cycle.Deleted
}

// BillingCycleModelFromDomain creates a new persistence model from a domain BillingCycle.
func BillingCycleModelFromDomain(cycle *billing.BillingCycle) *BillingCycleModel {
	m := &BillingCycleModel{}
	m.FromDomain(cycle)
	return m
}

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	TenantAggregateModel
	InvoiceNumber     string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_tenant_number,priority:2"`
	UnitID            uuid.UUID             `gorm:"type:uuid;not null;index"`
	BillingCycleID    *uuid.UUID            `gorm:"type:uuid;index"`
	InvoiceDate       time.Time             `gorm:"not null;index"`
	DueDate           time.Time             `gorm:"not null;index"`
	Subtotal          decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	LateFee           decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	GSTAmount         decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	OtherCharges      decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount       decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	OutstandingAmount decimal.Decimal       `gorm:"type:decimal(18,2);not null;index"`
	Status            billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'UNPAID';index"`
	Deleted           bool                  `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	invoice := &billing.Invoice{
		InvoiceNumber:     m.InvoiceNumber,
		UnitID:            m.UnitID,
		BillingCycleID:    m.BillingCycleID,
		InvoiceDate:       m.InvoiceDate,
		DueDate:           m.DueDate,
		Subtotal:          m.Subtotal,
		LateFee:           m.LateFee,
		GSTAmount:         m.GSTAmount,
		OtherCharges:      m.OtherCharges,
		TotalAmount:       m.TotalAmount,
		OutstandingAmount: m.OutstandingAmount,
		Status:            m.Status,
		Deleted:           m.Deleted,
	}
	m.PopulateTenantAggregateRoot(&invoice.TenantAggregateRoot)
	return invoice
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(invoice *billing.Invoice) {
	m.FromDomainTenantAggregateRoot(invoice.TenantAggregateRoot)
	m.InvoiceNumber = invoice.InvoiceNumber
	m.UnitID = invoice.UnitID
	m.BillingCycleID = invoice.BillingCycleID
	m.InvoiceDate = invoice.InvoiceDate
	m.DueDate = invoice.DueDate
	m.Subtotal = invoice.Subtotal
	m.LateFee = invoice.LateFee
	m.GSTAmount = invoice.GSTAmount
	m.OtherCharges = invoice.OtherCharges
	m.TotalAmount = invoice.TotalAmount
	m.OutstandingAmount = invoice.OutstandingAmount
	m.Status = invoice.Status
	m.Deleted = invoice.Deleted
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(invoice *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(invoice)
	return m
}

// PaymentModel is the persistence model for the Payment aggregate root.
type PaymentModel struct {
	TenantAggregateModel
	BillID         *uuid.UUID            `gorm:"type:uuid;index"`
	InvoiceID      *uuid.UUID            `gorm:"type:uuid;index"`
	UnitID         *uuid.UUID            `gorm:"type:uuid;index"`
	Amount         decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Mode           billing.PaymentMode   `gorm:"type:varchar(20);not null"`
	PaymentStatus  billing.PaymentStatus `gorm:"type:varchar(20);not null;default:'SUCCESS';index"`
	TransactionRef string                `gorm:"type:varchar(100);not null;uniqueIndex:idx_payment_tenant_txn_ref,priority:2"`
	ReceiptURL     string                `gorm:"type:varchar(500)"`
	PaidAt         time.Time             `gorm:"not null;index"`
	RefundedAt     *time.Time
	RefundReason   string `gorm:"type:varchar(500)"`
	Deleted        bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *billing.Payment {
	payment := &billing.Payment{
		BillID:         m.BillID,
		InvoiceID:      m.InvoiceID,
		UnitID:         m.UnitID,
		Amount:         m.Amount,
		Mode:           m.Mode,
		PaymentStatus:  m.PaymentStatus,
		TransactionRef: m.TransactionRef,
		ReceiptURL:     m.ReceiptURL,
		PaidAt:         m.PaidAt,
		RefundedAt:     m.RefundedAt,
		RefundReason:   m.RefundReason,
		Deleted:        m.Deleted,
	}
	m.PopulateTenantAggregateRoot(&payment.TenantAggregateRoot)
	return payment
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(payment *billing.Payment) {
	m.FromDomainTenantAggregateRoot(payment.TenantAggregateRoot)
	m.BillID = payment.BillID
	m.InvoiceID = payment.InvoiceID
	m.UnitID = payment.UnitID
	m.Amount = payment.Amount
	m.Mode = payment.Mode
	m.PaymentStatus = payment.PaymentStatus
	m.TransactionRef = payment.TransactionRef
	m.ReceiptURL = payment.ReceiptURL
	m.PaidAt = payment.PaidAt
	m.RefundedAt = payment.RefundedAt
	m.RefundReason = payment.RefundReason
	m.Deleted = payment.Deleted
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(payment *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(payment)
	return m
}

// MaintenanceBillModel is the persistence model for the MaintenanceBill aggregate root.
type MaintenanceBillModel struct {
	TenantAggregateModel
	UnitID  uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_bill_tenant_unit_period,priority:2"`
	Month   int                `gorm:"not null;uniqueIndex:idx_bill_tenant_unit_period,priority:4"`
	Year    int                `gorm:"not null;uniqueIndex:idx_bill_tenant_unit_period,priority:3"`
	Amount  decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	LateFee decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	DueDate time.Time          `gorm:"not null;index"`
	Status  billing.BillStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Deleted bool               `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (MaintenanceBillModel) TableName() string {
	return "maintenance_bills"
}

// ToDomain converts the persistence model to a domain MaintenanceBill entity.
func (m *MaintenanceBillModel) ToDomain() *billing.MaintenanceBill {
	bill := &billing.MaintenanceBill{
		UnitID:  m.UnitID,
		Month:   m.Month,
		Year:    m.Year,
		Amount:  m.Amount,
		LateFee: m.LateFee,
		DueDate: m.DueDate,
		Status:  m.Status,
		Deleted: m.Deleted,
	}
	m.PopulateTenantAggregateRoot(&bill.TenantAggregateRoot)
	return bill
}

// FromDomain populates the persistence model from a domain MaintenanceBill entity.
func (m *MaintenanceBillModel) FromDomain(bill *billing.MaintenanceBill) {
	m.FromDomainTenantAggregateRoot(bill.TenantAggregateRoot)
	m.UnitID = bill.UnitID
	m.Month = bill.Month
	m.Year = bill.Year
	m.Amount = bill.Amount
	m.LateFee = bill.LateFee
	m.DueDate = bill.DueDate
	m.Status = bill.Status
	m.Deleted = bill.Deleted
}

// MaintenanceBillModelFromDomain creates a new persistence model from a domain MaintenanceBill.
func MaintenanceBillModelFromDomain(bill *billing.MaintenanceBill) *MaintenanceBillModel {
	m := &MaintenanceBillModel{}
	m.FromDomain(bill)
	return m
}

// GatewayTransactionModel is the persistence model for the GatewayTransaction aggregate root.
type GatewayTransactionModel struct {
	TenantAggregateModel
	TransactionRef   string                  `gorm:"type:varchar(50);not null;uniqueIndex:idx_gateway_tenant_txn_ref,priority:2"`
	BillID           uuid.UUID               `gorm:"type:uuid;not null;index"`
	Provider         billing.GatewayProvider `gorm:"type:varchar(30);not null"`
	GatewayOrderID   string                  `gorm:"type:varchar(50);not null"`
	GatewayPaymentID string                  `gorm:"type:varchar(100)"`
	Amount           decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	Currency         string                  `gorm:"type:varchar(3);not null;default:'INR'"`
	Mode             billing.PaymentMode     `gorm:"type:varchar(20);not null"`
	Status           billing.GatewayStatus   `gorm:"type:varchar(20);not null;default:'CREATED';index"`
	FailureReason    string                  `gorm:"type:varchar(500)"`
	InitiatedBy      uuid.UUID               `gorm:"type:uuid;not null"`
	VerifiedBy       *uuid.UUID              `gorm:"type:uuid"`
	VerifiedAt       *time.Time
	CallbackPayload  string    `gorm:"type:text"`
	ExpiresAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (GatewayTransactionModel) TableName() string {
	return "gateway_transactions"
}

// ToDomain converts the persistence model to a domain GatewayTransaction entity.
func (m *GatewayTransactionModel) ToDomain() *billing.GatewayTransaction {
	txn := &billing.GatewayTransaction{
		TransactionRef:   m.TransactionRef,
		BillID:           m.BillID,
		Provider:         m.Provider,
		GatewayOrderID:   m.GatewayOrderID,
		GatewayPaymentID: m.GatewayPaymentID,
		Amount:           m.Amount,
		Currency:         m.Currency,
		Mode:             m.Mode,
		Status:           m.Status,
		FailureReason:    m.FailureReason,
		InitiatedBy:      m.InitiatedBy,
		VerifiedBy:       m.VerifiedBy,
		VerifiedAt:       m.VerifiedAt,
		CallbackPayload:  m.CallbackPayload,
		ExpiresAt:        m.ExpiresAt,
	}
	m.PopulateTenantAggregateRoot(&txn.TenantAggregateRoot)
	return txn
}

// FromDomain populates the persistence model from a domain GatewayTransaction entity.
func (m *GatewayTransactionModel) FromDomain(txn *billing.GatewayTransaction) {
	m.FromDomainTenantAggregateRoot(txn.TenantAggregateRoot)
	m.TransactionRef = txn.TransactionRef
	m.BillID = txn.BillID
	m.Provider = txn.Provider
	m.GatewayOrderID = txn.GatewayOrderID
	m.GatewayPaymentID = txn.GatewayPaymentID
	m.Amount = txn.Amount
	m.Currency = txn.Currency
	m.Mode = txn.Mode
	m.Status = txn.Status
	m.FailureReason = txn.FailureReason
	m.InitiatedBy = txn.InitiatedBy
	m.VerifiedBy = txn.VerifiedBy
	m.VerifiedAt = txn.VerifiedAt
	m.CallbackPayload = txn.CallbackPayload
	m.ExpiresAt = txn.ExpiresAt
}

// GatewayTransactionModelFromDomain creates a new persistence model from a domain GatewayTransaction.
func GatewayTransactionModelFromDomain(txn *billing.GatewayTransaction) *GatewayTransactionModel {
	m := &GatewayTransactionModel{}
	m.FromDomain(txn)
	return m
}
