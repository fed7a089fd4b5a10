package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/accounting"
)

// AccountHeadModel is the persistence model for the AccountHead aggregate root.
type AccountHeadModel struct {
	TenantAggregateModel
	HeadName     string              `gorm:"type:varchar(200);not null;uniqueIndex:idx_account_head_tenant_name,priority:2"`
	HeadType     accounting.HeadType `gorm:"type:varchar(20);not null;index"`
	ParentHeadID *uuid.UUID          `gorm:"type:uuid;index"`
	Description  string              `gorm:"type:text"`
	Deleted      bool                `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (AccountHeadModel) TableName() string {
	return "account_heads"
}

// ToDomain converts the persistence model to a domain AccountHead entity.
func (m *AccountHeadModel) ToDomain() *accounting.AccountHead {
	head := &accounting.AccountHead{
		HeadName:     m.HeadName,
		HeadType:     m.HeadType,
		ParentHeadID: m.ParentHeadID,
		Description:  m.Description,
		Deleted:      m.Deleted,
	}
	m.PopulateTenantAggregateRoot(&head.TenantAggregateRoot)
	return head
}

// FromDomain populates the persistence model from a domain AccountHead entity.
func (m *AccountHeadModel) FromDomain(head *accounting.AccountHead) {
	m.FromDomainTenantAggregateRoot(head.TenantAggregateRoot)
	m.HeadName = head.HeadName
	m.HeadType = head.HeadType
	m.ParentHeadID = head.ParentHeadID
	m.Description = head.Description
	m.Deleted = head.Deleted
}

// AccountHeadModelFromDomain creates a new persistence model from a domain AccountHead.
func AccountHeadModelFromDomain(head *accounting.AccountHead) *AccountHeadModel {
	m := &AccountHeadModel{}
	m.FromDomain(head)
	return m
}

// FundCategoryModel is the persistence model for the FundCategory aggregate root.
type FundCategoryModel struct {
	TenantAggregateModel
	CategoryName   string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_fund_category_tenant_name,priority:2"`
	Description    string          `gorm:"type:text"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Deleted        bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (FundCategoryModel) TableName() string {
	return "fund_categories"
}

// ToDomain converts the persistence model to a domain FundCategory entity.
func (m *FundCategoryModel) ToDomain() *accounting.FundCategory {
	category := &accounting.FundCategory{
		CategoryName:   m.CategoryName,
		Description:    m.Description,
		CurrentBalance: m.CurrentBalance,
		Deleted:        m.Deleted,
	}
	m.PopulateTenantAggregateRoot(&category.TenantAggregateRoot)
	return category
}

// FromDomain populates the persistence model from a domain FundCategory entity.
func (m *FundCategoryModel) FromDomain(category *accounting.FundCategory) {
	m.FromDomainTenantAggregateRoot(category.TenantAggregateRoot)
	m.CategoryName = category.CategoryName
	m.Description = category.Description
	m.CurrentBalance = category.CurrentBalance
	m.Deleted = category.Deleted
}

// FundCategoryModelFromDomain creates a new persistence model from a domain FundCategory.
func FundCategoryModelFromDomain(category *accounting.FundCategory) *FundCategoryModel {
	m := &FundCategoryModel{}
	m.FromDomain(category)
	return m
}

// LedgerEntryModel is the persistence model for the LedgerEntry aggregate root.
type LedgerEntryModel struct {
	TenantAggregateModel
	EntryDate       time.Time                    `gorm:"not null;index"`
	AccountHeadID   *uuid.UUID                   `gorm:"type:uuid;index"`
	FundCategoryID  *uuid.UUID                   `gorm:"type:uuid;index"`
	TransactionType *accounting.TransactionType  `gorm:"type:varchar(10)"`
	Amount          decimal.Decimal              `gorm:"type:decimal(18,2);not null"`
	Type            accounting.EntryType         `gorm:"type:varchar(20);not null;index"`
	Category        string                       `gorm:"type:varchar(100);not null;index"`
	Reference       string                       `gorm:"type:varchar(200)"`
	ReferenceType   string                       `gorm:"type:varchar(50);index"`
	ReferenceID     *uuid.UUID                   `gorm:"type:uuid;index"`
	Description     string                       `gorm:"type:text"`
	Deleted         bool                         `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain LedgerEntry entity.
func (m *LedgerEntryModel) ToDomain() *accounting.LedgerEntry {
	entry := &accounting.LedgerEntry{
		EntryDate:       m.EntryDate,
		AccountHeadID:   m.AccountHeadID,
		FundCategoryID:  m.FundCategoryID,
		TransactionType: m.TransactionType,
		Amount:          m.Amount,
		Type:            m.Type,
		Category:        m.Category,
		Reference:       m.Reference,
		ReferenceType:   m.ReferenceType,
		ReferenceID:     m.ReferenceID,
		Description:     m.Description,
		Deleted:         m.Deleted,
	}
	m.PopulateTenantAggregateRoot(&entry.TenantAggregateRoot)
	return entry
}

// FromDomain populates the persistence model from a domain LedgerEntry entity.
func (m *LedgerEntryModel) FromDomain(entry *accounting.LedgerEntry) {
	m.FromDomainTenantAggregateRoot(entry.TenantAggregateRoot)
	m.EntryDate = entry.EntryDate
	m.AccountHeadID = entry.AccountHeadID
	m.FundCategoryID = entry.FundCategoryID
	m.TransactionType = entry.TransactionType
	m.Amount = entry.Amount
	m.Type = entry.Type
	m.Category = entry.Category
	m.Reference = entry.Reference
	m.ReferenceType = entry.ReferenceType
	m.ReferenceID = entry.ReferenceID
	m.Description = entry.Description
	m.Deleted = entry.Deleted
}

// LedgerEntryModelFromDomain creates a new persistence model from a domain LedgerEntry.
func LedgerEntryModelFromDomain(entry *accounting.LedgerEntry) *LedgerEntryModel {
	m := &LedgerEntryModel{}
	m.FromDomain(entry)
	return m
}

// ExpenseModel is the persistence model for the Expense aggregate root.
type ExpenseModel struct {
	TenantAggregateModel
	ExpenseNumber  string                   `gorm:"type:varchar(50);not null;uniqueIndex:idx_expense_tenant_number,priority:2"`
	AccountHeadID  uuid.UUID                `gorm:"type:uuid;not null;index"`
	FundCategoryID *uuid.UUID               `gorm:"type:uuid;index"`
	VendorID       *uuid.UUID               `gorm:"type:uuid;index"`
	ExpenseDate    time.Time                `gorm:"not null;index"`
	Amount         decimal.Decimal          `gorm:"type:decimal(18,2);not null"`
	Description    string                   `gorm:"type:text"`
	InvoiceNumber  string                   `gorm:"type:varchar(100)"`
	InvoiceURL     string                   `gorm:"type:varchar(500)"`
	PaymentStatus  accounting.ExpenseStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ApprovedBy     *uuid.UUID               `gorm:"type:uuid"`
	ApprovalDate   *time.Time
	Deleted        bool `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *accounting.Expense {
	expense := &accounting.Expense{
		ExpenseNumber:  m.ExpenseNumber,
		AccountHeadID:  m.AccountHeadID,
		FundCategoryID: m.FundCategoryID,
		VendorID:       m.VendorID,
		ExpenseDate:    m.ExpenseDate,
		Amount:         m.Amount,
		Description:    m.Description,
		InvoiceNumber:  m.InvoiceNumber,
		InvoiceURL:     m.InvoiceURL,
		PaymentStatus:  m.PaymentStatus,
		ApprovedBy:     m.ApprovedBy,
		ApprovalDate:   m.ApprovalDate,
		Deleted:        m.Deleted,
	}
	m.PopulateTenantAggregateRoot(&expense.TenantAggregateRoot)
	return expense
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(expense *accounting.Expense) {
	m.FromDomainTenantAggregateRoot(expense.TenantAggregateRoot)
	m.ExpenseNumber = expense.ExpenseNumber
	m.AccountHeadID = expense.AccountHeadID
	m.FundCategoryID = expense.FundCategoryID
	m.VendorID = expense.VendorID
	m.ExpenseDate = expense.ExpenseDate
	m.Amount = expense.Amount
	m.Description = expense.Description
	m.InvoiceNumber = expense.InvoiceNumber
	m.InvoiceURL = expense.InvoiceURL
	m.PaymentStatus = expense.PaymentStatus
	m.ApprovedBy = expense.ApprovedBy
	m.ApprovalDate = expense.ApprovalDate
	m.Deleted = expense.Deleted
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense.
func ExpenseModelFromDomain(expense *accounting.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(expense)
	return m
}

// VendorModel is the persistence model for the Vendor aggregate root.
type VendorModel struct {
	TenantAggregateModel
	VendorName    string `gorm:"type:varchar(200);not null;index"`
	ContactPerson string `gorm:"type:varchar(200)"`
	Phone         string `gorm:"type:varchar(20)"`
	Email         string `gorm:"type:varchar(200)"`
	Address       string `gorm:"type:text"`
	GSTIN         string `gorm:"type:varchar(15)"`
	PAN           string `gorm:"type:varchar(10)"`
	VendorType    string `gorm:"type:varchar(50);index"`
	Active        bool   `gorm:"not null;default:true;index"`
	Deleted       bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor entity.
func (m *VendorModel) ToDomain() *accounting.Vendor {
	vendor := &accounting.Vendor{
		VendorName:    m.VendorName,
		ContactPerson: m.ContactPerson,
		Phone:         m.Phone,
		Email:         m.Email,
		Address:       m.Address,
		GSTIN:         m.GSTIN,
		PAN:           m.PAN,
		VendorType:    m.VendorType,
		Active:        m.Active,
		Deleted:       m.Deleted,
	}
	m.PopulateTenantAggregateRoot(&vendor.TenantAggregateRoot)
	return vendor
}

// FromDomain populates the persistence model from a domain Vendor entity.
func (m *VendorModel) FromDomain(vendor *accounting.Vendor) {
	m.FromDomainTenantAggregateRoot(vendor.TenantAggregateRoot)
	m.VendorName = vendor.VendorName
	m.ContactPerson = vendor.ContactPerson
	m.Phone = vendor.Phone
	m.Email = vendor.Email
	m.Address = vendor.Address
	m.GSTIN = vendor.GSTIN
	m.PAN = vendor.PAN
	m.VendorType = vendor.VendorType
	m.Active = vendor.Active
	m.Deleted = vendor.Deleted
}

// VendorModelFromDomain creates a new persistence model from a domain Vendor.
func VendorModelFromDomain(vendor *accounting.Vendor) *VendorModel {
	m := &VendorModel{}
	m.FromDomain(vendor)
	return m
}

// VendorPaymentModel is the persistence model for the VendorPayment aggregate root.
type VendorPaymentModel struct {
	TenantAggregateModel
	VendorID             uuid.UUID                      `gorm:"type:uuid;not null;index"`
	ExpenseID            *uuid.UUID                     `gorm:"type:uuid;index"`
	PaymentDate          time.Time                      `gorm:"not null;index"`
	Amount               decimal.Decimal                `gorm:"type:decimal(18,2);not null"`
	PaymentMethod        string                         `gorm:"type:varchar(30)"`
	TransactionReference string                         `gorm:"type:varchar(100)"`
	Status               accounting.VendorPaymentStatus `gorm:"type:varchar(20);not null;default:'COMPLETED';index"`
	Deleted              bool                           `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (VendorPaymentModel) TableName() string {
	return "vendor_payments"
}

// ToDomain converts the persistence model to a domain VendorPayment entity.
func (m *VendorPaymentModel) ToDomain() *accounting.VendorPayment {
	payment := &accounting.VendorPayment{
		VendorID:             m.VendorID,
		ExpenseID:            m.ExpenseID,
		PaymentDate:          m.PaymentDate,
		Amount:               m.Amount,
		PaymentMethod:        m.PaymentMethod,
		TransactionReference: m.TransactionReference,
		Status:               m.Status,
		Deleted:              m.Deleted,
	}
	m.PopulateTenantAggregateRoot(&payment.TenantAggregateRoot)
	return payment
}

// FromDomain populates the persistence model from a domain VendorPayment entity.
func (m *VendorPaymentModel) FromDomain(payment *accounting.VendorPayment) {
	m.FromDomainTenantAggregateRoot(payment.TenantAggregateRoot)
	m.VendorID = payment.VendorID
	m.ExpenseID = payment.ExpenseID
	m.PaymentDate = payment.PaymentDate
	m.Amount = payment.Amount
	m.PaymentMethod = payment.PaymentMethod
	m.TransactionReference = payment.TransactionReference
	m.Status = payment.Status
	m.Deleted = payment.Deleted
}

// VendorPaymentModelFromDomain creates a new persistence model from a domain VendorPayment.
func VendorPaymentModelFromDomain(payment *accounting.VendorPayment) *VendorPaymentModel {
	m := &VendorPaymentModel{}
	m.FromDomain(payment)
	return m
}

// BudgetModel is the persistence model for the Budget aggregate root.
type BudgetModel struct {
	TenantAggregateModel
	FinancialYear  string          `gorm:"type:varchar(9);not null;uniqueIndex:idx_budget_tenant_year_head,priority:2"`
	AccountHeadID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budget_tenant_year_head,priority:3"`
	BudgetedAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Notes          string          `gorm:"type:text"`
	Deleted        bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToDomain converts the persistence model to a domain Budget entity.
func (m *BudgetModel) ToDomain() *accounting.Budget {
	budget := &accounting.Budget{
		FinancialYear:  m.FinancialYear,
		AccountHeadID:  m.AccountHeadID,
		BudgetedAmount: m.BudgetedAmount,
		Notes:          m.Notes,
		Deleted:        m.Deleted,
	}
	m.PopulateTenantAggregateRoot(&budget.TenantAggregateRoot)
	return budget
}

// FromDomain populates the persistence model from a domain Budget entity.
func (m *BudgetModel) FromDomain(budget *accounting.Budget) {
	m.FromDomainTenantAggregateRoot(budget.TenantAggregateRoot)
	m.FinancialYear = budget.FinancialYear
	m.AccountHeadID = budget.AccountHeadID
	m.BudgetedAmount = budget.BudgetedAmount
	m.Notes = budget.Notes
	m.Deleted = budget.Deleted
}

// BudgetModelFromDomain creates a new persistence model from a domain Budget.
func BudgetModelFromDomain(budget *accounting.Budget) *BudgetModel {
	m := &BudgetModel{}
	m.FromDomain(budget)
	return m
}
