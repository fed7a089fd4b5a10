package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// AccountHeadSortFields contains allowed sort fields for account heads
var AccountHeadSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"head_name":  true,
	"head_type":  true,
}

// FundCategorySortFields contains allowed sort fields for fund categories
var FundCategorySortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"category_name":   true,
	"current_balance": true,
}

// LedgerEntrySortFields contains allowed sort fields for ledger entries
var LedgerEntrySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"entry_date": true,
	"amount":     true,
	"type":       true,
	"category":   true,
}

// ExpenseSortFields contains allowed sort fields for expenses
var ExpenseSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"expense_number": true,
	"expense_date":   true,
	"amount":         true,
	"payment_status": true,
}

// VendorSortFields contains allowed sort fields for vendors
var VendorSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"vendor_name": true,
	"vendor_type": true,
	"active":      true,
}

// VendorPaymentSortFields contains allowed sort fields for vendor payments
var VendorPaymentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"payment_date": true,
	"amount":       true,
	"status":       true,
}

// BudgetSortFields contains allowed sort fields for budgets
var BudgetSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"financial_year":  true,
	"budgeted_amount": true,
}

// BillingCycleSortFields contains allowed sort fields for billing cycles
var BillingCycleSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"year":       true,
	"month":      true,
	"due_date":   true,
	"status":     true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"invoice_number":     true,
	"invoice_date":       true,
	"due_date":           true,
	"total_amount":       true,
	"outstanding_amount": true,
	"status":             true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"paid_at":        true,
	"amount":         true,
	"mode":           true,
	"payment_status": true,
}

// MaintenanceBillSortFields contains allowed sort fields for maintenance bills
var MaintenanceBillSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"year":       true,
	"month":      true,
	"due_date":   true,
	"amount":     true,
	"status":     true,
}

// GatewayTransactionSortFields contains allowed sort fields for gateway transactions
var GatewayTransactionSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"amount":     true,
	"status":     true,
	"expires_at": true,
}
