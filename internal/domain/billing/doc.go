// Package billing provides domain models for resident billing and collections
// in a multi-tenant housing society application.
//
// This package implements the billing bounded context, which is responsible for:
//   - Raising maintenance bills and invoices against units
//   - Recording payments, refunds and receipt issuance
//   - Tracking online checkout sessions against the payment gateway
//
// Key Aggregates:
//   - BillingCycle: A published monthly billing period
//   - Invoice: An amount owed by a unit, with derived UNPAID/PARTIALLY_PAID/PAID/OVERDUE status
//   - Payment: A settlement against an invoice or maintenance bill
//   - MaintenanceBill: A flat periodic charge against a unit
//   - GatewayTransaction: One online checkout attempt and its provider callbacks
//
// The billing domain integrates with:
//   - Accounting domain: Collections feed the ledger and financial reports
//   - Audit domain: Every state change is recorded for the audit trail
package billing
