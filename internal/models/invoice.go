package models

import "time"

// InvoiceType is the direction of an invoice relative to the reference
// company: incoming means money the company owes, outgoing means money
// owed to it. Unknown is a valid third state, kept explicit so that
// aggregation can exclude such invoices from both revenue and expenses.
type InvoiceType string

const (
	InvoiceTypeIncoming InvoiceType = "incoming"
	InvoiceTypeOutgoing InvoiceType = "outgoing"
	InvoiceTypeUnknown  InvoiceType = "unknown"
)

// ParseInvoiceType maps the extracted direction string to an InvoiceType.
// Empty or null input maps to unknown; any other value is rejected
// earlier by schema validation.
func ParseInvoiceType(s string) InvoiceType {
	switch s {
	case string(InvoiceTypeIncoming):
		return InvoiceTypeIncoming
	case string(InvoiceTypeOutgoing):
		return InvoiceTypeOutgoing
	default:
		return InvoiceTypeUnknown
	}
}

// InvoiceItem is a single line item on an invoice.
type InvoiceItem struct {
	Description string  `json:"description"`
	Total       float64 `json:"total"`
}

// Company represents the issuer or recipient of an invoice. Phone and
// email are frequently absent from scanned documents.
type Company struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Invoice is one fully validated invoice record. An Invoice is only
// ever constructed whole: documents that fail validation never produce
// a partial record.
type Invoice struct {
	InvoiceNumber string
	InvoiceDate   time.Time
	InvoiceType   InvoiceType
	Issuer        Company
	Recipient     Company
	Items         []InvoiceItem
	Subtotal      float64
	TaxRate       float64
	Tax           float64
	Total         float64
	Terms         string
}
