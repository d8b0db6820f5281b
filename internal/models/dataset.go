package models

import "time"

// PeriodKey formats an invoice date as the fixed-width year-month key
// used to group rows in the monthly summary.
func PeriodKey(t time.Time) string {
	return t.Format("2006-01")
}

// FlatRow is the denormalized projection of one validated Invoice into
// a single tabular row, with line items expanded into indexed columns
// by the renderer. One FlatRow per accepted invoice.
type FlatRow struct {
	SourceFile       string
	InvoiceNumber    string
	InvoiceDate      time.Time
	Period           string // YYYY-MM, derived from InvoiceDate
	InvoiceType      InvoiceType
	IssuerName       string
	IssuerAddress    string
	IssuerPhone      string
	IssuerEmail      string
	RecipientName    string
	RecipientAddress string
	RecipientPhone   string
	RecipientEmail   string
	Subtotal         float64
	TaxRate          float64
	Tax              float64
	Total            float64
	Terms            string
	Items            []InvoiceItem
}

// FlattenInvoice projects a validated Invoice into a FlatRow and
// derives its period key.
func FlattenInvoice(sourceFile string, inv *Invoice) FlatRow {
	return FlatRow{
		SourceFile:       sourceFile,
		InvoiceNumber:    inv.InvoiceNumber,
		InvoiceDate:      inv.InvoiceDate,
		Period:           PeriodKey(inv.InvoiceDate),
		InvoiceType:      inv.InvoiceType,
		IssuerName:       inv.Issuer.Name,
		IssuerAddress:    inv.Issuer.Address,
		IssuerPhone:      inv.Issuer.Phone,
		IssuerEmail:      inv.Issuer.Email,
		RecipientName:    inv.Recipient.Name,
		RecipientAddress: inv.Recipient.Address,
		RecipientPhone:   inv.Recipient.Phone,
		RecipientEmail:   inv.Recipient.Email,
		Subtotal:         inv.Subtotal,
		TaxRate:          inv.TaxRate,
		Tax:              inv.Tax,
		Total:            inv.Total,
		Terms:            inv.Terms,
		Items:            inv.Items,
	}
}

// Dataset is the ordered collection of accepted rows produced by the
// validator. It is consumed read-only by the aggregator and renderer.
type Dataset struct {
	Rows []FlatRow
}

// MaxItemCount returns the widest line-item count across all rows,
// which determines how many indexed item columns the report needs.
func (d *Dataset) MaxItemCount() int {
	max := 0
	for _, row := range d.Rows {
		if len(row.Items) > max {
			max = len(row.Items)
		}
	}
	return max
}
