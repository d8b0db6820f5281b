package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/garyjia/invoice-reporter/internal/models"
)

// TotalSummary is the whole-dataset financial rollup. Revenue and tax
// collected come from outgoing invoices, expenses and tax paid from
// incoming ones; invoices with unknown direction count toward the
// invoice total only.
type TotalSummary struct {
	Period       string
	Invoices     int
	Revenue      float64
	Expenses     float64
	NetIncome    float64
	TaxCollected float64
	TaxPaid      float64
	NetTax       float64
}

// PeriodSummary carries the same metric set as TotalSummary for one
// year-month bucket.
type PeriodSummary struct {
	Period       string
	Invoices     int
	Revenue      float64
	Expenses     float64
	NetIncome    float64
	TaxCollected float64
	TaxPaid      float64
	NetTax       float64
}

// Summarize computes the total and per-month summaries from the
// dataset. It is a pure function: the dataset is never mutated and
// repeated calls yield identical results. An empty dataset yields a
// zero-valued total with an empty period span and no monthly records.
func Summarize(dataset *models.Dataset) (TotalSummary, []PeriodSummary) {
	var total TotalSummary
	total.Invoices = len(dataset.Rows)

	if len(dataset.Rows) == 0 {
		return total, nil
	}

	var minDate, maxDate time.Time
	byPeriod := make(map[string]*PeriodSummary)

	for _, row := range dataset.Rows {
		if minDate.IsZero() || row.InvoiceDate.Before(minDate) {
			minDate = row.InvoiceDate
		}
		if maxDate.IsZero() || row.InvoiceDate.After(maxDate) {
			maxDate = row.InvoiceDate
		}

		monthly, ok := byPeriod[row.Period]
		if !ok {
			monthly = &PeriodSummary{Period: row.Period}
			byPeriod[row.Period] = monthly
		}
		monthly.Invoices++

		switch row.InvoiceType {
		case models.InvoiceTypeOutgoing:
			total.Revenue += row.Total
			total.TaxCollected += row.Tax
			monthly.Revenue += row.Total
			monthly.TaxCollected += row.Tax
		case models.InvoiceTypeIncoming:
			total.Expenses += row.Total
			total.TaxPaid += row.Tax
			monthly.Expenses += row.Total
			monthly.TaxPaid += row.Tax
		case models.InvoiceTypeUnknown:
			// Direction could not be determined; the invoice counts
			// toward neither revenue nor expenses.
		}
	}

	total.Period = fmt.Sprintf("%s to %s", models.PeriodKey(minDate), models.PeriodKey(maxDate))
	total.NetIncome = total.Revenue - total.Expenses
	total.NetTax = total.TaxCollected - total.TaxPaid

	periods := make([]PeriodSummary, 0, len(byPeriod))
	for _, monthly := range byPeriod {
		monthly.NetIncome = monthly.Revenue - monthly.Expenses
		monthly.NetTax = monthly.TaxCollected - monthly.TaxPaid
		periods = append(periods, *monthly)
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period < periods[j].Period
	})

	return total, periods
}
