package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/invoice-reporter/internal/models"
)

const (
	invoicesSheet = "Invoices"
	summarySheet  = "Summary"

	// Summary sheet layout: the total block occupies rows 1-9, the
	// monthly block starts at row 12 with one column per period.
	monthlyTitleRow  = 12
	monthlyHeaderRow = 13
	chartAnchor      = "A23"
)

// baseHeaders are the fixed columns of the invoices sheet; indexed item
// columns follow, sized to the widest row.
var baseHeaders = []string{
	"Invoice Number", "Invoice Date", "Year-Month", "Invoice Type",
	"Issuer Name", "Issuer Address", "Issuer Phone", "Issuer Email",
	"Recipient Name", "Recipient Address", "Recipient Phone", "Recipient Email",
	"Subtotal", "Tax Rate", "Tax", "Total", "Terms",
}

// ExcelRenderer writes the invoice dataset and its summaries into a
// spreadsheet with a revenue/expenses chart.
type ExcelRenderer struct {
	logger *zap.Logger
}

// NewExcelRenderer creates a renderer.
func NewExcelRenderer(logger *zap.Logger) *ExcelRenderer {
	return &ExcelRenderer{logger: logger}
}

// Render writes the report workbook to path, creating parent
// directories as needed.
func (r *ExcelRenderer) Render(dataset *models.Dataset, total TotalSummary, monthly []PeriodSummary, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", invoicesSheet); err != nil {
		return fmt.Errorf("failed to create invoices sheet: %w", err)
	}
	if err := r.writeInvoicesSheet(f, dataset); err != nil {
		return err
	}
	if err := r.writeSummarySheet(f, total, monthly); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	r.logger.Info("Report written",
		zap.String("path", path),
		zap.Int("rows", len(dataset.Rows)),
		zap.Int("months", len(monthly)))

	return nil
}

func (r *ExcelRenderer) writeInvoicesSheet(f *excelize.File, dataset *models.Dataset) error {
	headers := append([]string{}, baseHeaders...)
	for i := 1; i <= dataset.MaxItemCount(); i++ {
		headers = append(headers, fmt.Sprintf("Item %d Description", i), fmt.Sprintf("Item %d Total", i))
	}
	for col, h := range headers {
		if err := setCell(f, invoicesSheet, col+1, 1, h); err != nil {
			return err
		}
	}

	for i, row := range dataset.Rows {
		invoiceType := ""
		if row.InvoiceType != models.InvoiceTypeUnknown {
			invoiceType = string(row.InvoiceType)
		}
		values := []any{
			row.InvoiceNumber,
			row.InvoiceDate.Format("2006-01-02"),
			row.Period,
			invoiceType,
			row.IssuerName, row.IssuerAddress, row.IssuerPhone, row.IssuerEmail,
			row.RecipientName, row.RecipientAddress, row.RecipientPhone, row.RecipientEmail,
			row.Subtotal, row.TaxRate, row.Tax, row.Total,
			row.Terms,
		}
		for _, item := range row.Items {
			values = append(values, item.Description, item.Total)
		}
		for col, v := range values {
			if err := setCell(f, invoicesSheet, col+1, i+2, v); err != nil {
				return err
			}
		}
	}

	_ = f.SetColWidth(invoicesSheet, "A", "B", 14)
	_ = f.SetColWidth(invoicesSheet, "E", "L", 24)
	return nil
}

func (r *ExcelRenderer) writeSummarySheet(f *excelize.File, total TotalSummary, monthly []PeriodSummary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("failed to create money style: %w", err)
	}

	// Total block.
	if err := setCell(f, summarySheet, 1, 1, "TOTAL"); err != nil {
		return err
	}
	_ = f.SetCellStyle(summarySheet, "A1", "A1", titleStyle)

	totalRows := []struct {
		label string
		value any
	}{
		{"Period", total.Period},
		{"Invoices", total.Invoices},
		{"Revenue", total.Revenue},
		{"Expenses", total.Expenses},
		{"Net Income", total.NetIncome},
		{"Tax Collected", total.TaxCollected},
		{"Tax Paid", total.TaxPaid},
		{"Net Tax", total.NetTax},
	}
	for i, tr := range totalRows {
		if err := setCell(f, summarySheet, 1, i+2, tr.label); err != nil {
			return err
		}
		if err := setCell(f, summarySheet, 2, i+2, tr.value); err != nil {
			return err
		}
	}
	// Revenue through Net Tax.
	_ = f.SetCellStyle(summarySheet, "B4", "B9", moneyStyle)

	// Monthly block, transposed: metric names down column A, one
	// column per period.
	if err := setCell(f, summarySheet, 1, monthlyTitleRow, "MONTHLY"); err != nil {
		return err
	}
	cell := fmt.Sprintf("A%d", monthlyTitleRow)
	_ = f.SetCellStyle(summarySheet, cell, cell, titleStyle)

	metricRows := []string{"Year-Month", "Invoices", "Revenue", "Expenses", "Net Income", "Tax Collected", "Tax Paid", "Net Tax"}
	for i, name := range metricRows {
		if err := setCell(f, summarySheet, 1, monthlyHeaderRow+i, name); err != nil {
			return err
		}
	}
	for i, m := range monthly {
		col := i + 2
		values := []any{m.Period, m.Invoices, m.Revenue, m.Expenses, m.NetIncome, m.TaxCollected, m.TaxPaid, m.NetTax}
		for j, v := range values {
			if err := setCell(f, summarySheet, col, monthlyHeaderRow+j, v); err != nil {
				return err
			}
		}
	}

	_ = f.SetColWidth(summarySheet, "A", "A", 16)

	if len(monthly) == 0 {
		return nil
	}

	lastCol, err := excelize.ColumnNumberToName(len(monthly) + 1)
	if err != nil {
		return fmt.Errorf("failed to resolve monthly column: %w", err)
	}
	_ = f.SetCellStyle(summarySheet,
		fmt.Sprintf("B%d", monthlyHeaderRow+2),
		fmt.Sprintf("%s%d", lastCol, monthlyHeaderRow+7),
		moneyStyle)

	return r.addTrendChart(f, lastCol)
}

// addTrendChart plots Revenue, Expenses and Net Income across the
// monthly columns.
func (r *ExcelRenderer) addTrendChart(f *excelize.File, lastCol string) error {
	// Revenue, Expenses and Net Income occupy three consecutive rows
	// below the Invoices row; the series names point at their labels.
	series := make([]excelize.ChartSeries, 0, 3)
	for i := 0; i < 3; i++ {
		row := monthlyHeaderRow + 2 + i
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$A$%d", summarySheet, row),
			Categories: fmt.Sprintf("%s!$B$%d:$%s$%d", summarySheet, monthlyHeaderRow, lastCol, monthlyHeaderRow),
			Values:     fmt.Sprintf("%s!$B$%d:$%s$%d", summarySheet, row, lastCol, row),
		})
	}

	err := f.AddChart(summarySheet, chartAnchor, &excelize.Chart{
		Type:   excelize.Line,
		Series: series,
		Legend: excelize.ChartLegend{Position: "bottom"},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Month"}}},
		YAxis: excelize.ChartAxis{
			Title:          []excelize.RichTextRun{{Text: "Amount"}},
			MajorGridLines: false,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to add chart: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return nil
}
