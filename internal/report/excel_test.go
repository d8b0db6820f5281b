package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/invoice-reporter/internal/models"
)

func renderToTemp(t *testing.T, dataset *models.Dataset) *excelize.File {
	t.Helper()

	total, monthly := Summarize(dataset)
	path := filepath.Join(t.TempDir(), "report.xlsx")

	r := NewExcelRenderer(zap.NewNop())
	require.NoError(t, r.Render(dataset, total, monthly, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

// cellValue reads the raw stored value, bypassing number formats.
func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func TestRenderReport(t *testing.T) {
	r1 := row(models.InvoiceTypeOutgoing, 1100, 100, "2024-01-15")
	r1.IssuerName = "TechNova Solutions, Inc."
	r1.RecipientName = "Acme Corp"
	r1.Subtotal = 1000
	r1.Items = []models.InvoiceItem{
		{Description: "Consulting", Total: 800},
		{Description: "Support", Total: 200},
	}
	r2 := row(models.InvoiceTypeIncoming, 400, 40, "2024-02-10")

	f := renderToTemp(t, &models.Dataset{Rows: []models.FlatRow{r1, r2}})

	// Invoices sheet: headers plus one row per accepted invoice, with
	// item columns sized to the widest row.
	assert.Equal(t, "Invoice Number", cellValue(t, f, "Invoices", "A1"))
	assert.Equal(t, "Year-Month", cellValue(t, f, "Invoices", "C1"))
	assert.Equal(t, "Item 2 Total", cellValue(t, f, "Invoices", "U1"))
	assert.Equal(t, "2024-01-15", cellValue(t, f, "Invoices", "B2"))
	assert.Equal(t, "outgoing", cellValue(t, f, "Invoices", "D2"))
	assert.Equal(t, "Consulting", cellValue(t, f, "Invoices", "R2"))
	assert.Equal(t, "incoming", cellValue(t, f, "Invoices", "D3"))
	assert.Equal(t, "", cellValue(t, f, "Invoices", "R3"))

	// Summary sheet: total block precedes the monthly block.
	assert.Equal(t, "TOTAL", cellValue(t, f, "Summary", "A1"))
	assert.Equal(t, "2024-01 to 2024-02", cellValue(t, f, "Summary", "B2"))
	assert.Equal(t, "2", cellValue(t, f, "Summary", "B3"))
	assert.Equal(t, "Revenue", cellValue(t, f, "Summary", "A4"))
	assert.Equal(t, "1100", cellValue(t, f, "Summary", "B4"))
	assert.Equal(t, "400", cellValue(t, f, "Summary", "B5"))
	assert.Equal(t, "700", cellValue(t, f, "Summary", "B6"))

	assert.Equal(t, "MONTHLY", cellValue(t, f, "Summary", "A12"))
	assert.Equal(t, "Year-Month", cellValue(t, f, "Summary", "A13"))
	assert.Equal(t, "2024-01", cellValue(t, f, "Summary", "B13"))
	assert.Equal(t, "2024-02", cellValue(t, f, "Summary", "C13"))
	assert.Equal(t, "1100", cellValue(t, f, "Summary", "B15"))
	assert.Equal(t, "400", cellValue(t, f, "Summary", "C16"))
}

func TestRenderUnknownDirectionBlank(t *testing.T) {
	f := renderToTemp(t, &models.Dataset{Rows: []models.FlatRow{
		row(models.InvoiceTypeUnknown, 10, 1, "2024-03-03"),
	}})

	assert.Equal(t, "", cellValue(t, f, "Invoices", "D2"))
}

func TestRenderEmptyDataset(t *testing.T) {
	f := renderToTemp(t, &models.Dataset{})

	assert.Equal(t, "TOTAL", cellValue(t, f, "Summary", "A1"))
	assert.Equal(t, "", cellValue(t, f, "Summary", "B2"))
	assert.Equal(t, "0", cellValue(t, f, "Summary", "B3"))
	assert.Equal(t, "MONTHLY", cellValue(t, f, "Summary", "A12"))
	// Header row only on the invoices sheet.
	assert.Equal(t, "Invoice Number", cellValue(t, f, "Invoices", "A1"))
	assert.Equal(t, "", cellValue(t, f, "Invoices", "A2"))
}
