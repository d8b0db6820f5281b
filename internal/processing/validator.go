package processing

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/garyjia/invoice-reporter/internal/extraction"
	"github.com/garyjia/invoice-reporter/internal/models"
)

// RejectionKind classifies why a document was excluded from the dataset.
type RejectionKind string

const (
	RejectionExtraction RejectionKind = "extraction_error"
	RejectionParse      RejectionKind = "parse_error"
	RejectionValidation RejectionKind = "validation_error"
	RejectionInternal   RejectionKind = "internal_error"
)

// Rejection records one excluded document with its classification and
// cause. Rejections never abort processing of sibling documents.
type Rejection struct {
	Filename string
	Kind     RejectionKind
	Err      error
}

// Validator checks raw extraction payloads against the invoice schema
// and flattens accepted records into the tabular dataset.
type Validator struct {
	schema *jsonschema.Schema
	logger *zap.Logger
}

// NewValidator compiles the invoice schema once for the lifetime of the
// validator.
func NewValidator(logger *zap.Logger) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("invoice.json", strings.NewReader(invoiceSchema)); err != nil {
		return nil, fmt.Errorf("failed to add invoice schema: %w", err)
	}
	schema, err := compiler.Compile("invoice.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile invoice schema: %w", err)
	}
	return &Validator{schema: schema, logger: logger}, nil
}

// BuildDataset consumes extraction results in their original order and
// returns the dataset of accepted rows plus the rejections. Each
// rejected document is logged with its filename and cause.
func (v *Validator) BuildDataset(results []extraction.Result) (*models.Dataset, []Rejection) {
	dataset := &models.Dataset{}
	var rejections []Rejection

	for _, res := range results {
		if res.Err != nil {
			rejections = append(rejections, v.reject(res.Filename, RejectionExtraction, res.Err))
			continue
		}

		invoice, kind, err := v.validateOne(res.RawJSON)
		if err != nil {
			rejections = append(rejections, v.reject(res.Filename, kind, err))
			continue
		}

		dataset.Rows = append(dataset.Rows, models.FlattenInvoice(res.Filename, invoice))
	}

	v.logger.Info("Validated extraction results",
		zap.Int("accepted", len(dataset.Rows)),
		zap.Int("rejected", len(rejections)))

	return dataset, rejections
}

func (v *Validator) reject(filename string, kind RejectionKind, err error) Rejection {
	v.logger.Warn("Rejected invoice document",
		zap.String("file", filename),
		zap.String("kind", string(kind)),
		zap.Error(err))
	return Rejection{Filename: filename, Kind: kind, Err: err}
}

// validateOne turns one raw payload into a validated Invoice or a
// classified failure. A panic anywhere in this step is contained and
// classified as internal, so one bad document cannot take down the
// batch.
func (v *Validator) validateOne(raw string) (invoice *models.Invoice, kind RejectionKind, err error) {
	defer func() {
		if r := recover(); r != nil {
			invoice = nil
			kind = RejectionInternal
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	payload, err := extractJSONObject(raw)
	if err != nil {
		return nil, RejectionParse, err
	}

	var value any
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		return nil, RejectionParse, fmt.Errorf("invalid JSON: %w", err)
	}

	if err := v.schema.Validate(value); err != nil {
		return nil, RejectionValidation, fmt.Errorf("schema validation failed: %w", err)
	}

	var wire wireInvoice
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, RejectionInternal, fmt.Errorf("failed to decode validated payload: %w", err)
	}

	date, err := parseInvoiceDate(wire.InvoiceDate)
	if err != nil {
		return nil, RejectionValidation, fmt.Errorf("invalid invoice_date %q: %w", wire.InvoiceDate, err)
	}

	invoice = &models.Invoice{
		InvoiceNumber: wire.InvoiceNumber,
		InvoiceDate:   date,
		InvoiceType:   models.ParseInvoiceType(deref(wire.InvoiceType)),
		Issuer:        wire.Issuer.toCompany(),
		Recipient:     wire.Recipient.toCompany(),
		Items:         wire.items(),
		Subtotal:      wire.Subtotal,
		TaxRate:       wire.TaxRate,
		Tax:           wire.Tax,
		Total:         wire.Total,
		Terms:         deref(wire.Terms),
	}
	return invoice, "", nil
}

// extractJSONObject trims markdown code fences and surrounding prose
// from a model response, leaving the outermost JSON object.
func extractJSONObject(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return text[start : end+1], nil
}

// invoiceDateLayouts are tried in order. Ambiguous numeric dates are
// interpreted day-first, consistent with the extraction instruction.
var invoiceDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

func parseInvoiceDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range invoiceDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}

type wireCompany struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
}

func (c wireCompany) toCompany() models.Company {
	return models.Company{
		Name:    c.Name,
		Address: c.Address,
		Phone:   deref(c.Phone),
		Email:   deref(c.Email),
	}
}

type wireItem struct {
	Description string  `json:"description"`
	Total       float64 `json:"total"`
}

type wireInvoice struct {
	InvoiceNumber string      `json:"invoice_number"`
	InvoiceDate   string      `json:"invoice_date"`
	InvoiceType   *string     `json:"invoice_type"`
	Issuer        wireCompany `json:"issuer"`
	Recipient     wireCompany `json:"recipient"`
	Items         []wireItem  `json:"invoice_items"`
	Subtotal      float64     `json:"subtotal"`
	TaxRate       float64     `json:"tax_rate"`
	Tax           float64     `json:"tax"`
	Total         float64     `json:"total"`
	Terms         *string     `json:"terms"`
}

func (w wireInvoice) items() []models.InvoiceItem {
	items := make([]models.InvoiceItem, 0, len(w.Items))
	for _, it := range w.Items {
		items = append(items, models.InvoiceItem{Description: it.Description, Total: it.Total})
	}
	return items
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
