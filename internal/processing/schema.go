package processing

// invoiceSchema is the structural contract for one extracted invoice.
// It mirrors the shape the extraction prompt asks for: required
// identity, date, parties, items and amounts; direction and contact
// details may be null.
const invoiceSchema = `{
  "type": "object",
  "required": ["invoice_number", "invoice_date", "issuer", "recipient", "invoice_items", "subtotal", "total"],
  "properties": {
    "invoice_number": {"type": "string", "minLength": 1},
    "invoice_date": {"type": "string", "minLength": 1},
    "invoice_type": {"enum": ["incoming", "outgoing", null]},
    "issuer": {"$ref": "#/$defs/company"},
    "recipient": {"$ref": "#/$defs/company"},
    "invoice_items": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["description", "total"],
        "properties": {
          "description": {"type": "string"},
          "total": {"type": "number"}
        }
      }
    },
    "subtotal": {"type": "number"},
    "tax_rate": {"type": "number"},
    "tax": {"type": "number"},
    "total": {"type": "number"},
    "terms": {"type": ["string", "null"]}
  },
  "$defs": {
    "company": {
      "type": "object",
      "required": ["name", "address"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "address": {"type": "string"},
        "phone": {"type": ["string", "null"]},
        "email": {"type": ["string", "null"]}
      }
    }
  }
}`
