package extraction

import "fmt"

// systemPromptTemplate instructs the model to return the invoice as a
// JSON object and to classify its direction from the point of view of
// the reference company. Dates are requested year-first; if the model
// returns an ambiguous textual date anyway, the validator interprets
// it day-first.
const systemPromptTemplate = `You are an AI assistant specialized in extracting information from invoice images for the company "%[1]s". Your task is to analyze the given invoice image and extract the relevant information into a structured JSON format. If a field is not present in the invoice or cannot be determined leave it as null.

Extract the information into the following JSON format:
` + "```json" + `
{
  "invoice_number": "string",
  "invoice_date": "YYYY-MM-DD",
  "invoice_type": "incoming | outgoing",
  "issuer": {
    "name": "string",
    "address": "string",
    "phone": "string",
    "email": "string"
  },
  "recipient": {
    "name": "string",
    "address": "string",
    "phone": "string",
    "email": "string"
  },
  "invoice_items": [
    {
      "description": "string",
      "total": "number"
    }
  ],
  "subtotal": "number",
  "tax_rate": "number (percentage)",
  "tax": "number",
  "total": "number",
  "terms": "string"
}
` + "```" + `

For the property "invoice_type" set the value "incoming" or "outgoing" from the point of view of the company "%[1]s". If this company does not appear as issuer or recipient, set it to null.`

// BuildSystemPrompt renders the extraction instruction for the given
// reference company.
func BuildSystemPrompt(companyName string) string {
	return fmt.Sprintf(systemPromptTemplate, companyName)
}
