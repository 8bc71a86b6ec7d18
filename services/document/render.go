package document

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
)

// TemplateRenderer produces plain-text documents from built-in templates.
// Branded layouts live in the external rendering stack; this renderer covers
// deployments that only need the raw paperwork.
type TemplateRenderer struct {
	templates map[string]*template.Template
}

var receiptTemplate = template.Must(template.New(KindReceipt).Parse(
	`RECEIPT
Booking:   {{.bookingId}}
Service:   {{.serviceType}}
Scheduled: {{.scheduledDate}}
Location:  {{.location}}
Paid:      {{.currency}} {{printf "%.2f" .paidAmount}}
Reference: {{.paymentReference}}
`))

var invoiceTemplate = template.Must(template.New(KindInvoice).Parse(
	`INVOICE
Booking:   {{.bookingId}}
Customer:  {{.customerId}}
Service:   {{.serviceType}}
Scheduled: {{.scheduledDate}}
Location:  {{.location}}
Total:     {{.currency}} {{printf "%.2f" .amount}}
`))

// NewTemplateRenderer constructs a TemplateRenderer with the built-in templates.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{
		templates: map[string]*template.Template{
			KindReceipt: receiptTemplate,
			KindInvoice: invoiceTemplate,
		},
	}
}

// Render produces the document of the given kind from the assembled data.
func (r *TemplateRenderer) Render(ctx context.Context, kind string, data map[string]any) ([]byte, error) {
	tmpl, ok := r.templates[kind]
	if !ok {
		return nil, fmt.Errorf("unknown document kind %q", kind)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", kind, err)
	}
	return buf.Bytes(), nil
}
