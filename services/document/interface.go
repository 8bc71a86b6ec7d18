package document

import (
	"context"

	"tidymove/models"
)

// Document kinds produced on payment completion.
const (
	KindReceipt = "receipt"
	KindInvoice = "invoice"
)

// Renderer turns already-assembled data into a finished document. Rendering
// and layout live outside the core.
type Renderer interface {
	Render(ctx context.Context, kind string, data map[string]any) ([]byte, error)
}

// Distributor delivers a rendered document to the customer (mail attachment,
// download bucket). Also external to the core.
type Distributor interface {
	Distribute(ctx context.Context, bookingID, kind string, doc []byte) error
}

// Orchestrator generates and distributes the documents for a booking
// lifecycle event and sends the accompanying notification.
type Orchestrator interface {
	Run(ctx context.Context, req models.DocumentRunRequest) (*models.DocumentRunResult, error)
}
