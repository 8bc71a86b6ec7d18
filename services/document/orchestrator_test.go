package document

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	bookingRepo "tidymove/database/repository/booking"
	"tidymove/models"

	"go.uber.org/zap"
)

// loadStub stubs the repository; Run only ever calls FindByID.
type loadStub struct {
	bookingRepo.BookingRepository
	booking *models.Booking
}

func (s *loadStub) FindByID(id string) (*models.Booking, error) {
	if s.booking == nil || s.booking.ID != id {
		return nil, bookingRepo.ErrNotFound
	}
	c := *s.booking
	return &c, nil
}

type failingRenderer struct {
	failKind string
}

func (r *failingRenderer) Render(ctx context.Context, kind string, data map[string]any) ([]byte, error) {
	if kind == r.failKind {
		return nil, errors.New("render exploded")
	}
	return []byte(kind + " content"), nil
}

type memoryDistributor struct {
	docs map[string][]byte
	err  error
}

func (d *memoryDistributor) Distribute(ctx context.Context, bookingID, kind string, doc []byte) error {
	if d.err != nil {
		return d.err
	}
	if d.docs == nil {
		d.docs = make(map[string][]byte)
	}
	d.docs[bookingID+"/"+kind] = doc
	return nil
}

type recordingNotifier struct {
	sent int
	err  error
}

func (n *recordingNotifier) SendPaymentConfirmation(ctx context.Context, booking *models.Booking, event models.PaymentEvent) error {
	if n.err != nil {
		return n.err
	}
	n.sent++
	return nil
}

func paidBooking() *models.Booking {
	return &models.Booking{
		ID:            "b1",
		CustomerID:    "cust-1",
		ServiceType:   "moving",
		Status:        models.StatusPaymentCompleted,
		TotalAmount:   250,
		Currency:      "EUR",
		ScheduledDate: time.Date(2026, 9, 12, 9, 0, 0, 0, time.UTC),
		Location:      "Toulouse",
	}
}

func runRequest() models.DocumentRunRequest {
	return models.DocumentRunRequest{
		BookingID: "b1",
		Trigger:   models.DocumentTriggerPaymentCompleted,
		Payment: &models.PaymentEvent{
			BookingID:          "b1",
			PaymentReferenceID: "pi_123",
			Amount:             250,
			Currency:           "EUR",
		},
	}
}

func TestRunProducesAllDocuments(t *testing.T) {
	dist := &memoryDistributor{}
	notifier := &recordingNotifier{}
	orch := &DefaultDocumentOrchestrator{
		Repo:        &loadStub{booking: paidBooking()},
		Renderer:    NewTemplateRenderer(),
		Distributor: dist,
		Notifier:    notifier,
		MaxAttempts: 3,
		Logger:      zap.NewNop(),
	}

	result, err := orch.Run(context.Background(), runRequest())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.Success {
		t.Errorf("result not successful: %+v", result)
	}
	want := []string{KindReceipt, KindInvoice, "payment_confirmation"}
	if len(result.Distributed) != len(want) {
		t.Fatalf("distributed = %v, want %v", result.Distributed, want)
	}
	for i, kind := range want {
		if result.Distributed[i] != kind {
			t.Errorf("distributed[%d] = %s, want %s", i, result.Distributed[i], kind)
		}
	}
	if notifier.sent != 1 {
		t.Errorf("notifications sent = %d, want 1", notifier.sent)
	}

	receipt := string(dist.docs["b1/"+KindReceipt])
	if !strings.Contains(receipt, "pi_123") || !strings.Contains(receipt, "EUR 250.00") {
		t.Errorf("receipt missing payment details:\n%s", receipt)
	}
	invoice := string(dist.docs["b1/"+KindInvoice])
	if !strings.Contains(invoice, "cust-1") {
		t.Errorf("invoice missing customer:\n%s", invoice)
	}
}

func TestRunIsolatesDocumentFailures(t *testing.T) {
	dist := &memoryDistributor{}
	notifier := &recordingNotifier{}
	orch := &DefaultDocumentOrchestrator{
		Repo:        &loadStub{booking: paidBooking()},
		Renderer:    &failingRenderer{failKind: KindReceipt},
		Distributor: dist,
		Notifier:    notifier,
		MaxAttempts: 3,
		Logger:      zap.NewNop(),
	}

	result, err := orch.Run(context.Background(), runRequest())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Success {
		t.Error("result reports success despite a failed document")
	}
	// The invoice and the notification still went out.
	if len(result.Distributed) != 2 {
		t.Errorf("distributed = %v, want invoice and payment_confirmation", result.Distributed)
	}
	if _, ok := dist.docs["b1/"+KindInvoice]; !ok {
		t.Error("invoice was not distributed")
	}
	if notifier.sent != 1 {
		t.Errorf("notifications sent = %d, want 1", notifier.sent)
	}
}

func TestRunUnknownBooking(t *testing.T) {
	orch := &DefaultDocumentOrchestrator{
		Repo:        &loadStub{},
		Renderer:    NewTemplateRenderer(),
		Distributor: &memoryDistributor{},
		Notifier:    &recordingNotifier{},
		MaxAttempts: 3,
		Logger:      zap.NewNop(),
	}

	if _, err := orch.Run(context.Background(), runRequest()); err == nil {
		t.Fatal("expected error for unknown booking")
	}
}

func TestRenderUnknownKind(t *testing.T) {
	r := NewTemplateRenderer()
	if _, err := r.Render(context.Background(), "contract", map[string]any{}); err == nil {
		t.Fatal("expected error for unknown document kind")
	}
}
