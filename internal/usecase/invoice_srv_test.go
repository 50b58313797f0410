package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/data/entity"
	"github.com/kweeen04/EandP/internal/dto/request"
)

func TestGetOrCreateForEvent_SnapshotsPricesAndTotal(t *testing.T) {
	owner := uuid.New()
	event := testEvent(owner, false)
	catering := testService(100, 10)
	sound := testService(50, 5)

	items := []*entity.EventService{
		{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()}, EventID: event.ID, ServiceID: catering.ID, Quantity: 2},
		{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()}, EventID: event.ID, ServiceID: sound.ID, Quantity: 1},
	}

	eventRepo := &mockEventRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
			return event, nil
		},
		findLineItems: func(ctx context.Context, eventID uuid.UUID) ([]*entity.EventService, error) {
			return items, nil
		},
	}
	serviceRepo := &mockServiceRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
			switch id {
			case catering.ID:
				return catering, nil
			case sound.ID:
				return sound, nil
			}
			return nil, nil
		},
	}

	var storedLines []*entity.InvoiceService
	invoiceRepo := &mockInvoiceRepo{
		getOrCreate: func(ctx context.Context, invoice *entity.Invoice, lines []*entity.InvoiceService) (*entity.Invoice, bool, error) {
			storedLines = lines
			return invoice, true, nil
		},
		findItems: func(ctx context.Context, invoiceID uuid.UUID) ([]*entity.InvoiceService, error) {
			return storedLines, nil
		},
	}

	s := NewInvoiceService(newTestRepository(nil, nil, nil, serviceRepo, eventRepo, invoiceRepo, nil), zap.NewNop())

	resp, err := s.GetOrCreateForEvent(context.Background(), owner, entity.RoleUser, event.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.TotalAmount != 250 {
		t.Fatalf("expected total 250, got %v", resp.TotalAmount)
	}
	if resp.Status != string(entity.InvoiceStatusPending) {
		t.Fatalf("expected Pending status, got %s", resp.Status)
	}
	if len(storedLines) != 2 {
		t.Fatalf("expected 2 snapshot lines, got %d", len(storedLines))
	}
	if storedLines[0].Price != 100 || storedLines[0].Quantity != 2 {
		t.Fatalf("first line should snapshot price 100 x2, got %v x%d", storedLines[0].Price, storedLines[0].Quantity)
	}
	if storedLines[1].Price != 50 || storedLines[1].Quantity != 1 {
		t.Fatalf("second line should snapshot price 50 x1, got %v x%d", storedLines[1].Price, storedLines[1].Quantity)
	}
}

func TestGetOrCreateForEvent_ReturnsExistingInvoice(t *testing.T) {
	owner := uuid.New()
	event := testEvent(owner, false)
	svc := testService(100, 10)

	existing := &entity.Invoice{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		EventID:     event.ID,
		TotalAmount: 200,
		Status:      entity.InvoiceStatusPending,
		CreatedBy:   owner,
	}

	eventRepo := &mockEventRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
			return event, nil
		},
		findLineItems: func(ctx context.Context, eventID uuid.UUID) ([]*entity.EventService, error) {
			return []*entity.EventService{
				{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()}, EventID: event.ID, ServiceID: svc.ID, Quantity: 2},
			}, nil
		},
	}
	serviceRepo := &mockServiceRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
			return svc, nil
		},
	}
	invoiceRepo := &mockInvoiceRepo{
		getOrCreate: func(ctx context.Context, invoice *entity.Invoice, lines []*entity.InvoiceService) (*entity.Invoice, bool, error) {
			// Another caller won the race, the stored invoice is returned.
			return existing, false, nil
		},
	}

	s := NewInvoiceService(newTestRepository(nil, nil, nil, serviceRepo, eventRepo, invoiceRepo, nil), zap.NewNop())

	first, err := s.GetOrCreateForEvent(context.Background(), owner, entity.RoleUser, event.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.GetOrCreateForEvent(context.Background(), owner, entity.RoleUser, event.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != existing.ID || second.ID != existing.ID {
		t.Fatalf("both calls should return the stored invoice %s, got %s and %s", existing.ID, first.ID, second.ID)
	}
}

func TestGetOrCreateForEvent_NoLineItems(t *testing.T) {
	owner := uuid.New()
	event := testEvent(owner, false)

	eventRepo := &mockEventRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
			return event, nil
		},
	}

	s := NewInvoiceService(newTestRepository(nil, nil, nil, nil, eventRepo, nil, nil), zap.NewNop())

	_, err := s.GetOrCreateForEvent(context.Background(), owner, entity.RoleUser, event.ID)
	requireKind(t, err, KindValidation)
}

func TestCreateInvoice_EndToEndTotal(t *testing.T) {
	owner := uuid.New()
	event := testEvent(owner, false)
	svc := testService(100, 10)

	eventRepo := &mockEventRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
			return event, nil
		},
		findLineItems: func(ctx context.Context, eventID uuid.UUID) ([]*entity.EventService, error) {
			return []*entity.EventService{
				{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()}, EventID: event.ID, ServiceID: svc.ID, Quantity: 2},
			}, nil
		},
	}
	serviceRepo := &mockServiceRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
			return svc, nil
		},
	}

	s := NewInvoiceService(newTestRepository(nil, nil, nil, serviceRepo, eventRepo, nil, nil), zap.NewNop())

	resp, err := s.CreateInvoice(context.Background(), owner, entity.RoleUser, &request.CreateInvoiceRequest{
		EventID: event.ID.String(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TotalAmount != 200 {
		t.Fatalf("expected total 200 for qty 2 at price 100, got %v", resp.TotalAmount)
	}
}

func TestUpdateInvoiceStatus_InvalidStatus(t *testing.T) {
	s := NewInvoiceService(newTestRepository(nil, nil, nil, nil, nil, nil, nil), zap.NewNop())

	_, err := s.UpdateInvoiceStatus(context.Background(), uuid.New(), entity.RoleUser, uuid.New(), &request.UpdateInvoiceStatusRequest{
		Status: "Refunded",
	})
	requireKind(t, err, KindValidation)
}

func TestUpdateInvoiceStatus_ForbiddenForStrangers(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	invoice := &entity.Invoice{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		EventID:     uuid.New(),
		TotalAmount: 200,
		Status:      entity.InvoiceStatusPending,
		CreatedBy:   owner,
	}

	invoiceRepo := &mockInvoiceRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
			return invoice, nil
		},
	}

	s := NewInvoiceService(newTestRepository(nil, nil, nil, nil, nil, invoiceRepo, nil), zap.NewNop())

	_, err := s.UpdateInvoiceStatus(context.Background(), stranger, entity.RoleUser, invoice.ID, &request.UpdateInvoiceStatusRequest{
		Status: string(entity.InvoiceStatusPaid),
	})
	requireKind(t, err, KindForbidden)

	if _, err := s.UpdateInvoiceStatus(context.Background(), stranger, entity.RoleAdmin, invoice.ID, &request.UpdateInvoiceStatusRequest{
		Status: string(entity.InvoiceStatusPaid),
	}); err != nil {
		t.Fatalf("admin should update any invoice: %v", err)
	}
}
