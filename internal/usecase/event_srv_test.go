package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/data/entity"
	"github.com/kweeen04/EandP/internal/data/repository"
	"github.com/kweeen04/EandP/internal/dto/request"
)

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected a service error, got %v", err)
	}
	if svcErr.Kind != kind {
		t.Fatalf("expected error kind %d, got %d (%v)", kind, svcErr.Kind, err)
	}
}

func testEvent(owner uuid.UUID, public bool) *entity.Event {
	return &entity.Event{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:       "Launch party",
		Date:       time.Now().Add(48 * time.Hour),
		CategoryID: uuid.New(),
		Location:   "Hanoi",
		IsPublic:   public,
		CreatedBy:  owner,
	}
}

func testService(price float64, quantity int) *entity.Service {
	return &entity.Service{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:     "Catering",
		Quantity: quantity,
		Price:    price,
	}
}

func TestAddServiceToEvent_DelegatesBooking(t *testing.T) {
	owner := uuid.New()
	event := testEvent(owner, false)
	svc := testService(100, 10)

	var gotQty int
	var gotService uuid.UUID
	eventRepo := &mockEventRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
			return event, nil
		},
		addLineItem: func(ctx context.Context, eventID, serviceID uuid.UUID, quantity int, description *string) error {
			gotService = serviceID
			gotQty = quantity
			return nil
		},
	}
	serviceRepo := &mockServiceRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
			return svc, nil
		},
	}

	s := NewEventService(newTestRepository(nil, nil, nil, serviceRepo, eventRepo, nil, nil), zap.NewNop())

	_, err := s.AddServiceToEvent(context.Background(), owner, entity.RoleUser, event.ID, &request.AddServiceToEventRequest{
		ServiceID: svc.ID.String(),
		Quantity:  3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotService != svc.ID {
		t.Fatalf("booked wrong service: %s", gotService)
	}
	if gotQty != 3 {
		t.Fatalf("expected quantity 3, got %d", gotQty)
	}
}

func TestAddServiceToEvent_InsufficientStock(t *testing.T) {
	owner := uuid.New()
	event := testEvent(owner, false)
	svc := testService(100, 1)

	eventRepo := &mockEventRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
			return event, nil
		},
		addLineItem: func(ctx context.Context, eventID, serviceID uuid.UUID, quantity int, description *string) error {
			return repository.ErrInsufficientStock
		},
	}
	serviceRepo := &mockServiceRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
			return svc, nil
		},
	}

	s := NewEventService(newTestRepository(nil, nil, nil, serviceRepo, eventRepo, nil, nil), zap.NewNop())

	_, err := s.AddServiceToEvent(context.Background(), owner, entity.RoleUser, event.ID, &request.AddServiceToEventRequest{
		ServiceID: svc.ID.String(),
		Quantity:  5,
	})
	requireKind(t, err, KindConflict)
}

func TestAddServiceToEvent_ZeroQuantityRejected(t *testing.T) {
	s := NewEventService(newTestRepository(nil, nil, nil, nil, nil, nil, nil), zap.NewNop())

	_, err := s.AddServiceToEvent(context.Background(), uuid.New(), entity.RoleUser, uuid.New(), &request.AddServiceToEventRequest{
		ServiceID: uuid.New().String(),
		Quantity:  0,
	})
	requireKind(t, err, KindValidation)
}

func TestAddServiceToEvent_PublicEventNotMutableByStranger(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	event := testEvent(owner, true)

	eventRepo := &mockEventRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
			return event, nil
		},
	}

	s := NewEventService(newTestRepository(nil, nil, nil, nil, eventRepo, nil, nil), zap.NewNop())

	_, err := s.AddServiceToEvent(context.Background(), stranger, entity.RoleUser, event.ID, &request.AddServiceToEventRequest{
		ServiceID: uuid.New().String(),
		Quantity:  1,
	})
	requireKind(t, err, KindForbidden)
}

func TestRemoveServiceFromEvent_NotBooked(t *testing.T) {
	owner := uuid.New()
	event := testEvent(owner, false)

	eventRepo := &mockEventRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
			return event, nil
		},
		removeLineItem: func(ctx context.Context, eventID, serviceID uuid.UUID) error {
			return repository.ErrLineItemNotFound
		},
	}

	s := NewEventService(newTestRepository(nil, nil, nil, nil, eventRepo, nil, nil), zap.NewNop())

	_, err := s.RemoveServiceFromEvent(context.Background(), owner, entity.RoleUser, event.ID, uuid.New())
	requireKind(t, err, KindNotFound)
}

func TestUpdateServiceInEvent_ErrorMapping(t *testing.T) {
	owner := uuid.New()
	event := testEvent(owner, false)

	tests := []struct {
		name    string
		repoErr error
		want    ErrorKind
	}{
		{"line item missing", repository.ErrLineItemNotFound, KindNotFound},
		{"stock exhausted", repository.ErrInsufficientStock, KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eventRepo := &mockEventRepo{
				findByID: func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
					return event, nil
				},
				updateLineItem: func(ctx context.Context, eventID, serviceID uuid.UUID, quantity int) error {
					return tt.repoErr
				},
			}

			s := NewEventService(newTestRepository(nil, nil, nil, nil, eventRepo, nil, nil), zap.NewNop())

			_, err := s.UpdateServiceInEvent(context.Background(), owner, entity.RoleUser, event.ID, uuid.New(), &request.UpdateServiceInEventRequest{
				Quantity: 7,
			})
			requireKind(t, err, tt.want)
		})
	}
}

func TestGetEvent_PrivateHiddenFromStrangers(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	event := testEvent(owner, false)

	eventRepo := &mockEventRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
			return event, nil
		},
	}

	s := NewEventService(newTestRepository(nil, nil, nil, nil, eventRepo, nil, nil), zap.NewNop())

	_, err := s.GetEvent(context.Background(), stranger, entity.RoleUser, event.ID)
	requireKind(t, err, KindForbidden)

	if _, err := s.GetEvent(context.Background(), owner, entity.RoleUser, event.ID); err != nil {
		t.Fatalf("owner should read own private event: %v", err)
	}
	if _, err := s.GetEvent(context.Background(), stranger, entity.RoleAdmin, event.ID); err != nil {
		t.Fatalf("admin should read any event: %v", err)
	}
}

func TestCreateEvent_SeedFailureRollsBack(t *testing.T) {
	owner := uuid.New()
	category := &entity.Category{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:         "Corporate",
	}
	svc := testService(50, 1)

	deleted := false
	eventRepo := &mockEventRepo{
		addLineItem: func(ctx context.Context, eventID, serviceID uuid.UUID, quantity int, description *string) error {
			return repository.ErrInsufficientStock
		},
		delete: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	categoryRepo := &mockCategoryRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
			return category, nil
		},
	}
	serviceRepo := &mockServiceRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
			return svc, nil
		},
	}

	s := NewEventService(newTestRepository(nil, nil, categoryRepo, serviceRepo, eventRepo, nil, nil), zap.NewNop())

	_, err := s.CreateEvent(context.Background(), owner, &request.CreateEventRequest{
		Name:       "Launch party",
		Date:       "2026-09-15",
		CategoryID: category.ID.String(),
		Location:   "Hanoi",
		Services: []request.EventServiceItem{
			{ServiceID: svc.ID.String(), Quantity: 5},
		},
	}, nil)
	requireKind(t, err, KindConflict)
	if !deleted {
		t.Fatal("event should be rolled back when seeding fails")
	}
}
