package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/data/entity"
	"github.com/kweeen04/EandP/internal/data/repository"
	"github.com/kweeen04/EandP/internal/dto/request"
	"github.com/kweeen04/EandP/internal/dto/response"
	"github.com/kweeen04/EandP/pkg/utils"
)

type EventService interface {
	CreateEvent(ctx context.Context, actorID uuid.UUID, req *request.CreateEventRequest, image *string) (*response.EventResponse, error)
	ListEvents(ctx context.Context, actorID uuid.UUID, role entity.UserRole) ([]response.EventResponse, error)
	GetEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID) (*response.EventResponse, error)
	UpdateEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID, req *request.UpdateEventRequest, image *string) (*response.EventResponse, error)
	PatchEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID, req *request.PatchEventRequest) (*response.EventResponse, error)
	UpdateEventCategory(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID, req *request.UpdateEventCategoryRequest) (*response.EventResponse, error)
	UpdateEventStatus(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID, req *request.UpdateEventStatusRequest) (*response.EventResponse, error)
	DeleteEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID) error

	AddServiceToEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, eventID uuid.UUID, req *request.AddServiceToEventRequest) (*response.EventResponse, error)
	RemoveServiceFromEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, eventID, serviceID uuid.UUID) (*response.EventResponse, error)
	UpdateServiceInEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, eventID, serviceID uuid.UUID, req *request.UpdateServiceInEventRequest) (*response.EventResponse, error)

	ServiceUsage(ctx context.Context) ([]response.ServiceUsageResponse, error)
}

type eventService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewEventService(repo *repository.Repository, log *zap.Logger) EventService {
	return &eventService{
		repo: repo,
		log:  log.With(zap.String("service", "event")),
	}
}

// parseEventDate accepts RFC3339 timestamps and plain dates.
func parseEventDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func (s *eventService) CreateEvent(ctx context.Context, actorID uuid.UUID, req *request.CreateEventRequest, image *string) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation(utils.FormatValidationErrors(errs))
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, ErrValidation("invalid event date")
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, ErrValidation("invalid category id")
	}

	category, err := s.repo.Category.FindByID(ctx, categoryID)
	if err != nil {
		s.log.Error("Failed to find category", zap.Error(err), zap.String("category_id", req.CategoryID))
		return nil, ErrInternal("failed to find category", err)
	}
	if category == nil {
		return nil, ErrNotFound("category not found")
	}

	type seed struct {
		serviceID   uuid.UUID
		quantity    int
		description *string
	}
	seeds := make([]seed, 0, len(req.Services))
	for _, item := range req.Services {
		serviceID, err := uuid.Parse(item.ServiceID)
		if err != nil {
			return nil, ErrValidation("invalid service id")
		}
		svc, err := s.repo.Service.FindByID(ctx, serviceID)
		if err != nil {
			s.log.Error("Failed to find service", zap.Error(err), zap.String("service_id", item.ServiceID))
			return nil, ErrInternal("failed to find service", err)
		}
		if svc == nil {
			return nil, ErrNotFound("service not found")
		}
		seeds = append(seeds, seed{serviceID: serviceID, quantity: item.Quantity, description: item.Description})
	}

	now := time.Now()
	event := &entity.Event{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Date:        date,
		CategoryID:  categoryID,
		Location:    req.Location,
		Description: req.Description,
		Image:       image,
		IsPublic:    req.IsPublic,
		CreatedBy:   actorID,
	}

	if err := s.repo.Event.Create(ctx, event, nil); err != nil {
		s.log.Error("Failed to create event", zap.Error(err), zap.String("name", req.Name))
		return nil, ErrInternal("failed to create event", err)
	}

	// Seeded line items go through the same booking path as later additions,
	// so they draw down service stock under the same conditional guard. A
	// failed seed rolls the whole creation back.
	for _, sd := range seeds {
		if err := s.repo.Event.AddLineItem(ctx, event.ID, sd.serviceID, sd.quantity, sd.description); err != nil {
			if delErr := s.repo.Event.Delete(ctx, event.ID); delErr != nil {
				s.log.Error("Failed to roll back event after seed failure",
					zap.Error(delErr), zap.String("event_id", event.ID.String()))
			}
			if errors.Is(err, repository.ErrInsufficientStock) {
				return nil, ErrConflict("insufficient service stock")
			}
			s.log.Error("Failed to seed event line item",
				zap.Error(err),
				zap.String("event_id", event.ID.String()),
				zap.String("service_id", sd.serviceID.String()),
			)
			return nil, ErrInternal("failed to book service", err)
		}
	}

	s.log.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("created_by", actorID.String()))

	return s.eventResponse(ctx, event)
}

func (s *eventService) ListEvents(ctx context.Context, actorID uuid.UUID, role entity.UserRole) ([]response.EventResponse, error) {
	var events []*entity.Event
	var err error

	if role == entity.RoleAdmin {
		events, err = s.repo.Event.FindAll(ctx)
	} else {
		events, err = s.repo.Event.FindVisibleTo(ctx, actorID)
	}
	if err != nil {
		s.log.Error("Failed to list events", zap.Error(err))
		return nil, ErrInternal("failed to list events", err)
	}

	out := make([]response.EventResponse, 0, len(events))
	for _, event := range events {
		items, err := s.repo.Event.FindLineItems(ctx, event.ID)
		if err != nil {
			s.log.Error("Failed to load event line items",
				zap.Error(err), zap.String("event_id", event.ID.String()))
			return nil, ErrInternal("failed to load event services", err)
		}
		out = append(out, response.EventToResponse(event, items))
	}
	return out, nil
}

func (s *eventService) GetEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID) (*response.EventResponse, error) {
	event, err := s.findVisibleEvent(ctx, actorID, role, id)
	if err != nil {
		return nil, err
	}
	return s.eventResponse(ctx, event)
}

func (s *eventService) UpdateEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID, req *request.UpdateEventRequest, image *string) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation(utils.FormatValidationErrors(errs))
	}

	event, err := s.findOwnedEvent(ctx, actorID, role, id)
	if err != nil {
		return nil, err
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, ErrValidation("invalid event date")
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, ErrValidation("invalid category id")
	}
	category, err := s.repo.Category.FindByID(ctx, categoryID)
	if err != nil {
		s.log.Error("Failed to find category", zap.Error(err), zap.String("category_id", req.CategoryID))
		return nil, ErrInternal("failed to find category", err)
	}
	if category == nil {
		return nil, ErrNotFound("category not found")
	}

	event.Name = req.Name
	event.Date = date
	event.CategoryID = categoryID
	event.Location = req.Location
	event.Description = req.Description
	event.IsPublic = req.IsPublic
	if image != nil {
		event.Image = image
	}
	event.UpdatedAt = time.Now()

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.log.Error("Failed to update event", zap.Error(err), zap.String("event_id", id.String()))
		return nil, ErrInternal("failed to update event", err)
	}

	return s.eventResponse(ctx, event)
}

func (s *eventService) PatchEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID, req *request.PatchEventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation(utils.FormatValidationErrors(errs))
	}

	event, err := s.findOwnedEvent(ctx, actorID, role, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Date != nil {
		date, err := parseEventDate(*req.Date)
		if err != nil {
			return nil, ErrValidation("invalid event date")
		}
		event.Date = date
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, ErrValidation("invalid category id")
		}
		category, err := s.repo.Category.FindByID(ctx, categoryID)
		if err != nil {
			s.log.Error("Failed to find category", zap.Error(err), zap.String("category_id", *req.CategoryID))
			return nil, ErrInternal("failed to find category", err)
		}
		if category == nil {
			return nil, ErrNotFound("category not found")
		}
		event.CategoryID = categoryID
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	event.UpdatedAt = time.Now()

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.log.Error("Failed to patch event", zap.Error(err), zap.String("event_id", id.String()))
		return nil, ErrInternal("failed to update event", err)
	}

	return s.eventResponse(ctx, event)
}

func (s *eventService) UpdateEventCategory(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID, req *request.UpdateEventCategoryRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation(utils.FormatValidationErrors(errs))
	}

	event, err := s.findOwnedEvent(ctx, actorID, role, id)
	if err != nil {
		return nil, err
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, ErrValidation("invalid category id")
	}
	category, err := s.repo.Category.FindByID(ctx, categoryID)
	if err != nil {
		s.log.Error("Failed to find category", zap.Error(err), zap.String("category_id", req.CategoryID))
		return nil, ErrInternal("failed to find category", err)
	}
	if category == nil {
		return nil, ErrNotFound("category not found")
	}

	event.CategoryID = categoryID
	event.UpdatedAt = time.Now()

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.log.Error("Failed to update event category", zap.Error(err), zap.String("event_id", id.String()))
		return nil, ErrInternal("failed to update event", err)
	}

	return s.eventResponse(ctx, event)
}

func (s *eventService) UpdateEventStatus(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID, req *request.UpdateEventStatusRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation(utils.FormatValidationErrors(errs))
	}

	event, err := s.findOwnedEvent(ctx, actorID, role, id)
	if err != nil {
		return nil, err
	}

	event.IsPublic = *req.IsPublic
	event.UpdatedAt = time.Now()

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.log.Error("Failed to update event status", zap.Error(err), zap.String("event_id", id.String()))
		return nil, ErrInternal("failed to update event", err)
	}

	return s.eventResponse(ctx, event)
}

func (s *eventService) DeleteEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID) error {
	if _, err := s.findOwnedEvent(ctx, actorID, role, id); err != nil {
		return err
	}

	if err := s.repo.Event.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete event", zap.Error(err), zap.String("event_id", id.String()))
		return ErrInternal("failed to delete event", err)
	}

	s.log.Info("Event deleted", zap.String("event_id", id.String()))
	return nil
}

func (s *eventService) AddServiceToEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, eventID uuid.UUID, req *request.AddServiceToEventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation(utils.FormatValidationErrors(errs))
	}

	event, err := s.findOwnedEvent(ctx, actorID, role, eventID)
	if err != nil {
		return nil, err
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, ErrValidation("invalid service id")
	}
	svc, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to find service", zap.Error(err), zap.String("service_id", req.ServiceID))
		return nil, ErrInternal("failed to find service", err)
	}
	if svc == nil {
		return nil, ErrNotFound("service not found")
	}

	if err := s.repo.Event.AddLineItem(ctx, eventID, serviceID, req.Quantity, req.Description); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, ErrConflict("insufficient service stock")
		}
		s.log.Error("Failed to add service to event",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
			zap.String("service_id", serviceID.String()),
		)
		return nil, ErrInternal("failed to book service", err)
	}

	s.log.Info("Service booked into event",
		zap.String("event_id", eventID.String()),
		zap.String("service_id", serviceID.String()),
		zap.Int("quantity", req.Quantity))

	return s.eventResponse(ctx, event)
}

func (s *eventService) RemoveServiceFromEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, eventID, serviceID uuid.UUID) (*response.EventResponse, error) {
	event, err := s.findOwnedEvent(ctx, actorID, role, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Event.RemoveLineItem(ctx, eventID, serviceID); err != nil {
		if errors.Is(err, repository.ErrLineItemNotFound) {
			return nil, ErrNotFound("service not booked in event")
		}
		s.log.Error("Failed to remove service from event",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
			zap.String("service_id", serviceID.String()),
		)
		return nil, ErrInternal("failed to remove service", err)
	}

	s.log.Info("Service removed from event",
		zap.String("event_id", eventID.String()),
		zap.String("service_id", serviceID.String()))

	return s.eventResponse(ctx, event)
}

func (s *eventService) UpdateServiceInEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, eventID, serviceID uuid.UUID, req *request.UpdateServiceInEventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation(utils.FormatValidationErrors(errs))
	}
	if req.Quantity < 0 {
		return nil, ErrValidation("quantity must not be negative")
	}

	event, err := s.findOwnedEvent(ctx, actorID, role, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Event.UpdateLineItemQuantity(ctx, eventID, serviceID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, repository.ErrLineItemNotFound):
			return nil, ErrNotFound("service not booked in event")
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, ErrConflict("insufficient service stock")
		}
		s.log.Error("Failed to update service in event",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
			zap.String("service_id", serviceID.String()),
		)
		return nil, ErrInternal("failed to update booked service", err)
	}

	return s.eventResponse(ctx, event)
}

func (s *eventService) ServiceUsage(ctx context.Context) ([]response.ServiceUsageResponse, error) {
	usage, err := s.repo.Event.ServiceUsage(ctx)
	if err != nil {
		s.log.Error("Failed to aggregate service usage", zap.Error(err))
		return nil, ErrInternal("failed to aggregate service usage", err)
	}

	out := make([]response.ServiceUsageResponse, 0, len(usage))
	for _, row := range usage {
		out = append(out, response.ServiceUsageResponse{
			Name:     row.Name,
			Quantity: row.Quantity,
			Price:    row.Price,
		})
	}
	return out, nil
}

// findVisibleEvent loads an event and enforces the read rule: public events
// are readable by anyone, private ones only by their creator or an admin.
func (s *eventService) findVisibleEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID) (*entity.Event, error) {
	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find event", zap.Error(err), zap.String("event_id", id.String()))
		return nil, ErrInternal("failed to find event", err)
	}
	if event == nil {
		return nil, ErrNotFound("event not found")
	}
	if !event.VisibleTo(actorID, role) {
		return nil, ErrForbidden("no access to this event")
	}
	return event, nil
}

// findOwnedEvent enforces the mutation rule: only the creator or an admin may
// change an event, public visibility grants read access only.
func (s *eventService) findOwnedEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID) (*entity.Event, error) {
	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find event", zap.Error(err), zap.String("event_id", id.String()))
		return nil, ErrInternal("failed to find event", err)
	}
	if event == nil {
		return nil, ErrNotFound("event not found")
	}
	if !event.OwnedBy(actorID, role) {
		return nil, ErrForbidden("only the event owner or an admin may modify it")
	}
	return event, nil
}

func (s *eventService) eventResponse(ctx context.Context, event *entity.Event) (*response.EventResponse, error) {
	items, err := s.repo.Event.FindLineItems(ctx, event.ID)
	if err != nil {
		s.log.Error("Failed to load event line items",
			zap.Error(err), zap.String("event_id", event.ID.String()))
		return nil, ErrInternal("failed to load event services", err)
	}

	resp := response.EventToResponse(event, items)
	return &resp, nil
}
