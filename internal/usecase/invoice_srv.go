package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/data/entity"
	"github.com/kweeen04/EandP/internal/data/repository"
	"github.com/kweeen04/EandP/internal/dto/request"
	"github.com/kweeen04/EandP/internal/dto/response"
	"github.com/kweeen04/EandP/pkg/utils"
)

type InvoiceService interface {
	GetOrCreateForEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, eventID uuid.UUID) (*response.InvoiceResponse, error)
	CreateInvoice(ctx context.Context, actorID uuid.UUID, role entity.UserRole, req *request.CreateInvoiceRequest) (*response.InvoiceResponse, error)
	ListInvoices(ctx context.Context, actorID uuid.UUID, role entity.UserRole) ([]response.InvoiceResponse, error)
	GetInvoice(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID) (*response.InvoiceResponse, error)
	UpdateInvoiceStatus(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID, req *request.UpdateInvoiceStatusRequest) (*response.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
}

type invoiceService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewInvoiceService(repo *repository.Repository, log *zap.Logger) InvoiceService {
	return &invoiceService{
		repo: repo,
		log:  log.With(zap.String("service", "invoice")),
	}
}

// GetOrCreateForEvent derives the invoice from the event's current line items
// and the live catalog prices. The snapshot is taken exactly once per event;
// concurrent calls race on the unique event constraint and every caller gets
// the same stored invoice back.
func (s *invoiceService) GetOrCreateForEvent(ctx context.Context, actorID uuid.UUID, role entity.UserRole, eventID uuid.UUID) (*response.InvoiceResponse, error) {
	return s.derive(ctx, actorID, role, eventID, nil)
}

func (s *invoiceService) CreateInvoice(ctx context.Context, actorID uuid.UUID, role entity.UserRole, req *request.CreateInvoiceRequest) (*response.InvoiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation(utils.FormatValidationErrors(errs))
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, ErrValidation("invalid event id")
	}

	var initial *entity.InvoiceStatus
	if req.Status != nil {
		status := entity.InvoiceStatus(*req.Status)
		if !entity.ValidInvoiceStatus(status) {
			return nil, ErrValidation("invalid invoice status")
		}
		initial = &status
	}

	return s.derive(ctx, actorID, role, eventID, initial)
}

func (s *invoiceService) derive(ctx context.Context, actorID uuid.UUID, role entity.UserRole, eventID uuid.UUID, initial *entity.InvoiceStatus) (*response.InvoiceResponse, error) {
	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		s.log.Error("Failed to find event", zap.Error(err), zap.String("event_id", eventID.String()))
		return nil, ErrInternal("failed to find event", err)
	}
	if event == nil {
		return nil, ErrNotFound("event not found")
	}
	if !event.VisibleTo(actorID, role) {
		return nil, ErrForbidden("no access to this event")
	}

	items, err := s.repo.Event.FindLineItems(ctx, eventID)
	if err != nil {
		s.log.Error("Failed to load event line items", zap.Error(err), zap.String("event_id", eventID.String()))
		return nil, ErrInternal("failed to load event services", err)
	}
	if len(items) == 0 {
		return nil, ErrValidation("event has no booked services to invoice")
	}

	invoiceID := uuid.New()
	lines := make([]*entity.InvoiceService, 0, len(items))
	var total float64
	for _, item := range items {
		svc, err := s.repo.Service.FindByID(ctx, item.ServiceID)
		if err != nil {
			s.log.Error("Failed to find service for snapshot",
				zap.Error(err), zap.String("service_id", item.ServiceID.String()))
			return nil, ErrInternal("failed to find service", err)
		}
		if svc == nil {
			return nil, ErrNotFound("service not found")
		}

		lines = append(lines, &entity.InvoiceService{
			ID:        uuid.New(),
			InvoiceID: invoiceID,
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
			Price:     svc.Price,
		})
		total += float64(item.Quantity) * svc.Price
	}

	candidate := &entity.Invoice{
		BaseSimple: entity.BaseSimple{
			ID:        invoiceID,
			CreatedAt: time.Now(),
		},
		EventID:     eventID,
		TotalAmount: total,
		Status:      entity.InvoiceStatusPending,
		CreatedBy:   actorID,
	}
	if initial != nil {
		candidate.Status = *initial
	}

	invoice, created, err := s.repo.Invoice.GetOrCreateForEvent(ctx, candidate, lines)
	if err != nil {
		s.log.Error("Failed to get or create invoice",
			zap.Error(err), zap.String("event_id", eventID.String()))
		return nil, ErrInternal("failed to create invoice", err)
	}

	if created {
		s.log.Info("Invoice created",
			zap.String("invoice_id", invoice.ID.String()),
			zap.String("event_id", eventID.String()),
			zap.Float64("total_amount", invoice.TotalAmount))
	}

	return s.invoiceResponse(ctx, invoice)
}

func (s *invoiceService) ListInvoices(ctx context.Context, actorID uuid.UUID, role entity.UserRole) ([]response.InvoiceResponse, error) {
	var invoices []*entity.Invoice
	var err error

	if role == entity.RoleAdmin {
		invoices, err = s.repo.Invoice.FindAll(ctx)
	} else {
		invoices, err = s.repo.Invoice.FindByCreator(ctx, actorID)
	}
	if err != nil {
		s.log.Error("Failed to list invoices", zap.Error(err))
		return nil, ErrInternal("failed to list invoices", err)
	}

	out := make([]response.InvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		items, err := s.repo.Invoice.FindItems(ctx, invoice.ID)
		if err != nil {
			s.log.Error("Failed to load invoice items",
				zap.Error(err), zap.String("invoice_id", invoice.ID.String()))
			return nil, ErrInternal("failed to load invoice items", err)
		}
		out = append(out, response.InvoiceToResponse(invoice, items))
	}
	return out, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID) (*response.InvoiceResponse, error) {
	invoice, err := s.findAccessibleInvoice(ctx, actorID, role, id)
	if err != nil {
		return nil, err
	}
	return s.invoiceResponse(ctx, invoice)
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID, req *request.UpdateInvoiceStatusRequest) (*response.InvoiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation(utils.FormatValidationErrors(errs))
	}

	status := entity.InvoiceStatus(req.Status)
	if !entity.ValidInvoiceStatus(status) {
		return nil, ErrValidation("invalid invoice status")
	}

	invoice, err := s.findAccessibleInvoice(ctx, actorID, role, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Invoice.UpdateStatus(ctx, id, status); err != nil {
		s.log.Error("Failed to update invoice status",
			zap.Error(err), zap.String("invoice_id", id.String()))
		return nil, ErrInternal("failed to update invoice", err)
	}
	invoice.Status = status

	s.log.Info("Invoice status updated",
		zap.String("invoice_id", id.String()),
		zap.String("status", string(status)))

	return s.invoiceResponse(ctx, invoice)
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.repo.Invoice.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find invoice", zap.Error(err), zap.String("invoice_id", id.String()))
		return ErrInternal("failed to find invoice", err)
	}
	if invoice == nil {
		return ErrNotFound("invoice not found")
	}

	if err := s.repo.Invoice.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete invoice", zap.Error(err), zap.String("invoice_id", id.String()))
		return ErrInternal("failed to delete invoice", err)
	}

	s.log.Info("Invoice deleted", zap.String("invoice_id", id.String()))
	return nil
}

// findAccessibleInvoice restricts invoice access to its creator or an admin.
func (s *invoiceService) findAccessibleInvoice(ctx context.Context, actorID uuid.UUID, role entity.UserRole, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.repo.Invoice.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find invoice", zap.Error(err), zap.String("invoice_id", id.String()))
		return nil, ErrInternal("failed to find invoice", err)
	}
	if invoice == nil {
		return nil, ErrNotFound("invoice not found")
	}
	if !entity.IsOwnerOrAdmin(invoice.CreatedBy, actorID, role) {
		return nil, ErrForbidden("no access to this invoice")
	}
	return invoice, nil
}

func (s *invoiceService) invoiceResponse(ctx context.Context, invoice *entity.Invoice) (*response.InvoiceResponse, error) {
	items, err := s.repo.Invoice.FindItems(ctx, invoice.ID)
	if err != nil {
		s.log.Error("Failed to load invoice items",
			zap.Error(err), zap.String("invoice_id", invoice.ID.String()))
		return nil, ErrInternal("failed to load invoice items", err)
	}

	resp := response.InvoiceToResponse(invoice, items)
	return &resp, nil
}
