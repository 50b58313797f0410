package adaptor

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/dto/request"
	"github.com/kweeen04/EandP/internal/usecase"
	"github.com/kweeen04/EandP/pkg/utils"
)

type InvoiceHandler struct {
	service usecase.InvoiceService
	log     *zap.Logger
}

func NewInvoiceHandler(service usecase.InvoiceService, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		log:     log,
	}
}

// GetOrCreateForEvent handles GET /api/events/{eventId}/invoice
func (h *InvoiceHandler) GetOrCreateForEvent(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	eventID, ok := pathUUID(r, "eventId")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid event id", nil)
		return
	}

	resp, err := h.service.GetOrCreateForEvent(r.Context(), userID, role, eventID)
	if err != nil {
		respondError(w, h.log, err, "derive invoice")
		return
	}

	utils.ResponseSuccess(w, "Invoice retrieved", resp)
}

// CreateInvoice handles POST /api/invoices/create
func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.CreateInvoice(r.Context(), userID, role, &req)
	if err != nil {
		respondError(w, h.log, err, "create invoice")
		return
	}

	utils.ResponseCreated(w, "Invoice created", resp)
}

// ListInvoices handles GET /api/invoices
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	resp, err := h.service.ListInvoices(r.Context(), userID, role)
	if err != nil {
		respondError(w, h.log, err, "list invoices")
		return
	}

	utils.ResponseSuccess(w, "Invoices retrieved", resp)
}

// GetInvoice handles GET /api/invoices/{id}
func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	id, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid invoice id", nil)
		return
	}

	resp, err := h.service.GetInvoice(r.Context(), userID, role, id)
	if err != nil {
		respondError(w, h.log, err, "get invoice")
		return
	}

	utils.ResponseSuccess(w, "Invoice retrieved", resp)
}

// UpdateInvoiceStatus handles PUT /api/invoices/{invoiceId}
func (h *InvoiceHandler) UpdateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	id, ok := pathUUID(r, "invoiceId")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid invoice id", nil)
		return
	}

	var req request.UpdateInvoiceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateInvoiceStatus(r.Context(), userID, role, id, &req)
	if err != nil {
		respondError(w, h.log, err, "update invoice status")
		return
	}

	utils.ResponseSuccess(w, "Invoice status updated", resp)
}

// DeleteInvoice handles DELETE /api/invoices/{invoiceId} (admin)
func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "invoiceId")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid invoice id", nil)
		return
	}

	if err := h.service.DeleteInvoice(r.Context(), id); err != nil {
		respondError(w, h.log, err, "delete invoice")
		return
	}

	utils.ResponseSuccess(w, "Invoice deleted", nil)
}
