package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/dto/request"
	"github.com/kweeen04/EandP/internal/gateway"
	"github.com/kweeen04/EandP/internal/usecase"
	"github.com/kweeen04/EandP/pkg/utils"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

// CreateMomoPayment handles POST /api/payments/momo/create
func (h *PaymentHandler) CreateMomoPayment(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.CreateMomoPayment(r.Context(), userID, role, &req)
	if err != nil {
		respondError(w, h.log, err, "create payment")
		return
	}

	utils.ResponseCreated(w, "Payment created", resp)
}

// MomoNotify handles POST /api/payments/momo/notify, the gateway's IPN
// endpoint. Applied results and redeliveries are both acknowledged with an
// empty 204 so the gateway stops retrying.
func (h *PaymentHandler) MomoNotify(w http.ResponseWriter, r *http.Request) {
	var payload gateway.CallbackPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.ResponseBadRequest(w, "Invalid notification body", nil)
		return
	}

	if err := h.service.HandleCallback(r.Context(), &payload); err != nil {
		respondError(w, h.log, err, "handle payment notification")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetPaymentStatus handles GET /api/payments/status/{orderId}
func (h *PaymentHandler) GetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		utils.ResponseBadRequest(w, "Invalid order id", nil)
		return
	}

	resp, err := h.service.GetPaymentStatus(r.Context(), orderID)
	if err != nil {
		respondError(w, h.log, err, "get payment status")
		return
	}

	utils.ResponseSuccess(w, "Payment status retrieved", resp)
}
