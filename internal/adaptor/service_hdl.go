package adaptor

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/dto/request"
	"github.com/kweeen04/EandP/internal/usecase"
	"github.com/kweeen04/EandP/pkg/utils"
)

type ServiceHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewServiceHandler(service usecase.CatalogService, log *zap.Logger) *ServiceHandler {
	return &ServiceHandler{
		service: service,
		log:     log,
	}
}

// ListServices handles GET /api/services
func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListServices(r.Context())
	if err != nil {
		respondError(w, h.log, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "Services retrieved", resp)
}

// GetService handles GET /api/services/{id}
func (h *ServiceHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid service id", nil)
		return
	}

	resp, err := h.service.GetService(r.Context(), id)
	if err != nil {
		respondError(w, h.log, err, "get service")
		return
	}

	utils.ResponseSuccess(w, "Service retrieved", resp)
}

// CreateService handles POST /api/services/create (admin)
func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req request.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.CreateService(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create service")
		return
	}

	utils.ResponseCreated(w, "Service created", resp)
}

// UpdateService handles PUT /api/services/{id} (admin)
func (h *ServiceHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid service id", nil)
		return
	}

	var req request.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateService(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.log, err, "update service")
		return
	}

	utils.ResponseSuccess(w, "Service updated", resp)
}

// DeleteService handles DELETE /api/services/{id} (admin)
func (h *ServiceHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid service id", nil)
		return
	}

	if err := h.service.DeleteService(r.Context(), id); err != nil {
		respondError(w, h.log, err, "delete service")
		return
	}

	utils.ResponseSuccess(w, "Service deleted", nil)
}
