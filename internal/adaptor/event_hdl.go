package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/dto/request"
	"github.com/kweeen04/EandP/internal/usecase"
	"github.com/kweeen04/EandP/pkg/utils"
)

const maxUploadBytes = 10 << 20

type EventHandler struct {
	service   usecase.EventService
	uploadDir string
	log       *zap.Logger
}

func NewEventHandler(service usecase.EventService, uploadDir string, log *zap.Logger) *EventHandler {
	return &EventHandler{
		service:   service,
		uploadDir: uploadDir,
		log:       log,
	}
}

// saveImage stores an optional multipart image and returns its served path.
// Returns nil when the request carries no image.
func (h *EventHandler) saveImage(r *http.Request) (*string, error) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	path, err := utils.SaveUploadedFile(file, header, h.uploadDir)
	if err != nil {
		return nil, err
	}
	return &path, nil
}

func optionalFormValue(r *http.Request, name string) *string {
	if !r.Form.Has(name) {
		return nil
	}
	v := r.FormValue(name)
	return &v
}

// decodeCreateEvent accepts either a plain JSON body or a multipart form with
// an optional image file. Multipart carries the seeded services as a JSON
// array in the "services" field.
func (h *EventHandler) decodeCreateEvent(r *http.Request) (*request.CreateEventRequest, *string, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var req request.CreateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, nil, err
		}
		return &req, nil, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, err
	}

	isPublic, _ := strconv.ParseBool(r.FormValue("is_public"))
	req := request.CreateEventRequest{
		Name:        r.FormValue("name"),
		Date:        r.FormValue("date"),
		CategoryID:  r.FormValue("category_id"),
		Location:    r.FormValue("location"),
		Description: optionalFormValue(r, "description"),
		IsPublic:    isPublic,
	}

	if raw := r.FormValue("services"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Services); err != nil {
			return nil, nil, err
		}
	}

	image, err := h.saveImage(r)
	if err != nil {
		return nil, nil, err
	}

	return &req, image, nil
}

// CreateEvent handles POST /api/events/create
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := actor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	req, image, err := h.decodeCreateEvent(r)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.CreateEvent(r.Context(), userID, req, image)
	if err != nil {
		respondError(w, h.log, err, "create event")
		return
	}

	utils.ResponseCreated(w, "Event created", resp)
}

// ListEvents handles GET /api/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	resp, err := h.service.ListEvents(r.Context(), userID, role)
	if err != nil {
		respondError(w, h.log, err, "list events")
		return
	}

	utils.ResponseSuccess(w, "Events retrieved", resp)
}

// GetEvent handles GET /api/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	id, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid event id", nil)
		return
	}

	resp, err := h.service.GetEvent(r.Context(), userID, role, id)
	if err != nil {
		respondError(w, h.log, err, "get event")
		return
	}

	utils.ResponseSuccess(w, "Event retrieved", resp)
}

// UpdateEvent handles PUT /api/events/{id}
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	id, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid event id", nil)
		return
	}

	var req request.UpdateEventRequest
	var image *string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
		isPublic, _ := strconv.ParseBool(r.FormValue("is_public"))
		req = request.UpdateEventRequest{
			Name:        r.FormValue("name"),
			Date:        r.FormValue("date"),
			CategoryID:  r.FormValue("category_id"),
			Location:    r.FormValue("location"),
			Description: optionalFormValue(r, "description"),
			IsPublic:    isPublic,
		}
		var err error
		image, err = h.saveImage(r)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid image upload", nil)
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	resp, err := h.service.UpdateEvent(r.Context(), userID, role, id, &req, image)
	if err != nil {
		respondError(w, h.log, err, "update event")
		return
	}

	utils.ResponseSuccess(w, "Event updated", resp)
}

// PatchEvent handles PATCH /api/events/update-partial/{id}
func (h *EventHandler) PatchEvent(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	id, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid event id", nil)
		return
	}

	var req request.PatchEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.PatchEvent(r.Context(), userID, role, id, &req)
	if err != nil {
		respondError(w, h.log, err, "patch event")
		return
	}

	utils.ResponseSuccess(w, "Event updated", resp)
}

// UpdateEventCategory handles PATCH /api/events/{id}/category
func (h *EventHandler) UpdateEventCategory(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	id, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid event id", nil)
		return
	}

	var req request.UpdateEventCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateEventCategory(r.Context(), userID, role, id, &req)
	if err != nil {
		respondError(w, h.log, err, "update event category")
		return
	}

	utils.ResponseSuccess(w, "Event category updated", resp)
}

// UpdateEventStatus handles PATCH /api/events/{id}/status
func (h *EventHandler) UpdateEventStatus(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	id, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid event id", nil)
		return
	}

	var req request.UpdateEventStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateEventStatus(r.Context(), userID, role, id, &req)
	if err != nil {
		respondError(w, h.log, err, "update event status")
		return
	}

	utils.ResponseSuccess(w, "Event status updated", resp)
}

// DeleteEvent handles DELETE /api/events/{id} (admin)
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	id, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid event id", nil)
		return
	}

	if err := h.service.DeleteEvent(r.Context(), userID, role, id); err != nil {
		respondError(w, h.log, err, "delete event")
		return
	}

	utils.ResponseSuccess(w, "Event deleted", nil)
}

// AddService handles POST /api/events/{eventId}/add-service
func (h *EventHandler) AddService(w http.ResponseWriter, r *http.Request) {
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

	var req request.AddServiceToEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.AddServiceToEvent(r.Context(), userID, role, eventID, &req)
	if err != nil {
		respondError(w, h.log, err, "add service to event")
		return
	}

	utils.ResponseSuccess(w, "Service booked into event", resp)
}

// RemoveService handles DELETE /api/events/{eventId}/remove-service/{serviceId}
func (h *EventHandler) RemoveService(w http.ResponseWriter, r *http.Request) {
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
	serviceID, ok := pathUUID(r, "serviceId")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid service id", nil)
		return
	}

	resp, err := h.service.RemoveServiceFromEvent(r.Context(), userID, role, eventID, serviceID)
	if err != nil {
		respondError(w, h.log, err, "remove service from event")
		return
	}

	utils.ResponseSuccess(w, "Service removed from event", resp)
}

// UpdateService handles PUT /api/events/{eventId}/update-service/{serviceId}
func (h *EventHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
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
	serviceID, ok := pathUUID(r, "serviceId")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid service id", nil)
		return
	}

	var req request.UpdateServiceInEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateServiceInEvent(r.Context(), userID, role, eventID, serviceID, &req)
	if err != nil {
		respondError(w, h.log, err, "update service in event")
		return
	}

	utils.ResponseSuccess(w, "Booked service updated", resp)
}

// ServiceUsage handles GET /api/events/service-usage
func (h *EventHandler) ServiceUsage(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ServiceUsage(r.Context())
	if err != nil {
		respondError(w, h.log, err, "aggregate service usage")
		return
	}

	utils.ResponseSuccess(w, "Service usage retrieved", resp)
}
