package adaptor

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/dto/request"
	"github.com/kweeen04/EandP/internal/usecase"
	"github.com/kweeen04/EandP/pkg/utils"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// GetProfile handles GET /api/users/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := actor(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	resp, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, h.log, err, "load profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved", resp)
}

// ListUsers handles GET /api/users?page=&per_page= (admin)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}

	resp, err := h.service.ListUsers(r.Context(), page)
	if err != nil {
		respondError(w, h.log, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved", resp)
}

// GetUser handles GET /api/users/{id} (admin)
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user id", nil)
		return
	}

	resp, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, h.log, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "User retrieved", resp)
}

// UpdateUser handles PUT /api/users/{id} (admin)
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user id", nil)
		return
	}

	var req request.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateUser(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.log, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "User updated", resp)
}

// BlockUser handles PATCH /api/users/{id}/block (admin). It toggles between
// blocked and unblocked based on the body.
func (h *UserHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user id", nil)
		return
	}

	var req struct {
		Blocked *bool `json:"blocked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Blocked == nil {
		utils.ResponseBadRequest(w, "blocked field is required", nil)
		return
	}

	resp, err := h.service.SetBlocked(r.Context(), id, *req.Blocked)
	if err != nil {
		respondError(w, h.log, err, "update block status")
		return
	}

	utils.ResponseSuccess(w, "Block status updated", resp)
}

// DeleteUser handles DELETE /api/users/{id} (admin)
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user id", nil)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		respondError(w, h.log, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted", nil)
}
