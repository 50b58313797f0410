package adaptor

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/dto/request"
	"github.com/kweeen04/EandP/internal/usecase"
	"github.com/kweeen04/EandP/pkg/utils"
)

type CategoryHandler struct {
	service usecase.CategoryService
	log     *zap.Logger
}

func NewCategoryHandler(service usecase.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log,
	}
}

// ListCategories handles GET /api/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListCategories(r.Context())
	if err != nil {
		respondError(w, h.log, err, "list categories")
		return
	}

	utils.ResponseSuccess(w, "Categories retrieved", resp)
}

// CreateCategory handles POST /api/categories (admin)
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create category")
		return
	}

	utils.ResponseCreated(w, "Category created", resp)
}

// UpdateCategory handles PUT /api/categories/{id} (admin)
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid category id", nil)
		return
	}

	var req request.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.log, err, "update category")
		return
	}

	utils.ResponseSuccess(w, "Category updated", resp)
}

// DeleteCategory handles DELETE /api/categories/{id} (admin)
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid category id", nil)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, h.log, err, "delete category")
		return
	}

	utils.ResponseSuccess(w, "Category deleted", nil)
}
