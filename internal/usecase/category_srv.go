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

type CategoryService interface {
	ListCategories(ctx context.Context) ([]response.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *request.CreateCategoryRequest) (*response.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *request.UpdateCategoryRequest) (*response.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCategoryService(repo *repository.Repository, log *zap.Logger) CategoryService {
	return &categoryService{
		repo: repo,
		log:  log.With(zap.String("service", "category")),
	}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list categories", zap.Error(err))
		return nil, ErrInternal("failed to list categories", err)
	}

	out := make([]response.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, response.CategoryToResponse(c))
	}
	return out, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req *request.CreateCategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation(utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Category.FindByName(ctx, req.Name)
	if err != nil {
		s.log.Error("Failed to check category name", zap.Error(err), zap.String("name", req.Name))
		return nil, ErrInternal("failed to check category name", err)
	}
	if existing != nil {
		return nil, ErrConflict("category already exists")
	}

	now := time.Now()
	category := &entity.Category{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: req.Name,
	}

	if err := s.repo.Category.Create(ctx, category); err != nil {
		s.log.Error("Failed to create category", zap.Error(err), zap.String("name", req.Name))
		return nil, ErrInternal("failed to create category", err)
	}

	s.log.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *request.UpdateCategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation(utils.FormatValidationErrors(errs))
	}

	category, err := s.repo.Category.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find category", zap.Error(err), zap.String("category_id", id.String()))
		return nil, ErrInternal("failed to find category", err)
	}
	if category == nil {
		return nil, ErrNotFound("category not found")
	}

	if req.Name != category.Name {
		existing, err := s.repo.Category.FindByName(ctx, req.Name)
		if err != nil {
			s.log.Error("Failed to check category name", zap.Error(err), zap.String("name", req.Name))
			return nil, ErrInternal("failed to check category name", err)
		}
		if existing != nil {
			return nil, ErrConflict("category already exists")
		}
	}

	category.Name = req.Name
	category.UpdatedAt = time.Now()

	if err := s.repo.Category.Update(ctx, category); err != nil {
		s.log.Error("Failed to update category", zap.Error(err), zap.String("category_id", id.String()))
		return nil, ErrInternal("failed to update category", err)
	}

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.repo.Category.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find category", zap.Error(err), zap.String("category_id", id.String()))
		return ErrInternal("failed to find category", err)
	}
	if category == nil {
		return ErrNotFound("category not found")
	}

	// A category stays undeletable while any event references it.
	count, err := s.repo.Event.CountByCategoryID(ctx, id)
	if err != nil {
		s.log.Error("Failed to count category events", zap.Error(err), zap.String("category_id", id.String()))
		return ErrInternal("failed to check category usage", err)
	}
	if count > 0 {
		return ErrConflict("category is referenced by existing events")
	}

	if err := s.repo.Category.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete category", zap.Error(err), zap.String("category_id", id.String()))
		return ErrInternal("failed to delete category", err)
	}

	s.log.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}
