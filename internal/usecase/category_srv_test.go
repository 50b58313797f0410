package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/data/entity"
	"github.com/kweeen04/EandP/internal/dto/request"
)

func testCategory(name string) *entity.Category {
	now := time.Now()
	return &entity.Category{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         name,
	}
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	existing := testCategory("Wedding")

	categoryRepo := &mockCategoryRepo{
		findByName: func(ctx context.Context, name string) (*entity.Category, error) {
			return existing, nil
		},
	}

	s := NewCategoryService(newTestRepository(nil, nil, categoryRepo, nil, nil, nil, nil), zap.NewNop())

	_, err := s.CreateCategory(context.Background(), &request.CreateCategoryRequest{Name: "Wedding"})
	requireKind(t, err, KindConflict)
}

func TestDeleteCategory_RefusedWhileReferenced(t *testing.T) {
	category := testCategory("Wedding")

	categoryRepo := &mockCategoryRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
			return category, nil
		},
	}
	eventRepo := &mockEventRepo{
		countByCategoryID: func(ctx context.Context, categoryID uuid.UUID) (int64, error) {
			return 3, nil
		},
	}

	s := NewCategoryService(newTestRepository(nil, nil, categoryRepo, nil, eventRepo, nil, nil), zap.NewNop())

	err := s.DeleteCategory(context.Background(), category.ID)
	requireKind(t, err, KindConflict)
}

func TestDeleteCategory_Unreferenced(t *testing.T) {
	category := testCategory("Wedding")

	deleted := false
	categoryRepo := &mockCategoryRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
			return category, nil
		},
		delete: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}

	s := NewCategoryService(newTestRepository(nil, nil, categoryRepo, nil, nil, nil, nil), zap.NewNop())

	if err := s.DeleteCategory(context.Background(), category.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("category should be deleted")
	}
}
