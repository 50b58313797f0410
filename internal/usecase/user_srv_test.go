package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/data/entity"
	"github.com/kweeen04/EandP/internal/dto/request"
)

func TestListUsers_Pagination(t *testing.T) {
	var gotOffset, gotLimit int
	userRepo := &mockUserRepo{
		count: func(ctx context.Context) (int64, error) {
			return 25, nil
		},
		findAll: func(ctx context.Context, offset, limit int) ([]*entity.User, error) {
			gotOffset, gotLimit = offset, limit
			return []*entity.User{testUser("x", false)}, nil
		},
	}

	s := NewUserService(newTestRepository(userRepo, nil, nil, nil, nil, nil, nil), zap.NewNop())

	resp, err := s.ListUsers(context.Background(), request.PaginatedRequest{Page: 3, PerPage: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotOffset != 20 || gotLimit != 10 {
		t.Fatalf("expected offset 20 limit 10, got %d/%d", gotOffset, gotLimit)
	}
	if resp.Pagination.Total != 25 {
		t.Fatalf("expected total 25, got %d", resp.Pagination.Total)
	}
	if resp.Pagination.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", resp.Pagination.TotalPages)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected the repository page to be passed through, got %d rows", len(resp.Data))
	}
}

func TestListUsers_DefaultsBadPage(t *testing.T) {
	var gotOffset int
	userRepo := &mockUserRepo{
		findAll: func(ctx context.Context, offset, limit int) ([]*entity.User, error) {
			gotOffset = offset
			return nil, nil
		},
	}

	s := NewUserService(newTestRepository(userRepo, nil, nil, nil, nil, nil, nil), zap.NewNop())

	resp, err := s.ListUsers(context.Background(), request.PaginatedRequest{Page: -4, PerPage: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotOffset != 0 {
		t.Fatalf("a bad page must clamp to the first one, got offset %d", gotOffset)
	}
	if resp.Pagination.Page != 1 {
		t.Fatalf("expected page 1, got %d", resp.Pagination.Page)
	}
}

func TestSetBlocked_RevokesSessions(t *testing.T) {
	user := testUser("whatever", false)

	userRepo := &mockUserRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
			return user, nil
		},
	}
	revoked := false
	sessionRepo := &mockSessionRepo{
		revokeAllUser: func(ctx context.Context, userID uuid.UUID) error {
			revoked = true
			return nil
		},
	}

	s := NewUserService(newTestRepository(userRepo, sessionRepo, nil, nil, nil, nil, nil), zap.NewNop())

	resp, err := s.SetBlocked(context.Background(), user.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsBlocked {
		t.Fatal("response should reflect the new block state")
	}
	if !revoked {
		t.Fatal("blocking must revoke every open session")
	}
}
