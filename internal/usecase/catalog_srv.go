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

// CatalogService manages the bookable service catalog. Service.Quantity is the
// live stock counter that event bookings draw down.
type CatalogService interface {
	ListServices(ctx context.Context) ([]response.ServiceResponse, error)
	GetService(ctx context.Context, id uuid.UUID) (*response.ServiceResponse, error)
	CreateService(ctx context.Context, req *request.CreateServiceRequest) (*response.ServiceResponse, error)
	UpdateService(ctx context.Context, id uuid.UUID, req *request.UpdateServiceRequest) (*response.ServiceResponse, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListServices(ctx context.Context) ([]response.ServiceResponse, error) {
	services, err := s.repo.Service.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list services", zap.Error(err))
		return nil, ErrInternal("failed to list services", err)
	}

	out := make([]response.ServiceResponse, 0, len(services))
	for _, svc := range services {
		out = append(out, response.ServiceToResponse(svc))
	}
	return out, nil
}

func (s *catalogService) GetService(ctx context.Context, id uuid.UUID) (*response.ServiceResponse, error) {
	svc, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find service", zap.Error(err), zap.String("service_id", id.String()))
		return nil, ErrInternal("failed to find service", err)
	}
	if svc == nil {
		return nil, ErrNotFound("service not found")
	}

	resp := response.ServiceToResponse(svc)
	return &resp, nil
}

func (s *catalogService) CreateService(ctx context.Context, req *request.CreateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation(utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Service.FindByName(ctx, req.Name)
	if err != nil {
		s.log.Error("Failed to check service name", zap.Error(err), zap.String("name", req.Name))
		return nil, ErrInternal("failed to check service name", err)
	}
	if existing != nil {
		return nil, ErrConflict("service already exists")
	}

	now := time.Now()
	svc := &entity.Service{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
	}

	if err := s.repo.Service.Create(ctx, svc); err != nil {
		s.log.Error("Failed to create service", zap.Error(err), zap.String("name", req.Name))
		return nil, ErrInternal("failed to create service", err)
	}

	s.log.Info("Service created",
		zap.String("service_id", svc.ID.String()),
		zap.String("name", svc.Name))

	resp := response.ServiceToResponse(svc)
	return &resp, nil
}

func (s *catalogService) UpdateService(ctx context.Context, id uuid.UUID, req *request.UpdateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation(utils.FormatValidationErrors(errs))
	}

	svc, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find service", zap.Error(err), zap.String("service_id", id.String()))
		return nil, ErrInternal("failed to find service", err)
	}
	if svc == nil {
		return nil, ErrNotFound("service not found")
	}

	if req.Name != svc.Name {
		existing, err := s.repo.Service.FindByName(ctx, req.Name)
		if err != nil {
			s.log.Error("Failed to check service name", zap.Error(err), zap.String("name", req.Name))
			return nil, ErrInternal("failed to check service name", err)
		}
		if existing != nil {
			return nil, ErrConflict("service already exists")
		}
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.Quantity = req.Quantity
	svc.Price = req.Price
	svc.UpdatedAt = time.Now()

	if err := s.repo.Service.Update(ctx, svc); err != nil {
		s.log.Error("Failed to update service", zap.Error(err), zap.String("service_id", id.String()))
		return nil, ErrInternal("failed to update service", err)
	}

	resp := response.ServiceToResponse(svc)
	return &resp, nil
}

func (s *catalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	svc, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find service", zap.Error(err), zap.String("service_id", id.String()))
		return ErrInternal("failed to find service", err)
	}
	if svc == nil {
		return ErrNotFound("service not found")
	}

	if err := s.repo.Service.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete service", zap.Error(err), zap.String("service_id", id.String()))
		return ErrInternal("failed to delete service", err)
	}

	s.log.Info("Service deleted", zap.String("service_id", id.String()))
	return nil
}
