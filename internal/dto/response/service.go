package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/kweeen04/EandP/internal/data/entity"
)

type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

func ServiceToResponse(s *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Quantity:    s.Quantity,
		Price:       s.Price,
		CreatedAt:   s.CreatedAt,
	}
}

type ServiceUsageResponse struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}
