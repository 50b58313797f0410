package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/kweeen04/EandP/internal/data/entity"
)

type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func CategoryToResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}
