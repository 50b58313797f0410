package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/kweeen04/EandP/internal/data/entity"
)

type EventServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	ServiceID   uuid.UUID `json:"service_id"`
	ServiceName string    `json:"service_name,omitempty"`
	Quantity    int       `json:"quantity"`
	Description *string   `json:"description,omitempty"`
}

type EventResponse struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	Date        time.Time              `json:"date"`
	CategoryID  uuid.UUID              `json:"category_id"`
	Location    string                 `json:"location"`
	Description *string                `json:"description,omitempty"`
	Image       *string                `json:"image,omitempty"`
	IsPublic    bool                   `json:"is_public"`
	Vote        int                    `json:"vote"`
	CreatedBy   uuid.UUID              `json:"created_by"`
	Services    []EventServiceResponse `json:"services"`
	CreatedAt   time.Time              `json:"created_at"`
}

func EventToResponse(e *entity.Event, items []*entity.EventService) EventResponse {
	services := make([]EventServiceResponse, 0, len(items))
	for _, it := range items {
		services = append(services, EventServiceResponse{
			ID:          it.ID,
			ServiceID:   it.ServiceID,
			ServiceName: it.ServiceName,
			Quantity:    it.Quantity,
			Description: it.Description,
		})
	}
	return EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date,
		CategoryID:  e.CategoryID,
		Location:    e.Location,
		Description: e.Description,
		Image:       e.Image,
		IsPublic:    e.IsPublic,
		Vote:        e.Vote,
		CreatedBy:   e.CreatedBy,
		Services:    services,
		CreatedAt:   e.CreatedAt,
	}
}
