package entity

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	BaseNoDelete
	Name        string    `db:"name"`
	Date        time.Time `db:"date"`
	CategoryID  uuid.UUID `db:"category_id"`
	Location    string    `db:"location"`
	Description *string   `db:"description"`
	Image       *string   `db:"image"`
	IsPublic    bool      `db:"is_public"`
	Vote        int       `db:"vote"`
	CreatedBy   uuid.UUID `db:"created_by"`
}

// EventService is a booked service line-item inside an event. Quantity here is
// local to the event and decoupled from Service.Quantity after booking.
type EventService struct {
	BaseSimple
	EventID     uuid.UUID `db:"event_id"`
	ServiceID   uuid.UUID `db:"service_id"`
	Quantity    int       `db:"quantity"`
	Description *string   `db:"description"`

	// ServiceName is joined from the services table for display.
	ServiceName string `db:"service_name"`
}

// VisibleTo reports whether the event can be read by the given subject.
func (e *Event) VisibleTo(userID uuid.UUID, role UserRole) bool {
	return e.IsPublic || e.CreatedBy == userID || role == RoleAdmin
}

// OwnedBy reports whether the subject may mutate the event. Public visibility
// grants read access only, never mutation.
func (e *Event) OwnedBy(userID uuid.UUID, role UserRole) bool {
	return e.CreatedBy == userID || role == RoleAdmin
}
