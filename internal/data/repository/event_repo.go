package repository

import (
	"context"
	"fmt"

	"github.com/kweeen04/EandP/internal/data/entity"
	"github.com/kweeen04/EandP/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ServiceUsageRow aggregates booked quantity per service across all events.
type ServiceUsageRow struct {
	Name     string
	Quantity int
	Price    float64
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event, items []*entity.EventService) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindAll(ctx context.Context) ([]*entity.Event, error)
	FindVisibleTo(ctx context.Context, userID uuid.UUID) ([]*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// Line items
	FindLineItems(ctx context.Context, eventID uuid.UUID) ([]*entity.EventService, error)
	AddLineItem(ctx context.Context, eventID, serviceID uuid.UUID, quantity int, description *string) error
	RemoveLineItem(ctx context.Context, eventID, serviceID uuid.UUID) error
	UpdateLineItemQuantity(ctx context.Context, eventID, serviceID uuid.UUID, quantity int) error

	ServiceUsage(ctx context.Context) ([]*ServiceUsageRow, error)
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

const eventColumns = `id, name, date, category_id, location, description, image, is_public, vote, created_by, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, event *entity.Event, items []*entity.EventService) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create event: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO events (id, name, date, category_id, location, description, image,
		                    is_public, vote, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = tx.Exec(ctx, query,
		event.ID,
		event.Name,
		event.Date,
		event.CategoryID,
		event.Location,
		event.Description,
		event.Image,
		event.IsPublic,
		event.Vote,
		event.CreatedBy,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("name", event.Name),
		)
		return fmt.Errorf("create event %s: %w", event.Name, err)
	}

	for _, item := range items {
		_, err = tx.Exec(ctx, `
			INSERT INTO event_services (id, event_id, service_id, quantity, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			item.ID,
			item.EventID,
			item.ServiceID,
			item.Quantity,
			item.Description,
			item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create event line item",
				zap.Error(err),
				zap.String("event_id", event.ID.String()),
				zap.String("service_id", item.ServiceID.String()),
			)
			return fmt.Errorf("create event line item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create event: %w", err)
	}

	return nil
}

func (r *eventRepository) scanEvent(row pgx.Row) (*entity.Event, error) {
	var event entity.Event
	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.Date,
		&event.CategoryID,
		&event.Location,
		&event.Description,
		&event.Image,
		&event.IsPublic,
		&event.Vote,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := r.scanEvent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find event by ID",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return nil, fmt.Errorf("find event by ID %s: %w", id.String(), err)
	}

	return event, nil
}

func (r *eventRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.Event, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		event, err := r.scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, event)
	}

	return events, nil
}

func (r *eventRepository) FindAll(ctx context.Context) ([]*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC`

	events, err := r.findMany(ctx, query)
	if err != nil {
		r.log.Error("Failed to find events", zap.Error(err))
		return nil, fmt.Errorf("find events: %w", err)
	}

	return events, nil
}

// FindVisibleTo returns public events plus the user's own, newest first.
func (r *eventRepository) FindVisibleTo(ctx context.Context, userID uuid.UUID) ([]*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE is_public = TRUE OR created_by = $1
		ORDER BY created_at DESC
	`

	events, err := r.findMany(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find visible events",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find visible events for %s: %w", userID.String(), err)
	}

	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET name = $2, date = $3, category_id = $4, location = $5, description = $6,
		    image = $7, is_public = $8, vote = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		event.ID,
		event.Name,
		event.Date,
		event.CategoryID,
		event.Location,
		event.Description,
		event.Image,
		event.IsPublic,
		event.Vote,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update event",
			zap.Error(err),
			zap.String("event_id", event.ID.String()),
		)
		return fmt.Errorf("update event %s: %w", event.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", event.ID.String())
	}

	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete event",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("delete event %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", id.String())
	}

	r.log.Info("Event deleted", zap.String("event_id", id.String()))
	return nil
}

func (r *eventRepository) CountByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM events WHERE category_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, categoryID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count events by category",
			zap.Error(err),
			zap.String("category_id", categoryID.String()),
		)
		return 0, fmt.Errorf("count events by category %s: %w", categoryID.String(), err)
	}

	return count, nil
}

func (r *eventRepository) FindLineItems(ctx context.Context, eventID uuid.UUID) ([]*entity.EventService, error) {
	query := `
		SELECT es.id, es.event_id, es.service_id, es.quantity, es.description, es.created_at, s.name
		FROM event_services es
		JOIN services s ON s.id = es.service_id
		WHERE es.event_id = $1
		ORDER BY es.created_at, es.id
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to find event line items",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("find line items for event %s: %w", eventID.String(), err)
	}
	defer rows.Close()

	var items []*entity.EventService
	for rows.Next() {
		var item entity.EventService
		err := rows.Scan(
			&item.ID,
			&item.EventID,
			&item.ServiceID,
			&item.Quantity,
			&item.Description,
			&item.CreatedAt,
			&item.ServiceName,
		)
		if err != nil {
			r.log.Error("Failed to scan line item row", zap.Error(err))
			return nil, fmt.Errorf("scan line item row: %w", err)
		}
		items = append(items, &item)
	}

	return items, nil
}

// AddLineItem books a service into an event. The stock check and decrement are
// one conditional update inside a transaction, so two concurrent bookings can
// never both pass the check.
func (r *eventRepository) AddLineItem(ctx context.Context, eventID, serviceID uuid.UUID, quantity int, description *string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin add line item: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE services
		SET quantity = quantity - $2, updated_at = NOW()
		WHERE id = $1 AND quantity >= $2
	`, serviceID, quantity)
	if err != nil {
		r.log.Error("Failed to decrement service stock",
			zap.Error(err),
			zap.String("service_id", serviceID.String()),
			zap.Int("quantity", quantity),
		)
		return fmt.Errorf("decrement stock for service %s: %w", serviceID.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientStock
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO event_services (id, event_id, service_id, quantity, description, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, uuid.New(), eventID, serviceID, quantity, description)
	if err != nil {
		r.log.Error("Failed to insert line item",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
			zap.String("service_id", serviceID.String()),
		)
		return fmt.Errorf("insert line item: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit add line item: %w", err)
	}

	return nil
}

// RemoveLineItem drops every line item for the service and credits the booked
// quantity back to the service stock in the same transaction.
func (r *eventRepository) RemoveLineItem(ctx context.Context, eventID, serviceID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin remove line item: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
		DELETE FROM event_services
		WHERE event_id = $1 AND service_id = $2
		RETURNING quantity
	`, eventID, serviceID)
	if err != nil {
		return fmt.Errorf("delete line items: %w", err)
	}

	removed := 0
	found := false
	for rows.Next() {
		var qty int
		if err := rows.Scan(&qty); err != nil {
			rows.Close()
			return fmt.Errorf("scan removed quantity: %w", err)
		}
		removed += qty
		found = true
	}
	rows.Close()

	if !found {
		return ErrLineItemNotFound
	}

	if removed > 0 {
		_, err = tx.Exec(ctx, `
			UPDATE services SET quantity = quantity + $2, updated_at = NOW() WHERE id = $1
		`, serviceID, removed)
		if err != nil {
			r.log.Error("Failed to restore service stock",
				zap.Error(err),
				zap.String("service_id", serviceID.String()),
				zap.Int("quantity", removed),
			)
			return fmt.Errorf("restore stock for service %s: %w", serviceID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit remove line item: %w", err)
	}

	return nil
}

// UpdateLineItemQuantity overwrites the booked quantity of the first matching
// line item and adjusts the service stock by the delta, refusing when stock
// cannot cover an increase.
func (r *eventRepository) UpdateLineItemQuantity(ctx context.Context, eventID, serviceID uuid.UUID, quantity int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update line item: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var itemID uuid.UUID
	var current int
	err = tx.QueryRow(ctx, `
		SELECT id, quantity FROM event_services
		WHERE event_id = $1 AND service_id = $2
		ORDER BY created_at, id
		LIMIT 1
		FOR UPDATE
	`, eventID, serviceID).Scan(&itemID, &current)
	if err == pgx.ErrNoRows {
		return ErrLineItemNotFound
	}
	if err != nil {
		return fmt.Errorf("find line item: %w", err)
	}

	delta := quantity - current
	if delta > 0 {
		tag, err := tx.Exec(ctx, `
			UPDATE services
			SET quantity = quantity - $2, updated_at = NOW()
			WHERE id = $1 AND quantity >= $2
		`, serviceID, delta)
		if err != nil {
			return fmt.Errorf("decrement stock for service %s: %w", serviceID.String(), err)
		}
		if tag.RowsAffected() == 0 {
			return ErrInsufficientStock
		}
	} else if delta < 0 {
		_, err := tx.Exec(ctx, `
			UPDATE services SET quantity = quantity + $2, updated_at = NOW() WHERE id = $1
		`, serviceID, -delta)
		if err != nil {
			return fmt.Errorf("restore stock for service %s: %w", serviceID.String(), err)
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE event_services SET quantity = $2 WHERE id = $1
	`, itemID, quantity)
	if err != nil {
		return fmt.Errorf("update line item quantity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update line item: %w", err)
	}

	return nil
}

func (r *eventRepository) ServiceUsage(ctx context.Context) ([]*ServiceUsageRow, error) {
	query := `
		SELECT s.name, COALESCE(SUM(es.quantity), 0), s.price
		FROM event_services es
		JOIN services s ON s.id = es.service_id
		GROUP BY s.name, s.price
		ORDER BY s.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to aggregate service usage", zap.Error(err))
		return nil, fmt.Errorf("aggregate service usage: %w", err)
	}
	defer rows.Close()

	var usage []*ServiceUsageRow
	for rows.Next() {
		var row ServiceUsageRow
		if err := rows.Scan(&row.Name, &row.Quantity, &row.Price); err != nil {
			return nil, fmt.Errorf("scan service usage row: %w", err)
		}
		usage = append(usage, &row)
	}

	return usage, nil
}
