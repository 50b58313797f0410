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

type InvoiceRepository interface {
	// GetOrCreateForEvent persists the candidate invoice unless the event
	// already has one, and returns whichever invoice ended up stored.
	GetOrCreateForEvent(ctx context.Context, invoice *entity.Invoice, items []*entity.InvoiceService) (*entity.Invoice, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) (*entity.Invoice, error)
	FindAll(ctx context.Context) ([]*entity.Invoice, error)
	FindByCreator(ctx context.Context, userID uuid.UUID) ([]*entity.Invoice, error)
	FindItems(ctx context.Context, invoiceID uuid.UUID) ([]*entity.InvoiceService, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.InvoiceStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type invoiceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewInvoiceRepository(db database.PgxIface, log *zap.Logger) InvoiceRepository {
	return &invoiceRepository{
		db:  db,
		log: log.With(zap.String("repository", "invoice")),
	}
}

const invoiceColumns = `id, event_id, total_amount, status, created_by, created_at`

// GetOrCreateForEvent relies on the unique index on invoices(event_id):
// ON CONFLICT DO NOTHING plus a re-read makes concurrent derivations converge
// on a single invoice instead of racing an existence check against an insert.
func (r *invoiceRepository) GetOrCreateForEvent(ctx context.Context, invoice *entity.Invoice, items []*entity.InvoiceService) (*entity.Invoice, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("begin invoice derivation: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		INSERT INTO invoices (id, event_id, total_amount, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO NOTHING
	`,
		invoice.ID,
		invoice.EventID,
		invoice.TotalAmount,
		invoice.Status,
		invoice.CreatedBy,
		invoice.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert invoice",
			zap.Error(err),
			zap.String("event_id", invoice.EventID.String()),
		)
		return nil, false, fmt.Errorf("insert invoice for event %s: %w", invoice.EventID.String(), err)
	}

	if tag.RowsAffected() == 0 {
		// Someone else derived it first; hand back the stored invoice.
		existing, err := r.scanInvoice(tx.QueryRow(ctx,
			`SELECT `+invoiceColumns+` FROM invoices WHERE event_id = $1`, invoice.EventID))
		if err != nil {
			return nil, false, fmt.Errorf("reread invoice for event %s: %w", invoice.EventID.String(), err)
		}
		if existing == nil {
			return nil, false, fmt.Errorf("invoice for event %s vanished during derivation", invoice.EventID.String())
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, false, fmt.Errorf("commit invoice derivation: %w", err)
		}
		return existing, false, nil
	}

	for _, item := range items {
		_, err = tx.Exec(ctx, `
			INSERT INTO invoice_services (id, invoice_id, service_id, quantity, price)
			VALUES ($1, $2, $3, $4, $5)
		`,
			item.ID,
			item.InvoiceID,
			item.ServiceID,
			item.Quantity,
			item.Price,
		)
		if err != nil {
			r.log.Error("Failed to insert invoice line",
				zap.Error(err),
				zap.String("invoice_id", invoice.ID.String()),
				zap.String("service_id", item.ServiceID.String()),
			)
			return nil, false, fmt.Errorf("insert invoice line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("commit invoice derivation: %w", err)
	}

	return invoice, true, nil
}

func (r *invoiceRepository) scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := row.Scan(
		&invoice.ID,
		&invoice.EventID,
		&invoice.TotalAmount,
		&invoice.Status,
		&invoice.CreatedBy,
		&invoice.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	invoice, err := r.scanInvoice(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find invoice by ID",
			zap.Error(err),
			zap.String("invoice_id", id.String()),
		)
		return nil, fmt.Errorf("find invoice by ID %s: %w", id.String(), err)
	}

	return invoice, nil
}

func (r *invoiceRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE event_id = $1`

	invoice, err := r.scanInvoice(r.db.QueryRow(ctx, query, eventID))
	if err != nil {
		r.log.Error("Failed to find invoice by event ID",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("find invoice by event ID %s: %w", eventID.String(), err)
	}

	return invoice, nil
}

func (r *invoiceRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		invoice, err := r.scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice row: %w", err)
		}
		invoices = append(invoices, invoice)
	}

	return invoices, nil
}

func (r *invoiceRepository) FindAll(ctx context.Context) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at DESC`

	invoices, err := r.findMany(ctx, query)
	if err != nil {
		r.log.Error("Failed to find invoices", zap.Error(err))
		return nil, fmt.Errorf("find invoices: %w", err)
	}

	return invoices, nil
}

func (r *invoiceRepository) FindByCreator(ctx context.Context, userID uuid.UUID) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE created_by = $1 ORDER BY created_at DESC`

	invoices, err := r.findMany(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find invoices by creator",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find invoices by creator %s: %w", userID.String(), err)
	}

	return invoices, nil
}

func (r *invoiceRepository) FindItems(ctx context.Context, invoiceID uuid.UUID) ([]*entity.InvoiceService, error) {
	query := `
		SELECT id, invoice_id, service_id, quantity, price
		FROM invoice_services
		WHERE invoice_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, invoiceID)
	if err != nil {
		r.log.Error("Failed to find invoice lines",
			zap.Error(err),
			zap.String("invoice_id", invoiceID.String()),
		)
		return nil, fmt.Errorf("find lines for invoice %s: %w", invoiceID.String(), err)
	}
	defer rows.Close()

	var items []*entity.InvoiceService
	for rows.Next() {
		var item entity.InvoiceService
		err := rows.Scan(
			&item.ID,
			&item.InvoiceID,
			&item.ServiceID,
			&item.Quantity,
			&item.Price,
		)
		if err != nil {
			r.log.Error("Failed to scan invoice line row", zap.Error(err))
			return nil, fmt.Errorf("scan invoice line row: %w", err)
		}
		items = append(items, &item)
	}

	return items, nil
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.InvoiceStatus) error {
	query := `UPDATE invoices SET status = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update invoice status",
			zap.Error(err),
			zap.String("invoice_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update invoice %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s not found", id.String())
	}

	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM invoices WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete invoice",
			zap.Error(err),
			zap.String("invoice_id", id.String()),
		)
		return fmt.Errorf("delete invoice %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s not found", id.String())
	}

	r.log.Info("Invoice deleted", zap.String("invoice_id", id.String()))
	return nil
}
