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

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error)
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]*entity.Payment, error)
	// ApplyCallback moves a pending payment to its terminal status and the
	// invoice to the matching status in one transaction. Returns
	// ErrAlreadyApplied when the payment already left Pending, which makes
	// redelivered gateway callbacks harmless.
	ApplyCallback(ctx context.Context, paymentID uuid.UUID, paymentStatus entity.PaymentStatus, invoiceID uuid.UUID, invoiceStatus entity.InvoiceStatus) error
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, invoice_id, payment_method, amount, status, transaction_id, created_at`

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, invoice_id, payment_method, amount, status, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.InvoiceID,
		payment.PaymentMethod,
		payment.Amount,
		payment.Status,
		payment.TransactionID,
		payment.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("invoice_id", payment.InvoiceID.String()),
			zap.String("transaction_id", payment.TransactionID),
		)
		return fmt.Errorf("create payment %s: %w", payment.TransactionID, err)
	}

	return nil
}

func (r *paymentRepository) scanPayment(row pgx.Row) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.InvoiceID,
		&payment.PaymentMethod,
		&payment.Amount,
		&payment.Status,
		&payment.TransactionID,
		&payment.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := r.scanPayment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1`

	payment, err := r.scanPayment(r.db.QueryRow(ctx, query, transactionID))
	if err != nil {
		r.log.Error("Failed to find payment by transaction ID",
			zap.Error(err),
			zap.String("transaction_id", transactionID),
		)
		return nil, fmt.Errorf("find payment by transaction ID %s: %w", transactionID, err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE invoice_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, invoiceID)
	if err != nil {
		r.log.Error("Failed to find payments by invoice ID",
			zap.Error(err),
			zap.String("invoice_id", invoiceID.String()),
		)
		return nil, fmt.Errorf("find payments by invoice ID %s: %w", invoiceID.String(), err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		payment, err := r.scanPayment(rows)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, nil
}

func (r *paymentRepository) ApplyCallback(ctx context.Context, paymentID uuid.UUID, paymentStatus entity.PaymentStatus, invoiceID uuid.UUID, invoiceStatus entity.InvoiceStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin apply callback: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE payments SET status = $2 WHERE id = $1 AND status = 'Pending'
	`, paymentID, paymentStatus)
	if err != nil {
		r.log.Error("Failed to update payment status",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
			zap.String("status", string(paymentStatus)),
		)
		return fmt.Errorf("update payment %s status: %w", paymentID.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyApplied
	}

	_, err = tx.Exec(ctx, `
		UPDATE invoices SET status = $2 WHERE id = $1
	`, invoiceID, invoiceStatus)
	if err != nil {
		r.log.Error("Failed to update invoice status from callback",
			zap.Error(err),
			zap.String("invoice_id", invoiceID.String()),
			zap.String("status", string(invoiceStatus)),
		)
		return fmt.Errorf("update invoice %s status: %w", invoiceID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit apply callback: %w", err)
	}

	return nil
}
