package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/data/entity"
	"github.com/kweeen04/EandP/internal/data/repository"
	"github.com/kweeen04/EandP/internal/dto/request"
	"github.com/kweeen04/EandP/internal/dto/response"
	"github.com/kweeen04/EandP/internal/gateway"
	"github.com/kweeen04/EandP/pkg/utils"
)

const paymentMethodMomo = "MoMo"

type PaymentService interface {
	CreateMomoPayment(ctx context.Context, actorID uuid.UUID, role entity.UserRole, req *request.CreatePaymentRequest) (*response.CreatePaymentResponse, error)
	HandleCallback(ctx context.Context, payload *gateway.CallbackPayload) error
	GetPaymentStatus(ctx context.Context, orderID string) (*response.PaymentResponse, error)
}

type paymentService struct {
	repo *repository.Repository
	momo gateway.MomoClient
	log  *zap.Logger
}

func NewPaymentService(repo *repository.Repository, momo gateway.MomoClient, log *zap.Logger) PaymentService {
	return &paymentService{
		repo: repo,
		momo: momo,
		log:  log.With(zap.String("service", "payment")),
	}
}

// CreateMomoPayment starts a gateway attempt for an invoice. The local payment
// row is written only after the gateway accepted the request, so a rejected or
// unreachable gateway leaves no trace. Repeat attempts get fresh order ids and
// earlier Pending rows are left alone.
func (s *paymentService) CreateMomoPayment(ctx context.Context, actorID uuid.UUID, role entity.UserRole, req *request.CreatePaymentRequest) (*response.CreatePaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation(utils.FormatValidationErrors(errs))
	}

	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		return nil, ErrValidation("invalid invoice id")
	}

	invoice, err := s.repo.Invoice.FindByID(ctx, invoiceID)
	if err != nil {
		s.log.Error("Failed to find invoice", zap.Error(err), zap.String("invoice_id", req.InvoiceID))
		return nil, ErrInternal("failed to find invoice", err)
	}
	if invoice == nil {
		return nil, ErrNotFound("invoice not found")
	}
	if !entity.IsOwnerOrAdmin(invoice.CreatedBy, actorID, role) {
		return nil, ErrForbidden("no access to this invoice")
	}
	if invoice.Status == entity.InvoiceStatusPaid {
		return nil, ErrConflict("invoice is already paid")
	}

	amount := int64(math.Round(invoice.TotalAmount))
	if amount <= 0 {
		return nil, ErrValidation("invoice amount must be positive")
	}

	orderID := utils.GenerateOrderID(s.momo.PartnerCode())

	result, err := s.momo.CreatePayment(ctx, orderID, amount)
	if err != nil {
		s.log.Warn("MoMo create payment failed",
			zap.Error(err),
			zap.String("invoice_id", invoiceID.String()),
			zap.String("order_id", orderID),
		)
		return nil, ErrUpstream("payment gateway rejected the request", err)
	}

	payment := &entity.Payment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		InvoiceID:     invoiceID,
		PaymentMethod: paymentMethodMomo,
		Amount:        amount,
		Status:        entity.PaymentStatusPending,
		TransactionID: orderID,
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.log.Error("Failed to persist payment",
			zap.Error(err),
			zap.String("invoice_id", invoiceID.String()),
			zap.String("order_id", orderID),
		)
		return nil, ErrInternal("failed to record payment", err)
	}

	s.log.Info("Payment attempt created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("invoice_id", invoiceID.String()),
		zap.String("order_id", orderID),
		zap.Int64("amount", amount))

	return &response.CreatePaymentResponse{
		PaymentID: payment.ID,
		PayURL:    result.PayURL,
		Message:   result.Message,
	}, nil
}

// HandleCallback reconciles an asynchronous gateway notification. The payment
// and invoice move together in one guarded transaction; a redelivered
// notification finds the payment already settled and changes nothing.
func (s *paymentService) HandleCallback(ctx context.Context, payload *gateway.CallbackPayload) error {
	payment, err := s.repo.Payment.FindByTransactionID(ctx, payload.OrderID)
	if err != nil {
		s.log.Error("Failed to find payment for callback",
			zap.Error(err), zap.String("order_id", payload.OrderID))
		return ErrInternal("failed to find payment", err)
	}
	if payment == nil {
		return ErrNotFound("payment not found")
	}

	if payload.Amount != payment.Amount {
		s.log.Warn("Callback amount mismatch",
			zap.String("order_id", payload.OrderID),
			zap.Int64("expected", payment.Amount),
			zap.Int64("got", payload.Amount),
		)
		return ErrAmountMismatch("callback amount does not match payment")
	}

	paymentStatus := entity.PaymentStatusFailed
	invoiceStatus := entity.InvoiceStatusCanceled
	if payload.ResultCode == 0 {
		paymentStatus = entity.PaymentStatusCompleted
		invoiceStatus = entity.InvoiceStatusPaid
	}

	err = s.repo.Payment.ApplyCallback(ctx, payment.ID, paymentStatus, payment.InvoiceID, invoiceStatus)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyApplied) {
			s.log.Info("Callback redelivered, already applied",
				zap.String("order_id", payload.OrderID))
			return nil
		}
		s.log.Error("Failed to apply callback",
			zap.Error(err), zap.String("order_id", payload.OrderID))
		return ErrInternal("failed to apply payment result", err)
	}

	s.log.Info("Payment reconciled",
		zap.String("order_id", payload.OrderID),
		zap.String("payment_status", string(paymentStatus)),
		zap.String("invoice_status", string(invoiceStatus)),
		zap.Int("result_code", payload.ResultCode),
		zap.String("message", payload.Message))

	return nil
}

func (s *paymentService) GetPaymentStatus(ctx context.Context, orderID string) (*response.PaymentResponse, error) {
	payment, err := s.repo.Payment.FindByTransactionID(ctx, orderID)
	if err != nil {
		s.log.Error("Failed to find payment", zap.Error(err), zap.String("order_id", orderID))
		return nil, ErrInternal("failed to find payment", err)
	}
	if payment == nil {
		return nil, ErrNotFound("payment not found")
	}

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}
