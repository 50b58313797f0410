package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/data/entity"
	"github.com/kweeen04/EandP/internal/data/repository"
	"github.com/kweeen04/EandP/internal/dto/request"
	"github.com/kweeen04/EandP/internal/gateway"
)

func testInvoice(owner uuid.UUID, total float64, status entity.InvoiceStatus) *entity.Invoice {
	return &entity.Invoice{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		EventID:     uuid.New(),
		TotalAmount: total,
		Status:      status,
		CreatedBy:   owner,
	}
}

func TestCreateMomoPayment_Success(t *testing.T) {
	owner := uuid.New()
	invoice := testInvoice(owner, 199.6, entity.InvoiceStatusPending)

	invoiceRepo := &mockInvoiceRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
			return invoice, nil
		},
	}

	var stored *entity.Payment
	paymentRepo := &mockPaymentRepo{
		create: func(ctx context.Context, payment *entity.Payment) error {
			stored = payment
			return nil
		},
	}

	momo := &mockMomoClient{
		createPayment: func(ctx context.Context, orderID string, amount int64) (*gateway.CreateResponse, error) {
			return &gateway.CreateResponse{ResultCode: 0, Message: "success", PayURL: "https://pay.example/" + orderID}, nil
		},
	}

	s := NewPaymentService(newTestRepository(nil, nil, nil, nil, nil, invoiceRepo, paymentRepo), momo, zap.NewNop())

	resp, err := s.CreateMomoPayment(context.Background(), owner, entity.RoleUser, &request.CreatePaymentRequest{
		InvoiceID: invoice.ID.String(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored == nil {
		t.Fatal("payment row should be persisted after gateway success")
	}
	if stored.Amount != 200 {
		t.Fatalf("expected rounded amount 200, got %d", stored.Amount)
	}
	if stored.Status != entity.PaymentStatusPending {
		t.Fatalf("new payment should be Pending, got %s", stored.Status)
	}
	if !strings.HasPrefix(stored.TransactionID, momo.PartnerCode()) {
		t.Fatalf("order id should start with the partner code, got %s", stored.TransactionID)
	}
	if resp.PayURL == "" {
		t.Fatal("expected a pay url")
	}
	if resp.PaymentID != stored.ID {
		t.Fatalf("response should carry the stored payment id")
	}
}

func TestCreateMomoPayment_GatewayFailureLeavesNoRow(t *testing.T) {
	owner := uuid.New()
	invoice := testInvoice(owner, 200, entity.InvoiceStatusPending)

	invoiceRepo := &mockInvoiceRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
			return invoice, nil
		},
	}

	created := false
	paymentRepo := &mockPaymentRepo{
		create: func(ctx context.Context, payment *entity.Payment) error {
			created = true
			return nil
		},
	}

	momo := &mockMomoClient{
		createPayment: func(ctx context.Context, orderID string, amount int64) (*gateway.CreateResponse, error) {
			return nil, errors.New("gateway unreachable")
		},
	}

	s := NewPaymentService(newTestRepository(nil, nil, nil, nil, nil, invoiceRepo, paymentRepo), momo, zap.NewNop())

	_, err := s.CreateMomoPayment(context.Background(), owner, entity.RoleUser, &request.CreatePaymentRequest{
		InvoiceID: invoice.ID.String(),
	})
	requireKind(t, err, KindUpstream)
	if created {
		t.Fatal("no payment row may exist for a failed gateway request")
	}
}

func TestCreateMomoPayment_PaidInvoiceRejected(t *testing.T) {
	owner := uuid.New()
	invoice := testInvoice(owner, 200, entity.InvoiceStatusPaid)

	invoiceRepo := &mockInvoiceRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
			return invoice, nil
		},
	}

	s := NewPaymentService(newTestRepository(nil, nil, nil, nil, nil, invoiceRepo, nil), &mockMomoClient{}, zap.NewNop())

	_, err := s.CreateMomoPayment(context.Background(), owner, entity.RoleUser, &request.CreatePaymentRequest{
		InvoiceID: invoice.ID.String(),
	})
	requireKind(t, err, KindConflict)
}

func TestCreateMomoPayment_ZeroAmountRejected(t *testing.T) {
	owner := uuid.New()
	invoice := testInvoice(owner, 0, entity.InvoiceStatusPending)

	invoiceRepo := &mockInvoiceRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
			return invoice, nil
		},
	}

	s := NewPaymentService(newTestRepository(nil, nil, nil, nil, nil, invoiceRepo, nil), &mockMomoClient{}, zap.NewNop())

	_, err := s.CreateMomoPayment(context.Background(), owner, entity.RoleUser, &request.CreatePaymentRequest{
		InvoiceID: invoice.ID.String(),
	})
	requireKind(t, err, KindValidation)
}

func testPayment(invoiceID uuid.UUID, amount int64) *entity.Payment {
	return &entity.Payment{
		BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		InvoiceID:     invoiceID,
		PaymentMethod: "MoMo",
		Amount:        amount,
		Status:        entity.PaymentStatusPending,
		TransactionID: "MOMOTEST1700000000000",
	}
}

func TestHandleCallback_SuccessMovesBothRecords(t *testing.T) {
	payment := testPayment(uuid.New(), 200)

	paymentRepo := &mockPaymentRepo{
		findByTransactionID: func(ctx context.Context, transactionID string) (*entity.Payment, error) {
			return payment, nil
		},
	}

	var gotPayment entity.PaymentStatus
	var gotInvoice entity.InvoiceStatus
	paymentRepo.applyCallback = func(ctx context.Context, paymentID uuid.UUID, paymentStatus entity.PaymentStatus, invoiceID uuid.UUID, invoiceStatus entity.InvoiceStatus) error {
		gotPayment = paymentStatus
		gotInvoice = invoiceStatus
		return nil
	}

	s := NewPaymentService(newTestRepository(nil, nil, nil, nil, nil, nil, paymentRepo), &mockMomoClient{}, zap.NewNop())

	err := s.HandleCallback(context.Background(), &gateway.CallbackPayload{
		OrderID:    payment.TransactionID,
		ResultCode: 0,
		Amount:     200,
		Message:    "success",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPayment != entity.PaymentStatusCompleted || gotInvoice != entity.InvoiceStatusPaid {
		t.Fatalf("expected Completed/Paid, got %s/%s", gotPayment, gotInvoice)
	}
}

func TestHandleCallback_FailureMapsToFailedCanceled(t *testing.T) {
	payment := testPayment(uuid.New(), 200)

	var gotPayment entity.PaymentStatus
	var gotInvoice entity.InvoiceStatus
	paymentRepo := &mockPaymentRepo{
		findByTransactionID: func(ctx context.Context, transactionID string) (*entity.Payment, error) {
			return payment, nil
		},
		applyCallback: func(ctx context.Context, paymentID uuid.UUID, paymentStatus entity.PaymentStatus, invoiceID uuid.UUID, invoiceStatus entity.InvoiceStatus) error {
			gotPayment = paymentStatus
			gotInvoice = invoiceStatus
			return nil
		},
	}

	s := NewPaymentService(newTestRepository(nil, nil, nil, nil, nil, nil, paymentRepo), &mockMomoClient{}, zap.NewNop())

	err := s.HandleCallback(context.Background(), &gateway.CallbackPayload{
		OrderID:    payment.TransactionID,
		ResultCode: 1006,
		Amount:     200,
		Message:    "user canceled",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPayment != entity.PaymentStatusFailed || gotInvoice != entity.InvoiceStatusCanceled {
		t.Fatalf("expected Failed/Canceled, got %s/%s", gotPayment, gotInvoice)
	}
}

func TestHandleCallback_AmountMismatchMutatesNothing(t *testing.T) {
	payment := testPayment(uuid.New(), 200)

	applied := false
	paymentRepo := &mockPaymentRepo{
		findByTransactionID: func(ctx context.Context, transactionID string) (*entity.Payment, error) {
			return payment, nil
		},
		applyCallback: func(ctx context.Context, paymentID uuid.UUID, paymentStatus entity.PaymentStatus, invoiceID uuid.UUID, invoiceStatus entity.InvoiceStatus) error {
			applied = true
			return nil
		},
	}

	s := NewPaymentService(newTestRepository(nil, nil, nil, nil, nil, nil, paymentRepo), &mockMomoClient{}, zap.NewNop())

	err := s.HandleCallback(context.Background(), &gateway.CallbackPayload{
		OrderID:    payment.TransactionID,
		ResultCode: 0,
		Amount:     150,
	})
	requireKind(t, err, KindAmountMismatch)
	if applied {
		t.Fatal("a mismatched callback must not touch the records")
	}
}

func TestHandleCallback_RedeliveryIsNoOp(t *testing.T) {
	payment := testPayment(uuid.New(), 200)
	payment.Status = entity.PaymentStatusCompleted

	paymentRepo := &mockPaymentRepo{
		findByTransactionID: func(ctx context.Context, transactionID string) (*entity.Payment, error) {
			return payment, nil
		},
		applyCallback: func(ctx context.Context, paymentID uuid.UUID, paymentStatus entity.PaymentStatus, invoiceID uuid.UUID, invoiceStatus entity.InvoiceStatus) error {
			return repository.ErrAlreadyApplied
		},
	}

	s := NewPaymentService(newTestRepository(nil, nil, nil, nil, nil, nil, paymentRepo), &mockMomoClient{}, zap.NewNop())

	err := s.HandleCallback(context.Background(), &gateway.CallbackPayload{
		OrderID:    payment.TransactionID,
		ResultCode: 0,
		Amount:     200,
	})
	if err != nil {
		t.Fatalf("redelivered callback should be acknowledged quietly, got %v", err)
	}
}

func TestHandleCallback_UnknownOrder(t *testing.T) {
	s := NewPaymentService(newTestRepository(nil, nil, nil, nil, nil, nil, &mockPaymentRepo{}), &mockMomoClient{}, zap.NewNop())

	err := s.HandleCallback(context.Background(), &gateway.CallbackPayload{
		OrderID:    "MOMOTEST0000000000000",
		ResultCode: 0,
		Amount:     200,
	})
	requireKind(t, err, KindNotFound)
}
