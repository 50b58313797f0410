package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/kweeen04/EandP/internal/data/entity"
	"github.com/kweeen04/EandP/internal/data/repository"
	"github.com/kweeen04/EandP/internal/gateway"
)

// Function-field mocks for the repository interfaces. Methods without a
// configured function return zero values so each test only wires what it
// exercises.

type mockUserRepo struct {
	create           func(ctx context.Context, user *entity.User) error
	findByID         func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	findByEmail      func(ctx context.Context, email string) (*entity.User, error)
	findByResetToken func(ctx context.Context, token string) (*entity.User, error)
	findAll          func(ctx context.Context, offset, limit int) ([]*entity.User, error)
	count            func(ctx context.Context) (int64, error)
	update           func(ctx context.Context, user *entity.User) error
	delete           func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	if m.create == nil {
		return nil
	}
	return m.create(ctx, user)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.findByID == nil {
		return nil, nil
	}
	return m.findByID(ctx, id)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.findByEmail == nil {
		return nil, nil
	}
	return m.findByEmail(ctx, email)
}

func (m *mockUserRepo) FindByResetToken(ctx context.Context, token string) (*entity.User, error) {
	if m.findByResetToken == nil {
		return nil, nil
	}
	return m.findByResetToken(ctx, token)
}

func (m *mockUserRepo) FindAll(ctx context.Context, offset, limit int) ([]*entity.User, error) {
	if m.findAll == nil {
		return nil, nil
	}
	return m.findAll(ctx, offset, limit)
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	if m.count == nil {
		return 0, nil
	}
	return m.count(ctx)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	if m.update == nil {
		return nil
	}
	return m.update(ctx, user)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete == nil {
		return nil
	}
	return m.delete(ctx, id)
}

type mockSessionRepo struct {
	create        func(ctx context.Context, session *entity.Session) error
	findValid     func(ctx context.Context, token string) (*entity.Session, error)
	revoke        func(ctx context.Context, token string) error
	revokeAllUser func(ctx context.Context, userID uuid.UUID) error
	cleanExpired  func(ctx context.Context) error
}

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	if m.create == nil {
		return nil
	}
	return m.create(ctx, session)
}

func (m *mockSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if m.findValid == nil {
		return nil, nil
	}
	return m.findValid(ctx, token)
}

func (m *mockSessionRepo) Revoke(ctx context.Context, token string) error {
	if m.revoke == nil {
		return nil
	}
	return m.revoke(ctx, token)
}

func (m *mockSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	if m.revokeAllUser == nil {
		return nil
	}
	return m.revokeAllUser(ctx, userID)
}

func (m *mockSessionRepo) CleanExpiredSessions(ctx context.Context) error {
	if m.cleanExpired == nil {
		return nil
	}
	return m.cleanExpired(ctx)
}

type mockCategoryRepo struct {
	create     func(ctx context.Context, category *entity.Category) error
	findByID   func(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	findByName func(ctx context.Context, name string) (*entity.Category, error)
	findAll    func(ctx context.Context) ([]*entity.Category, error)
	update     func(ctx context.Context, category *entity.Category) error
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if m.create == nil {
		return nil
	}
	return m.create(ctx, category)
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	if m.findByID == nil {
		return nil, nil
	}
	return m.findByID(ctx, id)
}

func (m *mockCategoryRepo) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	if m.findByName == nil {
		return nil, nil
	}
	return m.findByName(ctx, name)
}

func (m *mockCategoryRepo) FindAll(ctx context.Context) ([]*entity.Category, error) {
	if m.findAll == nil {
		return nil, nil
	}
	return m.findAll(ctx)
}

func (m *mockCategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	if m.update == nil {
		return nil
	}
	return m.update(ctx, category)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete == nil {
		return nil
	}
	return m.delete(ctx, id)
}

type mockServiceRepo struct {
	create     func(ctx context.Context, service *entity.Service) error
	findByID   func(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	findByName func(ctx context.Context, name string) (*entity.Service, error)
	findAll    func(ctx context.Context) ([]*entity.Service, error)
	update     func(ctx context.Context, service *entity.Service) error
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockServiceRepo) Create(ctx context.Context, service *entity.Service) error {
	if m.create == nil {
		return nil
	}
	return m.create(ctx, service)
}

func (m *mockServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	if m.findByID == nil {
		return nil, nil
	}
	return m.findByID(ctx, id)
}

func (m *mockServiceRepo) FindByName(ctx context.Context, name string) (*entity.Service, error) {
	if m.findByName == nil {
		return nil, nil
	}
	return m.findByName(ctx, name)
}

func (m *mockServiceRepo) FindAll(ctx context.Context) ([]*entity.Service, error) {
	if m.findAll == nil {
		return nil, nil
	}
	return m.findAll(ctx)
}

func (m *mockServiceRepo) Update(ctx context.Context, service *entity.Service) error {
	if m.update == nil {
		return nil
	}
	return m.update(ctx, service)
}

func (m *mockServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete == nil {
		return nil
	}
	return m.delete(ctx, id)
}

type mockEventRepo struct {
	create            func(ctx context.Context, event *entity.Event, items []*entity.EventService) error
	findByID          func(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	findAll           func(ctx context.Context) ([]*entity.Event, error)
	findVisibleTo     func(ctx context.Context, userID uuid.UUID) ([]*entity.Event, error)
	update            func(ctx context.Context, event *entity.Event) error
	delete            func(ctx context.Context, id uuid.UUID) error
	countByCategoryID func(ctx context.Context, categoryID uuid.UUID) (int64, error)
	findLineItems     func(ctx context.Context, eventID uuid.UUID) ([]*entity.EventService, error)
	addLineItem       func(ctx context.Context, eventID, serviceID uuid.UUID, quantity int, description *string) error
	removeLineItem    func(ctx context.Context, eventID, serviceID uuid.UUID) error
	updateLineItem    func(ctx context.Context, eventID, serviceID uuid.UUID, quantity int) error
	serviceUsage      func(ctx context.Context) ([]*repository.ServiceUsageRow, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event *entity.Event, items []*entity.EventService) error {
	if m.create == nil {
		return nil
	}
	return m.create(ctx, event, items)
}

func (m *mockEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	if m.findByID == nil {
		return nil, nil
	}
	return m.findByID(ctx, id)
}

func (m *mockEventRepo) FindAll(ctx context.Context) ([]*entity.Event, error) {
	if m.findAll == nil {
		return nil, nil
	}
	return m.findAll(ctx)
}

func (m *mockEventRepo) FindVisibleTo(ctx context.Context, userID uuid.UUID) ([]*entity.Event, error) {
	if m.findVisibleTo == nil {
		return nil, nil
	}
	return m.findVisibleTo(ctx, userID)
}

func (m *mockEventRepo) Update(ctx context.Context, event *entity.Event) error {
	if m.update == nil {
		return nil
	}
	return m.update(ctx, event)
}

func (m *mockEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete == nil {
		return nil
	}
	return m.delete(ctx, id)
}

func (m *mockEventRepo) CountByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	if m.countByCategoryID == nil {
		return 0, nil
	}
	return m.countByCategoryID(ctx, categoryID)
}

func (m *mockEventRepo) FindLineItems(ctx context.Context, eventID uuid.UUID) ([]*entity.EventService, error) {
	if m.findLineItems == nil {
		return nil, nil
	}
	return m.findLineItems(ctx, eventID)
}

func (m *mockEventRepo) AddLineItem(ctx context.Context, eventID, serviceID uuid.UUID, quantity int, description *string) error {
	if m.addLineItem == nil {
		return nil
	}
	return m.addLineItem(ctx, eventID, serviceID, quantity, description)
}

func (m *mockEventRepo) RemoveLineItem(ctx context.Context, eventID, serviceID uuid.UUID) error {
	if m.removeLineItem == nil {
		return nil
	}
	return m.removeLineItem(ctx, eventID, serviceID)
}

func (m *mockEventRepo) UpdateLineItemQuantity(ctx context.Context, eventID, serviceID uuid.UUID, quantity int) error {
	if m.updateLineItem == nil {
		return nil
	}
	return m.updateLineItem(ctx, eventID, serviceID, quantity)
}

func (m *mockEventRepo) ServiceUsage(ctx context.Context) ([]*repository.ServiceUsageRow, error) {
	if m.serviceUsage == nil {
		return nil, nil
	}
	return m.serviceUsage(ctx)
}

type mockInvoiceRepo struct {
	getOrCreate   func(ctx context.Context, invoice *entity.Invoice, items []*entity.InvoiceService) (*entity.Invoice, bool, error)
	findByID      func(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	findByEventID func(ctx context.Context, eventID uuid.UUID) (*entity.Invoice, error)
	findAll       func(ctx context.Context) ([]*entity.Invoice, error)
	findByCreator func(ctx context.Context, userID uuid.UUID) ([]*entity.Invoice, error)
	findItems     func(ctx context.Context, invoiceID uuid.UUID) ([]*entity.InvoiceService, error)
	updateStatus  func(ctx context.Context, id uuid.UUID, status entity.InvoiceStatus) error
	delete        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockInvoiceRepo) GetOrCreateForEvent(ctx context.Context, invoice *entity.Invoice, items []*entity.InvoiceService) (*entity.Invoice, bool, error) {
	if m.getOrCreate == nil {
		return invoice, true, nil
	}
	return m.getOrCreate(ctx, invoice, items)
}

func (m *mockInvoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	if m.findByID == nil {
		return nil, nil
	}
	return m.findByID(ctx, id)
}

func (m *mockInvoiceRepo) FindByEventID(ctx context.Context, eventID uuid.UUID) (*entity.Invoice, error) {
	if m.findByEventID == nil {
		return nil, nil
	}
	return m.findByEventID(ctx, eventID)
}

func (m *mockInvoiceRepo) FindAll(ctx context.Context) ([]*entity.Invoice, error) {
	if m.findAll == nil {
		return nil, nil
	}
	return m.findAll(ctx)
}

func (m *mockInvoiceRepo) FindByCreator(ctx context.Context, userID uuid.UUID) ([]*entity.Invoice, error) {
	if m.findByCreator == nil {
		return nil, nil
	}
	return m.findByCreator(ctx, userID)
}

func (m *mockInvoiceRepo) FindItems(ctx context.Context, invoiceID uuid.UUID) ([]*entity.InvoiceService, error) {
	if m.findItems == nil {
		return nil, nil
	}
	return m.findItems(ctx, invoiceID)
}

func (m *mockInvoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.InvoiceStatus) error {
	if m.updateStatus == nil {
		return nil
	}
	return m.updateStatus(ctx, id, status)
}

func (m *mockInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete == nil {
		return nil
	}
	return m.delete(ctx, id)
}

type mockPaymentRepo struct {
	create              func(ctx context.Context, payment *entity.Payment) error
	findByID            func(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	findByTransactionID func(ctx context.Context, transactionID string) (*entity.Payment, error)
	findByInvoiceID     func(ctx context.Context, invoiceID uuid.UUID) ([]*entity.Payment, error)
	applyCallback       func(ctx context.Context, paymentID uuid.UUID, paymentStatus entity.PaymentStatus, invoiceID uuid.UUID, invoiceStatus entity.InvoiceStatus) error
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if m.create == nil {
		return nil
	}
	return m.create(ctx, payment)
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	if m.findByID == nil {
		return nil, nil
	}
	return m.findByID(ctx, id)
}

func (m *mockPaymentRepo) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	if m.findByTransactionID == nil {
		return nil, nil
	}
	return m.findByTransactionID(ctx, transactionID)
}

func (m *mockPaymentRepo) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]*entity.Payment, error) {
	if m.findByInvoiceID == nil {
		return nil, nil
	}
	return m.findByInvoiceID(ctx, invoiceID)
}

func (m *mockPaymentRepo) ApplyCallback(ctx context.Context, paymentID uuid.UUID, paymentStatus entity.PaymentStatus, invoiceID uuid.UUID, invoiceStatus entity.InvoiceStatus) error {
	if m.applyCallback == nil {
		return nil
	}
	return m.applyCallback(ctx, paymentID, paymentStatus, invoiceID, invoiceStatus)
}

type mockMomoClient struct {
	createPayment func(ctx context.Context, orderID string, amount int64) (*gateway.CreateResponse, error)
	partnerCode   string
	orderInfo     string
}

func (m *mockMomoClient) CreatePayment(ctx context.Context, orderID string, amount int64) (*gateway.CreateResponse, error) {
	if m.createPayment == nil {
		return &gateway.CreateResponse{ResultCode: 0, PayURL: "https://pay.example/" + orderID}, nil
	}
	return m.createPayment(ctx, orderID, amount)
}

func (m *mockMomoClient) OrderInfo() string {
	if m.orderInfo == "" {
		return "pay with MoMo"
	}
	return m.orderInfo
}

func (m *mockMomoClient) PartnerCode() string {
	if m.partnerCode == "" {
		return "MOMOTEST"
	}
	return m.partnerCode
}

func newTestRepository(
	user *mockUserRepo,
	session *mockSessionRepo,
	category *mockCategoryRepo,
	service *mockServiceRepo,
	event *mockEventRepo,
	invoice *mockInvoiceRepo,
	payment *mockPaymentRepo,
) *repository.Repository {
	if user == nil {
		user = &mockUserRepo{}
	}
	if session == nil {
		session = &mockSessionRepo{}
	}
	if category == nil {
		category = &mockCategoryRepo{}
	}
	if service == nil {
		service = &mockServiceRepo{}
	}
	if event == nil {
		event = &mockEventRepo{}
	}
	if invoice == nil {
		invoice = &mockInvoiceRepo{}
	}
	if payment == nil {
		payment = &mockPaymentRepo{}
	}

	return &repository.Repository{
		User:     user,
		Session:  session,
		Category: category,
		Service:  service,
		Event:    event,
		Invoice:  invoice,
		Payment:  payment,
	}
}
