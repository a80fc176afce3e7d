package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/styledecor/styledecor/internal/domain"
	"github.com/styledecor/styledecor/internal/payments"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindActiveByBooking(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateIntent(ctx context.Context, id int64, intentID string, amountCents int64) (*domain.Payment, error) {
	args := m.Called(ctx, id, intentID, amountCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Payment, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListSucceeded(ctx context.Context, from, to *time.Time) ([]domain.Payment, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByDecorator(ctx context.Context, decoratorID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, decoratorID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListAll(ctx context.Context, status domain.BookingStatus, paymentStatus domain.PaymentState) ([]domain.Booking, error) {
	args := m.Called(ctx, status, paymentStatus)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Assign(ctx context.Context, bookingID, decoratorID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, decoratorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateOnSiteStage(ctx context.Context, id int64, stage domain.OnSiteStage, complete bool) (*domain.Booking, error) {
	args := m.Called(ctx, id, stage, complete)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) MarkPaid(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) DemandByService(ctx context.Context) ([]domain.ServiceDemand, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ServiceDemand), args.Error(1)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(ctx context.Context, service *domain.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) Update(ctx context.Context, service *domain.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockServiceRepository) List(ctx context.Context, category string) ([]domain.Service, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]domain.Service), args.Error(1)
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*payments.Intent, error) {
	args := m.Called(ctx, amountCents, currency, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Intent), args.Error(1)
}

func (m *MockProvider) RetrieveIntent(ctx context.Context, id string) (*payments.Intent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Intent), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func newTestService(
	paymentRepo *MockPaymentRepository,
	bookings *MockBookingRepository,
	services *MockServiceRepository,
	provider *MockProvider,
	producer *MockProducer,
) *PaymentService {
	return &PaymentService{
		payments:     paymentRepo,
		bookings:     bookings,
		services:     services,
		provider:     provider,
		producer:     producer,
		paymentTopic: "payment-events",
		currency:     "usd",
		logger:       zap.NewNop(),
	}
}

func TestPaymentService_CreateIntent_FreshIntent(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockBookings := &MockBookingRepository{}
	mockServices := &MockServiceRepository{}
	mockProvider := &MockProvider{}
	service := newTestService(mockPayments, mockBookings, mockServices, mockProvider, &MockProducer{})

	ctx := context.Background()
	actor := domain.Account{ID: 7}

	mockBookings.On("GetByID", ctx, int64(1)).Return(&domain.Booking{ID: 1, AccountID: 7, ServiceID: 3, PaymentStatus: domain.PaymentStatePending}, nil).Once()
	mockPayments.On("FindActiveByBooking", ctx, int64(1)).Return(nil, nil).Once()
	mockServices.On("GetByID", ctx, int64(3)).Return(&domain.Service{ID: 3, Name: "Wedding Decoration", Cost: 1250.50}, nil).Once()
	mockProvider.On("CreateIntent", ctx, int64(125050), "usd", mock.Anything).Return(&payments.Intent{ID: "pi_abc", ClientSecret: "pi_abc_secret", Status: "requires_payment_method"}, nil).Once()
	mockPayments.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Payment).ID = 9
	}).Return(nil).Once()

	result, err := service.CreateIntent(ctx, actor, 1)

	assert.NoError(t, err)
	assert.Equal(t, "pi_abc_secret", result.ClientSecret)
	assert.Equal(t, int64(9), result.PaymentID)
	assert.Equal(t, 1250.50, result.Amount)
	mockProvider.AssertExpectations(t)
	mockPayments.AssertExpectations(t)
}

func TestPaymentService_CreateIntent_ReusesPendingIntent(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockBookings := &MockBookingRepository{}
	mockServices := &MockServiceRepository{}
	mockProvider := &MockProvider{}
	service := newTestService(mockPayments, mockBookings, mockServices, mockProvider, &MockProducer{})

	ctx := context.Background()
	actor := domain.Account{ID: 7}
	existing := &domain.Payment{ID: 9, BookingID: 1, AccountID: 7, AmountCents: 125050, ProviderIntentID: "pi_abc", Status: domain.PaymentStatusPending}

	mockBookings.On("GetByID", ctx, int64(1)).Return(&domain.Booking{ID: 1, AccountID: 7, ServiceID: 3, PaymentStatus: domain.PaymentStatePending}, nil).Once()
	mockPayments.On("FindActiveByBooking", ctx, int64(1)).Return(existing, nil).Once()
	mockServices.On("GetByID", ctx, int64(3)).Return(&domain.Service{ID: 3, Cost: 1250.50}, nil).Once()
	mockProvider.On("RetrieveIntent", ctx, "pi_abc").Return(&payments.Intent{ID: "pi_abc", ClientSecret: "pi_abc_secret", Status: "requires_payment_method"}, nil).Once()

	result, err := service.CreateIntent(ctx, actor, 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(9), result.PaymentID)
	assert.Equal(t, "pi_abc_secret", result.ClientSecret)
	mockProvider.AssertNotCalled(t, "CreateIntent")
	mockPayments.AssertNotCalled(t, "Create")
}

func TestPaymentService_CreateIntent_SelfHealsLostIntent(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockBookings := &MockBookingRepository{}
	mockServices := &MockServiceRepository{}
	mockProvider := &MockProvider{}
	service := newTestService(mockPayments, mockBookings, mockServices, mockProvider, &MockProducer{})

	ctx := context.Background()
	actor := domain.Account{ID: 7}
	existing := &domain.Payment{ID: 9, BookingID: 1, AccountID: 7, AmountCents: 125050, ProviderIntentID: "pi_lost", Status: domain.PaymentStatusPending}
	healed := &domain.Payment{ID: 9, BookingID: 1, AccountID: 7, AmountCents: 125050, ProviderIntentID: "pi_new", Status: domain.PaymentStatusPending}

	mockBookings.On("GetByID", ctx, int64(1)).Return(&domain.Booking{ID: 1, AccountID: 7, ServiceID: 3, PaymentStatus: domain.PaymentStatePending}, nil).Once()
	mockPayments.On("FindActiveByBooking", ctx, int64(1)).Return(existing, nil).Once()
	mockServices.On("GetByID", ctx, int64(3)).Return(&domain.Service{ID: 3, Cost: 1250.50}, nil).Once()
	mockProvider.On("RetrieveIntent", ctx, "pi_lost").Return(nil, errors.New("no such payment_intent")).Once()
	mockProvider.On("CreateIntent", ctx, int64(125050), "usd", mock.Anything).Return(&payments.Intent{ID: "pi_new", ClientSecret: "pi_new_secret", Status: "requires_payment_method"}, nil).Once()
	mockPayments.On("UpdateIntent", ctx, int64(9), "pi_new", int64(125050)).Return(healed, nil).Once()

	result, err := service.CreateIntent(ctx, actor, 1)

	assert.NoError(t, err)
	assert.Equal(t, "pi_new_secret", result.ClientSecret)
	assert.Equal(t, int64(9), result.PaymentID)
	mockPayments.AssertExpectations(t)
	mockProvider.AssertExpectations(t)
}

func TestPaymentService_CreateIntent_Guards(t *testing.T) {
	ctx := context.Background()
	actor := domain.Account{ID: 7}

	t.Run("not the booking owner", func(t *testing.T) {
		mockBookings := &MockBookingRepository{}
		service := newTestService(&MockPaymentRepository{}, mockBookings, &MockServiceRepository{}, &MockProvider{}, &MockProducer{})

		mockBookings.On("GetByID", ctx, int64(1)).Return(&domain.Booking{ID: 1, AccountID: 99}, nil).Once()

		result, err := service.CreateIntent(ctx, actor, 1)
		assert.Nil(t, result)
		assert.True(t, domain.IsKind(err, domain.KindForbidden))
	})

	t.Run("booking already paid", func(t *testing.T) {
		mockBookings := &MockBookingRepository{}
		service := newTestService(&MockPaymentRepository{}, mockBookings, &MockServiceRepository{}, &MockProvider{}, &MockProducer{})

		mockBookings.On("GetByID", ctx, int64(1)).Return(&domain.Booking{ID: 1, AccountID: 7, PaymentStatus: domain.PaymentStatePaid}, nil).Once()

		result, err := service.CreateIntent(ctx, actor, 1)
		assert.Nil(t, result)
		assert.True(t, domain.IsKind(err, domain.KindConflict))
	})

	t.Run("succeeded record blocks a new intent", func(t *testing.T) {
		mockPayments := &MockPaymentRepository{}
		mockBookings := &MockBookingRepository{}
		service := newTestService(mockPayments, mockBookings, &MockServiceRepository{}, &MockProvider{}, &MockProducer{})

		mockBookings.On("GetByID", ctx, int64(1)).Return(&domain.Booking{ID: 1, AccountID: 7, ServiceID: 3, PaymentStatus: domain.PaymentStatePending}, nil).Once()
		mockPayments.On("FindActiveByBooking", ctx, int64(1)).Return(&domain.Payment{ID: 9, Status: domain.PaymentStatusSucceeded}, nil).Once()

		result, err := service.CreateIntent(ctx, actor, 1)
		assert.Nil(t, result)
		assert.True(t, domain.IsKind(err, domain.KindConflict))
	})

	t.Run("zero cost service", func(t *testing.T) {
		mockPayments := &MockPaymentRepository{}
		mockBookings := &MockBookingRepository{}
		mockServices := &MockServiceRepository{}
		service := newTestService(mockPayments, mockBookings, mockServices, &MockProvider{}, &MockProducer{})

		mockBookings.On("GetByID", ctx, int64(1)).Return(&domain.Booking{ID: 1, AccountID: 7, ServiceID: 3, PaymentStatus: domain.PaymentStatePending}, nil).Once()
		mockPayments.On("FindActiveByBooking", ctx, int64(1)).Return(nil, nil).Once()
		mockServices.On("GetByID", ctx, int64(3)).Return(&domain.Service{ID: 3, Cost: 0}, nil).Once()

		result, err := service.CreateIntent(ctx, actor, 1)
		assert.Nil(t, result)
		assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
	})
}

func TestPaymentService_Confirm_Success(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockBookings := &MockBookingRepository{}
	mockProvider := &MockProvider{}
	mockProducer := &MockProducer{}
	service := newTestService(mockPayments, mockBookings, &MockServiceRepository{}, mockProvider, mockProducer)

	ctx := context.Background()
	actor := domain.Account{ID: 7}
	record := &domain.Payment{ID: 9, BookingID: 1, AccountID: 7, ProviderIntentID: "pi_abc", Status: domain.PaymentStatusPending}
	succeeded := &domain.Payment{ID: 9, BookingID: 1, AccountID: 7, ProviderIntentID: "pi_abc", Status: domain.PaymentStatusSucceeded}
	paidBooking := &domain.Booking{ID: 1, AccountID: 7, Status: domain.BookingStatusConfirmed, PaymentStatus: domain.PaymentStatePaid}

	mockPayments.On("GetByID", ctx, int64(9)).Return(record, nil).Once()
	mockProvider.On("RetrieveIntent", ctx, "pi_abc").Return(&payments.Intent{ID: "pi_abc", Status: payments.StatusSucceeded}, nil).Once()
	mockPayments.On("UpdateStatus", ctx, int64(9), domain.PaymentStatusSucceeded).Return(succeeded, nil).Once()
	mockBookings.On("MarkPaid", ctx, int64(1)).Return(paidBooking, nil).Once()
	mockProducer.On("Publish", ctx, "payment-events", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := service.Confirm(ctx, actor, ConfirmInput{PaymentID: 9})

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSucceeded, result.Payment.Status)
	assert.Equal(t, domain.PaymentStatePaid, result.Booking.PaymentStatus)
	assert.Equal(t, domain.BookingStatusConfirmed, result.Booking.Status)
	mockPayments.AssertExpectations(t)
	mockBookings.AssertExpectations(t)
}

func TestPaymentService_Confirm_ProviderNotSucceeded(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockBookings := &MockBookingRepository{}
	mockProvider := &MockProvider{}
	service := newTestService(mockPayments, mockBookings, &MockServiceRepository{}, mockProvider, &MockProducer{})

	ctx := context.Background()
	actor := domain.Account{ID: 7}
	record := &domain.Payment{ID: 9, BookingID: 1, AccountID: 7, ProviderIntentID: "pi_abc", Status: domain.PaymentStatusPending}

	mockPayments.On("GetByID", ctx, int64(9)).Return(record, nil).Once()
	mockProvider.On("RetrieveIntent", ctx, "pi_abc").Return(&payments.Intent{ID: "pi_abc", Status: "requires_action"}, nil).Once()

	result, err := service.Confirm(ctx, actor, ConfirmInput{PaymentID: 9})

	assert.Nil(t, result)
	assert.True(t, domain.IsKind(err, domain.KindInvalidState))
	assert.Contains(t, err.Error(), "requires_action")
	mockPayments.AssertNotCalled(t, "UpdateStatus")
	mockBookings.AssertNotCalled(t, "MarkPaid")
}

func TestPaymentService_Confirm_ByIntentID(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockBookings := &MockBookingRepository{}
	mockProvider := &MockProvider{}
	mockProducer := &MockProducer{}
	service := newTestService(mockPayments, mockBookings, &MockServiceRepository{}, mockProvider, mockProducer)

	ctx := context.Background()
	actor := domain.Account{ID: 7}
	record := &domain.Payment{ID: 9, BookingID: 1, AccountID: 7, ProviderIntentID: "pi_abc", Status: domain.PaymentStatusPending}

	mockPayments.On("GetByIntentID", ctx, "pi_abc").Return(record, nil).Once()
	mockProvider.On("RetrieveIntent", ctx, "pi_abc").Return(&payments.Intent{ID: "pi_abc", Status: payments.StatusSucceeded}, nil).Once()
	mockPayments.On("UpdateStatus", ctx, int64(9), domain.PaymentStatusSucceeded).Return(record, nil).Once()
	mockBookings.On("MarkPaid", ctx, int64(1)).Return(&domain.Booking{ID: 1}, nil).Once()
	mockProducer.On("Publish", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := service.Confirm(ctx, actor, ConfirmInput{IntentID: "pi_abc"})

	assert.NoError(t, err)
	assert.NotNil(t, result)
}

func TestPaymentService_Confirm_MissingIdentifiers(t *testing.T) {
	service := newTestService(&MockPaymentRepository{}, &MockBookingRepository{}, &MockServiceRepository{}, &MockProvider{}, &MockProducer{})

	result, err := service.Confirm(context.Background(), domain.Account{ID: 7}, ConfirmInput{})
	assert.Nil(t, result)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
}

func TestPaymentService_Confirm_NotOwner(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockProvider := &MockProvider{}
	service := newTestService(mockPayments, &MockBookingRepository{}, &MockServiceRepository{}, mockProvider, &MockProducer{})

	ctx := context.Background()
	record := &domain.Payment{ID: 9, BookingID: 1, AccountID: 99, ProviderIntentID: "pi_abc"}

	mockPayments.On("GetByID", ctx, int64(9)).Return(record, nil).Once()

	result, err := service.Confirm(ctx, domain.Account{ID: 7}, ConfirmInput{PaymentID: 9})
	assert.Nil(t, result)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	mockProvider.AssertNotCalled(t, "RetrieveIntent")
}

func TestPaymentService_Confirm_BookingWriteFailureIsAnomaly(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockBookings := &MockBookingRepository{}
	mockProvider := &MockProvider{}
	mockProducer := &MockProducer{}
	service := newTestService(mockPayments, mockBookings, &MockServiceRepository{}, mockProvider, mockProducer)

	ctx := context.Background()
	actor := domain.Account{ID: 7}
	record := &domain.Payment{ID: 9, BookingID: 1, AccountID: 7, ProviderIntentID: "pi_abc", Status: domain.PaymentStatusPending}
	succeeded := &domain.Payment{ID: 9, BookingID: 1, AccountID: 7, ProviderIntentID: "pi_abc", Status: domain.PaymentStatusSucceeded}

	mockPayments.On("GetByID", ctx, int64(9)).Return(record, nil).Once()
	mockProvider.On("RetrieveIntent", ctx, "pi_abc").Return(&payments.Intent{ID: "pi_abc", Status: payments.StatusSucceeded}, nil).Once()
	mockPayments.On("UpdateStatus", ctx, int64(9), domain.PaymentStatusSucceeded).Return(succeeded, nil).Once()
	mockBookings.On("MarkPaid", ctx, int64(1)).Return(nil, errors.New("connection reset")).Once()
	mockProducer.On("Publish", ctx, "payment-events", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := service.Confirm(ctx, actor, ConfirmInput{PaymentID: 9})

	assert.Nil(t, result)
	assert.True(t, domain.IsKind(err, domain.KindInternal))
	mockProducer.AssertExpectations(t)
}
