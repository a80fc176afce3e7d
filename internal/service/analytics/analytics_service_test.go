package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/styledecor/styledecor/internal/domain"
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

func TestAnalyticsService_Revenue(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	service := NewAnalyticsService(mockPayments, &MockBookingRepository{})

	ctx := context.Background()
	payments := []domain.Payment{
		{ID: 1, AmountCents: 125050, CreatedAt: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)},
		{ID: 2, AmountCents: 50000, CreatedAt: time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)},
		{ID: 3, AmountCents: 99999, CreatedAt: time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)},
	}

	mockPayments.On("ListSucceeded", ctx, (*time.Time)(nil), (*time.Time)(nil)).Return(payments, nil).Once()

	report, err := service.Revenue(ctx, nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, 2750.49, report.TotalRevenue)
	assert.Equal(t, 3, report.TotalTransactions)
	assert.Equal(t, 1750.50, report.RevenueByMonth["2026-01"])
	assert.Equal(t, 999.99, report.RevenueByMonth["2026-02"])
}

func TestAnalyticsService_Revenue_Empty(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	service := NewAnalyticsService(mockPayments, &MockBookingRepository{})

	ctx := context.Background()
	mockPayments.On("ListSucceeded", ctx, (*time.Time)(nil), (*time.Time)(nil)).Return([]domain.Payment{}, nil).Once()

	report, err := service.Revenue(ctx, nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, float64(0), report.TotalRevenue)
	assert.Equal(t, 0, report.TotalTransactions)
	assert.Empty(t, report.RevenueByMonth)
}

func TestAnalyticsService_ServiceDemand(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	service := NewAnalyticsService(&MockPaymentRepository{}, mockBookings)

	ctx := context.Background()
	demand := []domain.ServiceDemand{
		{ServiceID: 1, ServiceName: "Wedding Decoration", Category: "event", BookingCount: 12, CompletedCount: 8},
		{ServiceID: 2, ServiceName: "Corporate Gala Setup", Category: "event", BookingCount: 5, CompletedCount: 5},
		{ServiceID: 3, ServiceName: "Living Room Makeover", Category: "interior", BookingCount: 3, CompletedCount: 1},
	}

	mockBookings.On("DemandByService", ctx).Return(demand, nil).Once()

	report, err := service.ServiceDemand(ctx)

	assert.NoError(t, err)
	assert.Len(t, report.ServiceDemand, 3)
	assert.Equal(t, int64(17), report.DemandByCategory["event"].TotalBookings)
	assert.Equal(t, int64(13), report.DemandByCategory["event"].TotalCompleted)
	assert.Len(t, report.DemandByCategory["event"].Services, 2)
	assert.Equal(t, int64(3), report.DemandByCategory["interior"].TotalBookings)
}
