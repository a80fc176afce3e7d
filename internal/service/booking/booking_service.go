package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/styledecor/styledecor/internal/domain"
	"github.com/styledecor/styledecor/internal/kafka"
	"github.com/styledecor/styledecor/internal/repository"
)

type BookingUseCase interface {
	Create(ctx context.Context, actor domain.Account, input CreateBookingInput) (*domain.Booking, error)
	MyBookings(ctx context.Context, actor domain.Account) ([]domain.Booking, error)
	Cancel(ctx context.Context, actor domain.Account, bookingID int64) (*domain.Booking, error)
	Assign(ctx context.Context, bookingID, decoratorID int64) (*domain.Booking, error)
	Projects(ctx context.Context, actor domain.Account) ([]domain.Booking, error)
	AdvanceStatus(ctx context.Context, actor domain.Account, bookingID int64, next domain.BookingStatus) (*domain.Booking, error)
	AdvanceOnSiteStage(ctx context.Context, actor domain.Account, bookingID int64, stage domain.OnSiteStage) (*domain.Booking, error)
	ListAll(ctx context.Context, status domain.BookingStatus, paymentStatus domain.PaymentState) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	services           repository.ServiceRepository
	accounts           repository.AccountRepository
	decorators         repository.DecoratorRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	logger             *zap.Logger
	now                func() time.Time
}

type CreateBookingInput struct {
	ServiceID int64     `json:"service_id"`
	Date      time.Time `json:"date"`
	Location  string    `json:"location"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	services repository.ServiceRepository,
	accounts repository.AccountRepository,
	decorators repository.DecoratorRepository,
	producer Producer,
	bookingTopic string,
	logger *zap.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	s := &BookingService{
		bookings:     bookings,
		services:     services,
		accounts:     accounts,
		decorators:   decorators,
		producer:     producer,
		bookingTopic: bookingTopic,
		logger:       logger,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BookingService) Create(ctx context.Context, actor domain.Account, input CreateBookingInput) (*domain.Booking, error) {
	location := strings.TrimSpace(input.Location)
	if location == "" {
		return nil, domain.E(domain.KindInvalidInput, "location is required")
	}
	if !input.Date.After(s.now()) {
		return nil, domain.E(domain.KindInvalidInput, "booking date must be in the future")
	}

	svc, err := s.services.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		AccountID:     actor.ID,
		ServiceID:     svc.ID,
		Date:          input.Date,
		Location:      location,
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatePending,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	booking.Service = svc
	s.publish(ctx, kafka.EventBookingCreated, booking, actor.Email)
	return booking, nil
}

func (s *BookingService) MyBookings(ctx context.Context, actor domain.Account) ([]domain.Booking, error) {
	return s.bookings.ListByAccount(ctx, actor.ID)
}

func (s *BookingService) Cancel(ctx context.Context, actor domain.Account, bookingID int64) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.AccountID != actor.ID {
		return nil, domain.E(domain.KindForbidden, "you do not have permission to cancel this booking")
	}
	if current.Status == domain.BookingStatusCompleted || current.Status == domain.BookingStatusInProgress {
		return nil, domain.E(domain.KindInvalidState, "cannot cancel a booking that is in progress or completed")
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.EventBookingCancelled, updated, actor.Email)
	return updated, nil
}

func (s *BookingService) Assign(ctx context.Context, bookingID, decoratorID int64) (*domain.Booking, error) {
	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}
	decorator, err := s.decorators.GetByID(ctx, decoratorID)
	if err != nil {
		return nil, err
	}
	if decorator.Status != domain.DecoratorStatusApproved {
		return nil, domain.Ef(domain.KindInvalidState, "cannot assign a decorator whose profile is %s", decorator.Status)
	}

	updated, err := s.bookings.Assign(ctx, bookingID, decoratorID)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, updated); err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.EventBookingAssigned, updated, accountEmail(updated))
	return updated, nil
}

func (s *BookingService) Projects(ctx context.Context, actor domain.Account) ([]domain.Booking, error) {
	decorator, err := s.decorators.GetByAccount(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if decorator == nil {
		return nil, domain.E(domain.KindNotFound, "decorator profile not found")
	}
	if decorator.Status != domain.DecoratorStatusApproved {
		return nil, domain.Ef(domain.KindForbidden, "your decorator account is %s; please wait for admin approval", decorator.Status)
	}

	bookings, err := s.bookings.ListByDecorator(ctx, decorator.ID)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if err := s.enrich(ctx, &bookings[i]); err != nil {
			return nil, err
		}
	}
	return bookings, nil
}

func (s *BookingService) AdvanceStatus(ctx context.Context, actor domain.Account, bookingID int64, next domain.BookingStatus) (*domain.Booking, error) {
	switch next {
	case domain.BookingStatusAssigned, domain.BookingStatusInProgress, domain.BookingStatusCompleted:
	default:
		return nil, domain.Ef(domain.KindInvalidInput, "invalid status %q", next)
	}

	booking, err := s.ownedBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status.IsTerminal() {
		return nil, domain.Ef(domain.KindInvalidState, "cannot update status of a booking that is already %s", booking.Status)
	}
	if !domain.CanTransition(booking.Status, next) {
		return nil, domain.Ef(domain.KindInvalidState, "invalid status transition from %q to %q", booking.Status, next)
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, next)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, updated); err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.EventBookingStatusChanged, updated, accountEmail(updated))
	return updated, nil
}

func (s *BookingService) AdvanceOnSiteStage(ctx context.Context, actor domain.Account, bookingID int64, stage domain.OnSiteStage) (*domain.Booking, error) {
	if !domain.ValidStage(stage) {
		return nil, domain.Ef(domain.KindInvalidInput, "invalid on-site stage %q", stage)
	}

	booking, err := s.ownedBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	// A booking with no prior stage accepts any valid stage, including one
	// mid-sequence.
	// TODO: confirm with product whether the first stage write should be
	// forced to start at "assigned".
	if booking.OnSiteStage != "" && domain.StageIndex(stage) < domain.StageIndex(booking.OnSiteStage) {
		return nil, domain.Ef(domain.KindInvalidState, "cannot move on-site stage backwards from %q to %q", booking.OnSiteStage, stage)
	}

	updated, err := s.bookings.UpdateOnSiteStage(ctx, bookingID, stage, stage == domain.StageCompleted)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, updated); err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.EventBookingStatusChanged, updated, accountEmail(updated))
	return updated, nil
}

func (s *BookingService) ListAll(ctx context.Context, status domain.BookingStatus, paymentStatus domain.PaymentState) ([]domain.Booking, error) {
	return s.bookings.ListAll(ctx, status, paymentStatus)
}

// ownedBooking resolves the actor's decorator profile and checks the booking
// is assigned to it.
func (s *BookingService) ownedBooking(ctx context.Context, actor domain.Account, bookingID int64) (*domain.Booking, error) {
	decorator, err := s.decorators.GetByAccount(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if decorator == nil {
		return nil, domain.E(domain.KindNotFound, "decorator profile not found")
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.DecoratorID == nil || *booking.DecoratorID != decorator.ID {
		return nil, domain.E(domain.KindForbidden, "this booking is not assigned to you")
	}
	return booking, nil
}

// enrich attaches account and service details for responses. Read-only.
func (s *BookingService) enrich(ctx context.Context, booking *domain.Booking) error {
	svc, err := s.services.GetByID(ctx, booking.ServiceID)
	if err != nil {
		return err
	}
	account, err := s.accounts.GetByID(ctx, booking.AccountID)
	if err != nil {
		return err
	}
	booking.Service = svc
	booking.Account = account
	return nil
}

func accountEmail(b *domain.Booking) string {
	if b.Account != nil {
		return b.Account.Email
	}
	return ""
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, email string) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:          eventType,
		Ref:           uuid.NewString(),
		BookingID:     booking.ID,
		AccountID:     booking.AccountID,
		ServiceID:     booking.ServiceID,
		DecoratorID:   booking.DecoratorID,
		Status:        string(booking.Status),
		PaymentStatus: string(booking.PaymentStatus),
		OnSiteStage:   string(booking.OnSiteStage),
		Email:         email,
		OccurredAt:    time.Now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, event.Ref, event); err != nil {
		s.logger.Warn("failed to publish booking event", zap.String("type", eventType), zap.Int64("booking_id", booking.ID), zap.Error(err))
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, event.Ref, event); err != nil {
			s.logger.Warn("failed to publish notification event", zap.String("type", eventType), zap.Int64("booking_id", booking.ID), zap.Error(err))
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
