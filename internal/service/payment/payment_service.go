package payment

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/styledecor/styledecor/internal/domain"
	"github.com/styledecor/styledecor/internal/kafka"
	"github.com/styledecor/styledecor/internal/payments"
	"github.com/styledecor/styledecor/internal/repository"
)

type PaymentUseCase interface {
	CreateIntent(ctx context.Context, actor domain.Account, bookingID int64) (*CreateIntentResult, error)
	Confirm(ctx context.Context, actor domain.Account, input ConfirmInput) (*ConfirmResult, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type PaymentService struct {
	payments     repository.PaymentRepository
	bookings     repository.BookingRepository
	services     repository.ServiceRepository
	provider     payments.Provider
	producer     Producer
	paymentTopic string
	currency     string
	logger       *zap.Logger
}

// CreateIntentResult carries the provider handle and the amount in major
// display units; the minor-unit amount is never the external value.
type CreateIntentResult struct {
	ClientSecret string  `json:"client_secret"`
	PaymentID    int64   `json:"payment_id"`
	Amount       float64 `json:"amount"`
}

type ConfirmInput struct {
	PaymentID int64  `json:"payment_id"`
	IntentID  string `json:"intent_id"`
}

type ConfirmResult struct {
	Payment *domain.Payment `json:"payment"`
	Booking *domain.Booking `json:"booking"`
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	bookings repository.BookingRepository,
	services repository.ServiceRepository,
	provider payments.Provider,
	producer Producer,
	paymentTopic string,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		payments:     paymentRepo,
		bookings:     bookings,
		services:     services,
		provider:     provider,
		producer:     producer,
		paymentTopic: paymentTopic,
		currency:     "usd",
		logger:       logger,
	}
}

func (s *PaymentService) CreateIntent(ctx context.Context, actor domain.Account, bookingID int64) (*CreateIntentResult, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.AccountID != actor.ID {
		return nil, domain.E(domain.KindForbidden, "you do not have permission to pay for this booking")
	}
	if booking.PaymentStatus == domain.PaymentStatePaid {
		return nil, domain.E(domain.KindConflict, "this booking has already been paid")
	}

	existing, err := s.payments.FindActiveByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == domain.PaymentStatusSucceeded {
		return nil, domain.E(domain.KindConflict, "payment already completed for this booking")
	}

	svc, err := s.services.GetByID(ctx, booking.ServiceID)
	if err != nil {
		return nil, err
	}
	amountCents := int64(math.Round(svc.Cost * 100))
	if amountCents <= 0 {
		return nil, domain.E(domain.KindInvalidInput, "invalid payment amount")
	}

	metadata := map[string]string{
		"bookingId":   strconv.FormatInt(bookingID, 10),
		"accountId":   strconv.FormatInt(actor.ID, 10),
		"serviceName": svc.Name,
	}

	var record *domain.Payment
	var secret string

	if existing != nil {
		// Pending record: prefer its provider intent, but heal local state
		// when the provider no longer knows the intent.
		intent, err := s.provider.RetrieveIntent(ctx, existing.ProviderIntentID)
		if err != nil {
			s.logger.Warn("provider lost the pending intent, creating a fresh one",
				zap.Int64("booking_id", bookingID), zap.String("intent_id", existing.ProviderIntentID), zap.Error(err))
			fresh, err := s.provider.CreateIntent(ctx, amountCents, s.currency, metadata)
			if err != nil {
				return nil, err
			}
			record, err = s.payments.UpdateIntent(ctx, existing.ID, fresh.ID, amountCents)
			if err != nil {
				return nil, err
			}
			secret = fresh.ClientSecret
		} else {
			record = existing
			secret = intent.ClientSecret
		}
	} else {
		intent, err := s.provider.CreateIntent(ctx, amountCents, s.currency, metadata)
		if err != nil {
			return nil, err
		}
		record = &domain.Payment{
			BookingID:        bookingID,
			AccountID:        actor.ID,
			AmountCents:      amountCents,
			ProviderIntentID: intent.ID,
			Status:           domain.PaymentStatusPending,
		}
		if err := s.payments.Create(ctx, record); err != nil {
			return nil, err
		}
		secret = intent.ClientSecret
	}

	return &CreateIntentResult{
		ClientSecret: secret,
		PaymentID:    record.ID,
		Amount:       float64(amountCents) / 100,
	}, nil
}

func (s *PaymentService) Confirm(ctx context.Context, actor domain.Account, input ConfirmInput) (*ConfirmResult, error) {
	var record *domain.Payment
	var err error
	switch {
	case input.PaymentID != 0:
		record, err = s.payments.GetByID(ctx, input.PaymentID)
	case input.IntentID != "":
		record, err = s.payments.GetByIntentID(ctx, input.IntentID)
	default:
		return nil, domain.E(domain.KindInvalidInput, "please provide either payment_id or intent_id")
	}
	if err != nil {
		return nil, err
	}
	if record.AccountID != actor.ID {
		return nil, domain.E(domain.KindForbidden, "you do not have permission to confirm this payment")
	}

	// The provider is the source of truth; a client-supplied success flag
	// is never trusted.
	intent, err := s.provider.RetrieveIntent(ctx, record.ProviderIntentID)
	if err != nil {
		return nil, err
	}
	if intent.Status != payments.StatusSucceeded {
		return nil, domain.Ef(domain.KindInvalidState, "payment not completed; current status: %s", intent.Status)
	}

	updated, err := s.payments.UpdateStatus(ctx, record.ID, domain.PaymentStatusSucceeded)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.MarkPaid(ctx, record.BookingID)
	if err != nil {
		// Payment is recorded as succeeded but the booking write failed.
		// Report the anomaly so reconciliation can repair it later.
		s.logger.Error("payment reconciliation anomaly: payment succeeded but booking update failed",
			zap.Int64("payment_id", updated.ID), zap.Int64("booking_id", record.BookingID), zap.Error(err))
		s.publish(ctx, kafka.EventReconciliationAnomaly, updated, err.Error())
		return nil, domain.Wrap(domain.KindInternal, "payment recorded but booking update failed", err)
	}

	s.publish(ctx, kafka.EventPaymentConfirmed, updated, "")
	return &ConfirmResult{Payment: updated, Booking: booking}, nil
}

func (s *PaymentService) publish(ctx context.Context, eventType string, p *domain.Payment, detail string) {
	if s.producer == nil || s.paymentTopic == "" {
		return
	}
	event := kafka.PaymentEvent{
		Type:        eventType,
		Ref:         uuid.NewString(),
		PaymentID:   p.ID,
		BookingID:   p.BookingID,
		AccountID:   p.AccountID,
		IntentID:    p.ProviderIntentID,
		AmountCents: p.AmountCents,
		Status:      string(p.Status),
		Detail:      detail,
		OccurredAt:  time.Now(),
	}
	if err := s.producer.Publish(ctx, s.paymentTopic, event.Ref, event); err != nil {
		s.logger.Warn("failed to publish payment event", zap.String("type", eventType), zap.Int64("payment_id", p.ID), zap.Error(err))
	}
}

var _ PaymentUseCase = (*PaymentService)(nil)
