package kafka

import "time"

// Event types published to the booking and payment topics. The worker
// forwards a subset from the notifications topic to the email sender.
const (
	EventBookingCreated       = "booking_created"
	EventBookingAssigned      = "booking_assigned"
	EventBookingStatusChanged = "booking_status_changed"
	EventBookingCancelled     = "booking_cancelled"
	EventPaymentConfirmed     = "payment_confirmed"

	// EventReconciliationAnomaly marks a payment recorded as succeeded whose
	// booking update failed; later reconciliation repairs these.
	EventReconciliationAnomaly = "payment.reconciliation_anomaly"
)

type BookingEvent struct {
	Type          string    `json:"type"`
	Ref           string    `json:"ref"`
	BookingID     int64     `json:"booking_id"`
	AccountID     int64     `json:"account_id"`
	ServiceID     int64     `json:"service_id"`
	DecoratorID   *int64    `json:"decorator_id,omitempty"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	OnSiteStage   string    `json:"on_site_stage,omitempty"`
	Email         string    `json:"email,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type PaymentEvent struct {
	Type        string    `json:"type"`
	Ref         string    `json:"ref"`
	PaymentID   int64     `json:"payment_id"`
	BookingID   int64     `json:"booking_id"`
	AccountID   int64     `json:"account_id"`
	IntentID    string    `json:"intent_id"`
	AmountCents int64     `json:"amount_cents"`
	Status      string    `json:"status"`
	Detail      string    `json:"detail,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
