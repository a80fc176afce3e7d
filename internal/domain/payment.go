package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCanceled  PaymentStatus = "canceled"
)

// Active reports whether the record counts against the one-active-intent-
// per-booking invariant.
func (s PaymentStatus) Active() bool {
	return s == PaymentStatusPending || s == PaymentStatusSucceeded
}

// Payment is the local record of a payment-intent attempt against the
// external provider. AmountCents is in minor currency units.
type Payment struct {
	ID               int64         `json:"id"`
	BookingID        int64         `json:"booking_id"`
	AccountID        int64         `json:"account_id"`
	AmountCents      int64         `json:"amount"`
	ProviderIntentID string        `json:"provider_intent_id"`
	Status           PaymentStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
