package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusAssigned   BookingStatus = "assigned"
	BookingStatusInProgress BookingStatus = "in-progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// IsTerminal reports whether no further coarse status transition is allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// allowedTransitions is the provider-driven part of the status machine.
// Everything not listed here is rejected.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusAssigned:   {BookingStatusInProgress, BookingStatusCompleted},
	BookingStatusInProgress: {BookingStatusCompleted},
}

func CanTransition(from, to BookingStatus) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

type PaymentState string

const (
	PaymentStatePending  PaymentState = "pending"
	PaymentStatePaid     PaymentState = "paid"
	PaymentStateFailed   PaymentState = "failed"
	PaymentStateRefunded PaymentState = "refunded"
)

type OnSiteStage string

const (
	StageAssigned          OnSiteStage = "assigned"
	StagePlanning          OnSiteStage = "planning-phase"
	StageMaterialsPrepared OnSiteStage = "materials-prepared"
	StageOnTheWay          OnSiteStage = "on-the-way-to-venue"
	StageSetupInProgress   OnSiteStage = "setup-in-progress"
	StageCompleted         OnSiteStage = "completed"
)

// stageOrder is the total order over on-site stages; the index may never
// decrease for a booking.
var stageOrder = []OnSiteStage{
	StageAssigned,
	StagePlanning,
	StageMaterialsPrepared,
	StageOnTheWay,
	StageSetupInProgress,
	StageCompleted,
}

// StageIndex returns the position of s in the stage order, or -1 for an
// unknown (or unset) stage.
func StageIndex(s OnSiteStage) int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

func ValidStage(s OnSiteStage) bool {
	return StageIndex(s) >= 0
}

// Booking tracks a client's request for a service through its lifecycle.
// Bookings are never deleted; cancellation is a status transition.
type Booking struct {
	ID            int64         `json:"id"`
	AccountID     int64         `json:"account_id"`
	ServiceID     int64         `json:"service_id"`
	Date          time.Time     `json:"date"`
	Location      string        `json:"location"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentState  `json:"payment_status"`
	DecoratorID   *int64        `json:"decorator_id,omitempty"`
	OnSiteStage   OnSiteStage   `json:"on_site_stage,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Attached on read for enriched responses, not persisted here.
	Account *Account `json:"account,omitempty"`
	Service *Service `json:"service,omitempty"`
}
