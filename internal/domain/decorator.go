package domain

import "time"

type DecoratorStatus string

const (
	DecoratorStatusPending  DecoratorStatus = "pending"
	DecoratorStatusApproved DecoratorStatus = "approved"
	DecoratorStatusDisabled DecoratorStatus = "disabled"
)

// Specialty vocabulary shared with the service catalog categories.
var specialtyCategories = map[string]struct{}{
	"interior":    {},
	"exterior":    {},
	"event":       {},
	"commercial":  {},
	"residential": {},
	"other":       {},
}

func ValidSpecialty(s string) bool {
	_, ok := specialtyCategories[s]
	return ok
}

// Decorator is a provider profile. Exactly one per account once promoted;
// only approved profiles may be assigned bookings.
type Decorator struct {
	ID          int64           `json:"id"`
	AccountID   int64           `json:"account_id"`
	Specialties []string        `json:"specialties"`
	Rating      float64         `json:"rating"`
	Status      DecoratorStatus `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Attached on read for listings, not persisted here.
	Account *Account `json:"account,omitempty"`
}
