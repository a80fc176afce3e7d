package domain

import "time"

var serviceUnits = map[string]struct{}{
	"per hour":        {},
	"per room":        {},
	"per project":     {},
	"per square foot": {},
	"flat rate":       {},
}

func ValidServiceUnit(u string) bool {
	_, ok := serviceUnits[u]
	return ok
}

func ValidServiceCategory(c string) bool {
	return ValidSpecialty(c)
}

// Service is a bookable decoration service listing. Cost is in major
// currency units; payment amounts are derived from it in minor units.
type Service struct {
	ID             int64     `json:"id"`
	Name           string    `json:"service_name"`
	Cost           float64   `json:"cost"`
	Unit           string    `json:"unit"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	CreatedByEmail string    `json:"created_by_email"`
	Image          *string   `json:"image,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
