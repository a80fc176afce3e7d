package domain

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleDecorator Role = "decorator"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleAdmin, RoleDecorator:
		return true
	}
	return false
}

// Account is a registered identity. SubjectID is the external identity
// provider's stable subject for the account.
type Account struct {
	ID        int64     `json:"id"`
	SubjectID string    `json:"-"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Image     *string   `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
