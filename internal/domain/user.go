package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an application user record. Identity itself lives with the
// external auth provider; this row only mirrors email and display name.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserInput holds the fields accepted by POST /api/users.
type CreateUserInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Validate checks field presence only; uniqueness is enforced by the database.
func (in CreateUserInput) Validate() error {
	return RequireFields(map[string]string{
		"email": in.Email,
		"name":  in.Name,
	})
}
