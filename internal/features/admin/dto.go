package admin

import (
	"time"

	"github.com/google/uuid"
)

// Requests

type UpdateUserRequest struct {
	UserID    uuid.UUID `json:"-"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	Email     *string   `json:"email" validate:"omitempty,email"`
	Role      *string   `json:"role"`
}

// Responses

// UserDTO is a user record with the credential hash omitted.
type UserDTO struct {
	UserID    uuid.UUID `json:"user_id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
