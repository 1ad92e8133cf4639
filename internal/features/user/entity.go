package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type User struct {
	UserID           uuid.UUID      `json:"user_id"`
	FirstName        string         `json:"firstName"`
	LastName         string         `json:"lastName"`
	Email            string         `json:"email"`
	Password         string         `json:"-"`
	Role             string         `json:"role"`
	ResetCode        sql.NullString `json:"-"`
	ResetCodeExpires sql.NullTime   `json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"-"`
}
