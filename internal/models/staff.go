package models

import (
	"time"

	"github.com/google/uuid"
)

// Staff is a hospital staff account. PasswordHash is a bcrypt hash and is
// never serialized.
type Staff struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
