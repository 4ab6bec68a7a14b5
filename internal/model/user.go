package model

import (
	"time"
)

const RoleUser = "ROLE_USER"

// User is an API account created through /api/auth/register.
// PasswordHash is bcrypt and never leaves the backend.
type User struct {
	ID           uint     `gorm:"primaryKey"`
	Email        string   `gorm:"uniqueIndex;size:180;not null"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Roles        []string `gorm:"serializer:json;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
