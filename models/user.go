package models

import (
	"time"
)

// User represents an account that can sign in to the employee directory
type User struct {
	ID        string    `json:"user_id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Username  string    `json:"username" gorm:"not null;uniqueIndex:idx_users_username"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex:idx_users_email"`
	Password  string    `json:"-" gorm:"not null"` // Stored as a digest, never exposed in JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
