package models

import (
	"time"

	"github.com/google/uuid"
)

// Lecturer is the only principal that can authenticate
type Lecturer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Email     string    `json:"email" db:"email"`

	// Only loaded by the *WithPassword lookups
	PasswordHash string `json:"-" db:"password_hash"`

	OTP          *string    `json:"-" db:"otp"`
	OTPExpiresAt *time.Time `json:"-" db:"otp_expires_at"`

	Timestamps
}

// FullName joins first and last name for greetings
func (l *Lecturer) FullName() string {
	return l.FirstName + " " + l.LastName
}
