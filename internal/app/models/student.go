package models

import "github.com/google/uuid"

// Student is a registered student. Students never log in.
type Student struct {
	ID           uuid.UUID `json:"id" db:"id"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	MatricNumber string    `json:"matricNumber" db:"matric_number"`
	Level        string    `json:"level" db:"level"`
	Gender       string    `json:"gender" db:"gender"`
	Images       []string  `json:"images" db:"images"`

	Timestamps
}
