package models

import "github.com/google/uuid"

// Course is owned by the lecturer who created it
type Course struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CourseName string    `json:"courseName" db:"course_name"`
	CourseCode string    `json:"courseCode" db:"course_code"`
	Level      string    `json:"level" db:"level"`
	Day        string    `json:"day" db:"day"`
	Time       string    `json:"time" db:"time"`
	LecturerID uuid.UUID `json:"lecturerId" db:"lecturer_id"`

	// Resolved from lecturers on read paths
	LecturerFirstName string `json:"lecturerFirstName,omitempty" db:"lecturer_first_name"`

	Timestamps
}

// CourseChanges carries the fields of a partial course update; nil means unchanged
type CourseChanges struct {
	CourseName *string
	CourseCode *string
	Level      *string
	Day        *string
	Time       *string
}

// Empty reports whether no field is set
func (c CourseChanges) Empty() bool {
	return c.CourseName == nil && c.CourseCode == nil && c.Level == nil && c.Day == nil && c.Time == nil
}

// LecturerChanges carries the fields of a partial profile update; nil means unchanged
type LecturerChanges struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// Empty reports whether no field is set
func (c LecturerChanges) Empty() bool {
	return c.FirstName == nil && c.LastName == nil && c.Email == nil
}
