package dto

import "github.com/yigit/attendance/internal/app/models"

// UpdateLecturerRequest changes profile fields; omitted fields stay as they are
type UpdateLecturerRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,trimmin=3,trimmax=50"`
	LastName  *string `json:"lastName" binding:"omitempty,trimmin=3,trimmax=50"`
	Email     *string `json:"email" binding:"omitempty,email"`
}

// Changes converts the request into repository changes
func (r UpdateLecturerRequest) Changes() models.LecturerChanges {
	return models.LecturerChanges{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
	}
}

// UpdatePasswordRequest changes the password of the logged in lecturer.
// NewPassword presence is checked by the service to return its own message.
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword" binding:"omitempty,min=8,max=1024"`
}
