package dto

import "github.com/yigit/attendance/internal/app/models"

// LecturerSignUpRequest creates a lecturer account
type LecturerSignUpRequest struct {
	FirstName string `json:"firstName" binding:"required,trimmin=3,trimmax=50"`
	LastName  string `json:"lastName" binding:"required,trimmin=3,trimmax=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=1024"`
}

// LoginRequest represents login credentials. Presence is checked by the service
// so a missing field yields the same 400 as an empty one.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest starts a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes a password reset with the mailed code
type ResetPasswordRequest struct {
	Password        string `json:"password" binding:"required,min=8,max=1024"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	OTP             string `json:"otp" binding:"required,numeric"`
}

// AuthResponse is returned by sign up, login and reset
type AuthResponse struct {
	Token    string           `json:"token"`
	Lecturer *models.Lecturer `json:"lecturer"`
}
