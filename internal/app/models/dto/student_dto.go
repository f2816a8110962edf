package dto

import "github.com/yigit/attendance/internal/app/models"

// RegisterStudentRequest registers a student
type RegisterStudentRequest struct {
	FirstName    string   `json:"firstName" binding:"required,trimmin=3,trimmax=50"`
	LastName     string   `json:"lastName" binding:"required,trimmin=3,trimmax=50"`
	Email        string   `json:"email" binding:"required,email"`
	MatricNumber string   `json:"matricNumber" binding:"required,matric"`
	Level        string   `json:"level" binding:"required,level"`
	Gender       string   `json:"gender" binding:"required,max=20"`
	Images       []string `json:"images" binding:"omitempty,dive,required"`
}

// ToModel builds the student record from the request
func (r RegisterStudentRequest) ToModel() *models.Student {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	return &models.Student{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		MatricNumber: r.MatricNumber,
		Level:        r.Level,
		Gender:       r.Gender,
		Images:       images,
	}
}
