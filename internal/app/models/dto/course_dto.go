package dto

import "github.com/yigit/attendance/internal/app/models"

// CreateCourseRequest creates a course owned by the caller
type CreateCourseRequest struct {
	CourseName string `json:"courseName" binding:"required,trimmin=5,trimmax=100"`
	CourseCode string `json:"courseCode" binding:"required,trimmin=6,trimmax=10"`
	Level      string `json:"level" binding:"required,level"`
	Day        string `json:"day" binding:"required,weekday"`
	Time       string `json:"time" binding:"required,max=50"`
}

// ToModel builds the course record from the request
func (r CreateCourseRequest) ToModel() *models.Course {
	return &models.Course{
		CourseName: r.CourseName,
		CourseCode: r.CourseCode,
		Level:      r.Level,
		Day:        r.Day,
		Time:       r.Time,
	}
}

// UpdateCourseRequest changes course fields; omitted fields stay as they are
type UpdateCourseRequest struct {
	CourseName *string `json:"courseName" binding:"omitempty,trimmin=5,trimmax=100"`
	CourseCode *string `json:"courseCode" binding:"omitempty,trimmin=6,trimmax=10"`
	Level      *string `json:"level" binding:"omitempty,level"`
	Day        *string `json:"day" binding:"omitempty,weekday"`
	Time       *string `json:"time" binding:"omitempty,max=50"`
}

// Changes converts the request into repository changes
func (r UpdateCourseRequest) Changes() models.CourseChanges {
	return models.CourseChanges{
		CourseName: r.CourseName,
		CourseCode: r.CourseCode,
		Level:      r.Level,
		Day:        r.Day,
		Time:       r.Time,
	}
}
