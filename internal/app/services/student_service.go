package services

import (
	"context"
	"strings"

	"github.com/yigit/attendance/internal/app/models"
)

// StudentService reads the student directory
type StudentService struct {
	students StudentStore
}

// NewStudentService creates a new StudentService
func NewStudentService(students StudentStore) *StudentService {
	return &StudentService{students: students}
}

func (s *StudentService) GetAll(ctx context.Context) ([]*models.Student, error) {
	return s.students.List(ctx)
}

func (s *StudentService) GetByMatricNumber(ctx context.Context, matricNumber string) (*models.Student, error) {
	return s.students.GetByMatricNumber(ctx, strings.TrimSpace(matricNumber))
}
