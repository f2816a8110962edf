package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/attendance/internal/app/models"
)

// LecturerStore is the lecturer persistence used by the services
type LecturerStore interface {
	Create(ctx context.Context, l *models.Lecturer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lecturer, error)
	GetByIDWithPassword(ctx context.Context, id uuid.UUID) (*models.Lecturer, error)
	GetByEmail(ctx context.Context, email string) (*models.Lecturer, error)
	GetByEmailWithPassword(ctx context.Context, email string) (*models.Lecturer, error)
	List(ctx context.Context) ([]*models.Lecturer, error)
	Update(ctx context.Context, id uuid.UUID, changes models.LecturerChanges) (*models.Lecturer, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetOTP(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error
	ClearOTP(ctx context.Context, id uuid.UUID) error
	ConsumeOTP(ctx context.Context, otp, passwordHash string, now time.Time) (*models.Lecturer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StudentStore is the student persistence used by the services
type StudentStore interface {
	Create(ctx context.Context, s *models.Student) error
	GetByMatricNumber(ctx context.Context, matricNumber string) (*models.Student, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*models.Student, error)
}

// CourseStore is the course persistence used by the services
type CourseStore interface {
	Create(ctx context.Context, c *models.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	ListByLecturer(ctx context.Context, lecturerID uuid.UUID) ([]*models.Course, error)
	ListByLevel(ctx context.Context, level string) ([]*models.Course, error)
	UpdateOwned(ctx context.Context, id, lecturerID uuid.UUID, changes models.CourseChanges) (*models.Course, error)
	DeleteOwned(ctx context.Context, id, lecturerID uuid.UUID) error
}
