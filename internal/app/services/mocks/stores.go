// Package mocks holds testify mocks of the service dependencies.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/yigit/attendance/internal/app/models"
)

func lecturerResult(args mock.Arguments) (*models.Lecturer, error) {
	l, _ := args.Get(0).(*models.Lecturer)
	return l, args.Error(1)
}

func courseResult(args mock.Arguments) (*models.Course, error) {
	c, _ := args.Get(0).(*models.Course)
	return c, args.Error(1)
}

// LecturerStore mocks services.LecturerStore
type LecturerStore struct {
	mock.Mock
}

func (m *LecturerStore) Create(ctx context.Context, l *models.Lecturer) error {
	args := m.Called(ctx, l)
	if args.Error(0) == nil && l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *LecturerStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Lecturer, error) {
	return lecturerResult(m.Called(ctx, id))
}

func (m *LecturerStore) GetByIDWithPassword(ctx context.Context, id uuid.UUID) (*models.Lecturer, error) {
	return lecturerResult(m.Called(ctx, id))
}

func (m *LecturerStore) GetByEmail(ctx context.Context, email string) (*models.Lecturer, error) {
	return lecturerResult(m.Called(ctx, email))
}

func (m *LecturerStore) GetByEmailWithPassword(ctx context.Context, email string) (*models.Lecturer, error) {
	return lecturerResult(m.Called(ctx, email))
}

func (m *LecturerStore) List(ctx context.Context) ([]*models.Lecturer, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*models.Lecturer)
	return list, args.Error(1)
}

func (m *LecturerStore) Update(ctx context.Context, id uuid.UUID, changes models.LecturerChanges) (*models.Lecturer, error) {
	return lecturerResult(m.Called(ctx, id, changes))
}

func (m *LecturerStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *LecturerStore) SetOTP(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error {
	return m.Called(ctx, id, otp, expiresAt).Error(0)
}

func (m *LecturerStore) ClearOTP(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *LecturerStore) ConsumeOTP(ctx context.Context, otp, passwordHash string, now time.Time) (*models.Lecturer, error) {
	return lecturerResult(m.Called(ctx, otp, passwordHash, now))
}

func (m *LecturerStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// StudentStore mocks services.StudentStore
type StudentStore struct {
	mock.Mock
}

func (m *StudentStore) Create(ctx context.Context, s *models.Student) error {
	args := m.Called(ctx, s)
	if args.Error(0) == nil && s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *StudentStore) GetByMatricNumber(ctx context.Context, matricNumber string) (*models.Student, error) {
	args := m.Called(ctx, matricNumber)
	s, _ := args.Get(0).(*models.Student)
	return s, args.Error(1)
}

func (m *StudentStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *StudentStore) List(ctx context.Context) ([]*models.Student, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*models.Student)
	return list, args.Error(1)
}

// CourseStore mocks services.CourseStore
type CourseStore struct {
	mock.Mock
}

func (m *CourseStore) Create(ctx context.Context, c *models.Course) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil && c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *CourseStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return courseResult(m.Called(ctx, id))
}

func (m *CourseStore) List(ctx context.Context) ([]*models.Course, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*models.Course)
	return list, args.Error(1)
}

func (m *CourseStore) ListByLecturer(ctx context.Context, lecturerID uuid.UUID) ([]*models.Course, error) {
	args := m.Called(ctx, lecturerID)
	list, _ := args.Get(0).([]*models.Course)
	return list, args.Error(1)
}

func (m *CourseStore) ListByLevel(ctx context.Context, level string) ([]*models.Course, error) {
	args := m.Called(ctx, level)
	list, _ := args.Get(0).([]*models.Course)
	return list, args.Error(1)
}

func (m *CourseStore) UpdateOwned(ctx context.Context, id, lecturerID uuid.UUID, changes models.CourseChanges) (*models.Course, error) {
	return courseResult(m.Called(ctx, id, lecturerID, changes))
}

func (m *CourseStore) DeleteOwned(ctx context.Context, id, lecturerID uuid.UUID) error {
	return m.Called(ctx, id, lecturerID).Error(0)
}
