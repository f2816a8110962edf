package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/validation"
)

// CourseService manages courses. Writes are limited to the owning lecturer.
type CourseService struct {
	courses CourseStore
	logger  zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courses CourseStore, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courses: courses,
		logger:  logger,
	}
}

// Create stores a course owned by the principal
func (s *CourseService) Create(ctx context.Context, principalID uuid.UUID, course *models.Course) (*models.Course, error) {
	course.CourseName = strings.TrimSpace(course.CourseName)
	course.CourseCode = strings.TrimSpace(course.CourseCode)
	course.LecturerID = principalID

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("courseID", course.ID.String()).
		Str("courseCode", course.CourseCode).
		Str("lecturerID", principalID.String()).
		Msg("Course created")

	// Re-read to pick up the lecturer name
	return s.courses.GetByID(ctx, course.ID)
}

func (s *CourseService) GetAll(ctx context.Context) ([]*models.Course, error) {
	return s.courses.List(ctx)
}

func (s *CourseService) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// GetByLecturer returns the courses of a lecturer; none is a not found error
func (s *CourseService) GetByLecturer(ctx context.Context, lecturerID uuid.UUID) ([]*models.Course, error) {
	courses, err := s.courses.ListByLecturer(ctx, lecturerID)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, apperrors.NewResourceNotFoundError("No courses by this lecturer")
	}
	return courses, nil
}

// GetByLevel returns the courses of a level; none is a not found error
func (s *CourseService) GetByLevel(ctx context.Context, level string) ([]*models.Course, error) {
	if !validation.IsValidLevel(level) {
		return nil, apperrors.NewBadRequestError("Level must be one of " + strings.Join(validation.Levels, ", "))
	}

	courses, err := s.courses.ListByLevel(ctx, level)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, apperrors.NewResourceNotFoundError("No courses for this level")
	}
	return courses, nil
}

// Update changes a course owned by the principal.
// A course owned by someone else is reported as not found.
func (s *CourseService) Update(ctx context.Context, principalID, id uuid.UUID, changes models.CourseChanges) (*models.Course, error) {
	if changes.Empty() {
		return nil, apperrors.NewBadRequestError("No fields to update")
	}
	if changes.CourseName != nil {
		v := strings.TrimSpace(*changes.CourseName)
		changes.CourseName = &v
	}
	if changes.CourseCode != nil {
		v := strings.TrimSpace(*changes.CourseCode)
		changes.CourseCode = &v
	}

	course, err := s.courses.UpdateOwned(ctx, id, principalID, changes)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("courseID", id.String()).Str("lecturerID", principalID.String()).Msg("Course updated")
	return course, nil
}

// Delete removes a course owned by the principal
func (s *CourseService) Delete(ctx context.Context, principalID, id uuid.UUID) error {
	if err := s.courses.DeleteOwned(ctx, id, principalID); err != nil {
		return err
	}

	s.logger.Info().Str("courseID", id.String()).Str("lecturerID", principalID.String()).Msg("Course deleted")
	return nil
}
