package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/dberrors"
)

// Message returned when a course is missing or owned by someone else
const (
	CourseNotOwnedUpdateMessage = "Course not found or you're not authorized to edit this course"
	CourseNotOwnedDeleteMessage = "Course not found or you're not authorized to delete this course"
)

var courseSelectColumns = []string{
	"c.id", "c.course_name", "c.course_code", "c.level", "c.day", "c.time", "c.lecturer_id",
	"l.first_name", "c.created_at", "c.updated_at",
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db DBTX) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: newBuilder(),
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID,
		&c.CourseName,
		&c.CourseCode,
		&c.Level,
		&c.Day,
		&c.Time,
		&c.LecturerID,
		&c.LecturerFirstName,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func mapCourseWriteError(err error, action string) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, constraintCourseCode):
		return apperrors.NewConflictError("Course with this course code already exists")
	case dberrors.IsForeignKeyError(err):
		return apperrors.NewResourceNotFoundError("Lecturer not found")
	}
	return fmt.Errorf("error %s course: %w", action, err)
}

// selectCourses joins the owning lecturer so reads carry their first name
func (r *CourseRepository) selectCourses() squirrel.SelectBuilder {
	return r.sb.Select(courseSelectColumns...).
		From("courses c").
		Join("lecturers l ON l.id = c.lecturer_id")
}

// Create inserts a course owned by c.LecturerID
func (r *CourseRepository) Create(ctx context.Context, c *models.Course) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	sql, args, err := r.sb.Insert("courses").
		Columns("id", "course_name", "course_code", "level", "day", "time", "lecturer_id", "created_at", "updated_at").
		Values(c.ID, c.CourseName, c.CourseCode, c.Level, c.Day, c.Time, c.LecturerID, c.CreatedAt, c.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return mapCourseWriteError(err, "creating")
	}
	return nil
}

// GetByID retrieves one course
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	sql, args, err := r.selectCourses().Where(squirrel.Eq{"c.id": id.String()}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	c, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("Course not found")
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return c, nil
}

// List returns all courses
func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	return r.list(ctx, nil)
}

// ListByLecturer returns the courses owned by lecturerID
func (r *CourseRepository) ListByLecturer(ctx context.Context, lecturerID uuid.UUID) ([]*models.Course, error) {
	return r.list(ctx, squirrel.Eq{"c.lecturer_id": lecturerID.String()})
}

// ListByLevel returns the courses for an academic level
func (r *CourseRepository) ListByLevel(ctx context.Context, level string) ([]*models.Course, error) {
	return r.list(ctx, squirrel.Eq{"c.level": level})
}

func (r *CourseRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*models.Course, error) {
	q := r.selectCourses().OrderBy("c.level", "c.course_code")
	if where != nil {
		q = q.Where(where)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}
	return courses, nil
}

// UpdateOwned applies changes only when lecturerID owns the course. A missing course
// and a foreign one are reported the same way.
func (r *CourseRepository) UpdateOwned(ctx context.Context, id, lecturerID uuid.UUID, changes models.CourseChanges) (*models.Course, error) {
	q := r.sb.Update("courses").Set("updated_at", time.Now().UTC())
	if changes.CourseName != nil {
		q = q.Set("course_name", *changes.CourseName)
	}
	if changes.CourseCode != nil {
		q = q.Set("course_code", *changes.CourseCode)
	}
	if changes.Level != nil {
		q = q.Set("level", *changes.Level)
	}
	if changes.Day != nil {
		q = q.Set("day", *changes.Day)
	}
	if changes.Time != nil {
		q = q.Set("time", *changes.Time)
	}

	sql, args, err := q.Where(squirrel.Eq{"id": id.String(), "lecturer_id": lecturerID.String()}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, mapCourseWriteError(err, "updating")
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewResourceNotFoundError(CourseNotOwnedUpdateMessage)
	}

	return r.GetByID(ctx, id)
}

// DeleteOwned removes the course only when lecturerID owns it
func (r *CourseRepository) DeleteOwned(ctx context.Context, id, lecturerID uuid.UUID) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id.String(), "lecturer_id": lecturerID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(CourseNotOwnedDeleteMessage)
	}
	return nil
}
