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

var studentColumns = []string{
	"id", "first_name", "last_name", "email", "matric_number", "level", "gender", "images",
	"created_at", "updated_at",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: newBuilder(),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID,
		&s.FirstName,
		&s.LastName,
		&s.Email,
		&s.MatricNumber,
		&s.Level,
		&s.Gender,
		&s.Images,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if s.Images == nil {
		s.Images = []string{}
	}
	return &s, nil
}

// Create inserts a student. Duplicate email or matriculation number is a conflict.
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Images == nil {
		s.Images = []string{}
	}
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now

	sql, args, err := r.sb.Insert("students").
		Columns("id", "first_name", "last_name", "email", "matric_number", "level", "gender", "images", "created_at", "updated_at").
		Values(s.ID, s.FirstName, s.LastName, s.Email, s.MatricNumber, s.Level, s.Gender, s.Images, s.CreatedAt, s.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, constraintStudentEmail):
			return apperrors.NewConflictError("Student with this email already exists")
		case dberrors.IsDuplicateConstraintError(err, constraintStudentMatric):
			return apperrors.NewConflictError("Student with this matric number already exists")
		}
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByMatricNumber retrieves a student by matriculation number
func (r *StudentRepository) GetByMatricNumber(ctx context.Context, matricNumber string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"matric_number": matricNumber}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("Student not found")
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return s, nil
}

// ExistsByEmail reports whether a student already uses email
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM students WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}
	return exists, nil
}

// List returns all students ordered by matriculation number
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).From("students").OrderBy("matric_number").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}
	return students, nil
}
