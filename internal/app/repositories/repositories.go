package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Constraint names from migrations/sql/001_init.sql
const (
	constraintLecturerEmail = "lecturers_email_key"
	constraintStudentEmail  = "students_email_key"
	constraintStudentMatric = "students_matric_number_key"
	constraintCourseCode    = "courses_course_code_key"
)

func newBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

// Repositories holds all the repository instances
type Repositories struct {
	LecturerRepository *LecturerRepository
	StudentRepository  *StudentRepository
	CourseRepository   *CourseRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		LecturerRepository: NewLecturerRepository(db),
		StudentRepository:  NewStudentRepository(db),
		CourseRepository:   NewCourseRepository(db),
	}
}
