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

var (
	lecturerColumns         = []string{"id", "first_name", "last_name", "email", "created_at", "updated_at"}
	lecturerColumnsWithAuth = append(append([]string{}, lecturerColumns...), "password_hash", "otp", "otp_expires_at")
)

// LecturerRepository handles lecturer database operations
type LecturerRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewLecturerRepository creates a new LecturerRepository
func NewLecturerRepository(db DBTX) *LecturerRepository {
	return &LecturerRepository{
		db: db,
		sb: newBuilder(),
	}
}

func scanLecturer(row pgx.Row, withAuth bool) (*models.Lecturer, error) {
	var l models.Lecturer
	dest := []any{&l.ID, &l.FirstName, &l.LastName, &l.Email, &l.CreatedAt, &l.UpdatedAt}
	if withAuth {
		dest = append(dest, &l.PasswordHash, &l.OTP, &l.OTPExpiresAt)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &l, nil
}

func lecturerNotFound() error {
	return apperrors.NewResourceNotFoundError("Lecturer not found")
}

func mapLecturerWriteError(err error, action string) error {
	if dberrors.IsDuplicateConstraintError(err, constraintLecturerEmail) {
		return apperrors.NewConflictError("Lecturer with this email already exists")
	}
	return fmt.Errorf("error %s lecturer: %w", action, err)
}

// Create inserts a lecturer. ID and timestamps are filled in when unset.
func (r *LecturerRepository) Create(ctx context.Context, l *models.Lecturer) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	now := time.Now().UTC()
	l.CreatedAt, l.UpdatedAt = now, now

	sql, args, err := r.sb.Insert("lecturers").
		Columns("id", "first_name", "last_name", "email", "password_hash", "created_at", "updated_at").
		Values(l.ID, l.FirstName, l.LastName, l.Email, l.PasswordHash, l.CreatedAt, l.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create lecturer query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return mapLecturerWriteError(err, "creating")
	}
	return nil
}

func (r *LecturerRepository) getOne(ctx context.Context, where squirrel.Sqlizer, withAuth bool) (*models.Lecturer, error) {
	columns := lecturerColumns
	if withAuth {
		columns = lecturerColumnsWithAuth
	}

	sql, args, err := r.sb.Select(columns...).From("lecturers").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get lecturer query: %w", err)
	}

	l, err := scanLecturer(r.db.QueryRow(ctx, sql, args...), withAuth)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, lecturerNotFound()
		}
		return nil, fmt.Errorf("error retrieving lecturer: %w", err)
	}
	return l, nil
}

// GetByID retrieves a lecturer without credentials
func (r *LecturerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Lecturer, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id.String()}, false)
}

// GetByIDWithPassword retrieves a lecturer including password hash and OTP state
func (r *LecturerRepository) GetByIDWithPassword(ctx context.Context, id uuid.UUID) (*models.Lecturer, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id.String()}, true)
}

// GetByEmail retrieves a lecturer without credentials
func (r *LecturerRepository) GetByEmail(ctx context.Context, email string) (*models.Lecturer, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email}, false)
}

// GetByEmailWithPassword retrieves a lecturer including password hash and OTP state
func (r *LecturerRepository) GetByEmailWithPassword(ctx context.Context, email string) (*models.Lecturer, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email}, true)
}

// List returns all lecturers ordered by name
func (r *LecturerRepository) List(ctx context.Context) ([]*models.Lecturer, error) {
	sql, args, err := r.sb.Select(lecturerColumns...).From("lecturers").OrderBy("last_name", "first_name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list lecturers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing lecturers: %w", err)
	}
	defer rows.Close()

	lecturers := make([]*models.Lecturer, 0)
	for rows.Next() {
		l, err := scanLecturer(rows, false)
		if err != nil {
			return nil, fmt.Errorf("error scanning lecturer: %w", err)
		}
		lecturers = append(lecturers, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lecturers: %w", err)
	}
	return lecturers, nil
}

// Update applies the non-nil fields of changes and returns the stored record
func (r *LecturerRepository) Update(ctx context.Context, id uuid.UUID, changes models.LecturerChanges) (*models.Lecturer, error) {
	q := r.sb.Update("lecturers").Set("updated_at", time.Now().UTC())
	if changes.FirstName != nil {
		q = q.Set("first_name", *changes.FirstName)
	}
	if changes.LastName != nil {
		q = q.Set("last_name", *changes.LastName)
	}
	if changes.Email != nil {
		q = q.Set("email", *changes.Email)
	}

	sql, args, err := q.Where(squirrel.Eq{"id": id.String()}).Suffix("RETURNING " + joinColumns(lecturerColumns)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update lecturer query: %w", err)
	}

	l, err := scanLecturer(r.db.QueryRow(ctx, sql, args...), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, lecturerNotFound()
		}
		return nil, mapLecturerWriteError(err, "updating")
	}
	return l, nil
}

// UpdatePassword stores a new password hash
func (r *LecturerRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.execOne(ctx, r.sb.Update("lecturers").
		Set("password_hash", passwordHash).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id.String()}), "updating password of")
}

// SetOTP stores a reset code and its expiry in one statement
func (r *LecturerRepository) SetOTP(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error {
	return r.execOne(ctx, r.sb.Update("lecturers").
		Set("otp", otp).
		Set("otp_expires_at", expiresAt).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id.String()}), "setting otp of")
}

// ClearOTP removes any pending reset code in one statement
func (r *LecturerRepository) ClearOTP(ctx context.Context, id uuid.UUID) error {
	return r.execOne(ctx, r.sb.Update("lecturers").
		Set("otp", nil).
		Set("otp_expires_at", nil).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id.String()}), "clearing otp of")
}

// ConsumeOTP finds the lecturer holding otp with an expiry after now, stores passwordHash
// and clears the code, all in one statement. A used or expired code matches nothing.
func (r *LecturerRepository) ConsumeOTP(ctx context.Context, otp, passwordHash string, now time.Time) (*models.Lecturer, error) {
	// Left in "?" form: the outer builder numbers every placeholder.
	target := squirrel.Select("id").From("lecturers").
		Where(squirrel.Eq{"otp": otp}).
		Where(squirrel.Gt{"otp_expires_at": now}).
		OrderBy("otp_expires_at DESC").
		Limit(1).
		Suffix("FOR UPDATE")

	sql, args, err := r.sb.Update("lecturers").
		Set("password_hash", passwordHash).
		Set("otp", nil).
		Set("otp_expires_at", nil).
		Set("updated_at", now.UTC()).
		Where(squirrel.Expr("id = (?)", target)).
		Suffix("RETURNING " + joinColumns(lecturerColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build consume otp query: %w", err)
	}

	l, err := scanLecturer(r.db.QueryRow(ctx, sql, args...), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidOTP, "Invalid or expired OTP")
		}
		return nil, fmt.Errorf("error consuming otp: %w", err)
	}
	return l, nil
}

// Delete removes a lecturer; their courses go with them
func (r *LecturerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.execOne(ctx, r.sb.Delete("lecturers").Where(squirrel.Eq{"id": id.String()}), "deleting")
}

type execBuilder interface {
	ToSql() (string, []interface{}, error)
}

func (r *LecturerRepository) execOne(ctx context.Context, q execBuilder, action string) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query for %s lecturer: %w", action, err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error %s lecturer: %w", action, err)
	}
	if tag.RowsAffected() == 0 {
		return lecturerNotFound()
	}
	return nil
}
