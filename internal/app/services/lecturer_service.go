package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	appauth "github.com/yigit/attendance/internal/app/auth"
	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/auth"
)

// LecturerService manages lecturer profiles
type LecturerService struct {
	lecturers LecturerStore
	authz     *appauth.AuthorizationService
	hasher    *auth.PasswordHasher
	logger    zerolog.Logger
}

// NewLecturerService creates a new LecturerService
func NewLecturerService(
	lecturers LecturerStore,
	authz *appauth.AuthorizationService,
	hasher *auth.PasswordHasher,
	logger zerolog.Logger,
) *LecturerService {
	return &LecturerService{
		lecturers: lecturers,
		authz:     authz,
		hasher:    hasher,
		logger:    logger,
	}
}

// GetAll returns every lecturer
func (s *LecturerService) GetAll(ctx context.Context) ([]*models.Lecturer, error) {
	return s.lecturers.List(ctx)
}

// GetByID returns a lecturer by ID
func (s *LecturerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Lecturer, error) {
	return s.lecturers.GetByID(ctx, id)
}

// GetByEmail returns a lecturer by email address
func (s *LecturerService) GetByEmail(ctx context.Context, emailAddr string) (*models.Lecturer, error) {
	return s.lecturers.GetByEmail(ctx, normalizeEmail(emailAddr))
}

// UpdateProfile changes the principal's own name or email
func (s *LecturerService) UpdateProfile(ctx context.Context, principalID, id uuid.UUID, changes models.LecturerChanges) (*models.Lecturer, error) {
	if err := s.authz.ValidateProfileUpdate(principalID, id); err != nil {
		return nil, err
	}

	if changes.FirstName != nil {
		v := strings.TrimSpace(*changes.FirstName)
		changes.FirstName = &v
	}
	if changes.LastName != nil {
		v := strings.TrimSpace(*changes.LastName)
		changes.LastName = &v
	}
	if changes.Email != nil {
		v := normalizeEmail(*changes.Email)
		changes.Email = &v
	}

	// Nothing to write; still answer 404 for a vanished account
	if changes.Empty() {
		return s.lecturers.GetByID(ctx, id)
	}

	lecturer, err := s.lecturers.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("lecturerID", id.String()).Msg("Lecturer profile updated")
	return lecturer, nil
}

// UpdatePassword replaces the principal's password after checking the old one
func (s *LecturerService) UpdatePassword(ctx context.Context, principalID uuid.UUID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewBadRequestError("Enter a new password")
	}

	lecturer, err := s.lecturers.GetByIDWithPassword(ctx, principalID)
	if err != nil {
		return err
	}

	if !s.hasher.Check(lecturer.PasswordHash, oldPassword) {
		return apperrors.NewUnauthorizedError("Incorrect old password")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.NewInternalError("Failed to update password", err)
	}

	if err := s.lecturers.UpdatePassword(ctx, principalID, hash); err != nil {
		return err
	}

	s.logger.Info().Str("lecturerID", principalID.String()).Msg("Lecturer password updated")
	return nil
}

// Delete removes the principal's own account. Its courses go with it.
func (s *LecturerService) Delete(ctx context.Context, principalID, id uuid.UUID) error {
	if err := s.authz.ValidateAccountDeletion(principalID, id); err != nil {
		return err
	}

	if err := s.lecturers.Delete(ctx, id); err != nil {
		if !errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Error().Err(err).Str("lecturerID", id.String()).Msg("Failed to delete lecturer")
		}
		return err
	}

	s.logger.Info().Str("lecturerID", id.String()).Msg("Lecturer deleted")
	return nil
}
