package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/app/models/dto"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/auth"
	"github.com/yigit/attendance/internal/pkg/email"
	"github.com/yigit/attendance/internal/pkg/metrics"
	"github.com/yigit/attendance/internal/pkg/validation"
)

// Auth event labels
const (
	EventSignUp         = "signup"
	EventLogin          = "login"
	EventForgotPassword = "forgot_password"
	EventResetPassword  = "reset_password"
)

const invalidCredentialsMessage = "invalid email or password"

// AuthResult is returned by every flow that logs a lecturer in
type AuthResult struct {
	Token    string
	Lecturer *models.Lecturer
}

// AuthService handles registration, login and password recovery
type AuthService struct {
	lecturers  LecturerStore
	students   StudentStore
	jwtService *auth.JWTService
	hasher     *auth.PasswordHasher
	otps       *auth.OTPGenerator
	notifier   email.Notifier
	dispatcher *email.Dispatcher
	now        func() time.Time
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	lecturers LecturerStore,
	students StudentStore,
	jwtService *auth.JWTService,
	hasher *auth.PasswordHasher,
	otps *auth.OTPGenerator,
	notifier email.Notifier,
	dispatcher *email.Dispatcher,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		lecturers:  lecturers,
		students:   students,
		jwtService: jwtService,
		hasher:     hasher,
		otps:       otps,
		notifier:   notifier,
		dispatcher: dispatcher,
		now:        time.Now,
		logger:     logger,
	}
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// RegisterStudent stores a new student and notifies them in the background
func (s *AuthService) RegisterStudent(ctx context.Context, req dto.RegisterStudentRequest) (*models.Student, error) {
	student := req.ToModel()
	student.FirstName = strings.TrimSpace(student.FirstName)
	student.LastName = strings.TrimSpace(student.LastName)
	student.Email = normalizeEmail(student.Email)

	exists, err := s.students.ExistsByEmail(ctx, student.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking student email: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("Student with this email already exists")
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("studentID", student.ID.String()).
		Str("matricNumber", student.MatricNumber).
		Msg("Student registered")

	to, name := student.Email, student.FirstName
	s.dispatcher.Go("student_registered", func(ctx context.Context) error {
		return s.notifier.SendStudentRegistered(ctx, to, name)
	})

	return student, nil
}

// LecturerSignUp creates a lecturer account and logs it in
func (s *AuthService) LecturerSignUp(ctx context.Context, req dto.LecturerSignUpRequest) (result *AuthResult, err error) {
	defer func() { metrics.ObserveAuth(EventSignUp, err) }()

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create account", err)
	}

	lecturer := &models.Lecturer{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
	}
	if err := s.lecturers.Create(ctx, lecturer); err != nil {
		return nil, err
	}

	token, err := s.jwtService.Issue(lecturer.ID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create session", err)
	}

	s.logger.Info().Str("lecturerID", lecturer.ID.String()).Msg("Lecturer signed up")

	to, name := lecturer.Email, lecturer.FirstName
	s.dispatcher.Go("lecturer_welcome", func(ctx context.Context) error {
		return s.notifier.SendLecturerWelcome(ctx, to, name)
	})

	sanitizeLecturer(lecturer)
	return &AuthResult{Token: token, Lecturer: lecturer}, nil
}

// LecturerLogIn checks credentials and issues a token.
// Unknown email and wrong password return the same error.
func (s *AuthService) LecturerLogIn(ctx context.Context, emailAddr, password string) (result *AuthResult, err error) {
	defer func() { metrics.ObserveAuth(EventLogin, err) }()

	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return nil, apperrors.NewBadRequestError("Please enter your email and password")
	}

	lecturer, err := s.lecturers.GetByEmailWithPassword(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, invalidCredentialsMessage)
		}
		return nil, err
	}

	if !s.hasher.Check(lecturer.PasswordHash, password) {
		s.logger.Warn().Str("lecturerID", lecturer.ID.String()).Msg("Login failed: wrong password")
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, invalidCredentialsMessage)
	}

	token, err := s.jwtService.Issue(lecturer.ID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create session", err)
	}

	to, name, at := lecturer.Email, lecturer.FirstName, s.now()
	s.dispatcher.Go("login_alert", func(ctx context.Context) error {
		return s.notifier.SendLoginAlert(ctx, to, name, at)
	})

	sanitizeLecturer(lecturer)
	return &AuthResult{Token: token, Lecturer: lecturer}, nil
}

// ForgotPassword stores a fresh OTP for the lecturer and mails it.
// The OTP is removed again when the mail cannot be sent.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) (err error) {
	defer func() { metrics.ObserveAuth(EventForgotPassword, err) }()

	lecturer, err := s.lecturers.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		return err
	}

	otp, expiresAt := s.otps.Generate()
	if err := s.lecturers.SetOTP(ctx, lecturer.ID, otp, expiresAt); err != nil {
		return err
	}

	sendErr := s.notifier.SendPasswordResetOTP(ctx, lecturer.Email, lecturer.FirstName, otp, s.otps.TTL())
	metrics.ObserveNotification("password_reset_otp", sendErr)
	if sendErr != nil {
		if clearErr := s.lecturers.ClearOTP(ctx, lecturer.ID); clearErr != nil {
			s.logger.Error().Err(clearErr).Str("lecturerID", lecturer.ID.String()).Msg("Failed to clear OTP after send failure")
		}
		s.logger.Error().Err(sendErr).Str("lecturerID", lecturer.ID.String()).Msg("Password reset email failed")
		return apperrors.NewInternalError("Email could not be sent", sendErr)
	}

	s.logger.Info().Str("lecturerID", lecturer.ID.String()).Msg("Password reset OTP sent")
	return nil
}

// ResetPassword replaces the password of the lecturer holding a valid OTP and logs it in.
// The OTP is consumed in the same statement so it cannot be used twice.
func (s *AuthService) ResetPassword(ctx context.Context, password, confirmPassword, otp string) (result *AuthResult, err error) {
	defer func() { metrics.ObserveAuth(EventResetPassword, err) }()

	if password == "" || confirmPassword == "" {
		return nil, apperrors.NewBadRequestError("Please enter and confirm your new password")
	}
	if password != confirmPassword {
		return nil, apperrors.NewBadRequestError("Passwords do not match")
	}
	if len(password) < validation.PasswordMinLength {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Password must be at least %d characters", validation.PasswordMinLength))
	}
	otp = strings.TrimSpace(otp)
	if otp == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidOTP, "Invalid or expired OTP")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to reset password", err)
	}

	lecturer, err := s.lecturers.ConsumeOTP(ctx, otp, hash, s.now())
	if err != nil {
		return nil, err
	}

	token, err := s.jwtService.Issue(lecturer.ID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create session", err)
	}

	s.logger.Info().Str("lecturerID", lecturer.ID.String()).Msg("Password reset")

	sanitizeLecturer(lecturer)
	return &AuthResult{Token: token, Lecturer: lecturer}, nil
}

// sanitizeLecturer drops secrets before a lecturer leaves the service layer
func sanitizeLecturer(l *models.Lecturer) {
	l.PasswordHash = ""
	l.OTP = nil
	l.OTPExpiresAt = nil
}
