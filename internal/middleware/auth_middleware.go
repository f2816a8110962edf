package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/app/models/dto"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/auth"
)

// Context keys set by RequireLecturer
const (
	ContextKeyLecturer   = "lecturer"
	ContextKeyLecturerID = "lecturerID"
)

const (
	loginRequiredMessage = "Please login to access this resource"
	invalidTokenMessage  = "invalid token"
)

// LecturerLookup resolves the principal named by a token
type LecturerLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lecturer, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	lecturers  LecturerLookup
	cookieName string
	logger     zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, lecturers LecturerLookup, cookieName string, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		lecturers:  lecturers,
		cookieName: cookieName,
		logger:     logger,
	}
}

// tokenFromRequest reads the session cookie, then the Authorization header
func (m *AuthMiddleware) tokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(m.cookieName); err == nil && token != "" {
		return token
	}
	if header := c.GetHeader("Authorization"); header != "" {
		if token, err := auth.ExtractBearerToken(header); err == nil {
			return token
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// RequireLecturer rejects requests without a valid token for an existing lecturer
func (m *AuthMiddleware) RequireLecturer() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.tokenFromRequest(c)
		if token == "" {
			abortUnauthorized(c, dto.ErrorCodeTokenNotFound, loginRequiredMessage)
			return
		}

		lecturerID, err := m.jwtService.Verify(token)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrorCodeExpiredToken
			}
			abortUnauthorized(c, code, invalidTokenMessage)
			return
		}

		lecturer, err := m.lecturers.GetByID(c.Request.Context(), lecturerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				// Token outlived its account
				abortUnauthorized(c, dto.ErrorCodeInvalidToken, invalidTokenMessage)
				return
			}
			m.logger.Error().Err(err).Str("lecturerID", lecturerID.String()).Msg("Failed to resolve token principal")
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
			return
		}

		c.Set(ContextKeyLecturer, lecturer)
		c.Set(ContextKeyLecturerID, lecturer.ID)

		c.Next()
	}
}

// CurrentLecturer returns the lecturer stored by RequireLecturer
func CurrentLecturer(c *gin.Context) (*models.Lecturer, bool) {
	v, ok := c.Get(ContextKeyLecturer)
	if !ok {
		return nil, false
	}
	lecturer, ok := v.(*models.Lecturer)
	return lecturer, ok && lecturer != nil
}

// CurrentLecturerID returns the id of the lecturer stored by RequireLecturer
func CurrentLecturerID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextKeyLecturerID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
