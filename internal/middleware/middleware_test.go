package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/app/models/dto"
	"github.com/yigit/attendance/internal/app/services/mocks"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWT(secret string, ttl time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{SecretKey: secret, TokenExp: ttl, TokenIssuer: "test"})
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func gatedRouter(m *AuthMiddleware) *gin.Engine {
	r := gin.New()
	r.GET("/private", m.RequireLecturer(), func(c *gin.Context) {
		lecturer, ok := CurrentLecturer(c)
		id, idOK := CurrentLecturerID(c)
		if !ok || !idOK || lecturer.ID != id {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return r
}

func TestRequireLecturer(t *testing.T) {
	jwtService := newJWT("gate-secret", time.Hour)
	lecturer := &models.Lecturer{ID: uuid.New(), FirstName: "Grace"}
	token, err := jwtService.Issue(lecturer.ID)
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		store := &mocks.LecturerStore{}
		r := gatedRouter(NewAuthMiddleware(jwtService, store, "token", zerolog.Nop()))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, loginRequiredMessage, decodeError(t, w).Error.Message)
	})

	t.Run("cookie", func(t *testing.T) {
		store := &mocks.LecturerStore{}
		store.On("GetByID", mock.Anything, lecturer.ID).Return(lecturer, nil).Once()
		r := gatedRouter(NewAuthMiddleware(jwtService, store, "token", zerolog.Nop()))

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, lecturer.ID.String(), w.Body.String())
		store.AssertExpectations(t)
	})

	t.Run("bearer header fallback", func(t *testing.T) {
		store := &mocks.LecturerStore{}
		store.On("GetByID", mock.Anything, lecturer.ID).Return(lecturer, nil).Once()
		r := gatedRouter(NewAuthMiddleware(jwtService, store, "token", zerolog.Nop()))

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, err := newJWT("other-secret", time.Hour).Issue(lecturer.ID)
		require.NoError(t, err)
		store := &mocks.LecturerStore{}
		r := gatedRouter(NewAuthMiddleware(jwtService, store, "token", zerolog.Nop()))

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: other})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, invalidTokenMessage, resp.Error.Message)
		assert.Equal(t, dto.ErrorCodeInvalidToken, resp.Error.Code)
		store.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := newJWT("gate-secret", -time.Minute).Issue(lecturer.ID)
		require.NoError(t, err)
		r := gatedRouter(NewAuthMiddleware(jwtService, &mocks.LecturerStore{}, "token", zerolog.Nop()))

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: expired})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeExpiredToken, decodeError(t, w).Error.Code)
	})

	t.Run("deleted lecturer", func(t *testing.T) {
		store := &mocks.LecturerStore{}
		store.On("GetByID", mock.Anything, lecturer.ID).
			Return(nil, apperrors.NewResourceNotFoundError("Lecturer not found")).Once()
		r := gatedRouter(NewAuthMiddleware(jwtService, store, "token", zerolog.Nop()))

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, invalidTokenMessage, decodeError(t, w).Error.Message)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &mocks.LecturerStore{}
		store.On("GetByID", mock.Anything, lecturer.ID).Return(nil, errors.New("pool closed")).Once()
		r := gatedRouter(NewAuthMiddleware(jwtService, store, "token", zerolog.Nop()))

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{"not found", apperrors.NewResourceNotFoundError("Course not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found"},
		{"conflict", apperrors.NewConflictError("Lecturer with this email already exists"), http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "Lecturer with this email already exists"},
		{"bad request", apperrors.NewBadRequestError("Passwords do not match"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Passwords do not match"},
		{"invalid otp", apperrors.NewCustomError(apperrors.ErrInvalidOTP, "Invalid or expired OTP"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid or expired OTP"},
		{"credentials", apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "invalid email or password"), http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "invalid email or password"},
		{"unauthorized", apperrors.NewUnauthorizedError("Not authorized to update this user"), http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Not authorized to update this user"},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
		{"wrapped not found", fmt.Errorf("lookup: %w", apperrors.ErrResourceNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
		{"internal hides cause", apperrors.NewInternalError("Email could not be sent", errors.New("dial tcp: refused")), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) { HandleAPIError(c, tt.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		_, err := uuid.Parse(w.Header().Get(requestIDHeader))
		assert.NoError(t, err)
		assert.Equal(t, w.Header().Get(requestIDHeader), w.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Body.String())
	})

	t.Run("oversized is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestIDHeader, strings.Repeat("x", requestIDMaxLen+1))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotEqual(t, strings.Repeat("x", requestIDMaxLen+1), w.Body.String())
	})
}

func TestCORSAllowsCredentials(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRegisterValidators(t *testing.T) {
	require.NoError(t, RegisterValidators())

	type payload struct {
		Level string `json:"level" binding:"required,level"`
	}

	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"level":"600"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "level", decodeError(t, w).Error.Field)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"level":"300"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
}
