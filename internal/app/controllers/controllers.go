// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/attendance/internal/app/models/dto"
	"github.com/yigit/attendance/internal/middleware"
	"github.com/yigit/attendance/internal/pkg/apperrors"
)

// SessionCookie describes the httpOnly cookie carrying the session token
type SessionCookie struct {
	Name   string
	MaxAge time.Duration
	Secure bool
	Domain string
}

// Set writes the token cookie
func (s SessionCookie) Set(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(s.Name, token, int(s.MaxAge.Seconds()), "/", s.Domain, s.Secure, true)
}

// Clear expires the token cookie
func (s SessionCookie) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(s.Name, "", -1, "/", s.Domain, s.Secure, true)
}

// uuidParam parses a path parameter and answers 400 when it is not a UUID
func uuidParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return id, true
}

// principal returns the lecturer id set by the auth middleware
func principal(ctx *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CurrentLecturerID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Please login to access this resource"))
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
