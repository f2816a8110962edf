package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/attendance/internal/app/models/dto"
	"github.com/yigit/attendance/internal/app/services"
	"github.com/yigit/attendance/internal/middleware"
)

// LecturerController handles lecturer profile operations
type LecturerController struct {
	lecturerService *services.LecturerService
	cookie          SessionCookie
	logger          zerolog.Logger
}

// NewLecturerController creates a new LecturerController
func NewLecturerController(lecturerService *services.LecturerService, cookie SessionCookie, logger zerolog.Logger) *LecturerController {
	return &LecturerController{
		lecturerService: lecturerService,
		cookie:          cookie,
		logger:          logger,
	}
}

// GetAll lists lecturers
// @Summary List lecturers
// @Tags lecturers
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Lecturer}
// @Router /lecturer [get]
func (c *LecturerController) GetAll(ctx *gin.Context) {
	lecturers, err := c.lecturerService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lecturers, "Lecturers retrieved successfully"))
}

// GetByID returns a lecturer
// @Summary Get lecturer by ID
// @Tags lecturers
// @Produce json
// @Param id path string true "Lecturer ID"
// @Success 200 {object} dto.APIResponse{data=models.Lecturer}
// @Failure 404 {object} dto.ErrorResponse
// @Router /lecturer/id/{id} [get]
func (c *LecturerController) GetByID(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	lecturer, err := c.lecturerService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lecturer, "Lecturer retrieved successfully"))
}

// GetByEmail returns a lecturer
// @Summary Get lecturer by email
// @Tags lecturers
// @Produce json
// @Param email path string true "Lecturer email"
// @Success 200 {object} dto.APIResponse{data=models.Lecturer}
// @Failure 404 {object} dto.ErrorResponse
// @Router /lecturer/email/{email} [get]
func (c *LecturerController) GetByEmail(ctx *gin.Context) {
	lecturer, err := c.lecturerService.GetByEmail(ctx.Request.Context(), ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lecturer, "Lecturer retrieved successfully"))
}

// UpdateProfile changes the caller's own profile
// @Summary Update lecturer profile
// @Tags lecturers
// @Accept json
// @Produce json
// @Param id path string true "Lecturer ID"
// @Param request body dto.UpdateLecturerRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Lecturer}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Not the account owner"
// @Failure 404 {object} dto.ErrorResponse
// @Router /lecturer/id/{id} [put]
func (c *LecturerController) UpdateProfile(ctx *gin.Context) {
	principalID, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateLecturerRequest
	if !bindJSON(ctx, &req) {
		return
	}

	lecturer, err := c.lecturerService.UpdateProfile(ctx.Request.Context(), principalID, id, req.Changes())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lecturer, "Profile updated successfully"))
}

// UpdatePassword changes the caller's password
// @Summary Update password
// @Tags lecturers
// @Accept json
// @Produce json
// @Param request body dto.UpdatePasswordRequest true "Old and new password"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Incorrect old password"
// @Router /lecturer/password/update [put]
func (c *LecturerController) UpdatePassword(ctx *gin.Context) {
	principalID, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.UpdatePasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.lecturerService.UpdatePassword(ctx.Request.Context(), principalID, req.OldPassword, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Password updated successfully"))
}

// Delete removes the caller's own account and ends its session
// @Summary Delete lecturer
// @Tags lecturers
// @Produce json
// @Param id path string true "Lecturer ID"
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse "Not the account owner"
// @Failure 404 {object} dto.ErrorResponse
// @Router /lecturer/id/{id} [delete]
func (c *LecturerController) Delete(ctx *gin.Context) {
	principalID, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.lecturerService.Delete(ctx.Request.Context(), principalID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.cookie.Clear(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Lecturer deleted successfully"))
}
