package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yigit/attendance/internal/app/controllers"
	"github.com/yigit/attendance/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	lecturerController *controllers.LecturerController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// --- Public routes ---
	router.POST("/register", authController.RegisterStudent)

	lecturerPublic := router.Group("/lecturer")
	{
		lecturerPublic.POST("/signup", authController.SignUp)
		lecturerPublic.POST("/login", authController.LogIn)
		lecturerPublic.POST("/logout", authController.LogOut)
		lecturerPublic.POST("/forgotpassword", authController.ForgotPassword)
		lecturerPublic.PUT("/reset", authController.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.RequireLecturer())

	lecturers := authenticated.Group("/lecturer")
	{
		lecturers.GET("", lecturerController.GetAll)
		lecturers.GET("/id/:id", lecturerController.GetByID)
		lecturers.GET("/email/:email", lecturerController.GetByEmail)
		lecturers.PUT("/id/:id", lecturerController.UpdateProfile)
		lecturers.PUT("/password/update", lecturerController.UpdatePassword)
		lecturers.DELETE("/id/:id", lecturerController.Delete)
	}

	students := authenticated.Group("/student")
	{
		students.GET("", studentController.GetAll)
		students.GET("/:matricNumber", studentController.GetByMatricNumber)
	}

	courses := authenticated.Group("/courses")
	{
		courses.POST("/new", courseController.Create)
		courses.GET("/all", courseController.GetAll)
		courses.GET("/lecturer/:lecturerId", courseController.GetByLecturer)
		courses.GET("/level/:level", courseController.GetByLevel)
		courses.GET("/:id", courseController.GetByID)
		courses.PUT("/:id", courseController.Update)
		courses.DELETE("/:id", courseController.Delete)
	}
}
