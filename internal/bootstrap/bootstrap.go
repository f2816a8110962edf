package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/attendance/internal/app/auth"
	appControllers "github.com/yigit/attendance/internal/app/controllers"
	appMigrations "github.com/yigit/attendance/internal/app/migrations"
	appRepos "github.com/yigit/attendance/internal/app/repositories"
	appRoutes "github.com/yigit/attendance/internal/app/routes"
	appServices "github.com/yigit/attendance/internal/app/services"
	"github.com/yigit/attendance/internal/config"
	"github.com/yigit/attendance/internal/db"
	appMiddleware "github.com/yigit/attendance/internal/middleware"
	pkgAuth "github.com/yigit/attendance/internal/pkg/auth"
	"github.com/yigit/attendance/internal/pkg/email"
	"github.com/yigit/attendance/internal/pkg/logger"
	"github.com/yigit/attendance/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService     *appServices.AuthService
	LecturerService *appServices.LecturerService
	StudentService  *appServices.StudentService
	CourseService   *appServices.CourseService

	AuthController     *appControllers.AuthController
	LecturerController *appControllers.LecturerController
	StudentController  *appControllers.StudentController
	CourseController   *appControllers.CourseController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	Dispatcher     *email.Dispatcher
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env and the configuration, then initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Msg("Failed to load .env file")
	}

	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.FromSettings(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds demo data when enabled.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, db.PoolConfig{
		ConnString:      cfg.GetPostgresConnectionString(),
		MaxConns:        cfg.Database.MaxOpenConns,
		MinConns:        cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrateCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err := appMigrations.NewMigrator(database.Pool, lgr).Up(migrateCtx, appMigrations.Files()); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Seed.Enabled {
		opts := seed.Options{
			LecturerEmail:    cfg.Seed.LecturerEmail,
			LecturerPassword: cfg.Seed.LecturerPassword,
		}
		if err := seed.CreateDefaultData(ctx, database, pkgAuth.NewPasswordHasher(cfg.Auth.BcryptCost), opts, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    cfg.JWT.ExpiresIn,
		TokenIssuer: cfg.JWT.Issuer,
	})
	hasher := pkgAuth.NewPasswordHasher(cfg.Auth.BcryptCost)
	deps.AuthzService = appAuth.NewAuthorizationService()

	notifier := email.NewSMTPNotifier(email.SMTPConfig{
		Host:      cfg.Email.Host,
		Port:      cfg.Email.Port,
		Username:  cfg.Email.Username,
		Password:  cfg.Email.Password,
		FromName:  cfg.Email.FromName,
		FromEmail: cfg.Email.FromEmail,
		UseTLS:    cfg.Email.UseTLS,
	}, lgr)
	deps.Dispatcher = email.NewDispatcher(cfg.Email.SendTimeout, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.LecturerRepository,
		deps.Repos.StudentRepository,
		deps.JWTService,
		hasher,
		pkgAuth.NewOTPGenerator(cfg.OTP.Length, cfg.OTP.TTL),
		notifier,
		deps.Dispatcher,
		lgr,
	)
	deps.LecturerService = appServices.NewLecturerService(deps.Repos.LecturerRepository, deps.AuthzService, hasher, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.LecturerRepository, cfg.Cookie.Name, lgr)

	cookie := appControllers.SessionCookie{
		Name:   cfg.Cookie.Name,
		MaxAge: cfg.Cookie.ExpiresIn,
		Secure: cfg.Cookie.Secure,
		Domain: cfg.Cookie.Domain,
	}
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, cookie, lgr)
	deps.LecturerController = appControllers.NewLecturerController(deps.LecturerService, cookie, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.AccessLog(lgr),
		appMiddleware.Metrics(),
		appMiddleware.CORS(cfg.CORS.AllowedOrigins),
	)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.LecturerController,
		deps.StudentController,
		deps.CourseController,
		deps.AuthMiddleware,
	)

	return router
}
