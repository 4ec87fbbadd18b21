package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	appControllers "github.com/campusdesk/academics/internal/app/controllers"
	appMigrations "github.com/campusdesk/academics/internal/app/migrations"
	appModels "github.com/campusdesk/academics/internal/app/models"
	appRepos "github.com/campusdesk/academics/internal/app/repositories"
	appRoutes "github.com/campusdesk/academics/internal/app/routes"
	appServices "github.com/campusdesk/academics/internal/app/services"
	"github.com/campusdesk/academics/internal/config"
	"github.com/campusdesk/academics/internal/db"
	appMiddleware "github.com/campusdesk/academics/internal/middleware"
	pkgAuth "github.com/campusdesk/academics/internal/pkg/auth"
	"github.com/campusdesk/academics/internal/pkg/cache"
	"github.com/campusdesk/academics/internal/pkg/helpers"
	"github.com/campusdesk/academics/internal/pkg/logger"
	"github.com/campusdesk/academics/internal/pkg/validation"
	"github.com/campusdesk/academics/internal/seed"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	Hasher         *pkgAuth.PasswordHasher
	Redis          *redis.Client
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("dir", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// SetupRedis connects the course cache. An empty URL or an unreachable server leaves
// the cache disabled.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) *redis.Client {
	if cfg.Redis.URL == "" {
		lgr.Info().Msg("Redis URL not configured, course cache disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdb, err := cache.NewRedisClient(ctx, cfg.Redis.URL, lgr)
	if err != nil {
		lgr.Warn().Err(err).Msg("Redis unavailable, course cache disabled")
		return nil
	}
	return rdb
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, rdb *redis.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Redis: rdb}

	deps.Repos = appRepos.NewRepositories(database, appRepos.QueryLimits{
		DefaultLimit: cfg.Query.DefaultLimit,
		MaxLimit:     cfg.Query.MaxLimit,
	})

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.Hasher = pkgAuth.NewPasswordHasher(cfg.Auth.BcryptCost)

	courseCache := cache.NewJSONCache[appModels.Course](rdb, "course",
		helpers.ParseDuration(cfg.Redis.CacheTTL, 5*time.Minute), lgr)

	deps.Services = appServices.NewServices(deps.Repos, courseCache, deps.Hasher, deps.JWTService, cfg.Auth.DefaultPassword, lgr)

	if err := seed.CreateDefaultAdmin(context.Background(), deps.Repos.UserRepository, deps.Hasher,
		cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default admin, proceeding anyway...")
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.Controllers = appRoutes.Controllers{
		Auth:     appControllers.NewAuthController(deps.Services.AuthService, lgr),
		Course:   appControllers.NewCourseController(deps.Services.CourseService),
		Semester: appControllers.NewSemesterController(deps.Services.SemesterService),
		User:     appControllers.NewUserController(deps.Services.UserService),
		Profile:  appControllers.NewProfileController(deps.Services.UserService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	validation.Setup()

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.CORS(cfg.Server.AllowedOrigins),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
