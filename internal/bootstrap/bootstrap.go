package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/lukasw/clubsite/docs" // Import generated swagger docs
	"github.com/lukasw/clubsite/internal/app/authz"
	appControllers "github.com/lukasw/clubsite/internal/app/controllers"
	appMigrations "github.com/lukasw/clubsite/internal/app/migrations"
	appRepos "github.com/lukasw/clubsite/internal/app/repositories"
	appRoutes "github.com/lukasw/clubsite/internal/app/routes"
	appServices "github.com/lukasw/clubsite/internal/app/services"
	"github.com/lukasw/clubsite/internal/config"
	"github.com/lukasw/clubsite/internal/db"
	appMiddleware "github.com/lukasw/clubsite/internal/middleware"
	pkgAuth "github.com/lukasw/clubsite/internal/pkg/auth"
	"github.com/lukasw/clubsite/internal/pkg/helpers"
	"github.com/lukasw/clubsite/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Authorizer           *authz.EventAuthorizer
	AuthService          *appServices.AuthService
	UserService          *appServices.UserService
	SportEventService    *appServices.SportEventService
	MembershipService    *appServices.MembershipService
	ReferenceService     *appServices.ReferenceService
	TimerService         *appServices.TimerService
	AuthController       *appControllers.AuthController
	UserController       *appControllers.UserController
	SportEventController *appControllers.SportEventController
	ReferenceController  *appControllers.ReferenceController
	MembershipController *appControllers.MembershipController
	TimerController      *appControllers.TimerController
	AuthMiddleware       *appMiddleware.AuthMiddleware
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	logger.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("logFormat", cfg.Logging.Format).
		Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the database connection and runs migrations
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info().Msg("Database connection established")

	migrationsDir := filepath.Join("internal", "app", "migrations", "sql")
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(dbPool)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	logger.Info().Msg("Database migrations applied")

	return dbPool, nil
}

// SetupCache connects to Redis when enabled. A nil client means no caching.
func SetupCache(cfg *config.Config) (*redis.Client, error) {
	client, err := db.NewRedisClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	if client != nil {
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("Redis cache connected")
	}
	return client, nil
}

// BuildDependencies initializes repositories, services and controllers
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, cache *redis.Client) *Dependencies {
	deps := &Dependencies{}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Authorizer = authz.NewEventAuthorizer()

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.Repos.TokenRepository)
	deps.SportEventService = appServices.NewSportEventService(
		deps.Repos.SportEventRepository,
		deps.Repos.UserRepository,
		deps.Authorizer,
	)
	deps.MembershipService = appServices.NewMembershipService(deps.Repos.MembershipRepository, deps.Repos.UserRepository)
	deps.ReferenceService = appServices.NewReferenceService(deps.Repos.ReferenceRepository, cache)
	deps.TimerService = appServices.NewTimerService(deps.Repos.TimerRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.SportEventController = appControllers.NewSportEventController(deps.SportEventService)
	deps.ReferenceController = appControllers.NewReferenceController(deps.ReferenceService)
	deps.MembershipController = appControllers.NewMembershipController(deps.MembershipService)
	deps.TimerController = appControllers.NewTimerController(deps.TimerService)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger/doc.json"),
		ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.SportEventController,
		deps.ReferenceController,
		deps.MembershipController,
		deps.TimerController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
