package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/uniconnect/internal/app/controllers"
	appMigrations "github.com/yigit/uniconnect/internal/app/migrations"
	appRepos "github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/app/repositories/memory"
	appRoutes "github.com/yigit/uniconnect/internal/app/routes"
	appServices "github.com/yigit/uniconnect/internal/app/services"
	"github.com/yigit/uniconnect/internal/app/views"
	"github.com/yigit/uniconnect/internal/config"
	"github.com/yigit/uniconnect/internal/db"
	appMiddleware "github.com/yigit/uniconnect/internal/middleware"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
	pkgAuth "github.com/yigit/uniconnect/internal/pkg/auth"
	"github.com/yigit/uniconnect/internal/pkg/helpers"
	"github.com/yigit/uniconnect/internal/pkg/logger"
	"github.com/yigit/uniconnect/internal/pkg/validation"
	"github.com/yigit/uniconnect/internal/pkg/websocket"
	"github.com/yigit/uniconnect/internal/seed"
)

// Store is the selected repository backend and its release function.
type Store struct {
	Repos  *appRepos.Repositories
	Driver string
	close  func()
}

// Close releases the store's connections, if any.
func (s *Store) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	FeedService         appServices.FeedService
	ClubService         appServices.ClubService
	EventService        appServices.EventService
	ResourceService     appServices.ResourceService
	ProfileService      appServices.ProfileService
	CourseReviewService appServices.CourseReviewService
	UniversityService   appServices.UniversityService
	SessionService      appServices.SessionService
	Controllers         appRoutes.Controllers
	SessionGate         *appMiddleware.SessionGate
	JWTService          *pkgAuth.JWTService
	Hub                 *websocket.Hub
	Sequencer           *views.Sequencer
	Repos               *appRepos.Repositories
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env, the configuration file and the
// environment, then configures the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		logger.Warn().Err(err).Msg("Ignoring unreadable .env file")
	}

	configPath := filepath.Join("configs", "config.yaml")
	if override := os.Getenv("CONFIG_PATH"); override != "" {
		configPath = override
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured backend. For postgres it connects, applies
// migrations and optionally seeds; the memory backend is always seeded when
// seeding is enabled.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	store := &Store{Driver: cfg.Database.Driver}

	switch cfg.Database.Driver {
	case config.DriverMemory:
		lgr.Warn().Msg("Using the in-memory store, data is lost on restart")
		store.Repos = memory.NewRepositories(memory.Open(helpers.SystemClock))

	case config.DriverPostgres:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(ctx, cfg, lgr)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		store.close = database.Close
		lgr.Info().Msg("Database connection successfully established.")

		migrationsDir := cfg.Database.MigrationsDir
		if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
			database.Close()
			lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
			return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
		}

		lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
		applied, err := appMigrations.NewMigrator(database.Pool, os.DirFS(migrationsDir), lgr).Up(ctx)
		if err != nil {
			database.Close()
			lgr.Error().Err(err).Msg("Database migration error")
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")

		store.Repos = appRepos.NewRepositories(database.Pool)

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if cfg.Database.Seed {
		if err := seed.CreateDefaultData(ctx, store.Repos, helpers.SystemClock, lgr); err != nil {
			// Startup continues with whatever rows were written.
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return store, nil
}

// BuildDependencies initializes services, the identity stream and controllers.
// The hub runs until ctx is cancelled.
func BuildDependencies(ctx context.Context, cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	helpers.ConfigurePageSizes(cfg.Pagination.DefaultSize, cfg.Pagination.MaxSize)
	if err := validation.RegisterWithGin(); err != nil {
		return nil, fmt.Errorf("failed to register validation rules: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey: cfg.Auth.JWTSecret,
		Issuer:    cfg.Auth.Issuer,
		Audience:  cfg.Auth.Audience,
		Leeway:    helpers.ParseDuration(cfg.Auth.Leeway, 30*time.Second),
	})
	provider := pkgAuth.NewProviderClient(cfg.Auth.ProviderLogoutURL, helpers.ParseDuration(cfg.Auth.ProviderTimeout, 10*time.Second))
	deps.SessionGate = appMiddleware.NewSessionGate(deps.JWTService, cfg.Auth.SignInPath)

	clock := helpers.SystemClock
	deps.FeedService = appServices.NewFeedService(repos.Posts, repos.Profiles, clock, lgr.With().Str("service", "feed").Logger())
	deps.ClubService = appServices.NewClubService(repos.Clubs, lgr.With().Str("service", "clubs").Logger())
	deps.EventService = appServices.NewEventService(repos.Events, clock, lgr.With().Str("service", "events").Logger())
	deps.ResourceService = appServices.NewResourceService(repos.Resources, clock, lgr.With().Str("service", "resources").Logger())
	deps.ProfileService = appServices.NewProfileService(repos.Profiles, lgr.With().Str("service", "profiles").Logger())
	deps.CourseReviewService = appServices.NewCourseReviewService(repos.CourseReviews, lgr.With().Str("service", "course_reviews").Logger())
	deps.UniversityService = appServices.NewUniversityService(repos.Universities, lgr.With().Str("service", "universities").Logger())
	deps.SessionService = appServices.NewSessionService(provider, cfg.Auth.SignInPath, clock, lgr.With().Str("service", "session").Logger())

	deps.Hub = websocket.NewHub(lgr.With().Str("component", "identity_hub").Logger())
	go deps.Hub.Run(ctx)

	deps.Sequencer = views.NewSequencer()
	deps.Controllers = appRoutes.Controllers{
		Feed:           appControllers.NewFeedController(deps.FeedService, deps.Sequencer),
		Clubs:          appControllers.NewClubController(deps.ClubService, deps.Sequencer),
		Events:         appControllers.NewEventController(deps.EventService, deps.Sequencer),
		Resources:      appControllers.NewResourceController(deps.ResourceService, deps.Sequencer),
		Profiles:       appControllers.NewProfileController(deps.ProfileService),
		CourseReviews:  appControllers.NewCourseReviewController(deps.CourseReviewService),
		Universities:   appControllers.NewUniversityController(deps.UniversityService),
		Session:        appControllers.NewSessionController(deps.SessionService),
		IdentityStream: websocket.NewHandler(deps.Hub, deps.SessionService, cfg.Server.AllowedOrigins, cfg.Auth.SignInPath, lgr),
	}

	return deps, nil
}

// corsConfig allows the configured origins. An empty list accepts any origin,
// like the websocket upgrader, echoing it back so credentials still work.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", appControllers.HeaderViewInstance},
		ExposeHeaders:    []string{appControllers.HeaderRequestSequence, appControllers.HeaderRequestSuperseded},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowOrigins = nil
		c.AllowOriginFunc = func(string) bool { return true }
	}
	return c
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
	router.Use(gin.Recovery(), appMiddleware.RequestLogger())
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	appRoutes.SetupRouter(router, deps.Controllers, deps.SessionGate)

	router.NoRoute(func(c *gin.Context) {
		appMiddleware.HandleAPIError(c, apperrors.NewNotFoundError("route not found"))
	})

	return router
}
