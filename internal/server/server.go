// Package server wires configuration, infrastructure, services and routes
// into a runnable HTTP server.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/sustainaByte/orghub/internal/api"
	"github.com/sustainaByte/orghub/internal/config"
	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"github.com/sustainaByte/orghub/internal/services/database"
	"github.com/sustainaByte/orghub/internal/services/departments"
	"github.com/sustainaByte/orghub/internal/services/email"
	"github.com/sustainaByte/orghub/internal/services/events"
	"github.com/sustainaByte/orghub/internal/services/holiday"
	"github.com/sustainaByte/orghub/internal/services/middleware"
	"github.com/sustainaByte/orghub/internal/services/positions"
	"github.com/sustainaByte/orghub/internal/services/posts"
	"github.com/sustainaByte/orghub/internal/services/projects"
	"github.com/sustainaByte/orghub/internal/services/roles"
	"github.com/sustainaByte/orghub/internal/services/statistics"
	"github.com/sustainaByte/orghub/internal/services/users"
)

// Server is one orghub instance.
type Server struct {
	config *config.Config
	app    *fiber.App
	redis  *redis.Client
	db     *database.DB
}

func New(cfg *config.Config) *Server {
	if cfg == nil {
		panic("config cannot be nil - use config.LoadFromFile() to create config")
	}
	return &Server{config: cfg}
}

// Run starts the server and blocks until shutdown.
func (s *Server) Run() error {
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	setupLogLevel(s.config)

	port := s.config.Server.Port
	if port == "" {
		port = "8080"
	}
	listenAddr := ":" + port

	s.app = createFiberApp(s.config)

	redisClient, err := createRedisClient(s.config)
	if err != nil {
		return fmt.Errorf("failed to create Redis client: %w", err)
	}
	s.redis = redisClient
	if s.redis != nil {
		defer func() {
			if err := s.redis.Close(); err != nil {
				fiberlog.Errorf("Failed to close Redis client: %v", err)
			}
		}()
	}

	db, err := database.New(*s.config.Database)
	if err != nil {
		return fmt.Errorf("failed to create database connection: %w", err)
	}
	s.db = db
	defer func() {
		if err := s.db.Close(); err != nil {
			fiberlog.Errorf("Failed to close database connection: %v", err)
		}
	}()
	fiberlog.Infof("Database (%s) initialized successfully", db.DriverName())

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	setupMiddleware(s.app, s.config)

	if err := setupRoutes(s.app, s.config, s.redis, s.db); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	fmt.Printf("orghub starting on %s\n", listenAddr)
	fmt.Printf("   Environment: %s\n", s.config.Server.Environment)
	fmt.Printf("   Go version: %s\n", runtime.Version())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := s.app.Listen(listenAddr); err != nil {
			serverErrChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		fiberlog.Infof("Received signal: %v. Starting graceful shutdown...", sig)
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		fiberlog.Info("Context cancelled, starting shutdown...")
	}

	fiberlog.Info("Server shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	shutdownErrChan := make(chan error, 1)
	go func() {
		shutdownErrChan <- s.app.ShutdownWithTimeout(30 * time.Second)
	}()

	select {
	case err := <-shutdownErrChan:
		if err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		fiberlog.Info("Server shutdown completed successfully")
	case <-shutdownCtx.Done():
		return fmt.Errorf("shutdown timeout exceeded")
	}

	return nil
}

func createFiberApp(cfg *config.Config) *fiber.App {
	isProd := cfg.IsProduction()

	return fiber.New(fiber.Config{
		AppName:           "orghub v1.0",
		EnablePrintRoutes: !isProd,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       5 * time.Minute,
		ReadBufferSize:    8192,
		WriteBufferSize:   8192,
		BodyLimit:         10 * 1024 * 1024,
		CaseSensitive:     true,
		Network:           "tcp",
		ServerHeader:      "orghub",
	})
}

func setupMiddleware(app *fiber.App, cfg *config.Config) {
	isProd := cfg.IsProduction()

	// Recover middleware (must be first)
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !isProd,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:               1000,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded")
		},
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	if isProd {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${status} ${method} ${path} ${latency} ${bytesSent}b\n",
			Output: os.Stdout,
		}))
	} else {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path} ${error}\n",
			Output: os.Stdout,
		}))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, User-Agent",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
		MaxAge:           86400,
		ExposeHeaders:    "Content-Length, Content-Type",
	}))
}

func setupLogLevel(cfg *config.Config) {
	logLevel := cfg.GetNormalizedLogLevel()

	switch logLevel {
	case "trace":
		fiberlog.SetLevel(fiberlog.LevelTrace)
	case "debug":
		fiberlog.SetLevel(fiberlog.LevelDebug)
	case "info":
		fiberlog.SetLevel(fiberlog.LevelInfo)
	case "warn", "warning":
		fiberlog.SetLevel(fiberlog.LevelWarn)
	case "error":
		fiberlog.SetLevel(fiberlog.LevelError)
	case "fatal":
		fiberlog.SetLevel(fiberlog.LevelFatal)
	case "panic":
		fiberlog.SetLevel(fiberlog.LevelPanic)
	default:
		fiberlog.SetLevel(fiberlog.LevelInfo)
		fiberlog.Warnf("Unknown log level '%s', defaulting to 'info'", logLevel)
	}

	fiberlog.Infof("Log level set to: %s", logLevel)
}

func createRedisClient(cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.URL == "" {
		fiberlog.Info("Redis not configured - holiday cache and circuit breaker disabled")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = 50
	opt.MinIdleConns = 10
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute
	opt.DialTimeout = 10 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second
	opt.MaxRetries = 3

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		fiberlog.Warnf("Redis connection failed: %v", err)
	} else {
		fiberlog.Info("Redis connection established successfully")
	}

	return client, nil
}

func setupRoutes(app *fiber.App, cfg *config.Config, redisClient *redis.Client, db *database.DB) error {
	tokenSvc := auth.NewTokenService(cfg.JWT)
	roleSvc := roles.NewService(db.DB)
	mailer := email.NewMailer(cfg.SMTP, cfg.Frontend)
	holidaySvc := holiday.NewService(cfg.Holiday, redisClient)

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := roleSvc.Seed(seedCtx); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}

	userSvc := users.NewService(db.DB, roleSvc, tokenSvc, mailer, holidaySvc)
	departmentSvc := departments.NewService(db.DB, userSvc)
	projectSvc := projects.NewService(db.DB, userSvc)
	positionSvc := positions.NewService(db.DB, userSvc)
	postSvc := posts.NewService(db.DB)
	eventSvc := events.NewService(db.DB)
	statisticsSvc := statistics.NewService(db.DB)

	guard := middleware.NewRolesGuard(tokenSvc, roleSvc)

	authHandler := api.NewAuthHandler(userSvc)
	employeesHandler := api.NewEmployeesHandler(userSvc)
	departmentsHandler := api.NewDepartmentsHandler(departmentSvc)
	projectsHandler := api.NewProjectsHandler(projectSvc)
	positionsHandler := api.NewPositionsHandler(positionSvc)
	postsHandler := api.NewPostsHandler(postSvc)
	eventsHandler := api.NewEventsHandler(eventSvc)
	statisticsHandler := api.NewStatisticsHandler(statisticsSvc)
	healthHandler := api.NewHealthHandler(db.DB, redisClient)

	app.Get("/health", healthHandler.HealthCheck)

	adminOnly := guard.RequireRoles(models.RequireRole(models.RoleAdmin))
	anyUser := guard.RequireRoles(models.RequireRole(models.RoleStandardUser))
	projectLeadUp := guard.RequireRoles(models.RequireRole(models.RoleProjectLead))

	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", guard.OptionalAuthenticate(), authHandler.ResetPassword)

	employees := app.Group("/employees")
	employees.Post("/", adminOnly, employeesHandler.Create)
	employees.Get("/", anyUser, employeesHandler.List)
	employees.Get("/:id", adminOnly, employeesHandler.Get)
	employees.Patch("/:id", anyUser, employeesHandler.Update)
	employees.Post("/:id/timesheets", anyUser, employeesHandler.CreateTimesheet)
	employees.Get("/:id/timesheets", anyUser, employeesHandler.GetTimesheets)

	departmentsGroup := app.Group("/departments", adminOnly)
	departmentsGroup.Post("/", departmentsHandler.Create)
	departmentsGroup.Get("/", departmentsHandler.List)
	departmentsGroup.Get("/:id", departmentsHandler.Get)
	departmentsGroup.Patch("/:id", departmentsHandler.Update)
	departmentsGroup.Delete("/:id", departmentsHandler.Delete)

	projectsGroup := app.Group("/projects", adminOnly)
	projectsGroup.Post("/", projectsHandler.Create)
	projectsGroup.Get("/", projectsHandler.List)
	projectsGroup.Get("/:id", projectsHandler.Get)

	positionsGroup := app.Group("/positions", adminOnly)
	positionsGroup.Post("/", positionsHandler.Create)
	positionsGroup.Get("/", positionsHandler.List)
	positionsGroup.Patch("/:id", positionsHandler.Update)
	positionsGroup.Delete("/:id", positionsHandler.Delete)

	postsGroup := app.Group("/posts", anyUser)
	postsGroup.Post("/", postsHandler.Create)
	postsGroup.Get("/", postsHandler.List)
	postsGroup.Get("/:id", postsHandler.Get)
	postsGroup.Patch("/:id/kudos", postsHandler.ToggleKudos)
	postsGroup.Post("/:id/comments", postsHandler.AddComment)
	postsGroup.Put("/:id/photo", postsHandler.AttachPhoto)
	postsGroup.Get("/:id/photo", postsHandler.Photo)

	eventsGroup := app.Group("/events")
	eventsGroup.Post("/", projectLeadUp, eventsHandler.Create)
	eventsGroup.Get("/", anyUser, eventsHandler.List)
	eventsGroup.Get("/personal", anyUser, eventsHandler.ListPersonal)
	eventsGroup.Get("/:id", anyUser, eventsHandler.Get)
	eventsGroup.Patch("/:id/kudos", anyUser, eventsHandler.ToggleKudos)
	eventsGroup.Patch("/:id", anyUser, eventsHandler.Update)

	statisticsGroup := app.Group("/statistics", adminOnly)
	statisticsGroup.Post("/", statisticsHandler.Refresh)
	statisticsGroup.Get("/", statisticsHandler.Get)

	return nil
}
