// Package server wires the HTTP surface: middleware, resource routes, the
// admin boundary and the generated API docs.
package server

import (
	"context"
	"fmt"
	"time"

	"foliocms/cache"
	"foliocms/config"
	"foliocms/database"
	"foliocms/docs"
	"foliocms/middleware"
	"foliocms/models"
	"foliocms/repository"
	"foliocms/schema"
	"foliocms/seed"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config     *config.Config
	db         *gorm.DB
	redis      *redis.Client
	users      repository.Repository[models.User]
	projects   repository.Repository[models.Project]
	blogs      repository.Repository[models.Blog]
	services   repository.Repository[models.Service]
	tags       repository.Repository[models.Tag]
	categories repository.Repository[models.Category]
	userLookup *repository.Users
	openapi    map[string]any
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	redisClient := cache.Connect(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, redisClient), nil
}

// NewServerWithDeps builds a server on already-established connections. Tests
// use it to substitute an in-memory store.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	return &Server{
		config:     cfg,
		db:         db,
		redis:      redisClient,
		users:      repository.New[models.User](db, schema.Users),
		projects:   repository.New[models.Project](db, schema.Projects),
		blogs:      repository.New[models.Blog](db, schema.Blogs),
		services:   repository.New[models.Service](db, schema.Services),
		tags:       repository.New[models.Tag](db, schema.Tags),
		categories: repository.New[models.Category](db, schema.Categories),
		userLookup: repository.NewUsers(db),
		openapi:    docs.Build(schema.All()),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Request ID for tracing
	app.Use(requestid.New())

	// Security headers
	app.Use(helmet.New())

	// Prometheus scrape endpoint and per-route HTTP metrics. /metrics is
	// infrastructure-facing, like /healthz, and sits outside the gate.
	prom := fiberprometheus.New("foliocms")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	// Structured logging middleware
	app.Use(middleware.RequestLogger())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, X-API-Key",
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/healthz", s.HealthCheck)

	// Admin console boundary: session-cookie auth, not the API-key gate.
	admin := app.Group("/admin")
	admin.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "admin_login"), s.AdminLogin)
	admin.Post("/logout", s.AdminLogout)
	admin.Get("/me", s.AdminRequired(), s.AdminMe)

	// Everything else sits behind the shared-secret gate.
	api := app.Group("", middleware.APIKey(s.config.APIKey))
	api.Get("/api-docs", s.APIDocs)
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "foliocms Metrics Dashboard",
	}))

	registerResource(api, schema.Users, s.users)
	registerResource(api, schema.Projects, s.projects)
	registerResource(api, schema.Blogs, s.blogs)
	registerResource(api, schema.Services, s.services)
	registerResource(api, schema.Tags, s.tags)
	registerResource(api, schema.Categories, s.categories)
}

// APIDocs serves the OpenAPI document generated from the schema registry.
func (s *Server) APIDocs(c *fiber.Ctx) error {
	return c.JSON(s.openapi)
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"database": dbStatus,
		"redis":    redisStatus,
	})
}

// Seed loads demo content into an empty database.
func (s *Server) Seed() error {
	return seed.Run(s.db)
}

// Shutdown releases server-held resources.
func (s *Server) Shutdown(ctx context.Context) error {
	cache.Close(s.redis)

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
