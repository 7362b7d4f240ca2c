// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"documo/internal/cache"
	"documo/internal/config"
	"documo/internal/database"
	"documo/internal/middleware"
	"documo/internal/models"
	"documo/internal/notify"
	"documo/internal/repository"
	"documo/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo      repository.UserRepository
	authTokenRepo repository.AuthTokenRepository
	folderRepo    repository.FolderRepository
	requestRepo   repository.RequestRepository
	documentRepo  repository.DocumentRepository
	typeRepo      repository.DocumentTypeRepository
	shareLinkRepo repository.ShareLinkRepository

	mailer notify.Mailer

	folderService   *service.FolderService
	requestService  *service.RequestService
	documentService *service.DocumentService
	typeService     *service.DocumentTypeService
	externalService *service.ExternalService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	prom := middleware.InitMetrics("documo-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       repository.NewUserRepository(db),
		authTokenRepo:  repository.NewAuthTokenRepository(db),
		folderRepo:     repository.NewFolderRepository(db),
		requestRepo:    repository.NewRequestRepository(db),
		documentRepo:   repository.NewDocumentRepository(db),
		typeRepo:       repository.NewDocumentTypeRepository(db),
		shareLinkRepo:  repository.NewShareLinkRepository(db),
		mailer:         notify.NewLogMailer(cfg.AppBaseURL),
	}

	server.folderService = service.NewFolderService(server.folderRepo)
	server.requestService = service.NewRequestService(server.requestRepo, server.folderRepo, server.shareLinkRepo, server.mailer)
	server.documentService = service.NewDocumentService(server.documentRepo, server.mailer)
	server.typeService = service.NewDocumentTypeService(server.typeRepo, cache.NewDocumentTypes(cfg.DocumentTypeCacheTTL))
	server.externalService = service.NewExternalService(server.shareLinkRepo, server.requestRepo, server.documentRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Distributed tracing
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/refresh", s.Refresh)
	auth.Post("/logout", s.Logout)
	auth.Post("/verify-email", s.VerifyEmail)
	auth.Post("/password-reset/request", middleware.RateLimit(
		s.redis, 3, 15*time.Minute, "password_reset"), s.RequestPasswordReset)
	auth.Post("/password-reset/confirm", s.ResetPassword)

	// Recipient-facing share-link routes. The token is the credential.
	share := api.Group("/share")
	share.Get("/:token", s.GetSharedRequest)
	share.Post("/:token/accept", s.AcceptSharedRequest)
	share.Post("/:token/decline", s.DeclineSharedRequest)
	share.Post("/:token/documents", middleware.RateLimit(
		s.redis, 30, time.Minute, "share_upload"), s.UploadSharedDocument)

	// Protected staff routes
	protected := api.Group("", s.AuthRequired())

	// Document type catalog
	types := protected.Group("/document-types")
	types.Get("/", s.GetDocumentTypes)
	types.Post("/", s.CreateDocumentType)
	types.Put("/:id", s.UpdateDocumentType)

	// Folder routes
	folders := protected.Group("/folders")
	folders.Get("/", s.GetFolders)
	folders.Post("/", s.CreateFolder)
	// Specific /:id/:resource routes BEFORE generic /:id route
	folders.Post("/:id/archive", s.ArchiveFolder)
	folders.Get("/:id", s.GetFolder)
	folders.Put("/:id", s.UpdateFolder)

	// Request routes
	requests := protected.Group("/requests")
	requests.Post("/", s.CreateRequest)
	requests.Post("/:id/archive", s.ArchiveRequest)
	requests.Post("/:id/resend-link", s.ResendShareLink)
	requests.Get("/:id/documents", s.GetValidDocuments)
	requests.Get("/:id", s.GetRequest)

	// Document review routes
	documents := protected.Group("/documents")
	documents.Post("/:id/validate", s.ValidateDocument)
	documents.Post("/:id/invalidate", s.InvalidateDocument)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
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
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It validates the JWT
// access token and places userID and orgID in locals for handlers.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "documo-api" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "documo-client" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		orgClaim, ok := claims["org"].(float64)
		if !ok || orgClaim <= 0 {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid organization claim"))
		}

		c.Locals("userID", uint(userID))
		c.Locals("orgID", uint(orgClaim))
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		ctx = context.WithValue(ctx, middleware.OrgIDKey, uint(orgClaim))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Documo API",
		BodyLimit: 32 * 1024 * 1024, // uploads
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
