package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/interviewsim/interview-api/docs"
	"github.com/interviewsim/interview-api/internal/api/handler"
	"github.com/interviewsim/interview-api/internal/api/middleware"
	"github.com/interviewsim/interview-api/internal/core/ports"
	"github.com/interviewsim/interview-api/internal/core/service"
	mongorepo "github.com/interviewsim/interview-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/interviewsim/interview-api/internal/infrastructure/db/redis"
)

// RouterConfig carries everything NewRouter needs beyond the live connections.
type RouterConfig struct {
	JWTSecret      string
	LoginLimit     int
	LoginWindowSec int
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, storage ports.BlobStorage, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("interviewsim"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	interviewRepo := mongorepo.NewInterviewRepository(db)
	userService := service.NewUserService(userRepo, interviewRepo, storage, cfg.JWTSecret, log)

	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService)
	fileHandler := handler.NewFileHandler(userService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.AdminOnly()
	loginLimiter := redisinfra.NewRateLimiter(rdb, cfg.LoginLimit, time.Duration(cfg.LoginWindowSec)*time.Second, log)

	// --- Auth routes ---
	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/admin/login", authHandler.AdminLogin, middleware.LoginRateLimit(loginLimiter))

	// --- User routes ---
	users := e.Group("/v1/users")
	users.GET("/find", userHandler.Find)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.PUT("/:id/resume", userHandler.UpdateResume)
	users.DELETE("/:id", userHandler.Delete)
	users.GET("", userHandler.List, authMiddleware, adminOnly)

	// --- Admin routes (token + admin role required) ---
	admin := e.Group("/v1/admin", authMiddleware, adminOnly)
	admin.PUT("/users/:id", userHandler.AdminUpdate)
	admin.DELETE("/files", fileHandler.Delete)
	admin.GET("/resume-urls", fileHandler.ResumeURLs)
	admin.GET("/report-urls", fileHandler.ReportURLs)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
