package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/smartdoc/smartdoc-api/internal/api/handler"
	"github.com/smartdoc/smartdoc-api/internal/api/middleware"
	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
	"github.com/smartdoc/smartdoc-api/internal/core/service"
	"github.com/smartdoc/smartdoc-api/internal/infrastructure/db/postgres"
	redisstore "github.com/smartdoc/smartdoc-api/internal/infrastructure/db/redis"
	"github.com/smartdoc/smartdoc-api/internal/pkg/config"
	"github.com/smartdoc/smartdoc-api/internal/pkg/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, notifier ports.ResetNotifier, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("smartdoc"))

	// --- Dependencies ---
	accounts := postgres.NewAccountRepository(pool)
	hospitals := postgres.NewHospitalRepository(pool)
	doctors := postgres.NewDoctorRepository(pool)
	patients := postgres.NewPatientRepository(pool)
	enroll := postgres.NewEnrollmentStore(pool)
	tickets := redisstore.NewResetTicketStore(rdb)

	tokens := token.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	authService := service.NewAuthService(accounts, hospitals, doctors, enroll, tokens, tickets, notifier, log)
	profileService := service.NewProfileService(accounts, hospitals, doctors, patients, log)
	hospitalService := service.NewHospitalService(hospitals, log)
	doctorService := service.NewDoctorService(doctors, log)
	patientService := service.NewPatientService(patients, log)
	guard := service.NewAccessGuard(tokens, accounts, doctors, hospitals, log)

	authHandler := handler.NewAuthHandler(authService, hospitals)
	profileHandler := handler.NewProfileHandler(profileService)
	hospitalHandler := handler.NewHospitalHandler(hospitalService)
	doctorHandler := handler.NewDoctorHandler(doctorService)
	patientHandler := handler.NewPatientHandler(patientService)

	authenticated := middleware.Auth(guard)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	patientOnly := middleware.RBAC(domain.RolePatient)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/admin/register", authHandler.RegisterAdmin, authenticated, adminOnly)
	auth.POST("/hospital/register", authHandler.RegisterHospital)
	auth.GET("/hospitals", authHandler.ListHospitals)
	auth.POST("/doctor/register", authHandler.RegisterDoctor)
	auth.POST("/patient/register", authHandler.RegisterPatient)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authenticated)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// --- Profile routes ---
	auth.GET("/profiles", profileHandler.List, authenticated, adminOnly)
	auth.GET("/profile/me", profileHandler.GetMe, authenticated)
	auth.GET("/profile/:id", profileHandler.GetByID, authenticated)
	auth.PUT("/profile/:id", profileHandler.Update, authenticated)

	// --- Resource routes ---
	hospitalGroup := e.Group("/hospitals")
	hospitalGroup.GET("", hospitalHandler.List)
	hospitalGroup.GET("/:id", hospitalHandler.GetByID)
	hospitalGroup.PUT("/:id", hospitalHandler.Update, authenticated)

	doctorGroup := e.Group("/doctors")
	doctorGroup.GET("", doctorHandler.List)
	doctorGroup.GET("/:id", doctorHandler.GetByID)
	doctorGroup.PUT("/:id", doctorHandler.Update, authenticated)

	patientGroup := e.Group("/patients", authenticated, patientOnly)
	patientGroup.GET("/me", patientHandler.GetMe)
	patientGroup.PUT("/me", patientHandler.UpdateMe)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
