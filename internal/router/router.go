package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/seatwise/seatwise-backend/internal/config"
	"github.com/seatwise/seatwise-backend/internal/handler"
	"github.com/seatwise/seatwise-backend/internal/middleware"
	"github.com/seatwise/seatwise-backend/internal/response"
	"github.com/seatwise/seatwise-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Session     *handler.SessionHandler
	Participant *handler.ParticipantHandler
	Monitor     *handler.MonitorHandler
	WS          *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict CORS to that list;
	// otherwise allow all so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID middleware runs globally so every response carries metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/student/login", handlers.Auth.StudentLogin)
		auth.POST("/proctor/login", handlers.Auth.ProctorLogin)

		// Authenticated profile routes
		auth.POST("/student/logout", middleware.RequireStudentJWT(authService), handlers.Auth.StudentLogout)
		auth.GET("/student/me", middleware.RequireStudentJWT(authService), handlers.Auth.GetStudentProfile)
		auth.GET("/proctor/me", middleware.RequireProctorJWT(authService), handlers.Auth.GetProctorProfile)
	}

	// ─── 2. Student Group (JWT + Single Device) ────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceLogin(authService),
	)
	{
		studentAPI.GET("/sessions/active", handlers.Participant.ActiveSession)
		studentAPI.POST("/sessions/:id/join", handlers.Participant.Join)
		studentAPI.POST("/sessions/:id/begin", handlers.Participant.Begin)
		studentAPI.GET("/sessions/:id/state", handlers.Participant.GetState)
		studentAPI.POST("/sessions/:id/submit", handlers.Participant.Submit)
	}

	// ─── 3. WebSocket Group (Student WS Auth) ──────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireStudentWSAuth(authService))
	{
		ws.GET("/student/sessions/:id/stream", handlers.WS.SessionWebSocketStream)
	}

	// ─── 4. Proctor Group (JWT) ────────────────────────────────────────
	proctorAPI := router.Group("/api/v1/proctor")
	proctorAPI.Use(middleware.RequireProctorJWT(authService))
	{
		proctorAPI.GET("/sessions", handlers.Session.List)
		proctorAPI.POST("/sessions", handlers.Session.Create)
		proctorAPI.GET("/sessions/:id", handlers.Session.GetState)
		proctorAPI.POST("/sessions/:id/start", handlers.Session.Start)
		proctorAPI.POST("/sessions/:id/end", handlers.Session.End)
		proctorAPI.POST("/sessions/:id/auto-assign", handlers.Session.AutoAssign)
		proctorAPI.POST("/sessions/:id/participants/:participant_id/seat", handlers.Session.AssignSeat)
		proctorAPI.GET("/sessions/:id/monitor", handlers.Monitor.MonitorSessionSSE)
		proctorAPI.GET("/sessions/:id/audit", handlers.Monitor.AuditTrail)
	}

	return router
}
