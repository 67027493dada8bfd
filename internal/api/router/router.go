package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"teacher-eval/backend/config"
	"teacher-eval/backend/internal/api/handler"
	"teacher-eval/backend/internal/api/middleware"
	"teacher-eval/backend/internal/model"
	"teacher-eval/backend/pkg/jwt"
	"teacher-eval/backend/pkg/redis"
)

// jsonBodyLimit cap for every non-upload request body
const jsonBodyLimit = 1 << 20

// Setup builds the gin engine. rdb may be nil; revocation and rate limiting are then skipped.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	// keep nil interfaces nil
	var (
		revoked middleware.RevocationChecker
		limiter middleware.RateLimiter
	)
	if rdb != nil {
		revoked = rdb
		limiter = rdb
	}

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// ── uploads (own body limit) ──
	uploads := v1.Group("")
	uploads.Use(middleware.BodyLimit(cfg.Storage.MaxUploadBytes() + jsonBodyLimit))
	uploads.Use(middleware.JWTAuth(jwtMgr, revoked, logger))
	{
		uploads.POST("/indicators/:id/witnesses", h.Witness.UploadWitness)
		uploads.POST("/users/import", middleware.RoleAuth(model.RoleAdmin), h.User.ImportUsers)
	}

	api := v1.Group("")
	api.Use(middleware.BodyLimit(jsonBodyLimit))

	// public auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(limiter, cfg.Auth.LoginRateLimit, time.Minute, logger), h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	authorized := api.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr, revoked, logger))
	{
		authorized.POST("/auth/logout", h.Auth.Logout)
		authorized.GET("/auth/me", h.Auth.Me)
		authorized.PUT("/auth/password", h.Auth.ChangePassword)

		reviewers := middleware.RoleAuth(model.RoleReviewer, model.RoleAdmin)
		admins := middleware.RoleAuth(model.RoleAdmin)

		// users
		users := authorized.Group("/users", admins)
		{
			users.POST("", h.User.CreateUser)
			users.GET("", h.User.ListUsers)
			users.GET("/:id", h.User.GetUser)
			users.POST("/:id/reset-password", h.User.ResetPassword)
		}

		// academic cycles
		cycles := authorized.Group("/cycles")
		{
			cycles.GET("", h.Cycle.ListCycles)
			cycles.GET("/current", h.Cycle.GetCurrentCycle)
			cycles.GET("/:id", h.Cycle.GetCycle)
			cycles.GET("/:id/calendar.ics", h.Cycle.Calendar)
			cycles.POST("", admins, h.Cycle.CreateCycle)
			cycles.PUT("/:id", admins, h.Cycle.UpdateCycle)
			cycles.PUT("/:id/activate", admins, h.Cycle.ActivateCycle)
			cycles.PUT("/:id/lock", admins, h.Cycle.LockCycle)
		}

		// performance standards
		standards := authorized.Group("/standards")
		{
			standards.GET("", h.Standard.ListStandards)
			standards.PUT("", admins, h.Standard.ReplaceStandards)
			standards.POST("/defaults", admins, h.Standard.ResetStandards)
		}

		// indicators, criteria, witnesses
		indicators := authorized.Group("/indicators")
		{
			indicators.GET("", h.Indicator.ListIndicators)
			indicators.POST("", h.Indicator.CreateIndicator)
			indicators.GET("/:id", h.Indicator.GetIndicator)
			indicators.PUT("/:id", h.Indicator.UpdateIndicator)
			indicators.DELETE("/:id", h.Indicator.DeleteIndicator)
			indicators.POST("/:id/criteria", h.Indicator.AddCriterion)
			indicators.GET("/:id/witnesses", h.Witness.ListWitnesses)
		}
		authorized.PUT("/criteria/:id/toggle", h.Indicator.ToggleCriterion)
		authorized.DELETE("/criteria/:id", h.Indicator.DeleteCriterion)
		authorized.GET("/witnesses/:id/download", h.Witness.DownloadWitness)
		authorized.DELETE("/witnesses/:id", h.Witness.DeleteWitness)

		// progress and exports
		authorized.GET("/progress/me", h.Progress.GetMyProgress)
		export := authorized.Group("/export")
		{
			export.GET("/progress", h.Export.ExportMyProgress)
			export.GET("/cycles/:id", reviewers, h.Export.ExportCycleSummary)
		}

		// submissions
		submissions := authorized.Group("/submissions")
		{
			submissions.POST("", h.Submission.Submit)
			submissions.GET("/me", h.Submission.GetMySubmission)
			submissions.GET("/pending", reviewers, h.Submission.ListPending)
			submissions.PUT("/:id/review", reviewers, h.Submission.Review)
		}
	}

	return r
}
