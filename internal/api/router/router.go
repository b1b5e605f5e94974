package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SwiftWareCo/GolfSync-sub005/config"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/api/handler"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/api/middleware"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/jwt"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/redis"
)

// maxBodyBytes caps request bodies; lottery payloads are small JSON.
const maxBodyBytes = 1 << 20

// Setup builds the Gin engine with the full route table.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	// Every route requires a valid SSO token; this service issues none.
	v1 := r.Group("/api/v1")
	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr))
	{
		// lottery module
		lottery := authorized.Group("/lottery")
		{
			lottery.POST("/entries",
				middleware.RateLimit(rdb, cfg.Lottery.SubmitRateLimit, cfg.Lottery.SubmitRateWindow),
				h.Lottery.Submit)
			lottery.GET("/entries/:id", h.Lottery.Get)
			lottery.DELETE("/entries/:id", h.Lottery.Cancel)
			lottery.GET("/dates/:date", middleware.RoleAuth(jwt.RoleStaff), h.Lottery.DateData)
			lottery.POST("/process/:date", middleware.RoleAuth(jwt.RoleStaff), h.Lottery.Process)
		}

		// speed profile module
		speedProfiles := authorized.Group("/speed-profiles")
		{
			speedProfiles.GET("", middleware.RoleAuth(jwt.RoleStaff), h.SpeedProfile.List)
			speedProfiles.GET("/:memberId", h.SpeedProfile.Get)
			speedProfiles.PUT("/:memberId", middleware.RoleAuth(jwt.RoleStaff), h.SpeedProfile.Update)
			speedProfiles.POST("/:memberId/rounds", middleware.RoleAuth(jwt.RoleStaff), h.SpeedProfile.RecordRound)
			speedProfiles.POST("/reclassify", middleware.RoleAuth(jwt.RoleStaff), h.SpeedProfile.ReclassifyAll)
		}

		// fairness module
		fairness := authorized.Group("/fairness-scores")
		{
			fairness.GET("", h.Fairness.ListByMonth)
			fairness.GET("/:memberId", h.Fairness.Get)
			fairness.POST("/ensure", middleware.RoleAuth(jwt.RoleStaff), h.Fairness.EnsureMonth)
		}

		// algorithm tuning module
		algorithmConfig := authorized.Group("/algorithm-config")
		{
			algorithmConfig.GET("", h.Config.Get)
			algorithmConfig.PUT("", middleware.RoleAuth(jwt.RoleStaff), h.Config.Update)
		}

		// maintenance module
		maintenance := authorized.Group("/maintenance")
		{
			maintenance.POST("/monthly-reset", middleware.RoleAuth(jwt.RoleStaff), h.Maintenance.MonthlyReset)
			maintenance.POST("/monthly-reset/trigger", middleware.RoleAuth(jwt.RoleStaff), h.Maintenance.TriggerReset)
		}

		// export module
		export := authorized.Group("/export")
		{
			export.GET("/tee-sheet", middleware.RoleAuth(jwt.RoleStaff), h.Export.TeeSheet)
		}

		// calendar module
		calendar := authorized.Group("/calendar")
		{
			calendar.GET("/feed", h.Calendar.MemberFeed)
		}

		// billing signal module
		chargeSignals := authorized.Group("/charge-signals")
		{
			chargeSignals.GET("", middleware.RoleAuth(jwt.RoleStaff), h.ChargeSignal.List)
		}
	}

	return r
}
