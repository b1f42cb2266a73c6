package routes

import (
	"time"

	"alertwatch/config"
	"alertwatch/controllers"
	"alertwatch/middlewares"
	"alertwatch/services"
	"alertwatch/utils"

	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg config.Config) *gin.Engine {
	r := gin.Default()

	blacklist := services.NewTokenBlacklist()
	hub := services.NewRealtimeHub()
	services.InitAuditBus(utils.Logger, hub)

	authCtl := controllers.NewAuthController(cfg, blacklist)
	requireAuth := middlewares.AuthMiddleware(cfg)

	// 5/minute for login, 3/hour for register, keyed by client IP.
	loginLimiter := middlewares.NewRateLimiter(12*time.Second, 5, cfg.RateLimitEnabled)
	registerLimiter := middlewares.NewRateLimiter(20*time.Minute, 3, cfg.RateLimitEnabled)

	auth := r.Group("/auth")
	{
		auth.POST("/register", registerLimiter.Middleware(), authCtl.Register)
		auth.POST("/login", loginLimiter.Middleware(), authCtl.Login)
		auth.POST("/logout", requireAuth, authCtl.Logout)
		auth.POST("/token/refresh", authCtl.RefreshToken)
		auth.POST("/token/verify", authCtl.VerifyToken)
	}

	user := r.Group("/user")
	user.Use(requireAuth)
	{
		user.GET("/profile", controllers.GetProfile)
	}

	alerts := r.Group("/alerts")
	alerts.Use(requireAuth)
	{
		alerts.GET("", controllers.ListAlerts)
		alerts.POST("", controllers.CreateAlert)
		alerts.GET("/:id", controllers.GetAlert)
		alerts.PUT("/:id", controllers.UpdateAlert)
		alerts.PATCH("/:id", controllers.UpdateAlert)
		alerts.DELETE("/:id", controllers.DeleteAlert)
		alerts.GET("/:id/evidences", controllers.ListAlertEvidences)
	}

	evidences := r.Group("/evidences")
	evidences.Use(requireAuth)
	{
		evidences.GET("", controllers.ListEvidences)
		evidences.POST("", controllers.CreateEvidence)
		evidences.GET("/:id", controllers.GetEvidence)
		evidences.PUT("/:id", controllers.ReviewEvidence)
		evidences.PATCH("/:id", controllers.ReviewEvidence)
		evidences.DELETE("/:id", controllers.DeleteEvidence)
	}

	r.GET("/ws/audit", requireAuth, controllers.AuditStream(hub))

	return r
}
