package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rxtrack/rxtrack-api/config"
	"github.com/rxtrack/rxtrack-api/internal/handler/middleware"
	"github.com/rxtrack/rxtrack-api/pkg/auth"
	"github.com/rxtrack/rxtrack-api/pkg/metrics"
)

type RouterDeps struct {
	Prescription *PrescriptionHandler
	History      *HistoryHandler
	Auth         *AuthHandler
	JWTManager   *auth.JWTManager
	Metrics      *metrics.Collector
	Log          *zap.Logger
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(deps.Log),
		gin.Recovery(),
		middleware.CORS(deps.Config.CORS),
	)
	if deps.Config.RateLimit.Enabled {
		r.Use(middleware.RateLimit(deps.Config.RateLimit))
	}
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/login", deps.Auth.Login)

	// Record routes stay open unless token enforcement is switched on.
	records := api.Group("")
	if deps.Config.JWT.RequireAuth {
		records.Use(middleware.RequireAuth(deps.JWTManager))
	}

	p := records.Group("/prescription")
	{
		p.GET("", deps.Prescription.List)
		p.GET("/:id", deps.Prescription.GetByID)
		p.GET("/by-name", deps.Prescription.GetByName)
		p.GET("/by-gender", deps.Prescription.GetByGender)
		p.GET("/by-date", deps.Prescription.GetByDateRange)
		p.GET("/daywise-report", deps.Prescription.DayWiseReport)
		p.POST("", deps.Prescription.Create)
		p.PUT("/:id", deps.Prescription.Update)
		p.DELETE("/:id", deps.Prescription.Delete)
		p.DELETE("/by-date", deps.Prescription.DeleteByDateRange)
	}

	h := records.Group("/history")
	{
		h.GET("", deps.History.List)
		h.GET("/:id", deps.History.GetByID)
		h.GET("/by-name", deps.History.GetByName)
		h.GET("/by-gender", deps.History.GetByGender)
		h.GET("/by-date", deps.History.GetByDateRange)
		h.POST("", deps.History.Create)
		h.PUT("/:id", deps.History.Update)
	}

	return r
}
