package api

import (
	"net/http"
	"time"

	"ylos-analyzer/internal/analysis"
	"ylos-analyzer/internal/monitor"
	"ylos-analyzer/pkg/config"
	"ylos-analyzer/pkg/db"

	"github.com/gin-gonic/gin"
)

// Server wires the HTTP endpoints around the analysis engine.
type Server struct {
	Router   *gin.Engine
	DB       *db.Database
	Analyzer *analysis.Analyzer
	Metrics  *monitor.SystemMetrics
	Cfg      *config.Config
	Meta     SystemMeta
}

// SystemMeta describes runtime status exposed to the UI.
type SystemMeta struct {
	Version         string
	CalendarEnabled bool
	Language        string
}

func NewServer(cfg *config.Config, database *db.Database, analyzer *analysis.Analyzer, metrics *monitor.SystemMetrics, meta SystemMeta) *Server {
	r := gin.New()
	r.MaxMultipartMemory = int64(cfg.MaxFileSizeMB) << 20

	// Middleware stack (order matters!)
	r.Use(gin.Recovery())        // Panic recovery (first)
	r.Use(RequestIDMiddleware()) // Request ID tracking
	r.Use(RequestLogger(metrics))
	r.Use(RateLimitMiddleware(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	r.Use(TimeoutMiddleware(30 * time.Second))
	r.Use(CORSMiddleware(cfg.AllowedOrigins)) // CORS (last before routes)

	s := &Server{
		Router:   r,
		DB:       database,
		Analyzer: analyzer,
		Metrics:  metrics,
		Cfg:      cfg,
		Meta:     meta,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.GET("/health", s.health)

	api := s.Router.Group("/api/v1")
	{
		api.GET("/system/status", s.getSystemStatus)
		api.GET("/metrics", s.getMetrics)

		api.POST("/analyze", s.analyzeReport)
		api.GET("/rules/:account_type", s.getRules)
		api.GET("/csv-example", s.getCSVExample)

		// Auth endpoints (no auth required)
		auth := api.Group("/auth")
		{
			auth.POST("/register", s.registerUser)
			auth.POST("/login", s.loginUser)
		}

		// Protected API
		protected := api.Group("")
		protected.Use(AuthMiddleware(s.Cfg.JWTSecret))
		{
			protected.GET("/analyses", s.listAnalyses)
			protected.GET("/analyses/:id", s.getAnalysis)
		}
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Start(addr string) error {
	return s.Router.Run(addr)
}
