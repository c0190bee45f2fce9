package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/portfolio-backend/internal/http/handlers"
	httpMW "github.com/yungbote/portfolio-backend/internal/http/middleware"
	"github.com/yungbote/portfolio-backend/internal/observability"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
	"github.com/yungbote/portfolio-backend/internal/services"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics

	AuthMiddleware *httpMW.AuthMiddleware

	PortfolioHandler *httpH.PortfolioHandler
	EditorHandler    *httpH.EditorHandler
	TemplateHandler  *httpH.TemplateHandler
	ThemeHandler     *httpH.ThemeHandler
	RecordsHandler   *httpH.RecordsHandler
	UploadHandler    *httpH.UploadHandler
	HealthHandler    *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	protected := r.Group("/api")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}

	// Portfolios
	if h := cfg.PortfolioHandler; h != nil {
		protected.GET("/portfolios", h.List)
		protected.POST("/portfolios", h.Create)
		protected.GET("/portfolios/name-available", h.NameAvailable)
		protected.GET("/portfolios/:id", h.Get)
		protected.PATCH("/portfolios/:id", h.Patch)
		protected.DELETE("/portfolios/:id", h.Delete)
		protected.GET("/portfolios/:id/render", h.Render)
		protected.PUT("/portfolios/:id/theme", h.SaveTheme)
		protected.POST("/portfolios/:id/snapshot", h.Snapshot)
	}

	// Editor
	if h := cfg.EditorHandler; h != nil {
		protected.POST("/portfolios/:id/sections", h.AddSection)
		protected.PATCH("/sections/:id", h.UpdateSection)
		protected.DELETE("/sections/:id", h.DeleteSection)
		protected.POST("/sections/:id/move", h.MoveSection)
		protected.POST("/sections/:id/blocks", h.AddBlock)
		protected.PATCH("/blocks/:id", h.UpdateBlock)
		protected.DELETE("/blocks/:id", h.DeleteBlock)
		protected.POST("/blocks/:id/move", h.MoveBlock)
	}

	// Templates
	if h := cfg.TemplateHandler; h != nil {
		protected.GET("/templates", h.List)
		protected.GET("/templates/:id", h.Get)
		protected.GET("/templates/:id/preview", h.Preview)
		protected.POST("/templates/:id/use", h.Use)

		admin := protected.Group("/templates")
		if cfg.AuthMiddleware != nil {
			admin.Use(cfg.AuthMiddleware.RequireRole(services.RoleAdmin))
		}
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
		admin.POST("/:id/thumbnail", h.RenderThumbnail)
	}

	if h := cfg.ThemeHandler; h != nil {
		protected.GET("/themes/colors", h.ListColors)
		protected.GET("/themes/fonts", h.ListFonts)
	}

	if h := cfg.RecordsHandler; h != nil {
		protected.GET("/records/activities", h.ListActivities)
		protected.GET("/records/works", h.ListWorks)
	}

	if h := cfg.UploadHandler; h != nil {
		protected.POST("/uploads/images", h.UploadImages)
	}

	return r
}
