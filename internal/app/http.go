package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/http"
	httpH "github.com/yungbote/portfolio-backend/internal/http/handlers"
	httpMW "github.com/yungbote/portfolio-backend/internal/http/middleware"
	"github.com/yungbote/portfolio-backend/internal/observability"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Portfolio *httpH.PortfolioHandler
	Editor    *httpH.EditorHandler
	Template  *httpH.TemplateHandler
	Theme     *httpH.ThemeHandler
	Records   *httpH.RecordsHandler
	Upload    *httpH.UploadHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, s Services) Handlers {
	log.Info("Wiring handlers...")
	h := Handlers{
		Health:    httpH.NewHealthHandler(db),
		Portfolio: httpH.NewPortfolioHandler(log, s.Portfolios, s.Names),
		Editor:    httpH.NewEditorHandler(log, s.Editor),
		Template:  httpH.NewTemplateHandler(log, s.Templates),
		Theme:     httpH.NewThemeHandler(s.Themes),
		Records:   httpH.NewRecordsHandler(s.References),
	}
	if s.Uploads != nil {
		h.Upload = httpH.NewUploadHandler(log, s.Uploads)
	}
	return h
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, s.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, mw Middleware) *http.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewServer(http.RouterConfig{
		Log:              log,
		ServiceName:      serviceName,
		CORSOrigins:      cfg.CORSOrigins,
		Metrics:          metrics,
		AuthMiddleware:   mw.Auth,
		PortfolioHandler: handlers.Portfolio,
		EditorHandler:    handlers.Editor,
		TemplateHandler:  handlers.Template,
		ThemeHandler:     handlers.Theme,
		RecordsHandler:   handlers.Records,
		UploadHandler:    handlers.Upload,
		HealthHandler:    handlers.Health,
	})
}
