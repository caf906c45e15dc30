package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sanosuguru/fit365-classes/internal/api"
	"github.com/sanosuguru/fit365-classes/internal/api/handler"
	"github.com/sanosuguru/fit365-classes/internal/api/middleware"
	"github.com/sanosuguru/fit365-classes/internal/config"
	"github.com/sanosuguru/fit365-classes/internal/pkg/metrics"
)

// Handlers はルーティング対象のハンドラー
type Handlers struct {
	Class   *handler.ClassHandler
	RSVP    *handler.RSVPHandler
	Contact *handler.ContactHandler
	Admin   *handler.AdminHandler
	Health  *handler.HealthHandler
}

// New はミドルウェアとルートを設定したEchoインスタンスを作成する
// m が nil の場合は HTTP メトリクスを収集しない
func New(cfg *config.Config, h Handlers, verifier middleware.TokenVerifier, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler

	middleware.SetupMiddleware(e, cfg.Server)
	if m != nil {
		e.Use(middleware.PrometheusMiddleware(m))
	}

	e.GET("/health", h.Health.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), middleware.MetricsBasicAuth(cfg.Metrics))

	e.GET("/classes", h.Class.List)
	e.POST("/rsvp", h.RSVP.Create)
	e.POST("/contact", h.Contact.Submit)

	e.POST("/admin/login", h.Admin.Login)

	requireAdmin := middleware.AdminAuth(verifier)
	e.GET("/admin/classes", h.Admin.ListClasses, requireAdmin)
	e.POST("/admin/classes", h.Admin.CreateClass, requireAdmin)
	// ID なしは 400 を返す
	for _, path := range []string{"/admin/class", "/admin/class/:id"} {
		e.GET(path, h.Admin.GetClass, requireAdmin)
		e.PUT(path, h.Admin.UpdateClass, requireAdmin)
		e.DELETE(path, h.Admin.DeleteClass, requireAdmin)
	}

	return e
}
