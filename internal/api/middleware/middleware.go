package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sanosuguru/fit365-classes/internal/config"
)

// リクエストボディの上限
const bodyLimit = "1M"

// SetupMiddleware は共通ミドルウェアを設定する
func SetupMiddleware(e *echo.Echo, cfg config.ServerConfig) {
	// プリフライトはルーティングより前に処理する
	e.Pre(Preflight(cfg.AllowOrigins))

	e.Use(RequestIDMiddleware())
	e.Use(RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(CORS(cfg.AllowOrigins))
}
