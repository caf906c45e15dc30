package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var (
	corsAllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	corsAllowHeaders = []string{echo.HeaderContentType, echo.HeaderAuthorization}
)

// Preflight は OPTIONS リクエストにルーティング前の段階で 200 を返す
// e.Pre で登録する
func Preflight(allowOrigins []string) echo.MiddlewareFunc {
	methods := strings.Join(corsAllowMethods, ",")
	headers := strings.Join(corsAllowHeaders, ",")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodOptions {
				return next(c)
			}
			h := c.Response().Header()
			h.Add(echo.HeaderVary, echo.HeaderOrigin)
			if origin := allowedOrigin(allowOrigins, c.Request().Header.Get(echo.HeaderOrigin)); origin != "" {
				h.Set(echo.HeaderAccessControlAllowOrigin, origin)
			}
			h.Set(echo.HeaderAccessControlAllowMethods, methods)
			h.Set(echo.HeaderAccessControlAllowHeaders, headers)
			return c.NoContent(http.StatusOK)
		}
	}
}

// CORS は通常リクエストに CORS ヘッダーを付与する
func CORS(allowOrigins []string) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: corsAllowMethods,
		AllowHeaders: corsAllowHeaders,
	})
}

func allowedOrigin(allowOrigins []string, origin string) string {
	if slices.Contains(allowOrigins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(allowOrigins, origin) {
		return origin
	}
	return ""
}
