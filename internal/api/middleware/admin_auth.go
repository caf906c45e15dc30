package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// TokenVerifier は管理者トークンを検証する
type TokenVerifier interface {
	Verify(token string) error
}

// AdminAuth は Authorization: Bearer <token> を検証するミドルウェア
// ヘッダーなし・形式不正・検証失敗はすべて401を返す
func AdminAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(token string, c echo.Context) (bool, error) {
			if err := verifier.Verify(token); err != nil {
				return false, err
			}
			return true, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized").SetInternal(err)
		},
	})
}
