package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/fit365-classes/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error string `json:"error"`
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
// クライアントには message だけを返し、元のエラーはログに残す
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		code    = http.StatusInternalServerError
		message = "Internal server error"
	)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg, isString := he.Message.(string)
		switch {
		case code == http.StatusMethodNotAllowed:
			message = "Method not allowed"
		case code == http.StatusNotFound && msg == http.StatusText(http.StatusNotFound):
			// ルーティングの404
			message = "Not found"
		case isString:
			message = msg
		default:
			message = http.StatusText(code)
		}
	}

	// エラーログを出力（5xx エラーの場合）
	if code >= 500 {
		cause := err
		if he != nil && he.Internal != nil {
			cause = he.Internal
		}
		logger.FromContext(c.Request().Context()).Error("サーバーエラー",
			zap.Int("status", code),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(cause),
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ErrorResponse{Error: message})
	}
	if err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
