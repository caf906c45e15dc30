package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/fit365-classes/internal/pkg/logger"
)

const storeCheckTimeout = 2 * time.Second

// HealthHandler はヘルスチェックハンドラー
type HealthHandler struct {
	checkStore StoreChecker
}

// NewHealthHandler はHealthHandlerを作成する
// checkStore が nil の場合はストアを確認しない
func NewHealthHandler(checkStore StoreChecker) *HealthHandler {
	return &HealthHandler{checkStore: checkStore}
}

// HealthResponse はヘルスチェックのレスポンス
type HealthResponse struct {
	Status    string `json:"status"`
	Store     string `json:"store,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Check はヘルスチェックを行う
// @Summary ヘルスチェック
// @Description アプリケーションとストアの疎通を確認する
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Check(c echo.Context) error {
	resp := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if h.checkStore == nil {
		return c.JSON(http.StatusOK, resp)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), storeCheckTimeout)
	defer cancel()
	if err := h.checkStore(ctx); err != nil {
		logger.Warn("ストア疎通確認に失敗", zap.Error(err))
		resp.Status = "degraded"
		resp.Store = "unavailable"
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	resp.Store = "ok"
	return c.JSON(http.StatusOK, resp)
}
