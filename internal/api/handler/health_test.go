package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Check(t *testing.T) {
	e := NewTestEcho()

	t.Run("ストア確認なし", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodGet, "/health", "")

		require.NoError(t, NewHealthHandler(nil).Check(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
		assert.Contains(t, rec.Body.String(), `"timestamp"`)
		assert.NotContains(t, rec.Body.String(), `"store"`)
	})

	t.Run("ストアに接続できる", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodGet, "/health", "")
		h := NewHealthHandler(func(context.Context) error { return nil })

		require.NoError(t, h.Check(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"store":"ok"`)
	})

	t.Run("ストアに接続できない場合は503", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodGet, "/health", "")
		h := NewHealthHandler(func(context.Context) error { return errors.New("connection refused") })

		require.NoError(t, h.Check(c))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
		assert.Contains(t, rec.Body.String(), `"store":"unavailable"`)
	})
}
