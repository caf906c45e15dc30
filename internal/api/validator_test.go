package api

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"firstName" validate:"max=5"`
	Kind  string `json:"type" validate:"omitempty,oneof=general event"`
	Count int    `json:"guests" validate:"gte=0"`
}

func TestCustomValidator_Validate(t *testing.T) {
	v := NewValidator()

	t.Run("正常な値はエラーなし", func(t *testing.T) {
		assert.NoError(t, v.Validate(&sampleRequest{Name: "Alice", Kind: "event", Count: 3}))
	})

	tests := []struct {
		name    string
		req     sampleRequest
		wantMsg string
	}{
		{"長すぎる値", sampleRequest{Name: "Alexander"}, "firstName must be at most 5 characters"},
		{"列挙外の値", sampleRequest{Kind: "party"}, "type must be one of: general event"},
		{"負の数", sampleRequest{Count: -1}, "guests must be at least 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)

			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusBadRequest, he.Code)
			assert.Equal(t, tt.wantMsg, he.Message)
		})
	}
}
