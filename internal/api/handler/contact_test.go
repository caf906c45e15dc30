package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/fit365-classes/internal/application"
	"github.com/sanosuguru/fit365-classes/internal/domain/inquiry"
)

func TestContactHandler_Submit(t *testing.T) {
	e := NewTestEcho()

	t.Run("一般問い合わせを転送してIDを返す", func(t *testing.T) {
		mockService := new(MockContactService)
		mockService.On("Submit", mock.Anything, &inquiry.Inquiry{
			Name: "Dana", Email: "dana@example.com", Subject: "membership", Message: "hi",
		}).Return("msg-1", nil)
		h := NewContactHandler(mockService)
		c, rec := newJSONContext(e, http.MethodPost, "/contact",
			`{"name":"Dana","email":"dana@example.com","subject":"membership","message":"hi"}`)

		require.NoError(t, h.Submit(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"id":"msg-1"}`, rec.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("イベント問い合わせの項目を渡す", func(t *testing.T) {
		mockService := new(MockContactService)
		mockService.On("Submit", mock.Anything, mock.MatchedBy(func(q *inquiry.Inquiry) bool {
			return q.Kind == inquiry.KindEvent && q.EventType == "Birthday" && q.Guests == 12
		})).Return("msg-2", nil)
		h := NewContactHandler(mockService)
		c, _ := newJSONContext(e, http.MethodPost, "/contact",
			`{"type":"event","name":"Eve","email":"eve@example.com","eventType":"Birthday","date":"2025-07-04","guests":12}`)

		require.NoError(t, h.Submit(c))
		mockService.AssertExpectations(t)
	})

	t.Run("隠しフィールド入力時はIDなしの成功", func(t *testing.T) {
		mockService := new(MockContactService)
		mockService.On("Submit", mock.Anything, mock.Anything).Return("", nil)
		h := NewContactHandler(mockService)
		// 長さ制限を超えていても検証しない
		body := fmt.Sprintf(`{"name":"%s","website":"http://spam.example"}`, strings.Repeat("x", 500))
		c, rec := newJSONContext(e, http.MethodPost, "/contact", body)

		require.NoError(t, h.Submit(c))
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	})

	t.Run("必須項目不足は400", func(t *testing.T) {
		mockService := new(MockContactService)
		mockService.On("Submit", mock.Anything, mock.Anything).Return("", inquiry.ErrMissingRequiredFields)
		h := NewContactHandler(mockService)
		c, _ := newJSONContext(e, http.MethodPost, "/contact", `{"name":"Dana"}`)

		assertHTTPError(t, h.Submit(c), http.StatusBadRequest, "Missing required fields")
	})

	t.Run("未知の種類は400", func(t *testing.T) {
		mockService := new(MockContactService)
		h := NewContactHandler(mockService)
		c, _ := newJSONContext(e, http.MethodPost, "/contact", `{"type":"party","name":"Dana"}`)

		assertHTTPError(t, h.Submit(c), http.StatusBadRequest, "type must be one of: general event")
		mockService.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("送信失敗は500", func(t *testing.T) {
		mockService := new(MockContactService)
		mockService.On("Submit", mock.Anything, mock.Anything).
			Return("", fmt.Errorf("%w: %w", application.ErrInquiryDelivery, errors.New("provider down")))
		h := NewContactHandler(mockService)
		c, _ := newJSONContext(e, http.MethodPost, "/contact",
			`{"name":"Dana","email":"dana@example.com","subject":"other","message":"hi"}`)

		assertHTTPError(t, h.Submit(c), http.StatusInternalServerError, "Failed to send message")
	})
}
