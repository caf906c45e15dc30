package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/fit365-classes/internal/application"
	"github.com/sanosuguru/fit365-classes/internal/domain/class"
	"github.com/sanosuguru/fit365-classes/internal/domain/inquiry"
	"github.com/sanosuguru/fit365-classes/internal/domain/registration"
)

// errorMappings はドメインエラーとHTTPレスポンスの対応
var errorMappings = []struct {
	err     error
	code    int
	message string
}{
	{class.ErrMissingRequiredFields, http.StatusBadRequest, "Missing required fields"},
	{registration.ErrMissingRequiredFields, http.StatusBadRequest, "Missing required fields"},
	{inquiry.ErrMissingRequiredFields, http.StatusBadRequest, "Missing required fields"},
	{registration.ErrInvalidEmail, http.StatusBadRequest, "Invalid email format"},
	{inquiry.ErrInvalidEmail, http.StatusBadRequest, "Invalid email format"},
	{inquiry.ErrUnknownKind, http.StatusBadRequest, "Unknown inquiry type"},
	{class.ErrInvalidCapacity, http.StatusBadRequest, "Capacity must be a non-negative integer"},
	{class.ErrInvalidSpotsRemaining, http.StatusBadRequest, "Spots remaining must be between 0 and capacity"},
	{class.ErrClassFull, http.StatusBadRequest, "This class is full"},
	{registration.ErrAlreadyRegistered, http.StatusBadRequest, "You have already registered for this class"},
	{application.ErrPasswordRequired, http.StatusBadRequest, "Password is required"},
	{application.ErrInvalidPassword, http.StatusUnauthorized, "Invalid password"},
	{application.ErrInvalidToken, http.StatusUnauthorized, "Unauthorized"},
	{class.ErrClassNotFound, http.StatusNotFound, "Class not found"},
	{application.ErrClassBusy, http.StatusServiceUnavailable, "Class is busy, please try again"},
	{application.ErrInquiryDelivery, http.StatusInternalServerError, "Failed to send message"},
}

// toHTTPError はサービスのエラーをHTTPエラーに変換する
// 対応のないエラーは fallback メッセージの500とし、元のエラーは Internal に残す
func toHTTPError(err error, fallback string) *echo.HTTPError {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return echo.NewHTTPError(m.code, m.message).SetInternal(err)
		}
	}
	return echo.NewHTTPError(http.StatusInternalServerError, fallback).SetInternal(err)
}

func invalidBody(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
}
