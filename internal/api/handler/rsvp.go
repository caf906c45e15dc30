package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/fit365-classes/internal/application"
)

type RSVPHandler struct {
	service RSVPServiceInterface
}

func NewRSVPHandler(s RSVPServiceInterface) *RSVPHandler {
	return &RSVPHandler{service: s}
}

type CreateRSVPRequest struct {
	ClassID   string `json:"classId" validate:"max=100" example:"class-1748736000000-1a2b3c4d"`
	FirstName string `json:"firstName" validate:"max=100" example:"Alice"`
	LastName  string `json:"lastName" validate:"max=100" example:"Smith"`
	Email     string `json:"email" validate:"max=254" example:"alice@example.com"`
}

type RSVPResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	SpotsRemaining int    `json:"spotsRemaining" example:"11"`
}

// Create godoc
// @Summary クラスを予約
// @Description 残席があり、同じメールアドレスの予約がなければ予約します
// @Tags rsvp
// @Accept json
// @Produce json
// @Param request body CreateRSVPRequest true "予約情報"
// @Success 200 {object} RSVPResponse
// @Failure 400 {object} map[string]string "入力不正・満席・重複"
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string "同じクラスを処理中"
// @Router /rsvp [post]
func (h *RSVPHandler) Create(c echo.Context) error {
	var req CreateRSVPRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Book(c.Request().Context(), application.BookInput{
		ClassID:   req.ClassID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return toHTTPError(err, "Failed to process RSVP")
	}
	return c.JSON(http.StatusOK, RSVPResponse{
		Success:        true,
		Message:        "RSVP submitted successfully",
		SpotsRemaining: result.SpotsRemaining,
	})
}
