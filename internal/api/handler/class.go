package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type ClassHandler struct {
	service ClassServiceInterface
}

func NewClassHandler(s ClassServiceInterface) *ClassHandler {
	return &ClassHandler{service: s}
}

type ClassListResponse struct {
	Classes []ClassResponse `json:"classes"`
}

// List godoc
// @Summary 公開中のクラス一覧
// @Description 公開中のクラスを日付の昇順で返します
// @Tags classes
// @Produce json
// @Success 200 {object} ClassListResponse
// @Failure 500 {object} map[string]string
// @Router /classes [get]
func (h *ClassHandler) List(c echo.Context) error {
	classes, err := h.service.ListActive(c.Request().Context())
	if err != nil {
		return toHTTPError(err, "Failed to fetch classes")
	}
	resp := make([]ClassResponse, len(classes))
	for i, cl := range classes {
		resp[i] = toClassResponse(cl)
	}
	return c.JSON(http.StatusOK, ClassListResponse{Classes: resp})
}
