package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/fit365-classes/internal/domain/inquiry"
)

type ContactHandler struct {
	service ContactServiceInterface
}

func NewContactHandler(s ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: s}
}

// ContactRequest はお問い合わせ・イベント問い合わせフォーム
// type を省略した場合は一般の問い合わせ
type ContactRequest struct {
	Type      string `json:"type" validate:"omitempty,oneof=general event" example:"general"`
	Name      string `json:"name" validate:"max=200"`
	Email     string `json:"email" validate:"max=254"`
	Phone     string `json:"phone" validate:"max=50"`
	Subject   string `json:"subject" validate:"max=200" example:"membership"`
	Message   string `json:"message" validate:"max=5000"`
	EventType string `json:"eventType" validate:"max=100" example:"Birthday"`
	Date      string `json:"date" validate:"max=50"`
	Guests    int    `json:"guests" validate:"gte=0,lte=10000"`
	Website   string `json:"website"`
}

type ContactResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
}

func (r *ContactRequest) toInquiry() *inquiry.Inquiry {
	return &inquiry.Inquiry{
		Kind:      inquiry.Kind(r.Type),
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Subject:   r.Subject,
		Message:   r.Message,
		EventType: r.EventType,
		Date:      r.Date,
		Guests:    r.Guests,
		Website:   r.Website,
	}
}

// Submit godoc
// @Summary 問い合わせを送信
// @Description 問い合わせ内容を運営にメールで転送します
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "問い合わせ内容"
// @Success 200 {object} ContactResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(err)
	}
	q := req.toInquiry()
	// ボット判定は入力検証より先に行う
	if !q.IsSpam() {
		if err := c.Validate(&req); err != nil {
			return err
		}
	}

	id, err := h.service.Submit(c.Request().Context(), q)
	if err != nil {
		return toHTTPError(err, "Failed to process request")
	}
	return c.JSON(http.StatusOK, ContactResponse{Success: true, ID: id})
}
