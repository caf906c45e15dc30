package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/fit365-classes/internal/application"
)

const adminFailure = "Operation failed"

type AdminHandler struct {
	classes  ClassServiceInterface
	sessions SessionMinter
}

func NewAdminHandler(cs ClassServiceInterface, sm SessionMinter) *AdminHandler {
	return &AdminHandler{classes: cs, sessions: sm}
}

type LoginRequest struct {
	Password string `json:"password" validate:"max=256"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	// ミリ秒
	ExpiresIn int64 `json:"expiresIn" example:"86400000"`
}

type AdminClassListResponse struct {
	Classes []AdminClassSummaryResponse `json:"classes"`
}

type CreateClassRequest struct {
	Name        string `json:"name" validate:"max=200" example:"Yoga"`
	Date        string `json:"date" validate:"max=50" example:"2025-06-01"`
	Time        string `json:"time" validate:"max=50" example:"9:00 AM"`
	Description string `json:"description" validate:"max=2000"`
	Capacity    *int   `json:"capacity" example:"20"`
	IsActive    *bool  `json:"isActive"`
}

// UpdateClassRequest は省略したフィールドを変更しない
type UpdateClassRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Date        *string `json:"date" validate:"omitempty,max=50"`
	Time        *string `json:"time" validate:"omitempty,max=50"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Capacity    *int    `json:"capacity"`
	IsActive    *bool   `json:"isActive"`
}

// Login godoc
// @Summary 管理者ログイン
// @Description 共有パスワードを確認して24時間有効なトークンを発行します
// @Tags admin
// @Accept json
// @Produce json
// @Param request body LoginRequest true "パスワード"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /admin/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, ttl, err := h.sessions.Mint(req.Password)
	if err != nil {
		return toHTTPError(err, "Login failed")
	}
	return c.JSON(http.StatusOK, LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: ttl.Milliseconds(),
	})
}

// ListClasses godoc
// @Summary 全クラス一覧（管理者）
// @Description 非公開を含む全クラスを予約数付きで返します
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AdminClassListResponse
// @Failure 401 {object} map[string]string
// @Router /admin/classes [get]
func (h *AdminHandler) ListClasses(c echo.Context) error {
	summaries, err := h.classes.ListAll(c.Request().Context())
	if err != nil {
		return toHTTPError(err, adminFailure)
	}
	resp := make([]AdminClassSummaryResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = toClassSummaryResponse(s)
	}
	return c.JSON(http.StatusOK, AdminClassListResponse{Classes: resp})
}

// CreateClass godoc
// @Summary クラスを作成（管理者）
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateClassRequest true "クラス情報"
// @Success 201 {object} ClassMutationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /admin/classes [post]
func (h *AdminHandler) CreateClass(c echo.Context) error {
	var req CreateClassRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.classes.CreateClass(c.Request().Context(), application.CreateClassInput{
		Name:        req.Name,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
		Capacity:    req.Capacity,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return toHTTPError(err, adminFailure)
	}
	return c.JSON(http.StatusCreated, ClassMutationResponse{
		Success:            true,
		AdminClassResponse: toAdminClassResponse(created),
	})
}

// GetClass godoc
// @Summary クラス詳細と予約一覧（管理者）
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "クラスID"
// @Success 200 {object} ClassDetailResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/class/{id} [get]
func (h *AdminHandler) GetClass(c echo.Context) error {
	id, err := classIDParam(c)
	if err != nil {
		return err
	}
	detail, err := h.classes.GetClass(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err, adminFailure)
	}
	return c.JSON(http.StatusOK, toClassDetailResponse(detail))
}

// UpdateClass godoc
// @Summary クラスを更新（管理者）
// @Description 定員を変更した場合は予約済み席数を保って残席を再計算します
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "クラスID"
// @Param request body UpdateClassRequest true "更新内容"
// @Success 200 {object} ClassMutationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/class/{id} [put]
func (h *AdminHandler) UpdateClass(c echo.Context) error {
	id, err := classIDParam(c)
	if err != nil {
		return err
	}
	var req UpdateClassRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.classes.UpdateClass(c.Request().Context(), application.UpdateClassInput{
		ID:          id,
		Name:        req.Name,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
		Capacity:    req.Capacity,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return toHTTPError(err, adminFailure)
	}
	return c.JSON(http.StatusOK, ClassMutationResponse{
		Success:            true,
		AdminClassResponse: toAdminClassResponse(updated),
	})
}

// DeleteClass godoc
// @Summary クラスを削除（管理者）
// @Description クラスとその予約をすべて削除します
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "クラスID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/class/{id} [delete]
func (h *AdminHandler) DeleteClass(c echo.Context) error {
	id, err := classIDParam(c)
	if err != nil {
		return err
	}
	if err := h.classes.DeleteClass(c.Request().Context(), id); err != nil {
		return toHTTPError(err, adminFailure)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Class deleted successfully"})
}

func classIDParam(c echo.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Class ID is required")
	}
	return id, nil
}
