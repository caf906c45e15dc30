package handler

import (
	"github.com/sanosuguru/fit365-classes/internal/application"
	"github.com/sanosuguru/fit365-classes/internal/domain/class"
	"github.com/sanosuguru/fit365-classes/internal/domain/registration"
)

// isoMillis はミリ秒付きUTCのISO-8601形式
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// ClassResponse は公開一覧のクラス
type ClassResponse struct {
	ID             string `json:"id" example:"class-1748736000000-1a2b3c4d"`
	Name           string `json:"name" example:"Yoga"`
	Date           string `json:"date" example:"2025-06-01"`
	Time           string `json:"time" example:"9:00 AM"`
	Description    string `json:"description"`
	Capacity       int    `json:"capacity" example:"20"`
	SpotsRemaining int    `json:"spotsRemaining" example:"12"`
}

// AdminClassResponse は管理画面用のクラス（公開状態を含む）
type AdminClassResponse struct {
	ClassResponse
	IsActive bool `json:"isActive"`
}

type AdminClassSummaryResponse struct {
	AdminClassResponse
	RSVPCount int `json:"rsvpCount"`
}

type ClassDetailResponse struct {
	AdminClassResponse
	RSVPs []RegistrationResponse `json:"rsvps"`
}

// ClassMutationResponse は作成・更新の結果
type ClassMutationResponse struct {
	Success bool `json:"success"`
	AdminClassResponse
}

type RegistrationResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func toClassResponse(c *class.Class) ClassResponse {
	return ClassResponse{
		ID: c.ID, Name: c.Name, Date: c.Date, Time: c.Time,
		Description: c.Description, Capacity: c.Capacity, SpotsRemaining: c.SpotsRemaining,
	}
}

func toAdminClassResponse(c *class.Class) AdminClassResponse {
	return AdminClassResponse{ClassResponse: toClassResponse(c), IsActive: c.IsActive}
}

func toClassSummaryResponse(s application.ClassSummary) AdminClassSummaryResponse {
	return AdminClassSummaryResponse{
		AdminClassResponse: toAdminClassResponse(s.Class),
		RSVPCount:          s.RegistrationCount,
	}
}

func toClassDetailResponse(d *application.ClassDetail) ClassDetailResponse {
	rsvps := make([]RegistrationResponse, len(d.Registrations))
	for i, r := range d.Registrations {
		rsvps[i] = toRegistrationResponse(r)
	}
	return ClassDetailResponse{AdminClassResponse: toAdminClassResponse(d.Class), RSVPs: rsvps}
}

func toRegistrationResponse(r *registration.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID: r.ID, FirstName: r.FirstName, LastName: r.LastName, Email: r.Email,
		CreatedAt: r.CreatedAt.UTC().Format(isoMillis),
	}
}
