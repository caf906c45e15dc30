package registration

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// emailPattern は local@domain.tld 形式の簡易チェック
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Registration は1人の参加者のクラス予約（RSVP）を表す
type Registration struct {
	ID        string
	ClassID   string
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
}

// NewRegistration は新しい予約を作成する
func NewRegistration(classID, firstName, lastName, email string, now time.Time) *Registration {
	return &Registration{
		ID:        NewID(classID, now),
		ClassID:   classID,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     strings.TrimSpace(email),
		CreatedAt: now.UTC(),
	}
}

// NewID はクラスIDと作成時刻から予約IDを生成する
func NewID(classID string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", classID, now.UnixMilli(), uuid.NewString()[:8])
}

// Validate は必須項目、メール形式の順に検証する
func (r *Registration) Validate() error {
	if r.ClassID == "" || r.FirstName == "" || r.LastName == "" || r.Email == "" {
		return ErrMissingRequiredFields
	}
	if !IsValidEmail(r.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// FullName は氏名を返す
func (r *Registration) FullName() string {
	return r.FirstName + " " + r.LastName
}

// HasEmail は大文字小文字を区別せずメールアドレスを比較する
func (r *Registration) HasEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(r.Email), strings.TrimSpace(email))
}

// IsValidEmail はメールアドレスの形式を確認する
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// FindByEmail は同じメールアドレスの予約を探す
func FindByEmail(registrations []*Registration, email string) (*Registration, bool) {
	for _, r := range registrations {
		if r.HasEmail(email) {
			return r, true
		}
	}
	return nil, false
}

// CompareByCreatedAt は作成日時の昇順で比較する
func CompareByCreatedAt(a, b *Registration) int {
	return a.CreatedAt.Compare(b.CreatedAt)
}
