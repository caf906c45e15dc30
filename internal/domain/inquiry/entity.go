package inquiry

import (
	"strings"

	"github.com/sanosuguru/fit365-classes/internal/domain/registration"
)

// Kind は問い合わせの種類
type Kind string

const (
	KindGeneral Kind = "general"
	KindEvent   Kind = "event"
)

// subjectLabels は問い合わせフォームの件名コードと表示名の対応
var subjectLabels = map[string]string{
	"membership": "Membership Inquiry",
	"programs":   "Programs & Classes",
	"events":     "Event Booking",
	"general":    "General Question",
	"other":      "Other",
}

// Inquiry はお問い合わせ・イベント問い合わせフォームの送信内容を表す
type Inquiry struct {
	Kind    Kind
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string

	// イベント問い合わせ用
	EventType string
	Date      string
	Guests    int

	// ボット検出用の隠しフィールド
	Website string
}

// IsSpam は隠しフィールドが入力されているかを返す
func (i *Inquiry) IsSpam() bool {
	return strings.TrimSpace(i.Website) != ""
}

// Validate は種類ごとの必須項目とメール形式を検証する
func (i *Inquiry) Validate() error {
	if i.Kind == "" {
		i.Kind = KindGeneral
	}
	if strings.TrimSpace(i.Name) == "" || strings.TrimSpace(i.Email) == "" {
		return ErrMissingRequiredFields
	}
	switch i.Kind {
	case KindGeneral:
		if strings.TrimSpace(i.Subject) == "" || strings.TrimSpace(i.Message) == "" {
			return ErrMissingRequiredFields
		}
	case KindEvent:
		if strings.TrimSpace(i.EventType) == "" || strings.TrimSpace(i.Date) == "" || i.Guests <= 0 {
			return ErrMissingRequiredFields
		}
	default:
		return ErrUnknownKind
	}
	if !registration.IsValidEmail(strings.TrimSpace(i.Email)) {
		return ErrInvalidEmail
	}
	return nil
}

// SubjectText は件名コードを表示名に変換する。未知のコードはそのまま返す
func (i *Inquiry) SubjectText() string {
	if label, ok := subjectLabels[i.Subject]; ok {
		return label
	}
	return i.Subject
}
