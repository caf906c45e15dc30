package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/fit365-classes/internal/config"
	"github.com/sanosuguru/fit365-classes/internal/domain/class"
	"github.com/sanosuguru/fit365-classes/internal/domain/inquiry"
	"github.com/sanosuguru/fit365-classes/internal/domain/registration"
	"github.com/sanosuguru/fit365-classes/internal/infrastructure/email"
	"github.com/sanosuguru/fit365-classes/internal/pkg/logger"
	"github.com/sanosuguru/fit365-classes/internal/pkg/metrics"
)

// メール種別（メトリクスのラベル）
const (
	KindConfirmation = "confirmation"
	KindAdminNotice  = "admin_notice"
	KindInquiry      = "inquiry"
)

const defaultSendTimeout = 10 * time.Second

// EmailNotifier は予約・問い合わせのメールを組み立てて送信する
type EmailNotifier struct {
	sender  email.Sender
	cfg     config.EmailConfig
	metrics *metrics.Metrics
}

// NewEmailNotifier はEmailNotifierを作成する
func NewEmailNotifier(sender email.Sender, cfg config.EmailConfig, m *metrics.Metrics) *EmailNotifier {
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}
	return &EmailNotifier{sender: sender, cfg: cfg, metrics: m}
}

type registrationView struct {
	Class        *class.Class
	Registration *registration.Registration
	RegisteredAt string
}

func newRegistrationView(c *class.Class, r *registration.Registration) registrationView {
	return registrationView{
		Class:        c,
		Registration: r,
		RegisteredAt: r.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
	}
}

// NotifyRegistrationConfirmed は参加者に予約確認メールを送る
func (n *EmailNotifier) NotifyRegistrationConfirmed(ctx context.Context, c *class.Class, r *registration.Registration) error {
	body, err := render(confirmationTemplate, newRegistrationView(c, r))
	if err != nil {
		return err
	}
	_, err = n.send(ctx, KindConfirmation, email.Message{
		From:    n.cfg.From,
		To:      []string{r.Email},
		Subject: "RSVP Confirmed - " + c.Name,
		HTML:    body,
	})
	return err
}

// NotifyAdminNewRegistration は管理者に新規予約を通知する
// c の残席数は予約後の値であること
func (n *EmailNotifier) NotifyAdminNewRegistration(ctx context.Context, c *class.Class, r *registration.Registration) error {
	if n.cfg.AdminEmail == "" {
		logger.Debug("管理者メールアドレス未設定のため通知をスキップ", zap.String("class_id", c.ID))
		return nil
	}
	body, err := render(adminNoticeTemplate, newRegistrationView(c, r))
	if err != nil {
		return err
	}
	_, err = n.send(ctx, KindAdminNotice, email.Message{
		From:    n.cfg.From,
		To:      []string{n.cfg.AdminEmail},
		Subject: "New RSVP - " + c.Name,
		HTML:    body,
	})
	return err
}

// SendInquiry は問い合わせを運営宛てに転送し、メッセージIDを返す
// 返信先は送信者のアドレス
func (n *EmailNotifier) SendInquiry(ctx context.Context, q *inquiry.Inquiry) (string, error) {
	var (
		tmpl    *template.Template
		subject string
	)
	switch q.Kind {
	case inquiry.KindEvent:
		tmpl = eventInquiryTemplate
		subject = fmt.Sprintf("[FIT365 Event Inquiry] %s - %s", q.EventType, q.Name)
	default:
		tmpl = contactTemplate
		subject = fmt.Sprintf("[FIT365 Contact] %s - %s", q.SubjectText(), q.Name)
	}

	body, err := render(tmpl, q)
	if err != nil {
		return "", err
	}
	return n.send(ctx, KindInquiry, email.Message{
		From:    n.cfg.ContactFrom,
		To:      n.inquiryRecipients(),
		ReplyTo: q.Email,
		Subject: subject,
		HTML:    body,
	})
}

// inquiryRecipients は問い合わせの宛先を返す（未設定なら管理者アドレス）
func (n *EmailNotifier) inquiryRecipients() []string {
	if len(n.cfg.ContactTo) > 0 {
		return n.cfg.ContactTo
	}
	if n.cfg.AdminEmail != "" {
		return []string{n.cfg.AdminEmail}
	}
	return nil
}

func (n *EmailNotifier) send(ctx context.Context, kind string, msg email.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, n.cfg.SendTimeout)
	defer cancel()

	id, err := n.sender.Send(ctx, msg)
	n.metrics.ObserveEmail(kind, err)
	if err != nil {
		return "", fmt.Errorf("%s email: %w", kind, err)
	}
	logger.Debug("メール送信完了", zap.String("kind", kind), zap.String("message_id", id))
	return id, nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
