package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ErrNotConfigured はAPIキーが未設定の場合に返される
var ErrNotConfigured = errors.New("email provider is not configured")

// Message は送信するメール1通を表す
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Sender はメール送信のインターフェース
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// emailsAPI はResendクライアントのうち使用する部分
type emailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendSender はResendを使ったSender実装
type ResendSender struct {
	emails emailsAPI
}

// NewResendSender はAPIキーからResendSenderを作成する
// キーが空の場合は送信時にErrNotConfiguredを返す
func NewResendSender(apiKey string) *ResendSender {
	if apiKey == "" {
		return &ResendSender{}
	}
	return &ResendSender{emails: resend.NewClient(apiKey).Emails}
}

// Send はメールを送信し、プロバイダのメッセージIDを返す
func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	if s.emails == nil {
		return "", ErrNotConfigured
	}
	if len(msg.To) == 0 {
		return "", fmt.Errorf("send email %q: no recipients", msg.Subject)
	}

	resp, err := s.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("send email %q: %w", msg.Subject, err)
	}
	return resp.Id, nil
}

// インターフェースを満たしているか確認
var _ Sender = (*ResendSender)(nil)
