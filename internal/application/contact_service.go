package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sanosuguru/fit365-classes/internal/domain/inquiry"
	"github.com/sanosuguru/fit365-classes/internal/pkg/logger"
)

// InquirySender は問い合わせを運営へ転送する
type InquirySender interface {
	SendInquiry(ctx context.Context, q *inquiry.Inquiry) (string, error)
}

// ContactService はお問い合わせ・イベント問い合わせフォームを扱う
// 送信内容は保存しない
type ContactService struct {
	sender InquirySender
}

func NewContactService(sender InquirySender) *ContactService {
	return &ContactService{sender: sender}
}

// Submit は問い合わせを検証して転送し、メッセージIDを返す
// 隠しフィールドが入力されている場合は送信せずに成功として扱う
func (s *ContactService) Submit(ctx context.Context, q *inquiry.Inquiry) (string, error) {
	if q.IsSpam() {
		logger.FromContext(ctx).Info("スパムと判定された問い合わせを破棄", zap.String("kind", string(q.Kind)))
		return "", nil
	}
	if err := q.Validate(); err != nil {
		return "", err
	}

	id, err := s.sender.SendInquiry(ctx, q)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInquiryDelivery, err)
	}
	return id, nil
}
