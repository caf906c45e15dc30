package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/fit365-classes/internal/config"
	"github.com/sanosuguru/fit365-classes/internal/domain/class"
	"github.com/sanosuguru/fit365-classes/internal/domain/inquiry"
	"github.com/sanosuguru/fit365-classes/internal/domain/registration"
	"github.com/sanosuguru/fit365-classes/internal/infrastructure/email"
	"github.com/sanosuguru/fit365-classes/internal/pkg/metrics"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg email.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

// sentMessage は最後に送信されたメッセージを返す
func sentMessage(t *testing.T, s *MockSender) email.Message {
	t.Helper()
	require.NotEmpty(t, s.Calls)
	return s.Calls[len(s.Calls)-1].Arguments.Get(1).(email.Message)
}

func testEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		From:        "FIT365 <noreply@fit365.com>",
		AdminEmail:  "admin@fit365.com",
		ContactFrom: "FIT365 Contact <contact@fit365.com>",
		ContactTo:   []string{"front@fit365.com"},
		SendTimeout: time.Second,
	}
}

func testClassAndRegistration() (*class.Class, *registration.Registration) {
	c := &class.Class{
		ID: "class-1", Name: "Yoga", Date: "2025-06-01", Time: "9:00 AM",
		Capacity: 2, SpotsRemaining: 1, IsActive: true,
	}
	r := &registration.Registration{
		ID: "class-1-1", ClassID: "class-1",
		FirstName: "Alice", LastName: "Smith", Email: "alice@example.com",
		CreatedAt: time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC),
	}
	return c, r
}

func TestEmailNotifier_NotifyRegistrationConfirmed(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return("msg-1", nil)
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)
	n := NewEmailNotifier(sender, testEmailConfig(), m)
	c, r := testClassAndRegistration()

	require.NoError(t, n.NotifyRegistrationConfirmed(context.Background(), c, r))

	msg := sentMessage(t, sender)
	assert.Equal(t, "FIT365 <noreply@fit365.com>", msg.From)
	assert.Equal(t, []string{"alice@example.com"}, msg.To)
	assert.Equal(t, "RSVP Confirmed - Yoga", msg.Subject)
	assert.Contains(t, msg.HTML, "Hi Alice,")
	assert.Contains(t, msg.HTML, "2025-06-01")
	assert.Contains(t, msg.HTML, "9:00 AM")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.EmailsSentTotal.WithLabelValues(KindConfirmation, "sent")))
}

func TestEmailNotifier_NotifyAdminNewRegistration(t *testing.T) {
	t.Run("残席数と登録者情報を含む", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return("msg-2", nil)
		n := NewEmailNotifier(sender, testEmailConfig(), nil)
		c, r := testClassAndRegistration()

		require.NoError(t, n.NotifyAdminNewRegistration(context.Background(), c, r))

		msg := sentMessage(t, sender)
		assert.Equal(t, []string{"admin@fit365.com"}, msg.To)
		assert.Equal(t, "New RSVP - Yoga", msg.Subject)
		assert.Contains(t, msg.HTML, "Alice Smith")
		assert.Contains(t, msg.HTML, "alice@example.com")
		assert.Contains(t, msg.HTML, "1 / 2")
		assert.Contains(t, msg.HTML, "2025-05-20 08:00:00 UTC")
	})

	t.Run("管理者アドレス未設定なら送信しない", func(t *testing.T) {
		sender := new(MockSender)
		cfg := testEmailConfig()
		cfg.AdminEmail = ""
		n := NewEmailNotifier(sender, cfg, nil)
		c, r := testClassAndRegistration()

		require.NoError(t, n.NotifyAdminNewRegistration(context.Background(), c, r))
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("送信失敗はエラーを返しfailedとして数える", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return("", errors.New("provider down"))
		m := metrics.NewWithRegistry(prometheus.NewRegistry())
		n := NewEmailNotifier(sender, testEmailConfig(), m)
		c, r := testClassAndRegistration()

		err := n.NotifyAdminNewRegistration(context.Background(), c, r)

		assert.Error(t, err)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.EmailsSentTotal.WithLabelValues(KindAdminNotice, "failed")))
	})
}

func TestEmailNotifier_SendInquiry(t *testing.T) {
	t.Run("一般問い合わせは件名を表示名に変換する", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return("msg-3", nil)
		n := NewEmailNotifier(sender, testEmailConfig(), nil)

		id, err := n.SendInquiry(context.Background(), &inquiry.Inquiry{
			Kind: inquiry.KindGeneral, Name: "Dana", Email: "dana@example.com",
			Subject: "membership", Message: "line one\nline two",
		})

		require.NoError(t, err)
		assert.Equal(t, "msg-3", id)
		msg := sentMessage(t, sender)
		assert.Equal(t, "FIT365 Contact <contact@fit365.com>", msg.From)
		assert.Equal(t, []string{"front@fit365.com"}, msg.To)
		assert.Equal(t, "dana@example.com", msg.ReplyTo)
		assert.Equal(t, "[FIT365 Contact] Membership Inquiry - Dana", msg.Subject)
		assert.Contains(t, msg.HTML, "line one<br>line two")
		assert.Contains(t, msg.HTML, "Not provided")
	})

	t.Run("イベント問い合わせの件名と本文", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return("msg-4", nil)
		n := NewEmailNotifier(sender, testEmailConfig(), nil)

		_, err := n.SendInquiry(context.Background(), &inquiry.Inquiry{
			Kind: inquiry.KindEvent, Name: "Eve", Email: "eve@example.com", Phone: "555-0100",
			EventType: "Birthday", Date: "2025-07-04", Guests: 12,
		})

		require.NoError(t, err)
		msg := sentMessage(t, sender)
		assert.Equal(t, "[FIT365 Event Inquiry] Birthday - Eve", msg.Subject)
		assert.Contains(t, msg.HTML, "555-0100")
		assert.Contains(t, msg.HTML, "<strong>Guests:</strong> 12")
	})

	t.Run("入力値はHTMLエスケープされる", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return("msg-5", nil)
		n := NewEmailNotifier(sender, testEmailConfig(), nil)

		_, err := n.SendInquiry(context.Background(), &inquiry.Inquiry{
			Kind: inquiry.KindGeneral, Name: "<script>alert(1)</script>", Email: "x@example.com",
			Subject: "other", Message: "<b>hi</b>",
		})

		require.NoError(t, err)
		msg := sentMessage(t, sender)
		assert.NotContains(t, msg.HTML, "<script>")
		assert.Contains(t, msg.HTML, "&lt;script&gt;")
		assert.Contains(t, msg.HTML, "&lt;b&gt;hi&lt;/b&gt;")
	})

	t.Run("宛先未設定なら管理者アドレスに送る", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return("msg-6", nil)
		cfg := testEmailConfig()
		cfg.ContactTo = nil
		n := NewEmailNotifier(sender, cfg, nil)

		_, err := n.SendInquiry(context.Background(), &inquiry.Inquiry{
			Kind: inquiry.KindGeneral, Name: "F", Email: "f@example.com", Subject: "general", Message: "m",
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"admin@fit365.com"}, sentMessage(t, sender).To)
	})
}
