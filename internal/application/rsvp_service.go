package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/fit365-classes/internal/domain/class"
	"github.com/sanosuguru/fit365-classes/internal/domain/registration"
	redislock "github.com/sanosuguru/fit365-classes/internal/infrastructure/redis"
	"github.com/sanosuguru/fit365-classes/internal/pkg/logger"
	"github.com/sanosuguru/fit365-classes/internal/pkg/metrics"
)

// RegistrationNotifier は予約成立時のメール通知
type RegistrationNotifier interface {
	NotifyRegistrationConfirmed(ctx context.Context, c *class.Class, r *registration.Registration) error
	NotifyAdminNewRegistration(ctx context.Context, c *class.Class, r *registration.Registration) error
}

// RSVPService はクラスの予約（RSVP）を扱う
type RSVPService struct {
	classRepo        class.Repository
	registrationRepo registration.Repository
	notifier         RegistrationNotifier
	locker           classLocker
	metrics          *metrics.Metrics
	now              func() time.Time
	pending          sync.WaitGroup
}

func NewRSVPService(cr class.Repository, rr registration.Repository, n RegistrationNotifier, lm *redislock.LockManager, m *metrics.Metrics) *RSVPService {
	return &RSVPService{
		classRepo:        cr,
		registrationRepo: rr,
		notifier:         n,
		locker:           classLocker{manager: lm, metrics: m},
		metrics:          m,
		now:              time.Now,
	}
}

type BookInput struct {
	ClassID   string
	FirstName string
	LastName  string
	Email     string
}

// BookingResult は予約結果と予約後の残席数
type BookingResult struct {
	Registration   *registration.Registration
	SpotsRemaining int
}

// Book はクラスを予約する
// 検証順: 必須項目 → メール形式 → クラス存在 → 満席 → 重複
// メール通知の失敗は予約結果に影響しない
func (s *RSVPService) Book(ctx context.Context, input BookInput) (*BookingResult, error) {
	r := registration.NewRegistration(input.ClassID, input.FirstName, input.LastName, input.Email, s.now())
	if err := r.Validate(); err != nil {
		s.metrics.ObserveRSVP(rsvpStatus(err))
		return nil, err
	}

	var booked *class.Class
	err := s.locker.withLock(ctx, r.ClassID, func() error {
		c, err := s.reserve(ctx, r)
		booked = c
		return err
	})
	s.metrics.ObserveRSVP(rsvpStatus(err))
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("RSVP作成",
		zap.String("class_id", booked.ID),
		zap.String("registration_id", r.ID),
		zap.Int("spots_remaining", booked.SpotsRemaining),
	)
	notifyCtx := context.WithoutCancel(ctx)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.notify(notifyCtx, booked, r)
	}()

	return &BookingResult{Registration: r, SpotsRemaining: booked.SpotsRemaining}, nil
}

// Wait は送信中の通知メールがすべて終わるまで待つ
func (s *RSVPService) Wait() {
	s.pending.Wait()
}

// reserve は残席を確保してから予約を保存する
// 保存に失敗した場合は確保した席を戻す
func (s *RSVPService) reserve(ctx context.Context, r *registration.Registration) (*class.Class, error) {
	c, err := s.classRepo.GetByID(ctx, r.ClassID)
	if err != nil {
		return nil, err
	}
	if c.IsFull() {
		return nil, class.ErrClassFull
	}

	existing, err := s.registrationRepo.ListByClassID(ctx, r.ClassID)
	if err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	if _, dup := registration.FindByEmail(existing, r.Email); dup {
		return nil, registration.ErrAlreadyRegistered
	}

	// 残席が1以上の場合のみアトミックに減らす
	spots, err := s.classRepo.ReserveSpot(ctx, r.ClassID)
	if err != nil {
		return nil, err
	}

	if err := s.registrationRepo.Create(ctx, r); err != nil {
		if _, releaseErr := s.classRepo.ReleaseSpot(context.WithoutCancel(ctx), r.ClassID); releaseErr != nil {
			logger.FromContext(ctx).Error("残席の戻しに失敗",
				zap.String("class_id", r.ClassID),
				zap.Error(releaseErr),
			)
		}
		return nil, fmt.Errorf("予約保存に失敗: %w", err)
	}

	c.SpotsRemaining = spots
	return c, nil
}

// notify は参加者と管理者へのメールをそれぞれ送る。失敗はログに残すだけ
func (s *RSVPService) notify(ctx context.Context, c *class.Class, r *registration.Registration) {
	if s.notifier == nil {
		return
	}
	log := logger.FromContext(ctx)
	if err := s.notifier.NotifyRegistrationConfirmed(ctx, c, r); err != nil {
		log.Warn("予約確認メール送信に失敗",
			zap.String("registration_id", r.ID),
			zap.Error(err),
		)
	}
	if err := s.notifier.NotifyAdminNewRegistration(ctx, c, r); err != nil {
		log.Warn("管理者通知メール送信に失敗",
			zap.String("registration_id", r.ID),
			zap.Error(err),
		)
	}
}

// rsvpStatus はメトリクス用に結果を分類する
func rsvpStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, registration.ErrMissingRequiredFields), errors.Is(err, registration.ErrInvalidEmail):
		return "invalid"
	case errors.Is(err, class.ErrClassNotFound):
		return "not_found"
	case errors.Is(err, class.ErrClassFull):
		return "full"
	case errors.Is(err, registration.ErrAlreadyRegistered):
		return "duplicate"
	case errors.Is(err, ErrClassBusy):
		return "busy"
	default:
		return "error"
	}
}
