package application

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sanosuguru/fit365-classes/internal/domain/class"
	"github.com/sanosuguru/fit365-classes/internal/domain/registration"
	redislock "github.com/sanosuguru/fit365-classes/internal/infrastructure/redis"
	"github.com/sanosuguru/fit365-classes/internal/pkg/metrics"
)

// ClassService はクラスの一覧・作成・更新・削除を扱う
type ClassService struct {
	classRepo        class.Repository
	registrationRepo registration.Repository
	locker           classLocker
}

func NewClassService(cr class.Repository, rr registration.Repository, lm *redislock.LockManager, m *metrics.Metrics) *ClassService {
	return &ClassService{
		classRepo:        cr,
		registrationRepo: rr,
		locker:           classLocker{manager: lm, metrics: m},
	}
}

// ClassSummary は管理画面一覧用のクラスと予約数
type ClassSummary struct {
	Class             *class.Class
	RegistrationCount int
}

// ClassDetail はクラスと予約一覧（作成日時の昇順）
type ClassDetail struct {
	Class         *class.Class
	Registrations []*registration.Registration
}

type CreateClassInput struct {
	Name        string
	Date        string
	Time        string
	Description string
	Capacity    *int
	IsActive    *bool
}

// UpdateClassInput は部分更新の入力。nil のフィールドは変更しない
type UpdateClassInput struct {
	ID          string
	Name        *string
	Date        *string
	Time        *string
	Description *string
	Capacity    *int
	IsActive    *bool
}

// ListActive は公開中のクラスを日付の昇順で返す
func (s *ClassService) ListActive(ctx context.Context) ([]*class.Class, error) {
	classes, err := s.classRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]*class.Class, 0, len(classes))
	for _, c := range classes {
		if c.IsActive {
			active = append(active, c)
		}
	}
	slices.SortStableFunc(active, class.CompareByDate)
	return active, nil
}

// ListAll は非公開を含む全クラスを予約数付きで日付の昇順に返す
func (s *ClassService) ListAll(ctx context.Context) ([]ClassSummary, error) {
	classes, err := s.classRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(classes, class.CompareByDate)

	summaries := make([]ClassSummary, 0, len(classes))
	for _, c := range classes {
		count, err := s.registrationRepo.CountByClassID(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ClassSummary{Class: c, RegistrationCount: count})
	}
	return summaries, nil
}

// GetClass はクラスと予約一覧を返す
func (s *ClassService) GetClass(ctx context.Context, id string) (*ClassDetail, error) {
	c, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	regs, err := s.registrationRepo.ListByClassID(ctx, id)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(regs, registration.CompareByCreatedAt)
	return &ClassDetail{Class: c, Registrations: regs}, nil
}

// CreateClass はクラスを作成する。残席数は定員と同じ、公開状態の既定値は true
func (s *ClassService) CreateClass(ctx context.Context, input CreateClassInput) (*class.Class, error) {
	if input.Capacity == nil {
		return nil, class.ErrMissingRequiredFields
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	c := class.NewClass(
		strings.TrimSpace(input.Name),
		strings.TrimSpace(input.Date),
		strings.TrimSpace(input.Time),
		input.Description,
		*input.Capacity,
		isActive,
	)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.classRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("クラス作成に失敗: %w", err)
	}
	return c, nil
}

// UpdateClass は指定されたフィールドだけを更新する
// 定員を変更した場合は予約済み席数を保って残席を再計算する
func (s *ClassService) UpdateClass(ctx context.Context, input UpdateClassInput) (*class.Class, error) {
	var updated *class.Class
	err := s.locker.withLock(ctx, input.ID, func() error {
		c, err := s.classRepo.GetByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if err := applyUpdate(c, input); err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if err := s.classRepo.Update(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func applyUpdate(c *class.Class, input UpdateClassInput) error {
	// 名前・日付・時刻は空文字なら既存の値のまま
	for _, f := range []struct {
		value *string
		dst   *string
	}{
		{input.Name, &c.Name},
		{input.Date, &c.Date},
		{input.Time, &c.Time},
	} {
		if f.value == nil {
			continue
		}
		if v := strings.TrimSpace(*f.value); v != "" {
			*f.dst = v
		}
	}
	if input.Description != nil {
		c.Description = *input.Description
	}
	if input.IsActive != nil {
		c.IsActive = *input.IsActive
	}
	if input.Capacity != nil {
		return c.ChangeCapacity(*input.Capacity)
	}
	return nil
}

// DeleteClass はクラスと、そのクラスの予約をすべて削除する
func (s *ClassService) DeleteClass(ctx context.Context, id string) error {
	return s.locker.withLock(ctx, id, func() error {
		if _, err := s.classRepo.GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.registrationRepo.DeleteByClassID(ctx, id); err != nil {
			return err
		}
		return s.classRepo.Delete(ctx, id)
	})
}
