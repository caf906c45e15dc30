package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	redislock "github.com/sanosuguru/fit365-classes/internal/infrastructure/redis"
	"github.com/sanosuguru/fit365-classes/internal/pkg/logger"
	"github.com/sanosuguru/fit365-classes/internal/pkg/metrics"
)

// classLocker は予約・更新・削除をクラス単位で直列化する
// manager が nil の場合はロックなしで実行する
type classLocker struct {
	manager *redislock.LockManager
	metrics *metrics.Metrics
}

func classLockKey(classID string) string {
	return "class:" + classID
}

func (l classLocker) withLock(ctx context.Context, classID string, fn func() error) error {
	if l.manager == nil {
		return fn()
	}

	start := time.Now()
	lock, err := l.manager.Acquire(ctx, classLockKey(classID))
	l.metrics.ObserveLock(time.Since(start).Seconds(), err)
	if err != nil {
		if errors.Is(err, redislock.ErrLockNotAcquired) {
			return ErrClassBusy
		}
		return fmt.Errorf("クラスロック取得に失敗: %w", err)
	}
	defer func() {
		// リクエストがキャンセルされてもロックは解放する
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			logger.FromContext(ctx).Warn("クラスロック解放に失敗", zap.String("class_id", classID), zap.Error(err))
		}
	}()

	return fn()
}
