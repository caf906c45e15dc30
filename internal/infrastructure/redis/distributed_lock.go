package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrLockNotAcquired = errors.New("lock not acquired")
	ErrLockNotOwned    = errors.New("lock not owned")
)

// releaseScript は所有者確認と削除をアトミックに実行する
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`)

// LockOptions はロックのTTLとリトライ設定
type LockOptions struct {
	TTL        time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultLockOptions はクラス単位ロックの既定値
var DefaultLockOptions = LockOptions{
	TTL:        10 * time.Second,
	MaxRetries: 20,
	RetryDelay: 50 * time.Millisecond,
}

// DistributedLock は Redis を使用した分散ロック
type DistributedLock struct {
	client *redis.Client
	key    string
	value  string
}

// LockManager は分散ロックを管理する
type LockManager struct {
	client *redis.Client
	opts   LockOptions
}

func NewLockManager(client *redis.Client, opts LockOptions) *LockManager {
	if opts.TTL <= 0 {
		opts.TTL = DefaultLockOptions.TTL
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 1
	}
	return &LockManager{client: client, opts: opts}
}

// TryAcquire は1回だけロック取得を試みる
func (m *LockManager) TryAcquire(ctx context.Context, key string) (*DistributedLock, error) {
	lockKey := "lock:" + key
	lockValue := uuid.NewString()

	// キーが存在しない場合のみ設定
	ok, err := m.client.SetNX(ctx, lockKey, lockValue, m.opts.TTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", lockKey, err)
	}
	if !ok {
		return nil, ErrLockNotAcquired
	}
	return &DistributedLock{client: m.client, key: lockKey, value: lockValue}, nil
}

// Acquire はリトライ付きでロックを取得する
func (m *LockManager) Acquire(ctx context.Context, key string) (*DistributedLock, error) {
	var lastErr error
	for i := 0; i < m.opts.MaxRetries; i++ {
		lock, err := m.TryAcquire(ctx, key)
		if err == nil {
			return lock, nil
		}
		lastErr = err
		if !errors.Is(err, ErrLockNotAcquired) {
			return nil, err
		}
		if i == m.opts.MaxRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.opts.RetryDelay):
		}
	}
	return nil, lastErr
}

// Release はロックを解放する
func (l *DistributedLock) Release(ctx context.Context) error {
	result, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.value).Int()
	if err != nil {
		return fmt.Errorf("release lock %s: %w", l.key, err)
	}
	if result == 0 {
		return ErrLockNotOwned
	}
	return nil
}
