package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/sanosuguru/fit365-classes/internal/domain/class"
)

// 残席が1以上の場合のみ1減らす
// -2: クラスなし / -1: 満席 / それ以外: 新しい残席数
var reserveSpotScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return -2
end
local spots = tonumber(redis.call("HGET", KEYS[1], "spotsRemaining"))
if spots == nil or spots <= 0 then
	return -1
end
return redis.call("HINCRBY", KEYS[1], "spotsRemaining", -1)
`)

// 残席を定員を超えない範囲で1戻す
var releaseSpotScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return -2
end
local spots = tonumber(redis.call("HGET", KEYS[1], "spotsRemaining")) or 0
local capacity = tonumber(redis.call("HGET", KEYS[1], "capacity")) or 0
if spots >= capacity then
	return spots
end
return redis.call("HINCRBY", KEYS[1], "spotsRemaining", 1)
`)

// ClassStore はクラスリポジトリのRedis実装
type ClassStore struct {
	client *redis.Client
}

// NewClassStore はClassStoreを作成する
func NewClassStore(client *redis.Client) *ClassStore {
	return &ClassStore{client: client}
}

// Create はクラスを保存し、ID集合に追加する
func (s *ClassStore) Create(ctx context.Context, c *class.Class) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, classKey(c.ID), encodeClass(c))
		pipe.SAdd(ctx, classIDsKey, c.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("create class %s: %w", c.ID, err)
	}
	return nil
}

// GetByID はIDからクラスを取得する
func (s *ClassStore) GetByID(ctx context.Context, id string) (*class.Class, error) {
	fields, err := s.client.HGetAll(ctx, classKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get class %s: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, class.ErrClassNotFound
	}
	return decodeClass(id, fields)
}

// List は全クラスを取得する
// ID集合に残っていてもハッシュが存在しないIDは読み飛ばす
func (s *ClassStore) List(ctx context.Context) ([]*class.Class, error) {
	ids, err := s.client.SMembers(ctx, classIDsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list class ids: %w", err)
	}
	if len(ids) == 0 {
		return []*class.Class{}, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, classKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	classes := make([]*class.Class, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		c, err := decodeClass(ids[i], fields)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, nil
}

// Update はクラスの全フィールドを上書きする
func (s *ClassStore) Update(ctx context.Context, c *class.Class) error {
	exists, err := s.client.Exists(ctx, classKey(c.ID)).Result()
	if err != nil {
		return fmt.Errorf("update class %s: %w", c.ID, err)
	}
	if exists == 0 {
		return class.ErrClassNotFound
	}
	if err := s.client.HSet(ctx, classKey(c.ID), encodeClass(c)).Err(); err != nil {
		return fmt.Errorf("update class %s: %w", c.ID, err)
	}
	return nil
}

// Delete はクラスとID集合のメンバーシップを削除する
func (s *ClassStore) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, classKey(id))
		pipe.SRem(ctx, classIDsKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete class %s: %w", id, err)
	}
	if del.Val() == 0 {
		return class.ErrClassNotFound
	}
	return nil
}

// ReserveSpot は残席をアトミックに1減らす
func (s *ClassStore) ReserveSpot(ctx context.Context, id string) (int, error) {
	n, err := reserveSpotScript.Run(ctx, s.client, []string{classKey(id)}).Int()
	if err != nil {
		return 0, fmt.Errorf("reserve spot %s: %w", id, err)
	}
	switch n {
	case -2:
		return 0, class.ErrClassNotFound
	case -1:
		return 0, class.ErrClassFull
	}
	return n, nil
}

// ReleaseSpot は残席をアトミックに1戻す
func (s *ClassStore) ReleaseSpot(ctx context.Context, id string) (int, error) {
	n, err := releaseSpotScript.Run(ctx, s.client, []string{classKey(id)}).Int()
	if err != nil {
		return 0, fmt.Errorf("release spot %s: %w", id, err)
	}
	if n == -2 {
		return 0, class.ErrClassNotFound
	}
	return n, nil
}

// encodeClass は数値・真偽値を文字列にしてハッシュへ書き込む形に変換する
func encodeClass(c *class.Class) map[string]any {
	return map[string]any{
		"name":           c.Name,
		"date":           c.Date,
		"time":           c.Time,
		"description":    c.Description,
		"capacity":       strconv.Itoa(c.Capacity),
		"spotsRemaining": strconv.Itoa(c.SpotsRemaining),
		"isActive":       strconv.FormatBool(c.IsActive),
	}
}

// decodeClass はハッシュのフィールドを型付きのClassに変換する
func decodeClass(id string, fields map[string]string) (*class.Class, error) {
	capacity, err := parseIntField(fields, "capacity")
	if err != nil {
		return nil, fmt.Errorf("decode class %s: %w", id, err)
	}
	spots, err := parseIntField(fields, "spotsRemaining")
	if err != nil {
		return nil, fmt.Errorf("decode class %s: %w", id, err)
	}
	return &class.Class{
		ID:             id,
		Name:           fields["name"],
		Date:           fields["date"],
		Time:           fields["time"],
		Description:    fields["description"],
		Capacity:       capacity,
		SpotsRemaining: spots,
		IsActive:       parseBoolField(fields["isActive"]),
	}, nil
}

var errMissingField = errors.New("missing field")

func parseIntField(fields map[string]string, name string) (int, error) {
	raw, ok := fields[name]
	if !ok || raw == "" {
		return 0, fmt.Errorf("%s: %w", name, errMissingField)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

func parseBoolField(raw string) bool {
	b, err := strconv.ParseBool(raw)
	return err == nil && b
}

// インターフェースを満たしているか確認
var _ class.Repository = (*ClassStore)(nil)
