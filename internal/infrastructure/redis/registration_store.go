package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanosuguru/fit365-classes/internal/domain/registration"
)

// createdAtLayout はミリ秒付きUTCのISO-8601形式
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

// RegistrationStore は予約リポジトリのRedis実装
type RegistrationStore struct {
	client *redis.Client
}

// NewRegistrationStore はRegistrationStoreを作成する
func NewRegistrationStore(client *redis.Client) *RegistrationStore {
	return &RegistrationStore{client: client}
}

// Create は予約を保存し、クラスの予約ID集合に追加する
func (s *RegistrationStore) Create(ctx context.Context, r *registration.Registration) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, registrationKey(r.ID), encodeRegistration(r))
		pipe.SAdd(ctx, classRegistrationsKey(r.ClassID), r.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("create registration %s: %w", r.ID, err)
	}
	return nil
}

// ListByClassID はクラスの予約一覧を取得する
func (s *RegistrationStore) ListByClassID(ctx context.Context, classID string) ([]*registration.Registration, error) {
	ids, err := s.client.SMembers(ctx, classRegistrationsKey(classID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list registration ids for %s: %w", classID, err)
	}
	if len(ids) == 0 {
		return []*registration.Registration{}, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, registrationKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list registrations for %s: %w", classID, err)
	}

	regs := make([]*registration.Registration, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		regs = append(regs, decodeRegistration(ids[i], fields))
	}
	return regs, nil
}

// CountByClassID はクラスの予約数を返す
func (s *RegistrationStore) CountByClassID(ctx context.Context, classID string) (int, error) {
	n, err := s.client.SCard(ctx, classRegistrationsKey(classID)).Result()
	if err != nil {
		return 0, fmt.Errorf("count registrations for %s: %w", classID, err)
	}
	return int(n), nil
}

// DeleteByClassID はクラスの予約ハッシュと予約ID集合を削除する
func (s *RegistrationStore) DeleteByClassID(ctx context.Context, classID string) error {
	ids, err := s.client.SMembers(ctx, classRegistrationsKey(classID)).Result()
	if err != nil {
		return fmt.Errorf("list registration ids for %s: %w", classID, err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, registrationKey(id))
	}
	keys = append(keys, classRegistrationsKey(classID))

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete registrations for %s: %w", classID, err)
	}
	return nil
}

func encodeRegistration(r *registration.Registration) map[string]any {
	return map[string]any{
		"classId":   r.ClassID,
		"firstName": r.FirstName,
		"lastName":  r.LastName,
		"email":     r.Email,
		"createdAt": r.CreatedAt.UTC().Format(createdAtLayout),
	}
}

// decodeRegistration はハッシュを予約に変換する
// 作成日時が読めない場合はゼロ値のまま（一覧の先頭に並ぶ）
func decodeRegistration(id string, fields map[string]string) *registration.Registration {
	createdAt, _ := time.Parse(time.RFC3339Nano, fields["createdAt"])
	return &registration.Registration{
		ID:        id,
		ClassID:   fields["classId"],
		FirstName: fields["firstName"],
		LastName:  fields["lastName"],
		Email:     fields["email"],
		CreatedAt: createdAt,
	}
}

// インターフェースを満たしているか確認
var _ registration.Repository = (*RegistrationStore)(nil)
