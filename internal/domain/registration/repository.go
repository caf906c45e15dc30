package registration

import "context"

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Create は予約を保存し、クラスの予約ID集合に追加する
	Create(ctx context.Context, registration *Registration) error

	// ListByClassID はクラスの予約一覧を取得する（順序は保証しない）
	ListByClassID(ctx context.Context, classID string) ([]*Registration, error)

	// CountByClassID はクラスの予約数を返す
	CountByClassID(ctx context.Context, classID string) (int, error)

	// DeleteByClassID はクラスの予約をすべて削除する
	DeleteByClassID(ctx context.Context, classID string) error
}
