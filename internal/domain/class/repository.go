package class

import "context"

// Repository はクラスリポジトリのインターフェース
type Repository interface {
	// Create は新しいクラスを保存し、クラスID集合に追加する
	Create(ctx context.Context, class *Class) error

	// GetByID はIDからクラスを取得する
	GetByID(ctx context.Context, id string) (*Class, error)

	// List は全クラスを取得する（順序は保証しない）
	List(ctx context.Context) ([]*Class, error)

	// Update はクラスの全フィールドを上書きする
	Update(ctx context.Context, class *Class) error

	// Delete はクラスとID集合のメンバーシップを削除する
	Delete(ctx context.Context, id string) error

	// ReserveSpot は残席が1以上の場合のみアトミックに1減らし、新しい残席数を返す
	ReserveSpot(ctx context.Context, id string) (int, error)

	// ReleaseSpot は残席を定員を超えない範囲でアトミックに1戻す
	ReleaseSpot(ctx context.Context, id string) (int, error)
}
