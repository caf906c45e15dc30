package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/fit365-classes/internal/domain/class"
)

const classColumns = `id, name, class_date, class_time, description, capacity, spots_remaining, is_active`

// classRow はDBの行を表す構造体
type classRow struct {
	ID             string `db:"id"`
	Name           string `db:"name"`
	Date           string `db:"class_date"`
	Time           string `db:"class_time"`
	Description    string `db:"description"`
	Capacity       int    `db:"capacity"`
	SpotsRemaining int    `db:"spots_remaining"`
	IsActive       bool   `db:"is_active"`
}

func newClassRow(c *class.Class) classRow {
	return classRow{
		ID:             c.ID,
		Name:           c.Name,
		Date:           c.Date,
		Time:           c.Time,
		Description:    c.Description,
		Capacity:       c.Capacity,
		SpotsRemaining: c.SpotsRemaining,
		IsActive:       c.IsActive,
	}
}

func (r *classRow) toEntity() *class.Class {
	return &class.Class{
		ID:             r.ID,
		Name:           r.Name,
		Date:           r.Date,
		Time:           r.Time,
		Description:    r.Description,
		Capacity:       r.Capacity,
		SpotsRemaining: r.SpotsRemaining,
		IsActive:       r.IsActive,
	}
}

// ClassRepository はクラスリポジトリのPostgreSQL実装
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository はClassRepositoryを作成する
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// Create は新しいクラスを保存する
func (r *ClassRepository) Create(ctx context.Context, c *class.Class) error {
	query := `
		INSERT INTO classes (id, name, class_date, class_time, description, capacity, spots_remaining, is_active)
		VALUES (:id, :name, :class_date, :class_time, :description, :capacity, :spots_remaining, :is_active)
	`
	if _, err := r.db.NamedExecContext(ctx, query, newClassRow(c)); err != nil {
		return fmt.Errorf("クラス作成に失敗しました: %w", err)
	}
	return nil
}

// GetByID はIDからクラスを取得する
func (r *ClassRepository) GetByID(ctx context.Context, id string) (*class.Class, error) {
	var row classRow
	query := `SELECT ` + classColumns + ` FROM classes WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, class.ErrClassNotFound
		}
		return nil, fmt.Errorf("クラス取得に失敗しました: %w", err)
	}
	return row.toEntity(), nil
}

// List は全クラスを取得する
func (r *ClassRepository) List(ctx context.Context) ([]*class.Class, error) {
	var rows []classRow
	query := `SELECT ` + classColumns + ` FROM classes ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("クラス一覧取得に失敗しました: %w", err)
	}

	classes := make([]*class.Class, len(rows))
	for i := range rows {
		classes[i] = rows[i].toEntity()
	}
	return classes, nil
}

// Update はクラスの全フィールドを上書きする
func (r *ClassRepository) Update(ctx context.Context, c *class.Class) error {
	query := `
		UPDATE classes
		SET name = :name, class_date = :class_date, class_time = :class_time, description = :description,
			capacity = :capacity, spots_remaining = :spots_remaining, is_active = :is_active
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, newClassRow(c))
	if err != nil {
		return fmt.Errorf("クラス更新に失敗しました: %w", err)
	}
	return requireAffected(result, class.ErrClassNotFound)
}

// Delete はクラスを削除する（予約は外部キーで連鎖削除される）
func (r *ClassRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("クラス削除に失敗しました: %w", err)
	}
	return requireAffected(result, class.ErrClassNotFound)
}

// ReserveSpot は残席が1以上の場合のみ1減らす
func (r *ClassRepository) ReserveSpot(ctx context.Context, id string) (int, error) {
	query := `
		UPDATE classes SET spots_remaining = spots_remaining - 1
		WHERE id = $1 AND spots_remaining > 0
		RETURNING spots_remaining
	`
	var spots int
	err := r.db.QueryRowxContext(ctx, query, id).Scan(&spots)
	if err == nil {
		return spots, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("残席確保に失敗しました: %w", err)
	}

	// 更新対象がない場合はクラスなしと満席を区別する
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM classes WHERE id = $1)`, id); err != nil {
		return 0, fmt.Errorf("クラス確認に失敗しました: %w", err)
	}
	if !exists {
		return 0, class.ErrClassNotFound
	}
	return 0, class.ErrClassFull
}

// ReleaseSpot は残席を定員を超えない範囲で1戻す
func (r *ClassRepository) ReleaseSpot(ctx context.Context, id string) (int, error) {
	query := `
		UPDATE classes SET spots_remaining = LEAST(spots_remaining + 1, capacity)
		WHERE id = $1
		RETURNING spots_remaining
	`
	var spots int
	if err := r.db.QueryRowxContext(ctx, query, id).Scan(&spots); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, class.ErrClassNotFound
		}
		return 0, fmt.Errorf("残席の戻しに失敗しました: %w", err)
	}
	return spots, nil
}

func requireAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の確認に失敗しました: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// インターフェースを満たしているか確認
var _ class.Repository = (*ClassRepository)(nil)
