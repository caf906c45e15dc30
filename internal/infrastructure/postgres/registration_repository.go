package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/fit365-classes/internal/domain/class"
	"github.com/sanosuguru/fit365-classes/internal/domain/registration"
)

type registrationRow struct {
	ID        string    `db:"id"`
	ClassID   string    `db:"class_id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *registrationRow) toEntity() *registration.Registration {
	return &registration.Registration{
		ID:        r.ID,
		ClassID:   r.ClassID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

// RegistrationRepository は予約リポジトリのPostgreSQL実装
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository はRegistrationRepositoryを作成する
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create は予約を保存する
// 同じクラスへの同じメールアドレス（大文字小文字を区別しない）は一意インデックスで拒否される
func (r *RegistrationRepository) Create(ctx context.Context, reg *registration.Registration) error {
	query := `
		INSERT INTO rsvps (id, class_id, first_name, last_name, email, created_at)
		VALUES (:id, :class_id, :first_name, :last_name, :email, :created_at)
	`
	row := registrationRow{
		ID:        reg.ID,
		ClassID:   reg.ClassID,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Email:     reg.Email,
		CreatedAt: reg.CreatedAt.UTC().Truncate(time.Millisecond),
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		switch {
		case hasCode(err, codeUniqueViolation):
			return registration.ErrAlreadyRegistered
		case hasCode(err, codeForeignKeyViolation):
			return class.ErrClassNotFound
		}
		return fmt.Errorf("予約作成に失敗しました: %w", err)
	}
	return nil
}

// ListByClassID はクラスの予約一覧を作成順に取得する
func (r *RegistrationRepository) ListByClassID(ctx context.Context, classID string) ([]*registration.Registration, error) {
	var rows []registrationRow
	query := `
		SELECT id, class_id, first_name, last_name, email, created_at
		FROM rsvps WHERE class_id = $1
		ORDER BY created_at, id
	`
	if err := r.db.SelectContext(ctx, &rows, query, classID); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗しました: %w", err)
	}

	regs := make([]*registration.Registration, len(rows))
	for i := range rows {
		regs[i] = rows[i].toEntity()
	}
	return regs, nil
}

// CountByClassID はクラスの予約数を返す
func (r *RegistrationRepository) CountByClassID(ctx context.Context, classID string) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM rsvps WHERE class_id = $1`, classID); err != nil {
		return 0, fmt.Errorf("予約数取得に失敗しました: %w", err)
	}
	return n, nil
}

// DeleteByClassID はクラスの予約をすべて削除する
func (r *RegistrationRepository) DeleteByClassID(ctx context.Context, classID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM rsvps WHERE class_id = $1`, classID); err != nil {
		return fmt.Errorf("予約削除に失敗しました: %w", err)
	}
	return nil
}

// インターフェースを満たしているか確認
var _ registration.Repository = (*RegistrationRepository)(nil)
