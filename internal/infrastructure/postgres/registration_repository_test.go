package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/fit365-classes/internal/domain/class"
	"github.com/sanosuguru/fit365-classes/internal/domain/registration"
)

func TestRegistrationRepository(t *testing.T) {
	db := setupTestDB(t)
	classes := NewClassRepository(db)
	repo := NewRegistrationRepository(db)
	ctx := context.Background()

	c := newTestClass(5)
	require.NoError(t, classes.Create(ctx, c))

	base := time.Date(2025, 6, 1, 9, 30, 15, 123_456_789, time.UTC)
	alice := registration.NewRegistration(c.ID, "Alice", "Smith", "alice@example.com", base)
	bob := registration.NewRegistration(c.ID, "Bob", "Jones", "bob@example.com", base.Add(time.Second))

	t.Run("作成と作成順の一覧", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, bob))
		require.NoError(t, repo.Create(ctx, alice))

		regs, err := repo.ListByClassID(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, regs, 2)
		assert.Equal(t, alice.ID, regs[0].ID)
		assert.Equal(t, bob.ID, regs[1].ID)
		// ミリ秒精度で保存される
		assert.Equal(t, base.Truncate(time.Millisecond), regs[0].CreatedAt)
	})

	t.Run("同じメールアドレスは大文字小文字を問わず拒否", func(t *testing.T) {
		dup := registration.NewRegistration(c.ID, "Alice", "Smith", "ALICE@example.com", base)
		assert.ErrorIs(t, repo.Create(ctx, dup), registration.ErrAlreadyRegistered)
	})

	t.Run("存在しないクラス", func(t *testing.T) {
		orphan := registration.NewRegistration("class-missing", "Eve", "X", "eve@example.com", base)
		assert.ErrorIs(t, repo.Create(ctx, orphan), class.ErrClassNotFound)
	})

	t.Run("件数", func(t *testing.T) {
		n, err := repo.CountByClassID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("クラス単位の削除", func(t *testing.T) {
		require.NoError(t, repo.DeleteByClassID(ctx, c.ID))

		n, err := repo.CountByClassID(ctx, c.ID)
		require.NoError(t, err)
		assert.Zero(t, n)

		regs, err := repo.ListByClassID(ctx, c.ID)
		require.NoError(t, err)
		assert.Empty(t, regs)
	})
}
