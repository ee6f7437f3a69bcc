package repository

import (
	"context"
	"testing"
	"time"

	"guardian-beam/internal/db"
	"guardian-beam/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerRepository(t *testing.T) {
	sqlDB := setupTestDB(t)
	repo := NewPlayerRepository(sqlDB, db.New(sqlDB), zerolog.Nop())
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("get unknown player", func(t *testing.T) {
		_, err := repo.Get(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("upsert creates then overwrites", func(t *testing.T) {
		p, err := repo.UpsertPresence(ctx, "p1", true, "eu1", now)
		require.NoError(t, err)
		assert.True(t, p.Active)
		assert.Equal(t, "eu1", p.ActiveServer)

		p, err = repo.UpsertPresence(ctx, "p1", false, "na2", now.Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, p.Active)
		assert.Equal(t, "na2", p.ActiveServer)
		assert.True(t, p.CreatedAt.Equal(now), "created_at is kept on update")
		assert.True(t, p.UpdatedAt.Equal(now.Add(time.Minute)))
	})

	t.Run("mark active keeps the server", func(t *testing.T) {
		_, err := repo.UpsertPresence(ctx, "p2", false, "eu3", now)
		require.NoError(t, err)

		p, err := repo.MarkActive(ctx, "p2", now)
		require.NoError(t, err)
		assert.True(t, p.Active)
		assert.Equal(t, "eu3", p.ActiveServer)
	})

	t.Run("mark active creates with empty server", func(t *testing.T) {
		p, err := repo.MarkActive(ctx, "p3", now)
		require.NoError(t, err)
		assert.True(t, p.Active)
		assert.Empty(t, p.ActiveServer)

		got, err := repo.Get(ctx, "p3")
		require.NoError(t, err)
		assert.Equal(t, "p3", got.ID)
	})
}
