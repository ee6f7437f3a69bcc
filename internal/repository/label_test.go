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

func TestLabelRepository(t *testing.T) {
	sqlDB := setupTestDB(t)
	repo := NewLabelRepository(sqlDB, db.New(sqlDB), zerolog.Nop())
	ctx := context.Background()
	now := time.Now()

	t.Run("ensure creates", func(t *testing.T) {
		l, err := repo.Ensure(ctx, 10, "cheating", 3, now)
		require.NoError(t, err)
		assert.Equal(t, domain.Label{TagID: 10, Name: "cheating", Priority: 3, CreatedAt: l.CreatedAt}, *l)
	})

	t.Run("first write wins", func(t *testing.T) {
		l, err := repo.Ensure(ctx, 10, "griefing", 9, now)
		require.NoError(t, err)
		assert.Equal(t, "cheating", l.Name)
		assert.Equal(t, 3, l.Priority)
	})

	t.Run("get unknown label", func(t *testing.T) {
		_, err := repo.Get(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
