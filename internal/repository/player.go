package repository

import (
	"context"
	"database/sql"
	"time"

	"guardian-beam/internal/db"
	"guardian-beam/internal/domain"

	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *PlayerRepository) WithTx(tx *sql.Tx) *PlayerRepository {
	return &PlayerRepository{
		queries: r.queries.WithTx(tx),
		db:      r.db,
		logger:  r.logger,
	}
}

func (r *PlayerRepository) Get(ctx context.Context, id string) (*domain.Player, error) {
	player, err := r.queries.GetPlayer(ctx, id)
	if err != nil {
		return nil, lookupError("get player", err)
	}
	return toDomainPlayer(player), nil
}

// UpsertPresence creates the player or overwrites both presence attributes.
func (r *PlayerRepository) UpsertPresence(ctx context.Context, id string, active bool, activeServer string, now time.Time) (*domain.Player, error) {
	now = now.UTC()
	player, err := r.queries.UpsertPlayerPresence(ctx, db.UpsertPlayerPresenceParams{
		ID:           id,
		Active:       active,
		ActiveServer: activeServer,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		r.logger.Error().Err(err).Str("player_id", id).Msg("failed to upsert player presence")
		return nil, storageError("upsert player presence", err)
	}
	return toDomainPlayer(player), nil
}

// MarkActive flags the player active without touching the recorded server.
func (r *PlayerRepository) MarkActive(ctx context.Context, id string, now time.Time) (*domain.Player, error) {
	now = now.UTC()
	player, err := r.queries.MarkPlayerActive(ctx, db.MarkPlayerActiveParams{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		r.logger.Error().Err(err).Str("player_id", id).Msg("failed to mark player active")
		return nil, storageError("mark player active", err)
	}
	return toDomainPlayer(player), nil
}

func toDomainPlayer(p db.Player) *domain.Player {
	return &domain.Player{
		ID:           p.ID,
		Active:       p.Active,
		ActiveServer: p.ActiveServer,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
