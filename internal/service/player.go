package service

import (
	"context"
	"database/sql"

	"guardian-beam/internal/constants"
	"guardian-beam/internal/domain"
	"guardian-beam/internal/metrics"
	"guardian-beam/internal/repository"
	"guardian-beam/internal/validation"

	"github.com/rs/zerolog"
)

// PlayerRegistry owns player presence. Players are created on first sighting
// and never removed.
type PlayerRegistry struct {
	repo    *repository.PlayerRepository
	metrics *metrics.Moderation
	clock   Clock
	logger  zerolog.Logger
}

func NewPlayerRegistry(repo *repository.PlayerRepository, m *metrics.Moderation, clock Clock, logger zerolog.Logger) *PlayerRegistry {
	return &PlayerRegistry{repo: repo, metrics: m, clock: clock, logger: logger}
}

// WithTx returns a registry whose writes join tx.
func (s *PlayerRegistry) WithTx(tx *sql.Tx) *PlayerRegistry {
	return &PlayerRegistry{repo: s.repo.WithTx(tx), metrics: s.metrics, clock: s.clock, logger: s.logger}
}

// UpsertPresence creates the player or overwrites its presence. The last call
// wins.
func (s *PlayerRegistry) UpsertPresence(ctx context.Context, cmd PresenceCommand) (*domain.Player, error) {
	if err := validation.Struct("upsert presence", cmd); err != nil {
		s.metrics.RecordError("upsert_presence", err)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	player, err := s.repo.UpsertPresence(ctx, cmd.PlayerID, cmd.Active, cmd.ActiveServer, s.clock())
	if err != nil {
		s.metrics.RecordError("upsert_presence", err)
		return nil, err
	}

	s.metrics.RecordPresence(cmd.Active)
	s.logger.Debug().
		Str("player_id", player.ID).
		Bool("active", player.Active).
		Str("active_server", player.ActiveServer).
		Msg("presence updated")
	return player, nil
}

// MarkActive flags a reporting player active. The server it reported from is
// unknown, so the recorded server is left alone.
func (s *PlayerRegistry) MarkActive(ctx context.Context, playerID string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	player, err := s.repo.MarkActive(ctx, playerID, s.clock())
	if err != nil {
		return nil, err
	}
	return player, nil
}

func (s *PlayerRegistry) Get(ctx context.Context, playerID string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	player, err := s.repo.Get(ctx, playerID)
	if err != nil {
		s.logger.Debug().Err(err).Str("player_id", playerID).Msg("player lookup failed")
		return nil, err
	}
	return player, nil
}
