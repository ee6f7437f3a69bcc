package service

import (
	"context"
	"database/sql"

	"guardian-beam/internal/domain"
	"guardian-beam/internal/repository"

	"github.com/rs/zerolog"
)

// LabelCatalog is the canonical set of report categories.
type LabelCatalog struct {
	repo   *repository.LabelRepository
	clock  Clock
	logger zerolog.Logger
}

func NewLabelCatalog(repo *repository.LabelRepository, clock Clock, logger zerolog.Logger) *LabelCatalog {
	return &LabelCatalog{repo: repo, clock: clock, logger: logger}
}

func (c *LabelCatalog) WithTx(tx *sql.Tx) *LabelCatalog {
	return &LabelCatalog{repo: c.repo.WithTx(tx), clock: c.clock, logger: c.logger}
}

// EnsureLabel returns the label for tagID, creating it with name and priority
// if it does not exist yet. The first stored name and priority win; later
// values for the same tag are ignored.
func (c *LabelCatalog) EnsureLabel(ctx context.Context, tagID int, name string, priority int) (*domain.Label, error) {
	label, err := c.repo.Ensure(ctx, tagID, name, priority, c.clock())
	if err != nil {
		return nil, err
	}

	if label.Name != name || label.Priority != priority {
		c.logger.Debug().
			Int("tag_id", tagID).
			Str("stored_name", label.Name).
			Str("requested_name", name).
			Int("stored_priority", label.Priority).
			Int("requested_priority", priority).
			Msg("label already exists, keeping stored values")
	}
	return label, nil
}

func (c *LabelCatalog) Get(ctx context.Context, tagID int) (*domain.Label, error) {
	return c.repo.Get(ctx, tagID)
}
