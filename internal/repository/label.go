package repository

import (
	"context"
	"database/sql"
	"time"

	"guardian-beam/internal/db"
	"guardian-beam/internal/domain"

	"github.com/rs/zerolog"
)

type LabelRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewLabelRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *LabelRepository {
	return &LabelRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *LabelRepository) WithTx(tx *sql.Tx) *LabelRepository {
	return &LabelRepository{
		queries: r.queries.WithTx(tx),
		db:      r.db,
		logger:  r.logger,
	}
}

func (r *LabelRepository) Get(ctx context.Context, tagID int) (*domain.Label, error) {
	label, err := r.queries.GetLabel(ctx, int64(tagID))
	if err != nil {
		return nil, lookupError("get label", err)
	}
	return toDomainLabel(label), nil
}

// Ensure inserts the label unless its tag id is already known, then returns
// the stored record. An existing record is never modified.
func (r *LabelRepository) Ensure(ctx context.Context, tagID int, name string, priority int, now time.Time) (*domain.Label, error) {
	err := r.queries.InsertLabelIfAbsent(ctx, db.InsertLabelIfAbsentParams{
		TagID:     int64(tagID),
		Name:      name,
		Priority:  int64(priority),
		CreatedAt: now.UTC(),
	})
	if err != nil {
		r.logger.Error().Err(err).Int("tag_id", tagID).Msg("failed to insert label")
		return nil, storageError("insert label", err)
	}

	label, err := r.queries.GetLabel(ctx, int64(tagID))
	if err != nil {
		return nil, storageError("get label", err)
	}
	return toDomainLabel(label), nil
}

func toDomainLabel(l db.Label) *domain.Label {
	return &domain.Label{
		TagID:     int(l.TagID),
		Name:      l.Name,
		Priority:  int(l.Priority),
		CreatedAt: l.CreatedAt,
	}
}
