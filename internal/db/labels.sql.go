package db

import (
	"context"
	"time"
)

const getLabel = `-- name: GetLabel :one
SELECT tag_id, name, priority, created_at
FROM labels
WHERE tag_id = ?
`

func (q *Queries) GetLabel(ctx context.Context, tagID int64) (Label, error) {
	row := q.db.QueryRowContext(ctx, getLabel, tagID)
	var i Label
	err := row.Scan(
		&i.TagID,
		&i.Name,
		&i.Priority,
		&i.CreatedAt,
	)
	return i, err
}

const insertLabelIfAbsent = `-- name: InsertLabelIfAbsent :exec
INSERT INTO labels (tag_id, name, priority, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (tag_id) DO NOTHING
`

type InsertLabelIfAbsentParams struct {
	TagID     int64
	Name      string
	Priority  int64
	CreatedAt time.Time
}

func (q *Queries) InsertLabelIfAbsent(ctx context.Context, arg InsertLabelIfAbsentParams) error {
	_, err := q.db.ExecContext(ctx, insertLabelIfAbsent,
		arg.TagID,
		arg.Name,
		arg.Priority,
		arg.CreatedAt,
	)
	return err
}
