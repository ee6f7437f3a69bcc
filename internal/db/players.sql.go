package db

import (
	"context"
	"time"
)

const getPlayer = `-- name: GetPlayer :one
SELECT id, active, active_server, created_at, updated_at
FROM players
WHERE id = ?
`

func (q *Queries) GetPlayer(ctx context.Context, id string) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayer, id)
	var i Player
	err := row.Scan(
		&i.ID,
		&i.Active,
		&i.ActiveServer,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertPlayerPresence = `-- name: UpsertPlayerPresence :one
INSERT INTO players (id, active, active_server, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    active = excluded.active,
    active_server = excluded.active_server,
    updated_at = excluded.updated_at
RETURNING id, active, active_server, created_at, updated_at
`

type UpsertPlayerPresenceParams struct {
	ID           string
	Active       bool
	ActiveServer string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) UpsertPlayerPresence(ctx context.Context, arg UpsertPlayerPresenceParams) (Player, error) {
	row := q.db.QueryRowContext(ctx, upsertPlayerPresence,
		arg.ID,
		arg.Active,
		arg.ActiveServer,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Player
	err := row.Scan(
		&i.ID,
		&i.Active,
		&i.ActiveServer,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const markPlayerActive = `-- name: MarkPlayerActive :one
INSERT INTO players (id, active, active_server, created_at, updated_at)
VALUES (?, 1, '', ?, ?)
ON CONFLICT (id) DO UPDATE SET
    active = 1,
    updated_at = excluded.updated_at
RETURNING id, active, active_server, created_at, updated_at
`

type MarkPlayerActiveParams struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) MarkPlayerActive(ctx context.Context, arg MarkPlayerActiveParams) (Player, error) {
	row := q.db.QueryRowContext(ctx, markPlayerActive, arg.ID, arg.CreatedAt, arg.UpdatedAt)
	var i Player
	err := row.Scan(
		&i.ID,
		&i.Active,
		&i.ActiveServer,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
