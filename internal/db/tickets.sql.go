package db

import (
	"context"
	"database/sql"
	"time"
)

const getTicket = `-- name: GetTicket :one
SELECT id, target_id, type, priority, target_server, created_at
FROM tickets
WHERE id = ?
`

func (q *Queries) GetTicket(ctx context.Context, id int64) (Ticket, error) {
	row := q.db.QueryRowContext(ctx, getTicket, id)
	var i Ticket
	err := row.Scan(
		&i.ID,
		&i.TargetID,
		&i.Type,
		&i.Priority,
		&i.TargetServer,
		&i.CreatedAt,
	)
	return i, err
}

const insertTicket = `-- name: InsertTicket :one
INSERT INTO tickets (target_id, type, priority, target_server, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, target_id, type, priority, target_server, created_at
`

type InsertTicketParams struct {
	TargetID     string
	Type         int64
	Priority     int64
	TargetServer string
	CreatedAt    time.Time
}

func (q *Queries) InsertTicket(ctx context.Context, arg InsertTicketParams) (Ticket, error) {
	row := q.db.QueryRowContext(ctx, insertTicket,
		arg.TargetID,
		arg.Type,
		arg.Priority,
		arg.TargetServer,
		arg.CreatedAt,
	)
	var i Ticket
	err := row.Scan(
		&i.ID,
		&i.TargetID,
		&i.Type,
		&i.Priority,
		&i.TargetServer,
		&i.CreatedAt,
	)
	return i, err
}

const getOpenWindow = `-- name: GetOpenWindow :one
SELECT target_id, type, ticket_id, opened_at
FROM ticket_windows
WHERE target_id = ? AND type = ? AND opened_at >= ?
`

type GetOpenWindowParams struct {
	TargetID string
	Type     int64
	Cutoff   time.Time
}

func (q *Queries) GetOpenWindow(ctx context.Context, arg GetOpenWindowParams) (TicketWindow, error) {
	row := q.db.QueryRowContext(ctx, getOpenWindow, arg.TargetID, arg.Type, arg.Cutoff)
	var i TicketWindow
	err := row.Scan(
		&i.TargetID,
		&i.Type,
		&i.TicketID,
		&i.OpenedAt,
	)
	return i, err
}

const claimWindow = `-- name: ClaimWindow :execrows
INSERT INTO ticket_windows (target_id, type, ticket_id, opened_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (target_id, type) DO UPDATE SET
    ticket_id = excluded.ticket_id,
    opened_at = excluded.opened_at
WHERE ticket_windows.opened_at < ?
`

type ClaimWindowParams struct {
	TargetID string
	Type     int64
	TicketID int64
	OpenedAt time.Time
	Cutoff   time.Time
}

func (q *Queries) ClaimWindow(ctx context.Context, arg ClaimWindowParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, claimWindow,
		arg.TargetID,
		arg.Type,
		arg.TicketID,
		arg.OpenedAt,
		arg.Cutoff,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const addTicketIssuer = `-- name: AddTicketIssuer :execrows
INSERT INTO ticket_issuers (ticket_id, issuer_id, created_at)
VALUES (?, ?, ?)
ON CONFLICT (ticket_id, issuer_id) DO NOTHING
`

type AddTicketIssuerParams struct {
	TicketID  int64
	IssuerID  string
	CreatedAt time.Time
}

func (q *Queries) AddTicketIssuer(ctx context.Context, arg AddTicketIssuerParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, addTicketIssuer, arg.TicketID, arg.IssuerID, arg.CreatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listTicketIssuers = `-- name: ListTicketIssuers :many
SELECT issuer_id
FROM ticket_issuers
WHERE ticket_id = ?
ORDER BY created_at ASC, issuer_id ASC
`

func (q *Queries) ListTicketIssuers(ctx context.Context, ticketID int64) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listTicketIssuers, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var issuerID string
		if err := rows.Scan(&issuerID); err != nil {
			return nil, err
		}
		items = append(items, issuerID)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertTicketLabel = `-- name: InsertTicketLabel :exec
INSERT INTO ticket_labels (id, ticket_id, tag_id, reason, created_at)
VALUES (?, ?, ?, ?, ?)
`

type InsertTicketLabelParams struct {
	ID        string
	TicketID  int64
	TagID     int64
	Reason    sql.NullString
	CreatedAt time.Time
}

func (q *Queries) InsertTicketLabel(ctx context.Context, arg InsertTicketLabelParams) error {
	_, err := q.db.ExecContext(ctx, insertTicketLabel,
		arg.ID,
		arg.TicketID,
		arg.TagID,
		arg.Reason,
		arg.CreatedAt,
	)
	return err
}

const listTicketLabels = `-- name: ListTicketLabels :many
SELECT tl.id, tl.tag_id, l.name, l.priority, tl.reason, tl.created_at
FROM ticket_labels tl
JOIN labels l ON l.tag_id = tl.tag_id
WHERE tl.ticket_id = ?
ORDER BY tl.created_at ASC, tl.id ASC
`

type ListTicketLabelsRow struct {
	ID        string
	TagID     int64
	Name      string
	Priority  int64
	Reason    sql.NullString
	CreatedAt time.Time
}

func (q *Queries) ListTicketLabels(ctx context.Context, ticketID int64) ([]ListTicketLabelsRow, error) {
	rows, err := q.db.QueryContext(ctx, listTicketLabels, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListTicketLabelsRow
	for rows.Next() {
		var i ListTicketLabelsRow
		if err := rows.Scan(
			&i.ID,
			&i.TagID,
			&i.Name,
			&i.Priority,
			&i.Reason,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listTicketsForTarget = `-- name: ListTicketsForTarget :many
SELECT id, target_id, type, priority, target_server, created_at
FROM tickets
WHERE target_id = ?
  AND created_at > ?
  AND created_at < ?
  AND (? IS NULL OR type = ?)
ORDER BY created_at ASC, id ASC
LIMIT ? OFFSET ?
`

type ListTicketsForTargetParams struct {
	TargetID  string
	StartDate time.Time
	EndDate   time.Time
	Type      sql.NullInt64
	Limit     int64
	Offset    int64
}

func (q *Queries) ListTicketsForTarget(ctx context.Context, arg ListTicketsForTargetParams) ([]Ticket, error) {
	rows, err := q.db.QueryContext(ctx, listTicketsForTarget,
		arg.TargetID,
		arg.StartDate,
		arg.EndDate,
		arg.Type,
		arg.Type,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Ticket
	for rows.Next() {
		var i Ticket
		if err := rows.Scan(
			&i.ID,
			&i.TargetID,
			&i.Type,
			&i.Priority,
			&i.TargetServer,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
