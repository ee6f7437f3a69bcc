package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"guardian-beam/internal/db"
	"guardian-beam/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// ErrWindowTaken is returned when another ticket already holds a fresh dedup
// window for the same target and type.
var ErrWindowTaken = errors.New("dedup window already claimed")

type TicketRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewTicketRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *TicketRepository {
	return &TicketRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *TicketRepository) WithTx(tx *sql.Tx) *TicketRepository {
	return &TicketRepository{
		queries: r.queries.WithTx(tx),
		db:      r.db,
		logger:  r.logger,
	}
}

type TicketFilter struct {
	TargetID  string
	Type      *int
	StartDate time.Time
	EndDate   time.Time
	Offset    int
	Limit     int
}

func (r *TicketRepository) Get(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := r.queries.GetTicket(ctx, id)
	if err != nil {
		return nil, lookupError("get ticket", err)
	}
	return toDomainTicket(ticket), nil
}

// FindOpen returns the ticket holding the dedup window for (targetID, typ) if
// that window opened at or after cutoff. A NotFound error means no such ticket.
func (r *TicketRepository) FindOpen(ctx context.Context, targetID string, typ int, cutoff time.Time) (*domain.Ticket, error) {
	window, err := r.queries.GetOpenWindow(ctx, db.GetOpenWindowParams{
		TargetID: targetID,
		Type:     int64(typ),
		Cutoff:   cutoff.UTC(),
	})
	if err != nil {
		return nil, lookupError("find open ticket", err)
	}

	ticket, err := r.queries.GetTicket(ctx, window.TicketID)
	if err != nil {
		return nil, storageError("get windowed ticket", err)
	}
	return toDomainTicket(ticket), nil
}

func (r *TicketRepository) Create(ctx context.Context, t domain.Ticket) (*domain.Ticket, error) {
	ticket, err := r.queries.InsertTicket(ctx, db.InsertTicketParams{
		TargetID:     t.TargetID,
		Type:         int64(t.Type),
		Priority:     int64(t.Priority),
		TargetServer: t.TargetServer,
		CreatedAt:    t.CreatedAt.UTC(),
	})
	if err != nil {
		r.logger.Error().Err(err).Str("target_id", t.TargetID).Int("type", t.Type).Msg("failed to insert ticket")
		return nil, storageError("insert ticket", err)
	}
	return toDomainTicket(ticket), nil
}

// ClaimWindow makes ticket the holder of the dedup window for its target and
// type. It fails with ErrWindowTaken when the current holder opened its window
// at or after cutoff.
func (r *TicketRepository) ClaimWindow(ctx context.Context, ticket *domain.Ticket, cutoff time.Time) error {
	n, err := r.queries.ClaimWindow(ctx, db.ClaimWindowParams{
		TargetID: ticket.TargetID,
		Type:     int64(ticket.Type),
		TicketID: ticket.ID,
		OpenedAt: ticket.CreatedAt.UTC(),
		Cutoff:   cutoff.UTC(),
	})
	if err != nil {
		return storageError("claim dedup window", err)
	}
	if n == 0 {
		r.logger.Warn().
			Str("target_id", ticket.TargetID).
			Int("type", ticket.Type).
			Int64("ticket_id", ticket.ID).
			Msg("dedup window already claimed")
		return domain.NewStorageError("claim dedup window", ErrWindowTaken)
	}
	return nil
}

// AddIssuer records issuerID as a reporter of the ticket. It reports false when
// the issuer was already recorded.
func (r *TicketRepository) AddIssuer(ctx context.Context, ticketID int64, issuerID string, now time.Time) (bool, error) {
	n, err := r.queries.AddTicketIssuer(ctx, db.AddTicketIssuerParams{
		TicketID:  ticketID,
		IssuerID:  issuerID,
		CreatedAt: now.UTC(),
	})
	if err != nil {
		r.logger.Error().Err(err).Int64("ticket_id", ticketID).Str("issuer_id", issuerID).Msg("failed to add ticket issuer")
		return false, storageError("add ticket issuer", err)
	}
	return n > 0, nil
}

func (r *TicketRepository) Issuers(ctx context.Context, ticketID int64) ([]string, error) {
	issuers, err := r.queries.ListTicketIssuers(ctx, ticketID)
	if err != nil {
		return nil, storageError("list ticket issuers", err)
	}
	return issuers, nil
}

// AttachLabel inserts a new label association row and returns its id.
func (r *TicketRepository) AttachLabel(ctx context.Context, ticketID int64, tagID int, reason *string, now time.Time) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate nanoid: %w", err)
	}

	var nullReason sql.NullString
	if reason != nil {
		nullReason = sql.NullString{String: *reason, Valid: true}
	}

	err = r.queries.InsertTicketLabel(ctx, db.InsertTicketLabelParams{
		ID:        id,
		TicketID:  ticketID,
		TagID:     int64(tagID),
		Reason:    nullReason,
		CreatedAt: now.UTC(),
	})
	if err != nil {
		r.logger.Error().Err(err).Int64("ticket_id", ticketID).Int("tag_id", tagID).Msg("failed to attach label")
		return "", storageError("insert ticket label", err)
	}
	return id, nil
}

func (r *TicketRepository) Labels(ctx context.Context, ticketID int64) ([]domain.TicketLabel, error) {
	rows, err := r.queries.ListTicketLabels(ctx, ticketID)
	if err != nil {
		return nil, storageError("list ticket labels", err)
	}

	labels := make([]domain.TicketLabel, len(rows))
	for i, row := range rows {
		labels[i] = domain.TicketLabel{
			ID:         row.ID,
			TagID:      int(row.TagID),
			Name:       row.Name,
			Priority:   int(row.Priority),
			AttachedAt: row.CreatedAt,
		}
		if row.Reason.Valid {
			reason := row.Reason.String
			labels[i].Reason = &reason
		}
	}
	return labels, nil
}

func (r *TicketRepository) ListForTarget(ctx context.Context, f TicketFilter) ([]domain.Ticket, error) {
	var typ sql.NullInt64
	if f.Type != nil {
		typ = sql.NullInt64{Int64: int64(*f.Type), Valid: true}
	}

	rows, err := r.queries.ListTicketsForTarget(ctx, db.ListTicketsForTargetParams{
		TargetID:  f.TargetID,
		StartDate: f.StartDate.UTC(),
		EndDate:   f.EndDate.UTC(),
		Type:      typ,
		Limit:     int64(f.Limit),
		Offset:    int64(f.Offset),
	})
	if err != nil {
		r.logger.Error().Err(err).Str("target_id", f.TargetID).Msg("failed to list tickets")
		return nil, storageError("list tickets", err)
	}

	tickets := make([]domain.Ticket, len(rows))
	for i, row := range rows {
		tickets[i] = *toDomainTicket(row)
	}
	return tickets, nil
}

func toDomainTicket(t db.Ticket) *domain.Ticket {
	return &domain.Ticket{
		ID:           t.ID,
		TargetID:     t.TargetID,
		Type:         int(t.Type),
		Priority:     int(t.Priority),
		TargetServer: t.TargetServer,
		CreatedAt:    t.CreatedAt,
	}
}
