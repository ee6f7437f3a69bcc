package service

import (
	"context"

	"guardian-beam/internal/constants"
	"guardian-beam/internal/domain"
	"guardian-beam/internal/metrics"
	"guardian-beam/internal/repository"
	"guardian-beam/internal/validation"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const hydrateConcurrency = 8

type QueryEngine struct {
	tickets *repository.TicketRepository
	players *PlayerRegistry
	metrics *metrics.Moderation
	logger  zerolog.Logger
}

func NewQueryEngine(tickets *repository.TicketRepository, players *PlayerRegistry, m *metrics.Moderation, logger zerolog.Logger) *QueryEngine {
	return &QueryEngine{tickets: tickets, players: players, metrics: m, logger: logger}
}

// ListTickets returns one page of the tickets targeting q.TargetID that were
// created strictly between q.StartDate and q.EndDate, oldest first. A zero
// limit means constants.DefaultPageSize.
func (e *QueryEngine) ListTickets(ctx context.Context, q ListTicketsQuery) ([]domain.Ticket, error) {
	if q.Limit == 0 {
		q.Limit = constants.DefaultPageSize
	}
	if err := validation.Struct("list tickets", q); err != nil {
		e.metrics.RecordError("list_tickets", err)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if _, err := e.players.Get(ctx, q.TargetID); err != nil {
		e.metrics.RecordError("list_tickets", err)
		return nil, err
	}

	tickets, err := e.tickets.ListForTarget(ctx, repository.TicketFilter{
		TargetID:  q.TargetID,
		Type:      q.Type,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Offset:    q.Offset,
		Limit:     q.Limit,
	})
	if err != nil {
		e.metrics.RecordError("list_tickets", err)
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(hydrateConcurrency)
	for i := range tickets {
		ticket := &tickets[i]
		g.Go(func() error {
			return hydrate(gCtx, e.tickets, ticket)
		})
	}
	if err := g.Wait(); err != nil {
		e.logger.Error().Err(err).Str("target_id", q.TargetID).Msg("failed to load ticket details")
		e.metrics.RecordError("list_tickets", err)
		return nil, err
	}

	e.logger.Debug().
		Str("target_id", q.TargetID).
		Int("offset", q.Offset).
		Int("limit", q.Limit).
		Int("count", len(tickets)).
		Msg("tickets listed")
	return tickets, nil
}
