package service

import (
	"context"
	"database/sql"
	"errors"

	"guardian-beam/internal/constants"
	"guardian-beam/internal/domain"
	"guardian-beam/internal/metrics"
	"guardian-beam/internal/repository"
	"guardian-beam/internal/validation"

	"github.com/rs/zerolog"
)

// TicketStore owns the ticket lifecycle. Reports against the same target with
// the same type collapse into one ticket for constants.DedupWindow after the
// ticket opens.
type TicketStore struct {
	tx      *repository.Transactor
	tickets *repository.TicketRepository
	players *PlayerRegistry
	labels  *LabelCatalog
	metrics *metrics.Moderation
	clock   Clock
	logger  zerolog.Logger
}

func NewTicketStore(
	tx *repository.Transactor,
	tickets *repository.TicketRepository,
	players *PlayerRegistry,
	labels *LabelCatalog,
	m *metrics.Moderation,
	clock Clock,
	logger zerolog.Logger,
) *TicketStore {
	return &TicketStore{
		tx:      tx,
		tickets: tickets,
		players: players,
		labels:  labels,
		metrics: m,
		clock:   clock,
		logger:  logger,
	}
}

// FileReport records a report by cmd.IssuerID against cmd.TargetID. If a ticket
// for the same target and type opened within the dedup window it absorbs the
// issuer; otherwise a new ticket opens with the report's priority and server.
//
// The lookup, the insert and the window claim run in one write transaction, so
// concurrent reports for the same pair produce a single ticket.
func (s *TicketStore) FileReport(ctx context.Context, cmd FileReportCommand) (*domain.ReportResult, error) {
	if err := validation.Struct("file report", cmd); err != nil {
		s.metrics.RecordError("file_report", err)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	now := s.clock().UTC()
	cutoff := now.Add(-constants.DedupWindow)

	var result domain.ReportResult
	err := s.tx.InTx(ctx, func(tx *sql.Tx) error {
		tickets := s.tickets.WithTx(tx)
		players := s.players.WithTx(tx)

		ticket, err := tickets.FindOpen(ctx, cmd.TargetID, cmd.Type, cutoff)
		switch {
		case err == nil:
			s.logger.Debug().
				Int64("ticket_id", ticket.ID).
				Str("target_id", cmd.TargetID).
				Int("type", cmd.Type).
				Msg("open ticket found, merging report")
		case errors.Is(err, domain.ErrNotFound):
			_, err = players.UpsertPresence(ctx, PresenceCommand{
				PlayerID:     cmd.TargetID,
				Active:       true,
				ActiveServer: cmd.TargetServer,
			})
			if err != nil {
				return err
			}

			ticket, err = tickets.Create(ctx, domain.Ticket{
				TargetID:     cmd.TargetID,
				Type:         cmd.Type,
				Priority:     cmd.Priority,
				TargetServer: cmd.TargetServer,
				CreatedAt:    now,
			})
			if err != nil {
				return err
			}

			if err := tickets.ClaimWindow(ctx, ticket, cutoff); err != nil {
				return err
			}
			result.Created = true
		default:
			return err
		}

		if _, err := players.MarkActive(ctx, cmd.IssuerID); err != nil {
			return err
		}
		if _, err := tickets.AddIssuer(ctx, ticket.ID, cmd.IssuerID, now); err != nil {
			return err
		}

		if err := hydrate(ctx, tickets, ticket); err != nil {
			return err
		}
		result.Ticket = ticket
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("target_id", cmd.TargetID).Int("type", cmd.Type).Msg("failed to file report")
		s.metrics.RecordError("file_report", err)
		return nil, err
	}

	s.metrics.RecordReport(cmd.Type, result.Created)
	s.logger.Info().
		Int64("ticket_id", result.Ticket.ID).
		Str("target_id", cmd.TargetID).
		Str("issuer_id", cmd.IssuerID).
		Int("type", cmd.Type).
		Bool("created", result.Created).
		Int("issuers", len(result.Ticket.IssuerIDs)).
		Msg("report filed")
	return &result, nil
}

// AttachLabel attaches a label to a ticket, creating the label on first use.
// Every call adds a new attachment, even for a label the ticket already has.
func (s *TicketStore) AttachLabel(ctx context.Context, cmd AttachLabelCommand) (*domain.TicketLabel, error) {
	if err := validation.Struct("attach label", cmd); err != nil {
		s.metrics.RecordError("attach_label", err)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	now := s.clock().UTC()

	var attached domain.TicketLabel
	err := s.tx.InTx(ctx, func(tx *sql.Tx) error {
		tickets := s.tickets.WithTx(tx)

		label, err := s.labels.WithTx(tx).EnsureLabel(ctx, cmd.TagID, cmd.Name, cmd.Priority)
		if err != nil {
			return err
		}

		ticket, err := tickets.Get(ctx, cmd.TicketID)
		if err != nil {
			return err
		}

		id, err := tickets.AttachLabel(ctx, ticket.ID, label.TagID, cmd.Reason, now)
		if err != nil {
			return err
		}

		attached = domain.TicketLabel{
			ID:         id,
			TagID:      label.TagID,
			Name:       label.Name,
			Priority:   label.Priority,
			Reason:     cmd.Reason,
			AttachedAt: now,
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("ticket_id", cmd.TicketID).Int("tag_id", cmd.TagID).Msg("failed to attach label")
		s.metrics.RecordError("attach_label", err)
		return nil, err
	}

	s.metrics.RecordLabel(cmd.TagID)
	s.logger.Info().
		Int64("ticket_id", cmd.TicketID).
		Int("tag_id", cmd.TagID).
		Str("attachment_id", attached.ID).
		Msg("label attached")
	return &attached, nil
}

func (s *TicketStore) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	ticket, err := s.tickets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := hydrate(ctx, s.tickets, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// hydrate loads the issuer set and label attachments of ticket.
func hydrate(ctx context.Context, repo *repository.TicketRepository, ticket *domain.Ticket) error {
	issuers, err := repo.Issuers(ctx, ticket.ID)
	if err != nil {
		return err
	}
	labels, err := repo.Labels(ctx, ticket.ID)
	if err != nil {
		return err
	}
	ticket.IssuerIDs = issuers
	ticket.Labels = labels
	return nil
}
