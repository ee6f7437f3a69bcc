package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"guardian-beam/internal/db"
	"guardian-beam/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ticketFixture struct {
	db      *sql.DB
	players *PlayerRepository
	labels  *LabelRepository
	tickets *TicketRepository
}

func newTicketFixture(t *testing.T) *ticketFixture {
	sqlDB := setupTestDB(t)
	queries := db.New(sqlDB)
	return &ticketFixture{
		db:      sqlDB,
		players: NewPlayerRepository(sqlDB, queries, zerolog.Nop()),
		labels:  NewLabelRepository(sqlDB, queries, zerolog.Nop()),
		tickets: NewTicketRepository(sqlDB, queries, zerolog.Nop()),
	}
}

func (f *ticketFixture) createTicket(t *testing.T, target string, typ int, at time.Time) *domain.Ticket {
	t.Helper()
	ctx := context.Background()

	_, err := f.players.UpsertPresence(ctx, target, true, "eu1", at)
	require.NoError(t, err)

	ticket, err := f.tickets.Create(ctx, domain.Ticket{TargetID: target, Type: typ, Priority: 5, TargetServer: "eu1", CreatedAt: at})
	require.NoError(t, err)
	return ticket
}

func TestTicketRepository_Window(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := f.createTicket(t, "p1", 1, t0)

	t.Run("no window before claim", func(t *testing.T) {
		_, err := f.tickets.FindOpen(ctx, "p1", 1, t0.Add(-30*time.Minute))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("claim then find", func(t *testing.T) {
		require.NoError(t, f.tickets.ClaimWindow(ctx, first, t0.Add(-30*time.Minute)))

		found, err := f.tickets.FindOpen(ctx, "p1", 1, t0.Add(-20*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)
	})

	t.Run("fresh window cannot be reclaimed", func(t *testing.T) {
		second := f.createTicket(t, "p1", 1, t0.Add(10*time.Minute))

		err := f.tickets.ClaimWindow(ctx, second, t0.Add(-20*time.Minute))
		assert.ErrorIs(t, err, ErrWindowTaken)
		assert.ErrorIs(t, err, domain.ErrStorage)
	})

	t.Run("expired window is replaced", func(t *testing.T) {
		later := t0.Add(40 * time.Minute)
		third := f.createTicket(t, "p1", 1, later)

		_, err := f.tickets.FindOpen(ctx, "p1", 1, later.Add(-30*time.Minute))
		assert.ErrorIs(t, err, domain.ErrNotFound)

		require.NoError(t, f.tickets.ClaimWindow(ctx, third, later.Add(-30*time.Minute)))

		found, err := f.tickets.FindOpen(ctx, "p1", 1, later.Add(-30*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, third.ID, found.ID)
	})

	t.Run("windows are per type", func(t *testing.T) {
		_, err := f.tickets.FindOpen(ctx, "p1", 2, t0.Add(-30*time.Minute))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTicketRepository_Issuers(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	now := time.Now()

	ticket := f.createTicket(t, "p1", 1, now)
	for _, id := range []string{"p2", "p3"} {
		_, err := f.players.MarkActive(ctx, id, now)
		require.NoError(t, err)
	}

	added, err := f.tickets.AddIssuer(ctx, ticket.ID, "p2", now)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = f.tickets.AddIssuer(ctx, ticket.ID, "p2", now.Add(time.Second))
	require.NoError(t, err)
	assert.False(t, added, "second insert of the same issuer is a no-op")

	_, err = f.tickets.AddIssuer(ctx, ticket.ID, "p3", now.Add(2*time.Second))
	require.NoError(t, err)

	issuers, err := f.tickets.Issuers(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p3"}, issuers)

	t.Run("unknown issuer violates foreign key", func(t *testing.T) {
		_, err := f.tickets.AddIssuer(ctx, ticket.ID, "ghost", now)
		assert.ErrorIs(t, err, domain.ErrStorage)
	})
}

func TestTicketRepository_Labels(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	now := time.Now()

	ticket := f.createTicket(t, "p1", 1, now)
	_, err := f.labels.Ensure(ctx, 7, "toxicity", 2, now)
	require.NoError(t, err)

	reason := "slurs in chat"
	id1, err := f.tickets.AttachLabel(ctx, ticket.ID, 7, &reason, now)
	require.NoError(t, err)
	id2, err := f.tickets.AttachLabel(ctx, ticket.ID, 7, nil, now.Add(time.Second))
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	labels, err := f.tickets.Labels(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, "toxicity", labels[0].Name)
	require.NotNil(t, labels[0].Reason)
	assert.Equal(t, reason, *labels[0].Reason)
	assert.Nil(t, labels[1].Reason)
}

func TestTicketRepository_ListForTarget(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	a := f.createTicket(t, "p1", 1, t0)
	b := f.createTicket(t, "p1", 2, t0.Add(5*time.Minute))
	c := f.createTicket(t, "p1", 1, t0.Add(40*time.Minute))
	f.createTicket(t, "p9", 1, t0)

	list := func(filter TicketFilter) []int64 {
		t.Helper()
		tickets, err := f.tickets.ListForTarget(ctx, filter)
		require.NoError(t, err)
		ids := make([]int64, 0, len(tickets))
		for _, tk := range tickets {
			ids = append(ids, tk.ID)
		}
		return ids
	}

	base := TicketFilter{TargetID: "p1", StartDate: t0.Add(-time.Hour), EndDate: t0.Add(time.Hour), Limit: 10}

	t.Run("all types ascending", func(t *testing.T) {
		assert.Equal(t, []int64{a.ID, b.ID, c.ID}, list(base))
	})

	t.Run("type filter", func(t *testing.T) {
		typ := 1
		filter := base
		filter.Type = &typ
		assert.Equal(t, []int64{a.ID, c.ID}, list(filter))
	})

	t.Run("bounds are exclusive", func(t *testing.T) {
		filter := base
		filter.StartDate = t0
		filter.EndDate = t0.Add(40 * time.Minute)
		assert.Equal(t, []int64{b.ID}, list(filter))
	})

	t.Run("pagination", func(t *testing.T) {
		filter := base
		filter.Limit = 2
		assert.Equal(t, []int64{a.ID, b.ID}, list(filter))

		filter.Offset = 2
		assert.Equal(t, []int64{c.ID}, list(filter))

		filter.Offset = 3
		assert.Empty(t, list(filter))
	})
}
