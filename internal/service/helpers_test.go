package service

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"guardian-beam/internal/database"
	"guardian-beam/internal/db"
	"guardian-beam/internal/metrics"
	"guardian-beam/internal/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type engine struct {
	clock   *fakeClock
	metrics *metrics.Moderation
	players *PlayerRegistry
	labels  *LabelCatalog
	store   *TicketStore
	query   *QueryEngine
}

func newEngine(t *testing.T) *engine {
	t.Helper()

	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "beam.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	logger := zerolog.Nop()
	queries := db.New(sqlDB)
	clock := newFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	m := metrics.New(prometheus.NewRegistry())

	ticketRepo := repository.NewTicketRepository(sqlDB, queries, logger)
	players := NewPlayerRegistry(repository.NewPlayerRepository(sqlDB, queries, logger), m, clock.Now, logger)
	labels := NewLabelCatalog(repository.NewLabelRepository(sqlDB, queries, logger), clock.Now, logger)

	return &engine{
		clock:   clock,
		metrics: m,
		players: players,
		labels:  labels,
		store:   NewTicketStore(repository.NewTransactor(sqlDB, logger), ticketRepo, players, labels, m, clock.Now, logger),
		query:   NewQueryEngine(ticketRepo, players, m, logger),
	}
}
