// Package metrics exposes Prometheus counters for the moderation engine.
//
//   - beam_tickets_created_total{type}: reports that opened a new ticket
//   - beam_tickets_merged_total{type}: reports folded into an open ticket
//   - beam_labels_attached_total{tag_id}: label attachments
//   - beam_presence_updates_total{active}: presence upserts
//   - beam_operation_errors_total{operation,kind}: failed operations by taxonomy kind
package metrics

import (
	"strconv"

	"guardian-beam/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

type Moderation struct {
	TicketsCreated  *prometheus.CounterVec
	TicketsMerged   *prometheus.CounterVec
	LabelsAttached  *prometheus.CounterVec
	PresenceUpdates *prometheus.CounterVec
	OperationErrors *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Moderation {
	factory := promauto.With(reg)
	return &Moderation{
		TicketsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "beam_tickets_created_total",
			Help: "Reports that opened a new ticket",
		}, []string{"type"}),
		TicketsMerged: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "beam_tickets_merged_total",
			Help: "Reports merged into an open ticket inside the dedup window",
		}, []string{"type"}),
		LabelsAttached: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "beam_labels_attached_total",
			Help: "Label attachments to tickets",
		}, []string{"tag_id"}),
		PresenceUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "beam_presence_updates_total",
			Help: "Player presence upserts",
		}, []string{"active"}),
		OperationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "beam_operation_errors_total",
			Help: "Failed operations by error kind",
		}, []string{"operation", "kind"}),
	}
}

func (m *Moderation) RecordReport(ticketType int, created bool) {
	typ := strconv.Itoa(ticketType)
	if created {
		m.TicketsCreated.WithLabelValues(typ).Inc()
		return
	}
	m.TicketsMerged.WithLabelValues(typ).Inc()
}

func (m *Moderation) RecordLabel(tagID int) {
	m.LabelsAttached.WithLabelValues(strconv.Itoa(tagID)).Inc()
}

func (m *Moderation) RecordPresence(active bool) {
	m.PresenceUpdates.WithLabelValues(strconv.FormatBool(active)).Inc()
}

func (m *Moderation) RecordError(operation string, err error) {
	m.OperationErrors.WithLabelValues(operation, domain.KindOf(err).String()).Inc()
}

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

var Module = fx.Options(
	fx.Provide(NewRegistry),
	fx.Provide(func(reg *prometheus.Registry) *Moderation { return New(reg) }),
)
