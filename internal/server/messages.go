package server

import (
	"time"

	"guardian-beam/internal/domain"
)

type Player struct {
	ID           string `json:"id"`
	Active       bool   `json:"active"`
	ActiveServer string `json:"active_server"`
}

type TicketLabel struct {
	ID         string    `json:"id"`
	TagID      int       `json:"tag_id"`
	Name       string    `json:"name"`
	Priority   int       `json:"priority"`
	Reason     *string   `json:"reason"`
	AttachedAt time.Time `json:"attached_at"`
}

type Ticket struct {
	ID           int64         `json:"id"`
	TargetID     string        `json:"target_id"`
	Type         int           `json:"type"`
	Priority     int           `json:"priority"`
	TargetServer string        `json:"target_server"`
	CreatedAt    time.Time     `json:"created_at"`
	IssuerIDs    []string      `json:"issuer_ids"`
	Labels       []TicketLabel `json:"labels"`
}

type UpdatePresenceRequest struct {
	Active       bool   `json:"active"`
	ActiveServer string `json:"active_server"`
}

type UpdatePresenceResponse struct {
	Player Player `json:"player"`
}

type FileReportRequest struct {
	TargetID     string `json:"target_id"`
	Type         int    `json:"type"`
	Priority     int    `json:"priority"`
	TargetServer string `json:"target_server"`
}

type FileReportResponse struct {
	TicketID int64  `json:"ticket_id"`
	Created  bool   `json:"created"`
	Ticket   Ticket `json:"ticket"`
}

type ListReportsRequest struct {
	TargetID  string    `json:"target_id"`
	Type      *int      `json:"type,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Offset    int       `json:"offset"`
	Limit     int       `json:"limit"`
}

type ListReportsResponse struct {
	Tickets []Ticket `json:"tickets"`
}

type AttachLabelRequest struct {
	TicketID int64   `json:"ticket_id"`
	TagID    int     `json:"tag_id"`
	Name     string  `json:"name"`
	Priority int     `json:"priority"`
	Reason   *string `json:"reason,omitempty"`
}

type AttachLabelResponse struct {
	AttachmentID string `json:"attachment_id"`
}

func toPlayer(p *domain.Player) Player {
	return Player{ID: p.ID, Active: p.Active, ActiveServer: p.ActiveServer}
}

func toTicket(t *domain.Ticket) Ticket {
	labels := make([]TicketLabel, len(t.Labels))
	for i, l := range t.Labels {
		labels[i] = TicketLabel{
			ID:         l.ID,
			TagID:      l.TagID,
			Name:       l.Name,
			Priority:   l.Priority,
			Reason:     l.Reason,
			AttachedAt: l.AttachedAt,
		}
	}

	issuers := t.IssuerIDs
	if issuers == nil {
		issuers = []string{}
	}

	return Ticket{
		ID:           t.ID,
		TargetID:     t.TargetID,
		Type:         t.Type,
		Priority:     t.Priority,
		TargetServer: t.TargetServer,
		CreatedAt:    t.CreatedAt,
		IssuerIDs:    issuers,
		Labels:       labels,
	}
}
