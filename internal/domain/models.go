package domain

import (
	"time"
)

type Player struct {
	ID           string
	Active       bool
	ActiveServer string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Label struct {
	TagID     int
	Name      string
	Priority  int
	CreatedAt time.Time
}

// TicketLabel is one attachment of a label to a ticket. The same label may be
// attached to a ticket many times, each with its own reason.
type TicketLabel struct {
	ID         string // nanoid
	TagID      int
	Name       string
	Priority   int
	Reason     *string
	AttachedAt time.Time
}

type Ticket struct {
	ID           int64
	TargetID     string
	Type         int
	Priority     int
	TargetServer string
	CreatedAt    time.Time
	IssuerIDs    []string // ordered by first report
	Labels       []TicketLabel
}

// ReportResult is what filing a report produced: the ticket the report landed
// on and whether that ticket was opened by this call.
type ReportResult struct {
	Ticket  *Ticket
	Created bool
}
