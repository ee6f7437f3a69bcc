package db

import (
	"database/sql"
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
	TagID     int64
	Name      string
	Priority  int64
	CreatedAt time.Time
}

type Ticket struct {
	ID           int64
	TargetID     string
	Type         int64
	Priority     int64
	TargetServer string
	CreatedAt    time.Time
}

type TicketWindow struct {
	TargetID string
	Type     int64
	TicketID int64
	OpenedAt time.Time
}

type TicketIssuer struct {
	TicketID  int64
	IssuerID  string
	CreatedAt time.Time
}

type TicketLabel struct {
	ID        string
	TicketID  int64
	TagID     int64
	Reason    sql.NullString
	CreatedAt time.Time
}
