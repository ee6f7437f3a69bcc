package service

import "time"

// Clock returns the current time. Every timestamp the engine writes comes
// from it.
type Clock func() time.Time

func SystemClock() Clock {
	return time.Now
}

type PresenceCommand struct {
	PlayerID     string `json:"player_id" validate:"required,max=128"`
	Active       bool   `json:"active"`
	ActiveServer string `json:"active_server" validate:"max=128"`
}

type FileReportCommand struct {
	TargetID     string `json:"target_id" validate:"required,max=128"`
	IssuerID     string `json:"issuer_id" validate:"required,max=128,nefield=TargetID"`
	Type         int    `json:"type" validate:"min=1"`
	Priority     int    `json:"priority" validate:"min=0"`
	TargetServer string `json:"target_server" validate:"required,max=128"`
}

type AttachLabelCommand struct {
	TicketID int64   `json:"ticket_id" validate:"min=1"`
	TagID    int     `json:"tag_id" validate:"min=1"`
	Name     string  `json:"name" validate:"required,max=128"`
	Priority int     `json:"priority" validate:"min=0"`
	Reason   *string `json:"reason" validate:"omitempty,max=1024"`
}

type ListTicketsQuery struct {
	TargetID  string    `json:"target_id" validate:"required,max=128"`
	Type      *int      `json:"type" validate:"omitempty,min=1"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
	Offset    int       `json:"offset" validate:"min=0"`
	Limit     int       `json:"limit" validate:"min=1,max=100"`
}
