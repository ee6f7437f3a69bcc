package constants

import "time"

// Reports against the same target with the same type collapse into one ticket
// while the ticket is younger than this.
const DedupWindow = 30 * time.Minute

const (
	DatabaseTimeout    = 5 * time.Second
	ExternalAPITimeout = 10 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBusyTimeoutMS   = 5000
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
